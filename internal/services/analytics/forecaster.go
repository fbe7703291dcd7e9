package analytics

import (
	"MarketMCP/internal/domain/models"
	domsvc "MarketMCP/internal/domain/service"
)

// Forecaster implements EMA smoothing and index-based linear trend forecasts.
// It is stateless and safe for concurrent use.
type Forecaster struct{}

func NewForecaster() *Forecaster { return &Forecaster{} }

// Forecast predicts one step past the end of the series. Horizon is carried
// into the result but does not alter the prediction.
func (f *Forecaster) Forecast(req models.ForecastRequest) (models.ForecastResult, error) {
	var result models.ForecastResult
	if err := checkSeries(req.Series, false); err != nil {
		return result, err
	}
	method, err := models.ParseForecastMethod(req.Method)
	if err != nil {
		return result, err
	}
	if req.Horizon < 1 {
		return result, models.InvalidInput("horizon", "must be a positive integer")
	}

	closes := req.Series.Closes()
	result.Symbol = req.Symbol
	result.Method = method
	result.LastPrice = closes[len(closes)-1]
	result.Horizon = req.Horizon

	switch method {
	case models.MethodEMA:
		if !isFinite(req.EMASpan) || req.EMASpan <= 0 {
			return models.ForecastResult{}, models.InvalidInput("ema_span", "must be a positive number")
		}
		alpha, ema := exponentialMovingAverage(closes, req.EMASpan)
		if err := checkOverflow("prediction", ema); err != nil {
			return models.ForecastResult{}, err
		}
		result.Prediction = ema
		result.Details.EMADetails = &models.EMADetails{EMA: ema, Alpha: alpha}
	case models.MethodLinReg:
		slope, intercept := leastSquares(closes)
		prediction := slope*float64(len(closes)) + intercept
		sigma := rmsResidual(closes, slope, intercept)
		for _, c := range []struct {
			field string
			v     float64
		}{
			{"slope", slope},
			{"intercept", intercept},
			{"prediction", prediction},
			{"residual_sigma", sigma},
		} {
			if err := checkOverflow(c.field, c.v); err != nil {
				return models.ForecastResult{}, err
			}
		}
		result.Prediction = prediction
		result.Details.LinRegDetails = &models.LinRegDetails{
			Slope:         slope,
			Intercept:     intercept,
			ResidualSigma: sigma,
		}
	}
	return result, nil
}

// exponentialMovingAverage folds closes left to right, seeded with the first close.
func exponentialMovingAverage(closes []float64, span float64) (alpha, ema float64) {
	alpha = 2.0 / (span + 1.0)
	ema = closes[0]
	for _, p := range closes[1:] {
		ema = alpha*p + (1-alpha)*ema
	}
	return alpha, ema
}

var _ domsvc.Forecaster = (*Forecaster)(nil)
