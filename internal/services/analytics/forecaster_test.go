package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketMCP/internal/domain/models"
)

func closesSeries(closes ...float64) models.Series {
	s := make(models.Series, len(closes))
	for i, c := range closes {
		s[i] = models.PricePoint{Time: i, Close: c}
	}
	return s
}

func TestForecaster_EMA(t *testing.T) {
	f := NewForecaster()

	res, err := f.Forecast(models.ForecastRequest{
		Symbol:  "AAPL",
		Series:  closesSeries(1, 2, 3, 4, 5),
		Method:  "ema",
		Horizon: 1,
		EMASpan: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, "AAPL", res.Symbol)
	assert.Equal(t, models.MethodEMA, res.Method)
	assert.Equal(t, 5.0, res.LastPrice)
	assert.InDelta(t, 2.5165630762926026, res.Prediction, 1e-12)
	require.NotNil(t, res.Details.EMADetails)
	assert.Nil(t, res.Details.LinRegDetails)
	assert.InDelta(t, 2.0/11.0, res.Details.Alpha, 1e-15)
	assert.Equal(t, res.Prediction, res.Details.EMA)
}

func TestForecaster_EMASinglePoint(t *testing.T) {
	f := NewForecaster()

	for _, span := range []float64{0.5, 1, 10, 250} {
		res, err := f.Forecast(models.ForecastRequest{
			Series:  closesSeries(42.5),
			Method:  "ema",
			Horizon: 1,
			EMASpan: span,
		})
		require.NoError(t, err)
		assert.Equal(t, 42.5, res.Prediction, "span %v", span)
		assert.Equal(t, 2.0/(span+1.0), res.Details.Alpha, "span %v", span)
	}
}

func TestForecaster_HorizonDoesNotChangePrediction(t *testing.T) {
	f := NewForecaster()
	series := closesSeries(10, 11, 13, 12, 15)

	for _, method := range []string{"ema", "linreg"} {
		one, err := f.Forecast(models.ForecastRequest{Series: series, Method: method, Horizon: 1, EMASpan: 10})
		require.NoError(t, err)
		many, err := f.Forecast(models.ForecastRequest{Series: series, Method: method, Horizon: 30, EMASpan: 10})
		require.NoError(t, err)

		assert.Equal(t, one.Prediction, many.Prediction, method)
		assert.Equal(t, 30, many.Horizon, method)
	}
}

func TestForecaster_LinRegPerfectLine(t *testing.T) {
	f := NewForecaster()

	res, err := f.Forecast(models.ForecastRequest{
		Symbol:  "BTC",
		Series:  closesSeries(10, 12, 14, 16),
		Method:  "linreg",
		Horizon: 1,
	})
	require.NoError(t, err)

	require.NotNil(t, res.Details.LinRegDetails)
	assert.Nil(t, res.Details.EMADetails)
	assert.InDelta(t, 2.0, res.Details.Slope, 1e-12)
	assert.InDelta(t, 10.0, res.Details.Intercept, 1e-12)
	assert.InDelta(t, 0.0, res.Details.ResidualSigma, 1e-12)
	assert.InDelta(t, 18.0, res.Prediction, 1e-12)
	assert.Equal(t, 16.0, res.LastPrice)
}

func TestForecaster_LinRegResidualSigma(t *testing.T) {
	f := NewForecaster()

	// Best fit of [1, 3, 2] over t=0..2 is 1.5 + 0.5t; residuals are -0.5, 1, -0.5.
	res, err := f.Forecast(models.ForecastRequest{Series: closesSeries(1, 3, 2), Method: "linreg", Horizon: 1})
	require.NoError(t, err)

	assert.InDelta(t, 0.5, res.Details.Slope, 1e-12)
	assert.InDelta(t, 1.5, res.Details.Intercept, 1e-12)
	assert.InDelta(t, math.Sqrt(0.5), res.Details.ResidualSigma, 1e-12)
	assert.InDelta(t, 3.0, res.Prediction, 1e-12)
}

func TestForecaster_LinRegSinglePoint(t *testing.T) {
	f := NewForecaster()

	res, err := f.Forecast(models.ForecastRequest{Series: closesSeries(7), Method: "linreg", Horizon: 1})
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.Details.Slope)
	assert.Equal(t, 7.0, res.Details.Intercept)
	assert.Equal(t, 0.0, res.Details.ResidualSigma)
	assert.Equal(t, 7.0, res.Prediction)
}

func TestForecaster_MethodIsCaseInsensitive(t *testing.T) {
	f := NewForecaster()

	for raw, want := range map[string]models.ForecastMethod{
		"EMA":      models.MethodEMA,
		"Ema":      models.MethodEMA,
		" linreg ": models.MethodLinReg,
		"LinReg":   models.MethodLinReg,
	} {
		res, err := f.Forecast(models.ForecastRequest{Series: closesSeries(1, 2), Method: raw, Horizon: 1, EMASpan: 10})
		require.NoError(t, err, raw)
		assert.Equal(t, want, res.Method, raw)
	}
}

func TestForecaster_Errors(t *testing.T) {
	f := NewForecaster()

	testCases := []struct {
		name    string
		req     models.ForecastRequest
		wantErr error
	}{
		{
			name:    "empty series",
			req:     models.ForecastRequest{Method: "ema", Horizon: 1, EMASpan: 10},
			wantErr: models.ErrInvalidInput,
		},
		{
			name:    "unsupported method",
			req:     models.ForecastRequest{Series: closesSeries(1, 2), Method: "arima", Horizon: 1, EMASpan: 10},
			wantErr: models.ErrUnsupportedMethod,
		},
		{
			name:    "empty method",
			req:     models.ForecastRequest{Series: closesSeries(1, 2), Horizon: 1, EMASpan: 10},
			wantErr: models.ErrUnsupportedMethod,
		},
		{
			name:    "non-finite close",
			req:     models.ForecastRequest{Series: closesSeries(1, math.NaN()), Method: "ema", Horizon: 1, EMASpan: 10},
			wantErr: models.ErrInvalidInput,
		},
		{
			name:    "zero span",
			req:     models.ForecastRequest{Series: closesSeries(1, 2), Method: "ema", Horizon: 1},
			wantErr: models.ErrInvalidInput,
		},
		{
			name:    "negative span",
			req:     models.ForecastRequest{Series: closesSeries(1, 2), Method: "ema", Horizon: 1, EMASpan: -3},
			wantErr: models.ErrInvalidInput,
		},
		{
			name:    "zero horizon",
			req:     models.ForecastRequest{Series: closesSeries(1, 2), Method: "linreg"},
			wantErr: models.ErrInvalidInput,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.Forecast(tc.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestForecaster_UnsupportedMethodNamesValue(t *testing.T) {
	_, err := NewForecaster().Forecast(models.ForecastRequest{Series: closesSeries(1), Method: "arima", Horizon: 1, EMASpan: 10})

	var umErr *models.UnsupportedMethodError
	require.ErrorAs(t, err, &umErr)
	assert.Equal(t, "arima", umErr.Method)
	assert.Contains(t, err.Error(), "arima")
}

func TestForecaster_Overflow(t *testing.T) {
	testCases := []struct {
		name  string
		req   models.ForecastRequest
		field string
	}{
		{
			name:  "linreg slope",
			req:   models.ForecastRequest{Series: closesSeries(1e308, -1e308), Method: "linreg", Horizon: 1},
			field: "slope",
		},
		{
			name:  "ema with span below one",
			req:   models.ForecastRequest{Series: closesSeries(-1.7e308, 1.7e308), Method: "ema", Horizon: 1, EMASpan: 0.1},
			field: "prediction",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewForecaster().Forecast(tc.req)
			require.ErrorIs(t, err, models.ErrInvalidInput)

			var inErr *models.InvalidInputError
			require.ErrorAs(t, err, &inErr)
			assert.Equal(t, tc.field, inErr.Field)
			assert.Contains(t, err.Error(), "overflows float64")
		})
	}
}
