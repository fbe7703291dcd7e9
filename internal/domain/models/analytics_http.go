package models

import (
	"fmt"
)

// Requests for the analytics HTTP endpoints. Optional fields carry their
// defaults in `default` tags and are resolved before validation.

type PricePointRequest struct {
	Time   any      `json:"time"`
	Close  *float64 `json:"close" validate:"required"`
	Volume *float64 `json:"volume"`
}

type PredictPriceRequest struct {
	Symbol  string              `json:"symbol" validate:"required"`
	Data    []PricePointRequest `json:"data" validate:"dive"`
	Method  string              `json:"method" default:"ema"`
	Horizon *int                `json:"horizon" default:"1" validate:"required,gte=1"`
	EMASpan *float64            `json:"ema_span" default:"10" validate:"required,gt=0"`
}

type AnalyzeRiskRequest struct {
	Symbol string              `json:"symbol" validate:"required"`
	Data   []PricePointRequest `json:"data" validate:"dive"`
}

type MarketMakerQuoteRequest struct {
	MidPrice     *float64 `json:"mid_price" validate:"required"`
	Volatility   *float64 `json:"volatility" validate:"required"`
	RiskAversion *float64 `json:"risk_aversion" validate:"required"`
	TimeHorizon  *float64 `json:"time_horizon" validate:"required"`
	Inventory    *float64 `json:"inventory" validate:"required"`
	Kappa        *float64 `json:"kappa" validate:"required"`
	MaxSpread    *float64 `json:"max_spread"`
}

// ToForecastRequest assumes defaults have been applied.
func (r *PredictPriceRequest) ToForecastRequest() (ForecastRequest, error) {
	series, err := toSeries(r.Data, false)
	if err != nil {
		return ForecastRequest{}, err
	}
	req := ForecastRequest{
		Symbol:  r.Symbol,
		Series:  series,
		Method:  r.Method,
		Horizon: DefaultForecastHorizon,
		EMASpan: DefaultEMASpan,
	}
	if req.Method == "" {
		req.Method = string(DefaultForecastMethod)
	}
	if r.Horizon != nil {
		req.Horizon = *r.Horizon
	}
	if r.EMASpan != nil {
		req.EMASpan = *r.EMASpan
	}
	return req, nil
}

func (r *AnalyzeRiskRequest) ToRiskRequest() (RiskRequest, error) {
	series, err := toSeries(r.Data, true)
	if err != nil {
		return RiskRequest{}, err
	}
	return RiskRequest{Symbol: r.Symbol, Series: series}, nil
}

func (r *MarketMakerQuoteRequest) ToQuoteRequest() QuoteRequest {
	return QuoteRequest{
		MidPrice:     deref(r.MidPrice),
		Volatility:   deref(r.Volatility),
		RiskAversion: deref(r.RiskAversion),
		TimeHorizon:  deref(r.TimeHorizon),
		Inventory:    deref(r.Inventory),
		Kappa:        deref(r.Kappa),
		MaxSpread:    r.MaxSpread,
	}
}

func toSeries(points []PricePointRequest, requireVolume bool) (Series, error) {
	series := make(Series, 0, len(points))
	for i, p := range points {
		if p.Close == nil {
			return nil, InvalidInput(fmt.Sprintf("data[%d].close", i), "is required")
		}
		pt := PricePoint{Time: p.Time, Close: *p.Close}
		if p.Volume != nil {
			pt.Volume = *p.Volume
		} else if requireVolume {
			return nil, InvalidInput(fmt.Sprintf("data[%d].volume", i), "is required")
		}
		series = append(series, pt)
	}
	return series, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
