package models

import "strings"

// ForecastMethod selects the forecasting algorithm.
type ForecastMethod string

const (
	MethodEMA    ForecastMethod = "ema"
	MethodLinReg ForecastMethod = "linreg"
)

const (
	DefaultForecastMethod  = MethodEMA
	DefaultForecastHorizon = 1
	DefaultEMASpan         = 10.0
)

// ParseForecastMethod matches raw case-insensitively against the supported methods.
func ParseForecastMethod(raw string) (ForecastMethod, error) {
	switch m := ForecastMethod(strings.ToLower(strings.TrimSpace(raw))); m {
	case MethodEMA, MethodLinReg:
		return m, nil
	default:
		return "", &UnsupportedMethodError{Method: raw}
	}
}

type ForecastRequest struct {
	Symbol  string
	Series  Series
	Method  string
	Horizon int
	EMASpan float64
}

type ForecastResult struct {
	Symbol     string          `json:"symbol"`
	Method     ForecastMethod  `json:"method"`
	LastPrice  float64         `json:"last_price"`
	Prediction float64         `json:"prediction"`
	Horizon    int             `json:"horizon"`
	Details    ForecastDetails `json:"details"`
}

// ForecastDetails carries exactly one of the method-specific diagnostics.
// Both are embedded so the JSON stays flat.
type ForecastDetails struct {
	*EMADetails
	*LinRegDetails
}

type EMADetails struct {
	EMA   float64 `json:"ema"`
	Alpha float64 `json:"alpha"`
}

type LinRegDetails struct {
	Slope         float64 `json:"slope"`
	Intercept     float64 `json:"intercept"`
	ResidualSigma float64 `json:"residual_sigma"`
}

// RiskTier classifies volatility.
type RiskTier string

const (
	RiskLow    RiskTier = "LOW"
	RiskMedium RiskTier = "MEDIUM"
	RiskHigh   RiskTier = "HIGH"
)

type RiskRequest struct {
	Symbol string
	Series Series
}

type RiskResult struct {
	Symbol     string          `json:"symbol"`
	Volatility float64         `json:"volatility"`
	RiskScore  RiskTier        `json:"risk_score"`
	Anomalies  []VolumeAnomaly `json:"anomalies"`
}

type VolumeAnomaly struct {
	Time   any     `json:"time"`
	Volume float64 `json:"volume"`
	ZScore float64 `json:"z_score"`
}

type QuoteRequest struct {
	MidPrice     float64
	Volatility   float64
	RiskAversion float64
	TimeHorizon  float64
	Inventory    float64
	Kappa        float64
	MaxSpread    *float64
}

type QuoteResult struct {
	MidPrice         float64     `json:"mid_price"`
	ReservationPrice float64     `json:"reservation_price"`
	OptimalSpread    float64     `json:"optimal_spread"`
	Bid              float64     `json:"bid"`
	Ask              float64     `json:"ask"`
	Params           QuoteParams `json:"params"`
	// Capped reports whether MaxSpread replaced the theoretical spread.
	Capped bool `json:"-"`
}

// QuoteParams echoes the normalized inputs of a quote.
type QuoteParams struct {
	Gamma     float64 `json:"gamma"`
	Sigma     float64 `json:"sigma"`
	T         float64 `json:"T"`
	Inventory float64 `json:"inventory"`
	Kappa     float64 `json:"kappa"`
}
