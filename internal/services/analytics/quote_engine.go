package analytics

import (
	"math"

	"MarketMCP/internal/domain/models"
	domsvc "MarketMCP/internal/domain/service"
)

// QuoteEngine prices two-sided quotes with the Avellaneda–Stoikov closed form:
//
//	r = s - q·γ·σ²·T
//	δ = γ·σ²·T + (2/γ)·ln(1 + γ/κ)
//
// δ is capped by MaxSpread when set; bid/ask sit δ/2 either side of r.
// Results that overflow float64 are rejected as invalid input.
type QuoteEngine struct{}

func NewQuoteEngine() *QuoteEngine { return &QuoteEngine{} }

func (e *QuoteEngine) Quote(req models.QuoteRequest) (models.QuoteResult, error) {
	if err := validateQuote(req); err != nil {
		return models.QuoteResult{}, err
	}

	gamma, sigma, T, q, kappa := req.RiskAversion, req.Volatility, req.TimeHorizon, req.Inventory, req.Kappa
	inventoryRisk := gamma * sigma * sigma * T

	reservation := req.MidPrice - q*inventoryRisk
	spread := inventoryRisk + (2.0/gamma)*math.Log1p(gamma/kappa)
	capped := req.MaxSpread != nil && *req.MaxSpread < spread
	if capped {
		spread = *req.MaxSpread
	}
	bid, ask := reservation-spread/2.0, reservation+spread/2.0

	for _, c := range []struct {
		field string
		v     float64
	}{
		{"reservation_price", reservation},
		{"optimal_spread", spread},
		{"bid", bid},
		{"ask", ask},
	} {
		if err := checkOverflow(c.field, c.v); err != nil {
			return models.QuoteResult{}, err
		}
	}

	return models.QuoteResult{
		MidPrice:         req.MidPrice,
		ReservationPrice: reservation,
		OptimalSpread:    spread,
		Bid:              bid,
		Ask:              ask,
		Capped:           capped,
		Params: models.QuoteParams{
			Gamma:     gamma,
			Sigma:     sigma,
			T:         T,
			Inventory: q,
			Kappa:     kappa,
		},
	}, nil
}

func validateQuote(req models.QuoteRequest) error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"mid_price", req.MidPrice},
		{"volatility", req.Volatility},
		{"risk_aversion", req.RiskAversion},
		{"time_horizon", req.TimeHorizon},
		{"inventory", req.Inventory},
		{"kappa", req.Kappa},
	} {
		if err := checkFinite(f.name, f.v); err != nil {
			return err
		}
	}
	switch {
	case req.RiskAversion <= 0:
		return models.InvalidInput("risk_aversion", "must be > 0")
	case req.Kappa <= 0:
		return models.InvalidInput("kappa", "must be > 0")
	case req.TimeHorizon <= 0:
		return models.InvalidInput("time_horizon", "must be > 0")
	case req.Volatility < 0:
		return models.InvalidInput("volatility", "must be >= 0")
	}
	if req.MaxSpread != nil {
		if err := checkFinite("max_spread", *req.MaxSpread); err != nil {
			return err
		}
		if *req.MaxSpread < 0 {
			return models.InvalidInput("max_spread", "must be >= 0")
		}
	}
	return nil
}

var _ domsvc.QuoteEngine = (*QuoteEngine)(nil)
