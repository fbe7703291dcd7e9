package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MarketMCP/internal/domain/models"
	domrepo "MarketMCP/internal/domain/repository"
	domsvc "MarketMCP/internal/domain/service"
)

// Analytics runs the stateless calculators and records their outcomes.
type Analytics struct {
	forecaster domsvc.Forecaster
	risk       domsvc.RiskAnalyzer
	quotes     domsvc.QuoteEngine
	metrics    domrepo.Metrics
}

func NewAnalytics(f domsvc.Forecaster, r domsvc.RiskAnalyzer, q domsvc.QuoteEngine, m domrepo.Metrics) *Analytics {
	return &Analytics{forecaster: f, risk: r, quotes: q, metrics: m}
}

func (a *Analytics) PredictPrice(ctx context.Context, req models.ForecastRequest) (models.ForecastResult, error) {
	if err := ctx.Err(); err != nil {
		return models.ForecastResult{}, err
	}
	start := time.Now()
	res, err := a.forecaster.Forecast(req)
	a.metrics.RecordLatency("forecast", time.Since(start).Seconds())
	if err != nil {
		a.metrics.RecordRejection("forecast", rejectionKind(err))
		return models.ForecastResult{}, fmt.Errorf("forecast %s: %w", req.Symbol, err)
	}
	a.metrics.RecordForecast(string(res.Method))
	return res, nil
}

func (a *Analytics) AnalyzeRisk(ctx context.Context, req models.RiskRequest) (models.RiskResult, error) {
	if err := ctx.Err(); err != nil {
		return models.RiskResult{}, err
	}
	start := time.Now()
	res, err := a.risk.Analyze(req)
	a.metrics.RecordLatency("risk", time.Since(start).Seconds())
	if err != nil {
		a.metrics.RecordRejection("risk", rejectionKind(err))
		return models.RiskResult{}, fmt.Errorf("analyze risk %s: %w", req.Symbol, err)
	}
	a.metrics.RecordRisk(string(res.RiskScore), len(res.Anomalies))
	return res, nil
}

func (a *Analytics) Quote(ctx context.Context, req models.QuoteRequest) (models.QuoteResult, error) {
	if err := ctx.Err(); err != nil {
		return models.QuoteResult{}, err
	}
	start := time.Now()
	res, err := a.quotes.Quote(req)
	a.metrics.RecordLatency("quote", time.Since(start).Seconds())
	if err != nil {
		a.metrics.RecordRejection("quote", rejectionKind(err))
		return models.QuoteResult{}, fmt.Errorf("quote: %w", err)
	}
	a.metrics.RecordQuote(res.Capped)
	return res, nil
}

func rejectionKind(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, models.ErrUnsupportedMethod):
		return "unsupported_method"
	default:
		return "other"
	}
}
