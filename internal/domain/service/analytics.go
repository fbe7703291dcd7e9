package service

import (
	"context"

	"MarketMCP/internal/domain/models"
)

// Forecaster predicts the next value of a price series.
type Forecaster interface {
	Forecast(req models.ForecastRequest) (models.ForecastResult, error)
}

// RiskAnalyzer scores volatility and flags volume anomalies.
type RiskAnalyzer interface {
	Analyze(req models.RiskRequest) (models.RiskResult, error)
}

// QuoteEngine computes inventory-adjusted market-making quotes.
type QuoteEngine interface {
	Quote(req models.QuoteRequest) (models.QuoteResult, error)
}

// LanguageModel is the generative text provider behind the narrative endpoints.
type LanguageModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
	ListModels(ctx context.Context) ([]models.LanguageModel, error)
}
