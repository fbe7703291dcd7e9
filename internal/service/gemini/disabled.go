package gemini

import (
	"context"

	"MarketMCP/internal/domain/models"
	domsvc "MarketMCP/internal/domain/service"
)

// Disabled is the language model used when no API key is configured.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error) {
	return "", models.ErrModelUnavailable
}

func (Disabled) ListModels(context.Context) ([]models.LanguageModel, error) {
	return nil, models.ErrModelUnavailable
}

var _ domsvc.LanguageModel = Disabled{}
