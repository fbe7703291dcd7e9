package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"MarketMCP/internal/domain/models"
	domsvc "MarketMCP/internal/domain/service"
	"MarketMCP/internal/service/cache"
	applogger "MarketMCP/pkg/logger"
)

const modelsCacheKey = "gemini:models"

// Narrative builds prompts for the language model and caches its model catalogue.
type Narrative struct {
	lm        domsvc.LanguageModel
	cache     cache.BytesCache
	modelsTTL time.Duration
	logger    *applogger.Logger
}

func NewNarrative(lm domsvc.LanguageModel, c cache.BytesCache, modelsTTL time.Duration, logger *applogger.Logger) *Narrative {
	return &Narrative{lm: lm, cache: c, modelsTTL: modelsTTL, logger: logger}
}

func (n *Narrative) SummarizeNews(ctx context.Context, articles []string) (models.NewsSummary, error) {
	if len(articles) == 0 {
		return models.NewsSummary{}, models.InvalidInput("articles", "must contain at least one article")
	}
	for i, a := range articles {
		if strings.TrimSpace(a) == "" {
			return models.NewsSummary{}, models.InvalidInput(fmt.Sprintf("articles[%d]", i), "must not be blank")
		}
	}
	text, err := n.lm.Generate(ctx, newsPrompt(articles))
	if err != nil {
		return models.NewsSummary{}, fmt.Errorf("summarize news: %w", err)
	}
	return models.NewsSummary{Summary: text}, nil
}

func (n *Narrative) AnalyzeChart(ctx context.Context, symbol string, data []map[string]any) (models.ChartAnalysis, error) {
	prompt, err := chartPrompt(symbol, data)
	if err != nil {
		return models.ChartAnalysis{}, err
	}
	text, err := n.lm.Generate(ctx, prompt)
	if err != nil {
		return models.ChartAnalysis{}, fmt.Errorf("analyze chart %s: %w", symbol, err)
	}
	return models.ChartAnalysis{Analysis: text}, nil
}

// ListModels serves the catalogue from cache when present. Cache failures
// are logged and fall through to the backend.
func (n *Narrative) ListModels(ctx context.Context) (models.ModelCatalogue, error) {
	if b, ok, err := n.cache.GetBytes(ctx, modelsCacheKey); err != nil {
		n.logger.Warn("model catalogue cache read failed", applogger.Error(err))
	} else if ok {
		var cat models.ModelCatalogue
		if err := json.Unmarshal(b, &cat); err == nil {
			return cat, nil
		}
		n.logger.Warn("model catalogue cache entry corrupt, refetching")
	}

	list, err := n.lm.ListModels(ctx)
	if err != nil {
		return models.ModelCatalogue{}, fmt.Errorf("list models: %w", err)
	}
	cat := models.ModelCatalogue{Models: list}
	if cat.Models == nil {
		cat.Models = []models.LanguageModel{}
	}

	if b, err := json.Marshal(cat); err == nil {
		if err := n.cache.SetBytes(ctx, modelsCacheKey, b, n.modelsTTL); err != nil {
			n.logger.Warn("model catalogue cache write failed", applogger.Error(err))
		}
	}
	return cat, nil
}

func newsPrompt(articles []string) string {
	var sb strings.Builder
	sb.WriteString("Summarize the following financial news articles into a concise market summary.\n")
	sb.WriteString("Focus on sentiment (bullish, bearish, neutral), key events, and risks:\n")
	for _, a := range articles {
		sb.WriteString("\n")
		sb.WriteString(strings.TrimSpace(a))
		sb.WriteString("\n")
	}
	return sb.String()
}

func chartPrompt(symbol string, data []map[string]any) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", models.InvalidInput("data", "must be JSON-serializable")
	}
	return fmt.Sprintf(`Analyze the stock chart data for %s.
Data: %s

Provide:
- Trend direction (bullish, bearish, neutral)
- Strong signals (volume spikes, breakouts, moving averages implied)
- Risks or anomalies
- A one-sentence summary for traders
`, symbol, raw), nil
}
