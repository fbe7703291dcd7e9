package models

// Requests and results for the language-model proxy endpoints.

type SummarizeNewsRequest struct {
	Articles []string `json:"articles" validate:"required,min=1,dive,notblank"`
}

type AnalyzeChartRequest struct {
	Symbol string           `json:"symbol" validate:"required"`
	Data   []map[string]any `json:"data" validate:"required,min=1"`
}

type NewsSummary struct {
	Summary string `json:"summary"`
}

type ChartAnalysis struct {
	Analysis string `json:"analysis"`
}

// LanguageModel describes one model offered by the upstream provider.
type LanguageModel struct {
	Name             string   `json:"name"`
	DisplayName      string   `json:"display_name,omitempty"`
	Description      string   `json:"description,omitempty"`
	Version          string   `json:"version,omitempty"`
	InputTokenLimit  int32    `json:"input_token_limit,omitempty"`
	OutputTokenLimit int32    `json:"output_token_limit,omitempty"`
	SupportedActions []string `json:"supported_actions,omitempty"`
}

type ModelCatalogue struct {
	Models []LanguageModel `json:"models"`
}
