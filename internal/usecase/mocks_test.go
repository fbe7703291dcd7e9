package usecase

import (
	"context"
	"sync"
	"time"

	"MarketMCP/internal/domain/models"
)

type mockLanguageModel struct {
	generateFn   func(ctx context.Context, prompt string) (string, error)
	listModelsFn func(ctx context.Context) ([]models.LanguageModel, error)
	listCalls    int
}

func (m *mockLanguageModel) Generate(ctx context.Context, prompt string) (string, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, prompt)
	}
	return "", nil
}

func (m *mockLanguageModel) ListModels(ctx context.Context) ([]models.LanguageModel, error) {
	m.listCalls++
	if m.listModelsFn != nil {
		return m.listModelsFn(ctx)
	}
	return nil, nil
}

type mockCache struct {
	getFn func(ctx context.Context, key string) ([]byte, bool, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockCache) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, false, nil
}

func (m *mockCache) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

type recordedMetrics struct {
	mu         sync.Mutex
	forecasts  []string
	risks      []string
	anomalies  int
	quotes     []bool
	rejections []string
	latencies  []string
}

func (r *recordedMetrics) RecordForecast(method string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forecasts = append(r.forecasts, method)
}

func (r *recordedMetrics) RecordRisk(tier string, anomalies int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.risks = append(r.risks, tier)
	r.anomalies += anomalies
}

func (r *recordedMetrics) RecordQuote(capped bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotes = append(r.quotes, capped)
}

func (r *recordedMetrics) RecordRejection(operation, kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejections = append(r.rejections, operation+":"+kind)
}

func (r *recordedMetrics) RecordLatency(op string, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latencies = append(r.latencies, op)
}
