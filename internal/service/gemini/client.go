package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"MarketMCP/internal/domain/models"
	domsvc "MarketMCP/internal/domain/service"
	"MarketMCP/pkg/config"
	applogger "MarketMCP/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/genai"
)

// modelsAPI is the subset of *genai.Models the client needs.
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	List(ctx context.Context, cfg *genai.ListModelsConfig) (genai.Page[genai.Model], error)
}

// Client implements domain.service.LanguageModel on the Gemini API.
type Client struct {
	api        modelsAPI
	model      string
	timeout    time.Duration
	maxRetries int
	logger     *applogger.Logger
	newBackOff func() backoff.BackOff
}

// New returns a Gemini-backed language model, or Disabled when no API key
// is configured.
func New(ctx context.Context, cfg config.Gemini, logger *applogger.Logger) (domsvc.LanguageModel, error) {
	if !cfg.Enabled() {
		logger.Warn("gemini: api key not set, narrative endpoints disabled")
		return Disabled{}, nil
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			APIVersion: cfg.APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	logger.Info("gemini: client ready",
		applogger.String("model", cfg.Model),
		applogger.String("api_version", cfg.APIVersion),
	)
	return newClient(gc.Models, cfg, logger), nil
}

func newClient(api modelsAPI, cfg config.Gemini, logger *applogger.Logger) *Client {
	return &Client{
		api:        api,
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxInterval = 5 * time.Second
			return b
		},
	}
}

// Generate sends prompt to the configured model and returns the response text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var text string
	err := c.retry(ctx, "generate", func(ctx context.Context) error {
		resp, err := c.api.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
		if err != nil {
			return err
		}
		if resp == nil {
			return errors.New("empty response")
		}
		text = strings.TrimSpace(resp.Text())
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// ListModels pages through every model available to the API key.
func (c *Client) ListModels(ctx context.Context) ([]models.LanguageModel, error) {
	var out []models.LanguageModel
	err := c.retry(ctx, "list models", func(ctx context.Context) error {
		out = out[:0]
		page, err := c.api.List(ctx, &genai.ListModelsConfig{PageSize: 100})
		for {
			if errors.Is(err, genai.ErrPageDone) {
				return nil
			}
			if err != nil {
				return err
			}
			for _, m := range page.Items {
				if m != nil {
					out = append(out, toLanguageModel(m))
				}
			}
			if page.NextPageToken == "" {
				return nil
			}
			page, err = page.Next(ctx)
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// retry runs fn with a per-attempt timeout. Client errors other than 429
// are not retried.
func (c *Client) retry(ctx context.Context, op string, fn func(context.Context) error) error {
	attempt := 0
	operation := func() error {
		attempt++
		actx, cancel := c.attemptContext(ctx)
		defer cancel()

		err := fn(actx)
		if err == nil {
			return nil
		}
		status := statusOf(err)
		c.logger.Warn("gemini: request failed",
			applogger.String("op", op),
			applogger.Int("attempt", attempt),
			applogger.Int("status", status),
			applogger.Error(err),
		)
		if !retryable(status) {
			return backoff.Permanent(err)
		}
		return err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(c.maxRetries)), ctx)
	if err := backoff.Retry(operation, b); err != nil {
		return &models.UpstreamError{Op: op, Status: statusOf(err), Err: err}
	}
	return nil
}

func (c *Client) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func statusOf(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}
	return 0
}

func retryable(status int) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	return status < 400 || status >= 500
}

func toLanguageModel(m *genai.Model) models.LanguageModel {
	return models.LanguageModel{
		Name:             m.Name,
		DisplayName:      m.DisplayName,
		Description:      m.Description,
		Version:          m.Version,
		InputTokenLimit:  m.InputTokenLimit,
		OutputTokenLimit: m.OutputTokenLimit,
		SupportedActions: m.SupportedActions,
	}
}

var _ domsvc.LanguageModel = (*Client)(nil)
