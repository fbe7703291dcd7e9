package api

import (
	"time"

	"MarketMCP/internal/domain/models"
	"MarketMCP/internal/service/metrics"
	"MarketMCP/internal/service/ratelimit"
	"MarketMCP/internal/usecase"
	xhttp "MarketMCP/pkg/http"
	xlogger "MarketMCP/pkg/logger"

	"github.com/labstack/echo/v4"
)

// NarrativeEchoHandler serves the language-model endpoints. A nil limiter
// disables rate limiting.
type NarrativeEchoHandler struct {
	logger  *xlogger.Logger
	uc      *usecase.Narrative
	metrics *metrics.Endpoint
	rl      *ratelimit.Limiter
}

func NewNarrativeEchoHandler(logger *xlogger.Logger, uc *usecase.Narrative, m *metrics.Endpoint, rl *ratelimit.Limiter) *NarrativeEchoHandler {
	return &NarrativeEchoHandler{logger: logger, uc: uc, metrics: m, rl: rl}
}

func (h *NarrativeEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/mcp")
	g.POST("/summarize-news", h.SummarizeNews, h.rateLimit)
	g.POST("/analyze-chart", h.AnalyzeChart, h.rateLimit)
	g.GET("/models", h.ListModels, h.rateLimit)
}

func (h *NarrativeEchoHandler) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.rl == nil {
			return next(c)
		}
		ip := c.RealIP()
		if !h.rl.Allow(ip) {
			h.logger.Warn("narrative rate_limited",
				xlogger.String("remote_ip", ip),
				xlogger.String("path", c.Path()),
			)
			h.metrics.Fail("narrative", "ERR_RATE_LIMITED")
			return xhttp.TooManyRequestsResponse(c, "rate limit exceeded, retry later")
		}
		return next(c)
	}
}

func (h *NarrativeEchoHandler) SummarizeNews(c echo.Context) error {
	const endpoint = "summarize_news"
	defer h.observe(endpoint, time.Now())

	req := &models.SummarizeNewsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		h.metrics.Fail(endpoint, "ERR_VALIDATION")
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.uc.SummarizeNews(c.Request().Context(), req.Articles)
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *NarrativeEchoHandler) AnalyzeChart(c echo.Context) error {
	const endpoint = "analyze_chart"
	defer h.observe(endpoint, time.Now())

	req := &models.AnalyzeChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		h.metrics.Fail(endpoint, "ERR_VALIDATION")
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.uc.AnalyzeChart(c.Request().Context(), req.Symbol, req.Data)
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *NarrativeEchoHandler) ListModels(c echo.Context) error {
	const endpoint = "list_models"
	defer h.observe(endpoint, time.Now())

	res, err := h.uc.ListModels(c.Request().Context())
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, res)
}

func (h *NarrativeEchoHandler) observe(endpoint string, start time.Time) {
	h.metrics.Observe(endpoint, time.Since(start).Seconds())
}

func (h *NarrativeEchoHandler) fail(c echo.Context, endpoint string, err error) error {
	appErr := toAppError(err)
	h.metrics.Fail(endpoint, appErr.Code)
	h.logger.Error(endpoint+" failed", xlogger.Error(err))
	return xhttp.AppErrorResponse(c, appErr)
}
