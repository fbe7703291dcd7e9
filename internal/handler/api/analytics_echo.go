package api

import (
	"time"

	"MarketMCP/internal/domain/models"
	"MarketMCP/internal/service/metrics"
	"MarketMCP/internal/usecase"
	xhttp "MarketMCP/pkg/http"
	xlogger "MarketMCP/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalyticsEchoHandler serves the forecasting, risk and quoting endpoints.
type AnalyticsEchoHandler struct {
	logger  *xlogger.Logger
	uc      *usecase.Analytics
	metrics *metrics.Endpoint
}

func NewAnalyticsEchoHandler(logger *xlogger.Logger, uc *usecase.Analytics, m *metrics.Endpoint) *AnalyticsEchoHandler {
	return &AnalyticsEchoHandler{logger: logger, uc: uc, metrics: m}
}

func (h *AnalyticsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/mcp")
	g.POST("/predict-price", h.PredictPrice)
	g.POST("/analyze-risk", h.AnalyzeRisk)
	g.POST("/market-maker/quote", h.Quote)
}

func (h *AnalyticsEchoHandler) PredictPrice(c echo.Context) error {
	const endpoint = "predict_price"
	defer h.observe(endpoint, time.Now())

	req := &models.PredictPriceRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		h.metrics.Fail(endpoint, "ERR_VALIDATION")
		return xhttp.BadRequestResponse(c, verr)
	}
	freq, err := req.ToForecastRequest()
	if err != nil {
		return h.fail(c, endpoint, err)
	}

	res, err := h.uc.PredictPrice(c.Request().Context(), freq)
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalyticsEchoHandler) AnalyzeRisk(c echo.Context) error {
	const endpoint = "analyze_risk"
	defer h.observe(endpoint, time.Now())

	req := &models.AnalyzeRiskRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		h.metrics.Fail(endpoint, "ERR_VALIDATION")
		return xhttp.BadRequestResponse(c, verr)
	}
	rreq, err := req.ToRiskRequest()
	if err != nil {
		return h.fail(c, endpoint, err)
	}

	res, err := h.uc.AnalyzeRisk(c.Request().Context(), rreq)
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalyticsEchoHandler) Quote(c echo.Context) error {
	const endpoint = "market_maker_quote"
	defer h.observe(endpoint, time.Now())

	req := &models.MarketMakerQuoteRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		h.metrics.Fail(endpoint, "ERR_VALIDATION")
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.uc.Quote(c.Request().Context(), req.ToQuoteRequest())
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalyticsEchoHandler) observe(endpoint string, start time.Time) {
	h.metrics.Observe(endpoint, time.Since(start).Seconds())
}

func (h *AnalyticsEchoHandler) fail(c echo.Context, endpoint string, err error) error {
	appErr := toAppError(err)
	h.metrics.Fail(endpoint, appErr.Code)
	if appErr.Status >= 500 {
		h.logger.Error(endpoint+" failed", xlogger.Error(err))
	} else {
		h.logger.Debug(endpoint+" rejected", xlogger.Error(err))
	}
	return xhttp.AppErrorResponse(c, appErr)
}
