package api

import (
	xhttp "MarketMCP/pkg/http"

	"github.com/labstack/echo/v4"
)

const serviceName = "MCP Server"

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/api/v1/mcp/health", h.Health)
}

func (h *HealthHandler) Root(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{
		"status":  "ok",
		"service": serviceName,
		"health":  "/api/v1/mcp/health",
	})
}

func (h *HealthHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{
		"status":  "ok",
		"service": serviceName,
	})
}
