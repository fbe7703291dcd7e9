package api

import (
	"context"
	"errors"
	"net/http"

	"MarketMCP/internal/domain/models"
	xhttp "MarketMCP/pkg/http"
)

// toAppError maps domain and upstream failures onto HTTP error codes.
func toAppError(err error) *xhttp.AppError {
	var inErr *models.InvalidInputError
	var umErr *models.UnsupportedMethodError

	switch {
	case errors.As(err, &inErr):
		return xhttp.UnprocessableError("ERR_INVALID_INPUT", inErr.Field, inErr.Error()).WithError(err)
	case errors.As(err, &umErr):
		return xhttp.UnprocessableError("ERR_UNSUPPORTED_METHOD", "method", umErr.Error()).
			WithParam("options", []string{string(models.MethodEMA), string(models.MethodLinReg)}).
			WithError(err)
	case errors.Is(err, models.ErrModelUnavailable):
		return xhttp.UnavailableError(models.ErrModelUnavailable.Error()).WithError(err)
	case errors.Is(err, models.ErrUpstream):
		return xhttp.BadGatewayError(upstreamMessage(err)).WithError(err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return xhttp.NewAppError("ERR_TIMEOUT", "", "request cancelled or timed out", http.StatusGatewayTimeout).WithError(err)
	default:
		return xhttp.InternalError("Something went wrong").WithError(err)
	}
}

func upstreamMessage(err error) string {
	var upErr *models.UpstreamError
	if errors.As(err, &upErr) && upErr.Err != nil {
		return "Gemini API error: " + upErr.Err.Error()
	}
	return "Gemini API error"
}
