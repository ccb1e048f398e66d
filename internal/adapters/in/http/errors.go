package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"lastmile/internal/core/domain/model/dispatch"
	"lastmile/internal/pkg/errs"
)

var (
	errLatIsRequired = errs.NewValueIsRequiredError("lat")
	errLngIsRequired = errs.NewValueIsRequiredError("lng")
)

// statusCode maps core errors onto HTTP statuses.
func statusCode(err error) int {
	switch {
	case errors.Is(err, dispatch.ErrNoCouriersAvailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrStateIsInvalid), errors.Is(err, errs.ErrObjectIsUnavailable):
		return http.StatusConflict
	case errs.IsInvalidInput(err):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an Error body. Server errors are logged and their
// details hidden from the client.
func (s *Server) fail(c echo.Context, err error, action string) error {
	code := statusCode(err)
	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"action", action,
			"path", c.Path(),
			"error", err)
		return c.JSON(code, Error{Code: code, Message: "Failed to " + action})
	}

	return c.JSON(code, Error{Code: code, Message: err.Error()})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
