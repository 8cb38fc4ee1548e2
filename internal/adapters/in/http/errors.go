package http

import (
	"errors"
	"net/http"

	"orderflow/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

const internalErrorMessage = "internal server error"

func statusFor(err error) int {
	var httpErr *echo.HTTPError
	var validationErrs validator.ValidationErrors

	switch {
	case errs.IsValidation(err), errors.As(err, &validationErrs):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthorized), errors.Is(err, errs.ErrInvalidPin):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrPinLocked):
		return http.StatusLocked
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrAlreadyAssigned),
		errors.Is(err, errs.ErrCapacityExceeded),
		errors.Is(err, errs.ErrRiderOffline),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.As(err, &httpErr):
		return httpErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an Error body. Persistence and other unclassified
// failures are logged and answered with a generic message.
func (s *Server) fail(c echo.Context, err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"route", c.Path(),
			"error", err,
		)
		return c.JSON(code, Error{Code: code, Message: internalErrorMessage})
	}

	message := err.Error()
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if m, ok := httpErr.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}
	return c.JSON(code, Error{Code: code, Message: message})
}

// handleError replaces echo's default error handler so unmatched routes and
// recovered panics share the Error body.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if writeErr := s.fail(c, err); writeErr != nil {
		s.logger.ErrorContext(c.Request().Context(), "write error response", "error", writeErr)
	}
}
