package http

import (
	"errors"
	"log/slog"
	"net/http"

	"jewelryorders/internal/core/application/usecases/commands"
	"jewelryorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusOf maps core errors to HTTP status codes. Anything unrecognised is
// an internal error.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrStaleWrite):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrItemsAreRequired),
		errors.Is(err, commands.ErrNothingToEdit),
		errors.Is(err, commands.ErrItemsEditedTwoWays),
		errors.Is(err, commands.ErrArrivedPiecesAreRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// badRequest marks err as a client error regardless of its type. Used for
// failures while decoding input.
func badRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
}

// ErrorHandler renders every error as Error. Internal errors are logged and
// their details hidden from the client.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := statusOf(err)
		message := err.Error()
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		}
		if code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method, "path", c.Path(), "error", err)
			message = http.StatusText(code)
		}

		if err = c.JSON(code, Error{Code: code, Message: message}); err != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", err)
		}
	}
}
