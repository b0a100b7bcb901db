package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/concertshift/timesheet/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (router 404/405, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: ve.Fields}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, errorResponse{Error: "unauthorized"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "forbidden"}

	case errors.Is(err, domain.ErrTimeEntryNotFound),
		errors.Is(err, domain.ErrConcertNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: err.Error()}

	case errors.Is(err, domain.ErrInvalidShiftType):
		return http.StatusBadRequest, fieldError("shiftType", "must be one of STANDARD, SUNDAY, EMERGENCY, OVERNIGHT")
	case errors.Is(err, domain.ErrInvalidInterval):
		return http.StatusUnprocessableEntity, fieldError("clockOut", err.Error())
	case errors.Is(err, domain.ErrShiftTooLong):
		return http.StatusUnprocessableEntity, fieldError("clockOut", err.Error())
	case errors.Is(err, domain.ErrClockInInFuture):
		return http.StatusUnprocessableEntity, fieldError("clockIn", err.Error())
	case errors.Is(err, domain.ErrConcertInactive):
		return http.StatusUnprocessableEntity, errorResponse{Error: "concert is not active"}

	case errors.Is(err, domain.ErrActiveShiftExists),
		errors.Is(err, domain.ErrEntryAlreadyClosed),
		errors.Is(err, domain.ErrEntryModified),
		errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

func fieldError(field, message string) errorResponse {
	return errorResponse{
		Error:  message,
		Fields: []domain.FieldError{{Field: field, Message: message}},
	}
}
