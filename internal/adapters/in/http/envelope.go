package http

import (
	"errors"
	"log/slog"
	"net/http"

	"warehouse/internal/auth"
	"warehouse/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	kindOK           = "ok"
	kindUnauthorized = "unauthorized"
)

// Envelope wraps every JSON response. Kind is stable across releases and
// is what clients branch on; Message is for humans.
type Envelope struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Envelope{
		Code:    status,
		Kind:    kindOK,
		Message: message,
		Data:    data,
	})
}

func statusForKind(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindInvalidState, errs.KindConflict:
		return http.StatusConflict
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func kindForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return kindUnauthorized
	case http.StatusNotFound:
		return errs.KindNotFound.String()
	case http.StatusConflict:
		return errs.KindConflict.String()
	case http.StatusForbidden:
		return errs.KindForbidden.String()
	case http.StatusBadRequest, http.StatusMethodNotAllowed, http.StatusUnsupportedMediaType:
		return errs.KindValidation.String()
	default:
		return errs.KindInternal.String()
	}
}

// errorHandler renders every error returned by a handler or middleware as
// an Envelope. Internal errors are logged and their text is not exposed.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		env := envelopeForError(err)
		if env.Code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(env.Code)
		} else {
			writeErr = c.JSON(env.Code, env)
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", writeErr)
		}
	}
}

func envelopeForError(err error) Envelope {
	var httpErr *echo.HTTPError
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		return Envelope{Code: http.StatusUnauthorized, Kind: kindUnauthorized, Message: "authentication required"}
	case errors.As(err, &httpErr):
		message := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
		return Envelope{Code: httpErr.Code, Kind: kindForStatus(httpErr.Code), Message: message}
	}

	kind := errs.KindOf(err)
	status := statusForKind(kind)
	message := err.Error()
	if kind == errs.KindInternal {
		message = "internal server error"
	}
	return Envelope{Code: status, Kind: kind.String(), Message: message}
}
