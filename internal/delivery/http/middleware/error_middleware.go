package middleware

import (
	"log/slog"
	"net/http"

	deliverycontext "novasalud/internal/delivery/context"
	domainerrors "novasalud/internal/domain/errors"
	"novasalud/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		details := appErr.Details()
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.log(c).ErrorContext(c.Request().Context(), "Request failed", slog.Any("error", err))
			details = ""
		}
		m.write(c, appErr.HTTPCode(), appErr.Message(), appErr.ErrorCode(), details)

		return
	}

	if httpErr, ok := errors.AsType[*echo.HTTPError](err); ok {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
		m.write(c, httpErr.Code, message, "HTTP_ERROR", "")

		return
	}

	m.log(c).ErrorContext(c.Request().Context(), "Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	m.write(c, http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR", "")
}

func (m *ErrorMiddleware) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
}

func (m *ErrorMiddleware) write(c echo.Context, code int, message, errorCode, details string) {
	body := domainerrors.Response{
		Success: false,
		Code:    code,
		Message: message,
		Error: &domainerrors.ErrorInfo{
			Code:    errorCode,
			Details: details,
		},
		RequestID: deliverycontext.GetRequestID(c),
	}

	var err error
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		m.log(c).ErrorContext(c.Request().Context(), "Failed to write error response", slog.Any("error", err))
	}
}
