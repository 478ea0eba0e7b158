package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Message, "title": "validation error"})
			return
		}

		var ae *APIError
		if errors.As(err, &ae) {
			msg := ae.Message
			if msg == "" {
				msg = "catalog unavailable"
			}
			_ = c.JSON(statusFor(ae), map[string]string{"error": msg, "kind": ae.Kind.String()})
			return
		}

		if errors.Is(err, ErrMalformedResponse) {
			slog.Error("Upstream contract violation", "error", err)
			_ = c.JSON(http.StatusBadGateway, map[string]string{"error": "unexpected response from catalog"})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, map[string]string{"error": msg})
			return
		}

		slog.Error("Unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func statusFor(ae *APIError) int {
	switch ae.Kind {
	case Unauthenticated, InvalidCredentials:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
