package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/soldiers/admin-gateway/internal/core/domain"
)

// loginPath is where the dashboard sends the user after the session dies.
const loginPath = "/login"

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Tells the dashboard to return to the login screen on 401.
//   - Logs unexpected errors without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		resp := errorResponse{Error: msg}
		if code == http.StatusUnauthorized && !errors.Is(err, domain.ErrInvalidCredentials) {
			resp.Redirect = loginPath
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, validation, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrSessionInvalid), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, "session expired, please sign in again"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrReadOnlyScreen):
		return http.StatusMethodNotAllowed, err.Error()
	case errors.Is(err, domain.ErrUnknownScreen),
		errors.Is(err, domain.ErrCartNotFound),
		errors.Is(err, domain.ErrCartItemNotFound),
		errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrNoGameSelected),
		errors.Is(err, domain.ErrGamePinned),
		errors.Is(err, domain.ErrGameNotSellable):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrSubmitInProgress), domain.IsAdvisory(err):
		return http.StatusConflict, err.Error()
	}

	var be *domain.BackendError
	if errors.As(err, &be) {
		switch {
		case be.Status == http.StatusNotFound:
			return http.StatusNotFound, "resource not found"
		case be.Status >= 400 && be.Status < 500:
			// Validation and conflict answers are the user's to fix.
			return be.Status, backendMessage(be)
		default:
			log.Warn().Err(err).Str("path", c.Path()).Msg("backend failure")
			return http.StatusBadGateway, "backend unavailable"
		}
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, domain.ErrBackend):
		log.Warn().Err(err).Str("path", c.Path()).Msg("backend unreachable")
		return http.StatusBadGateway, "backend unavailable"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func backendMessage(be *domain.BackendError) string {
	if be.Message != "" {
		return be.Message
	}
	return http.StatusText(be.Status)
}
