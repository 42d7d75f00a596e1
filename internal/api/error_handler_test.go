package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/soldiers/admin-gateway/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantCode     int
		wantRedirect string
	}{
		{"echo error", echo.NewHTTPError(http.StatusUnprocessableEntity, "name is required"), 422, ""},
		{"bad credentials", domain.ErrInvalidCredentials, 401, ""},
		{"backend 401", fmt.Errorf("list products: %w", domain.ErrSessionInvalid), 401, "/login"},
		{"forbidden", domain.ErrForbidden, 403, ""},
		{"not in cart", domain.ErrCartItemNotFound, 404, ""},
		{"empty cart", domain.ErrEmptyCart, 422, ""},
		{"no game", domain.ErrNoGameSelected, 422, ""},
		{"advisory", domain.ErrStockCeilingReached, 409, ""},
		{"submit in flight", domain.ErrSubmitInProgress, 409, ""},
		{"read only", domain.ErrReadOnlyScreen, 405, ""},
		{"backend validation", &domain.BackendError{Status: 400, Message: "price must be positive"}, 400, ""},
		{"backend missing", &domain.BackendError{Status: 404}, 404, ""},
		{"backend down", &domain.BackendError{Status: 503}, 502, ""},
		{"transport", fmt.Errorf("%w: dial tcp", domain.ErrBackend), 502, ""},
		{"unknown", errors.New("boom"), 500, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error == "" || body.Redirect != tc.wantRedirect {
				t.Fatalf("unexpected body %+v", body)
			}
		})
	}
}

func TestHTTPErrorHandler_HidesInternals(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("mongo: connection refused at 10.0.0.3"), c)

	var body errorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Error != "internal server error" {
		t.Fatalf("internal error leaked: %q", body.Error)
	}
}
