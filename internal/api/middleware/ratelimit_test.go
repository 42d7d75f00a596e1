package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Minute), 2)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	e := echo.New()
	h := rl.Middleware()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	hit := func(ip string) error {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		return h(e.NewContext(req, httptest.NewRecorder()))
	}

	for i := 0; i < 2; i++ {
		if err := hit("10.0.0.1"); err != nil {
			t.Fatalf("attempt %d rejected: %v", i, err)
		}
	}
	var he *echo.HTTPError
	if err := hit("10.0.0.1"); !errors.As(err, &he) || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
	if err := hit("10.0.0.2"); err != nil {
		t.Fatalf("other client must not be throttled: %v", err)
	}

	now = now.Add(time.Minute)
	if err := hit("10.0.0.1"); err != nil {
		t.Fatalf("token should refill: %v", err)
	}

	now = now.Add(time.Hour)
	if n := rl.Sweep(30 * time.Minute); n != 2 {
		t.Fatalf("expected both clients swept, got %d", n)
	}
}
