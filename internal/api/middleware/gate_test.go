package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/soldiers/admin-gateway/internal/core/access"
	"github.com/soldiers/admin-gateway/internal/core/domain"
)

func seller() *domain.Session {
	return &domain.Session{
		ID:   "s1",
		User: domain.User{ID: 2, Email: "vendas@club.com"},
		Auth: domain.ProfileBased{
			Profile:     domain.Profile{Name: "SELLER"},
			Permissions: domain.NewPermissionSet("SALES:EDIT", "PRODUCTS:VIEW"),
		},
	}
}

func TestGate(t *testing.T) {
	ev := access.NewEvaluator("admin@soldiers.com")

	tests := []struct {
		name    string
		session *domain.Session
		gate    access.Gate
		wantErr error
	}{
		{"view allowed", seller(), access.Gate{Resource: domain.ResourceProducts}, nil},
		{"edit implies view", seller(), access.Gate{Resource: domain.ResourceSales}, nil},
		{"edit denied", seller(), access.Gate{Resource: domain.ResourceProducts, Action: domain.ActionEdit}, domain.ErrForbidden},
		{"admin only", seller(), access.Gate{Resource: domain.ResourceUsers, RequireAdmin: true}, domain.ErrForbidden},
		{"no resource", seller(), access.Gate{}, nil},
		{"no session", nil, access.Gate{}, domain.ErrSessionInvalid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			if tc.session != nil {
				SetSession(c, tc.session)
			}

			called := false
			err := Gate(ev, tc.gate)(func(echo.Context) error {
				called = true
				return nil
			})(c)

			if tc.wantErr == nil {
				if err != nil || !called {
					t.Fatalf("expected pass, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) || called {
				t.Fatalf("expected %v, got %v (called=%v)", tc.wantErr, err, called)
			}
		})
	}
}
