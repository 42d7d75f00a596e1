package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/soldiers/admin-gateway/internal/api/metrics"
	"github.com/soldiers/admin-gateway/internal/core/access"
	"github.com/soldiers/admin-gateway/internal/core/domain"
)

// Gate lets the request through only when the session satisfies g. It must
// run after Session.
func Gate(ev *access.Evaluator, g access.Gate) echo.MiddlewareFunc {
	label := string(g.Resource)
	if label == "" {
		label = "none"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, ok := SessionFrom(c)
			if !ok {
				return domain.ErrSessionInvalid
			}
			if !ev.Allows(s, g) {
				metrics.GateDenialsTotal.WithLabelValues(label).Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
