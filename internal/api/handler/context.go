package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/soldiers/admin-gateway/internal/api/middleware"
	"github.com/soldiers/admin-gateway/internal/core/domain"
)

// ctxSession returns the session injected by the Session middleware. Its
// absence means the route was registered without that middleware, which the
// client sees as an expired session.
func ctxSession(c echo.Context) (*domain.Session, error) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return nil, domain.ErrSessionInvalid
	}
	return s, nil
}
