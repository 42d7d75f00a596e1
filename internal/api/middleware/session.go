package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/soldiers/admin-gateway/internal/core/domain"
	"github.com/soldiers/admin-gateway/internal/core/ports"
)

const sessionKey = "session"

// CartDiscarder drops a session's cart when the session ends.
type CartDiscarder interface {
	Discard(s *domain.Session)
}

// Session validates the gateway token, loads the stored session and injects
// it into the context. When a downstream call reports the backend token as
// invalid, the stored session and its cart are dropped so the next request
// starts from the login screen.
func Session(auth ports.AuthService, carts CartDiscarder, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			sid, err := auth.SessionID(parts[1])
			if err != nil {
				return domain.ErrSessionInvalid
			}

			ctx := c.Request().Context()
			s, err := auth.Restore(ctx, sid)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					return domain.ErrSessionInvalid
				}
				return err
			}
			SetSession(c, s)

			err = next(c)
			if errors.Is(err, domain.ErrSessionInvalid) {
				carts.Discard(s)
				if serr := auth.SignOut(context.WithoutCancel(ctx), s.ID); serr != nil {
					log.Warn().Err(serr).Str("session_id", s.ID).Msg("failed to drop rejected session")
				}
				log.Info().Str("session_id", s.ID).Int64("user_id", s.User.ID).Msg("backend rejected session token, session cleared")
			}
			return err
		}
	}
}

// SetSession injects s into the request context.
func SetSession(c echo.Context, s *domain.Session) {
	c.Set(sessionKey, s)
}

// SessionFrom returns the session injected by Session.
func SessionFrom(c echo.Context) (*domain.Session, bool) {
	s, ok := c.Get(sessionKey).(*domain.Session)
	return s, ok && s != nil
}
