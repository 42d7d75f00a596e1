package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/soldiers/admin-gateway/internal/api/metrics"
	"github.com/soldiers/admin-gateway/internal/core/domain"
	"github.com/soldiers/admin-gateway/internal/core/ports"
)

const sessionClaim = "sid"

// AuthService signs users in against the backend and keeps their sessions.
type AuthService struct {
	backend    ports.Backend
	sessions   ports.SessionStore
	jwtSecret  string
	sessionTTL time.Duration
	logger     zerolog.Logger
}

func NewAuthService(backend ports.Backend, sessions ports.SessionStore, jwtSecret string, sessionTTL time.Duration, logger zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		backend:    backend,
		sessions:   sessions,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// SignIn replaces any prior state with a fresh session. Only a SUCCESS
// status from the backend opens one.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*ports.SignInResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	res, err := s.backend.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrSessionInvalid) {
			metrics.SignInsTotal.WithLabelValues("rejected").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		metrics.SignInsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if res.Status != ports.LoginStatusSuccess {
		metrics.SignInsTotal.WithLabelValues("rejected").Inc()
		s.logger.Info().Str("email", email).Str("status", res.Status).Msg("sign in rejected")
		return nil, domain.ErrInvalidCredentials
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		User:      res.User,
		Token:     res.Token,
		Auth:      s.authModel(ctx, res),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.sessions.Save(ctx, session, s.sessionTTL); err != nil {
		metrics.SignInsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("save session: %w", err)
	}

	token, err := s.generateToken(session.ID)
	if err != nil {
		return nil, err
	}

	metrics.SignInsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("session_id", session.ID).Int64("user_id", session.User.ID).Msg("signed in")

	return &ports.SignInResult{Token: token, Session: session}, nil
}

// authModel picks the session variant. A profile without an embedded
// permission list is hydrated from GET /profiles/:id; when that fails the
// session gets an empty set rather than failing sign-in.
func (s *AuthService) authModel(ctx context.Context, res *ports.LoginResult) domain.AuthModel {
	if res.Profile == nil {
		role := res.Role
		if role == "" {
			role = domain.RoleNormal
		}
		return domain.LegacyRole{Role: role}
	}

	perms := res.Permissions
	profile := *res.Profile
	if perms == nil {
		detail, err := s.backend.GetProfile(ctx, res.Token, profile.ID)
		if err != nil {
			s.logger.Warn().Err(err).Int64("profile_id", profile.ID).Msg("profile hydration failed, continuing without permissions")
		} else {
			perms = detail.Permissions
			if profile.Description == "" {
				profile.Description = detail.Profile.Description
			}
		}
	}

	return domain.ProfileBased{Profile: profile, Permissions: domain.NewPermissionSet(perms...)}
}

func (s *AuthService) Restore(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}
	return s.sessions.Get(ctx, sessionID)
}

func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	s.logger.Info().Str("session_id", sessionID).Msg("signed out")
	return nil
}

func (s *AuthService) SessionID(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrSessionInvalid
	}

	sid, _ := claims[sessionClaim].(string)
	if sid == "" {
		return "", domain.ErrSessionInvalid
	}
	return sid, nil
}

func (s *AuthService) generateToken(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		sessionClaim: sessionID,
		"exp":        time.Now().Add(s.sessionTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
