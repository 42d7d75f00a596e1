package ports

import (
	"context"

	"github.com/soldiers/admin-gateway/internal/core/domain"
)

// SignInResult is returned by a successful sign-in.
type SignInResult struct {
	Token   string // gateway token carrying the session id
	Session *domain.Session
}

type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
	Restore(ctx context.Context, sessionID string) (*domain.Session, error)
	SignOut(ctx context.Context, sessionID string) error
	// SessionID validates a gateway token and returns the session id it carries.
	SessionID(token string) (string, error)
}
