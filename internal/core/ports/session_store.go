package ports

import (
	"context"
	"time"

	"github.com/soldiers/admin-gateway/internal/core/domain"
)

// SessionStore persists sessions. Sessions are written whole and never
// patched. Get returns domain.ErrSessionNotFound for unknown or expired ids.
type SessionStore interface {
	Save(ctx context.Context, s *domain.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
