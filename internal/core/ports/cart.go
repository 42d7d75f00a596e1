package ports

import (
	"context"
	"time"

	"github.com/soldiers/admin-gateway/internal/core/domain"
)

// CartStore holds one CartState per session. With runs fn while holding the
// cart's lock so cart mutations are serialized.
type CartStore interface {
	Open(sessionID string, st *domain.CartState) *domain.CartState
	With(sessionID string, fn func(st *domain.CartState) error) error
	Discard(sessionID string)
	// ReplaceCatalog installs c only when the cart still exists and its
	// generation equals gen. It reports whether c was installed.
	ReplaceCatalog(sessionID string, gen uint64, c domain.Catalog) bool
	// Prune drops carts idle for longer than maxIdle and returns how many.
	Prune(maxIdle time.Duration) int
}

// SubmitGuard rejects a second submission of the same cart while one is in
// flight.
type SubmitGuard interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// OpenCartInput opens the sales screen, optionally pinned to one game.
type OpenCartInput struct {
	GameID int64
}

// SubmitResult is returned after the backend recorded a sale.
type SubmitResult struct {
	Sale *domain.Sale
	Cart domain.CartSnapshot
	// CatalogStale is true when the post-sale catalog reload failed.
	CatalogStale bool
}

type CartService interface {
	Open(ctx context.Context, s *domain.Session, in OpenCartInput) (domain.CartSnapshot, error)
	View(s *domain.Session) (domain.CartSnapshot, error)
	Products(s *domain.Session, search string) ([]domain.Product, error)
	Games(s *domain.Session) ([]domain.Game, error)
	SelectGame(s *domain.Session, gameID int64) (domain.CartSnapshot, error)
	Add(s *domain.Session, productID int64) (domain.CartSnapshot, error)
	SetQuantity(s *domain.Session, productID int64, qty int) (domain.CartSnapshot, error)
	Remove(s *domain.Session, productID int64) (domain.CartSnapshot, error)
	Reload(ctx context.Context, s *domain.Session) (domain.CartSnapshot, error)
	Discard(s *domain.Session)
	Submit(ctx context.Context, s *domain.Session) (*SubmitResult, error)
}
