package ports

import (
	"context"
	"io"

	"github.com/soldiers/admin-gateway/internal/core/domain"
)

// LoginStatusSuccess is the only login status that opens a session.
const LoginStatusSuccess = "SUCCESS"

// LoginResult is the backend's answer to POST /auth/login.
type LoginResult struct {
	Status      string
	Token       string
	User        domain.User
	Role        domain.Role     // legacy model, empty when the user has a profile
	Profile     *domain.Profile // nil for legacy users
	Permissions []string        // nil when the backend did not embed them
}

// ProfileDetail is a profile with its active permissions rendered as
// "RESOURCE:ACTION".
type ProfileDetail struct {
	Profile     domain.Profile
	Permissions []string
}

// Download is a streamed backend response such as a spreadsheet export.
type Download struct {
	Body          io.ReadCloser
	ContentType   string
	Disposition   string
	ContentLength int64
}

// Backend is the club REST backend. token is the session's bearer token and
// may be empty. A 401 answer is reported as domain.ErrSessionInvalid.
type Backend interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	GetProfile(ctx context.Context, token string, id int64) (*ProfileDetail, error)

	ListProducts(ctx context.Context, token string) ([]domain.Product, error)
	ListGames(ctx context.Context, token string) ([]domain.Game, error)
	CreateSale(ctx context.Context, token string, req domain.SaleRequest) (*domain.Sale, error)
	ListSales(ctx context.Context, token string) ([]domain.Sale, error)

	// Do sends body as JSON (when non-nil) and decodes the answer into out
	// (when non-nil).
	Do(ctx context.Context, token, method, path string, body, out any) error
	Download(ctx context.Context, token, path string) (*Download, error)
}
