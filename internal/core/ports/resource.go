package ports

import (
	"context"
	"time"

	"github.com/soldiers/admin-gateway/internal/core/domain"
)

// ListCache keeps the last list fetched for a screen, per session. A miss is
// reported as ok == false, never as an error.
type ListCache interface {
	Get(ctx context.Context, sessionID, screen string) (records []domain.Record, ok bool, err error)
	Set(ctx context.Context, sessionID, screen string, records []domain.Record, ttl time.Duration) error
	Invalidate(ctx context.Context, sessionID string, screens ...string) error
}

// ListInput carries the query parameters of a screen's list endpoint.
type ListInput struct {
	Search  string            // substring over the screen's search fields
	Filters map[string]string // exact, case-insensitive match on filter fields
	Page    int               // 1-based
	Limit   int               // capped at 100 by the service
}

// ListResult is one page of a screen's list.
type ListResult struct {
	Items      []domain.Record
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// MutationResult is the answer to a create, update or delete: the backend's
// echo of the record plus the refetched first page.
type MutationResult struct {
	Record domain.Record
	List   *ListResult
}

// SalesHistoryInput narrows the sales history.
type SalesHistoryInput struct {
	Filter domain.SaleFilter
	Page   int
	Limit  int
}

// SalesHistory is one page of sales plus aggregate totals over the filtered set.
type SalesHistory struct {
	Items      []domain.Sale
	Total      int
	Page       int
	Limit      int
	TotalPages int
	Revenue    string
	Units      int
}

type ResourceService interface {
	List(ctx context.Context, s *domain.Session, screen domain.Screen, in ListInput) (*ListResult, error)
	Get(ctx context.Context, s *domain.Session, screen domain.Screen, id string) (domain.Record, error)
	Create(ctx context.Context, s *domain.Session, screen domain.Screen, body any) (*MutationResult, error)
	Update(ctx context.Context, s *domain.Session, screen domain.Screen, id string, body any) (*MutationResult, error)
	Delete(ctx context.Context, s *domain.Session, screen domain.Screen, id string) (*MutationResult, error)
}

// ReportService serves the read-only aggregate views.
type ReportService interface {
	SalesHistory(ctx context.Context, s *domain.Session, in SalesHistoryInput) (*SalesHistory, error)
	Dashboard(ctx context.Context, s *domain.Session, widget string) (any, error)
	BudgetSummary(ctx context.Context, s *domain.Session) (*domain.LedgerSummary, error)
	BudgetExport(ctx context.Context, s *domain.Session) (*Download, error)
	TripBudget(ctx context.Context, s *domain.Session, tripID int64) (*TripBudget, error)
	LatestNews(ctx context.Context) ([]domain.Record, error)
}

// TripBudget is a trip's budget lines and their summary.
type TripBudget struct {
	TripID  int64                `json:"tripId"`
	Entries []domain.LedgerEntry `json:"entries"`
	Summary domain.LedgerSummary `json:"summary"`
}
