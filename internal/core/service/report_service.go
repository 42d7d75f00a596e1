package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/soldiers/admin-gateway/internal/core/domain"
	"github.com/soldiers/admin-gateway/internal/core/ports"
)

// DashboardWidgets lists the backend dashboard aggregates the gateway relays.
var DashboardWidgets = []string{"overview", "top-products", "sales-by-seller", "revenue-by-game", "stock-status"}

// ReportService serves read-only aggregates. Balances and totals computed by
// the backend are relayed as-is.
type ReportService struct {
	backend ports.Backend
	logger  zerolog.Logger
}

func NewReportService(backend ports.Backend, logger zerolog.Logger) *ReportService {
	return &ReportService{backend: backend, logger: logger}
}

// SalesHistory filters the backend's sales and sums revenue and units over
// the whole filtered set, not just the returned page.
func (s *ReportService) SalesHistory(ctx context.Context, sess *domain.Session, in ports.SalesHistoryInput) (*ports.SalesHistory, error) {
	sales, err := s.backend.ListSales(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	filtered := make([]domain.Sale, 0, len(sales))
	revenue := decimal.Zero
	units := 0
	for _, sale := range sales {
		if !in.Filter.Match(sale) {
			continue
		}
		filtered = append(filtered, sale)
		revenue = revenue.Add(sale.Total())
		units += sale.Units()
	}

	page, limit := normalizePage(in.Page, in.Limit)
	items, totalPages := paginate(filtered, page, limit)
	return &ports.SalesHistory{
		Items:      items,
		Total:      len(filtered),
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		Revenue:    revenue.StringFixed(2),
		Units:      units,
	}, nil
}

// Dashboard relays one backend dashboard widget untouched.
func (s *ReportService) Dashboard(ctx context.Context, sess *domain.Session, widget string) (any, error) {
	known := false
	for _, w := range DashboardWidgets {
		if w == widget {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("dashboard widget %q: %w", widget, domain.ErrNotFound)
	}

	var raw json.RawMessage
	if err := s.backend.Do(ctx, sess.Token, http.MethodGet, "/dashboard/"+widget, nil, &raw); err != nil {
		return nil, fmt.Errorf("dashboard %s: %w", widget, err)
	}
	return raw, nil
}

// BudgetSummary fetches the club's income, expense and current balance.
func (s *ReportService) BudgetSummary(ctx context.Context, sess *domain.Session) (*domain.LedgerSummary, error) {
	var sum domain.LedgerSummary
	g, gctx := errgroup.WithContext(ctx)
	fetch := func(path string, dst *decimal.Decimal) func() error {
		return func() error {
			if err := s.backend.Do(gctx, sess.Token, http.MethodGet, path, nil, dst); err != nil {
				return fmt.Errorf("budget %s: %w", path, err)
			}
			return nil
		}
	}
	g.Go(fetch("/budgets/income/total", &sum.Income))
	g.Go(fetch("/budgets/expenses/total", &sum.Expense))
	g.Go(fetch("/budgets/balance/current", &sum.Balance))
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &sum, nil
}

func (s *ReportService) BudgetExport(ctx context.Context, sess *domain.Session) (*ports.Download, error) {
	d, err := s.backend.Download(ctx, sess.Token, "/budgets/export/excel")
	if err != nil {
		return nil, fmt.Errorf("budget export: %w", err)
	}
	return d, nil
}

// TripBudget lists a trip's budget lines and summarizes them locally.
func (s *ReportService) TripBudget(ctx context.Context, sess *domain.Session, tripID int64) (*ports.TripBudget, error) {
	var entries []domain.LedgerEntry
	path := fmt.Sprintf("/trip-budgets/trip/%d", tripID)
	if err := s.backend.Do(ctx, sess.Token, http.MethodGet, path, nil, &entries); err != nil {
		return nil, fmt.Errorf("trip %d budget: %w", tripID, err)
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	return &ports.TripBudget{TripID: tripID, Entries: entries, Summary: domain.Summarize(entries)}, nil
}

// LatestNews is public and sent without a bearer token.
func (s *ReportService) LatestNews(ctx context.Context) ([]domain.Record, error) {
	var news []domain.Record
	if err := s.backend.Do(ctx, "", http.MethodGet, "/news/latest", nil, &news); err != nil {
		return nil, fmt.Errorf("latest news: %w", err)
	}
	if news == nil {
		news = []domain.Record{}
	}
	return news, nil
}
