package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/soldiers/admin-gateway/internal/core/domain"
	"github.com/soldiers/admin-gateway/internal/core/ports"
)

func sale(id, gameID int64, gameName string, items ...domain.SaleItem) domain.Sale {
	return domain.Sale{ID: id, GameEvent: &domain.Game{ID: gameID, Name: gameName}, Items: items}
}

func item(qty int, price string) domain.SaleItem {
	return domain.SaleItem{Quantity: qty, Price: decimal.RequireFromString(price)}
}

func TestReportService_SalesHistory(t *testing.T) {
	b := &stubBackend{sales: []domain.Sale{
		sale(1, 9, "Soldiers x Tigers", item(2, "10.00"), item(3, "5.50")),
		sale(2, 9, "Soldiers x Tigers", item(1, "20.00")),
		sale(3, 11, "Soldiers x Eagles", item(4, "2.25")),
	}}
	svc := NewReportService(b, zerolog.Nop())

	all, err := svc.SalesHistory(context.Background(), testSession(), ports.SalesHistoryInput{})
	if err != nil {
		t.Fatalf("SalesHistory returned error: %v", err)
	}
	if all.Total != 3 || all.Revenue != "65.50" || all.Units != 10 {
		t.Fatalf("unexpected totals %+v", all)
	}

	byGame, _ := svc.SalesHistory(context.Background(), testSession(), ports.SalesHistoryInput{
		Filter: domain.SaleFilter{GameID: 9},
		Limit:  1,
	})
	if byGame.Total != 2 || len(byGame.Items) != 1 || byGame.TotalPages != 2 {
		t.Fatalf("unexpected page %+v", byGame)
	}
	if byGame.Revenue != "56.50" {
		t.Fatalf("revenue must cover the filtered set, got %s", byGame.Revenue)
	}

	search, _ := svc.SalesHistory(context.Background(), testSession(), ports.SalesHistoryInput{
		Filter: domain.SaleFilter{Search: "eagles"},
	})
	if search.Total != 1 || search.Items[0].ID != 3 {
		t.Fatalf("unexpected search result %+v", search)
	}
}

func TestReportService_Dashboard(t *testing.T) {
	b := &stubBackend{responses: map[string]string{
		"GET /dashboard/overview": `{"totalSales": 12}`,
	}}
	svc := NewReportService(b, zerolog.Nop())

	got, err := svc.Dashboard(context.Background(), testSession(), "overview")
	if err != nil {
		t.Fatalf("Dashboard returned error: %v", err)
	}
	raw, ok := got.(json.RawMessage)
	if !ok || string(raw) != `{"totalSales": 12}` {
		t.Fatalf("widget not relayed verbatim: %s", raw)
	}

	if _, err := svc.Dashboard(context.Background(), testSession(), "secrets"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown widget, got %v", err)
	}
	if b.count("GET /dashboard/secrets") != 0 {
		t.Fatalf("unknown widget must not be forwarded")
	}
}

func TestReportService_BudgetSummary(t *testing.T) {
	b := &stubBackend{responses: map[string]string{
		"GET /budgets/income/total":    `1500.75`,
		"GET /budgets/expenses/total":  `500.25`,
		"GET /budgets/balance/current": `1000.50`,
	}}
	svc := NewReportService(b, zerolog.Nop())

	sum, err := svc.BudgetSummary(context.Background(), testSession())
	if err != nil {
		t.Fatalf("BudgetSummary returned error: %v", err)
	}
	if !sum.Income.Equal(decimal.RequireFromString("1500.75")) ||
		!sum.Expense.Equal(decimal.RequireFromString("500.25")) ||
		!sum.Balance.Equal(decimal.RequireFromString("1000.50")) {
		t.Fatalf("unexpected summary %+v", sum)
	}
}

func TestReportService_TripBudget(t *testing.T) {
	b := &stubBackend{responses: map[string]string{
		"GET /trip-budgets/trip/4": `[
			{"id": 1, "description": "Rifa", "amount": 300, "type": "INCOME"},
			{"id": 2, "description": "Ônibus", "amount": 120.40, "type": "EXPENSE"}
		]`,
	}}
	svc := NewReportService(b, zerolog.Nop())

	tb, err := svc.TripBudget(context.Background(), testSession(), 4)
	if err != nil {
		t.Fatalf("TripBudget returned error: %v", err)
	}
	if len(tb.Entries) != 2 || !tb.Summary.Balance.Equal(decimal.RequireFromString("179.60")) {
		t.Fatalf("unexpected trip budget %+v", tb)
	}
}

func TestReportService_LatestNewsIsPublic(t *testing.T) {
	b := &stubBackend{responses: map[string]string{"GET /news/latest": `[{"id": 1, "title": "Vitória"}]`}}
	svc := NewReportService(b, zerolog.Nop())

	news, err := svc.LatestNews(context.Background())
	if err != nil || len(news) != 1 {
		t.Fatalf("LatestNews = %v, %v", news, err)
	}
	if b.tokens[0] != "" {
		t.Fatalf("latest news must be fetched without a token")
	}
}
