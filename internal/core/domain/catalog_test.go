package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestCatalog_Available(t *testing.T) {
	c := Catalog{Products: []Product{
		{ID: 1, Name: "Camisa", Stock: 2},
		{ID: 2, Name: "boné", Stock: 1},
		{ID: 3, Name: "Água", Stock: 0},
		{ID: 4, Name: "Caneca", Stock: 5},
	}}

	var names []string
	for _, p := range c.Available("") {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"boné", "Camisa", "Caneca"}, names); diff != "" {
		t.Fatalf("available mismatch (-want +got):\n%s", diff)
	}

	names = names[:0]
	for _, p := range c.Available("CA") {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"Camisa", "Caneca"}, names); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_SellableGames(t *testing.T) {
	c := Catalog{Games: []Game{
		{ID: 1, Status: GameScheduled},
		{ID: 2, Status: GameFinished},
		{ID: 3, Status: GameInProgress},
		{ID: 4, Status: GameCancelled},
	}}
	var ids []int64
	for _, g := range c.SellableGames() {
		ids = append(ids, g.ID)
	}
	if diff := cmp.Diff([]int64{1, 3}, ids); diff != "" {
		t.Fatalf("sellable mismatch (-want +got):\n%s", diff)
	}
}

func TestSale_TotalAndFilter(t *testing.T) {
	s := Sale{
		ID:        42,
		GameEvent: &Game{ID: 9, Name: "Soldiers x Tigers"},
		Items: []SaleItem{
			{Quantity: 2, Price: decimal.RequireFromString("10.00")},
			{Quantity: 3, Price: decimal.RequireFromString("5.50")},
		},
	}
	if !s.Total().Equal(decimal.RequireFromString("36.5")) {
		t.Fatalf("sale total = %s", s.Total())
	}
	if s.Units() != 5 {
		t.Fatalf("units = %d", s.Units())
	}

	cases := []struct {
		f    SaleFilter
		want bool
	}{
		{SaleFilter{}, true},
		{SaleFilter{GameID: 9}, true},
		{SaleFilter{GameID: 8}, false},
		{SaleFilter{Search: "tigers"}, true},
		{SaleFilter{Search: "42"}, true},
		{SaleFilter{Search: "eagles"}, false},
	}
	for _, tc := range cases {
		if got := tc.f.Match(s); got != tc.want {
			t.Fatalf("Match(%+v) = %v, want %v", tc.f, got, tc.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	sum := Summarize([]LedgerEntry{
		{Type: EntryIncome, Amount: decimal.RequireFromString("100.00")},
		{Type: EntryExpense, Amount: decimal.RequireFromString("30.25")},
		{Type: EntryIncome, Amount: decimal.RequireFromString("0.25")},
	})
	if !sum.Balance.Equal(decimal.RequireFromString("70.00")) {
		t.Fatalf("balance = %s", sum.Balance)
	}
	if !sum.Income.Equal(decimal.RequireFromString("100.25")) || !sum.Expense.Equal(decimal.RequireFromString("30.25")) {
		t.Fatalf("unexpected summary %+v", sum)
	}
}

func TestRecordMatches(t *testing.T) {
	r := Record{"name": "Camisa Oficial", "status": "ACTIVE", "number": 10}
	if !r.Matches([]string{"name"}, "oficial") {
		t.Fatalf("expected name match")
	}
	if !r.Matches([]string{"number"}, "10") {
		t.Fatalf("expected numeric field match")
	}
	if r.Matches([]string{"name"}, "boné") {
		t.Fatalf("unexpected match")
	}
	if !r.FieldEquals("status", "active") {
		t.Fatalf("expected case-insensitive equality")
	}
}

func TestPermissionSetJSON(t *testing.T) {
	set := NewPermissionSet("SALES:EDIT", "NEWS:VIEW", " ")
	data, err := set.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["NEWS:VIEW","SALES:EDIT"]` {
		t.Fatalf("unexpected json %s", data)
	}

	var back PermissionSet
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Has(ResourceSales, ActionEdit) || back.Has(ResourceSales, ActionView) {
		t.Fatalf("unexpected set %v", back.List())
	}
}
