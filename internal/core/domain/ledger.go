package domain

import "github.com/shopspring/decimal"

// EntryType classifies a budget line.
type EntryType string

const (
	EntryIncome  EntryType = "INCOME"
	EntryExpense EntryType = "EXPENSE"
)

// LedgerEntry is a budget or trip-budget line.
type LedgerEntry struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        EntryType       `json:"type"`
	Notes       string          `json:"notes,omitempty"`
}

// LedgerSummary is income, expense and their difference.
type LedgerSummary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

func Summarize(entries []LedgerEntry) LedgerSummary {
	sum := LedgerSummary{Income: decimal.Zero, Expense: decimal.Zero}
	for _, e := range entries {
		switch e.Type {
		case EntryIncome:
			sum.Income = sum.Income.Add(e.Amount)
		case EntryExpense:
			sum.Expense = sum.Expense.Add(e.Amount)
		}
	}
	sum.Balance = sum.Income.Sub(sum.Expense)
	return sum
}
