package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SaleRequest is the body of POST /sales.
type SaleRequest struct {
	GameEventID int64             `json:"gameEventId"`
	UserID      int64             `json:"userId"`
	Items       []SaleItemRequest `json:"items"`
}

type SaleItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// Sale is a recorded transaction as the backend reports it.
type Sale struct {
	ID          int64           `json:"id"`
	Seller      SaleSeller      `json:"seller"`
	GameEvent   *Game           `json:"gameEvent,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Items       []SaleItem      `json:"items"`
	CreatedAt   string          `json:"criadoEm,omitempty"`
}

type SaleSeller struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	ProfileName string `json:"profileName,omitempty"`
}

type SaleItem struct {
	ID       int64           `json:"id"`
	Product  Product         `json:"product"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Total sums price × quantity over the sale's items.
func (s Sale) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Units is the number of items sold.
func (s Sale) Units() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}

// SaleFilter narrows the sales history. Zero values match everything.
type SaleFilter struct {
	GameID int64
	Search string // game name or sale id substring
}

func (f SaleFilter) Match(s Sale) bool {
	if f.GameID != 0 && (s.GameEvent == nil || s.GameEvent.ID != f.GameID) {
		return false
	}
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	if needle == "" {
		return true
	}
	if s.GameEvent != nil && strings.Contains(strings.ToLower(s.GameEvent.Name), needle) {
		return true
	}
	return strings.Contains(strconv.FormatInt(s.ID, 10), needle)
}

// Receipt is the gateway's own audit record of a submitted sale.
type Receipt struct {
	ID          string
	SaleID      int64
	GameID      int64
	SellerID    int64
	SellerEmail string
	Items       []ReceiptItem
	Total       decimal.Decimal
	SubmittedAt time.Time
}

type ReceiptItem struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}
