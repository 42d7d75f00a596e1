package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one line of a pending sale.
type CartItem struct {
	Product  Product
	Quantity int
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the unsaved selection for one pending sale. Items keep insertion
// order, product ids are unique and every quantity is in [1, stock].
type Cart struct {
	items []CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) find(productID int64) int {
	for i, it := range c.items {
		if it.Product.ID == productID {
			return i
		}
	}
	return -1
}

// Add puts one more unit of p in the cart. p is the current catalog entry
// and replaces the line's product.
func (c *Cart) Add(p Product) error {
	if i := c.find(p.ID); i >= 0 {
		c.items[i].Product = p
		if c.items[i].Quantity >= p.Stock {
			return ErrStockCeilingReached
		}
		c.items[i].Quantity++
		return nil
	}
	if p.Stock <= 0 {
		return ErrOutOfStock
	}
	c.items = append(c.items, CartItem{Product: p, Quantity: 1})
	return nil
}

// SetQuantity sets the quantity of p's line exactly, bounded by p's stock.
// Zero or less removes the line.
func (c *Cart) SetQuantity(p Product, qty int) error {
	i := c.find(p.ID)
	if qty <= 0 {
		c.Remove(p.ID)
		return nil
	}
	if i < 0 {
		return ErrCartItemNotFound
	}
	c.items[i].Product = p
	if qty > p.Stock {
		return ErrExceedsStock
	}
	c.items[i].Quantity = qty
	return nil
}

// Refresh rebinds every line to catalog. Lines whose product is gone or out
// of stock are dropped and quantities above the new stock are lowered to it.
// It returns the number of lines dropped or lowered.
func (c *Cart) Refresh(catalog Catalog) int {
	changed := 0
	kept := c.items[:0]
	for _, it := range c.items {
		p, ok := catalog.Product(it.Product.ID)
		if !ok || p.Stock <= 0 {
			changed++
			continue
		}
		if it.Quantity > p.Stock {
			it.Quantity = p.Stock
			changed++
		}
		it.Product = p
		kept = append(kept, it)
	}
	c.items = kept
	return changed
}

func (c *Cart) Remove(productID int64) {
	i := c.find(productID)
	if i < 0 {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) Len() int {
	return len(c.items)
}

// Quantity returns the quantity of productID, or 0 when absent.
func (c *Cart) Quantity(productID int64) int {
	if i := c.find(productID); i >= 0 {
		return c.items[i].Quantity
	}
	return 0
}

// Items returns a copy of the lines in display order.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total is recomputed on every call.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// SaleRequest builds the transaction for the backend. It fails locally when
// the cart is empty or no game is selected.
func (c *Cart) SaleRequest(gameID, sellerID int64) (SaleRequest, error) {
	if len(c.items) == 0 {
		return SaleRequest{}, ErrEmptyCart
	}
	if gameID <= 0 {
		return SaleRequest{}, ErrNoGameSelected
	}

	req := SaleRequest{
		GameEventID: gameID,
		UserID:      sellerID,
		Items:       make([]SaleItemRequest, 0, len(c.items)),
	}
	for _, it := range c.items {
		req.Items = append(req.Items, SaleItemRequest{ProductID: it.Product.ID, Quantity: it.Quantity})
	}
	return req, nil
}

// CartState is the per-session sales screen: the cart, the catalog snapshot
// it is bounded by and the selected game.
type CartState struct {
	Cart       *Cart
	Catalog    Catalog
	GameID     int64
	GamePinned bool // opened from a game's own sales screen
	Generation uint64
	OpenedAt   time.Time
}

// ReplaceCatalog installs c and rebinds the cart to it.
func (s *CartState) ReplaceCatalog(c Catalog) int {
	s.Catalog = c
	return s.Cart.Refresh(c)
}

// CartSnapshotItem is a read-only view of one cart line.
type CartSnapshotItem struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Stock     int             `json:"stock"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartSnapshot is the cart state captured at a point in time.
type CartSnapshot struct {
	Items           []CartSnapshotItem `json:"items"`
	ItemCount       int                `json:"itemCount"`
	Total           decimal.Decimal    `json:"total"`
	GameID          int64              `json:"gameId,omitempty"`
	CatalogLoadedAt time.Time          `json:"catalogLoadedAt"`
	CapturedAt      time.Time          `json:"capturedAt"`
}

func (s *CartState) Snapshot() CartSnapshot {
	items := s.Cart.Items()
	snap := CartSnapshot{
		Items:           make([]CartSnapshotItem, 0, len(items)),
		Total:           s.Cart.Total(),
		GameID:          s.GameID,
		CatalogLoadedAt: s.Catalog.LoadedAt,
		CapturedAt:      time.Now().UTC(),
	}
	for _, it := range items {
		snap.ItemCount += it.Quantity
		snap.Items = append(snap.Items, CartSnapshotItem{
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			UnitPrice: it.Product.Price,
			Quantity:  it.Quantity,
			Stock:     it.Product.Stock,
			Subtotal:  it.Subtotal(),
		})
	}
	return snap
}
