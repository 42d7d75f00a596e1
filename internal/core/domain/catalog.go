package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Product is a catalog entry. Stock is the snapshot taken when the catalog
// was fetched; only the backend mutates it.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// GameStatus is the lifecycle state of a game event.
type GameStatus string

const (
	GameScheduled  GameStatus = "SCHEDULED"
	GameInProgress GameStatus = "IN_PROGRESS"
	GameFinished   GameStatus = "FINISHED"
	GameCancelled  GameStatus = "CANCELLED"
)

// Sellable reports whether sales may be recorded against a game in this state.
func (s GameStatus) Sellable() bool {
	return s == GameScheduled || s == GameInProgress
}

// Game is a scheduled occasion against which sales are recorded.
type Game struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Date        string     `json:"date"`
	StartTime   string     `json:"startTime,omitempty"`
	EndTime     string     `json:"endTime,omitempty"`
	Location    string     `json:"location,omitempty"`
	Status      GameStatus `json:"status"`
}

// Catalog is the read-only snapshot a cart enforces stock against.
type Catalog struct {
	Products []Product
	Games    []Game
	LoadedAt time.Time
}

func (c Catalog) Product(id int64) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func (c Catalog) Game(id int64) (Game, bool) {
	for _, g := range c.Games {
		if g.ID == id {
			return g, true
		}
	}
	return Game{}, false
}

// Available returns in-stock products whose name contains search
// (case-insensitive), ordered by name.
func (c Catalog) Available(search string) []Product {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]Product, 0, len(c.Products))
	for _, p := range c.Products {
		if p.Stock <= 0 {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		out = append(out, p)
	}

	col := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

// SellableGames returns games that still accept sales.
func (c Catalog) SellableGames() []Game {
	out := make([]Game, 0, len(c.Games))
	for _, g := range c.Games {
		if g.Status.Sellable() {
			out = append(out, g)
		}
	}
	return out
}
