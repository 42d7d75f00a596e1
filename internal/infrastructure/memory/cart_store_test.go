package memory

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/soldiers/admin-gateway/internal/core/domain"
)

func newState() *domain.CartState {
	return &domain.CartState{
		Cart: domain.NewCart(),
		Catalog: domain.Catalog{Products: []domain.Product{
			{ID: 1, Name: "Camisa", Price: decimal.RequireFromString("10"), Stock: 1000},
		}},
	}
}

func TestCartStore_OpenAssignsGenerations(t *testing.T) {
	s := NewCartStore()
	a := s.Open("s1", newState())
	b := s.Open("s1", newState())
	if b.Generation <= a.Generation {
		t.Fatalf("generation must grow: %d then %d", a.Generation, b.Generation)
	}

	if s.ReplaceCatalog("s1", a.Generation, domain.Catalog{}) {
		t.Fatalf("stale generation must be rejected")
	}
	if !s.ReplaceCatalog("s1", b.Generation, domain.Catalog{}) {
		t.Fatalf("current generation must be accepted")
	}
}

func TestCartStore_DiscardClosesCart(t *testing.T) {
	s := NewCartStore()
	st := s.Open("s1", newState())
	s.Discard("s1")
	s.Discard("s1")

	if err := s.With("s1", func(*domain.CartState) error { return nil }); !errors.Is(err, domain.ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}
	if s.ReplaceCatalog("s1", st.Generation, domain.Catalog{}) {
		t.Fatalf("discarded cart must not accept a catalog")
	}
}

func TestCartStore_WithSerializesMutations(t *testing.T) {
	s := NewCartStore()
	s.Open("s1", newState())

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.With("s1", func(st *domain.CartState) error {
				p, _ := st.Catalog.Product(1)
				return st.Cart.Add(p)
			})
		}()
	}
	wg.Wait()

	_ = s.With("s1", func(st *domain.CartState) error {
		if q := st.Cart.Quantity(1); q != 100 {
			t.Fatalf("expected 100 units, got %d", q)
		}
		return nil
	})
}

func TestCartStore_Prune(t *testing.T) {
	s := NewCartStore()
	s.Open("idle", newState())
	time.Sleep(20 * time.Millisecond)
	s.Open("fresh", newState())

	if n := s.Prune(10 * time.Millisecond); n != 1 {
		t.Fatalf("expected one pruned cart, got %d", n)
	}
	if err := s.With("fresh", func(*domain.CartState) error { return nil }); err != nil {
		t.Fatalf("fresh cart pruned: %v", err)
	}
	if err := s.With("idle", func(*domain.CartState) error { return nil }); !errors.Is(err, domain.ErrCartNotFound) {
		t.Fatalf("idle cart kept: %v", err)
	}
}

func TestCartStore_ReplaceCatalogRebindsCart(t *testing.T) {
	s := NewCartStore()
	st := s.Open("s1", newState())
	_ = s.With("s1", func(st *domain.CartState) error {
		p, _ := st.Catalog.Product(1)
		_ = st.Cart.Add(p)
		return st.Cart.SetQuantity(p, 5)
	})

	lowered := domain.Catalog{Products: []domain.Product{
		{ID: 1, Name: "Camisa", Price: decimal.RequireFromString("10"), Stock: 3},
	}}
	if !s.ReplaceCatalog("s1", st.Generation, lowered) {
		t.Fatalf("current generation must be accepted")
	}
	_ = s.With("s1", func(st *domain.CartState) error {
		if q := st.Cart.Quantity(1); q != 3 {
			t.Fatalf("quantity %d not lowered to the new stock", q)
		}
		return nil
	})
}
