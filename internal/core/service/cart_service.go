package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/soldiers/admin-gateway/internal/api/metrics"
	"github.com/soldiers/admin-gateway/internal/core/domain"
	"github.com/soldiers/admin-gateway/internal/core/ports"
)

// CartService runs the sales screen: one cart per session, bounded by the
// catalog snapshot loaded when the cart was opened or last reloaded.
type CartService struct {
	backend  ports.Backend
	carts    ports.CartStore
	guard    ports.SubmitGuard
	receipts ports.ReceiptRecorder
	lists    ports.ListCache
	logger   zerolog.Logger
}

func NewCartService(
	backend ports.Backend,
	carts ports.CartStore,
	guard ports.SubmitGuard,
	receipts ports.ReceiptRecorder,
	lists ports.ListCache,
	logger zerolog.Logger,
) *CartService {
	return &CartService{
		backend:  backend,
		carts:    carts,
		guard:    guard,
		receipts: receipts,
		lists:    lists,
		logger:   logger,
	}
}

// Open starts an empty cart for the session, replacing any previous one.
// A non-zero GameID pins the cart to that game.
func (s *CartService) Open(ctx context.Context, sess *domain.Session, in ports.OpenCartInput) (domain.CartSnapshot, error) {
	catalog, err := s.loadCatalog(ctx, sess.Token)
	if err != nil {
		return domain.CartSnapshot{}, err
	}

	if in.GameID != 0 {
		if _, ok := catalog.Game(in.GameID); !ok {
			return domain.CartSnapshot{}, fmt.Errorf("game %d: %w", in.GameID, domain.ErrNotFound)
		}
	}

	st := s.carts.Open(sess.ID, &domain.CartState{
		Cart:       domain.NewCart(),
		Catalog:    catalog,
		GameID:     in.GameID,
		GamePinned: in.GameID != 0,
		OpenedAt:   time.Now().UTC(),
	})
	s.logger.Debug().Str("session_id", sess.ID).Int64("game_id", in.GameID).Msg("cart opened")
	return st.Snapshot(), nil
}

func (s *CartService) View(sess *domain.Session) (domain.CartSnapshot, error) {
	var snap domain.CartSnapshot
	err := s.carts.With(sess.ID, func(st *domain.CartState) error {
		snap = st.Snapshot()
		return nil
	})
	return snap, err
}

// Products lists in-stock catalog products matching search.
func (s *CartService) Products(sess *domain.Session, search string) ([]domain.Product, error) {
	var out []domain.Product
	err := s.carts.With(sess.ID, func(st *domain.CartState) error {
		out = st.Catalog.Available(search)
		return nil
	})
	return out, err
}

// Games lists the catalog games that still accept sales.
func (s *CartService) Games(sess *domain.Session) ([]domain.Game, error) {
	var out []domain.Game
	err := s.carts.With(sess.ID, func(st *domain.CartState) error {
		out = st.Catalog.SellableGames()
		return nil
	})
	return out, err
}

func (s *CartService) SelectGame(sess *domain.Session, gameID int64) (domain.CartSnapshot, error) {
	var snap domain.CartSnapshot
	err := s.carts.With(sess.ID, func(st *domain.CartState) error {
		if st.GamePinned && gameID != st.GameID {
			return domain.ErrGamePinned
		}
		g, ok := st.Catalog.Game(gameID)
		if !ok {
			return fmt.Errorf("game %d: %w", gameID, domain.ErrNotFound)
		}
		if !g.Status.Sellable() {
			return domain.ErrGameNotSellable
		}
		st.GameID = gameID
		snap = st.Snapshot()
		return nil
	})
	return snap, err
}

// Add puts one unit of the catalog product in the cart. A stock advisory
// comes back together with the unchanged snapshot.
func (s *CartService) Add(sess *domain.Session, productID int64) (domain.CartSnapshot, error) {
	return s.edit(sess, func(st *domain.CartState) error {
		p, ok := st.Catalog.Product(productID)
		if !ok {
			return domain.ErrProductNotFound
		}
		return st.Cart.Add(p)
	})
}

// SetQuantity sets a line's quantity, bounded by the product's stock in the
// current catalog.
func (s *CartService) SetQuantity(sess *domain.Session, productID int64, qty int) (domain.CartSnapshot, error) {
	return s.edit(sess, func(st *domain.CartState) error {
		p, ok := st.Catalog.Product(productID)
		if !ok {
			// Lines always belong to the installed catalog.
			if qty <= 0 {
				st.Cart.Remove(productID)
				return nil
			}
			return domain.ErrCartItemNotFound
		}
		return st.Cart.SetQuantity(p, qty)
	})
}

func (s *CartService) Remove(sess *domain.Session, productID int64) (domain.CartSnapshot, error) {
	return s.edit(sess, func(st *domain.CartState) error {
		st.Cart.Remove(productID)
		return nil
	})
}

func (s *CartService) edit(sess *domain.Session, fn func(st *domain.CartState) error) (domain.CartSnapshot, error) {
	var (
		snap  domain.CartSnapshot
		opErr error
	)
	err := s.carts.With(sess.ID, func(st *domain.CartState) error {
		opErr = fn(st)
		snap = st.Snapshot()
		return nil
	})
	if err != nil {
		return domain.CartSnapshot{}, err
	}
	if domain.IsAdvisory(opErr) {
		metrics.CartAdvisoriesTotal.WithLabelValues(advisoryKind(opErr)).Inc()
		return snap, opErr
	}
	if opErr != nil {
		return domain.CartSnapshot{}, opErr
	}
	return snap, nil
}

func advisoryKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrStockCeilingReached):
		return "ceiling"
	case errors.Is(err, domain.ErrOutOfStock):
		return "out_of_stock"
	default:
		return "exceeds_stock"
	}
}

// Reload refetches the catalog. A result that arrives after the cart was
// discarded or reopened is dropped.
func (s *CartService) Reload(ctx context.Context, sess *domain.Session) (domain.CartSnapshot, error) {
	var gen uint64
	if err := s.carts.With(sess.ID, func(st *domain.CartState) error {
		gen = st.Generation
		return nil
	}); err != nil {
		return domain.CartSnapshot{}, err
	}

	catalog, err := s.loadCatalog(ctx, sess.Token)
	if err != nil {
		return domain.CartSnapshot{}, err
	}
	if !s.carts.ReplaceCatalog(sess.ID, gen, catalog) {
		s.logger.Debug().Str("session_id", sess.ID).Msg("stale catalog reload ignored")
	}
	return s.View(sess)
}

func (s *CartService) Discard(sess *domain.Session) {
	s.carts.Discard(sess.ID)
}

// Submit records the cart as one sale. Empty carts and carts without a game
// are rejected before any network call. On failure the cart is left as it
// was; on success it is emptied and the catalog is reloaded.
func (s *CartService) Submit(ctx context.Context, sess *domain.Session) (*ports.SubmitResult, error) {
	if err := s.carts.With(sess.ID, func(st *domain.CartState) error {
		_, err := st.Cart.SaleRequest(st.GameID, sess.User.ID)
		return err
	}); err != nil {
		if errors.Is(err, domain.ErrEmptyCart) || errors.Is(err, domain.ErrNoGameSelected) {
			metrics.SalesSubmittedTotal.WithLabelValues("rejected").Inc()
		}
		return nil, err
	}

	acquired, err := s.guard.Acquire(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("submit guard: %w", err)
	}
	if !acquired {
		return nil, domain.ErrSubmitInProgress
	}
	defer func() {
		if err := s.guard.Release(context.WithoutCancel(ctx), sess.ID); err != nil {
			s.logger.Warn().Err(err).Str("session_id", sess.ID).Msg("failed to release submit guard")
		}
	}()

	var (
		sale    *domain.Sale
		receipt *domain.Receipt
		gen     uint64
	)
	err = s.carts.With(sess.ID, func(st *domain.CartState) error {
		req, err := st.Cart.SaleRequest(st.GameID, sess.User.ID)
		if err != nil {
			metrics.SalesSubmittedTotal.WithLabelValues("rejected").Inc()
			return err
		}

		sale, err = s.backend.CreateSale(ctx, sess.Token, req)
		if err != nil {
			metrics.SalesSubmittedTotal.WithLabelValues("error").Inc()
			return fmt.Errorf("create sale: %w", err)
		}

		receipt = newReceipt(sess, st, sale)
		st.Cart.Clear()
		gen = st.Generation
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SalesSubmittedTotal.WithLabelValues("success").Inc()
	s.logger.Info().
		Str("session_id", sess.ID).
		Int64("sale_id", sale.ID).
		Int64("game_id", receipt.GameID).
		Str("total", receipt.Total.StringFixed(2)).
		Msg("sale submitted")

	s.receipts.Enqueue(receipt)
	if err := s.lists.Invalidate(ctx, sess.ID, domain.ScreenProducts.Name, domain.ScreenSales.Name); err != nil {
		s.logger.Warn().Err(err).Str("session_id", sess.ID).Msg("failed to invalidate lists after sale")
	}

	result := &ports.SubmitResult{Sale: sale}
	catalog, err := s.loadCatalog(ctx, sess.Token)
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", sess.ID).Msg("catalog reload after sale failed")
		result.CatalogStale = true
	} else {
		s.carts.ReplaceCatalog(sess.ID, gen, catalog)
	}

	// The cart may have been discarded meanwhile; the sale stands regardless.
	if snap, err := s.View(sess); err == nil {
		result.Cart = snap
	}
	return result, nil
}

func newReceipt(sess *domain.Session, st *domain.CartState, sale *domain.Sale) *domain.Receipt {
	items := st.Cart.Items()
	r := &domain.Receipt{
		ID:          uuid.NewString(),
		SaleID:      sale.ID,
		GameID:      st.GameID,
		SellerID:    sess.User.ID,
		SellerEmail: sess.User.Email,
		Items:       make([]domain.ReceiptItem, 0, len(items)),
		Total:       st.Cart.Total(),
		SubmittedAt: time.Now().UTC(),
	}
	for _, it := range items {
		r.Items = append(r.Items, domain.ReceiptItem{
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.Product.Price,
		})
	}
	return r
}

// loadCatalog fetches products and games concurrently.
func (s *CartService) loadCatalog(ctx context.Context, token string) (domain.Catalog, error) {
	var catalog domain.Catalog
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, err := s.backend.ListProducts(gctx, token)
		if err != nil {
			return fmt.Errorf("load products: %w", err)
		}
		catalog.Products = products
		return nil
	})
	g.Go(func() error {
		games, err := s.backend.ListGames(gctx, token)
		if err != nil {
			return fmt.Errorf("load games: %w", err)
		}
		catalog.Games = games
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.Catalog{}, err
	}
	catalog.LoadedAt = time.Now().UTC()
	return catalog, nil
}
