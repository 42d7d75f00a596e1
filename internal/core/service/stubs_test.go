package service

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/soldiers/admin-gateway/internal/core/domain"
	"github.com/soldiers/admin-gateway/internal/core/ports"
)

// stubBackend answers from canned data and records what it was asked.
type stubBackend struct {
	mu sync.Mutex

	login      *ports.LoginResult
	loginErr   error
	profile    *ports.ProfileDetail
	profileErr error

	products    []domain.Product
	productsErr error
	onProducts  func()
	games       []domain.Game
	sales       []domain.Sale
	saleErr     error
	saleReqs    []domain.SaleRequest
	onSale      func()

	// responses maps "METHOD path" to a JSON body for Do.
	responses map[string]string
	doErr     map[string]error
	calls     []string
	tokens    []string
}

func (b *stubBackend) Login(_ context.Context, _, _ string) (*ports.LoginResult, error) {
	return b.login, b.loginErr
}

func (b *stubBackend) GetProfile(_ context.Context, _ string, _ int64) (*ports.ProfileDetail, error) {
	b.record("GET /profiles", "")
	return b.profile, b.profileErr
}

func (b *stubBackend) ListProducts(_ context.Context, token string) ([]domain.Product, error) {
	b.record("GET /products", token)
	if b.onProducts != nil {
		b.onProducts()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.Product, len(b.products))
	copy(out, b.products)
	return out, b.productsErr
}

func (b *stubBackend) ListGames(_ context.Context, token string) ([]domain.Game, error) {
	b.record("GET /games", token)
	return b.games, nil
}

func (b *stubBackend) CreateSale(_ context.Context, token string, req domain.SaleRequest) (*domain.Sale, error) {
	b.record("POST /sales", token)
	b.mu.Lock()
	b.saleReqs = append(b.saleReqs, req)
	id := 100 + int64(len(b.saleReqs))
	b.mu.Unlock()
	if b.onSale != nil {
		b.onSale()
	}
	if b.saleErr != nil {
		return nil, b.saleErr
	}
	return &domain.Sale{ID: id}, nil
}

func (b *stubBackend) ListSales(_ context.Context, token string) ([]domain.Sale, error) {
	b.record("GET /sales", token)
	return b.sales, nil
}

func (b *stubBackend) Do(_ context.Context, token, method, path string, _, out any) error {
	key := method + " " + path
	b.record(key, token)
	if err := b.doErr[key]; err != nil {
		return err
	}
	body, ok := b.responses[key]
	if !ok {
		return &domain.BackendError{Status: 404}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal([]byte(body), out)
}

func (b *stubBackend) Download(_ context.Context, token, path string) (*ports.Download, error) {
	b.record("GET "+path, token)
	return &ports.Download{
		Body:        io.NopCloser(strings.NewReader("xlsx")),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}, nil
}

func (b *stubBackend) record(call, token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call)
	b.tokens = append(b.tokens, token)
}

func (b *stubBackend) count(call string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c == call {
			n++
		}
	}
	return n
}

type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	ttls     map[string]time.Duration
	saveErr  error
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: map[string]*domain.Session{}, ttls: map[string]time.Duration{}}
}

func (m *memSessionStore) Save(_ context.Context, s *domain.Session, ttl time.Duration) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	m.ttls[s.ID] = ttl
	return nil
}

func (m *memSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (m *memSessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// memCartStore is a single-lock CartStore for service tests.
type memCartStore struct {
	mu    sync.Mutex
	carts map[string]*domain.CartState
	gen   uint64
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: map[string]*domain.CartState{}}
}

func (m *memCartStore) Open(id string, st *domain.CartState) *domain.CartState {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	st.Generation = m.gen
	m.carts[id] = st
	return st
}

func (m *memCartStore) With(id string, fn func(st *domain.CartState) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.carts[id]
	if !ok {
		return domain.ErrCartNotFound
	}
	return fn(st)
}

func (m *memCartStore) Discard(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, id)
}

func (m *memCartStore) ReplaceCatalog(id string, gen uint64, c domain.Catalog) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.carts[id]
	if !ok || st.Generation != gen {
		return false
	}
	st.ReplaceCatalog(c)
	return true
}

func (m *memCartStore) Prune(time.Duration) int { return 0 }

type stubGuard struct {
	mu   sync.Mutex
	held map[string]bool
}

func (g *stubGuard) Acquire(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held == nil {
		g.held = map[string]bool{}
	}
	if g.held[key] {
		return false, nil
	}
	g.held[key] = true
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, key)
	return nil
}

type stubRecorder struct {
	mu       sync.Mutex
	receipts []*domain.Receipt
}

func (r *stubRecorder) Enqueue(rc *domain.Receipt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.receipts = append(r.receipts, rc)
}

type memListCache struct {
	mu          sync.Mutex
	lists       map[string][]domain.Record
	invalidated []string
}

func newMemListCache() *memListCache {
	return &memListCache{lists: map[string][]domain.Record{}}
}

func (c *memListCache) Get(_ context.Context, sid, screen string) ([]domain.Record, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.lists[sid+"/"+screen]
	return r, ok, nil
}

func (c *memListCache) Set(_ context.Context, sid, screen string, records []domain.Record, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists[sid+"/"+screen] = records
	return nil
}

func (c *memListCache) Invalidate(_ context.Context, sid string, screens ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range screens {
		delete(c.lists, sid+"/"+s)
		c.invalidated = append(c.invalidated, s)
	}
	return nil
}

func testSession() *domain.Session {
	return &domain.Session{
		ID:    "sess-1",
		User:  domain.User{ID: 7, Name: "Ana", Email: "ana@club.com"},
		Token: "backend-token",
		Auth: domain.ProfileBased{
			Profile:     domain.Profile{ID: 2, Name: "SELLER"},
			Permissions: domain.NewPermissionSet("SALES:EDIT"),
		},
	}
}
