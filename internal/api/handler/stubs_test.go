package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/soldiers/admin-gateway/internal/api/middleware"
	"github.com/soldiers/admin-gateway/internal/core/domain"
	"github.com/soldiers/admin-gateway/internal/core/ports"
)

// newTestContext builds an echo context with the validator installed and,
// when s is non-nil, the session injected.
func newTestContext(method, target, body string, s *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if s != nil {
		middleware.SetSession(c, s)
	}
	return c, rec
}

func sellerSession() *domain.Session {
	return &domain.Session{
		ID:    "s1",
		User:  domain.User{ID: 7, Name: "Ana", Email: "ana@club.com"},
		Token: "backend-token",
		Auth: domain.ProfileBased{
			Profile:     domain.Profile{ID: 2, Name: "SELLER"},
			Permissions: domain.NewPermissionSet("SALES:EDIT", "PRODUCTS:VIEW"),
		},
	}
}

type stubAuthService struct {
	signInFn  func(ctx context.Context, email, password string) (*ports.SignInResult, error)
	signedOut []string
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string) (*ports.SignInResult, error) {
	return s.signInFn(ctx, email, password)
}

func (s *stubAuthService) Restore(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrSessionNotFound
}

func (s *stubAuthService) SignOut(_ context.Context, id string) error {
	s.signedOut = append(s.signedOut, id)
	return nil
}

func (s *stubAuthService) SessionID(string) (string, error) { return "", domain.ErrSessionInvalid }

type stubCartService struct {
	snap      domain.CartSnapshot
	err       error
	submit    *ports.SubmitResult
	lastQty   int
	lastID    int64
	opened    ports.OpenCartInput
	discarded int
}

func (s *stubCartService) Open(_ context.Context, _ *domain.Session, in ports.OpenCartInput) (domain.CartSnapshot, error) {
	s.opened = in
	return s.snap, s.err
}
func (s *stubCartService) View(*domain.Session) (domain.CartSnapshot, error) { return s.snap, s.err }
func (s *stubCartService) Products(*domain.Session, string) ([]domain.Product, error) {
	return []domain.Product{{ID: 1, Name: "Camisa", Stock: 3}}, s.err
}
func (s *stubCartService) Games(*domain.Session) ([]domain.Game, error) { return nil, s.err }
func (s *stubCartService) SelectGame(_ *domain.Session, id int64) (domain.CartSnapshot, error) {
	s.lastID = id
	return s.snap, s.err
}
func (s *stubCartService) Add(_ *domain.Session, id int64) (domain.CartSnapshot, error) {
	s.lastID = id
	return s.snap, s.err
}
func (s *stubCartService) SetQuantity(_ *domain.Session, id int64, qty int) (domain.CartSnapshot, error) {
	s.lastID, s.lastQty = id, qty
	return s.snap, s.err
}
func (s *stubCartService) Remove(_ *domain.Session, id int64) (domain.CartSnapshot, error) {
	s.lastID = id
	return s.snap, s.err
}
func (s *stubCartService) Reload(context.Context, *domain.Session) (domain.CartSnapshot, error) {
	return s.snap, s.err
}
func (s *stubCartService) Discard(*domain.Session) { s.discarded++ }
func (s *stubCartService) Submit(context.Context, *domain.Session) (*ports.SubmitResult, error) {
	return s.submit, s.err
}

type stubResourceService struct {
	listIn   ports.ListInput
	body     any
	lastID   string
	list     *ports.ListResult
	mutation *ports.MutationResult
	err      error
}

func (s *stubResourceService) List(_ context.Context, _ *domain.Session, _ domain.Screen, in ports.ListInput) (*ports.ListResult, error) {
	s.listIn = in
	return s.list, s.err
}
func (s *stubResourceService) Get(_ context.Context, _ *domain.Session, _ domain.Screen, id string) (domain.Record, error) {
	s.lastID = id
	return domain.Record{"id": 1.0}, s.err
}
func (s *stubResourceService) Create(_ context.Context, _ *domain.Session, _ domain.Screen, body any) (*ports.MutationResult, error) {
	s.body = body
	return s.mutation, s.err
}
func (s *stubResourceService) Update(_ context.Context, _ *domain.Session, _ domain.Screen, id string, body any) (*ports.MutationResult, error) {
	s.lastID, s.body = id, body
	return s.mutation, s.err
}
func (s *stubResourceService) Delete(_ context.Context, _ *domain.Session, _ domain.Screen, id string) (*ports.MutationResult, error) {
	s.lastID = id
	return s.mutation, s.err
}
