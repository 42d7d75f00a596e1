package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/soldiers/admin-gateway/internal/core/domain"
	"github.com/soldiers/admin-gateway/internal/core/ports"
)

const playersJSON = `[
	{"id": 1, "name": "Bruno", "position": "QB", "number": "12", "status": "ACTIVE"},
	{"id": 2, "name": "Carla", "position": "WR", "number": "80", "status": "INJURED"},
	{"id": 3, "name": "Breno", "position": "RB", "number": "22", "status": "ACTIVE"}
]`

func newResourceFixture() (*stubBackend, *memListCache, *ResourceService) {
	b := &stubBackend{responses: map[string]string{
		"GET /players":        playersJSON,
		"GET /players/2":      `{"id": 2, "name": "Carla"}`,
		"POST /players":       `{"id": 4, "name": "Diego"}`,
		"PUT /players/2":      `{"id": 2, "name": "Carla S."}`,
		"DELETE /players/2":   `{}`,
		"POST /auth/register": `{"id": 5, "email": "novo@club.com"}`,
		"GET /auth/users":     `[]`,
	}}
	cache := newMemListCache()
	return b, cache, NewResourceService(b, cache, time.Minute, zerolog.Nop())
}

func recordIDs(items []domain.Record) []float64 {
	out := make([]float64, 0, len(items))
	for _, r := range items {
		out = append(out, r["id"].(float64))
	}
	return out
}

func TestResourceService_ListFiltersAndPaginates(t *testing.T) {
	_, _, svc := newResourceFixture()
	sess := testSession()

	tests := []struct {
		name      string
		in        ports.ListInput
		wantIDs   []float64
		wantTotal int
		wantPages int
	}{
		{"everything", ports.ListInput{}, []float64{1, 2, 3}, 3, 1},
		{"search name", ports.ListInput{Search: "br"}, []float64{1, 3}, 2, 1},
		{"search number", ports.ListInput{Search: "80"}, []float64{2}, 1, 1},
		{"status filter", ports.ListInput{Filters: map[string]string{"status": "active"}}, []float64{1, 3}, 2, 1},
		{"unknown filter ignored", ports.ListInput{Filters: map[string]string{"name": "nobody"}}, []float64{1, 2, 3}, 3, 1},
		{"second page", ports.ListInput{Page: 2, Limit: 2}, []float64{3}, 3, 2},
		{"past the end", ports.ListInput{Page: 5, Limit: 2}, []float64{}, 3, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.List(context.Background(), sess, domain.ScreenPlayers, tc.in)
			if err != nil {
				t.Fatalf("List returned error: %v", err)
			}
			if diff := cmp.Diff(tc.wantIDs, recordIDs(res.Items)); diff != "" {
				t.Fatalf("ids mismatch (-want +got):\n%s", diff)
			}
			if res.Total != tc.wantTotal || res.TotalPages != tc.wantPages {
				t.Fatalf("total=%d pages=%d, want %d/%d", res.Total, res.TotalPages, tc.wantTotal, tc.wantPages)
			}
		})
	}
}

func TestResourceService_ListUsesCache(t *testing.T) {
	b, _, svc := newResourceFixture()
	sess := testSession()

	for i := 0; i < 3; i++ {
		if _, err := svc.List(context.Background(), sess, domain.ScreenPlayers, ports.ListInput{}); err != nil {
			t.Fatalf("List returned error: %v", err)
		}
	}
	if n := b.count("GET /players"); n != 1 {
		t.Fatalf("expected one backend fetch, got %d", n)
	}
}

func TestResourceService_LimitIsCapped(t *testing.T) {
	_, _, svc := newResourceFixture()
	res, _ := svc.List(context.Background(), testSession(), domain.ScreenPlayers, ports.ListInput{Limit: 1000})
	if res.Limit != maxPageLimit {
		t.Fatalf("limit = %d, want %d", res.Limit, maxPageLimit)
	}
}

func TestResourceService_MutationRefetches(t *testing.T) {
	b, cache, svc := newResourceFixture()
	sess := testSession()
	ctx := context.Background()

	_, _ = svc.List(ctx, sess, domain.ScreenPlayers, ports.ListInput{})

	res, err := svc.Create(ctx, sess, domain.ScreenPlayers, map[string]string{"name": "Diego"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if res.Record["name"] != "Diego" || res.List == nil || res.List.Total != 3 {
		t.Fatalf("unexpected mutation result %+v", res)
	}
	if n := b.count("GET /players"); n != 2 {
		t.Fatalf("expected a refetch after create, got %d fetches", n)
	}

	if _, err := svc.Update(ctx, sess, domain.ScreenPlayers, "2", map[string]string{"name": "Carla S."}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	res, err = svc.Delete(ctx, sess, domain.ScreenPlayers, "2")
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if res.Record != nil {
		t.Fatalf("delete carries no record")
	}
	if n := b.count("GET /players"); n != 4 {
		t.Fatalf("expected a refetch after every mutation, got %d fetches", n)
	}
	if diff := cmp.Diff([]string{"players", "players", "players"}, cache.invalidated); diff != "" {
		t.Fatalf("invalidation mismatch (-want +got):\n%s", diff)
	}
}

func TestResourceService_CreateUsesCreatePath(t *testing.T) {
	b, _, svc := newResourceFixture()
	if _, err := svc.Create(context.Background(), testSession(), domain.ScreenUsers, map[string]string{}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if b.count("POST /auth/register") != 1 || b.count("GET /auth/users") != 1 {
		t.Fatalf("unexpected calls %v", b.calls)
	}
}

func TestResourceService_FailedMutationKeepsCache(t *testing.T) {
	b, cache, svc := newResourceFixture()
	sess := testSession()
	b.doErr = map[string]error{"PUT /players/1": &domain.BackendError{Status: 400, Message: "invalid"}}

	_, err := svc.Update(context.Background(), sess, domain.ScreenPlayers, "1", map[string]string{})
	if !errors.Is(err, domain.ErrBackend) {
		t.Fatalf("expected ErrBackend, got %v", err)
	}
	if len(cache.invalidated) != 0 {
		t.Fatalf("failed mutation must not invalidate")
	}
}

func TestResourceService_ReadOnlyScreen(t *testing.T) {
	_, _, svc := newResourceFixture()
	if _, err := svc.Create(context.Background(), testSession(), domain.ScreenSales, nil); !errors.Is(err, domain.ErrReadOnlyScreen) {
		t.Fatalf("expected ErrReadOnlyScreen, got %v", err)
	}
}

func TestResourceService_GetNotFound(t *testing.T) {
	_, _, svc := newResourceFixture()
	if _, err := svc.Get(context.Background(), testSession(), domain.ScreenPlayers, "99"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
