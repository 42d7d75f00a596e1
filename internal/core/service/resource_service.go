package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/soldiers/admin-gateway/internal/api/metrics"
	"github.com/soldiers/admin-gateway/internal/core/domain"
	"github.com/soldiers/admin-gateway/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ResourceService forwards screen CRUD to the backend. Lists are cached per
// session and screen; every mutation drops the screen's cached list and the
// next read refetches it.
type ResourceService struct {
	backend  ports.Backend
	cache    ports.ListCache
	cacheTTL time.Duration
	logger   zerolog.Logger
}

func NewResourceService(backend ports.Backend, cache ports.ListCache, cacheTTL time.Duration, logger zerolog.Logger) *ResourceService {
	return &ResourceService{backend: backend, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func (s *ResourceService) List(ctx context.Context, sess *domain.Session, screen domain.Screen, in ports.ListInput) (*ports.ListResult, error) {
	records, err := s.records(ctx, sess, screen)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if !r.Matches(screen.SearchFields, in.Search) {
			continue
		}
		if !matchFilters(r, screen.FilterFields, in.Filters) {
			continue
		}
		filtered = append(filtered, r)
	}

	page, limit := normalizePage(in.Page, in.Limit)
	items, totalPages := paginate(filtered, page, limit)
	return &ports.ListResult{
		Items:      items,
		Total:      len(filtered),
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// records returns the screen's full list, from cache when possible.
func (s *ResourceService) records(ctx context.Context, sess *domain.Session, screen domain.Screen) ([]domain.Record, error) {
	cached, ok, err := s.cache.Get(ctx, sess.ID, screen.Name)
	if err != nil {
		s.logger.Warn().Err(err).Str("screen", screen.Name).Msg("list cache read failed")
	}
	if ok {
		metrics.ListCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.ListCacheTotal.WithLabelValues("miss").Inc()

	var records []domain.Record
	if err := s.backend.Do(ctx, sess.Token, http.MethodGet, screen.Path, nil, &records); err != nil {
		return nil, fmt.Errorf("list %s: %w", screen.Name, err)
	}
	if records == nil {
		records = []domain.Record{}
	}

	if err := s.cache.Set(ctx, sess.ID, screen.Name, records, s.cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("screen", screen.Name).Msg("list cache write failed")
	}
	return records, nil
}

func (s *ResourceService) Get(ctx context.Context, sess *domain.Session, screen domain.Screen, id string) (domain.Record, error) {
	var rec domain.Record
	if err := s.backend.Do(ctx, sess.Token, http.MethodGet, screen.ItemURL(id), nil, &rec); err != nil {
		return nil, fmt.Errorf("get %s %s: %w", screen.Name, id, err)
	}
	return rec, nil
}

func (s *ResourceService) Create(ctx context.Context, sess *domain.Session, screen domain.Screen, body any) (*ports.MutationResult, error) {
	if screen.ReadOnly {
		return nil, domain.ErrReadOnlyScreen
	}
	var rec domain.Record
	if err := s.backend.Do(ctx, sess.Token, http.MethodPost, screen.CreateURL(), body, &rec); err != nil {
		return nil, fmt.Errorf("create %s: %w", screen.Name, err)
	}
	s.logger.Info().Str("screen", screen.Name).Str("session_id", sess.ID).Msg("record created")
	return s.afterMutation(ctx, sess, screen, rec), nil
}

func (s *ResourceService) Update(ctx context.Context, sess *domain.Session, screen domain.Screen, id string, body any) (*ports.MutationResult, error) {
	if screen.ReadOnly {
		return nil, domain.ErrReadOnlyScreen
	}
	var rec domain.Record
	if err := s.backend.Do(ctx, sess.Token, http.MethodPut, screen.ItemURL(id), body, &rec); err != nil {
		return nil, fmt.Errorf("update %s %s: %w", screen.Name, id, err)
	}
	s.logger.Info().Str("screen", screen.Name).Str("id", id).Str("session_id", sess.ID).Msg("record updated")
	return s.afterMutation(ctx, sess, screen, rec), nil
}

func (s *ResourceService) Delete(ctx context.Context, sess *domain.Session, screen domain.Screen, id string) (*ports.MutationResult, error) {
	if screen.ReadOnly {
		return nil, domain.ErrReadOnlyScreen
	}
	if err := s.backend.Do(ctx, sess.Token, http.MethodDelete, screen.ItemURL(id), nil, nil); err != nil {
		return nil, fmt.Errorf("delete %s %s: %w", screen.Name, id, err)
	}
	s.logger.Info().Str("screen", screen.Name).Str("id", id).Str("session_id", sess.ID).Msg("record deleted")
	return s.afterMutation(ctx, sess, screen, nil), nil
}

// afterMutation drops the cached list and refetches the first page. A failed
// refetch leaves List nil; the mutation itself already succeeded.
func (s *ResourceService) afterMutation(ctx context.Context, sess *domain.Session, screen domain.Screen, rec domain.Record) *ports.MutationResult {
	if err := s.cache.Invalidate(ctx, sess.ID, screen.Name); err != nil {
		s.logger.Warn().Err(err).Str("screen", screen.Name).Msg("list cache invalidation failed")
	}

	res := &ports.MutationResult{Record: rec}
	list, err := s.List(ctx, sess, screen, ports.ListInput{})
	if err != nil {
		s.logger.Warn().Err(err).Str("screen", screen.Name).Msg("refetch after mutation failed")
		return res
	}
	res.List = list
	return res
}

func matchFilters(r domain.Record, allowed []string, filters map[string]string) bool {
	for _, field := range allowed {
		want, ok := filters[field]
		if !ok || want == "" {
			continue
		}
		if !r.FieldEquals(field, want) {
			return false
		}
	}
	return true
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// paginate returns the requested page of items and the page count.
func paginate[T any](items []T, page, limit int) ([]T, int) {
	totalPages := (len(items) + limit - 1) / limit
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}, totalPages
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}
