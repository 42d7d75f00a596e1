package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/soldiers/admin-gateway/internal/core/domain"
)

// SessionStore keeps sessions as JSON documents.
// Key format: session:<session_id>
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// sessionRecord is the stored form of domain.Session. Exactly one of Role and
// Profile is set.
type sessionRecord struct {
	ID          string          `json:"id"`
	User        domain.User     `json:"user"`
	Token       string          `json:"token,omitempty"`
	Role        domain.Role     `json:"role,omitempty"`
	Profile     *domain.Profile `json:"profile,omitempty"`
	Permissions []string        `json:"permissions,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func toRecord(s *domain.Session) sessionRecord {
	rec := sessionRecord{ID: s.ID, User: s.User, Token: s.Token, CreatedAt: s.CreatedAt}
	switch m := s.Auth.(type) {
	case domain.ProfileBased:
		p := m.Profile
		rec.Profile = &p
		rec.Permissions = m.Permissions.List()
	case domain.LegacyRole:
		rec.Role = m.Role
	}
	return rec
}

func (r sessionRecord) toSession() *domain.Session {
	s := &domain.Session{ID: r.ID, User: r.User, Token: r.Token, CreatedAt: r.CreatedAt}
	if r.Profile != nil {
		s.Auth = domain.ProfileBased{Profile: *r.Profile, Permissions: domain.NewPermissionSet(r.Permissions...)}
	} else {
		s.Auth = domain.LegacyRole{Role: r.Role}
	}
	return s
}

func (st *SessionStore) Save(ctx context.Context, s *domain.Session, ttl time.Duration) error {
	data, err := json.Marshal(toRecord(s))
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := st.client.Set(ctx, st.key(s.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (st *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := st.client.Get(ctx, st.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return rec.toSession(), nil
}

func (st *SessionStore) Delete(ctx context.Context, id string) error {
	if err := st.client.Del(ctx, st.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (st *SessionStore) key(id string) string {
	return fmt.Sprintf("session:%s", id)
}
