// Package session implements the admin gate: a single shared password that
// opens a server-side session. It keeps casual visitors out of admin actions
// and is not meant as a security boundary.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/Marga-Ghale/club-portal/internal/db"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is created at login and removed at logout or when it expires.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// ============================================
// Redis store
// ============================================

type redisStore struct {
	rdb *db.RedisDB
}

func NewRedisStore(rdb *db.RedisDB) Store {
	return &redisStore{rdb: rdb}
}

func (s *redisStore) Save(ctx context.Context, sess *Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	return errors.Wrap(s.rdb.SetSession(ctx, sess.ID, sess, ttl), "save session")
}

func (s *redisStore) Get(ctx context.Context, id string) (*Session, error) {
	var sess Session
	if err := s.rdb.GetSession(ctx, id, &sess); err != nil {
		if errors.Is(err, db.ErrSessionMissing) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Wrap(err, "load session")
	}
	return &sess, nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	return errors.Wrap(s.rdb.DeleteSession(ctx, id), "delete session")
}

// ============================================
// In-memory store (single instance deployments and tests)
// ============================================

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryStore() Store {
	return &memoryStore{sessions: make(map[string]Session)}
}

func (s *memoryStore) Save(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *memoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

func (s *memoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
