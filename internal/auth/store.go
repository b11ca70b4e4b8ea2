package auth

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionStore maps opaque session ids to club ids for the lifetime of a
// session. Deleting a key invalidates the session even while its cookie is
// still unexpired.
type SessionStore interface {
	Put(ctx context.Context, sessionID, clubID string, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

const sessionKeyPrefix = "session:"

type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client}
}

func (s *RedisStore) Put(ctx context.Context, sessionID, clubID string, ttl time.Duration) error {
	return s.Client.Set(ctx, sessionKeyPrefix+sessionID, clubID, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (string, error) {
	clubID, err := s.Client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return clubID, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

// MemoryStore is a process-local SessionStore used by tests and local runs
// without Redis.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
}

type memorySession struct {
	clubID    string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memorySession)}
}

func (s *MemoryStore) Put(ctx context.Context, sessionID, clubID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = memorySession{clubID: clubID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok || time.Now().After(sess.expiresAt) {
		delete(s.sessions, sessionID)
		return "", nil
	}
	return sess.clubID, nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
