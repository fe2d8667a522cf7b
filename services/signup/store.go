package signup

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"visionpay/models"
)

// SessionStore keeps wizard sessions between requests. Sessions expire after
// the store's TTL; nothing outlives that.
type SessionStore interface {
	Save(ctx context.Context, s *models.SignupSession) error
	Get(ctx context.Context, id string) (*models.SignupSession, error)
	Delete(ctx context.Context, id string) error
}

func cloneSession(s *models.SignupSession) *models.SignupSession {
	c := *s
	c.Steps = append([]models.WizardStep(nil), s.Steps...)
	return &c
}

type memoryEntry struct {
	session   *models.SignupSession
	expiresAt time.Time
}

// MemoryStore is the default single-process store.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemoryStore) Save(_ context.Context, s *models.SignupSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purgeLocked()
	m.sessions[s.ID] = memoryEntry{session: cloneSession(s), expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*models.SignupSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.sessions, id)
		return nil, ErrSessionNotFound
	}
	return cloneSession(e.session), nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) purgeLocked() {
	now := m.now()
	for id, e := range m.sessions {
		if !now.Before(e.expiresAt) {
			delete(m.sessions, id)
		}
	}
}

const redisKeyPrefix = "signup:session:"

// RedisStore shares sessions between instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

func (r *RedisStore) Save(ctx context.Context, s *models.SignupSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		r.logger.Error("Failed to marshal signup session", zap.Error(err))
		return err
	}
	if err := r.client.Set(ctx, redisKeyPrefix+s.ID, data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save signup session", zap.String("sessionID", s.ID), zap.Error(err))
		return err
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*models.SignupSession, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get signup session", zap.String("sessionID", id), zap.Error(err))
		return nil, err
	}
	var s models.SignupSession
	if err := json.Unmarshal(data, &s); err != nil {
		r.logger.Error("Failed to unmarshal signup session", zap.String("sessionID", id), zap.Error(err))
		return nil, err
	}
	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		r.logger.Error("Failed to delete signup session", zap.String("sessionID", id), zap.Error(err))
		return err
	}
	return nil
}
