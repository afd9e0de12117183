package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"roomly/models"

	"github.com/go-redis/redis/v8"
)

// codeKeyPrefix namespaces verification code records in Redis.
const codeKeyPrefix = "verify:"

// codeRetention is how long a record is kept before background cleanup. It is
// deliberately much longer than the code lifetime: an expired-but-present code
// must keep failing with ErrCodeExpired rather than ErrCodeNotFound.
const codeRetention = 24 * time.Hour

// CodeStore owns verification code records, at most one per user.
type CodeStore interface {
	// Put stores a record, replacing any prior record for the same user.
	Put(ctx context.Context, rec models.VerificationCode) error
	// Get returns the active record for the user, or (nil, nil) if none.
	Get(ctx context.Context, userID string) (*models.VerificationCode, error)
	// Delete removes the record for the user, if any.
	Delete(ctx context.Context, userID string) error
}

// RedisCodeStore is the production CodeStore.
type RedisCodeStore struct {
	Client *redis.Client
}

// NewRedisCodeStore wraps a Redis client as a CodeStore.
func NewRedisCodeStore(client *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{Client: client}
}

func (s *RedisCodeStore) Put(ctx context.Context, rec models.VerificationCode) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal verification code: %w", err)
	}
	if err := s.Client.Set(ctx, codeKeyPrefix+rec.UserID, payload, codeRetention).Err(); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	return nil
}

func (s *RedisCodeStore) Get(ctx context.Context, userID string) (*models.VerificationCode, error) {
	payload, err := s.Client.Get(ctx, codeKeyPrefix+userID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve verification code: %w", err)
	}
	var rec models.VerificationCode
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal verification code: %w", err)
	}
	return &rec, nil
}

func (s *RedisCodeStore) Delete(ctx context.Context, userID string) error {
	if err := s.Client.Del(ctx, codeKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to delete verification code: %w", err)
	}
	return nil
}

// MemoryCodeStore is an in-memory CodeStore for tests and local development.
type MemoryCodeStore struct {
	mu   sync.Mutex
	recs map[string]models.VerificationCode
}

// NewMemoryCodeStore creates an empty in-memory store.
func NewMemoryCodeStore() *MemoryCodeStore {
	return &MemoryCodeStore{recs: make(map[string]models.VerificationCode)}
}

func (s *MemoryCodeStore) Put(_ context.Context, rec models.VerificationCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[rec.UserID] = rec
	return nil
}

func (s *MemoryCodeStore) Get(_ context.Context, userID string) (*models.VerificationCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[userID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryCodeStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.recs, userID)
	return nil
}
