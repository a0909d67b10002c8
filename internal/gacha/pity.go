package gacha

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// PityStore tracks the pity counter per (player, banner). Updates must
// be linearizable with respect to pulls on the same key.
type PityStore interface {
	Get(ctx context.Context, playerID, bannerID string) (int, error)
	Set(ctx context.Context, playerID, bannerID string, value int) error
}

// MemoryPityStore is the in-process store used in tests and when redis
// is not configured.
type MemoryPityStore struct {
	mu       sync.Mutex
	counters map[string]int
}

// NewMemoryPityStore returns an empty in-memory pity store.
func NewMemoryPityStore() *MemoryPityStore {
	return &MemoryPityStore{counters: make(map[string]int)}
}

func (s *MemoryPityStore) Get(_ context.Context, playerID, bannerID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[playerID+":"+bannerID], nil
}

func (s *MemoryPityStore) Set(_ context.Context, playerID, bannerID string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[playerID+":"+bannerID] = value
	return nil
}

// RedisPityStore keeps pity counters in redis, surviving restarts and
// shared across instances.
type RedisPityStore struct {
	client *redis.Client
}

// NewRedisPityStore wraps a redis client.
func NewRedisPityStore(client *redis.Client) *RedisPityStore {
	return &RedisPityStore{client: client}
}

func pityKey(playerID, bannerID string) string {
	return fmt.Sprintf("gacha:pity:%s:%s", playerID, bannerID)
}

func (s *RedisPityStore) Get(ctx context.Context, playerID, bannerID string) (int, error) {
	val, err := s.client.Get(ctx, pityKey(playerID, bannerID)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get pity counter: %w", err)
	}
	return val, nil
}

func (s *RedisPityStore) Set(ctx context.Context, playerID, bannerID string, value int) error {
	if err := s.client.Set(ctx, pityKey(playerID, bannerID), value, 0).Err(); err != nil {
		return fmt.Errorf("set pity counter: %w", err)
	}
	return nil
}
