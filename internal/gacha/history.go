package gacha

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// HistoryEntry is one recorded pull.
type HistoryEntry struct {
	BannerID       string    `json:"banner_id"`
	HeroTemplateID string    `json:"hero_template_id"`
	Rarity         int       `json:"rarity"`
	IsNew          bool      `json:"is_new"`
	WasPity        bool      `json:"was_pity"`
	PulledAt       time.Time `json:"pulled_at"`
}

// HistoryStore records pulls per player, newest first, capped at
// HistoryCap.
type HistoryStore interface {
	Append(ctx context.Context, playerID string, entries []HistoryEntry) error
	List(ctx context.Context, playerID string, limit int) ([]HistoryEntry, error)
}

// MemoryHistoryStore is the in-process history store.
type MemoryHistoryStore struct {
	mu      sync.Mutex
	entries map[string][]HistoryEntry // newest first
}

// NewMemoryHistoryStore returns an empty in-memory history store.
func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{entries: make(map[string][]HistoryEntry)}
}

func (s *MemoryHistoryStore) Append(_ context.Context, playerID string, entries []HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.entries[playerID]
	for _, e := range entries {
		list = append([]HistoryEntry{e}, list...)
	}
	if len(list) > HistoryCap {
		list = list[:HistoryCap]
	}
	s.entries[playerID] = list
	return nil
}

func (s *MemoryHistoryStore) List(_ context.Context, playerID string, limit int) ([]HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.entries[playerID]
	if limit <= 0 || limit > len(list) {
		limit = len(list)
	}
	out := make([]HistoryEntry, limit)
	copy(out, list[:limit])
	return out, nil
}

// RedisHistoryStore keeps pull history as a capped redis list.
type RedisHistoryStore struct {
	client *redis.Client
}

// NewRedisHistoryStore wraps a redis client.
func NewRedisHistoryStore(client *redis.Client) *RedisHistoryStore {
	return &RedisHistoryStore{client: client}
}

func historyKey(playerID string) string {
	return fmt.Sprintf("gacha:history:%s", playerID)
}

func (s *RedisHistoryStore) Append(ctx context.Context, playerID string, entries []HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}
	key := historyKey(playerID)
	pipe := s.client.TxPipeline()
	for _, e := range entries {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal history entry: %w", err)
		}
		pipe.LPush(ctx, key, payload)
	}
	pipe.LTrim(ctx, key, 0, HistoryCap-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append pull history: %w", err)
	}
	return nil
}

func (s *RedisHistoryStore) List(ctx context.Context, playerID string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 || limit > HistoryCap {
		limit = HistoryCap
	}
	raw, err := s.client.LRange(ctx, historyKey(playerID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list pull history: %w", err)
	}
	out := make([]HistoryEntry, 0, len(raw))
	for _, item := range raw {
		var e HistoryEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("decode history entry: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}
