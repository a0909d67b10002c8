// Package session keeps live battle state in memory: battle id to
// battle, with a secondary index from player id to their single active
// battle. Reads return the shared battle under the per-battle lock;
// mutations go through Update so writes to one battle never interleave.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/ngoa-long/tamquoc/backend/internal/game"
)

// Store errors.
var (
	ErrBattleNotFound = errors.New("battle not found")
	ErrActiveBattle   = errors.New("player already has an active battle")
)

type entry struct {
	mu        sync.Mutex
	battle    *game.Battle
	expiresAt time.Time
}

// Store is the in-memory battle session store.
type Store struct {
	mu       sync.RWMutex
	battles  map[string]*entry
	byPlayer map[string]string // player id -> active battle id
	ttl      time.Duration
}

// NewStore builds a store whose sessions expire after ttl of
// inactivity. A non-positive ttl disables expiry.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		battles:  make(map[string]*entry),
		byPlayer: make(map[string]string),
		ttl:      ttl,
	}
}

// Put registers a new battle. A player holds at most one active battle.
func (s *Store) Put(b *game.Battle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.byPlayer[b.PlayerID]; ok {
		if e, live := s.battles[existing]; live && !s.expired(e) {
			return ErrActiveBattle
		}
		// Stale index entry from an expired session.
		delete(s.battles, existing)
	}
	s.battles[b.ID] = &entry{battle: b, expiresAt: s.deadline()}
	s.byPlayer[b.PlayerID] = b.ID
	return nil
}

// Update runs fn against the battle under its lock. Returning an error
// from fn aborts nothing; the battle may already be mutated, matching
// the engine's all-or-nothing contract at the action level.
func (s *Store) Update(battleID string, fn func(*game.Battle) error) error {
	e, err := s.lookup(battleID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expiresAt = s.deadline()
	return fn(e.battle)
}

// View runs fn against the battle under its lock without refreshing
// the session deadline.
func (s *Store) View(battleID string, fn func(*game.Battle) error) error {
	e, err := s.lookup(battleID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.battle)
}

// ActiveBattleID returns the player's live battle id, if any.
func (s *Store) ActiveBattleID(playerID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byPlayer[playerID]
	if !ok {
		return "", false
	}
	e, live := s.battles[id]
	if !live || s.expired(e) {
		return "", false
	}
	return id, true
}

// Remove drops a battle and clears the player index.
func (s *Store) Remove(battleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.battles[battleID]
	if !ok {
		return
	}
	delete(s.battles, battleID)
	if s.byPlayer[e.battle.PlayerID] == battleID {
		delete(s.byPlayer, e.battle.PlayerID)
	}
}

// Sweep evicts expired sessions. Called periodically by the server.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, e := range s.battles {
		if s.expired(e) {
			delete(s.battles, id)
			if s.byPlayer[e.battle.PlayerID] == id {
				delete(s.byPlayer, e.battle.PlayerID)
			}
			evicted++
		}
	}
	return evicted
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.battles)
}

func (s *Store) lookup(battleID string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.battles[battleID]
	if !ok || s.expired(e) {
		return nil, ErrBattleNotFound
	}
	return e, nil
}

func (s *Store) deadline() time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return time.Now().Add(s.ttl)
}

func (s *Store) expired(e *entry) bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}
