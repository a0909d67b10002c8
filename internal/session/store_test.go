package session

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngoa-long/tamquoc/backend/internal/game"
)

func newBattle(id, playerID string) *game.Battle {
	pos, _ := game.NewGridPosition(0, 0)
	hero := game.NewHero("h-"+id, "tpl", "Hero", game.ElementKim, pos, game.DefaultStats(), 3)
	enemyPos, _ := game.NewGridPosition(2, 2)
	enemy := game.NewEnemy("e-"+id, "tpl", "Enemy", game.ElementMoc, enemyPos, game.DefaultStats())
	return game.NewBattle(id, playerID, "stage_1_1", []*game.Hero{hero}, []game.EnemyUnit{enemy}, rand.New(rand.NewSource(1)))
}

func TestPutAndLookup(t *testing.T) {
	store := NewStore(0)
	b := newBattle("b1", "p1")
	require.NoError(t, store.Put(b))

	id, ok := store.ActiveBattleID("p1")
	require.True(t, ok)
	assert.Equal(t, "b1", id)

	err := store.View("b1", func(got *game.Battle) error {
		assert.Equal(t, "p1", got.PlayerID)
		return nil
	})
	require.NoError(t, err)
}

func TestSingleActiveBattlePerPlayer(t *testing.T) {
	store := NewStore(0)
	require.NoError(t, store.Put(newBattle("b1", "p1")))
	assert.ErrorIs(t, store.Put(newBattle("b2", "p1")), ErrActiveBattle)

	store.Remove("b1")
	require.NoError(t, store.Put(newBattle("b2", "p1")))
}

func TestRemoveClearsPlayerIndex(t *testing.T) {
	store := NewStore(0)
	require.NoError(t, store.Put(newBattle("b1", "p1")))
	store.Remove("b1")

	_, ok := store.ActiveBattleID("p1")
	assert.False(t, ok)
	assert.ErrorIs(t, store.View("b1", func(*game.Battle) error { return nil }), ErrBattleNotFound)
}

func TestUpdateSerializesWrites(t *testing.T) {
	store := NewStore(0)
	require.NoError(t, store.Put(newBattle("b1", "p1")))

	const writers = 20
	const perWriter = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				_ = store.Update("b1", func(b *game.Battle) error {
					b.TurnNumber++
					return nil
				})
			}
		}()
	}
	wg.Wait()

	err := store.View("b1", func(b *game.Battle) error {
		assert.Equal(t, 1+writers*perWriter, b.TurnNumber)
		return nil
	})
	require.NoError(t, err)
}

func TestSweepEvictsExpired(t *testing.T) {
	store := NewStore(10 * time.Millisecond)
	require.NoError(t, store.Put(newBattle("b1", "p1")))
	require.Equal(t, 1, store.Len())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 0, store.Len())

	// The player can start a fresh battle after expiry.
	require.NoError(t, store.Put(newBattle("b2", "p1")))
}
