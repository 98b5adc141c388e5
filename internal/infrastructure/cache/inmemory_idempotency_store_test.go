package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T) (*InMemoryIdempotencyStore, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := newInMemoryIdempotencyStore(time.Hour, clock.Now)
	t.Cleanup(func() { _ = store.Close() })
	return store, clock
}

func TestInMemoryIdempotencyStore_Claim(t *testing.T) {
	ctx := context.Background()

	t.Run("first claim wins", func(t *testing.T) {
		store, _ := newTestStore(t)
		claimed, err := store.Claim(ctx, "key-1", time.Minute)
		require.NoError(t, err)
		assert.True(t, claimed)

		claimed, err = store.Claim(ctx, "key-1", time.Minute)
		require.NoError(t, err)
		assert.False(t, claimed)
	})

	t.Run("expired claim can be taken again", func(t *testing.T) {
		store, clock := newTestStore(t)
		_, err := store.Claim(ctx, "key-2", time.Minute)
		require.NoError(t, err)

		clock.Advance(time.Minute)
		claimed, err := store.Claim(ctx, "key-2", time.Minute)
		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("release frees the key", func(t *testing.T) {
		store, _ := newTestStore(t)
		_, err := store.Claim(ctx, "key-3", time.Hour)
		require.NoError(t, err)
		require.NoError(t, store.Release(ctx, "key-3"))

		held, err := store.IsClaimed(ctx, "key-3")
		require.NoError(t, err)
		assert.False(t, held)

		claimed, err := store.Claim(ctx, "key-3", time.Hour)
		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("concurrent claims have one winner", func(t *testing.T) {
		store, _ := newTestStore(t)
		var wins atomic.Int32
		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if ok, _ := store.Claim(ctx, "shared", time.Hour); ok {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins.Load())
	})
}

func TestInMemoryIdempotencyStore_IsClaimed(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestStore(t)

	held, err := store.IsClaimed(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, held)

	_, err = store.Claim(ctx, "known", time.Minute)
	require.NoError(t, err)
	held, err = store.IsClaimed(ctx, "known")
	require.NoError(t, err)
	assert.True(t, held)

	clock.Advance(2 * time.Minute)
	held, err = store.IsClaimed(ctx, "known")
	require.NoError(t, err)
	assert.False(t, held)
}

func TestInMemoryIdempotencyStore_Sweep(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestStore(t)

	_, _ = store.Claim(ctx, "short", time.Minute)
	_, _ = store.Claim(ctx, "long", time.Hour)
	assert.Equal(t, 2, store.Size())

	clock.Advance(30 * time.Minute)
	store.sweep()
	assert.Equal(t, 1, store.Size())
}

func TestInMemoryIdempotencyStore_CloseTwice(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
