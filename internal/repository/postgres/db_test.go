package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/semaphore"
)

func TestWithSlotBoundsConcurrency(t *testing.T) {
	db := &DB{sem: semaphore.NewWeighted(2)}

	var (
		mu      sync.Mutex
		active  int
		maxSeen int
		wg      sync.WaitGroup
	)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := db.withSlot(context.Background(), func() error {
				mu.Lock()
				active++
				if active > maxSeen {
					maxSeen = active
				}
				mu.Unlock()

				time.Sleep(10 * time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, maxSeen, 2)
	assert.Greater(t, maxSeen, 0)
}

func TestWithSlotCancelledContext(t *testing.T) {
	db := &DB{sem: semaphore.NewWeighted(1)}

	require.NoError(t, db.sem.Acquire(context.Background(), 1))
	defer db.sem.Release(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := db.withSlot(ctx, func() error {
		t.Fatal("fn must not run when no slot can be acquired")
		return nil
	})
	require.Error(t, err)
}
