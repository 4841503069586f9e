package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockManager_LockUnlock(t *testing.T) {
	lm := NewLockManager()
	ctx := context.Background()

	unlock, err := lm.Lock(ctx, "car-1")
	require.NoError(t, err)
	assert.Equal(t, 1, lm.Len())

	unlock()
	unlock() // second call is a no-op
	assert.Equal(t, 0, lm.Len())

	again, err := lm.Lock(ctx, "car-1")
	require.NoError(t, err, "a released key can be locked again")
	again()
}

func TestLockManager_ContextCancelled(t *testing.T) {
	lm := NewLockManager()

	unlock, err := lm.Lock(context.Background(), "car-1")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = lm.Lock(ctx, "car-1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, lm.Len(), "the abandoned waiter must not leak its reference")
}

func TestLockManager_MutualExclusion(t *testing.T) {
	lm := NewLockManager()
	ctx := context.Background()

	const workers = 50
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := lm.Lock(ctx, "shared")
			if err != nil {
				t.Error(err)
				return
			}
			defer unlock()
			v := counter
			time.Sleep(time.Microsecond)
			counter = v + 1
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
	assert.Equal(t, 0, lm.Len())
}

func TestLockManager_IndependentKeys(t *testing.T) {
	lm := NewLockManager()
	ctx := context.Background()

	unlockA, err := lm.Lock(ctx, "a")
	require.NoError(t, err)
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB, err := lm.Lock(ctx, "b")
		if err == nil {
			unlockB()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on b blocked behind lock on a")
	}
}
