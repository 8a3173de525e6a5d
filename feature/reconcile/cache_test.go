package reconcile

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	engine "mailrecon/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingLoader(calls *int32, err error) loadFunc {
	return func(ctx context.Context, location string) ([]engine.Item, error) {
		atomic.AddInt32(calls, 1)
		if err != nil {
			return nil, err
		}
		return []engine.Item{{ID: location + "/1"}}, nil
	}
}

func TestSourceCache_SharesLoads(t *testing.T) {
	var calls int32
	cache := newSourceCache(time.Hour, countingLoader(&calls, nil))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, err := cache.Get(context.Background(), "s3://box/2024")
			assert.NoError(t, err)
			assert.Len(t, items, 1)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestSourceCache_Expiry(t *testing.T) {
	var calls int32
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	cache := newSourceCache(time.Minute, countingLoader(&calls, nil))
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	_, err = cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls)

	now = now.Add(2 * time.Minute)
	_, err = cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls)

	cache.Invalidate("a")
	_, err = cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.EqualValues(t, 3, calls)
}

func TestSourceCache_NoTTL(t *testing.T) {
	var calls int32
	cache := newSourceCache(0, countingLoader(&calls, nil))

	for i := 0; i < 3; i++ {
		_, err := cache.Get(context.Background(), "a")
		require.NoError(t, err)
	}
	assert.EqualValues(t, 3, calls)
}

func TestSourceCache_ErrorsNotCached(t *testing.T) {
	var calls int32
	cache := newSourceCache(time.Hour, countingLoader(&calls, errors.New("offline")))

	_, err := cache.Get(context.Background(), "a")
	assert.ErrorContains(t, err, "offline")
	_, err = cache.Get(context.Background(), "a")
	assert.Error(t, err)
	assert.EqualValues(t, 2, calls)
}

func TestSourceCache_CancelledCallerDoesNotFailOthers(t *testing.T) {
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	var loadErr error
	cache := newSourceCache(time.Hour, func(ctx context.Context, location string) ([]engine.Item, error) {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		loadErr = ctx.Err()
		return []engine.Item{{ID: location + "/1"}}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := cache.Get(ctx, "a")
		first <- err
	}()
	<-started

	second := make(chan []engine.Item, 1)
	go func() {
		items, err := cache.Get(context.Background(), "a")
		assert.NoError(t, err)
		second <- items
	}()

	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)

	close(release)
	assert.Len(t, <-second, 1)
	assert.NoError(t, loadErr)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}
