package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/socconsole/internal/logging"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newCache(stale time.Duration) (*Cache, *clock) {
	clk := &clock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New(stale, logging.Discard())
	c.now = clk.now
	return c, clk
}

func counter(n *int32, v string) func(context.Context) (any, error) {
	return func(context.Context) (any, error) {
		atomic.AddInt32(n, 1)
		return v, nil
	}
}

func TestFetch_ZeroStaleTimeAlwaysRefetches(t *testing.T) {
	c, _ := newCache(0)
	var n int32

	for i := 0; i < 3; i++ {
		v, err := c.Fetch(context.Background(), "metrics", counter(&n, "m"))
		require.NoError(t, err)
		assert.Equal(t, "m", v)
	}
	assert.EqualValues(t, 3, n)
	assert.Equal(t, 1, c.Len())
}

func TestFetch_FreshWithinStaleTime(t *testing.T) {
	c, clk := newCache(time.Minute)
	var n int32
	ctx := context.Background()

	_, _ = c.Fetch(ctx, "k", counter(&n, "v"))
	clk.t = clk.t.Add(30 * time.Second)
	_, _ = c.Fetch(ctx, "k", counter(&n, "v"))
	assert.EqualValues(t, 1, n)

	clk.t = clk.t.Add(31 * time.Second)
	_, _ = c.Fetch(ctx, "k", counter(&n, "v"))
	assert.EqualValues(t, 2, n)
}

func TestFetch_ErrorNotCached(t *testing.T) {
	c, _ := newCache(time.Minute)
	boom := errors.New("boom")

	_, err := c.Fetch(context.Background(), "k", func(context.Context) (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, c.Len())
}

func TestFetch_ConcurrentCallersShareOneCall(t *testing.T) {
	c, _ := newCache(0)
	var n int32
	release := make(chan struct{})
	started := make(chan struct{})

	fn := func(context.Context) (any, error) {
		if atomic.AddInt32(&n, 1) == 1 {
			close(started)
		}
		<-release
		return "v", nil
	}

	var wg sync.WaitGroup
	results := make([]any, 5)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = c.Fetch(context.Background(), "k", fn)
	}()
	<-started
	for i := 1; i < len(results); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.Fetch(context.Background(), "k", fn)
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, n)
	for _, r := range results {
		assert.Equal(t, "v", r)
	}
}

func TestClear_DiscardsInFlightResult(t *testing.T) {
	c, _ := newCache(time.Hour)
	release := make(chan struct{})
	started := make(chan struct{})

	var err error
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err = c.Fetch(context.Background(), "dashboard/metrics", func(context.Context) (any, error) {
			close(started)
			<-release
			return "old user's metrics", nil
		})
	}()

	<-started
	c.Clear()
	close(release)
	<-done

	assert.ErrorIs(t, err, ErrCleared)
	assert.Zero(t, c.Len())

	var n int32
	v, err := c.Fetch(context.Background(), "dashboard/metrics", counter(&n, "new user's metrics"))
	require.NoError(t, err)
	assert.Equal(t, "new user's metrics", v)
	assert.EqualValues(t, 1, n)
}

func TestInvalidate(t *testing.T) {
	c, _ := newCache(time.Hour)
	ctx := context.Background()
	var alerts, users int32

	_, _ = c.Fetch(ctx, "alerts/0", counter(&alerts, "a"))
	_, _ = c.Fetch(ctx, "users", counter(&users, "u"))

	c.Invalidate("alerts/")
	_, _ = c.Fetch(ctx, "alerts/0", counter(&alerts, "a"))
	_, _ = c.Fetch(ctx, "users", counter(&users, "u"))
	assert.EqualValues(t, 2, alerts)
	assert.EqualValues(t, 1, users)

	c.Invalidate()
	_, _ = c.Fetch(ctx, "users", counter(&users, "u"))
	assert.EqualValues(t, 2, users)
}

func TestGet_Typed(t *testing.T) {
	c, _ := newCache(time.Hour)
	ctx := context.Background()

	n, err := Get(ctx, c, "count", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = Get(ctx, c, "count", func(context.Context) (string, error) { return "x", nil })
	assert.ErrorContains(t, err, `cache entry "count" holds int`)
}
