package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func setupCache(t *testing.T) (*Cache, *fakeClock, *Metrics) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)}
	metrics := NewMetrics(prometheus.NewRegistry())
	cache := New(time.Minute, zerolog.Nop(), WithClock(clock.Now), WithMetrics(metrics))
	return cache, clock, metrics
}

func countingFetcher(calls *atomic.Int32, value string) Fetcher[string] {
	return func(context.Context) (string, error) {
		n := calls.Add(1)
		return value + "-" + string(rune('0'+n)), nil
	}
}

func TestQueryCachesFreshValue(t *testing.T) {
	cache, clock, metrics := setupCache(t)
	var calls atomic.Int32
	ctx := context.Background()

	v, err := Query(ctx, cache, "teams", countingFetcher(&calls, "teams"))
	require.NoError(t, err)
	assert.Equal(t, "teams-1", v)

	clock.Advance(30 * time.Second)
	v, err = Query(ctx, cache, "teams", countingFetcher(&calls, "teams"))
	require.NoError(t, err)
	assert.Equal(t, "teams-1", v)
	assert.Equal(t, int32(1), calls.Load())

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.lookups.WithLabelValues(resultMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.lookups.WithLabelValues(resultHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.fetches.WithLabelValues(outcomeOK)))
}

func TestQueryDeduplicatesConcurrentFetches(t *testing.T) {
	cache, _, metrics := setupCache(t)
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	fetch := func(context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return []string{"team-1", "team-2"}, nil
	}

	results := make([][]string, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		results[0], errs[0] = Query(context.Background(), cache, "teams", fetch)
	}()
	<-started
	go func() {
		defer wg.Done()
		results[1], errs[1] = Query(context.Background(), cache, "teams", fetch)
	}()

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.lookups.WithLabelValues(resultMiss)) == 2
	}, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, results[0], results[1])
	assert.Equal(t, int32(1), calls.Load())
}

func TestQueryServesStaleAndRefreshesInBackground(t *testing.T) {
	cache, clock, _ := setupCache(t)
	var calls atomic.Int32
	ctx := context.Background()

	_, err := Query(ctx, cache, "user", countingFetcher(&calls, "user"))
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	v, err := Query(ctx, cache, "user", countingFetcher(&calls, "user"))
	require.NoError(t, err)
	assert.Equal(t, "user-1", v)

	require.Eventually(t, func() bool {
		latest, ok := Peek[string](cache, "user")
		return ok && latest == "user-2"
	}, time.Second, time.Millisecond)
	assert.Equal(t, int32(2), calls.Load())
}

func TestInvalidateForcesRefetch(t *testing.T) {
	cache, _, _ := setupCache(t)
	var calls atomic.Int32
	ctx := context.Background()

	_, err := Query(ctx, cache, "messages", countingFetcher(&calls, "messages"))
	require.NoError(t, err)

	cache.Invalidate("messages")
	stale, ok := Peek[string](cache, "messages")
	assert.True(t, ok)
	assert.Equal(t, "messages-1", stale)

	v, err := Query(ctx, cache, "messages", countingFetcher(&calls, "messages"))
	require.NoError(t, err)
	assert.Equal(t, "messages-2", v)
}

func TestInvalidateUnknownKeyIsHarmless(t *testing.T) {
	cache, _, _ := setupCache(t)
	cache.Invalidate("nothing")
	_, ok := Peek[string](cache, "nothing")
	assert.False(t, ok)
}

func TestSetDataReplacesAndNotifies(t *testing.T) {
	cache, _, _ := setupCache(t)
	var calls atomic.Int32
	ctx := context.Background()

	var got []any
	var mu sync.Mutex
	unsubscribe := cache.Subscribe("recommendations", func(v any) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, v)
	})
	defer unsubscribe()

	_, err := Query(ctx, cache, "recommendations", countingFetcher(&calls, "recs"))
	require.NoError(t, err)

	cache.SetData("recommendations", "recs-updated")
	v, err := Query(ctx, cache, "recommendations", countingFetcher(&calls, "recs"))
	require.NoError(t, err)
	assert.Equal(t, "recs-updated", v)
	assert.Equal(t, int32(1), calls.Load())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []any{"recs-1", "recs-updated"}, got)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	cache, _, _ := setupCache(t)
	var count atomic.Int32
	unsubscribe := cache.Subscribe("teams", func(any) { count.Add(1) })

	cache.SetData("teams", "a")
	unsubscribe()
	cache.SetData("teams", "b")

	assert.Equal(t, int32(1), count.Load())
}

func TestFetchErrorIsNotCached(t *testing.T) {
	cache, _, metrics := setupCache(t)
	ctx := context.Background()
	boom := errors.New("service unavailable")

	_, err := Query(ctx, cache, "visits", func(context.Context) (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)

	_, ok := Peek[string](cache, "visits")
	assert.False(t, ok)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.fetches.WithLabelValues(outcomeError)))

	v, err := Query(ctx, cache, "visits", func(context.Context) (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestFetchErrorReachesEveryWaiter(t *testing.T) {
	cache, _, metrics := setupCache(t)
	boom := errors.New("service unavailable")
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	fetch := func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return "", boom
	}

	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = Query(context.Background(), cache, "labResults", fetch)
	}()
	<-started
	go func() {
		defer wg.Done()
		_, errs[1] = Query(context.Background(), cache, "labResults", fetch)
	}()
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.lookups.WithLabelValues(resultMiss)) == 2
	}, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.ErrorIs(t, errs[0], boom)
	assert.ErrorIs(t, errs[1], boom)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSupersededFetchDoesNotOverwrite(t *testing.T) {
	cache, _, _ := setupCache(t)
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan string)
	go func() {
		v, _ := Query(context.Background(), cache, "user", func(context.Context) (string, error) {
			close(started)
			<-release
			return "old", nil
		})
		done <- v
	}()
	<-started
	cache.SetData("user", "new")
	close(release)

	assert.Equal(t, "old", <-done)
	v, ok := Peek[string](cache, "user")
	require.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestCallerCancelDoesNotFailSharedFetch(t *testing.T) {
	cache, _, _ := setupCache(t)
	release := make(chan struct{})
	started := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error)
	go func() {
		_, err := Query(ctx, cache, "rewards", func(context.Context) (string, error) {
			close(started)
			<-release
			return "rewards", nil
		})
		errCh <- err
	}()
	<-started
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	close(release)
	require.Eventually(t, func() bool {
		v, ok := Peek[string](cache, "rewards")
		return ok && v == "rewards"
	}, time.Second, time.Millisecond)
}

func TestQueryTypeMismatch(t *testing.T) {
	cache, _, _ := setupCache(t)
	cache.SetData("teams", 42)

	_, err := Query(context.Background(), cache, "teams", func(context.Context) (string, error) { return "x", nil })
	assert.Error(t, err)

	_, ok := Peek[string](cache, "teams")
	assert.False(t, ok)
}

func TestNilMetricsIsNoop(t *testing.T) {
	cache := New(time.Minute, zerolog.Nop())
	v, err := Query(context.Background(), cache, "k", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
