// Package querycache caches query results by key with at most one fetch in
// flight per key. Entries older than the stale time are served while a
// background refresh runs; invalidated or missing entries block on a fetch.
package querycache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"healthdash/internal/constants"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

type Fetcher[T any] func(ctx context.Context) (T, error)

type entry struct {
	value       any
	updatedAt   time.Time
	invalidated bool
}

type Cache struct {
	mu        sync.Mutex
	group     singleflight.Group
	entries   map[string]*entry
	gens      map[string]uint64
	subs      map[string]map[uint64]func(any)
	nextSubID uint64

	staleTime    time.Duration
	fetchTimeout time.Duration
	now          func() time.Time
	metrics      *Metrics
	logger       zerolog.Logger
}

type Option func(*Cache)

func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Cache) { c.metrics = m }
}

func WithFetchTimeout(d time.Duration) Option {
	return func(c *Cache) { c.fetchTimeout = d }
}

func New(staleTime time.Duration, logger zerolog.Logger, opts ...Option) *Cache {
	c := &Cache{
		entries:      make(map[string]*entry),
		gens:         make(map[string]uint64),
		subs:         make(map[string]map[uint64]func(any)),
		staleTime:    staleTime,
		fetchTimeout: constants.QueryFetchTimeout,
		now:          time.Now,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query returns the cached value for key or loads it with fetch. The value is
// shared with every other caller of key, so callers must copy it before
// mutating slices or maps reachable from it.
func Query[T any](ctx context.Context, c *Cache, key string, fetch Fetcher[T]) (T, error) {
	var zero T
	load := func(ctx context.Context) (any, error) { return fetch(ctx) }

	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && !e.invalidated {
		value := e.value
		fresh := c.now().Sub(e.updatedAt) < c.staleTime
		c.mu.Unlock()

		if fresh {
			c.metrics.lookup(resultHit)
		} else {
			c.metrics.lookup(resultStale)
			c.logger.Debug().Str("key", key).Msg("serving stale entry, refreshing in background")
			c.group.DoChan(key, c.flight(key, load))
		}
		return cast[T](key, value)
	}
	c.mu.Unlock()

	c.metrics.lookup(resultMiss)
	ch := c.group.DoChan(key, c.flight(key, load))
	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return cast[T](key, res.Val)
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// flight runs fetch on a context detached from any single caller, so one
// caller giving up does not fail the others sharing the flight.
func (c *Cache) flight(key string, fetch func(context.Context) (any, error)) func() (any, error) {
	c.mu.Lock()
	gen := c.gens[key]
	c.mu.Unlock()

	return func() (any, error) {
		ctx, cancel := context.WithTimeout(context.Background(), c.fetchTimeout)
		defer cancel()

		value, err := fetch(ctx)
		if err != nil {
			c.metrics.fetch(outcomeError)
			c.logger.Warn().Err(err).Str("key", key).Msg("query fetch failed")
			return nil, err
		}
		c.metrics.fetch(outcomeOK)

		c.mu.Lock()
		if c.gens[key] != gen {
			// invalidated or replaced while in flight; the newer state wins
			c.mu.Unlock()
			c.logger.Debug().Str("key", key).Msg("discarding superseded fetch result")
			return value, nil
		}
		c.entries[key] = &entry{value: value, updatedAt: c.now()}
		listeners := c.listenersLocked(key)
		c.mu.Unlock()

		notify(listeners, value)
		return value, nil
	}
}

// Invalidate forces the next Query for key to fetch again. A fetch already in
// flight is forgotten and its result will not be stored.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	c.gens[key]++
	if e, ok := c.entries[key]; ok {
		e.invalidated = true
	}
	c.mu.Unlock()
	c.group.Forget(key)
	c.logger.Debug().Str("key", key).Msg("query invalidated")
}

// SetData stores value as the fresh result for key and notifies subscribers.
func (c *Cache) SetData(key string, value any) {
	c.mu.Lock()
	c.gens[key]++
	c.entries[key] = &entry{value: value, updatedAt: c.now()}
	listeners := c.listenersLocked(key)
	c.mu.Unlock()
	c.group.Forget(key)

	notify(listeners, value)
}

// Subscribe registers fn to receive every value stored under key.
func (c *Cache) Subscribe(key string, fn func(value any)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextSubID++
	id := c.nextSubID
	if c.subs[key] == nil {
		c.subs[key] = make(map[uint64]func(any))
	}
	c.subs[key][id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs[key], id)
		if len(c.subs[key]) == 0 {
			delete(c.subs, key)
		}
	}
}

// Peek returns the last known value for key without fetching, including
// stale and invalidated entries.
func Peek[T any](c *Cache, key string) (T, bool) {
	var zero T
	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return zero, false
	}
	v, ok := e.value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

func (c *Cache) listenersLocked(key string) []func(any) {
	subs := c.subs[key]
	if len(subs) == 0 {
		return nil
	}
	out := make([]func(any), 0, len(subs))
	for _, fn := range subs {
		out = append(out, fn)
	}
	return out
}

func notify(listeners []func(any), value any) {
	for _, fn := range listeners {
		fn(value)
	}
}

func cast[T any](key string, value any) (T, error) {
	v, ok := value.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("querycache: key %q holds %T, not %T", key, value, zero)
	}
	return v, nil
}
