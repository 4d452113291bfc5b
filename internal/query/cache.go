// Package query is the client-side query cache: keyed entries with a stale
// time, shared in-flight fetches, invalidation with background refetch, and
// optimistic mutations that can be rolled back.
package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/logging"
)

// ErrCancelled is returned to callers whose fetch was superseded by Cancel.
var ErrCancelled = errors.New("query cancelled")

type fetchFunc func(ctx context.Context) (any, error)

type entry struct {
	value     any
	has       bool
	updatedAt time.Time
	invalid   bool
	staleTime time.Duration

	gen     uint64
	cancel  context.CancelFunc
	fetcher fetchFunc

	subs   map[int]func(any)
	nextID int
}

type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	group   singleflight.Group

	base context.Context
	now  func() time.Time
	wg   sync.WaitGroup
}

type Option func(*Cache)

// WithClock replaces time.Now for staleness checks.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithBaseContext sets the context background refetches run under.
func WithBaseContext(ctx context.Context) Option {
	return func(c *Cache) { c.base = ctx }
}

func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[Key]*entry),
		base:    context.Background(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Cache) entry(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}

func (e *entry) fresh(now time.Time) bool {
	return e.has && !e.invalid && now.Sub(e.updatedAt) < e.staleTime
}

// Fetch returns the cached value for key while it is fresh, and otherwise runs
// fn. Concurrent fetches of the same key share one call to fn.
func Fetch[T any](ctx context.Context, c *Cache, key Key, staleTime time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.fetch(ctx, key, staleTime, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("query %s: cached %T, want %T", key, v, zero)
	}
	return out, nil
}

func (c *Cache) fetch(ctx context.Context, key Key, staleTime time.Duration, fn fetchFunc) (any, error) {
	c.mu.Lock()
	e := c.entry(key)
	e.staleTime = staleTime
	e.fetcher = fn
	if e.fresh(c.now()) {
		v := e.value
		c.mu.Unlock()
		return v, nil
	}
	gen := e.gen
	c.mu.Unlock()

	ch := c.group.DoChan(flightKey(key, gen), func() (any, error) {
		return c.run(ctx, key, gen, fn)
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func flightKey(key Key, gen uint64) string {
	return key.String() + "#" + strconv.FormatUint(gen, 10)
}

// run performs one fetch for generation gen. A result that arrives after the
// key moved to a newer generation is dropped.
func (c *Cache) run(ctx context.Context, key Key, gen uint64, fn fetchFunc) (any, error) {
	c.mu.Lock()
	e := c.entry(key)
	if e.gen != gen {
		c.mu.Unlock()
		return nil, ErrCancelled
	}
	fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	e.cancel = cancel
	c.mu.Unlock()
	defer cancel()

	v, err := fn(fctx)

	c.mu.Lock()
	if e.gen != gen {
		c.mu.Unlock()
		// A failure of the fetch itself outlives the cancel; only the
		// cancellation it caused is folded into ErrCancelled.
		if err != nil && (fctx.Err() == nil || !errors.Is(err, context.Canceled)) {
			return nil, err
		}
		logging.FromContext(ctx).Debug("query_result_discarded", "key", key.String())
		return nil, ErrCancelled
	}
	e.cancel = nil
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	e.value, e.has, e.invalid, e.updatedAt = v, true, false, c.now()
	subs := e.listeners()
	c.mu.Unlock()

	notify(subs, v)
	return v, nil
}

func (e *entry) listeners() []func(any) {
	out := make([]func(any), 0, len(e.subs))
	for _, fn := range e.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(any), v any) {
	for _, fn := range subs {
		fn(v)
	}
}

// Get reads the cached value for key without fetching.
func Get[T any](c *Cache, key Key) (T, bool) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || !e.has {
		return zero, false
	}
	v, ok := e.value.(T)
	return v, ok
}

// Set writes v under key as if it had just been fetched.
func (c *Cache) Set(key Key, v any) {
	c.mu.Lock()
	e := c.entry(key)
	e.value, e.has, e.invalid, e.updatedAt = v, true, false, c.now()
	subs := e.listeners()
	c.mu.Unlock()
	notify(subs, v)
}

// Update replaces the value under key with fn(old). old is nil when nothing
// is cached.
func (c *Cache) Update(key Key, fn func(old any) any) {
	c.mu.Lock()
	e := c.entry(key)
	var old any
	if e.has {
		old = e.value
	}
	v := fn(old)
	e.value, e.has, e.invalid, e.updatedAt = v, true, false, c.now()
	subs := e.listeners()
	c.mu.Unlock()
	notify(subs, v)
}

// Cancel abandons any in-flight fetch of key. Its result, if it still
// arrives, is not written to the cache.
func (c *Cache) Cancel(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return
	}
	e.gen++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// Invalidate marks key stale. A key with subscribers is refetched in the
// background using its last fetcher.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		c.invalidate(key, e)
	}
}

// InvalidateResource marks every key of resource stale.
func (c *Cache) InvalidateResource(resource string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if k.Resource == resource {
			c.invalidate(k, e)
		}
	}
}

func (c *Cache) invalidate(key Key, e *entry) {
	e.invalid = true
	if len(e.subs) == 0 || e.fetcher == nil {
		return
	}
	fn, stale := e.fetcher, e.staleTime
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if _, err := c.fetch(c.base, key, stale, fn); err != nil && !errors.Is(err, ErrCancelled) {
			logging.FromContext(c.base).Warn("query_refetch",
				slog.String("key", key.String()),
				slog.String("status", "failed"),
				slog.Any("error", err),
			)
		}
	}()
}

// Subscribe calls fn with every new value stored under key until the returned
// func is called.
func (c *Cache) Subscribe(key Key, fn func(any)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(key)
	if e.subs == nil {
		e.subs = make(map[int]func(any))
	}
	id := e.nextID
	e.nextID++
	e.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(e.subs, id)
	}
}

// Remove drops key from the cache, cancelling its in-flight fetch.
func (c *Cache) Remove(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		e.gen++
		if e.cancel != nil {
			e.cancel()
		}
		delete(c.entries, key)
	}
}

// Clear drops every entry. Used when the signed-in user changes.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		e.gen++
		if e.cancel != nil {
			e.cancel()
		}
		delete(c.entries, k)
	}
}

// Wait blocks until background refetches started so far have finished.
func (c *Cache) Wait() { c.wg.Wait() }

type snapshot struct {
	value     any
	has       bool
	updatedAt time.Time
}

func (c *Cache) snapshot(key Key) snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return snapshot{}
	}
	return snapshot{value: e.value, has: e.has, updatedAt: e.updatedAt}
}

func (c *Cache) restore(key Key, s snapshot) {
	c.mu.Lock()
	e := c.entry(key)
	e.value, e.has, e.invalid, e.updatedAt = s.value, s.has, false, s.updatedAt
	subs := e.listeners()
	c.mu.Unlock()
	if s.has {
		notify(subs, s.value)
	}
}
