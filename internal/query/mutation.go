package query

import (
	"errors"
	"sync"
)

var ErrSettled = errors.New("mutation already settled")

type MutationState int

const (
	Pending MutationState = iota
	Committed
	RolledBack
)

func (s MutationState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled_back"
	}
	return "unknown"
}

// Mutation is an optimistic write against one cache key. It holds the
// pre-image taken when it began and settles exactly once.
type Mutation[T any] struct {
	cache *Cache
	key   Key

	mu    sync.Mutex
	state MutationState
	prev  snapshot
}

// Begin cancels in-flight fetches of key, snapshots the cached value and
// stores the optimistic value built by next. next receives the cached value
// and whether there was one; when it reports false the cache is left as is.
// Values implementing Clone() T are cloned before they are kept as the
// pre-image.
func Begin[T any](c *Cache, key Key, next func(cur T, ok bool) (T, bool)) *Mutation[T] {
	c.Cancel(key)

	snap := c.snapshot(key)
	var cur T
	ok := false
	if snap.has {
		cur, ok = snap.value.(T)
		if cl, isCloner := any(cur).(interface{ Clone() T }); ok && isCloner {
			snap.value = cl.Clone()
		}
	}

	m := &Mutation[T]{cache: c, key: key, prev: snap}
	if v, set := next(cur, ok); set {
		c.Set(key, v)
	}
	return m
}

func (m *Mutation[T]) Key() Key { return m.key }

func (m *Mutation[T]) State() MutationState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Previous returns the pre-image captured by Begin.
func (m *Mutation[T]) Previous() (T, bool) {
	v, ok := m.prev.value.(T)
	return v, ok && m.prev.has
}

// Commit keeps the optimistic value.
func (m *Mutation[T]) Commit() error {
	return m.settle(Committed)
}

// Rollback puts the pre-image back, or removes the key when there was none.
func (m *Mutation[T]) Rollback() error {
	if err := m.settle(RolledBack); err != nil {
		return err
	}
	if m.prev.has {
		m.cache.restore(m.key, m.prev)
	} else {
		m.cache.Remove(m.key)
	}
	return nil
}

func (m *Mutation[T]) settle(to MutationState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Pending {
		return ErrSettled
	}
	m.state = to
	return nil
}
