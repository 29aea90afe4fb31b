package qlock

import "sync"

// Guard grants exclusive access to the value protected by a Mutex or
// SpinMutex, from the Lock call that returned it until Unlock.
//
// Usage:
//
//	g := m.Lock()
//	defer g.Unlock()
//	g.Value().count++
//
// Unlock releases the lock once. Further calls are no-ops, so an early
// g.Unlock() composes with the deferred one. Guards must not be copied;
// a copy would release the lock a second time.
type Guard[T any] struct {
	_     noCopy
	mu    sync.Locker
	value *T
}

// Locker is implemented by the value-guarding locks of this package.
type Locker[T any] interface {
	// Lock blocks until the caller has exclusive access to the value.
	Lock() *Guard[T]
}

var (
	_ Locker[int] = (*Mutex[int])(nil)
	_ Locker[int] = (*SpinMutex[int])(nil)
)

func newGuard[T any](mu sync.Locker, value *T) *Guard[T] {
	return &Guard[T]{mu: mu, value: value}
}

// Value returns a pointer to the protected value. The pointer must not be
// used after Unlock.
func (g *Guard[T]) Value() *T {
	if g.mu == nil {
		panic("qlock: use of released Guard")
	}
	return g.value
}

// Load returns a copy of the protected value.
func (g *Guard[T]) Load() T {
	return *g.Value()
}

// Store replaces the protected value.
func (g *Guard[T]) Store(v T) {
	*g.Value() = v
}

// Unlock releases the lock if g still holds it.
func (g *Guard[T]) Unlock() {
	mu := g.mu
	if mu == nil {
		return
	}
	g.mu = nil
	g.value = nil
	mu.Unlock()
}
