package qlock

// Mutex is a value protected by a QueueLock.
//
// The value is only reachable through the Guard returned by Lock, and
// guards are handed out in FIFO order.
//
// Usage:
//
//	m := NewMutex(map[string]int{})
//	g := m.Lock()
//	g.Value()["hits"]++
//	g.Unlock()
//
//	// Or, releasing on return, panic and runtime.Goexit alike:
//	m.Do(func(v *map[string]int) { (*v)["hits"]++ })
//
// Lock and TryLock allocate the returned Guard on the heap, one
// allocation per acquisition. Do takes the lock directly and does not
// allocate.
//
// The zero value is an unlocked Mutex holding the zero T.
type Mutex[T any] struct {
	_     noCopy
	mu    QueueLock
	value T
}

// NewMutex creates an unlocked Mutex wrapping value.
func NewMutex[T any](value T, opts ...func(*LockConfig)) *Mutex[T] {
	m := &Mutex[T]{value: value}
	m.mu.configure(opts)
	return m
}

// Lock blocks until the caller is granted the lock and returns the guard
// for the value.
func (m *Mutex[T]) Lock() *Guard[T] {
	m.mu.Lock()
	return newGuard[T](&m.mu, &m.value)
}

// TryLock returns a guard only if the lock is free and nobody is queued.
func (m *Mutex[T]) TryLock() (*Guard[T], bool) {
	if !m.mu.TryLock() {
		return nil, false
	}
	return newGuard[T](&m.mu, &m.value), true
}

// Do runs fn with exclusive access to the value. The lock is released
// when fn returns, panics or calls runtime.Goexit.
func (m *Mutex[T]) Do(fn func(v *T)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.value)
}
