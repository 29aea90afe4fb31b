package qlock

import (
	"runtime"
	"sync/atomic"

	"github.com/llxisdsh/qlock/internal/opt"
)

// SpinLock is a test-and-set spin lock.
//
// It is a single atomic flag acquired with a CAS retry loop. There is no
// queue and no fairness: whoever wins the CAS after a release gets the
// lock. It suits tiny critical sections with little contention, and
// callers that need TryLock semantics without a queue.
//
// Size: 4 bytes.
type SpinLock struct {
	_     noCopy
	state atomic.Uint32
}

// Lock acquires the lock, yielding the processor between attempts.
func (l *SpinLock) Lock() {
	for !l.TryLock() {
		runtime.Gosched()
	}
}

// LockSpin acquires the lock, busy-waiting on the CPU between attempts.
// Attempts only CAS once the flag reads free, so waiters spin on a shared
// cache line instead of bouncing it.
func (l *SpinLock) LockSpin() {
	for !l.TryLock() {
		for l.state.Load() != 0 {
			opt.DoSpin()
		}
	}
}

// TryLock acquires the lock if it is free.
func (l *SpinLock) TryLock() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Unlock releases the lock.
// It is a run-time error if l is not locked on entry to Unlock.
func (l *SpinLock) Unlock() {
	if l.state.Swap(0) == 0 {
		panic("qlock: unlock of unlocked SpinLock")
	}
}

// SpinMutex is a value protected by a SpinLock. It follows the Mutex
// contract without the queue: acquisition order is unspecified.
type SpinMutex[T any] struct {
	_     noCopy
	mu    SpinLock
	value T
}

// NewSpinMutex creates an unlocked SpinMutex wrapping value.
func NewSpinMutex[T any](value T) *SpinMutex[T] {
	return &SpinMutex[T]{value: value}
}

// Lock acquires the lock, yielding between attempts, and returns the guard
// for the value.
func (m *SpinMutex[T]) Lock() *Guard[T] {
	m.mu.Lock()
	return newGuard[T](&m.mu, &m.value)
}

// LockSpin is like Lock but busy-waits between attempts.
func (m *SpinMutex[T]) LockSpin() *Guard[T] {
	m.mu.LockSpin()
	return newGuard[T](&m.mu, &m.value)
}

// TryLock returns a guard if the lock is free.
func (m *SpinMutex[T]) TryLock() (*Guard[T], bool) {
	if !m.mu.TryLock() {
		return nil, false
	}
	return newGuard[T](&m.mu, &m.value), true
}

// Do runs fn with exclusive access to the value.
func (m *SpinMutex[T]) Do(fn func(v *T)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.value)
}
