// Package park provides the blocking capability queued waiters escalate to
// once spinning stops paying off: wait while a 32-bit word holds a value,
// and wake one waiter on that word.
//
// Two implementations exist. The default parks the goroutine on a runtime
// semaphore. With the qlock_futex build tag on linux, the OS thread blocks
// in FUTEX_WAIT on the word itself.
package park

// Load atomically loads the word.
func (w *Word) Load() uint32 {
	return w.v.Load()
}

// Store atomically stores val into the word.
func (w *Word) Store(val uint32) {
	w.v.Store(val)
}

// Swap atomically stores val and returns the previous value.
func (w *Word) Swap(val uint32) uint32 {
	return w.v.Swap(val)
}

// CompareAndSwap executes the compare-and-swap operation on the word.
func (w *Word) CompareAndSwap(old, new uint32) bool {
	return w.v.CompareAndSwap(old, new)
}
