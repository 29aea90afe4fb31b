package qlock

// defaultSpinBudget is the number of spin rounds a queued waiter performs
// before it parks.
const defaultSpinBudget = 64

// LockConfig defines configurable options for QueueLock and Mutex.
type LockConfig struct {
	// spinBudget is the number of spin rounds before a waiter parks.
	// Zero selects defaultSpinBudget.
	spinBudget int

	// spinOnly disables parking. Waiters spin and yield until granted,
	// which trades CPU for wake latency when critical sections are tiny
	// and there are fewer waiters than Ps.
	spinOnly bool
}

// WithSpinBudget sets how many spin rounds a queued waiter performs before
// parking. The first few rounds spin on the CPU, the rest yield the
// processor. If n is zero or negative, the value is ignored.
func WithSpinBudget(n int) func(*LockConfig) {
	return func(c *LockConfig) {
		if n > 0 {
			c.spinBudget = n
		}
	}
}

// WithSpinOnly configures a lock whose waiters never park.
func WithSpinOnly() func(*LockConfig) {
	return func(c *LockConfig) {
		c.spinOnly = true
	}
}
