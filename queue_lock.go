// Package qlock provides a fair, FIFO queue lock in the Mellor-Crummey-Scott
// style, and value-guarding locks built on it.
package qlock

import (
	"sync/atomic"
)

// QueueLock is a fair, FIFO (First-In-First-Out) mutual exclusion lock.
//
// Unlike sync.Mutex, which allows "barging" (newcomers can steal the lock),
// QueueLock grants the lock in the exact order in which Lock() calls joined
// the queue.
//
// Implementation:
// It is an MCS lock. Every acquisition brings its own wait node and appends
// it to the queue with a single atomic swap of `tail`. A waiter watches only
// its own node, so a release touches exactly one cache line besides the
// lock itself.
//   - Lock(): swap our node into `tail`. If there was a predecessor, link
//     ourselves behind it and wait on our node: spin first, then park.
//   - Unlock(): if nobody linked behind us, CAS `tail` back to nil. Otherwise
//     (or if the CAS loses to a newcomer that has not linked yet) wait for
//     the link, then grant the successor and wake it if it parked.
//
// Compared to TicketLock, waiters park instead of sleeping on a timer, so
// long critical sections cost no CPU and the handoff latency is a wakeup,
// not a backoff period.
//
// A QueueLock must not be copied after first use. It is not reentrant: a
// goroutine that calls Lock while holding the lock deadlocks. Like
// sync.Mutex it is not associated with a goroutine, one goroutine may lock
// and another unlock.
//
// The zero value is an unlocked lock with default configuration.
type QueueLock struct {
	_    noCopy
	tail atomic.Pointer[waitNode]

	// holder is the node of the current owner. It is written after the
	// lock is granted and read by Unlock, so the lock itself orders it.
	holder *waitNode

	spinBudget int32
	spinOnly   bool
}

// enqueueHook, when set, runs between the tail swap and the link into the
// predecessor, the window in which a releasing predecessor sees a newer
// tail but no successor yet. Tests use it to widen that window.
var enqueueHook func()

// NewQueueLock creates a QueueLock with the given options.
func NewQueueLock(opts ...func(*LockConfig)) *QueueLock {
	l := &QueueLock{}
	l.configure(opts)
	return l
}

func (l *QueueLock) configure(opts []func(*LockConfig)) {
	var cfg LockConfig
	for _, o := range opts {
		o(&cfg)
	}
	l.spinBudget = int32(cfg.spinBudget)
	l.spinOnly = cfg.spinOnly
}

// Lock acquires the lock. Blocks until every earlier caller has been
// granted and has released the lock.
func (l *QueueLock) Lock() {
	l.holder = l.acquire()
}

// TryLock acquires the lock only if it is free and nobody is queued.
// It never joins the queue.
func (l *QueueLock) TryLock() bool {
	n := nodes.acquireNode()
	if l.tail.CompareAndSwap(nil, n) {
		l.holder = n
		return true
	}
	nodes.releaseNode(n)
	return false
}

// Unlock releases the lock and grants it to the next queued caller, if any.
// It is a run-time error if l is not locked on entry to Unlock.
func (l *QueueLock) Unlock() {
	n := l.holder
	if n == nil {
		panic("qlock: unlock of unlocked QueueLock")
	}
	l.holder = nil
	l.release(n)
}

// Locked reports whether the lock is held or has queued waiters.
// The answer may be stale by the time it is returned.
func (l *QueueLock) Locked() bool {
	return l.tail.Load() != nil
}

// acquire runs the enqueue protocol and returns the caller's node once the
// lock is granted.
func (l *QueueLock) acquire() *waitNode {
	n := nodes.acquireNode()
	pred := l.tail.Swap(n)
	if pred == nil {
		return n
	}

	// Must be visible before the link: the predecessor may grant us the
	// moment it can see us.
	n.state.Store(nodeWaiting)
	if enqueueHook != nil {
		enqueueHook()
	}
	pred.next.Store(n)

	l.wait(n)
	return n
}

// wait blocks until n is granted. The grant (predecessor's Swap) and our
// Load of nodeGranted are both atomic, which orders every write the
// predecessor made under the lock before our reads.
func (l *QueueLock) wait(n *waitNode) {
	budget := int(l.spinBudget)
	if budget <= 0 {
		budget = defaultSpinBudget
	}
	for i := 0; ; i++ {
		s := n.state.Load()
		if s == nodeGranted {
			return
		}
		if i < budget || l.spinOnly {
			spinWait(i)
			continue
		}
		if s == nodeWaiting && !n.state.CompareAndSwap(nodeWaiting, nodeParked) {
			// Granted in between.
			continue
		}
		n.state.Wait(nodeParked)
	}
}

// release runs the dequeue protocol for the owner's node n. It never blocks:
// the only wait is for a successor that already swapped itself into tail
// and is a few instructions away from linking.
func (l *QueueLock) release(n *waitNode) {
	succ := n.next.Load()
	if succ == nil {
		if l.tail.CompareAndSwap(n, nil) {
			nodes.releaseNode(n)
			return
		}
		for i := 0; ; i++ {
			if succ = n.next.Load(); succ != nil {
				break
			}
			spinWait(i)
		}
	}
	// Nothing links to n any more: the successor has linked, and tail
	// points at the successor or beyond.
	nodes.releaseNode(n)

	if succ.state.Swap(nodeGranted) == nodeParked {
		succ.state.Wake()
	}
}

