package qlock

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/llxisdsh/qlock/internal/opt"
	"github.com/llxisdsh/qlock/internal/park"
)

// cacheLineSize is the size of a cache line in bytes.
const cacheLineSize = opt.CacheLineSize_

// Wait node states. A node is "ready" to run once it is nodeGranted;
// the other two states both mean "still waiting" and only differ in
// whether the owner is blocked in the parker.
const (
	nodeGranted uint32 = iota
	nodeWaiting
	nodeParked
)

// waitNode links one acquisition into a QueueLock's queue.
//
// The owner is the goroutine inside Lock/Unlock. The queue holds
// non-owning references to it: tail, and the predecessor's next.
// next is written by the successor, never by the owner (except the reset
// in acquireNode). state is written by the owner when it enqueues behind
// a predecessor and by the predecessor when it grants the lock.
//
// Each node fills whole cache lines so that every waiter spins on memory
// nobody else is spinning on.
type waitNode struct {
	next  atomic.Pointer[waitNode]
	state park.Word
	_     [(cacheLineSize - waitNodeSize%cacheLineSize) % cacheLineSize]byte
}

const waitNodeSize = unsafe.Sizeof(struct {
	next  unsafe.Pointer
	state park.Word
}{})

// nodeRegistry supplies reusable wait nodes.
//
// There is one node per in-flight acquisition rather than one per thread:
// goroutines move between threads, and a node must survive until its
// release. The pool keeps per-P caches, so a node normally comes back to
// the processor that last used it and no acquisition allocates in steady
// state.
type nodeRegistry struct {
	pool sync.Pool
}

var nodes = nodeRegistry{
	pool: sync.Pool{New: func() any { return new(waitNode) }},
}

// acquireNode returns a node exclusively owned by the caller. A node may
// come back with a stale next from the acquisition that last used it; it
// is cleared here so the new acquisition is not mistaken for one that
// already has a successor.
func (r *nodeRegistry) acquireNode() *waitNode {
	n := r.pool.Get().(*waitNode)
	n.next.Store(nil)
	n.state.Store(nodeGranted)
	return n
}

// releaseNode gives n back. The caller guarantees that neither the queue
// nor a predecessor will touch n again.
func (r *nodeRegistry) releaseNode(n *waitNode) {
	r.pool.Put(n)
}

