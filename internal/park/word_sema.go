//go:build !(linux && qlock_futex)

package park

import (
	"sync/atomic"

	"github.com/llxisdsh/qlock/internal/opt"
)

// Impl names the active implementation.
const Impl = "sema"

// Word is a 32-bit value that goroutines can block on.
//
// Contract: a waiter calls Wait(x) only after it moved the word to x
// itself, and whoever moves the word away from x calls Wake exactly once.
// Under that contract Wait never returns before the matching Wake. Callers
// must still re-check the word in a loop, the futex implementation may
// return spuriously.
//
// Size: 8 bytes (4 byte word + 4 byte sema).
type Word struct {
	v    atomic.Uint32
	sema opt.Sema
}

// Wait blocks the calling goroutine until the matching Wake. The expected
// value is not checked: every Wait is paired with exactly one Wake, and a
// Wake that comes first leaves a token for Wait to consume.
func (w *Word) Wait(_ uint32) {
	w.sema.Acquire()
}

// Wake wakes the goroutine blocked (or about to block) in Wait.
func (w *Word) Wake() {
	w.sema.Release()
}

// Pending returns the number of wakes not yet consumed by Wait.
func (w *Word) Pending() uint32 {
	return atomic.LoadUint32((*uint32)(&w.sema))
}
