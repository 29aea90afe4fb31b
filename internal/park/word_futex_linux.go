//go:build linux && qlock_futex

package park

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Impl names the active implementation.
const Impl = "futex"

const (
	futexWait        = 0
	futexWake        = 1
	futexPrivateFlag = 128
)

// Word is a 32-bit value that goroutines can block on.
//
// Contract: a waiter calls Wait(x) only after it moved the word to x
// itself, and whoever moves the word away from x calls Wake exactly once.
// Wait may return spuriously (EINTR, EAGAIN, a stale wake on a reused
// word), so callers re-check the word in a loop.
//
// Size: 4 bytes.
type Word struct {
	v atomic.Uint32
}

// Wait blocks the calling OS thread while the word equals expect.
func (w *Word) Wait(expect uint32) {
	// EAGAIN means the word already changed, EINTR is a spurious return.
	// Both are handled by the caller's re-check.
	_, _, _ = unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(&w.v)),
		futexWait|futexPrivateFlag,
		uintptr(expect),
		0, 0, 0,
	)
}

// Wake wakes at most one thread blocked in Wait on this word.
func (w *Word) Wake() {
	_, _, _ = unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(&w.v)),
		futexWake|futexPrivateFlag,
		1,
		0, 0, 0,
	)
}

// Pending returns the number of wakes not yet consumed by Wait. A futex
// wake with no thread blocked on the word is dropped, so it is always 0.
func (w *Word) Pending() uint32 {
	return 0
}
