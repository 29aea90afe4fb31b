package opt

import (
	_ "unsafe" // for linkname
)

// CanSpin reports whether active spinning makes sense at iteration i:
// the machine is multicore, there are idle Ps and the local run queue is
// empty. It stops answering true after a handful of iterations.
func CanSpin(i int) bool {
	return runtime_canSpin(i)
}

// DoSpin executes a short burst of PAUSE-like instructions.
func DoSpin() {
	runtime_doSpin()
}

// nolint:all
//
//go:linkname runtime_canSpin sync.runtime_canSpin
//goland:noinspection ALL
func runtime_canSpin(i int) bool

// nolint:all
//
//go:linkname runtime_doSpin sync.runtime_doSpin
//goland:noinspection ALL
func runtime_doSpin()
