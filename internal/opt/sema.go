package opt

import (
	_ "unsafe" // for linkname
)

// Sema is a zero-allocation semaphore that parks the calling goroutine
// instead of its OS thread. It is a direct wrapper around
// runtime.semacquire/semrelease, the primitive sync.Mutex parks on.
type Sema uint32

// Acquire blocks until the count is positive, then decrements it.
func (s *Sema) Acquire() {
	runtime_semacquire((*uint32)(s))
}

// Release increments the count and wakes one blocked Acquire, if any.
func (s *Sema) Release() {
	runtime_semrelease((*uint32)(s), false, 0)
}

// nolint:all
//
//go:linkname runtime_semacquire sync.runtime_Semacquire
//goland:noinspection ALL
func runtime_semacquire(s *uint32)

// nolint:all
//
//go:linkname runtime_semrelease sync.runtime_Semrelease
//goland:noinspection ALL
func runtime_semrelease(s *uint32, handoff bool, skipframes int)
