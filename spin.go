package qlock

import (
	"runtime"
	"time"

	"github.com/llxisdsh/qlock/internal/opt"
)

// noCopy may be added to structs which must not be copied
// after the first use.
//
// See https://golang.org/issues/8005#issuecomment-190753527
// for details.
//
// Note that it must not be embedded, due to the Lock and Unlock methods.
type noCopy struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// spinWait performs spin round i of a goroutine waiting for a handoff that
// is known to be imminent. The first rounds busy-spin on the CPU when the
// runtime considers it worthwhile; later rounds yield the P so that the
// goroutine being waited for can run even with GOMAXPROCS=1.
func spinWait(i int) {
	if opt.CanSpin(i) {
		opt.DoSpin()
		return
	}
	runtime.Gosched()
}

// delay is the backoff of the unqueued spin locks, which have no parking
// and may wait for a long critical section.
func delay(spins *int) {
	if opt.CanSpin(*spins) {
		*spins++
		opt.DoSpin()
		return
	}
	*spins = 0
	// time.Sleep with non-zero duration (≈Millisecond level) works
	// effectively as backoff under high concurrency.
	// The 500µs duration is derived from Facebook/folly's implementation:
	// https://github.com/facebook/folly/blob/main/folly/synchronization/detail/Sleeper.h
	time.Sleep(500 * time.Microsecond)
}
