package qlock

import (
	"testing"
	"time"

	"github.com/llxisdsh/qlock/internal/opt"
)

// stressScale shrinks iteration counts under -short and the race detector.
func stressScale(full, reduced int) int {
	if testing.Short() || opt.Race_ {
		return reduced
	}
	return full
}

// waitDone fails the test if fn does not return within d.
func waitDone(t *testing.T, d time.Duration, what string, fn func() error) {
	t.Helper()
	errc := make(chan error, 1)
	go func() { errc <- fn() }()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("%s: %v", what, err)
		}
	case <-time.After(d):
		t.Fatalf("%s did not finish within %v", what, d)
	}
}

// setEnqueueHook installs h for the duration of the test. Tests using it
// must not run in parallel.
func setEnqueueHook(t *testing.T, h func()) {
	t.Helper()
	enqueueHook = h
	t.Cleanup(func() { enqueueHook = nil })
}

// closed reports whether ch is closed without blocking.
func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
