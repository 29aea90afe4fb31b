package qlock

import (
	"github.com/llxisdsh/pb"
)

// LockGroup allows FIFO locking on arbitrary keys (string, int, struct, etc.).
// Each key gets its own QueueLock on first use.
//
// Features:
//   - Infinite Keys: No need to pre-allocate locks.
//   - Auto-Cleanup: A key's lock is removed from memory when it is unlocked
//     and nobody else is waiting on it.
//   - Fairness per key: callers locking the same key are served in order.
//
// Usage:
//
//	var group LockGroup[string]
//	group.Lock("user-123")
//	// Critical section for user-123
//	group.Unlock("user-123")
//
// Implementation Note:
// Entries are reference counted by lockers (holder plus waiters). The count
// is only changed inside MapOf.ProcessEntry, which serializes per key.
type LockGroup[K comparable] struct {
	_ noCopy
	m pb.MapOf[K, *lockGroupEntry]
}

type lockGroupEntry struct {
	mu  QueueLock
	ref int32
}

// Lock acquires the lock for k.
func (g *LockGroup[K]) Lock(k K) {
	e, _ := g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *lockGroupEntry]) (*pb.EntryOf[K, *lockGroupEntry], *lockGroupEntry, bool) {
			if l != nil {
				l.Value.ref++
				return l, l.Value, true
			}
			e := &lockGroupEntry{ref: 1}
			return &pb.EntryOf[K, *lockGroupEntry]{Value: e}, e, false
		},
	)
	e.mu.Lock()
}

// Unlock releases the lock for k.
// It is a run-time error if k is not locked on entry to Unlock.
func (g *LockGroup[K]) Unlock(k K) {
	e, ok := g.m.Load(k)
	if !ok {
		panic("qlock: unlock of unlocked LockGroup key")
	}
	e.mu.Unlock()

	g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *lockGroupEntry]) (*pb.EntryOf[K, *lockGroupEntry], *lockGroupEntry, bool) {
			if l == nil {
				return nil, nil, false
			}
			l.Value.ref--
			if l.Value.ref <= 0 {
				return nil, nil, true
			}
			return l, nil, false
		},
	)
}

// Do runs fn while holding the lock for k.
func (g *LockGroup[K]) Do(k K, fn func()) {
	g.Lock(k)
	defer g.Unlock(k)
	fn()
}
