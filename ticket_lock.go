package qlock

import (
	"sync/atomic"
)

// TicketLock is a fair, FIFO (First-In-First-Out) spin-lock.
//
// It is the queue-less sibling of QueueLock: still strictly fair, but all
// waiters watch the same word and nobody parks.
//   - Lock(): Takes a ticket number. Spins/Sleeps until `serving` == `my_ticket`.
//   - Unlock(): Increments `serving`, allowing the next ticket holder to proceed.
//
// Waiters adapt to their distance from the head of the line: the next in
// line spins, the rest back off with short sleeps.
//
// Both counters live in one 64-bit word (next ticket in the high half,
// serving ticket in the low half) so that TryLock can check "free and
// nobody waiting" atomically.
//
// Size: 8 bytes.
type TicketLock struct {
	_     noCopy
	state atomic.Uint64
}

const ticketOne = 1 << 32

// Lock acquires the lock. Blocks until the lock is available.
func (m *TicketLock) Lock() {
	my := uint32((m.state.Add(ticketOne) - ticketOne) >> 32)
	var spins int
	for i := 0; ; i++ {
		serving := uint32(m.state.Load())
		if serving == my {
			return
		}
		if my-serving == 1 {
			spinWait(i)
		} else {
			delay(&spins)
		}
	}
}

// TryLock acquires the lock if it is free and no ticket is outstanding.
func (m *TicketLock) TryLock() bool {
	s := m.state.Load()
	if uint32(s>>32) != uint32(s) {
		return false
	}
	return m.state.CompareAndSwap(s, s+ticketOne)
}

// Unlock releases the lock.
// It is a run-time error if m is not locked on entry to Unlock.
func (m *TicketLock) Unlock() {
	for {
		s := m.state.Load()
		next, serving := uint32(s>>32), uint32(s)
		if next == serving {
			panic("qlock: unlock of unlocked TicketLock")
		}
		// serving wraps within the low half instead of carrying into next.
		if m.state.CompareAndSwap(s, s&^0xFFFFFFFF|uint64(serving+1)) {
			return
		}
	}
}
