package qlock

import (
	"runtime"
	"sync"
	"testing"
	"time"
)

func TestTicketLock(t *testing.T) {
	var m TicketLock
	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	var counter int64
	for range n {
		go func() {
			defer wg.Done()
			m.Lock()
			counter++
			m.Unlock()
		}()
	}
	wg.Wait()
	if counter != n {
		t.Fatalf("counter = %d, want %d", counter, n)
	}
}

func TestTicketLock_FIFO(t *testing.T) {
	var m TicketLock
	const n = 16
	m.Lock()
	var order []int // guarded by m
	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		go func() {
			defer wg.Done()
			m.Lock()
			order = append(order, i)
			m.Unlock()
		}()
		// Goroutine i holds ticket i+1 once next has moved.
		for uint32(m.state.Load()>>32) != uint32(i+2) {
			runtime.Gosched()
		}
	}
	m.Unlock()
	waitDone(t, 10*time.Second, "ticket holders", func() error {
		wg.Wait()
		return nil
	})
	for i, v := range order {
		if v != i {
			t.Fatalf("acquisition order %v, want ascending", order)
		}
	}
}

func TestTicketLock_TryLock(t *testing.T) {
	var m TicketLock
	if !m.TryLock() {
		t.Fatal("TryLock failed on a free lock")
	}
	if m.TryLock() {
		t.Fatal("TryLock succeeded on a held lock")
	}
	m.Unlock()
	if !m.TryLock() {
		t.Fatal("TryLock failed after Unlock")
	}
	m.Unlock()
}

func TestTicketLock_Wraparound(t *testing.T) {
	var m TicketLock
	m.state.Store(uint64(0xFFFFFFFF)<<32 | 0xFFFFFFFF)
	for range 4 {
		m.Lock()
		m.Unlock()
	}
	if s := m.state.Load(); uint32(s>>32) != 3 || uint32(s) != 3 {
		t.Fatalf("state after wraparound = %#x, want next=3 serving=3", s)
	}
}

func TestTicketLock_UnlockUnlocked(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("Unlock of an unlocked TicketLock did not panic")
		}
	}()
	var m TicketLock
	m.Unlock()
}
