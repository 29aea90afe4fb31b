package qlock

import (
	"sync"
	"testing"
	"time"
)

func TestLockGroup_Basic(t *testing.T) {
	var g LockGroup[string]
	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	counter := 0
	for range n {
		go func() {
			defer wg.Done()
			g.Lock("k")
			counter++
			g.Unlock("k")
		}()
	}
	wg.Wait()
	if counter != n {
		t.Fatalf("counter = %d, want %d", counter, n)
	}
}

func TestLockGroup_KeysIndependent(t *testing.T) {
	var g LockGroup[int]
	g.Lock(1)

	done := make(chan struct{})
	go func() {
		g.Lock(2) // Different key, must not block
		g.Unlock(2)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Lock(2) blocked behind Lock(1)")
	}

	blocked := make(chan struct{})
	go func() {
		g.Lock(1) // Same key, should block
		close(blocked)
		g.Unlock(1)
	}()
	select {
	case <-blocked:
		t.Fatal("Lock(1) acquired while held")
	case <-time.After(20 * time.Millisecond):
	}
	g.Unlock(1)
	select {
	case <-blocked:
	case <-time.After(time.Second):
		t.Fatal("Lock(1) not acquired after Unlock")
	}
}

func TestLockGroup_RefCounting(t *testing.T) {
	var g LockGroup[int]

	g.Lock(1)
	if _, ok := g.m.Load(1); !ok {
		t.Fatal("Entry should exist after Lock")
	}

	acquired := make(chan struct{})
	go func() {
		g.Lock(1)
		close(acquired)
	}()
	// Wait for the second locker to hold a reference.
	for {
		e, _ := g.m.Load(1)
		if e.mu.tail.Load() != e.mu.holder {
			break
		}
		time.Sleep(time.Millisecond)
	}

	g.Unlock(1)
	<-acquired
	if _, ok := g.m.Load(1); !ok {
		t.Fatal("Entry deleted while another goroutine holds the lock")
	}

	g.Unlock(1)
	if _, ok := g.m.Load(1); ok {
		t.Fatal("Entry should be auto-deleted after the last Unlock")
	}
}

func TestLockGroup_Do(t *testing.T) {
	var g LockGroup[string]
	counts := map[string]int{}
	var mu sync.Mutex
	var wg sync.WaitGroup
	keys := []string{"a", "b", "c"}
	for _, k := range keys {
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				g.Do(k, func() {
					mu.Lock()
					counts[k]++
					mu.Unlock()
				})
			}()
		}
	}
	wg.Wait()
	for _, k := range keys {
		if counts[k] != 20 {
			t.Fatalf("counts[%q] = %d, want 20", k, counts[k])
		}
		if _, ok := g.m.Load(k); ok {
			t.Fatalf("entry %q left behind", k)
		}
	}
}

func TestLockGroup_UnlockUnlocked(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("Unlock of an unlocked key did not panic")
		}
	}()
	var g LockGroup[string]
	g.Unlock("missing")
}
