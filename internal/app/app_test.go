package app

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestClose_RunsClosersInReverseOnce(t *testing.T) {
	a := &App{}
	var order []int
	a.onClose(func() { order = append(order, 1) })
	a.onClose(func() { order = append(order, 2) })

	a.Close()
	a.Close()

	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Fatalf("closers ran as %v, want [2 1]", order)
	}
}

func TestClose_RegisteredAfterCloseRunsImmediately(t *testing.T) {
	a := &App{}
	a.Close()

	ran := false
	a.onClose(func() { ran = true })
	if !ran {
		t.Fatal("closer registered after Close was not run")
	}
}

func TestClose_ConcurrentRegistration(t *testing.T) {
	a := &App{}
	var ran atomic.Int32

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.onClose(func() { ran.Add(1) })
		}()
	}
	a.Close()
	wg.Wait()

	if got := ran.Load(); got != 32 {
		t.Fatalf("ran %d closers, want 32", got)
	}
}
