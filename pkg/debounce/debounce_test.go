package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduleCoalesces(t *testing.T) {
	d := New(50 * time.Millisecond)
	defer d.Close()

	var fired atomic.Int32
	for i := 0; i < 5; i++ {
		d.Schedule("k", func() { fired.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)

	if got := fired.Load(); got != 1 {
		t.Errorf("expected exactly one execution, got %d", got)
	}
}

func TestScheduleKeysAreIndependent(t *testing.T) {
	d := New(30 * time.Millisecond)
	defer d.Close()

	var a, b atomic.Int32
	d.Schedule("a", func() { a.Add(1) })
	d.Schedule("b", func() { b.Add(1) })

	// a'yı yeniden planlamak b'nin timer'ını etkilememeli.
	time.Sleep(10 * time.Millisecond)
	d.Schedule("a", func() { a.Add(1) })

	time.Sleep(100 * time.Millisecond)

	if got := a.Load(); got != 1 {
		t.Errorf("key a: expected 1 execution, got %d", got)
	}
	if got := b.Load(); got != 1 {
		t.Errorf("key b: expected 1 execution, got %d", got)
	}
}

func TestCancelStopsPending(t *testing.T) {
	d := New(30 * time.Millisecond)
	defer d.Close()

	var fired atomic.Int32
	d.Schedule("k", func() { fired.Add(1) })

	if !d.Pending("k") {
		t.Fatal("expected pending execution after Schedule")
	}
	d.Cancel("k")
	if d.Pending("k") {
		t.Fatal("expected no pending execution after Cancel")
	}

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("cancelled fn must not run, got %d executions", got)
	}
}

func TestCloseStopsEverything(t *testing.T) {
	d := New(30 * time.Millisecond)

	var fired atomic.Int32
	d.Schedule("x", func() { fired.Add(1) })
	d.Schedule("y", func() { fired.Add(1) })
	d.Close()

	// Close sonrası Schedule no-op olmalı.
	d.Schedule("z", func() { fired.Add(1) })

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("no fn should run after Close, got %d executions", got)
	}
}
