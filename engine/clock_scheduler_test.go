package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/lixenwraith/canyon-defense/core"
)

func TestClockSchedulerRunsTask(t *testing.T) {
	var count atomic.Int32
	cs := NewClockScheduler("test", 5*time.Millisecond, func() { count.Add(1) }, nil)

	cs.Start()
	time.Sleep(100 * time.Millisecond)
	cs.Stop()

	n := count.Load()
	if n < 5 {
		t.Errorf("task ran %d times in 100ms at 5ms period", n)
	}
	if uint64(n) != cs.TickCount() {
		t.Errorf("TickCount = %d, task count = %d", cs.TickCount(), n)
	}

	// No ticks after Stop returns
	time.Sleep(20 * time.Millisecond)
	if count.Load() != n {
		t.Error("task ran after Stop")
	}
}

func TestClockSchedulerGateParksTask(t *testing.T) {
	var open atomic.Bool
	release := make(chan struct{})
	gate := func(stop <-chan struct{}) bool {
		if open.Load() {
			return true
		}
		select {
		case <-release:
			open.Store(true)
			return true
		case <-stop:
			return false
		}
	}

	var count atomic.Int32
	cs := NewClockScheduler("gated", 2*time.Millisecond, func() { count.Add(1) }, gate)
	cs.Start()
	defer cs.Stop()

	time.Sleep(30 * time.Millisecond)
	if n := count.Load(); n != 0 {
		t.Fatalf("task ran %d times behind a closed gate", n)
	}

	close(release)
	time.Sleep(30 * time.Millisecond)
	if count.Load() == 0 {
		t.Error("task did not run after gate opened")
	}
}

func TestClockSchedulerStopWhileGated(t *testing.T) {
	gate := func(stop <-chan struct{}) bool {
		<-stop
		return false
	}
	cs := NewClockScheduler("parked", time.Millisecond, func() {}, gate)
	cs.Start()

	done := make(chan struct{})
	go func() {
		cs.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a parked scheduler")
	}
	// Stop is idempotent
	cs.Stop()
}

func TestEngineSchedulerParksOutsideActive(t *testing.T) {
	e, s, _ := quietEngine(t)

	// Terminal session: the physics task must not run
	pool, data := s.Snapshot()
	data.State = core.StateFail
	s.load(pool, data)

	cs := e.NewScheduler()
	cs.Start()
	time.Sleep(60 * time.Millisecond)
	if n := cs.TickCount(); n != 0 {
		t.Errorf("physics ran %d ticks while inactive", n)
	}

	s.Start()
	time.Sleep(120 * time.Millisecond)
	cs.Stop()
	if cs.TickCount() == 0 {
		t.Error("physics did not run after Start")
	}
	if _, data := s.Snapshot(); data.Ticks == 0 {
		t.Error("session ticks not advanced")
	}
}
