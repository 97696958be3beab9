package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/canyon-defense/core"
)

func TestNewSessionStartsInMenu(t *testing.T) {
	c := screenConstants(t)
	s := NewSession(c)

	pool, data := s.Snapshot()
	if data.State != core.StateMenu {
		t.Errorf("state = %v, want menu", data.State)
	}
	if got := pool.Player().Pos.X(); got != c.Castle.CanyonSize/2 {
		t.Errorf("player x = %v, want centered", got)
	}
	if data.Energy != c.Generator.Capacity {
		t.Errorf("energy = %v, want capacity", data.Energy)
	}
}

func TestStartOnlyFromInactive(t *testing.T) {
	s := NewSession(screenConstants(t))

	if !s.Start() {
		t.Fatal("Start from menu returned false")
	}
	if s.Start() {
		t.Error("Start while active returned true")
	}
	if _, data := s.Snapshot(); data.Generation != 1 {
		t.Errorf("generation = %d, want 1", data.Generation)
	}
}

func TestWaitActiveBlocksUntilStart(t *testing.T) {
	s := NewSession(screenConstants(t))
	stop := make(chan struct{})
	done := make(chan bool, 1)

	go func() { done <- s.WaitActive(stop) }()

	select {
	case <-done:
		t.Fatal("WaitActive returned while in menu")
	case <-time.After(30 * time.Millisecond):
	}

	s.Start()

	select {
	case ok := <-done:
		if !ok {
			t.Error("WaitActive returned false after Start")
		}
	case <-time.After(time.Second):
		t.Fatal("WaitActive did not unblock after Start")
	}
}

func TestWaitActiveReturnsFalseOnStop(t *testing.T) {
	s := NewSession(screenConstants(t))
	stop := make(chan struct{})
	done := make(chan bool, 1)

	go func() { done <- s.WaitActive(stop) }()
	close(stop)

	select {
	case ok := <-done:
		if ok {
			t.Error("WaitActive returned true after stop")
		}
	case <-time.After(time.Second):
		t.Fatal("WaitActive ignored stop")
	}
}

func TestWaitActiveBlocksAgainAfterTerminal(t *testing.T) {
	s := NewSession(screenConstants(t))
	s.Start()

	pool, data, ok := s.checkout()
	if !ok {
		t.Fatal("checkout failed while active")
	}
	data.State = core.StateWin
	if !s.publish(pool, data) {
		t.Fatal("publish rejected terminal result")
	}

	stop := make(chan struct{})
	done := make(chan bool, 1)
	go func() { done <- s.WaitActive(stop) }()

	select {
	case <-done:
		t.Fatal("WaitActive returned after win")
	case <-time.After(30 * time.Millisecond):
	}
	close(stop)
	<-done
}

func TestPublishDropsStaleGeneration(t *testing.T) {
	s := NewSession(screenConstants(t))
	s.Start()

	pool, data, _ := s.checkout()
	data.Ticks = 99

	// A restart races the in-flight tick
	cur, curData := s.Snapshot()
	curData.State = core.StateFail
	s.load(cur, curData)
	s.Start()

	if s.publish(pool, data) {
		t.Fatal("publish accepted a result from the previous generation")
	}
	if _, got := s.Snapshot(); got.Ticks != 0 || got.Generation != 2 {
		t.Errorf("published data = gen %d ticks %d", got.Generation, got.Ticks)
	}
}

func TestCheckoutFailsWhenInactive(t *testing.T) {
	s := NewSession(screenConstants(t))
	if _, _, ok := s.checkout(); ok {
		t.Error("checkout succeeded in menu")
	}
}
