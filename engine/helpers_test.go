package engine

import (
	"math/rand"
	"testing"

	"github.com/lixenwraith/canyon-defense/core"
	"github.com/lixenwraith/canyon-defense/input"
	"github.com/lixenwraith/canyon-defense/parameter"
	"github.com/lixenwraith/canyon-defense/status"
)

// screenConstants returns the unscaled screen preset
func screenConstants(t *testing.T) *parameter.PhysicsConstants {
	t.Helper()
	c, err := parameter.BuildConstants(parameter.PresetScreen, 127)
	if err != nil {
		t.Fatalf("BuildConstants: %v", err)
	}
	return c
}

// load overwrites the published state, keeping the activity channel consistent
func (s *Session) load(pool core.Pool, data core.GameData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasActive := s.data.State == core.StateActive
	s.pool = pool
	s.data = data
	isActive := data.State == core.StateActive
	switch {
	case isActive && !wasActive:
		close(s.activeCh)
	case !isActive && wasActive:
		s.activeCh = make(chan struct{})
	}
}

// neverPolicy keeps scenario tests free of random satchels
type neverPolicy struct{}

func (neverPolicy) Method() parameter.LimitingMethod { return parameter.LimitAlwaysOne }
func (neverPolicy) ShouldSpawn(int) bool             { return false }
func (neverPolicy) Reset()                           {}

// stubInputs is a fixed InputReader
type stubInputs struct {
	slider  input.Slider
	buttons input.Buttons
}

func (s *stubInputs) ReadSlider() input.Slider   { return s.slider }
func (s *stubInputs) ReadButtons() input.Buttons { return s.buttons }

// newActiveEngine builds an engine over a started session
func newActiveEngine(t *testing.T, c *parameter.PhysicsConstants) (*Engine, *Session, *status.Registry) {
	t.Helper()
	s := NewSession(c)
	reg := status.NewRegistry()
	e, err := NewEngine(s, nil, reg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if !s.Start() {
		t.Fatal("Start returned false from menu")
	}
	return e, s, reg
}

// quietEngine is an active engine that never throws satchels
func quietEngine(t *testing.T) (*Engine, *Session, *status.Registry) {
	t.Helper()
	e, s, reg := newActiveEngine(t, screenConstants(t))
	e.policy = neverPolicy{}
	return e, s, reg
}

func hold() input.Snapshot {
	return input.Snapshot{Buttons: input.Buttons{Button0Held: true}}
}

func shield() input.Snapshot {
	return input.Snapshot{Buttons: input.Buttons{Button1Held: true, Button1JustPressed: true}}
}
