package engine

import (
	"log"
	"sync"

	"github.com/lixenwraith/canyon-defense/core"
	"github.com/lixenwraith/canyon-defense/parameter"
)

// Session owns the shared simulation state handed to every task at startup
type Session struct {
	// ===== Immutable After Init =====
	// Safe for concurrent read without synchronization

	Constants *parameter.PhysicsConstants

	// ===== Mutex-Protected (mu) =====
	// Engine is the sole writer while Active; Start is the only other writer and
	// runs only while the engine is parked

	mu   sync.Mutex
	pool core.Pool
	data core.GameData

	// activeCh is closed while the session is Active and replaced with an open
	// channel when it leaves Active, so waiters block instead of polling
	activeCh chan struct{}
}

// NewSession creates a session parked in the menu with the player centered
func NewSession(c *parameter.PhysicsConstants) *Session {
	s := &Session{
		Constants: c,
		activeCh:  make(chan struct{}),
	}
	s.pool.Reset(c.Platform.Mass, c.Castle.CanyonSize/2)
	s.data.State = core.StateMenu
	s.data.Energy = c.Generator.Capacity
	return s
}

// Start begins a fresh session from Menu, Win or Fail; returns false if already Active
func (s *Session) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.State == core.StateActive {
		return false
	}
	s.pool.Reset(s.Constants.Platform.Mass, s.Constants.Castle.CanyonSize/2)
	s.data.Reset(s.Constants.Generator.Capacity)
	close(s.activeCh)

	log.Printf("session %d: started", s.data.Generation)
	return true
}

// Snapshot returns read-only copies of the published pool and status record
func (s *Session) Snapshot() (core.Pool, core.GameData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool, s.data
}

// State returns the current state machine position
func (s *Session) State() core.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.State
}

// Active reports whether the session is running
func (s *Session) Active() bool {
	return s.State() == core.StateActive
}

// WaitActive blocks until the session is Active or stop closes
// Returns false when stopped
func (s *Session) WaitActive(stop <-chan struct{}) bool {
	for {
		s.mu.Lock()
		if s.data.State == core.StateActive {
			s.mu.Unlock()
			return true
		}
		ch := s.activeCh
		s.mu.Unlock()

		select {
		case <-ch:
		case <-stop:
			return false
		}
	}
}

// checkout copies pool and status out for one tick, ok is false when not Active
func (s *Session) checkout() (pool core.Pool, data core.GameData, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool, s.data, s.data.State == core.StateActive
}

// publish writes the tick result back; a generation mismatch means a restart raced the tick and the result is dropped
func (s *Session) publish(pool core.Pool, data core.GameData) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data.Generation != s.data.Generation || s.data.State != core.StateActive {
		return false
	}
	s.pool = pool
	s.data = data
	if data.State != core.StateActive {
		s.activeCh = make(chan struct{})
	}
	return true
}
