package core

import "fmt"

// GameState is the session state machine position
type GameState uint8

const (
	StateMenu GameState = iota
	StateActive
	StateWin
	StateFail
)

func (s GameState) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateActive:
		return "active"
	case StateWin:
		return "win"
	case StateFail:
		return "fail"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Terminal reports whether s ends a session
func (s GameState) Terminal() bool {
	return s == StateWin || s == StateFail
}

// GameData is the singleton status record published alongside the pool
type GameData struct {
	State GameState

	// Generation increments on every session start
	Generation uint64
	// Ticks executed in the current session
	Ticks uint64

	Energy     float64
	ShotCharge float64
	Charging   bool

	FoundationDamage int
	EvacStarted      bool
	EvacStartTick    uint64
	EvacComplete     bool

	ShieldActive    bool
	ShieldFlashLeft int

	SatchelsThrown   int
	ShieldsActivated int
	UsefulShields    int
	ShotsFired       int
}

// Reset prepares the record for a new session, keeping the generation counter moving
func (d *GameData) Reset(energy float64) {
	gen := d.Generation + 1
	*d = GameData{
		State:      StateActive,
		Generation: gen,
		Energy:     energy,
	}
}

// EvacuationThresholdReached reports whether damage has crossed half the required hits
func EvacuationThresholdReached(damage, required int) bool {
	return 2*damage >= required
}
