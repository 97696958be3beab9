package indicator

import (
	"time"

	"github.com/lixenwraith/canyon-defense/core"
	"github.com/lixenwraith/canyon-defense/parameter"
)

// Mode is the LED drive mode for one tick
type Mode uint8

const (
	ModeOff Mode = iota
	ModeSolid
	ModeBlink
)

// Blink half-period bounds
const (
	SlowHalfPeriod = 400 * time.Millisecond
	FastHalfPeriod = 50 * time.Millisecond
)

// Pattern is the drive instruction derived from the published status
type Pattern struct {
	Mode Mode
	// HalfPeriod is the on or off duration when blinking
	HalfPeriod time.Duration
}

// PatternFunc maps the published status to an LED pattern
type PatternFunc func(c *parameter.PhysicsConstants, data core.GameData) Pattern

// ChargePattern is off when the rail-gun is empty, solid at full charge, and blinks faster as charge builds
func ChargePattern(c *parameter.PhysicsConstants, data core.GameData) Pattern {
	maxShot := c.RailGun.MaxShotPower
	switch {
	case data.ShotCharge <= 0:
		return Pattern{Mode: ModeOff}
	case data.ShotCharge >= maxShot:
		return Pattern{Mode: ModeSolid}
	}
	return Pattern{Mode: ModeBlink, HalfPeriod: lerpPeriod(data.ShotCharge / maxShot)}
}

// EvacuationPattern is off before the threshold, blinks faster as the countdown runs out, and is solid once evacuated
func EvacuationPattern(c *parameter.PhysicsConstants, data core.GameData) Pattern {
	switch {
	case !data.EvacStarted:
		return Pattern{Mode: ModeOff}
	case data.EvacComplete:
		return Pattern{Mode: ModeSolid}
	}
	total := c.EvacuationTicks()
	elapsed := data.Ticks - data.EvacStartTick
	progress := 1.0
	if total > 0 && elapsed < total {
		progress = float64(elapsed) / float64(total)
	}
	return Pattern{Mode: ModeBlink, HalfPeriod: lerpPeriod(progress)}
}

// lerpPeriod moves from the slow to the fast half-period as t goes 0 to 1
func lerpPeriod(t float64) time.Duration {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	span := float64(SlowHalfPeriod - FastHalfPeriod)
	return SlowHalfPeriod - time.Duration(span*t)
}
