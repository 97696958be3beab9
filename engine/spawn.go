package engine

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/canyon-defense/core"
	"github.com/lixenwraith/canyon-defense/parameter"
)

// SpawnPolicy decides once per tick whether a new satchel is thrown
// Policies only hold counters; pool capacity is checked by the caller
type SpawnPolicy interface {
	Method() parameter.LimitingMethod
	// ShouldSpawn is called exactly once per tick with the current satchel count
	ShouldSpawn(inFlight int) bool
	// Reset restores the session-start counters
	Reset()
}

// NewSpawnPolicy builds the policy selected by the satchel configuration
func NewSpawnPolicy(cfg parameter.Satchel) (SpawnPolicy, error) {
	switch cfg.LimitingMethod {
	case parameter.LimitAlwaysOne:
		return &alwaysOnePolicy{}, nil
	case parameter.LimitMaxInFlight:
		p := &maxInFlightPolicy{max: cfg.MaxInFlight, period: cfg.MaxInFlightPeriod}
		p.Reset()
		return p, nil
	case parameter.LimitPeriodicThrowTime:
		return &periodicPolicy{period: cfg.ThrowPeriod}, nil
	}
	return nil, fmt.Errorf("spawn policy: %w: %d", parameter.ErrUnknownLimitingMethod, cfg.LimitingMethod)
}

// alwaysOnePolicy keeps exactly one satchel in the air
type alwaysOnePolicy struct{}

func (p *alwaysOnePolicy) Method() parameter.LimitingMethod { return parameter.LimitAlwaysOne }
func (p *alwaysOnePolicy) ShouldSpawn(inFlight int) bool    { return inFlight == 0 }
func (p *alwaysOnePolicy) Reset()                           {}

// maxInFlightPolicy caps concurrent satchels and waits period ticks after the cap was last hit
type maxInFlightPolicy struct {
	max     int
	period  int
	counter int
}

func (p *maxInFlightPolicy) Method() parameter.LimitingMethod { return parameter.LimitMaxInFlight }

func (p *maxInFlightPolicy) ShouldSpawn(inFlight int) bool {
	if inFlight >= p.max {
		p.counter = 0
		return false
	}
	if p.counter >= p.period {
		p.counter = 0
		return true
	}
	p.counter++
	return false
}

// Reset arms the counter so the first satchel is thrown immediately
func (p *maxInFlightPolicy) Reset() {
	p.counter = p.period
}

// periodicPolicy throws every period ticks on a free-running counter
type periodicPolicy struct {
	period int
	ticks  int
}

func (p *periodicPolicy) Method() parameter.LimitingMethod { return parameter.LimitPeriodicThrowTime }

func (p *periodicPolicy) ShouldSpawn(int) bool {
	fire := p.ticks%p.period == 0
	p.ticks++
	return fire
}

func (p *periodicPolicy) Reset() {
	p.ticks = 0
}

// throwSatchel back-solves a ballistic arc from the castle top to a randomized landing point near playerX
func throwSatchel(c *parameter.PhysicsConstants, rng *rand.Rand, playerX float64) core.Body {
	canyon := c.Castle.CanyonSize
	origin := mgl64.Vec2{0, c.CanyonHeight()}

	spread := canyon / 6
	target := playerX + (rng.Float64()*2-1)*spread
	if target < 0 {
		target = 0
	} else if target > canyon {
		target = canyon
	}

	minT, maxT := c.Satchel.MinFlightSeconds, c.Satchel.MaxFlightSeconds
	flight := minT + rng.Float64()*(maxT-minT)

	// y(T) = y0 + vy*T + g*T²/2 = 0
	vel := mgl64.Vec2{
		(target - origin.X()) / flight,
		(-origin.Y() - 0.5*c.Gravity*flight*flight) / flight,
	}
	return core.NewSatchel(c.Satchel.Mass, origin, vel)
}
