package engine

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/canyon-defense/core"
	"github.com/lixenwraith/canyon-defense/input"
	"github.com/lixenwraith/canyon-defense/parameter"
	"github.com/lixenwraith/canyon-defense/physics"
	"github.com/lixenwraith/canyon-defense/status"
)

// InputReader is the engine's view of the input sampler
type InputReader interface {
	ReadSlider() input.Slider
	ReadButtons() input.Buttons
}

// Engine is the simulation task; one Step per physics period while the session is Active
type Engine struct {
	session *Session
	c       *parameter.PhysicsConstants
	inputs  InputReader
	policy  SpawnPolicy
	rng     *rand.Rand
	dt      float64

	// Session generation the policy counters belong to
	generation uint64

	// Cached metric pointers
	statTicks      *atomic.Int64
	statTickMicros *status.Gauge
	statThrown     *atomic.Int64
	statSpawnDrop  *atomic.Int64
	statShots      *atomic.Int64
	statShotDrop   *atomic.Int64
	statHits       *atomic.Int64
	statUseful     *atomic.Int64
	statSessions   *atomic.Int64
	statEvac       *atomic.Bool
}

// NewEngine wires the engine to its session; an unknown spawn policy is fatal
func NewEngine(session *Session, inputs InputReader, reg *status.Registry, rng *rand.Rand) (*Engine, error) {
	c := session.Constants
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	policy, err := NewSpawnPolicy(c.Satchel)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if reg == nil {
		reg = status.NewRegistry()
	}

	return &Engine{
		session:        session,
		c:              c,
		inputs:         inputs,
		policy:         policy,
		rng:            rng,
		dt:             c.PhysicsStep(),
		statTicks:      reg.Ints.Get(status.KeyTicks),
		statTickMicros: reg.Gauges.Get(status.KeyTickMicros),
		statThrown:     reg.Ints.Get(status.KeySatchelsThrown),
		statSpawnDrop:  reg.Ints.Get(status.KeySpawnDropped),
		statShots:      reg.Ints.Get(status.KeyShotsFired),
		statShotDrop:   reg.Ints.Get(status.KeyShotsDropped),
		statHits:       reg.Ints.Get(status.KeyFoundationHits),
		statUseful:     reg.Ints.Get(status.KeyShieldsUseful),
		statSessions:   reg.Ints.Get(status.KeySessions),
		statEvac:       reg.Bools.Get(status.KeyEvacuating),
	}, nil
}

// Policy returns the active spawn policy
func (e *Engine) Policy() SpawnPolicy {
	return e.policy
}

// NewScheduler returns the engine task scheduled on the physics period, parked while the session is not Active
func (e *Engine) NewScheduler() *ClockScheduler {
	return NewClockScheduler("physics", e.c.PhysicsPeriod(), e.Tick, e.session.WaitActive)
}

// Tick samples the inputs and runs one Step
func (e *Engine) Tick() {
	var in input.Snapshot
	if e.inputs != nil {
		in.Slider = e.inputs.ReadSlider()
		in.Buttons = e.inputs.ReadButtons()
	}
	e.Step(in)
}

// Step advances the simulation by one physics period
// The shared pool is copied out under the session lock, simulated unlocked, and published back
func (e *Engine) Step(in input.Snapshot) {
	start := time.Now()

	pool, data, ok := e.session.checkout()
	if !ok {
		return
	}
	if data.Generation != e.generation {
		e.generation = data.Generation
		e.policy.Reset()
		e.statSessions.Add(1)
	}

	// Order is load-bearing: forces, then fire/shield, then energy, then spawn, then integration
	e.applyControlForce(&pool, in.Slider)
	e.resolveFire(&pool, &data, in.Buttons.Button0Held)
	e.resolveShield(&pool, &data, in.Buttons.Button1JustPressed)
	e.regulateEnergy(&data)
	e.runSpawnPolicy(&pool, &data)
	e.integrate(&pool, &data)
	e.updateEvacuation(&data)
	data.Ticks++

	if msg := pool.CheckInvariants(); msg != "" {
		panic(fmt.Errorf("engine tick %d: %s", data.Ticks, msg))
	}

	if !e.session.publish(pool, data) {
		return
	}
	if data.State.Terminal() {
		log.Printf("session %d: %s after %d ticks, damage %d/%d, evacuated=%t",
			data.Generation, data.State, data.Ticks, data.FoundationDamage,
			e.c.Castle.FoundationHitsRequired, data.EvacComplete)
	}

	e.statTicks.Add(1)
	e.statTickMicros.Set(float64(time.Since(start).Microseconds()))
	e.statEvac.Store(data.EvacStarted && !data.EvacComplete)
}

// applyControlForce maps the slider to a horizontal force on the player
func (e *Engine) applyControlForce(pool *core.Pool, s input.Slider) {
	p := pool.Player()
	maxForce := e.c.Platform.MaxForce

	var fx float64
	switch {
	case s.BothSides():
		fx = 0
	case s.Left:
		fx = -maxForce / 2
	case s.FarLeft:
		fx = -maxForce
	case s.Right:
		fx = maxForce
	case s.FarRight:
		fx = maxForce / 2
	default:
		// Friction opposes motion at full strength
		fx = -physics.Sign(p.Vel.X()) * maxForce
	}
	p.Force[0] = fx
}

// resolveFire charges while button0 is held and fires on release
func (e *Engine) resolveFire(pool *core.Pool, data *core.GameData, held bool) {
	if held {
		data.Charging = true
		return
	}
	if !data.Charging {
		return
	}
	data.Charging = false
	if data.ShotCharge <= 0 {
		return
	}

	k := data.ShotCharge / e.c.RailGun.MaxShotPower * e.c.RailGun.ShotSpeed
	angle := e.c.RailGunAngle()
	// Angle is in display convention (y down), physics y is up
	vel := mgl64.Vec2{k * math.Cos(angle), -k * math.Sin(angle)}

	data.ShotCharge = 0
	data.ShotsFired++
	e.statShots.Add(1)

	if pool.Spawn(core.NewShot(e.c.RailGun.ShotMass, pool.Player().Pos, vel)) < 0 {
		e.statShotDrop.Add(1)
		log.Printf("engine: pool full, shot dropped")
	}
}

// resolveShield clears satchels near the player on the button1 rising edge
func (e *Engine) resolveShield(pool *core.Pool, data *core.GameData, pressed bool) {
	if data.ShieldFlashLeft > 0 {
		data.ShieldFlashLeft--
		if data.ShieldFlashLeft == 0 {
			data.ShieldActive = false
		}
	}

	if !pressed || data.Energy < e.c.Shield.ActivationEnergy {
		return
	}

	data.Energy -= e.c.Shield.ActivationEnergy
	data.ShieldsActivated++
	data.ShieldActive = true
	data.ShieldFlashLeft = e.c.ShieldFlashTicks()

	center := pool.Player().Pos
	for i := range pool {
		b := &pool[i]
		if b.Kind != core.BodySatchel {
			continue
		}
		if physics.Distance(b.Pos, center) <= e.c.Shield.EffectiveRange {
			b.Clear()
			data.UsefulShields++
			e.statUseful.Add(1)
		}
	}
}

// regulateEnergy moves energy into the rail-gun while charging, recharges the generator otherwise
func (e *Engine) regulateEnergy(data *core.GameData) {
	rate := e.c.ChargeRate()
	maxShot := e.c.RailGun.MaxShotPower

	if data.Charging {
		if data.Energy > 0 && data.ShotCharge < maxShot {
			amount := math.Min(rate, math.Min(data.Energy, maxShot-data.ShotCharge))
			data.Energy -= amount
			data.ShotCharge += amount
		}
	} else {
		data.Energy = math.Min(data.Energy+rate, e.c.Generator.Capacity)
	}

	// Clamp float residue at the bounds
	data.Energy = clamp(data.Energy, 0, e.c.Generator.Capacity)
	data.ShotCharge = clamp(data.ShotCharge, 0, maxShot)
}

// runSpawnPolicy asks the policy for a satchel and places it if a slot is free
func (e *Engine) runSpawnPolicy(pool *core.Pool, data *core.GameData) {
	if !e.policy.ShouldSpawn(pool.Count(core.BodySatchel)) {
		return
	}
	if pool.FirstEmpty() < 0 {
		e.statSpawnDrop.Add(1)
		return
	}
	pool.Spawn(throwSatchel(e.c, e.rng, pool.Player().Pos.X()))
	data.SatchelsThrown++
	e.statThrown.Add(1)
}

// updateEvacuation starts the countdown at half damage and completes it once
func (e *Engine) updateEvacuation(data *core.GameData) {
	if !data.EvacStarted && core.EvacuationThresholdReached(data.FoundationDamage, e.c.Castle.FoundationHitsRequired) {
		data.EvacStarted = true
		data.EvacStartTick = data.Ticks
		log.Printf("session %d: evacuation started at tick %d", data.Generation, data.Ticks)
	}
	if data.EvacStarted && !data.EvacComplete && data.Ticks-data.EvacStartTick >= e.c.EvacuationTicks() {
		data.EvacComplete = true
		log.Printf("session %d: evacuation complete at tick %d", data.Generation, data.Ticks)
	}
}

// setTerminal records the first terminal transition of the tick
func setTerminal(data *core.GameData, s core.GameState) {
	if data.State == core.StateActive {
		data.State = s
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
