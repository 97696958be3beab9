package parameter

import (
	"fmt"
	"math"
	"time"
)

// LimitingMethod selects the satchel spawn policy
type LimitingMethod uint8

const (
	LimitAlwaysOne LimitingMethod = iota
	LimitMaxInFlight
	LimitPeriodicThrowTime
)

var limitingMethodNames = map[LimitingMethod]string{
	LimitAlwaysOne:         "always-one",
	LimitMaxInFlight:       "max-in-flight",
	LimitPeriodicThrowTime: "periodic-throw-time",
}

func (m LimitingMethod) String() string {
	if name, ok := limitingMethodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("limiting-method(%d)", uint8(m))
}

// Valid reports whether m names a known spawn policy
func (m LimitingMethod) Valid() bool {
	_, ok := limitingMethodNames[m]
	return ok
}

// ParseLimitingMethod maps a policy name to its enum value
func ParseLimitingMethod(name string) (LimitingMethod, error) {
	for m, n := range limitingMethodNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLimitingMethod, name)
}

// Timing holds task periods in milliseconds
type Timing struct {
	PhysicsPeriodMs int
	LCDPeriodMs     int
	SliderPeriodMs  int
	LEDPeriodMs     int
}

// Castle describes the canyon strip and the castle target at x≈0
// The foundation band spans [CastleHeight, CastleHeight+FoundationDepth]
type Castle struct {
	CanyonSize             float64
	CastleHeight           float64
	FoundationDepth        float64
	FoundationHitsRequired int
	EvacuationMs           int
}

// Satchel describes thrown satchels and their spawn policy tuning
type Satchel struct {
	Mass              float64
	Diameter          float64
	LimitingMethod    LimitingMethod
	MaxInFlight       int
	MaxInFlightPeriod int // ticks
	ThrowPeriod       int // ticks
	MinFlightSeconds  float64
	MaxFlightSeconds  float64
}

// Platform describes the player platform dynamics
type Platform struct {
	Mass     float64
	Length   float64
	MaxForce float64
	MaxSpeed float64
}

// Shield describes shield reach and cost
type Shield struct {
	EffectiveRange   float64
	ActivationEnergy float64
}

// RailGun describes shot geometry and charge
// AngleDeg uses display convention (y grows downward), 225 points up and toward the castle
type RailGun struct {
	ShotMass      float64
	ShotRadius    float64
	MaxShotPower  float64
	ShotSpeed     float64
	AngleDeg      float64
	ChargeSeconds float64
}

// Generator describes the energy store feeding shots and shields
// Power is the transfer and recharge rate in energy units per second
type Generator struct {
	Capacity float64
	Power    float64
}

// PhysicsConstants is the immutable per-session configuration
type PhysicsConstants struct {
	Timing    Timing
	Castle    Castle
	Satchel   Satchel
	Platform  Platform
	Shield    Shield
	RailGun   RailGun
	Generator Generator

	// Gravity is signed; negative pulls toward the canyon floor
	Gravity float64
}

// CanyonHeight is the top of the foundation band
func (c *PhysicsConstants) CanyonHeight() float64 {
	return c.Castle.CastleHeight + c.Castle.FoundationDepth
}

// PhysicsStep returns the integration timestep in seconds
func (c *PhysicsConstants) PhysicsStep() float64 {
	return float64(c.Timing.PhysicsPeriodMs) / 1000.0
}

// PhysicsPeriod returns the engine tick interval
func (c *PhysicsConstants) PhysicsPeriod() time.Duration {
	return time.Duration(c.Timing.PhysicsPeriodMs) * time.Millisecond
}

// LCDPeriod returns the renderer interval
func (c *PhysicsConstants) LCDPeriod() time.Duration {
	return time.Duration(c.Timing.LCDPeriodMs) * time.Millisecond
}

// SliderPeriod returns the slider sampler interval
func (c *PhysicsConstants) SliderPeriod() time.Duration {
	return time.Duration(c.Timing.SliderPeriodMs) * time.Millisecond
}

// LEDPeriod returns the indicator interval
func (c *PhysicsConstants) LEDPeriod() time.Duration {
	return time.Duration(c.Timing.LEDPeriodMs) * time.Millisecond
}

// ChargeRate returns energy moved per tick between generator and rail-gun
func (c *PhysicsConstants) ChargeRate() float64 {
	return c.Generator.Power * c.PhysicsStep()
}

// EvacuationTicks returns the evacuation duration in engine ticks, rounded up
func (c *PhysicsConstants) EvacuationTicks() uint64 {
	return uint64(math.Ceil(float64(c.Castle.EvacuationMs) / float64(c.Timing.PhysicsPeriodMs)))
}

// ShieldFlashTicks returns how many ticks shieldActive stays set so one render frame sees it
func (c *PhysicsConstants) ShieldFlashTicks() int {
	n := int(math.Ceil(float64(c.Timing.LCDPeriodMs) / float64(c.Timing.PhysicsPeriodMs)))
	if n < 1 {
		n = 1
	}
	return n
}

// RailGunAngle returns the firing angle in radians
func (c *PhysicsConstants) RailGunAngle() float64 {
	return c.RailGun.AngleDeg * math.Pi / 180.0
}

// Validate checks every field required by the engine is populated
func (c *PhysicsConstants) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"timing.physics_period_ms", float64(c.Timing.PhysicsPeriodMs)},
		{"timing.lcd_period_ms", float64(c.Timing.LCDPeriodMs)},
		{"timing.slider_period_ms", float64(c.Timing.SliderPeriodMs)},
		{"timing.led_period_ms", float64(c.Timing.LEDPeriodMs)},
		{"castle.canyon_size", c.Castle.CanyonSize},
		{"castle.castle_height", c.Castle.CastleHeight},
		{"castle.foundation_depth", c.Castle.FoundationDepth},
		{"castle.foundation_hits_required", float64(c.Castle.FoundationHitsRequired)},
		{"castle.evacuation_ms", float64(c.Castle.EvacuationMs)},
		{"satchel.mass", c.Satchel.Mass},
		{"satchel.diameter", c.Satchel.Diameter},
		{"satchel.max_in_flight", float64(c.Satchel.MaxInFlight)},
		{"satchel.max_in_flight_period", float64(c.Satchel.MaxInFlightPeriod)},
		{"satchel.throw_period", float64(c.Satchel.ThrowPeriod)},
		{"satchel.min_flight_seconds", c.Satchel.MinFlightSeconds},
		{"satchel.max_flight_seconds", c.Satchel.MaxFlightSeconds},
		{"platform.mass", c.Platform.Mass},
		{"platform.length", c.Platform.Length},
		{"platform.max_force", c.Platform.MaxForce},
		{"platform.max_speed", c.Platform.MaxSpeed},
		{"shield.effective_range", c.Shield.EffectiveRange},
		{"shield.activation_energy", c.Shield.ActivationEnergy},
		{"rail_gun.shot_mass", c.RailGun.ShotMass},
		{"rail_gun.shot_radius", c.RailGun.ShotRadius},
		{"rail_gun.max_shot_power", c.RailGun.MaxShotPower},
		{"rail_gun.shot_speed", c.RailGun.ShotSpeed},
		{"rail_gun.charge_seconds", c.RailGun.ChargeSeconds},
		{"generator.capacity", c.Generator.Capacity},
		{"generator.power", c.Generator.Power},
	}
	for _, p := range positive {
		if !(p.v > 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConstants, p.name, p.v)
		}
	}

	if !(c.Gravity < 0) {
		return fmt.Errorf("%w: gravity must be negative, got %v", ErrInvalidConstants, c.Gravity)
	}
	if c.Satchel.MinFlightSeconds > c.Satchel.MaxFlightSeconds {
		return fmt.Errorf("%w: satchel flight window [%v, %v] is inverted",
			ErrInvalidConstants, c.Satchel.MinFlightSeconds, c.Satchel.MaxFlightSeconds)
	}
	if !c.Satchel.LimitingMethod.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownLimitingMethod, c.Satchel.LimitingMethod)
	}
	return nil
}
