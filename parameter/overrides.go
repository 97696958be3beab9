package parameter

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Overrides is the on-disk tuning file
// Pointer fields distinguish "absent" from zero; values are raw (pre-scale) units
type Overrides struct {
	Preset         string `toml:"preset"`
	LimitingMethod string `toml:"limiting_method"`

	Castle struct {
		CanyonSize             *float64 `toml:"canyon_size"`
		CastleHeight           *float64 `toml:"castle_height"`
		FoundationDepth        *float64 `toml:"foundation_depth"`
		FoundationHitsRequired *int     `toml:"foundation_hits_required"`
		EvacuationMs           *int     `toml:"evacuation_ms"`
	} `toml:"castle"`

	Satchel struct {
		Mass              *float64 `toml:"mass"`
		Diameter          *float64 `toml:"diameter"`
		MaxInFlight       *int     `toml:"max_in_flight"`
		MaxInFlightPeriod *int     `toml:"max_in_flight_period"`
		ThrowPeriod       *int     `toml:"throw_period"`
		MinFlightSeconds  *float64 `toml:"min_flight_seconds"`
		MaxFlightSeconds  *float64 `toml:"max_flight_seconds"`
	} `toml:"satchel"`

	Platform struct {
		Mass     *float64 `toml:"mass"`
		Length   *float64 `toml:"length"`
		MaxForce *float64 `toml:"max_force"`
		MaxSpeed *float64 `toml:"max_speed"`
	} `toml:"platform"`

	Shield struct {
		EffectiveRange   *float64 `toml:"effective_range"`
		ActivationEnergy *float64 `toml:"activation_energy"`
	} `toml:"shield"`

	RailGun struct {
		ShotMass     *float64 `toml:"shot_mass"`
		MaxShotPower *float64 `toml:"max_shot_power"`
		ShotSpeed    *float64 `toml:"shot_speed"`
		AngleDeg     *float64 `toml:"angle_deg"`
	} `toml:"rail_gun"`

	Generator struct {
		Capacity *float64 `toml:"capacity"`
		Power    *float64 `toml:"power"`
	} `toml:"generator"`

	Gravity *float64 `toml:"gravity"`

	limiting *LimitingMethod
}

// LoadOverrides decodes a TOML tuning file
func LoadOverrides(path string) (*Overrides, error) {
	var ov Overrides
	if _, err := toml.DecodeFile(path, &ov); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := ov.resolve(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &ov, nil
}

// DecodeOverrides decodes TOML tuning data held in memory
func DecodeOverrides(data string) (*Overrides, error) {
	var ov Overrides
	if _, err := toml.Decode(data, &ov); err != nil {
		return nil, fmt.Errorf("decode overrides: %w", err)
	}
	if err := ov.resolve(); err != nil {
		return nil, err
	}
	return &ov, nil
}

// SetLimitingMethod forces the spawn policy regardless of the file contents
func (o *Overrides) SetLimitingMethod(m LimitingMethod) {
	o.limiting = &m
}

// PresetOr returns the preset named by the file, or fallback when unset
func (o *Overrides) PresetOr(fallback Preset) (Preset, error) {
	if o == nil || o.Preset == "" {
		return fallback, nil
	}
	return ParsePreset(o.Preset)
}

func (o *Overrides) resolve() error {
	if o.LimitingMethod == "" {
		return nil
	}
	m, err := ParseLimitingMethod(o.LimitingMethod)
	if err != nil {
		return err
	}
	o.limiting = &m
	return nil
}

func (o *Overrides) apply(c *PhysicsConstants) {
	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setI := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}

	setF(&c.Castle.CanyonSize, o.Castle.CanyonSize)
	setF(&c.Castle.CastleHeight, o.Castle.CastleHeight)
	setF(&c.Castle.FoundationDepth, o.Castle.FoundationDepth)
	setI(&c.Castle.FoundationHitsRequired, o.Castle.FoundationHitsRequired)
	setI(&c.Castle.EvacuationMs, o.Castle.EvacuationMs)

	setF(&c.Satchel.Mass, o.Satchel.Mass)
	setF(&c.Satchel.Diameter, o.Satchel.Diameter)
	setI(&c.Satchel.MaxInFlight, o.Satchel.MaxInFlight)
	setI(&c.Satchel.MaxInFlightPeriod, o.Satchel.MaxInFlightPeriod)
	setI(&c.Satchel.ThrowPeriod, o.Satchel.ThrowPeriod)
	setF(&c.Satchel.MinFlightSeconds, o.Satchel.MinFlightSeconds)
	setF(&c.Satchel.MaxFlightSeconds, o.Satchel.MaxFlightSeconds)
	if o.limiting != nil {
		c.Satchel.LimitingMethod = *o.limiting
	}

	setF(&c.Platform.Mass, o.Platform.Mass)
	setF(&c.Platform.Length, o.Platform.Length)
	setF(&c.Platform.MaxForce, o.Platform.MaxForce)
	setF(&c.Platform.MaxSpeed, o.Platform.MaxSpeed)

	setF(&c.Shield.EffectiveRange, o.Shield.EffectiveRange)
	setF(&c.Shield.ActivationEnergy, o.Shield.ActivationEnergy)

	setF(&c.RailGun.ShotMass, o.RailGun.ShotMass)
	setF(&c.RailGun.MaxShotPower, o.RailGun.MaxShotPower)
	setF(&c.RailGun.ShotSpeed, o.RailGun.ShotSpeed)
	setF(&c.RailGun.AngleDeg, o.RailGun.AngleDeg)

	setF(&c.Generator.Capacity, o.Generator.Capacity)
	setF(&c.Generator.Power, o.Generator.Power)

	setF(&c.Gravity, o.Gravity)
}
