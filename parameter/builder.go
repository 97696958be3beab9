package parameter

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPreset         = errors.New("unknown preset")
	ErrUnknownLimitingMethod = errors.New("unknown limiting method")
	ErrInvalidConstants      = errors.New("invalid physics constants")
)

// BuildConstants constructs the preset's constant tree scaled so the canyon spans targetDisplayWidth
func BuildConstants(preset Preset, targetDisplayWidth float64) (*PhysicsConstants, error) {
	return BuildWithOverrides(preset, targetDisplayWidth, nil)
}

// BuildWithOverrides is BuildConstants with raw overrides applied before scaling
func BuildWithOverrides(preset Preset, targetDisplayWidth float64, ov *Overrides) (*PhysicsConstants, error) {
	if !(targetDisplayWidth > 0) {
		return nil, fmt.Errorf("%w: target display width %v", ErrInvalidConstants, targetDisplayWidth)
	}

	c, err := rawPreset(preset)
	if err != nil {
		return nil, err
	}
	if ov != nil {
		ov.apply(&c)
	}
	if c.Generator.Power == 0 && c.RailGun.ChargeSeconds > 0 {
		c.Generator.Power = c.RailGun.MaxShotPower / c.RailGun.ChargeSeconds
	}

	scale(&c, ScaleRatio(c.Castle.CanyonSize, targetDisplayWidth))
	c.Castle.CanyonSize = targetDisplayWidth

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("preset %s: %w", preset, err)
	}
	return &c, nil
}

// ScaleRatio returns raw/target, clamped to 1 when no scale-down is needed
func ScaleRatio(rawCanyonSize, targetDisplayWidth float64) float64 {
	if targetDisplayWidth >= rawCanyonSize || targetDisplayWidth <= 0 {
		return 1
	}
	return rawCanyonSize / targetDisplayWidth
}

// scale divides every size, force and speed class field by ratio
func scale(c *PhysicsConstants, ratio float64) {
	c.Castle.CastleHeight /= ratio
	c.Castle.FoundationDepth /= ratio
	c.Satchel.Diameter /= ratio
	c.Platform.Length /= ratio
	c.Platform.MaxForce /= ratio
	c.Platform.MaxSpeed /= ratio
	c.Shield.EffectiveRange /= ratio
	c.RailGun.ShotRadius /= ratio
	c.RailGun.ShotSpeed /= ratio
	c.Gravity /= ratio
}
