package parameter

import "fmt"

// Preset names a raw constant tree
type Preset uint8

const (
	// PresetScreen is sized in display pixels of a 128px panel
	PresetScreen Preset = iota
	// PresetArcade is a wider canyon in arbitrary units
	PresetArcade
	// PresetLarge is sized in world meters
	PresetLarge
)

var presetNames = map[Preset]string{
	PresetScreen: "screen",
	PresetArcade: "arcade",
	PresetLarge:  "large",
}

func (p Preset) String() string {
	if name, ok := presetNames[p]; ok {
		return name
	}
	return fmt.Sprintf("preset(%d)", uint8(p))
}

// ParsePreset maps a preset name to its enum value
func ParsePreset(name string) (Preset, error) {
	for p, n := range presetNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// Task periods shared by all presets
var defaultTiming = Timing{
	PhysicsPeriodMs: 25,
	LCDPeriodMs:     25,
	SliderPeriodMs:  10,
	LEDPeriodMs:     5,
}

// rawPreset returns the unscaled constant tree for p
func rawPreset(p Preset) (PhysicsConstants, error) {
	switch p {
	case PresetScreen:
		return PhysicsConstants{
			Timing: defaultTiming,
			Castle: Castle{
				CanyonSize:             127,
				CastleHeight:           40,
				FoundationDepth:        20,
				FoundationHitsRequired: 3,
				EvacuationMs:           10000,
			},
			Satchel: Satchel{
				Mass:              1,
				Diameter:          4,
				LimitingMethod:    LimitMaxInFlight,
				MaxInFlight:       2,
				MaxInFlightPeriod: 40,
				ThrowPeriod:       80,
				MinFlightSeconds:  1.0,
				MaxFlightSeconds:  5.0,
			},
			Platform: Platform{
				Mass:     10,
				Length:   16,
				MaxForce: 400,
				MaxSpeed: 60,
			},
			Shield: Shield{
				EffectiveRange:   20,
				ActivationEnergy: 30,
			},
			RailGun: RailGun{
				ShotMass:      1,
				ShotRadius:    1,
				MaxShotPower:  50,
				ShotSpeed:     45,
				AngleDeg:      225,
				ChargeSeconds: 1.5,
			},
			Generator: Generator{
				Capacity: 100,
			},
			Gravity: -9.8,
		}, nil

	case PresetArcade:
		return PhysicsConstants{
			Timing: defaultTiming,
			Castle: Castle{
				CanyonSize:             320,
				CastleHeight:           100,
				FoundationDepth:        50,
				FoundationHitsRequired: 5,
				EvacuationMs:           15000,
			},
			Satchel: Satchel{
				Mass:              2,
				Diameter:          10,
				LimitingMethod:    LimitPeriodicThrowTime,
				MaxInFlight:       3,
				MaxInFlightPeriod: 30,
				ThrowPeriod:       60,
				MinFlightSeconds:  1.0,
				MaxFlightSeconds:  5.0,
			},
			Platform: Platform{
				Mass:     20,
				Length:   40,
				MaxForce: 2000,
				MaxSpeed: 150,
			},
			Shield: Shield{
				EffectiveRange:   50,
				ActivationEnergy: 35,
			},
			RailGun: RailGun{
				ShotMass:      1,
				ShotRadius:    2.5,
				MaxShotPower:  60,
				ShotSpeed:     115,
				AngleDeg:      225,
				ChargeSeconds: 1.5,
			},
			Generator: Generator{
				Capacity: 120,
			},
			Gravity: -24.5,
		}, nil

	case PresetLarge:
		return PhysicsConstants{
			Timing: defaultTiming,
			Castle: Castle{
				CanyonSize:             1000,
				CastleHeight:           300,
				FoundationDepth:        150,
				FoundationHitsRequired: 8,
				EvacuationMs:           20000,
			},
			Satchel: Satchel{
				Mass:              5,
				Diameter:          30,
				LimitingMethod:    LimitAlwaysOne,
				MaxInFlight:       4,
				MaxInFlightPeriod: 20,
				ThrowPeriod:       40,
				MinFlightSeconds:  1.0,
				MaxFlightSeconds:  5.0,
			},
			Platform: Platform{
				Mass:     1000,
				Length:   120,
				MaxForce: 190000,
				MaxSpeed: 480,
			},
			Shield: Shield{
				EffectiveRange:   150,
				ActivationEnergy: 40,
			},
			RailGun: RailGun{
				ShotMass:      10,
				ShotRadius:    8,
				MaxShotPower:  80,
				ShotSpeed:     130,
				AngleDeg:      225,
				ChargeSeconds: 1.5,
			},
			Generator: Generator{
				Capacity: 160,
			},
			Gravity: -9.8,
		}, nil
	}
	return PhysicsConstants{}, fmt.Errorf("%w: %s", ErrUnknownPreset, p)
}
