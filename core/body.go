package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyKind discriminates pool slots
type BodyKind uint8

const (
	BodyEmpty BodyKind = iota
	BodyPlayer
	BodySatchel
	BodyShot
)

func (k BodyKind) String() string {
	switch k {
	case BodyEmpty:
		return "empty"
	case BodyPlayer:
		return "player"
	case BodySatchel:
		return "satchel"
	case BodyShot:
		return "shot"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Kinetic holds the integrated state of a body in physics space
// x grows away from the castle, y grows upward with the canyon floor at 0
type Kinetic struct {
	Pos   mgl64.Vec2
	Vel   mgl64.Vec2 // units per second
	Accel mgl64.Vec2 // units per second squared
	Force mgl64.Vec2 // consumed and zeroed each tick
}

// Body is one pool slot
// The zero value is an Empty slot; occupied slots are only created through the constructors below
type Body struct {
	Kind BodyKind
	Mass float64
	Kinetic
}

// NewPlayer returns the platform body resting on the canyon floor at x
func NewPlayer(mass, x float64) Body {
	mustPositiveMass(BodyPlayer, mass)
	return Body{
		Kind:    BodyPlayer,
		Mass:    mass,
		Kinetic: Kinetic{Pos: mgl64.Vec2{x, 0}},
	}
}

// NewShot returns a rail-gun shot launched from pos with velocity vel
func NewShot(mass float64, pos, vel mgl64.Vec2) Body {
	mustPositiveMass(BodyShot, mass)
	return Body{
		Kind:    BodyShot,
		Mass:    mass,
		Kinetic: Kinetic{Pos: pos, Vel: vel},
	}
}

// NewSatchel returns a satchel thrown from pos with velocity vel
func NewSatchel(mass float64, pos, vel mgl64.Vec2) Body {
	mustPositiveMass(BodySatchel, mass)
	return Body{
		Kind:    BodySatchel,
		Mass:    mass,
		Kinetic: Kinetic{Pos: pos, Vel: vel},
	}
}

// IsEmpty reports whether the slot is free
func (b *Body) IsEmpty() bool {
	return b.Kind == BodyEmpty
}

// Clear frees the slot, dropping every field of the previous occupant
func (b *Body) Clear() {
	*b = Body{}
}

func mustPositiveMass(kind BodyKind, mass float64) {
	if !(mass > 0) {
		panic(fmt.Errorf("%s body with non-positive mass %v", kind, mass))
	}
}
