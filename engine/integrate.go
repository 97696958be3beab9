package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/canyon-defense/core"
	"github.com/lixenwraith/canyon-defense/parameter"
	"github.com/lixenwraith/canyon-defense/physics"
)

// shotOutcome is the terminal classification of a shot after integration
type shotOutcome uint8

const (
	shotFlying shotOutcome = iota
	shotFoundationHit
	shotGround
	shotMissed   // struck the cliff below the foundation
	shotOvershot // passed above the foundation band
)

// classifyShot applies the terminal checks in priority order; the foundation hit wins ties
func classifyShot(pos mgl64.Vec2, c *parameter.PhysicsConstants) shotOutcome {
	x, y := pos.X(), pos.Y()
	switch {
	case x <= 0 && y >= c.Castle.CastleHeight && y <= c.CanyonHeight():
		return shotFoundationHit
	case y <= 0:
		return shotGround
	case x <= 0 && y < c.Castle.CastleHeight:
		return shotMissed
	case x <= 0:
		return shotOvershot
	}
	return shotFlying
}

// satchelOutcome is the terminal classification of a satchel after integration
type satchelOutcome uint8

const (
	satchelFlying satchelOutcome = iota
	satchelOnPlatform
	satchelGround
	satchelWall
)

// classifySatchel checks landing against the platform span, then the far wall
func classifySatchel(pos mgl64.Vec2, playerX float64, c *parameter.PhysicsConstants) satchelOutcome {
	x, y := pos.X(), pos.Y()
	if y+c.Satchel.Diameter/2 <= 0 {
		if math.Abs(x-playerX) <= c.Platform.Length/2 {
			return satchelOnPlatform
		}
		return satchelGround
	}
	if x > c.Castle.CanyonSize {
		return satchelWall
	}
	return satchelFlying
}

// integrate advances every occupied slot in index order, player first
func (e *Engine) integrate(pool *core.Pool, data *core.GameData) {
	gravity := mgl64.Vec2{0, e.c.Gravity}
	canyon := e.c.Castle.CanyonSize

	for i := range pool {
		b := &pool[i]
		switch b.Kind {
		case core.BodyPlayer:
			e.integratePlayer(b)

		case core.BodyShot:
			physics.Integrate(&b.Kinetic, b.Mass, gravity, e.dt)
			switch classifyShot(b.Pos, e.c) {
			case shotFoundationHit:
				b.Clear()
				data.FoundationDamage++
				e.statHits.Add(1)
				if data.FoundationDamage >= e.c.Castle.FoundationHitsRequired {
					setTerminal(data, core.StateWin)
				}
			case shotGround, shotMissed, shotOvershot:
				b.Clear()
			case shotFlying:
				if b.Pos.X() > canyon {
					physics.ReflectBoundsX(&b.Kinetic, math.Inf(-1), canyon, canyon)
				}
			}

		case core.BodySatchel:
			physics.Integrate(&b.Kinetic, b.Mass, gravity, e.dt)
			switch classifySatchel(b.Pos, pool.Player().Pos.X(), e.c) {
			case satchelOnPlatform:
				b.Clear()
				setTerminal(data, core.StateFail)
			case satchelGround:
				b.Clear()
			case satchelWall:
				physics.ReflectBoundsX(&b.Kinetic, math.Inf(-1), canyon, canyon)
			}
		}
	}
}

// integratePlayer applies control force, clamps speed and bounces the platform edges off the canyon walls
func (e *Engine) integratePlayer(b *core.Body) {
	physics.Accelerate(&b.Kinetic, b.Mass, mgl64.Vec2{}, e.dt)
	physics.ClampSpeedX(&b.Kinetic, e.c.Platform.MaxSpeed)
	physics.Advance(&b.Kinetic, e.dt)

	half := e.c.Platform.Length / 2
	canyon := e.c.Castle.CanyonSize
	physics.ReflectBoundsX(&b.Kinetic, half, canyon-half, canyon)

	// Platform rides the canyon floor
	b.Pos[1] = 0
	b.Vel[1] = 0
}
