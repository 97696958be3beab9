package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/canyon-defense/core"
)

// Accelerate sets a = F/m + field and applies v = v + a*dt, then consumes the force
// field carries body-independent acceleration such as gravity
func Accelerate(k *core.Kinetic, mass float64, field mgl64.Vec2, dt float64) {
	if !(mass > 0) {
		panic(fmt.Errorf("accelerate: non-positive mass %v", mass))
	}
	k.Accel = k.Force.Mul(1 / mass).Add(field)
	k.Vel = k.Vel.Add(k.Accel.Mul(dt))
	k.Force = mgl64.Vec2{}
}

// Advance applies p = p + v*dt
func Advance(k *core.Kinetic, dt float64) {
	k.Pos = k.Pos.Add(k.Vel.Mul(dt))
}

// Integrate performs semi-implicit Euler: v = v + a*dt; p = p + v*dt
func Integrate(k *core.Kinetic, mass float64, field mgl64.Vec2, dt float64) {
	Accelerate(k, mass, field, dt)
	Advance(k, dt)
}

// ClampSpeedX limits horizontal speed to ±max
func ClampSpeedX(k *core.Kinetic, max float64) {
	if k.Vel[0] > max {
		k.Vel[0] = max
	} else if k.Vel[0] < -max {
		k.Vel[0] = -max
	}
}

// ReflectHigh folds x back below hi by its overshoot modulo period
func ReflectHigh(x, hi, period float64) float64 {
	return hi - math.Mod(x-hi, period)
}

// ReflectLow folds x back above lo by its overshoot modulo period
func ReflectLow(x, lo, period float64) float64 {
	return lo + math.Mod(lo-x, period)
}

// ReflectBoundsX bounces a body whose x left [lo, hi], returns true if reflection occurred
// Velocity is negated and position reflected by overshoot modulo period, then kept inside the interval
func ReflectBoundsX(k *core.Kinetic, lo, hi, period float64) bool {
	x := k.Pos[0]
	switch {
	case x > hi:
		x = ReflectHigh(x, hi, period)
	case x < lo:
		x = ReflectLow(x, lo, period)
	default:
		return false
	}
	if hi < lo {
		x = (lo + hi) / 2
	} else if x < lo {
		x = lo
	} else if x > hi {
		x = hi
	}
	k.Pos[0] = x
	k.Vel[0] = -k.Vel[0]
	return true
}

// Distance returns the Euclidean distance between two points
func Distance(a, b mgl64.Vec2) float64 {
	dx := math.Abs(a[0] - b[0])
	dy := math.Abs(a[1] - b[1])
	return math.Sqrt(dx*dx + dy*dy)
}

// Sign returns -1, 0 or 1
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
