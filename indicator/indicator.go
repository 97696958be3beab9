package indicator

import (
	"github.com/lixenwraith/canyon-defense/core"
	"github.com/lixenwraith/canyon-defense/engine"
	"github.com/lixenwraith/canyon-defense/parameter"
)

// LED is a single on/off output
type LED interface {
	Set(on bool)
}

// Source is the read side of the session
type Source interface {
	Snapshot() (core.Pool, core.GameData)
	WaitActive(stop <-chan struct{}) bool
}

// Indicator drives one LED from the published status on the LED period
type Indicator struct {
	name    string
	led     LED
	source  Source
	pattern PatternFunc
	c       *parameter.PhysicsConstants

	// Owned by the scheduler goroutine
	elapsedTicks int
	on           bool
}

// New creates an indicator; use ChargePattern or EvacuationPattern for pattern
func New(name string, led LED, source Source, c *parameter.PhysicsConstants, pattern PatternFunc) *Indicator {
	return &Indicator{
		name:    name,
		led:     led,
		source:  source,
		pattern: pattern,
		c:       c,
	}
}

// Name returns the indicator name
func (ind *Indicator) Name() string {
	return ind.name
}

// Tick samples the status once and advances the blink phase by one LED period
func (ind *Indicator) Tick() {
	_, data := ind.source.Snapshot()
	ind.apply(ind.pattern(ind.c, data))
}

func (ind *Indicator) apply(p Pattern) {
	switch p.Mode {
	case ModeOff:
		ind.elapsedTicks = 0
		ind.on = false
	case ModeSolid:
		ind.elapsedTicks = 0
		ind.on = true
	case ModeBlink:
		half := int(p.HalfPeriod / ind.c.LEDPeriod())
		if half < 1 {
			half = 1
		}
		ind.elapsedTicks++
		if ind.elapsedTicks >= half {
			ind.elapsedTicks = 0
			ind.on = !ind.on
		}
	}
	ind.led.Set(ind.on)
}

// gate turns the LED off before parking until the session is Active
func (ind *Indicator) gate(stop <-chan struct{}) bool {
	_, data := ind.source.Snapshot()
	if data.State != core.StateActive {
		ind.elapsedTicks = 0
		ind.on = false
		ind.led.Set(false)
	}
	return ind.source.WaitActive(stop)
}

// NewScheduler returns the indicator task on the LED period
func (ind *Indicator) NewScheduler() *engine.ClockScheduler {
	return engine.NewClockScheduler(ind.name, ind.c.LEDPeriod(), ind.Tick, ind.gate)
}
