package indicator

import (
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/canyon-defense/core"
	"github.com/lixenwraith/canyon-defense/parameter"
)

type recordLED struct {
	mu  sync.Mutex
	log []bool
}

func (l *recordLED) Set(on bool) {
	l.mu.Lock()
	l.log = append(l.log, on)
	l.mu.Unlock()
}

func (l *recordLED) last() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.log) > 0 && l.log[len(l.log)-1]
}

type fixedSource struct {
	data core.GameData
}

func (s *fixedSource) Snapshot() (core.Pool, core.GameData) { return core.Pool{}, s.data }
func (s *fixedSource) WaitActive(stop <-chan struct{}) bool {
	if s.data.State == core.StateActive {
		return true
	}
	<-stop
	return false
}

func testConstants(t *testing.T) *parameter.PhysicsConstants {
	t.Helper()
	c, err := parameter.BuildConstants(parameter.PresetScreen, 127)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestChargePattern(t *testing.T) {
	c := testConstants(t)
	maxShot := c.RailGun.MaxShotPower

	if p := ChargePattern(c, core.GameData{}); p.Mode != ModeOff {
		t.Errorf("empty charge mode = %d, want off", p.Mode)
	}
	if p := ChargePattern(c, core.GameData{ShotCharge: maxShot}); p.Mode != ModeSolid {
		t.Errorf("full charge mode = %d, want solid", p.Mode)
	}

	low := ChargePattern(c, core.GameData{ShotCharge: maxShot * 0.1})
	high := ChargePattern(c, core.GameData{ShotCharge: maxShot * 0.9})
	if low.Mode != ModeBlink || high.Mode != ModeBlink {
		t.Fatalf("partial charge modes = %d/%d, want blink", low.Mode, high.Mode)
	}
	if high.HalfPeriod >= low.HalfPeriod {
		t.Errorf("half period at 90%% = %v, not faster than at 10%% = %v", high.HalfPeriod, low.HalfPeriod)
	}
}

func TestEvacuationPattern(t *testing.T) {
	c := testConstants(t)
	total := c.EvacuationTicks()

	if p := EvacuationPattern(c, core.GameData{FoundationDamage: 1}); p.Mode != ModeOff {
		t.Errorf("before threshold mode = %d, want off", p.Mode)
	}

	early := EvacuationPattern(c, core.GameData{EvacStarted: true, EvacStartTick: 100, Ticks: 110})
	late := EvacuationPattern(c, core.GameData{EvacStarted: true, EvacStartTick: 100, Ticks: 100 + total - 10})
	if early.Mode != ModeBlink || late.Mode != ModeBlink {
		t.Fatalf("countdown modes = %d/%d, want blink", early.Mode, late.Mode)
	}
	if late.HalfPeriod >= early.HalfPeriod {
		t.Errorf("late half period %v not faster than early %v", late.HalfPeriod, early.HalfPeriod)
	}

	done := EvacuationPattern(c, core.GameData{EvacStarted: true, EvacComplete: true})
	if done.Mode != ModeSolid {
		t.Errorf("complete mode = %d, want solid", done.Mode)
	}
}

func TestIndicatorBlinksAtHalfPeriod(t *testing.T) {
	c := testConstants(t)
	led := &recordLED{}
	ind := New("test", led, &fixedSource{}, c, nil)

	half := 100 * time.Millisecond
	ticks := int(half / c.LEDPeriod())
	p := Pattern{Mode: ModeBlink, HalfPeriod: half}

	for i := 0; i < 4*ticks; i++ {
		ind.apply(p)
	}

	toggles := 0
	for i := 1; i < len(led.log); i++ {
		if led.log[i] != led.log[i-1] {
			toggles++
		}
	}
	// One toggle at the end of every half period
	if toggles != 4 {
		t.Errorf("toggles = %d over %d ticks, want 4", toggles, 4*ticks)
	}
	if !led.log[ticks-1] {
		t.Errorf("LED off at end of first half period")
	}
}

func TestIndicatorSolidAndOff(t *testing.T) {
	c := testConstants(t)
	led := &recordLED{}
	src := &fixedSource{data: core.GameData{State: core.StateActive, ShotCharge: c.RailGun.MaxShotPower}}
	ind := New("charge", led, src, c, ChargePattern)

	ind.Tick()
	if !led.last() {
		t.Error("full charge LED off")
	}
	src.data.ShotCharge = 0
	ind.Tick()
	if led.last() {
		t.Error("empty charge LED on")
	}
}

func TestIndicatorSchedulerParksWithLEDOff(t *testing.T) {
	c := testConstants(t)
	led := &recordLED{}
	led.Set(true)
	src := &fixedSource{data: core.GameData{State: core.StateWin, EvacStarted: true, EvacComplete: true}}
	ind := New("evac", led, src, c, EvacuationPattern)

	cs := ind.NewScheduler()
	cs.Start()
	time.Sleep(30 * time.Millisecond)
	cs.Stop()

	if cs.TickCount() != 0 {
		t.Errorf("indicator ticked %d times while inactive", cs.TickCount())
	}
	if led.last() {
		t.Error("LED left on while parked")
	}
}
