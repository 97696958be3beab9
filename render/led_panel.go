package render

import "sync/atomic"

// LEDCell is one LED drawn on the HUD; Set is called from the indicator task
type LEDCell struct {
	label string
	on    atomic.Bool
}

// Set implements the indicator LED sink
func (l *LEDCell) Set(on bool) {
	l.on.Store(on)
}

// On reports the last value written
func (l *LEDCell) On() bool {
	return l.on.Load()
}

// LEDPanel holds the two board LEDs
type LEDPanel struct {
	Charge LEDCell
	Evac   LEDCell
}

// NewLEDPanel creates a panel with both LEDs off
func NewLEDPanel() *LEDPanel {
	return &LEDPanel{
		Charge: LEDCell{label: "CHG"},
		Evac:   LEDCell{label: "EVAC"},
	}
}

func (p *LEDPanel) cells() []*LEDCell {
	return []*LEDCell{&p.Charge, &p.Evac}
}
