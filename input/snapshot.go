package input

// Slider is the four-pad capacitive slider state
// Pads are mutually exclusive intent; left-side and right-side pads together cancel
type Slider struct {
	FarLeft  bool
	Left     bool
	Right    bool
	FarRight bool
}

// Any reports whether any pad is touched
func (s Slider) Any() bool {
	return s.FarLeft || s.Left || s.Right || s.FarRight
}

// BothSides reports whether a left pad and a right pad are touched together
func (s Slider) BothSides() bool {
	return (s.FarLeft || s.Left) && (s.Right || s.FarRight)
}

// Buttons is the debounced push-button state
type Buttons struct {
	Button0Held        bool
	Button1Held        bool
	Button1JustPressed bool // rising edge, consumed by ReadButtons
}

// Snapshot is the combined input read by the engine once per tick
type Snapshot struct {
	Slider  Slider
	Buttons Buttons
}
