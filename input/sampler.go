package input

import (
	"log"
	"sync"
	"time"
)

// Pad indexes the four slider pads
type Pad uint8

const (
	PadFarLeft Pad = iota
	PadLeft
	PadRight
	PadFarRight
	padCount
)

// DefaultHoldWindow keeps a pad touched between terminal key repeats
// Covers the initial auto-repeat delay of common terminals
const DefaultHoldWindow = 550 * time.Millisecond

// Sampler is the input collaborator of the engine
// Raw pad touches and button transitions arrive from the event source; the slider task and
// the button task publish debounced state under their own locks
type Sampler struct {
	now        func() time.Time
	holdWindow time.Duration

	// Raw sensor: latest touch deadline per pad
	padMu     sync.Mutex
	padExpiry [padCount]time.Time

	sliderMu sync.Mutex
	slider   Slider

	fifo   ButtonFIFO
	notify chan struct{}

	buttonMu sync.Mutex
	buttons  Buttons
}

// NewSampler creates a sampler; now may be nil to use the wall clock
func NewSampler(now func() time.Time, holdWindow time.Duration) *Sampler {
	if now == nil {
		now = time.Now
	}
	if holdWindow <= 0 {
		holdWindow = DefaultHoldWindow
	}
	return &Sampler{
		now:        now,
		holdWindow: holdWindow,
		notify:     make(chan struct{}, 1),
	}
}

// Touch marks a pad as touched for one hold window
func (s *Sampler) Touch(p Pad) {
	if p >= padCount {
		return
	}
	s.padMu.Lock()
	s.padExpiry[p] = s.now().Add(s.holdWindow)
	s.padMu.Unlock()
}

// Release clears every pad touch immediately
func (s *Sampler) Release() {
	s.padMu.Lock()
	s.padExpiry = [padCount]time.Time{}
	s.padMu.Unlock()
}

// SampleSlider reads the raw pads and publishes the slider state, run on the slider period
func (s *Sampler) SampleSlider() {
	now := s.now()

	s.padMu.Lock()
	var touched [padCount]bool
	for i, exp := range s.padExpiry {
		touched[i] = now.Before(exp)
	}
	s.padMu.Unlock()

	s.sliderMu.Lock()
	s.slider = Slider{
		FarLeft:  touched[PadFarLeft],
		Left:     touched[PadLeft],
		Right:    touched[PadRight],
		FarRight: touched[PadFarRight],
	}
	s.sliderMu.Unlock()
}

// PostButton queues a button transition and wakes the button task
// Safe to call from the event source goroutine; never blocks
func (s *Sampler) PostButton(ev ButtonEvent) {
	if !s.fifo.Push(ev) {
		log.Printf("input: button fifo full, dropped %d", ev)
	}
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// RunButtons is the button task body; it blocks until a transition is posted or stop closes
func (s *Sampler) RunButtons(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-s.notify:
			s.DrainButtons()
		}
	}
}

// DrainButtons applies every queued transition to the published button state
func (s *Sampler) DrainButtons() {
	for {
		ev, ok := s.fifo.Pop()
		if !ok {
			return
		}
		s.buttonMu.Lock()
		switch ev {
		case Button0Down:
			s.buttons.Button0Held = true
		case Button0Up:
			s.buttons.Button0Held = false
		case Button1Down:
			if !s.buttons.Button1Held {
				s.buttons.Button1JustPressed = true
			}
			s.buttons.Button1Held = true
		case Button1Up:
			s.buttons.Button1Held = false
		}
		s.buttonMu.Unlock()
	}
}

// ReadSlider returns the published slider state
func (s *Sampler) ReadSlider() Slider {
	s.sliderMu.Lock()
	defer s.sliderMu.Unlock()
	return s.slider
}

// ReadButtons returns the published button state and consumes the button1 rising edge
func (s *Sampler) ReadButtons() Buttons {
	s.buttonMu.Lock()
	defer s.buttonMu.Unlock()
	b := s.buttons
	s.buttons.Button1JustPressed = false
	return b
}

// Reset clears every input, used when a session starts
func (s *Sampler) Reset() {
	s.Release()
	for {
		if _, ok := s.fifo.Pop(); !ok {
			break
		}
	}
	s.sliderMu.Lock()
	s.slider = Slider{}
	s.sliderMu.Unlock()
	s.buttonMu.Lock()
	s.buttons = Buttons{}
	s.buttonMu.Unlock()
}
