package input

import "sync"

// FIFOCapacity bounds queued button transitions between the event source and the button task
const FIFOCapacity = 10

// ButtonEvent is one queued button transition
type ButtonEvent uint8

const (
	Button0Down ButtonEvent = iota + 1
	Button0Up
	Button1Down
	Button1Up
)

// ButtonFIFO is a fixed ring of button transitions
// Push drops the event when full; the source never blocks
type ButtonFIFO struct {
	mu    sync.Mutex
	data  [FIFOCapacity]ButtonEvent
	head  int
	tail  int
	count int
}

// Push appends ev, returns false if the ring is full
func (f *ButtonFIFO) Push(ev ButtonEvent) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.count == FIFOCapacity {
		return false
	}
	f.data[f.head] = ev
	f.head = (f.head + 1) % FIFOCapacity
	f.count++
	return true
}

// Pop removes the oldest event, ok is false when empty
func (f *ButtonFIFO) Pop() (ev ButtonEvent, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.count == 0 {
		return 0, false
	}
	ev = f.data[f.tail]
	f.tail = (f.tail + 1) % FIFOCapacity
	f.count--
	return ev, true
}

// Len returns the number of queued events
func (f *ButtonFIFO) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}
