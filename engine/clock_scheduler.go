package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/canyon-defense/core"
)

// Gate blocks a scheduler before each tick until the task may run
// Returns false when stop closes while waiting
type Gate func(stop <-chan struct{}) bool

// ClockScheduler runs a task on a fixed period with drift correction
// Waits on timers and gates, never busy-waits
type ClockScheduler struct {
	name     string
	interval time.Duration
	task     func()
	gate     Gate

	nextTickDeadline time.Time // owned by the scheduler goroutine

	tickCount atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewClockScheduler creates a scheduler for task; gate may be nil
func NewClockScheduler(name string, interval time.Duration, task func(), gate Gate) *ClockScheduler {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &ClockScheduler{
		name:     name,
		interval: interval,
		task:     task,
		gate:     gate,
		stopChan: make(chan struct{}),
	}
}

// Name returns the task name
func (cs *ClockScheduler) Name() string {
	return cs.name
}

// TickCount returns the number of task executions
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		// core.Go for centralized crash handling
		core.Go(cs.schedulerLoop)
	}
}

// Stop halts the scheduler loop and waits for the current tick to finish
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		close(cs.stopChan)
		if cs.running.CompareAndSwap(true, false) {
			cs.wg.Wait()
		}
	})
}

func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	cs.nextTickDeadline = time.Now().Add(cs.interval)

	for {
		select {
		case <-cs.stopChan:
			return
		default:
		}

		if cs.gate != nil && !cs.gate(cs.stopChan) {
			return
		}

		now := time.Now()
		if !now.Before(cs.nextTickDeadline) {
			cs.task()
			cs.tickCount.Add(1)

			cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.interval)
			// Resynchronize after a gate wait or a long tick instead of bursting
			if now.Sub(cs.nextTickDeadline) > cs.interval*2 {
				cs.nextTickDeadline = now.Add(cs.interval)
			}
		}

		sleep := time.Until(cs.nextTickDeadline)
		if sleep <= 0 {
			continue
		}
		timer.Reset(sleep)
		select {
		case <-timer.C:
		case <-cs.stopChan:
			return
		}
	}
}
