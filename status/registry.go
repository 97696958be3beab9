package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metric keys published by the engine
const (
	KeyTicks          = "engine.ticks"
	KeyTickMicros     = "engine.tick_us"
	KeySessions       = "session.count"
	KeySatchelsThrown = "satchel.thrown"
	KeySpawnDropped   = "spawn.dropped"
	KeyShotsFired     = "shot.fired"
	KeyShotsDropped   = "shot.dropped"
	KeyFoundationHits = "foundation.hits"
	KeyShieldsUseful  = "shield.useful"
	KeyRenderFrames   = "render.frames"
	KeyEvacuating     = "evac.active"
)

// Registry is the telemetry facade shared by the engine and its readers
// Tasks cache cell pointers at construction; tick loops write atomics directly
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Gauges *MetricMap[Gauge]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Gauges: NewMetricMap[Gauge](),
	}
}

// TotalCount returns the number of metrics across all kinds
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Gauges.Count()
}

// Summary renders ints and gauges as "key=value" pairs in key order
func (r *Registry) Summary() string {
	var b strings.Builder
	r.Ints.Range(func(key string, v *atomic.Int64) {
		fmt.Fprintf(&b, "%s=%d ", key, v.Load())
	})
	r.Gauges.Range(func(key string, g *Gauge) {
		fmt.Fprintf(&b, "%s=%.2f ", key, g.Get())
	})
	r.Bools.Range(func(key string, v *atomic.Bool) {
		fmt.Fprintf(&b, "%s=%t ", key, v.Load())
	})
	return strings.TrimSpace(b.String())
}
