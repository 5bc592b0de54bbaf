package metrics

import (
	"github.com/san-kum/lander/internal/landing"
	"github.com/san-kum/lander/internal/sim"
)

// EngineTime is the total time any engine was firing. A frame's engine count
// covers the step that ended at that frame.
type EngineTime struct {
	name    string
	total   float64
	prevT   float64
	started bool
}

func NewEngineTime() *EngineTime {
	return &EngineTime{name: "engine_time"}
}

func (e *EngineTime) Name() string { return e.name }

func (e *EngineTime) Observe(f sim.Frame) {
	if e.started && f.ActiveEngines > 0 {
		e.total += f.Time - e.prevT
	}
	e.prevT = f.Time
	e.started = true
}

func (e *EngineTime) Value() float64 { return e.total }

func (e *EngineTime) Reset() {
	e.total = 0
	e.prevT = 0
	e.started = false
}

// AirTime is how long the craft flew before its first verdict.
type AirTime struct {
	name   string
	last   float64
	landed bool
}

func NewAirTime() *AirTime {
	return &AirTime{name: "air_time"}
}

func (a *AirTime) Name() string { return a.name }

func (a *AirTime) Observe(f sim.Frame) {
	if a.landed {
		return
	}
	a.last = f.Time
	if f.Status != landing.Flying {
		a.landed = true
	}
}

func (a *AirTime) Value() float64 { return a.last }

func (a *AirTime) Reset() {
	a.last = 0
	a.landed = false
}
