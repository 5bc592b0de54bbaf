package craft

import (
	"fmt"

	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/physics"
)

// GravityForce is the name the ambient field is registered under.
const GravityForce = "0"

// Group is a set of engines fired together by one command.
type Group string

const (
	GroupMain Group = "main"
	GroupCCW  Group = "ccw"
	GroupCW   Group = "cw"
)

// Command is one frame of pilot input.
type Command struct {
	Main     bool
	Throttle float64 // fraction of full main thrust
	Gimbal   float64 // main nozzle deflection in [-1, 1]
	CCW      bool
	CW       bool
}

// Ship is a body with named engines. Every engine change is republished into
// the body's force map under the engine's name.
type Ship struct {
	Name string
	Body *physics.Body

	engines map[string]*Engine
	order   []string
	groups  map[Group][]string
}

func NewShip(name string, body *physics.Body) *Ship {
	return &Ship{
		Name:    name,
		Body:    body,
		engines: make(map[string]*Engine),
		groups:  make(map[Group][]string),
	}
}

// AddEngine installs e under name and, when group is non-empty, adds it to
// that command group.
func (s *Ship) AddEngine(name string, e *Engine, group Group) {
	if _, ok := s.engines[name]; !ok {
		s.order = append(s.order, name)
	}
	s.engines[name] = e
	if group != "" {
		s.groups[group] = append(s.groups[group], name)
	}
	s.sync(name)
}

func (s *Ship) Engine(name string) (*Engine, bool) {
	e, ok := s.engines[name]
	return e, ok
}

func (s *Ship) EngineNames() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Ship) Group(g Group) []string { return s.groups[g] }

func (s *Ship) EngineOn(name string)  { s.set(name, func(e *Engine) { e.on = true }) }
func (s *Ship) EngineOff(name string) { s.set(name, func(e *Engine) { e.on = false }) }

func (s *Ship) SetEngineThrust(name string, fraction float64) {
	s.set(name, func(e *Engine) { e.SetThrottle(fraction) })
}

func (s *Ship) SetEngineThrustAngle(name string, fraction float64) {
	s.set(name, func(e *Engine) { e.SetGimbal(fraction) })
}

// ActiveEngines counts engines that are firing.
func (s *Ship) ActiveEngines() int {
	n := 0
	for _, e := range s.engines {
		if e.on {
			n++
		}
	}
	return n
}

// Apply maps a command onto engine groups. Opposing rotation requests cancel.
func (s *Ship) Apply(cmd Command) {
	for _, name := range s.groups[GroupMain] {
		s.set(name, func(e *Engine) {
			e.on = cmd.Main
			e.SetThrottle(cmd.Throttle)
			e.SetGimbal(cmd.Gimbal)
		})
	}

	ccw, cw := cmd.CCW && !cmd.CW, cmd.CW && !cmd.CCW
	for _, name := range s.groups[GroupCCW] {
		s.set(name, func(e *Engine) { e.on = ccw })
	}
	for _, name := range s.groups[GroupCW] {
		s.set(name, func(e *Engine) { e.on = cw })
	}
}

func (s *Ship) set(name string, fn func(*Engine)) {
	e, ok := s.engines[name]
	if !ok {
		return
	}
	fn(e)
	s.sync(name)
}

func (s *Ship) sync(name string) {
	s.Body.AddForce(name, s.engines[name].Force())
}

// SetGravity registers the ambient acceleration field.
func (s *Ship) SetGravity(g dynamo.Vec2) {
	s.Body.AddForce(GravityForce, physics.NewField(g))
}

func (s *Ship) String() string {
	return fmt.Sprintf("%s(%d engines)", s.Name, len(s.engines))
}
