package sim

import (
	"fmt"

	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/physics"
)

// World addresses several bodies by id so input glue can toggle forces on
// any of them. Bodies never interact.
type World struct {
	bodies map[string]*physics.Body
	order  []string
}

func NewWorld() *World {
	return &World{bodies: make(map[string]*physics.Body)}
}

func (w *World) Add(id string, b *physics.Body) error {
	if _, ok := w.bodies[id]; ok {
		return fmt.Errorf("body %q already registered", id)
	}
	w.bodies[id] = b
	w.order = append(w.order, id)
	return nil
}

func (w *World) Body(id string) (*physics.Body, error) {
	b, ok := w.bodies[id]
	if !ok {
		return nil, fmt.Errorf("body %q: %w", id, dynamo.ErrUnknownName)
	}
	return b, nil
}

// IDs returns body ids in registration order.
func (w *World) IDs() []string {
	out := make([]string, len(w.order))
	copy(out, w.order)
	return out
}

func (w *World) AddForce(id, name string, f physics.Force) error {
	b, err := w.Body(id)
	if err != nil {
		return err
	}
	b.AddForce(name, f)
	return nil
}

func (w *World) RemoveForce(id, name string) error {
	b, err := w.Body(id)
	if err != nil {
		return err
	}
	b.RemoveForce(name)
	return nil
}

func (w *World) SetForceActive(id, name string, active bool) error {
	b, err := w.Body(id)
	if err != nil {
		return err
	}
	b.SetForceActive(name, active)
	return nil
}

func (w *World) GetForce(id, name string) (physics.Force, error) {
	b, err := w.Body(id)
	if err != nil {
		return physics.Force{}, err
	}
	return b.GetForce(name), nil
}

// Step refreshes and advances every body in registration order.
func (w *World) Step(st Stepper, dt float64) {
	for _, id := range w.order {
		b := w.bodies[id]
		b.Refresh()
		st.Step(b, dt)
	}
}
