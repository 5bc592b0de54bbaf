package craft

import (
	"fmt"
	"sort"

	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/physics"
)

// Mount describes one engine of a layout.
type Mount struct {
	Name      string
	Magnitude float64
	Direction dynamo.Vec2
	Anchor    dynamo.Vec2 // fraction of width and height
	MaxGimbal float64
	Group     Group
}

// Layout is a named engine arrangement that can be bolted onto any body.
type Layout struct {
	Name   string
	Mounts []Mount
}

const (
	LunarLanderMark1 = "lunar_lander_mark1"
	TestBlock        = "test_block"
)

var layouts = map[string]Layout{
	LunarLanderMark1: {
		Name: LunarLanderMark1,
		Mounts: []Mount{
			{Name: "1", Magnitude: 400, Direction: dynamo.V(0, -1), Anchor: dynamo.V(0.5, 1), MaxGimbal: 10, Group: GroupMain},
			{Name: "3", Magnitude: 200, Direction: dynamo.V(-1, 0), Anchor: dynamo.V(0, 0), Group: GroupCCW},
			{Name: "4", Magnitude: 200, Direction: dynamo.V(1, 0), Anchor: dynamo.V(1, 0), Group: GroupCW},
			{Name: "5", Magnitude: 200, Direction: dynamo.V(1, 0), Anchor: dynamo.V(1, 1), Group: GroupCCW},
			{Name: "6", Magnitude: 200, Direction: dynamo.V(-1, 0), Anchor: dynamo.V(0, 1), Group: GroupCW},
		},
	},
	// Bench rig with one thruster per face and four corner pushers.
	TestBlock: {
		Name: TestBlock,
		Mounts: []Mount{
			{Name: "1", Magnitude: 200, Direction: dynamo.V(0, -1), Anchor: dynamo.V(0.5, 0.5), Group: GroupMain},
			{Name: "2", Magnitude: 200, Direction: dynamo.V(0, 1), Anchor: dynamo.V(0.5, 0.5)},
			{Name: "3", Magnitude: 200, Direction: dynamo.V(1, 0), Anchor: dynamo.V(0.5, 0.5)},
			{Name: "4", Magnitude: 200, Direction: dynamo.V(-1, 0), Anchor: dynamo.V(0.5, 0.5)},
			{Name: "5", Magnitude: 200, Direction: dynamo.V(0, -1), Anchor: dynamo.V(0, 0), Group: GroupCW},
			{Name: "6", Magnitude: 200, Direction: dynamo.V(0, 1), Anchor: dynamo.V(1, 1), Group: GroupCW},
			{Name: "7", Magnitude: 200, Direction: dynamo.V(0, 1), Anchor: dynamo.V(0, 1), Group: GroupCCW},
			{Name: "8", Magnitude: 200, Direction: dynamo.V(0, -1), Anchor: dynamo.V(1, 0), Group: GroupCCW},
		},
	},
}

// GetLayout looks up a built-in layout by name.
func GetLayout(name string) (Layout, error) {
	l, ok := layouts[name]
	if !ok {
		return Layout{}, fmt.Errorf("layout %q: %w", name, dynamo.ErrUnknownName)
	}
	return l, nil
}

func ListLayouts() []string {
	names := make([]string, 0, len(layouts))
	for n := range layouts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Assemble builds a body from p, registers gravity as field "0" and mounts
// every engine of the named layout. All engines start off.
func Assemble(layout string, p physics.Params, gravity dynamo.Vec2) (*Ship, error) {
	l, err := GetLayout(layout)
	if err != nil {
		return nil, err
	}
	body, err := physics.NewBody(p)
	if err != nil {
		return nil, fmt.Errorf("assemble %s: %w", layout, err)
	}

	s := NewShip(l.Name, body)
	s.SetGravity(gravity)
	for _, m := range l.Mounts {
		s.AddEngine(m.Name, NewEngine(physics.NewThrust(m.Magnitude, m.Direction, m.Anchor), m.MaxGimbal), m.Group)
	}
	body.Refresh()
	return s, nil
}
