package viz

import (
	"github.com/san-kum/lander/internal/craft"
	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/sim"
	"github.com/san-kum/lander/internal/terrain"
)

// FlameScale shortens engine force arrows to a drawable length.
const FlameScale = 0.05

// Scene draws recorded frames of one ship over its terrain. The ship is used
// as a geometry template; drawing a frame overwrites its pose and engines.
type Scene struct {
	Ground *terrain.Strip
	Ship   *craft.Ship
}

func NewScene(ground *terrain.Strip, ship *craft.Ship) *Scene {
	return &Scene{Ground: ground, Ship: ship}
}

// Viewport covers the whole terrain strip and everything the frames visit,
// with a margin of one ship diagonal.
func (s *Scene) Viewport(frames []sim.Frame) Viewport {
	minX, maxX := s.Ground.Extent()
	v := Viewport{MinX: minX, MaxX: maxX, MinY: s.Ground.Floor(), MaxY: s.Ground.Floor()}
	for k := 0; k < s.Ground.Samples(); k++ {
		v = v.Fit(s.Ground.VertexAt(int64(2 * k)).Position)
	}
	for _, f := range frames {
		v = v.Fit(f.Position).Fit(f.Center)
	}
	pad := 2 * s.Ship.Body.Diag()
	v.MinX -= pad
	v.MaxX += pad
	v.MinY -= pad
	return v
}

// Draw renders the terrain, the trail and the ship at frame f.
func (s *Scene) Draw(c *Canvas, f sim.Frame, trail []dynamo.Vec2) {
	c.Clear()
	s.drawTerrain(c)
	for _, p := range trail {
		c.Plot(p)
	}

	b := s.Ship.Body
	b.SetPose(f.Position, f.Angle)
	b.SetVelocity(f.Velocity, f.AngularVelocity)
	s.Ship.Apply(f.Command)

	v := b.Vertices()
	c.Polygon(v[:])
	for _, name := range s.Ship.EngineNames() {
		from, to, ok := b.ForceSegment(name)
		if !ok {
			continue
		}
		// Flames point away from the push.
		c.Segment(from, from.Sub(to.Sub(from).Scale(FlameScale)))
	}
}

func (s *Scene) drawTerrain(c *Canvas) {
	prev := s.Ground.VertexAt(0).Position
	for k := 1; k < s.Ground.Samples(); k++ {
		p := s.Ground.VertexAt(int64(2 * k)).Position
		c.Segment(prev, p)
		prev = p
	}
}
