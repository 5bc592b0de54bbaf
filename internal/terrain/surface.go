// Package terrain provides the ground the lander descends onto.
//
// A terrain is stored as a vertex strip: every surface sample k owns the
// vertex pair (2k, 2k+1), the surface point first and its floor partner
// second, the layout a triangle strip uses to fill the ground. Consumers that
// only need the surface therefore step through even indices.
package terrain

import (
	"fmt"
	"math"

	"github.com/san-kum/lander/internal/dynamo"
)

type Vertex struct {
	Position dynamo.Vec2
}

// Surface is the read-only query surface the landing classifier samples.
type Surface interface {
	// Spacing is the world distance between neighbouring surface samples.
	Spacing() float64
	// BaseIndex is the vertex index of the surface sample at world x = 0.
	BaseIndex() int64
	VertexAt(i int64) Vertex
}

// Strip is a Surface backed by evenly spaced height samples.
type Strip struct {
	heights []float64
	spacing float64
	origin  int
	floor   float64
}

// NewStrip builds a strip from surface heights. origin is the sample that sits
// at world x = 0 and floor is the y coordinate of every floor vertex.
func NewStrip(heights []float64, spacing float64, origin int, floor float64) (*Strip, error) {
	if len(heights) < 2 {
		return nil, fmt.Errorf("terrain needs at least 2 samples, got %d: %w", len(heights), dynamo.ErrParameterBounds)
	}
	if spacing <= 0 {
		return nil, fmt.Errorf("spacing %g: %w", spacing, dynamo.ErrParameterBounds)
	}
	h := make([]float64, len(heights))
	copy(h, heights)
	return &Strip{heights: h, spacing: spacing, origin: origin, floor: floor}, nil
}

func (s *Strip) Spacing() float64 { return s.spacing }
func (s *Strip) BaseIndex() int64 { return int64(2 * s.origin) }
func (s *Strip) Samples() int     { return len(s.heights) }
func (s *Strip) Floor() float64   { return s.floor }

// VertexAt returns vertex i of the strip. Indices past either end clamp to the
// nearest vertex of the same parity so windows that run off the map still
// sample the edge of the surface.
func (s *Strip) VertexAt(i int64) Vertex {
	last := int64(2*len(s.heights) - 1)
	if i < 0 {
		i = i & 1
	} else if i > last {
		i = last - 1 + (i & 1)
	}
	k := int(i / 2)
	x := s.sampleX(k)
	if i%2 == 1 {
		return Vertex{Position: dynamo.V(x, s.floor)}
	}
	return Vertex{Position: dynamo.V(x, s.heights[k])}
}

func (s *Strip) sampleX(k int) float64 {
	return float64(k-s.origin) * s.spacing
}

// Extent returns the world x range covered by the surface.
func (s *Strip) Extent() (minX, maxX float64) {
	return s.sampleX(0), s.sampleX(len(s.heights) - 1)
}

// HeightAt interpolates the surface y at world x, holding the edge height
// outside the strip.
func (s *Strip) HeightAt(x float64) float64 {
	u := x/s.spacing + float64(s.origin)
	if u <= 0 {
		return s.heights[0]
	}
	last := len(s.heights) - 1
	if u >= float64(last) {
		return s.heights[last]
	}
	k := int(math.Floor(u))
	frac := u - float64(k)
	return s.heights[k]*(1-frac) + s.heights[k+1]*frac
}

// Contact reports whether any point lies on or below the surface. y grows
// downward, so below means a larger y.
func (s *Strip) Contact(points []dynamo.Vec2) bool {
	for _, p := range points {
		if p.Y >= s.HeightAt(p.X) {
			return true
		}
	}
	return false
}

// Clearance returns how far the lowest point is above the surface; negative
// values mean penetration.
func (s *Strip) Clearance(points []dynamo.Vec2) float64 {
	best := math.Inf(1)
	for _, p := range points {
		best = math.Min(best, s.HeightAt(p.X)-p.Y)
	}
	return best
}
