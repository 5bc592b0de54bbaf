package terrain

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/lander/internal/dynamo"
)

func TestStripVertexPairs(t *testing.T) {
	s, err := NewStrip([]float64{10, 20, 30, 40}, 5, 1, 100)
	if err != nil {
		t.Fatal(err)
	}

	if s.BaseIndex() != 2 {
		t.Errorf("BaseIndex = %d, want 2", s.BaseIndex())
	}

	tests := []struct {
		index int64
		want  dynamo.Vec2
	}{
		{0, dynamo.V(-5, 10)},
		{1, dynamo.V(-5, 100)},
		{2, dynamo.V(0, 20)},
		{3, dynamo.V(0, 100)},
		{6, dynamo.V(10, 40)},
		{7, dynamo.V(10, 100)},
	}
	for _, tt := range tests {
		if got := s.VertexAt(tt.index).Position; got != tt.want {
			t.Errorf("VertexAt(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestStripVertexClamp(t *testing.T) {
	s, _ := NewStrip([]float64{10, 20, 30}, 1, 0, 50)

	tests := []struct {
		index int64
		want  dynamo.Vec2
	}{
		{-4, dynamo.V(0, 10)},
		{-3, dynamo.V(0, 50)},
		{6, dynamo.V(2, 30)},
		{101, dynamo.V(2, 50)},
	}
	for _, tt := range tests {
		if got := s.VertexAt(tt.index).Position; got != tt.want {
			t.Errorf("VertexAt(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestNewStripValidation(t *testing.T) {
	if _, err := NewStrip([]float64{1}, 1, 0, 0); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("single sample: got %v", err)
	}
	if _, err := NewStrip([]float64{1, 2}, 0, 0, 0); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("zero spacing: got %v", err)
	}
}

func TestHeightAt(t *testing.T) {
	s, _ := NewStrip([]float64{0, 10, 30}, 10, 1, 100)

	tests := []struct {
		x, want float64
	}{
		{-10, 0},
		{-50, 0},
		{-5, 5},
		{0, 10},
		{5, 20},
		{10, 30},
		{99, 30},
	}
	for _, tt := range tests {
		if got := s.HeightAt(tt.x); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("HeightAt(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestContactAndClearance(t *testing.T) {
	s, _ := Flat(11, 10, 500, 600)

	above := []dynamo.Vec2{{X: 0, Y: 480}, {X: 10, Y: 490}}
	if s.Contact(above) {
		t.Error("points above ground reported in contact")
	}
	if got := s.Clearance(above); got != 10 {
		t.Errorf("clearance = %v, want 10", got)
	}

	touching := append(above, dynamo.V(5, 500))
	if !s.Contact(touching) {
		t.Error("point on the surface should be contact")
	}
	if got := s.Clearance(touching); got != 0 {
		t.Errorf("clearance = %v, want 0", got)
	}
}

func TestFlatCentered(t *testing.T) {
	s, _ := Flat(11, 10, 500, 600)
	minX, maxX := s.Extent()
	if minX != -50 || maxX != 50 {
		t.Errorf("extent = [%v, %v], want [-50, 50]", minX, maxX)
	}
}

func TestRollingDeterministicWithPad(t *testing.T) {
	cfg := RollingConfig{Seed: 7, Samples: 101, Spacing: 10, BaseY: 500, Roughness: 8, PadWidth: 10}
	a, err := Rolling(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Rolling(cfg)

	for i := int64(0); i < int64(2*a.Samples()); i++ {
		if a.VertexAt(i) != b.VertexAt(i) {
			t.Fatalf("vertex %d differs between runs with the same seed", i)
		}
	}

	pad := a.HeightAt(0)
	for x := -40.0; x <= 40; x += 10 {
		if a.HeightAt(x) != pad {
			t.Errorf("pad not flat at x=%v: %v vs %v", x, a.HeightAt(x), pad)
		}
	}
	if a.Floor() <= pad {
		t.Errorf("floor %v should sit below the surface %v", a.Floor(), pad)
	}
}
