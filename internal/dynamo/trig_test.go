package dynamo

import (
	"math"
	"testing"
)

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{90, 90},
		{180, -180},
		{-180, -180},
		{350, -10},
		{-10, -10},
		{370, 10},
		{-725, -5},
	}

	for _, tt := range tests {
		if got := WrapDegrees(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAngleGapSymmetric(t *testing.T) {
	if AngleGap(350) != AngleGap(-10) {
		t.Errorf("AngleGap(350)=%v, AngleGap(-10)=%v", AngleGap(350), AngleGap(-10))
	}
	if math.Abs(AngleGap(350)-10) > 1e-9 {
		t.Errorf("expected gap 10, got %v", AngleGap(350))
	}
	if AngleGap(-170) != AngleGap(190) {
		t.Error("gap should not depend on winding")
	}
}

func TestHeadingKeepsSign(t *testing.T) {
	if got := Heading(-370); got != -10 {
		t.Errorf("Heading(-370) = %v, want -10", got)
	}
	if got := Heading(725); got != 5 {
		t.Errorf("Heading(725) = %v, want 5", got)
	}
}

func TestVec2Rotate(t *testing.T) {
	v := V(1, 0).Rotate(math.Pi / 2)
	if math.Abs(v.X) > 1e-12 || math.Abs(v.Y-1) > 1e-12 {
		t.Errorf("Rotate 90deg = %v, want (0,1)", v)
	}

	p := Polar(2, math.Pi)
	if math.Abs(p.X+2) > 1e-12 || math.Abs(p.Y) > 1e-12 {
		t.Errorf("Polar(2, pi) = %v", p)
	}
}

func TestVec2Arithmetic(t *testing.T) {
	a := V(3, 4)
	if a.Length() != 5 || a.LengthSquared() != 25 {
		t.Errorf("length of %v wrong", a)
	}
	if got := a.Hadamard(V(2, 0.5)); got != V(6, 2) {
		t.Errorf("Hadamard = %v", got)
	}
	if got := a.Sub(V(1, 1)).Add(V(0, 1)).Scale(2); got != V(4, 8) {
		t.Errorf("chain = %v", got)
	}
	if V(math.NaN(), 0).IsValid() {
		t.Error("NaN vector reported valid")
	}
}

func TestSimError(t *testing.T) {
	err := SimError{Time: 1.5, Step: 150, Message: "test error"}
	expected := "step 150 (t=1.5000): test error"
	if err.Error() != expected {
		t.Errorf("SimError.Error() = %q, want %q", err.Error(), expected)
	}
}
