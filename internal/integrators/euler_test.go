package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/physics"
)

func newBody(t testing.TB, p physics.Params) *physics.Body {
	t.Helper()
	b, err := physics.NewBody(p)
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	return b
}

func restingParams() physics.Params {
	return physics.Params{
		Position: dynamo.V(200, 200),
		Width:    100,
		Height:   50,
		Mass:     1,
		Inertia:  100,
		COM:      dynamo.V(0.5, 0.5),
	}
}

func TestEulerAtRestStaysPut(t *testing.T) {
	b := newBody(t, restingParams())
	integ := NewEuler()

	for _, dt := range []float64{0.001, 0.01, 0.5, 3} {
		integ.Step(b, dt)
	}

	if b.Position() != dynamo.V(200, 200) || b.Angle() != 0 {
		t.Errorf("body moved: pos=%v angle=%v", b.Position(), b.Angle())
	}
}

func TestEulerFreeFall(t *testing.T) {
	b := newBody(t, restingParams())
	b.AddForce("0", physics.NewField(dynamo.V(0, -1)))
	b.Refresh()

	integ := NewEuler()
	for i := 0; i < 100; i++ {
		integ.Step(b, 0.01)
	}

	v := b.Velocity()
	if math.Abs(v.Y+1.0) > 1e-9 {
		t.Errorf("vertical velocity = %v, want -1.0", v.Y)
	}
	if v.X != 0 || b.AngularVelocity() != 0 || b.Angle() != 0 {
		t.Errorf("unexpected lateral/angular motion: v=%v omega=%v angle=%v", v, b.AngularVelocity(), b.Angle())
	}
	if b.Position().X != 200 {
		t.Errorf("x drifted to %v", b.Position().X)
	}
}

func TestEulerVelocityAccumulates(t *testing.T) {
	tests := []struct {
		name  string
		accel dynamo.Vec2
		dt    float64
		steps int
	}{
		{"small steps", dynamo.V(3, -2), 0.001, 1000},
		{"coarse steps", dynamo.V(-0.5, 9.81), 0.1, 37},
		{"single step", dynamo.V(1, 1), 0.25, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBody(t, restingParams())
			b.AddForce("field", physics.NewField(tt.accel))
			b.Refresh()

			integ := NewEuler()
			for i := 0; i < tt.steps; i++ {
				integ.Step(b, tt.dt)
			}

			want := tt.accel.Scale(float64(tt.steps) * tt.dt)
			got := b.Velocity()
			if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
				t.Errorf("velocity = %v, want %v", got, want)
			}
		})
	}
}

func TestEulerPositionLagsVelocity(t *testing.T) {
	b := newBody(t, restingParams())
	b.AddForce("field", physics.NewField(dynamo.V(0, 10)))
	b.Refresh()

	NewEuler().Step(b, 0.1)

	if b.Position() != dynamo.V(200, 200) {
		t.Errorf("first step should move with the pre-step velocity (zero), got %v", b.Position())
	}
	if math.Abs(b.Velocity().Y-1) > 1e-12 {
		t.Errorf("velocity = %v, want 1", b.Velocity().Y)
	}
}

func TestEulerRotationKeepsCenterFixed(t *testing.T) {
	p := restingParams()
	p.AngularVelocity = 10
	b := newBody(t, p)
	start := b.Center()

	integ := NewEuler()
	for i := 0; i < 100; i++ {
		integ.Step(b, 0.001)
	}

	if math.Abs(b.Angle()-1) > 1e-9 {
		t.Errorf("angle = %v, want 1", b.Angle())
	}
	if d := b.Center().Sub(start).Length(); d > 1e-3 {
		t.Errorf("center drifted by %v while spinning in place", d)
	}
	if b.Position() == p.Position {
		t.Error("reference corner should sweep around the center")
	}
}

func TestEulerRefreshesAtNewAngle(t *testing.T) {
	p := restingParams()
	p.AngularVelocity = 90
	b := newBody(t, p)
	f := physics.NewThrust(1, dynamo.V(1, 0), dynamo.V(0.5, 0.5))
	f.Active = true
	b.AddForce("push", f)
	b.Refresh()

	NewEuler().Step(b, 1)

	a := b.Acceleration()
	if math.Abs(a.X) > 1e-12 || math.Abs(a.Y-1) > 1e-12 {
		t.Errorf("acceleration after turning 90deg = %v, want (0,1)", a)
	}
}
