package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/lander/internal/dynamo"
)

const eps = 1e-9

func testParams() Params {
	return Params{
		Position: dynamo.V(200, 200),
		Width:    100,
		Height:   50,
		Mass:     1,
		Inertia:  100,
		COM:      dynamo.V(0.5, 0.5),
	}
}

func mustBody(t *testing.T, p Params) *Body {
	t.Helper()
	b, err := NewBody(p)
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	return b
}

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestNewBodyDerivedGeometry(t *testing.T) {
	b := mustBody(t, testParams())

	if !near(b.Diag(), math.Hypot(50, 25)) {
		t.Errorf("diag = %v, want %v", b.Diag(), math.Hypot(50, 25))
	}
	if !near(b.Bearing(), math.Atan2(25, 50)) {
		t.Errorf("bearing = %v, want %v", b.Bearing(), math.Atan2(25, 50))
	}

	c := b.Center()
	if !near(c.X, 250) || !near(c.Y, 225) {
		t.Errorf("center = %v, want (250,225)", c)
	}
}

func TestNewBodyZeroXOffsetBearing(t *testing.T) {
	p := testParams()
	p.COM = dynamo.V(0, 0.5)
	b := mustBody(t, p)

	if b.Bearing() != 0 {
		t.Errorf("bearing = %v, want 0 when x offset is zero", b.Bearing())
	}
	if !near(b.Diag(), 25) {
		t.Errorf("diag = %v, want 25", b.Diag())
	}
}

func TestNewBodyRejectsBadParams(t *testing.T) {
	tests := []struct {
		name  string
		tweak func(*Params)
	}{
		{"zero mass", func(p *Params) { p.Mass = 0 }},
		{"negative inertia", func(p *Params) { p.Inertia = -1 }},
		{"zero width", func(p *Params) { p.Width = 0 }},
		{"zero height", func(p *Params) { p.Height = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			tt.tweak(&p)
			_, err := NewBody(p)
			if !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestForceMapOperations(t *testing.T) {
	b := mustBody(t, testParams())

	b.AddForce("main", NewThrust(10, dynamo.V(0, -1), dynamo.V(0.5, 1)))
	if b.GetForce("main").Active {
		t.Error("new thrust should start inactive")
	}

	b.SetForceActive("main", true)
	if !b.GetForce("main").Active {
		t.Error("SetForceActive did not activate")
	}

	b.AddForce("main", NewThrust(20, dynamo.V(0, -1), dynamo.V(0.5, 1)))
	if got := b.GetForce("main").Magnitude; got != 20 {
		t.Errorf("overwrite kept magnitude %v", got)
	}
	if len(b.ForceNames()) != 1 {
		t.Errorf("overwrite changed name count: %v", b.ForceNames())
	}

	b.RemoveForce("main")
	if b.HasForce("main") {
		t.Error("RemoveForce left the entry")
	}
}

func TestGetForceUnknownIsInert(t *testing.T) {
	b := mustBody(t, testParams())

	f := b.GetForce("missing")
	if !f.Field || f.Active || f.Magnitude != 0 || f.Direction != (dynamo.Vec2{}) {
		t.Errorf("unknown force = %+v, want inert field", f)
	}

	b.SetForceActive("missing", true)
	if b.HasForce("missing") {
		t.Error("toggling an unknown name must not register it")
	}
}

func TestForceNamesSorted(t *testing.T) {
	b := mustBody(t, testParams())
	for _, n := range []string{"c", "a", "b"} {
		b.AddForce(n, NewField(dynamo.Vec2{}))
	}
	names := b.ForceNames()
	if names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Errorf("ForceNames() = %v", names)
	}
}

func TestVerticesUnrotated(t *testing.T) {
	b := mustBody(t, testParams())
	v := b.Vertices()
	want := [4]dynamo.Vec2{{X: 200, Y: 200}, {X: 300, Y: 200}, {X: 300, Y: 250}, {X: 200, Y: 250}}
	for i := range v {
		if !near(v[i].X, want[i].X) || !near(v[i].Y, want[i].Y) {
			t.Errorf("vertex %d = %v, want %v", i, v[i], want[i])
		}
	}
}

func TestCenterFollowsRotation(t *testing.T) {
	p := testParams()
	p.Angle = 90
	b := mustBody(t, p)

	c := b.Center()
	if !near(c.X, 175) || !near(c.Y, 250) {
		t.Errorf("center at 90deg = %v, want (175,250)", c)
	}
}

func TestForceSegment(t *testing.T) {
	b := mustBody(t, testParams())
	b.AddForce("main", NewThrust(10, dynamo.V(0, -1), dynamo.V(0.5, 1)))

	if _, _, ok := b.ForceSegment("main"); ok {
		t.Error("inactive force should have no segment")
	}

	b.SetForceActive("main", true)
	from, to, ok := b.ForceSegment("main")
	if !ok {
		t.Fatal("expected segment")
	}
	if !near(from.X, 250) || !near(from.Y, 250) || !near(to.X, 250) || !near(to.Y, 240) {
		t.Errorf("segment = %v -> %v", from, to)
	}

	b.AddForce("g", NewField(dynamo.V(0, 4)))
	from, to, _ = b.ForceSegment("g")
	if from != b.Center() || !near(to.Y-from.Y, 4) {
		t.Errorf("field segment = %v -> %v", from, to)
	}
}

func TestVelocityEndpointScaledByMass(t *testing.T) {
	p := testParams()
	p.Mass = 2
	p.Velocity = dynamo.V(3, -1)
	b := mustBody(t, p)

	from, to := b.VelocityEndpoint()
	d := to.Sub(from)
	if !near(d.X, 6) || !near(d.Y, -2) {
		t.Errorf("velocity arrow = %v", d)
	}
}

func TestHalt(t *testing.T) {
	p := testParams()
	p.Velocity = dynamo.V(1, 1)
	p.AngularVelocity = 3
	b := mustBody(t, p)
	b.AddForce("g", NewField(dynamo.V(0, 9)))
	b.Refresh()

	b.Halt()
	if b.Velocity() != (dynamo.Vec2{}) || b.AngularVelocity() != 0 || b.Acceleration() != (dynamo.Vec2{}) {
		t.Error("Halt left non-zero rates")
	}
	if b.Position() != p.Position {
		t.Error("Halt moved the body")
	}
}
