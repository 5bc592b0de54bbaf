package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/lander/internal/craft"
	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/integrators"
	"github.com/san-kum/lander/internal/landing"
	"github.com/san-kum/lander/internal/physics"
	"github.com/san-kum/lander/internal/terrain"
)

type testController struct {
	cmd   craft.Command
	calls int
}

func (c *testController) Compute(obs Observation, t float64) craft.Command {
	c.calls++
	return c.cmd
}

type start struct {
	y, angle, omega float64
	velocity        dynamo.Vec2
}

func newFlight(t *testing.T, s start, ctrl Controller) *Simulator {
	t.Helper()
	ship, err := craft.Assemble(craft.LunarLanderMark1, physics.Params{
		Position:        dynamo.V(0, s.y),
		Width:           60,
		Height:          80,
		Angle:           s.angle,
		Mass:            4,
		Inertia:         1000,
		COM:             dynamo.V(0.5, 0.5),
		Velocity:        s.velocity,
		AngularVelocity: s.omega,
	}, dynamo.V(0, 40))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	ground, err := terrain.Flat(201, 10, 600, 700)
	if err != nil {
		t.Fatalf("terrain: %v", err)
	}
	if ctrl == nil {
		ctrl = &testController{}
	}
	return New(ship, ground, integrators.NewEuler(), ctrl, landing.DefaultThresholds())
}

func defaultConfig() Config {
	return Config{Dt: 0.01, Duration: 30, SettleTime: 1}
}

func TestFreefallCrashesOnSpeed(t *testing.T) {
	sim := newFlight(t, start{y: 100}, nil)

	result, err := sim.Run(context.Background(), defaultConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Outcome != landing.CrashSpeed {
		t.Fatalf("outcome = %v, want crash_speed", result.Outcome)
	}
	if result.StatusText != "Crash! Your speed was to high!" {
		t.Errorf("status text = %q", result.StatusText)
	}
	if sim.Reporter().Text() != result.StatusText {
		t.Errorf("reporter text %q != result %q", sim.Reporter().Text(), result.StatusText)
	}

	// 420 units of fall under 40 units/s².
	expected := math.Sqrt(2 * 420 / 40.0)
	if math.Abs(result.TouchdownAt-expected) > 0.1 {
		t.Errorf("touchdown at %.3f, want ~%.3f", result.TouchdownAt, expected)
	}
	if result.StepsTaken >= 3000 {
		t.Error("run should stop once the verdict is announced")
	}

	td, ok := result.Touchdown()
	if !ok {
		t.Fatal("no touchdown frame")
	}
	if td.Velocity.LengthSquared() <= landing.DefaultThresholds().MaxVelocity {
		t.Errorf("touchdown speed² %v should exceed the limit", td.Velocity.LengthSquared())
	}
}

func TestVerdicts(t *testing.T) {
	tests := []struct {
		name  string
		start start
		want  landing.Status
		text  string
	}{
		{"short drop lands", start{y: 500}, landing.Landed, "Landing succesfull!"},
		{"spinning hull", start{y: 490, omega: 30}, landing.CrashSpin, "Crash! Your rotation speed was to high!"},
		{"tilted hull", start{y: 490, angle: 15}, landing.CrashAngleGap, "Crash! It was really bad!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := newFlight(t, tt.start, nil).Run(context.Background(), defaultConfig())
			if err != nil {
				t.Fatal(err)
			}
			if result.Outcome != tt.want {
				t.Errorf("outcome = %v, want %v", result.Outcome, tt.want)
			}
			if result.StatusText != tt.text {
				t.Errorf("status text = %q, want %q", result.StatusText, tt.text)
			}
		})
	}
}

func TestSteepGroundCrashes(t *testing.T) {
	ship, err := craft.Assemble(craft.LunarLanderMark1, physics.Params{
		Position: dynamo.V(0, 480), Width: 60, Height: 80, Mass: 4, Inertia: 1000, COM: dynamo.V(0.5, 0.5),
	}, dynamo.V(0, 40))
	if err != nil {
		t.Fatal(err)
	}
	heights := make([]float64, 41)
	for i := range heights {
		heights[i] = 600 - 6*float64(i-20)
	}
	ground, err := terrain.NewStrip(heights, 10, 20, 800)
	if err != nil {
		t.Fatal(err)
	}

	sim := New(ship, ground, integrators.NewEuler(), &testController{}, landing.DefaultThresholds())
	result, err := sim.Run(context.Background(), defaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcome != landing.CrashSlope {
		t.Errorf("outcome = %v, want crash_slope", result.Outcome)
	}
}

func TestBodyHeldAfterTouchdown(t *testing.T) {
	result, err := newFlight(t, start{y: 500}, nil).Run(context.Background(), defaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	td, ok := result.Touchdown()
	if !ok {
		t.Fatal("expected touchdown")
	}
	for _, f := range result.Frames {
		if f.Time <= td.Time {
			continue
		}
		if f.Position != td.Position || f.Velocity != (dynamo.Vec2{}) {
			t.Fatalf("frame at %.2f moved: %v %v", f.Time, f.Position, f.Velocity)
		}
		if f.Status != landing.Landed {
			t.Errorf("status at %.2f = %v", f.Time, f.Status)
		}
	}
}

func TestStillFlyingAtTimeout(t *testing.T) {
	ctrl := &testController{}
	sim := newFlight(t, start{y: 100}, ctrl)

	result, err := sim.Run(context.Background(), Config{Dt: 0.01, Duration: 1, SettleTime: 1})
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcome != landing.Flying || result.TouchdownAt >= 0 {
		t.Errorf("outcome = %v at %v, want flying", result.Outcome, result.TouchdownAt)
	}
	if result.StatusText != "You are in flight" {
		t.Errorf("status text = %q", result.StatusText)
	}
	if _, ok := result.Touchdown(); ok {
		t.Error("unexpected touchdown frame")
	}
	if len(result.Frames) != result.StepsTaken+1 {
		t.Errorf("frames = %d, steps = %d", len(result.Frames), result.StepsTaken)
	}
	if ctrl.calls != result.StepsTaken {
		t.Errorf("controller called %d times for %d steps", ctrl.calls, result.StepsTaken)
	}
}

func TestThrustSlowsDescent(t *testing.T) {
	free, err := newFlight(t, start{y: 100}, nil).Run(context.Background(), Config{Dt: 0.01, Duration: 2, SettleTime: 1})
	if err != nil {
		t.Fatal(err)
	}
	burn := &testController{cmd: craft.Command{Main: true, Throttle: 1}}
	thrust, err := newFlight(t, start{y: 100}, burn).Run(context.Background(), Config{Dt: 0.01, Duration: 2, SettleTime: 1})
	if err != nil {
		t.Fatal(err)
	}

	fv := free.Frames[len(free.Frames)-1].Velocity.Y
	tv := thrust.Frames[len(thrust.Frames)-1].Velocity.Y
	if fv <= 0 || tv >= 0 {
		t.Errorf("free vy = %v (want > 0), thrust vy = %v (want < 0)", fv, tv)
	}
	if thrust.Frames[len(thrust.Frames)-1].ActiveEngines != 1 {
		t.Error("main engine should report as active")
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sim := newFlight(t, start{y: 100}, nil)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0}},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"negative duration", Config{Dt: 0.1, Duration: -1.0}},
		{"negative settle", Config{Dt: 0.1, Duration: 1.0, SettleTime: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sim.Run(context.Background(), tt.cfg)
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimulatorCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newFlight(t, start{y: 100}, nil).Run(ctx, defaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestValidateState(t *testing.T) {
	sim := newFlight(t, start{y: 100, velocity: dynamo.V(math.NaN(), 0)}, nil)

	cfg := defaultConfig()
	cfg.ValidateState = true
	result, err := sim.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Errors) != 1 || !errors.Is(result.Errors[0], dynamo.ErrInvalidState) {
		t.Errorf("errors = %v", result.Errors)
	}
	if result.StepsTaken != 1 {
		t.Errorf("steps = %d, want 1", result.StepsTaken)
	}
}

type testMetric struct {
	count int
}

func (m *testMetric) Name() string    { return "test" }
func (m *testMetric) Observe(f Frame) { m.count++ }
func (m *testMetric) Value() float64  { return float64(m.count) }
func (m *testMetric) Reset()          { m.count = 0 }

func TestSimulatorMetricsAndObservers(t *testing.T) {
	sim := newFlight(t, start{y: 100}, nil)

	metric := &testMetric{}
	trail := NewTrail(0)
	sim.AddMetric(metric)
	sim.AddObserver(trail)

	result, err := sim.Run(context.Background(), Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}
	if metric.count != len(result.Frames) {
		t.Errorf("expected %d observations, got %d", len(result.Frames), metric.count)
	}
	if trail.Len() != len(result.Frames) {
		t.Errorf("trail has %d points, want %d", trail.Len(), len(result.Frames))
	}
}
