package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/lander/internal/craft"
	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/landing"
	"github.com/san-kum/lander/internal/logging"
)

// Simulator flies one ship over a ground until it touches down or the
// configured duration runs out.
type Simulator struct {
	ship       *craft.Ship
	ground     Ground
	stepper    Stepper
	controller Controller
	tracker    *landing.Tracker
	reporter   *landing.Reporter
	metrics    []Metric
	observers  []Observer
	logger     *slog.Logger
}

func New(ship *craft.Ship, ground Ground, stepper Stepper, controller Controller, th landing.Thresholds) *Simulator {
	return &Simulator{
		ship:       ship,
		ground:     ground,
		stepper:    stepper,
		controller: controller,
		tracker:    landing.NewTracker(th),
		reporter:   landing.NewReporter(),
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		logger:     logging.Discard(),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

func (s *Simulator) Ship() *craft.Ship          { return s.ship }
func (s *Simulator) Tracker() *landing.Tracker   { return s.tracker }
func (s *Simulator) Reporter() *landing.Reporter { return s.reporter }

// Observe snapshots what a controller sees right now.
func (s *Simulator) Observe() Observation {
	b := s.ship.Body
	v := b.Vertices()
	return Observation{
		Position:        b.Position(),
		Center:          b.Center(),
		Velocity:        b.Velocity(),
		Angle:           b.Angle(),
		AngularVelocity: b.AngularVelocity(),
		Altitude:        s.ground.Clearance(v[:]),
		Status:          s.tracker.Status(),
	}
}

// Run executes the frame loop. Each frame the controller's command is
// applied, the body is stepped, and contact is classified; the release timer
// and the reporter tick every frame. Once a verdict latches the body is held
// in place and the run ends when the verdict is announced or SettleTime has
// passed.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Frames:      make([]Frame, 0, steps+1),
		Outcome:     landing.Flying,
		TouchdownAt: -1,
		Metrics:     make(map[string]float64),
		Errors:      make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	s.reporter.Reset()

	body := s.ship.Body
	body.Refresh()

	t := 0.0
	dt := cfg.Dt
	var cmd craft.Command
	held := false
	heldFor := 0.0

	s.record(result, s.frame(t, cmd, false))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if !held {
			cmd = s.controller.Compute(s.Observe(), t)
			s.ship.Apply(cmd)
			body.Refresh()
			s.stepper.Step(body, dt)
		}
		t += dt
		result.StepsTaken++

		if cfg.ValidateState && !body.IsValid() {
			err := dynamo.SimError{Time: t, Step: i, Message: "invalid body state", Err: dynamo.ErrInvalidState}
			result.Errors = append(result.Errors, err)
			break
		}

		vertices := body.Vertices()
		contact := s.ground.Contact(vertices[:])
		if contact {
			before := s.tracker.Status()
			status := s.tracker.Observe(body, s.ground)
			if before == landing.Flying && status != landing.Flying {
				sample := s.tracker.LastSample()
				s.logger.InfoContext(ctx, "verdict latched",
					"status", status.String(),
					"t", t,
					"speed", body.Velocity().Length(),
					"omega", body.AngularVelocity(),
					"slope", sample.Slope,
					"ship_angle", sample.ShipAngle)
			}
		}

		frame := s.frame(t, cmd, contact)

		if s.tracker.Tick(dt) {
			s.logger.DebugContext(ctx, "contact released", "t", t)
		}
		if msg, ok := s.reporter.Tick(dt, s.tracker.Status()); ok {
			s.logger.InfoContext(ctx, "status", "text", msg, "t", t)
		}

		s.record(result, frame)

		if !held && frame.Status != landing.Flying {
			held = true
			result.Outcome = frame.Status
			result.TouchdownAt = t
			cmd = craft.Command{}
			s.ship.Apply(cmd)
			body.Halt()
			continue
		}
		if held {
			heldFor += dt
			if s.reporter.Announced() == result.Outcome || heldFor >= cfg.SettleTime {
				break
			}
		}
	}

	result.StatusText = s.reporter.Text()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.logger.DebugContext(ctx, "run finished",
		"outcome", result.Outcome.String(),
		"steps", result.StepsTaken,
		"t", t)
	return result, nil
}

func (s *Simulator) frame(t float64, cmd craft.Command, contact bool) Frame {
	obs := s.Observe()
	return Frame{
		Time:            t,
		Position:        obs.Position,
		Center:          obs.Center,
		Velocity:        obs.Velocity,
		Angle:           obs.Angle,
		AngularVelocity: obs.AngularVelocity,
		Altitude:        obs.Altitude,
		Contact:         contact,
		Status:          obs.Status,
		Command:         cmd,
		ActiveEngines:   s.ship.ActiveEngines(),
	}
}

func (s *Simulator) record(r *Result, f Frame) {
	for _, m := range s.metrics {
		m.Observe(f)
	}
	for _, o := range s.observers {
		o.OnFrame(f)
	}
	r.Frames = append(r.Frames, f)
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.SettleTime < 0 {
		return fmt.Errorf("settle time must not be negative, got %f", cfg.SettleTime)
	}
	return nil
}
