package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/san-kum/lander/internal/config"
	"github.com/san-kum/lander/internal/craft"
	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/physics"
	"github.com/san-kum/lander/internal/sim"
	"github.com/san-kum/lander/internal/terrain"
)

// Experiment turns a run config into a ready simulator.
type Experiment struct {
	cfg        *config.Config
	simulator  *sim.Simulator
	ground     *terrain.Strip
	ship       *craft.Ship
	randSource *rand.Rand
	logger     *slog.Logger
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{
		cfg:        cfg,
		randSource: rand.New(rand.NewSource(cfg.Seed)),
	}
}

func (e *Experiment) SetLogger(l *slog.Logger) { e.logger = l }

// Setup builds terrain, ship, stepper and controller from the config.
func (e *Experiment) Setup(reg *Registry) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	ground, err := BuildTerrain(e.cfg.Terrain, e.cfg.Seed)
	if err != nil {
		return fmt.Errorf("terrain: %w", err)
	}

	params, err := CraftParams(e.cfg)
	if err != nil {
		return err
	}
	params = e.startState(params)

	ship, err := craft.Assemble(e.cfg.Layout, params, dynamo.V(0, e.cfg.Gravity))
	if err != nil {
		return err
	}

	stepper, err := reg.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}
	controller, err := reg.GetController(e.cfg.Controller, e.cfg)
	if err != nil {
		return err
	}

	e.ground = ground
	e.ship = ship
	e.simulator = sim.New(ship, ground, stepper, controller, e.cfg.Thresholds)
	for _, m := range reg.DefaultMetrics() {
		e.simulator.AddMetric(m)
	}
	if e.logger != nil {
		e.simulator.SetLogger(e.logger.With("craft", e.cfg.Craft, "controller", e.cfg.Controller, "seed", e.cfg.Seed))
	}
	return nil
}

func (e *Experiment) startState(p physics.Params) physics.Params {
	st := e.cfg.Start
	x, vx := st.X, st.VX
	if st.Jitter > 0 {
		x += (e.randSource.Float64()*2 - 1) * st.Jitter
		vx += (e.randSource.Float64()*2 - 1) * st.Jitter / 10
	}
	p.Position = dynamo.V(x, st.Y)
	p.Angle += st.Angle
	p.Velocity = dynamo.V(vx, st.VY)
	p.AngularVelocity = st.Omega
	return p
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.SimConfig())
}

func (e *Experiment) SimConfig() sim.Config {
	return sim.Config{
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration,
		Seed:          e.cfg.Seed,
		SettleTime:    e.cfg.SettleTime,
		ValidateState: true,
	}
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

func (e *Experiment) Ground() *terrain.Strip { return e.ground }

func (e *Experiment) Ship() *craft.Ship { return e.ship }

// CraftParams resolves the body preset: a craft file wins over the built-in
// name.
func CraftParams(cfg *config.Config) (physics.Params, error) {
	if cfg.CraftFile != "" {
		return config.LoadCraft(cfg.CraftFile)
	}
	return config.GetCraft(cfg.Craft)
}

func BuildTerrain(tc config.TerrainConfig, seed int64) (*terrain.Strip, error) {
	switch tc.Kind {
	case "flat":
		return terrain.Flat(tc.Samples, tc.Spacing, tc.BaseY, tc.BaseY+100)
	case "rolling":
		return terrain.Rolling(terrain.RollingConfig{
			Seed:      seed,
			Samples:   tc.Samples,
			Spacing:   tc.Spacing,
			BaseY:     tc.BaseY,
			Roughness: tc.Roughness,
			PadWidth:  tc.PadWidth,
		})
	case "heights":
		return terrain.FromHeights(tc.Heights, tc.Spacing, tc.Origin, 0)
	default:
		return nil, fmt.Errorf("unknown terrain kind %q", tc.Kind)
	}
}

// Factory returns an ensemble factory that rebuilds the experiment for every
// seed, so seeded terrain and start jitter differ between members.
func Factory(base *config.Config, reg *Registry, logger *slog.Logger) sim.Factory {
	return func(seed int64) (*sim.Simulator, error) {
		cfg := *base
		cfg.Seed = seed
		exp := New(&cfg)
		exp.SetLogger(logger)
		if err := exp.Setup(reg); err != nil {
			return nil, err
		}
		return exp.GetSimulator(), nil
	}
}
