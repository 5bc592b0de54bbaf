package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/lander/internal/config"
	"github.com/san-kum/lander/internal/control"
	"github.com/san-kum/lander/internal/craft"
	"github.com/san-kum/lander/internal/integrators"
	"github.com/san-kum/lander/internal/metrics"
	"github.com/san-kum/lander/internal/sim"
)

type Registry struct {
	integrators map[string]func() sim.Stepper
	controllers map[string]func(*config.Config) sim.Controller
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() sim.Stepper),
		controllers: make(map[string]func(*config.Config) sim.Controller),
	}

	r.integrators["euler"] = func() sim.Stepper { return integrators.NewEuler() }

	r.controllers["none"] = func(*config.Config) sim.Controller {
		return control.NewNone()
	}
	r.controllers["autopilot"] = func(cfg *config.Config) sim.Controller {
		ap := cfg.Autopilot
		return control.NewAutopilot(ap.Kp, ap.Ki, ap.Kd, ap.SafeSpeed)
	}
	r.controllers["script"] = func(cfg *config.Config) sim.Controller {
		windows := make([]control.Window, len(cfg.Script))
		for i, s := range cfg.Script {
			windows[i] = control.Window{
				From: s.From,
				To:   s.To,
				Command: craft.Command{
					Main:     s.Main,
					Throttle: s.Throttle,
					Gimbal:   s.Gimbal,
					CCW:      s.CCW,
					CW:       s.CW,
				},
			}
		}
		return control.NewScript(windows)
	}

	return r
}

func (r *Registry) GetIntegrator(name string) (sim.Stepper, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetController(name string, cfg *config.Config) (sim.Controller, error) {
	fn, ok := r.controllers[name]
	if !ok {
		return nil, fmt.Errorf("unknown controller: %s", name)
	}
	return fn(cfg), nil
}

// RegisterController adds or replaces a controller constructor.
func (r *Registry) RegisterController(name string, fn func(*config.Config) sim.Controller) {
	r.controllers[name] = fn
}

func (r *Registry) ListControllers() []string {
	return sortedKeys(r.controllers)
}

func (r *Registry) ListIntegrators() []string {
	return sortedKeys(r.integrators)
}

func (r *Registry) DefaultMetrics() []sim.Metric {
	return metrics.Standard()
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
