package optim

import (
	"context"
	"log/slog"

	"github.com/san-kum/lander/internal/config"
	"github.com/san-kum/lander/internal/experiment"
	"github.com/san-kum/lander/internal/landing"
	"github.com/san-kum/lander/internal/sim"
)

// speedWeight scales mean touchdown speed into a tie-breaker that never
// outweighs a single crash.
const speedWeight = 1e-4

// Score is the fraction of flights that did not land, plus a small term for
// the mean touchdown speed of those that did.
func Score(results []*sim.Result) float64 {
	if len(results) == 0 {
		return 1
	}
	failed, landed := 0, 0
	speed := 0.0
	for _, r := range results {
		if r == nil || r.Outcome != landing.Landed {
			failed++
			continue
		}
		landed++
		if f, ok := r.Touchdown(); ok {
			speed += f.Velocity.Length()
		}
	}
	score := float64(failed) / float64(len(results))
	if landed > 0 {
		score += speedWeight * speed / float64(landed)
	}
	return score
}

// AutopilotObjective flies runs seeded flights of base with the autopilot
// gains named by the grid (kp, ki, kd, safe_speed) and scores them.
func AutopilotObjective(base *config.Config, reg *experiment.Registry, runs int, logger *slog.Logger) Objective {
	return func(ctx context.Context, params map[string]float64) (float64, error) {
		cfg := *base
		for name, v := range params {
			if err := cfg.Autopilot.Set(name, v); err != nil {
				return 0, err
			}
		}

		ens := sim.NewEnsemble(experiment.Factory(&cfg, reg, logger), runs, cfg.Seed)
		results, err := ens.Run(ctx, experiment.New(&cfg).SimConfig())
		if err != nil {
			return 0, err
		}
		score := Score(results)
		if logger != nil {
			logger.DebugContext(ctx, "grid point", "params", params, "score", score)
		}
		return score, nil
	}
}
