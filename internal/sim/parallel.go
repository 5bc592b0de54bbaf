package sim

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/lander/internal/landing"
)

// Factory builds an independent simulator for one ensemble member.
type Factory func(seed int64) (*Simulator, error)

type Ensemble struct {
	factory   Factory
	numRuns   int
	seedStart int64
	limit     int
}

func NewEnsemble(f Factory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{factory: f, numRuns: numRuns, seedStart: seedStart, limit: runtime.NumCPU()}
}

// SetLimit bounds how many runs execute at once; n <= 0 means no limit.
func (e *Ensemble) SetLimit(n int) { e.limit = n }

// Run flies every member with seed seedStart+i. Results are indexed by member.
// The first error cancels the remaining runs.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			seed := e.seedStart + int64(i)
			s, err := e.factory(seed)
			if err != nil {
				return fmt.Errorf("build run %d: %w", i, err)
			}

			cfgCopy := cfg
			cfgCopy.Seed = seed
			r, err := s.Run(ctx, cfgCopy)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Tally counts outcomes across results.
func Tally(results []*Result) map[landing.Status]int {
	out := make(map[landing.Status]int)
	for _, r := range results {
		if r != nil {
			out[r.Outcome]++
		}
	}
	return out
}
