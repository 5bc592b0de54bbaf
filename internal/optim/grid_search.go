package optim

import (
	"context"
	"fmt"
	"math"
)

// Objective scores one parameter set; lower is better.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

// Trial is one evaluated grid point.
type Trial struct {
	Params map[string]float64
	Score  float64
}

// GridSearch evaluates every combination of the candidate values.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("%d parameters but %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("parameter %s has no candidate values", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search returns the best trial and every trial in evaluation order. The
// first objective error or context cancellation aborts the search.
func (g *GridSearch) Search(ctx context.Context, obj Objective) (Trial, []Trial, error) {
	best := Trial{Score: math.Inf(1)}
	trials := make([]Trial, 0, g.Size())

	err := g.searchRecursive(ctx, 0, make(map[string]float64), obj, &best, &trials)
	return best, trials, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	obj Objective,
	best *Trial,
	trials *[]Trial,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		score, err := obj(ctx, current)
		if err != nil {
			return err
		}
		t := Trial{Params: current, Score: score}
		*trials = append(*trials, t)
		if score < best.Score {
			*best = t
		}
		return nil
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[name] = val

		if err := g.searchRecursive(ctx, depth+1, next, obj, best, trials); err != nil {
			return err
		}
	}
	return nil
}
