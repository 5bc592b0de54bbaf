package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/integrators"
	"github.com/san-kum/lander/internal/landing"
	"github.com/san-kum/lander/internal/physics"
)

func mustWorldBody(t *testing.T, x float64) *physics.Body {
	t.Helper()
	b, err := physics.NewBody(physics.Params{
		Position: dynamo.V(x, 0), Width: 10, Height: 10, Mass: 1, Inertia: 10, COM: dynamo.V(0.5, 0.5),
	})
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestWorldToggles(t *testing.T) {
	w := NewWorld()
	a, b := mustWorldBody(t, 0), mustWorldBody(t, 100)
	if err := w.Add("a", a); err != nil {
		t.Fatal(err)
	}
	if err := w.Add("b", b); err != nil {
		t.Fatal(err)
	}
	if err := w.Add("a", b); err == nil {
		t.Error("duplicate id should fail")
	}

	if err := w.AddForce("a", "g", physics.NewField(dynamo.V(0, 10))); err != nil {
		t.Fatal(err)
	}
	if err := w.AddForce("b", "g", physics.NewField(dynamo.V(0, 10))); err != nil {
		t.Fatal(err)
	}
	if err := w.SetForceActive("b", "g", false); err != nil {
		t.Fatal(err)
	}

	w.Step(integrators.NewEuler(), 0.1)
	w.Step(integrators.NewEuler(), 0.1)

	if a.Velocity().Y <= 0 {
		t.Errorf("body a should fall, vy = %v", a.Velocity().Y)
	}
	if b.Velocity().Y != 0 {
		t.Errorf("body b has gravity off, vy = %v", b.Velocity().Y)
	}

	f, err := w.GetForce("b", "g")
	if err != nil || f.Active {
		t.Errorf("GetForce = %+v, %v", f, err)
	}
	if err := w.RemoveForce("a", "g"); err != nil || a.HasForce("g") {
		t.Errorf("RemoveForce: %v", err)
	}
	if ids := w.IDs(); len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("IDs = %v", ids)
	}
}

func TestWorldUnknownID(t *testing.T) {
	w := NewWorld()
	checks := []error{
		w.AddForce("x", "g", physics.Force{}),
		w.RemoveForce("x", "g"),
		w.SetForceActive("x", "g", true),
	}
	_, err := w.GetForce("x", "g")
	checks = append(checks, err)
	_, err = w.Body("x")
	checks = append(checks, err)

	for i, err := range checks {
		if !errors.Is(err, dynamo.ErrUnknownName) {
			t.Errorf("check %d: err = %v", i, err)
		}
	}
}

func TestTrailLimit(t *testing.T) {
	tr := NewTrail(3)
	for i := 0; i < 5; i++ {
		tr.Push(dynamo.V(float64(i), 0))
	}
	pts := tr.Points()
	if len(pts) != 3 || pts[0].X != 2 || pts[2].X != 4 {
		t.Errorf("points = %v", pts)
	}
	tr.Clear()
	if tr.Len() != 0 {
		t.Errorf("len after clear = %d", tr.Len())
	}
}

func TestEnsemble(t *testing.T) {
	var seeds = make(chan int64, 8)
	factory := func(seed int64) (*Simulator, error) {
		seeds <- seed
		return newFlight(t, start{y: 100}, nil), nil
	}

	e := NewEnsemble(factory, 8, 100)
	e.SetLimit(3)
	results, err := e.Run(context.Background(), defaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	close(seeds)

	if len(results) != 8 {
		t.Fatalf("results = %d", len(results))
	}
	seen := make(map[int64]bool)
	for s := range seeds {
		seen[s] = true
	}
	for s := int64(100); s < 108; s++ {
		if !seen[s] {
			t.Errorf("seed %d never built", s)
		}
	}

	tally := Tally(results)
	if tally[landing.CrashSpeed] != 8 {
		t.Errorf("tally = %v", tally)
	}
}

func TestEnsembleFactoryError(t *testing.T) {
	boom := errors.New("boom")
	factory := func(seed int64) (*Simulator, error) {
		if seed == 3 {
			return nil, boom
		}
		return newFlight(t, start{y: 100}, nil), nil
	}

	_, err := NewEnsemble(factory, 5, 0).Run(context.Background(), defaultConfig())
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}
