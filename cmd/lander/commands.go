package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/lander/internal/analysis"
	"github.com/san-kum/lander/internal/config"
	"github.com/san-kum/lander/internal/craft"
	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/experiment"
	"github.com/san-kum/lander/internal/export"
	"github.com/san-kum/lander/internal/logging"
	"github.com/san-kum/lander/internal/optim"
	"github.com/san-kum/lander/internal/sim"
	"github.com/san-kum/lander/internal/storage"
	"github.com/san-kum/lander/internal/telemetry"
	"github.com/san-kum/lander/internal/terrain"
	"github.com/san-kum/lander/internal/tui"
	"github.com/san-kum/lander/internal/viz"
)

// newScene assembles a drawing-only copy of the ship so rendering never
// touches the simulated body.
func newScene(ground *terrain.Strip, craftName, layout string, g float64) (*viz.Scene, error) {
	p, err := config.GetCraft(craftName)
	if err != nil {
		return nil, err
	}
	ship, err := craft.Assemble(layout, p, dynamo.V(0, g))
	if err != nil {
		return nil, err
	}
	return viz.NewScene(ground, ship), nil
}

func runFlight(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, logging.Format(logFormat))
	ctx := logging.WithRunID(cmd.Context(), "")

	exp := experiment.New(cfg)
	exp.SetLogger(logger)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return logging.WrapError(err, "setup")
	}

	if live {
		scene, err := newScene(exp.Ground(), cfg.Craft, cfg.Layout, cfg.Gravity)
		if err != nil {
			return err
		}
		start := exp.GetSimulator().Observe()
		r := tui.NewLiveRenderer(os.Stdout, scene, sim.Frame{Position: start.Position, Center: start.Center}, frameRate)
		r.Start()
		defer r.Stop()
		exp.GetSimulator().AddObserver(r)
	}

	logger.InfoContext(ctx, "flight started", "craft", cfg.Craft, "controller", cfg.Controller, "seed", cfg.Seed)
	began := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		return logging.WrapError(err, "run")
	}
	for _, e := range result.Errors {
		logger.WarnContext(ctx, "simulation error", "err", e)
	}

	fmt.Printf("completed in %v\n", time.Since(began))
	fmt.Printf("outcome: %s\n", viz.StatusBadge(result.Outcome))
	if result.StatusText != "" {
		fmt.Printf("status: %s\n", result.StatusText)
	}
	if result.TouchdownAt >= 0 {
		fmt.Printf("touchdown: %.2fs\n", result.TouchdownAt)
	}
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for _, m := range experiment.NewRegistry().DefaultMetrics() {
		fmt.Println("  " + viz.MetricLine(m.Name(), result.Metrics[m.Name()], ""))
	}

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := storage.NewMetadata(cfg, result)
	meta.ID = fmt.Sprintf("%s_%s", cfg.Craft, logging.RunID(ctx))
	runID, err := st.Save(meta, result.Frames)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if runs <= 0 {
		return fmt.Errorf("runs must be positive, got %d", runs)
	}

	logger := logging.New(os.Stderr, logging.Format(logFormat))
	ctx := logging.WithRunID(cmd.Context(), "")
	rec := telemetry.NewRecorder()

	var srv *http.Server
	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", rec.Handler())
		srv = &http.Server{Addr: metricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.ErrorContext(ctx, "metrics server", "err", err)
			}
		}()
		logger.InfoContext(ctx, "serving metrics", "addr", metricsAddr)
	}

	build := experiment.Factory(cfg, experiment.NewRegistry(), logger)
	factory := func(seed int64) (*sim.Simulator, error) {
		s, err := build(seed)
		if err != nil {
			return nil, err
		}
		s.AddObserver(rec)
		return s, nil
	}

	ens := sim.NewEnsemble(factory, runs, cfg.Seed)
	if parallel > 0 {
		ens.SetLimit(parallel)
	}

	began := time.Now()
	simCfg := experiment.New(cfg).SimConfig()
	results, err := ens.Run(ctx, simCfg)
	if err != nil {
		return logging.WrapError(err, "ensemble", "runs", runs)
	}
	for _, r := range results {
		rec.Record(r)
	}

	fmt.Printf("%d flights in %v\n\n", len(results), time.Since(began))
	fmt.Print(viz.PlotOutcomes(sim.Tally(results), 40))

	if srv == nil {
		return nil
	}
	fmt.Printf("\nmetrics at http://%s/metrics, interrupt to exit\n", metricsAddr)
	<-ctx.Done()
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdown)
}

func tuneAutopilot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("controller") {
		cfg.Controller = "autopilot"
	}
	if tuneRuns <= 0 {
		return fmt.Errorf("runs must be positive, got %d", tuneRuns)
	}

	grid, err := optim.NewGridSearch(
		[]string{"kp", "ki", "kd"},
		[][]float64{kpValues, kiValues, kdValues},
	)
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, logging.Format(logFormat))
	ctx := logging.WithRunID(cmd.Context(), "")
	logger.InfoContext(ctx, "tuning", "points", grid.Size(), "runs", tuneRuns)

	obj := optim.AutopilotObjective(cfg, experiment.NewRegistry(), tuneRuns, logger)
	best, trials, err := grid.Search(ctx, obj)
	if err != nil {
		return logging.WrapError(err, "tune")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KP\tKI\tKD\tSCORE")
	for _, t := range trials {
		fmt.Fprintf(w, "%g\t%g\t%g\t%.4f\n", t.Params["kp"], t.Params["ki"], t.Params["kd"], t.Score)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nbest: kp=%g ki=%g kd=%g score=%.4f\n", best.Params["kp"], best.Params["ki"], best.Params["kd"], best.Score)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	stored, err := st.List()
	if err != nil {
		return err
	}

	if len(stored) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCRAFT\tTIME\tCTRL\tOUTCOME\tTOUCHDOWN")

	for _, run := range stored {
		touchdown := "-"
		if run.TouchdownAt >= 0 {
			touchdown = fmt.Sprintf("%.2fs", run.TouchdownAt)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			run.ID,
			run.Craft,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Controller,
			run.Outcome,
			touchdown,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	plots := viz.Flight
	if len(series) > 0 {
		plots = make([]viz.Series, 0, len(series))
		for _, name := range series {
			s, err := viz.ParseSeries(name)
			if err != nil {
				return err
			}
			plots = append(plots, s)
		}
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("craft: %s\n", meta.Craft)
	fmt.Printf("outcome: %s\n", meta.Outcome)
	fmt.Printf("samples: %d\n\n", len(frames))

	for _, s := range plots {
		fmt.Println(viz.Plot(frames, s, width, height))
		fmt.Println()
	}

	if osc := analysis.Dominant(viz.Values(frames, viz.Angle), meta.Dt); osc.Period > 0 {
		fmt.Printf("attitude oscillation: %.3f hz (period %.2fs)\n", osc.Frequency, osc.Period)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, frames)
}

// loadScene rebuilds the terrain and ship a stored run flew with.
func loadScene(meta *storage.RunMetadata) (*viz.Scene, error) {
	ground, err := experiment.BuildTerrain(meta.Terrain, meta.Seed)
	if err != nil {
		return nil, err
	}
	return newScene(ground, meta.Craft, meta.Layout, meta.Gravity)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	scene, err := loadScene(meta)
	if err != nil {
		return err
	}

	path := svgOut
	if path == "" {
		path = meta.ID + ".svg"
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.FlightSVG(f, scene, frames, svgWidth, svgHeight); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func replayRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	scene, err := loadScene(meta)
	if err != nil {
		return err
	}
	return tui.Run(tui.NewReplay(meta.ID, scene, frames))
}
