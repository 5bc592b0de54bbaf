package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/san-kum/lander/internal/config"
	"github.com/san-kum/lander/internal/craft"
	"github.com/san-kum/lander/internal/experiment"
	"github.com/san-kum/lander/internal/logging"
)

var (
	dataDir   string
	logFormat string

	preset     string
	configFile string
	craftName  string
	craftFile  string
	layout     string
	integrator string
	controller string
	dt         float64
	duration   float64
	settle     float64
	seed       int64
	gravity    float64
	startX     float64
	startY     float64
	angle      float64
	vx         float64
	vy         float64
	omega      float64
	jitter     float64
	kp         float64
	ki         float64
	kd         float64
	safeSpeed  float64

	live      bool
	frameRate int
	noSave    bool

	runs        int
	parallel    int
	metricsAddr string

	series []string
	width  int
	height int

	svgOut    string
	svgWidth  int
	svgHeight int
	tuneRuns  int
	kpValues  []float64
	kiValues  []float64
	kdValues  []float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "lander",
		Short:         "2d lunar lander flight simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lander", "data directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text or json)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "fly one landing",
		Args:  cobra.NoArgs,
		RunE:  runFlight,
	}
	flightFlags(runCmd)
	runCmd.Flags().BoolVar(&live, "live", false, "draw the flight while it runs")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --live")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "fly many seeded landings in parallel",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	flightFlags(ensembleCmd)
	ensembleCmd.Flags().IntVarP(&runs, "runs", "n", 20, "number of flights")
	ensembleCmd.Flags().IntVar(&parallel, "parallel", 0, "concurrent flights (0 = one per cpu)")
	ensembleCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics here and wait for interrupt")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search autopilot gains over seeded flights",
		Args:  cobra.NoArgs,
		RunE:  tuneAutopilot,
	}
	flightFlags(tuneCmd)
	tuneCmd.Flags().IntVarP(&tuneRuns, "runs", "n", 8, "flights per grid point")
	tuneCmd.Flags().Float64SliceVar(&kpValues, "kp-values", []float64{0.6, 1.2, 2.4}, "candidate kp")
	tuneCmd.Flags().Float64SliceVar(&kiValues, "ki-values", []float64{config.DefaultKi}, "candidate ki")
	tuneCmd.Flags().Float64SliceVar(&kdValues, "kd-values", []float64{0.2, 0.4, 0.8}, "candidate kd")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&series, "series", nil, "series to plot (altitude, vy, speed, angle, omega)")
	plotCmd.Flags().IntVar(&width, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&height, "height", 10, "plot height")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and frames as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw a stored run as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "replay a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s controller=%s terrain=%s start=(%g, %g)\n",
					name, p.Controller, p.Terrain.Kind, p.Start.X, p.Start.Y)
			}
			return nil
		},
	}

	craftsCmd := &cobra.Command{
		Use:   "crafts [name]",
		Short: "list craft presets, or print one in craft file form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				p, err := config.GetCraft(args[0])
				if err != nil {
					return err
				}
				return config.FormatCraft(os.Stdout, p)
			}
			reg := experiment.NewRegistry()
			fmt.Println("crafts:")
			for _, name := range config.ListCrafts() {
				fmt.Printf("  %s\n", name)
			}
			fmt.Println("layouts:")
			for _, name := range craft.ListLayouts() {
				fmt.Printf("  %s\n", name)
			}
			fmt.Printf("controllers: %v\n", reg.ListControllers())
			fmt.Printf("integrators: %v\n", reg.ListIntegrators())
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, ensembleCmd, tuneCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, exportSVGCmd, replayCmd, presetsCmd, craftsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logging.New(os.Stderr, logging.Format(logFormat)).Error("command failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func flightFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&preset, "preset", "", "start from a scenario preset")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&craftName, "craft", "", "craft preset")
	f.StringVar(&craftFile, "craft-file", "", "craft file (key value form)")
	f.StringVar(&layout, "layout", "", "engine layout")
	f.StringVar(&integrator, "integrator", "", "integrator")
	f.StringVar(&controller, "controller", "", "controller (none, autopilot, script)")
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	f.Float64Var(&duration, "time", config.DefaultDuration, "duration")
	f.Float64Var(&settle, "settle", config.DefaultSettleTime, "seconds to hold after touchdown")
	f.Int64Var(&seed, "seed", 0, "random seed")
	f.Float64Var(&gravity, "gravity", config.DefaultGravity, "downward acceleration")
	f.Float64Var(&startX, "x", 0, "start x")
	f.Float64Var(&startY, "y", config.DefaultStartY, "start y (down is positive)")
	f.Float64Var(&angle, "angle", 0, "start angle (deg)")
	f.Float64Var(&vx, "vx", 0, "start horizontal velocity")
	f.Float64Var(&vy, "vy", 0, "start vertical velocity")
	f.Float64Var(&omega, "omega", 0, "start angular velocity (deg/s)")
	f.Float64Var(&jitter, "jitter", 0, "seeded start x perturbation")
	f.Float64Var(&kp, "kp", config.DefaultKp, "autopilot kp")
	f.Float64Var(&ki, "ki", config.DefaultKi, "autopilot ki")
	f.Float64Var(&kd, "kd", config.DefaultKd, "autopilot kd")
	f.Float64Var(&safeSpeed, "safe-speed", config.DefaultSafeSpeed, "autopilot touchdown speed")
}

// resolveConfig layers preset, then config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	setString := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	setFloat := func(name string, dst *float64, v float64) {
		if flags.Changed(name) {
			*dst = v
		}
	}

	setString("craft", &cfg.Craft, craftName)
	setString("craft-file", &cfg.CraftFile, craftFile)
	setString("layout", &cfg.Layout, layout)
	setString("integrator", &cfg.Integrator, integrator)
	setString("controller", &cfg.Controller, controller)
	setFloat("dt", &cfg.Dt, dt)
	setFloat("time", &cfg.Duration, duration)
	setFloat("settle", &cfg.SettleTime, settle)
	setFloat("gravity", &cfg.Gravity, gravity)
	setFloat("x", &cfg.Start.X, startX)
	setFloat("y", &cfg.Start.Y, startY)
	setFloat("angle", &cfg.Start.Angle, angle)
	setFloat("vx", &cfg.Start.VX, vx)
	setFloat("vy", &cfg.Start.VY, vy)
	setFloat("omega", &cfg.Start.Omega, omega)
	setFloat("jitter", &cfg.Start.Jitter, jitter)
	setFloat("kp", &cfg.Autopilot.Kp, kp)
	setFloat("ki", &cfg.Autopilot.Ki, ki)
	setFloat("kd", &cfg.Autopilot.Kd, kd)
	setFloat("safe-speed", &cfg.Autopilot.SafeSpeed, safeSpeed)
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, cfg.Validate()
}
