package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/dpsim/internal/analysis"
	"github.com/san-kum/dpsim/internal/config"
	"github.com/san-kum/dpsim/internal/metrics"
	"github.com/san-kum/dpsim/internal/pendulum"
	"github.com/san-kum/dpsim/internal/prompt"
	"github.com/san-kum/dpsim/internal/render"
	"github.com/san-kum/dpsim/internal/sim"
)

// main registers the dpsim commands and exits with status 1 on error.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "dpsim",
		Short:        "double pendulum simulator",
		SilenceUsage: true,
	}
	addPersistentFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and print a summary",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addPendulumFlags(runCmd)
	addStepFlags(runCmd)
	runCmd.Flags().Bool("csv", false, "write every frame as CSV to stdout")
	runCmd.Flags().Bool("svg", false, "write the lower bob trace as SVG to stdout")
	runCmd.Flags().Bool("json", false, "write the result as JSON to stdout")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the pendulum in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addPendulumFlags(liveCmd)
	addStepFlags(liveCmd)
	addViewFlags(liveCmd)

	promptCmd := &cobra.Command{
		Use:   "prompt",
		Short: "ask for lengths, masses, angles and velocities, then animate",
		Args:  cobra.NoArgs,
		RunE:  runPrompt,
	}
	addStepFlags(promptCmd)
	addViewFlags(promptCmd)
	promptCmd.Flags().Bool("headless", false, "print a summary instead of animating")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot angles and energy over a run",
		Args:  cobra.NoArgs,
		RunE:  plotRun,
	}
	addPendulumFlags(plotCmd)
	addStepFlags(plotCmd)

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare the explicit and semi-implicit schemes from the same start",
		Args:  cobra.NoArgs,
		RunE:  compareSchemes,
	}
	addPendulumFlags(compareCmd)
	addStepFlags(compareCmd)

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run nearby starts concurrently and measure how far they drift apart",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addPendulumFlags(ensembleCmd)
	addStepFlags(ensembleCmd)
	ensembleCmd.Flags().Int("runs", 5, "number of members")
	ensembleCmd.Flags().Float64("delta", 0.001, "theta2 offset between members (degree)")
	ensembleCmd.Flags().Int("workers", 0, "concurrent members (0 = GOMAXPROCS)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "frequency, Lyapunov exponent and phase space of a run",
		Args:  cobra.NoArgs,
		RunE:  analyzeRun,
	}
	addPendulumFlags(analyzeCmd)
	addStepFlags(analyzeCmd)
	analyzeCmd.Flags().Float64("perturbation", 1e-8, "initial separation for the Lyapunov estimate (rad)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, liveCmd, promptCmd, plotCmd, compareCmd, ensembleCmd, analyzeCmd, presetsCmd, configCmd)
	return rootCmd
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	asCSV, _ := cmd.Flags().GetBool("csv")
	asSVG, _ := cmd.Flags().GetBool("svg")
	asJSON, _ := cmd.Flags().GetBool("json")
	if asCSV {
		return streamCSV(cmd.Context(), cmd.OutOrStdout(), cfg, logger)
	}

	start := time.Now()
	result, runner, runErr := simulate(cmd.Context(), cfg, logger)
	if result == nil {
		return runErr
	}
	out := cmd.OutOrStdout()

	switch {
	case asJSON:
		if err := writeJSON(out, result, cfg); err != nil {
			return err
		}
	case asSVG:
		fmt.Fprintln(out, render.TraceSVG(result.Frames, cfg.Pendulum.L1, cfg.Pendulum.L2, 600, 600))
	default:
		fmt.Fprintf(out, "completed in %v\n", time.Since(start))
		printSummary(out, runner.ID(), cfg, result)
	}
	return runErr
}

// simulate runs cfg headless with the default metrics. The result is
// non-nil whenever the run started, even if it halted early.
func simulate(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sim.Result, *sim.Runner, error) {
	runner, err := newRunner(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	result, err := runner.Run(ctx, sim.Config{Frames: cfg.Frames, ValidateState: true})
	return result, runner, err
}

// newRunner builds a runner for cfg with the default metrics attached.
func newRunner(cfg *config.Config, logger *slog.Logger) (*sim.Runner, error) {
	state, err := cfg.NewState()
	if err != nil {
		return nil, err
	}
	integ, err := cfg.NewIntegrator()
	if err != nil {
		return nil, err
	}

	runner := sim.New(state, integ)
	runner.SetLogger(logger)
	for _, m := range metrics.Default(cfg.Gravity) {
		runner.AddMetric(m)
	}
	return runner, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}
	return animate(cmd, cfg, "double pendulum")
}

// animate runs the live view. The runner's logs would corrupt the
// screen, so only the final state and any halt are reported, afterwards.
func animate(cmd *cobra.Command, cfg *config.Config, title string) error {
	state, err := cfg.NewState()
	if err != nil {
		return err
	}
	integ, err := cfg.NewIntegrator()
	if err != nil {
		return err
	}

	final, runErr := render.RunLive(state, integ, render.LiveOptions{
		Title:  title,
		Frames: cfg.Frames,
		FPS:    cfg.FPS,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	fmt.Fprintf(cmd.OutOrStdout(), "stopped at t=%.2fs after %d steps\n", final.Time, final.Steps)
	return runErr
}

func runPrompt(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := prompt.Apply(cmd.InOrStdin(), cmd.OutOrStdout(), cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	headless, _ := cmd.Flags().GetBool("headless")
	if !headless {
		return animate(cmd, cfg, "double pendulum")
	}

	result, runner, runErr := simulate(cmd.Context(), cfg, logger)
	if result == nil {
		return runErr
	}
	printSummary(cmd.OutOrStdout(), runner.ID(), cfg, result)
	return runErr
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	result, runner, runErr := simulate(cmd.Context(), cfg, logger)
	if result == nil {
		return runErr
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s: %d steps, dt=%g, scheme=%s\n\n", runner.ID(), result.StepsTaken, cfg.Dt, cfg.Scheme)
	fmt.Fprintln(out, render.PlotAngles(result.Frames, render.PlotWidth, render.PlotHeight))
	fmt.Fprintln(out)
	fmt.Fprintln(out, render.PlotEnergy(result.Frames, render.PlotWidth, render.PlotHeight))
	return runErr
}

func compareSchemes(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "comparing schemes over %d steps (dt=%g)\n\n", cfg.Frames, cfg.Dt)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCHEME\tSTEPS\tTHETA1\tTHETA2\tENERGY\tDRIFT\tSTATUS")
	for _, scheme := range []pendulum.Scheme{pendulum.SchemeExplicit, pendulum.SchemeSemiImplicit} {
		c := cfg.Clone()
		c.Scheme = scheme.String()

		result, _, runErr := simulate(cmd.Context(), c, logger.With("scheme", c.Scheme))
		if result == nil {
			return runErr
		}
		status := "ok"
		if runErr != nil {
			status = runErr.Error()
		}
		final := result.Final()
		fmt.Fprintf(w, "%s\t%d\t%.2f°\t%.2f°\t%.4f\t%.2e\t%s\n",
			c.Scheme, result.StepsTaken,
			config.Degrees(final.Theta1), config.Degrees(final.Theta2),
			final.Energy, result.EnergyDrift, status)
	}
	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	runs, _ := cmd.Flags().GetInt("runs")
	delta, _ := cmd.Flags().GetFloat64("delta")
	workers, _ := cmd.Flags().GetInt("workers")
	if runs < 2 {
		return fmt.Errorf("runs must be at least 2, got %d", runs)
	}

	states := make([]*pendulum.State, runs)
	offsets := make([]float64, runs)
	for i := range states {
		c := cfg.Clone()
		offsets[i] = float64(i) * delta
		c.Initial.Theta2 += offsets[i]
		if states[i], err = c.NewState(); err != nil {
			return err
		}
	}
	integ, err := cfg.NewIntegrator()
	if err != nil {
		return err
	}

	ens := sim.NewEnsemble(states, integ).
		WithLogger(logger).
		WithWorkers(workers).
		WithMetrics(func() []sim.Metric { return metrics.Default(cfg.Gravity) })

	results, runErr := ens.Run(cmd.Context(), sim.Config{Frames: cfg.Frames, ValidateState: true})
	if results == nil {
		return runErr
	}

	div := sim.Divergence(results, cfg.Params())
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d members, theta2 offset %g° apart, %d steps\n\n", runs, delta, cfg.Frames)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MEMBER\tOFFSET\tSTEPS\tTHETA2\tFLIPS\tDIVERGENCE (m)")
	for i, res := range results {
		fmt.Fprintf(w, "%d\t%+g°\t%d\t%.2f°\t%.0f\t%.4f\n",
			i, offsets[i], res.StepsTaken, config.Degrees(res.Final().Theta2),
			res.Metrics["flips"], div[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	d0, _ := cmd.Flags().GetFloat64("perturbation")

	result, runner, err := simulate(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	frames := result.Frames

	theta1 := make([]float64, len(frames))
	theta2 := make([]float64, len(frames))
	for i, f := range frames {
		theta1[i], theta2[i] = f.Theta1, f.Theta2
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "analysis of run %s (%d steps)\n\n", runner.ID(), result.StepsTaken)

	ps := analysis.Spectrum(theta1, cfg.Dt)
	if len(ps) > 8 {
		fmt.Fprintln(out, asciigraph.Plot(ps[:len(ps)/4],
			asciigraph.Height(10),
			asciigraph.Width(render.PlotWidth),
			asciigraph.Caption("power spectrum (theta1)")))
		fmt.Fprintln(out)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, arm := range []struct {
		name    string
		samples []float64
	}{{"theta1", theta1}, {"theta2", theta2}} {
		f := analysis.DominantFrequency(arm.samples, cfg.Dt)
		if f > 0 {
			fmt.Fprintf(w, "%s\tdominant %.3f Hz\tperiod %.3f s\n", arm.name, f, 1/f)
		} else {
			fmt.Fprintf(w, "%s\tno oscillation\t\n", arm.name)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	state, err := cfg.NewState()
	if err != nil {
		return err
	}
	integ, err := cfg.NewIntegrator()
	if err != nil {
		return err
	}
	lambda, err := analysis.Lyapunov(state, integ, cfg.Frames, d0)
	if err != nil {
		return err
	}
	verdict := "regular"
	if lambda > 0.5 {
		verdict = "chaotic"
	}
	fmt.Fprintf(out, "\nlargest Lyapunov exponent: %.3f 1/s (%s)\n\n", lambda, verdict)

	fmt.Fprint(out, render.PlotPoints(analysis.Phase(frames, analysis.Lower), 40, 12, "phase (theta2, omega2)"))
	if section := analysis.Poincare(frames); len(section) > 0 {
		fmt.Fprintln(out)
		fmt.Fprint(out, render.PlotPoints(section, 40, 12, fmt.Sprintf("poincare section, %d crossings", len(section))))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tTHETA1\tTHETA2\tOMEGA1\tOMEGA2")
	for _, name := range config.ListPresets() {
		in := config.Presets[name].Initial
		fmt.Fprintf(w, "%s\t%g°\t%g°\t%g°/s\t%g°/s\n", name, in.Theta1, in.Theta2, in.Omega1, in.Omega2)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := args[0]
	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg, err := resolveConfig(cmd.Flags())
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func printSummary(out io.Writer, id string, cfg *config.Config, result *sim.Result) {
	final := result.Final()
	fmt.Fprintf(out, "run id: %s\n", id)
	fmt.Fprintf(out, "steps: %d (t=%.2fs, scheme=%s)\n", result.StepsTaken, final.Time, cfg.Scheme)
	fmt.Fprintf(out, "final: theta1=%.2f° theta2=%.2f° omega1=%.3f rad/s omega2=%.3f rad/s\n",
		config.Degrees(final.Theta1), config.Degrees(final.Theta2), final.Omega1, final.Omega2)
	fmt.Fprintf(out, "energy drift: %.3e\n", result.EnergyDrift)

	fmt.Fprintln(out, "\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %.6f\n", name, result.Metrics[name])
	}
}
