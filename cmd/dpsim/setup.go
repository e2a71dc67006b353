package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/san-kum/dpsim/internal/config"
	"github.com/san-kum/dpsim/internal/logging"
)

var (
	configFile string
	presetName string
	envFile    string
	logLevel   string
)

func addPersistentFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	root.PersistentFlags().StringVar(&presetName, "preset", "", "start from a named preset")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with DPSIM_* overrides")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
}

// addPendulumFlags registers the physical parameters and initial
// conditions. Angles are in degrees.
func addPendulumFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64("l1", config.DefaultLength, "upper arm length (m)")
	fs.Float64("l2", config.DefaultLength, "lower arm length (m)")
	fs.Float64("m1", config.DefaultMass, "upper bob mass (kg)")
	fs.Float64("m2", config.DefaultMass, "lower bob mass (kg)")
	fs.Float64("theta1", config.DefaultTheta, "upper arm angle (degree)")
	fs.Float64("theta2", config.DefaultTheta, "lower arm angle (degree)")
	fs.Float64("omega1", 0, "upper arm angular velocity (degree / sec)")
	fs.Float64("omega2", 0, "lower arm angular velocity (degree / sec)")
}

func addStepFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64("g", config.DefaultGravity, "gravitational acceleration (m/s^2)")
	fs.Float64("dt", config.DefaultDt, "timestep (s)")
	fs.Int("frames", config.DefaultFrames, "number of steps")
	fs.String("scheme", config.DefaultScheme, "explicit or semi-implicit")
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().Int("fps", config.DefaultFPS, "frame rate for the live view")
}

// resolveConfig layers defaults, preset, config file, environment and
// explicitly set flags, in that order.
func resolveConfig(fs *pflag.FlagSet) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if presetName != "" {
		cfg = config.GetPreset(presetName)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if err := config.LoadEnv(envFile); err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if err := applyFlags(fs, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(fs *pflag.FlagSet, cfg *config.Config) error {
	floats := map[string]*float64{
		"l1":     &cfg.Pendulum.L1,
		"l2":     &cfg.Pendulum.L2,
		"m1":     &cfg.Pendulum.M1,
		"m2":     &cfg.Pendulum.M2,
		"theta1": &cfg.Initial.Theta1,
		"theta2": &cfg.Initial.Theta2,
		"omega1": &cfg.Initial.Omega1,
		"omega2": &cfg.Initial.Omega2,
		"g":      &cfg.Gravity,
		"dt":     &cfg.Dt,
	}
	for name, dst := range floats {
		if fs.Lookup(name) == nil || !fs.Changed(name) {
			continue
		}
		v, err := fs.GetFloat64(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	ints := map[string]*int{
		"frames": &cfg.Frames,
		"fps":    &cfg.FPS,
	}
	for name, dst := range ints {
		if fs.Lookup(name) == nil || !fs.Changed(name) {
			continue
		}
		v, err := fs.GetInt(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if fs.Lookup("scheme") != nil && fs.Changed("scheme") {
		v, err := fs.GetString("scheme")
		if err != nil {
			return err
		}
		cfg.Scheme = v
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return nil
}

func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	return logging.New(cfg.LogLevel, w)
}

// setup resolves the configuration for cmd and builds its logger.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := resolveConfig(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
