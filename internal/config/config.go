package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dpsim/internal/pendulum"
)

const (
	DefaultGravity  = pendulum.DefaultGravity
	DefaultDt       = pendulum.DefaultDt
	DefaultFrames   = 1000
	DefaultScale    = pendulum.DefaultScale
	DefaultFPS      = 100
	DefaultLength   = 1.0
	DefaultMass     = 1.0
	DefaultTheta    = 90.0
	DefaultScheme   = "explicit"
	DefaultLogLevel = "info"
)

// Config describes one simulation. Angles are in degrees and angular
// velocities in degrees per second; NewState converts them.
type Config struct {
	Pendulum PendulumConfig `yaml:"pendulum"`
	Initial  InitialConfig  `yaml:"initial"`
	Gravity  float64        `yaml:"gravity"`
	Dt       float64        `yaml:"dt"`
	Frames   int            `yaml:"frames"`
	Scale    float64        `yaml:"scale"`
	Scheme   string         `yaml:"scheme"`
	FPS      int            `yaml:"fps"`
	LogLevel string         `yaml:"log_level"`
}

type PendulumConfig struct {
	L1 float64 `yaml:"l1"`
	L2 float64 `yaml:"l2"`
	M1 float64 `yaml:"m1"`
	M2 float64 `yaml:"m2"`
}

type InitialConfig struct {
	Theta1 float64 `yaml:"theta1"`
	Theta2 float64 `yaml:"theta2"`
	Omega1 float64 `yaml:"omega1"`
	Omega2 float64 `yaml:"omega2"`
}

func DefaultConfig() *Config {
	return &Config{
		Pendulum: PendulumConfig{
			L1: DefaultLength, L2: DefaultLength,
			M1: DefaultMass, M2: DefaultMass,
		},
		Initial: InitialConfig{
			Theta1: DefaultTheta,
			Theta2: DefaultTheta,
		},
		Gravity:  DefaultGravity,
		Dt:       DefaultDt,
		Frames:   DefaultFrames,
		Scale:    DefaultScale,
		Scheme:   DefaultScheme,
		FPS:      DefaultFPS,
		LogLevel: DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base. Keys missing from the
// file keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks everything that would make NewState, NewIntegrator or
// the render loop fail.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if _, err := c.NewIntegrator(); err != nil {
		return err
	}
	if c.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", c.Frames)
	}
	if !(c.Scale > 0) || math.IsInf(c.Scale, 0) {
		return fmt.Errorf("scale must be positive, got %g", c.Scale)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	return nil
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func (c *Config) Params() pendulum.Params {
	return pendulum.Params{
		L1: c.Pendulum.L1, L2: c.Pendulum.L2,
		M1: c.Pendulum.M1, M2: c.Pendulum.M2,
	}
}

// Conditions returns the initial conditions in radians.
func (c *Config) Conditions() pendulum.Conditions {
	return pendulum.Conditions{
		Theta1: Radians(c.Initial.Theta1),
		Theta2: Radians(c.Initial.Theta2),
		Omega1: Radians(c.Initial.Omega1),
		Omega2: Radians(c.Initial.Omega2),
	}
}

func (c *Config) NewState() (*pendulum.State, error) {
	return pendulum.NewFromParams(c.Params(), c.Conditions())
}

func (c *Config) NewIntegrator() (*pendulum.Integrator, error) {
	scheme, err := pendulum.ParseScheme(c.Scheme)
	if err != nil {
		return nil, err
	}
	return pendulum.NewIntegratorWith(c.Gravity, c.Dt, scheme)
}

// Clone returns a copy that can be modified independently.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
