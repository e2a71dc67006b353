package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvGravity  = "DPSIM_GRAVITY"
	EnvDt       = "DPSIM_DT"
	EnvFrames   = "DPSIM_FRAMES"
	EnvScheme   = "DPSIM_SCHEME"
	EnvLogLevel = "DPSIM_LOG_LEVEL"
)

// LoadEnv loads a .env file into the process environment. Variables
// already set are not overwritten and a missing file is not an error.
func LoadEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with any DPSIM_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvGravity); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvGravity, err)
		}
		cfg.Gravity = f
	}
	if v, ok := os.LookupEnv(EnvDt); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDt, err)
		}
		cfg.Dt = f
	}
	if v, ok := os.LookupEnv(EnvFrames); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFrames, err)
		}
		cfg.Frames = n
	}
	if v, ok := os.LookupEnv(EnvScheme); ok {
		cfg.Scheme = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	return nil
}
