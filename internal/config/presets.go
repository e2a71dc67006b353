package config

import "sort"

func preset(theta1, theta2, omega1, omega2 float64) *Config {
	cfg := DefaultConfig()
	cfg.Initial = InitialConfig{Theta1: theta1, Theta2: theta2, Omega1: omega1, Omega2: omega2}
	return cfg
}

var Presets = map[string]*Config{
	"hanging":    preset(0, 0, 0, 0),
	"gentle":     preset(10, 10, 0, 0),
	"symmetric":  preset(45, -45, 0, 0),
	"horizontal": preset(90, 90, 0, 0),
	"chaos":      preset(170, 175, 0, 0),
	"wobble":     preset(30, 0, 0, 0),
	"whip":       preset(0, 0, 360, 0),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
