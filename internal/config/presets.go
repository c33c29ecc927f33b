package config

import "sort"

// Presets are keyed by generator, then preset name. Apply copies a preset
// over DefaultConfig so unspecified fields keep their defaults.
var Presets = map[string]map[string]func(*Config){
	"mackey_glass": {
		"mg17": func(c *Config) {
			c.MackeyGlass = MackeyGlassConfig{Tau: 17, DeltaT: 10}
		},
		"mg30": func(c *Config) {
			c.MackeyGlass = MackeyGlassConfig{Tau: 30, DeltaT: 10}
		},
		"fine": func(c *Config) {
			c.MackeyGlass = MackeyGlassConfig{Tau: 17, DeltaT: 100}
			c.N = 2000
		},
	},
	"lorenz": {
		"classic": func(c *Config) {
			c.Lorenz.Sigma, c.Lorenz.Rho, c.Lorenz.Beta = 10, 28, 8.0/3.0
		},
		"periodic": func(c *Config) {
			c.Lorenz.Rho = 160
		},
		"fixed_point": func(c *Config) {
			c.Lorenz.Rho = 14
		},
	},
	"mso": {
		"short": func(c *Config) {
			c.N = 200
		},
	},
}

// GetPreset returns DefaultConfig with the named preset applied, or nil.
func GetPreset(generator, preset string) *Config {
	genPresets, ok := Presets[generator]
	if !ok {
		return nil
	}
	apply, ok := genPresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Generator = generator
	apply(cfg)
	return cfg
}

func ListPresets(generator string) []string {
	genPresets, ok := Presets[generator]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(genPresets))
	for name := range genPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
