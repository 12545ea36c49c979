package config

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed presets/*.yml
var presetFS embed.FS

// PresetNames lists the built-in figure configurations.
func PresetNames() []string {
	entries, err := presetFS.ReadDir("presets")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yml"))
	}
	sort.Strings(names)
	return names
}

// Preset loads a built-in configuration by name together with its raw content.
func Preset(name string) (*PlotConfig, string, error) {
	data, err := presetFS.ReadFile("presets/" + name + ".yml")
	if err != nil {
		return nil, "", fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, "", fmt.Errorf("preset %s: %w", name, err)
	}
	return cfg, string(data), nil
}
