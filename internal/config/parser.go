package config

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"

	"scaling-bench/internal/logging"

	"gopkg.in/yaml.v3"
)

const (
	DefaultOutputDir = "scaling_results"
	DefaultBasename  = "scaling"
	DefaultWidth     = 6.4
	DefaultHeight    = 4.8
	DefaultLineWidth = 4.0
)

var DefaultFormats = []string{"eps", "png"}

var knownFormats = map[string]bool{
	"eps":  true,
	"png":  true,
	"svg":  true,
	"pdf":  true,
	"tikz": true,
}

var knownMarkers = map[string]bool{
	"":         true,
	"none":     true,
	"circle":   true,
	"square":   true,
	"triangle": true,
	"cross":    true,
}

func LoadConfig(filepath string) (*PlotConfig, error) {
	config, _, err := LoadConfigWithContent(filepath)
	return config, err
}

func LoadConfigWithContent(filepath string) (*PlotConfig, string, error) {
	logger := logging.GetLogger()

	data, err := os.ReadFile(filepath)
	if err != nil {
		logger.WithField("filepath", filepath).WithError(err).Error("Failed to read config file")
		return nil, "", err
	}

	config, err := ParseConfig(data)
	if err != nil {
		logger.WithField("filepath", filepath).WithError(err).Error("Failed to parse config file")
		return nil, "", err
	}

	return config, string(data), nil
}

// ParseConfig expands ${VAR} references, decodes the YAML, applies defaults
// and validates the result.
func ParseConfig(data []byte) (*PlotConfig, error) {
	expanded := expandEnvVars(string(data))

	var config PlotConfig
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func expandEnvVars(content string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		envVar := strings.Trim(match, "${}")
		if value := os.Getenv(envVar); value != "" {
			return value
		}
		return match
	})
}

func applyDefaults(config *PlotConfig) {
	fig := &config.Figure
	if fig.Output.Dir == "" {
		fig.Output.Dir = DefaultOutputDir
	}
	if fig.Output.Basename == "" {
		fig.Output.Basename = DefaultBasename
	}
	if len(fig.Output.Formats) == 0 {
		fig.Output.Formats = append([]string(nil), DefaultFormats...)
	}
	for i, f := range fig.Output.Formats {
		fig.Output.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	if fig.Width <= 0 {
		fig.Width = DefaultWidth
	}
	if fig.Height <= 0 {
		fig.Height = DefaultHeight
	}
	if fig.LogLevel == "" {
		fig.LogLevel = "info"
	}

	for i := range config.Sweeps {
		if config.Sweeps[i].Style.Width <= 0 {
			config.Sweeps[i].Style.Width = DefaultLineWidth
		}
	}
}

func validateConfig(config *PlotConfig) error {
	if config.Figure.Name == "" {
		return fmt.Errorf("figure name is required")
	}

	for _, f := range config.Figure.Output.Formats {
		if !knownFormats[f] {
			return fmt.Errorf("unknown output format %q", f)
		}
	}

	if config.Figure.YMax < 0 {
		return fmt.Errorf("y_max must not be negative")
	}

	if len(config.Sweeps) == 0 {
		return fmt.Errorf("at least one sweep must be defined")
	}

	names := make(map[string]bool)
	for i, sweep := range config.Sweeps {
		if sweep.Name == "" {
			return fmt.Errorf("sweep %d: name is required", i)
		}
		if names[sweep.Name] {
			return fmt.Errorf("sweep %s: name is already used", sweep.Name)
		}
		names[sweep.Name] = true

		if (sweep.Dir == "") == (sweep.File == "") {
			return fmt.Errorf("sweep %s: exactly one of dir or file must be set", sweep.Name)
		}

		if sweep.Dir != "" {
			if sweep.Marker == "" {
				return fmt.Errorf("sweep %s: marker is required for directory sweeps", sweep.Name)
			}
			if strings.Contains(sweep.Marker, ".") {
				return fmt.Errorf("sweep %s: marker %q must not contain '.'", sweep.Name, sweep.Marker)
			}
			if err := sweep.Match.Validate(); err != nil {
				return fmt.Errorf("sweep %s: %w", sweep.Name, err)
			}
		}

		if sweep.Divisor < 0 || math.IsInf(sweep.Divisor, 0) || math.IsNaN(sweep.Divisor) {
			return fmt.Errorf("sweep %s: divisor must be a finite non-negative number, got %v", sweep.Name, sweep.Divisor)
		}

		if !knownMarkers[sweep.Style.Marker] {
			return fmt.Errorf("sweep %s: unknown marker %q", sweep.Name, sweep.Style.Marker)
		}
	}

	return nil
}
