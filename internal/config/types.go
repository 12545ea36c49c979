package config

import (
	"scaling-bench/internal/results"
)

type PlotConfig struct {
	Figure FigureConfig  `yaml:"figure" json:"figure"`
	Sweeps []SweepConfig `yaml:"sweeps" json:"sweeps"`
	Data   DataConfig    `yaml:"data" json:"-"`
}

type FigureConfig struct {
	Name        string       `yaml:"name" json:"name"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Title       string       `yaml:"title" json:"title"`
	XLabel      string       `yaml:"xlabel" json:"xlabel"`
	YLabel      string       `yaml:"ylabel" json:"ylabel"`
	XTicks      []float64    `yaml:"xticks" json:"xticks"`
	YMax        float64      `yaml:"y_max,omitempty" json:"y_max,omitempty"`
	Width       float64      `yaml:"width,omitempty" json:"width"`   // inches
	Height      float64      `yaml:"height,omitempty" json:"height"` // inches
	LogLevel    string       `yaml:"log_level,omitempty" json:"-"`
	Output      OutputConfig `yaml:"output" json:"output"`
}

type OutputConfig struct {
	Dir      string   `yaml:"dir" json:"dir"`
	Basename string   `yaml:"basename" json:"basename"`
	Formats  []string `yaml:"formats" json:"formats"`
}

type SweepConfig struct {
	Name      string                `yaml:"name" json:"name"`
	Label     string                `yaml:"label,omitempty" json:"label,omitempty"`
	Dir       string                `yaml:"dir,omitempty" json:"dir,omitempty"`
	File      string                `yaml:"file,omitempty" json:"file,omitempty"`
	Include   string                `yaml:"include,omitempty" json:"include,omitempty"`
	Marker    string                `yaml:"marker,omitempty" json:"marker,omitempty"`
	Match     results.LinePredicate `yaml:"match,omitempty" json:"match"`
	Divisor   float64               `yaml:"divisor,omitempty" json:"divisor,omitempty"`
	Style     StyleConfig           `yaml:"style,omitempty" json:"style"`
	Reference ReferenceConfig       `yaml:"reference,omitempty" json:"reference"`
}

type StyleConfig struct {
	Marker string  `yaml:"marker,omitempty" json:"marker,omitempty"` // circle, square, triangle, none
	Dashed bool    `yaml:"dashed" json:"dashed"`
	Width  float64 `yaml:"width,omitempty" json:"width,omitempty"` // points
}

type ReferenceConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Label   string `yaml:"label,omitempty" json:"label,omitempty"`
}

type DataConfig struct {
	DB DatabaseConfig `yaml:"db"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Org      string `yaml:"org"`
}

func (db DatabaseConfig) IsComplete() bool {
	return db.Host != "" && db.Name != "" && db.Password != "" && db.Org != ""
}

// ToSweep converts the YAML form into the aggregator's sweep description.
func (s SweepConfig) ToSweep() results.Sweep {
	return results.Sweep{
		Name:      s.Name,
		Include:   s.Include,
		Marker:    s.Marker,
		Predicate: s.Match,
		Divisor:   s.Divisor,
		File:      s.File,
	}
}

// SetResultsDir points every directory-based sweep at dir.
func (c *PlotConfig) SetResultsDir(dir string) {
	for i := range c.Sweeps {
		if c.Sweeps[i].File == "" {
			c.Sweeps[i].Dir = dir
		}
	}
}

func (c *PlotConfig) GetSweep(name string) (SweepConfig, bool) {
	for _, s := range c.Sweeps {
		if s.Name == name {
			return s, true
		}
	}
	return SweepConfig{}, false
}
