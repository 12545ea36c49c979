package config

import (
	"strings"
	"testing"

	"scaling-bench/internal/results"
)

func TestPresets_AllParse(t *testing.T) {
	names := PresetNames()
	if strings.Join(names, ",") != "sierra,summit,summitdev" {
		t.Fatalf("unexpected presets %v", names)
	}
	for _, name := range names {
		if _, _, err := Preset(name); err != nil {
			t.Fatalf("preset %s: %v", name, err)
		}
	}
}

func TestPreset_SummitMatchesFigureOfMeritLines(t *testing.T) {
	cfg, _, err := Preset("summit")
	if err != nil {
		t.Fatalf("Preset: %v", err)
	}
	gpu, ok := cfg.GetSweep("gpu")
	if !ok {
		t.Fatalf("expected gpu sweep")
	}
	if gpu.Divisor != 6 {
		t.Fatalf("expected 6 GPUs per node, got %v", gpu.Divisor)
	}
	fields := strings.Fields("Figure of Merit (zones / usec): 123.4")
	if !gpu.Match.Matches(fields) {
		t.Fatalf("expected summit predicate to match %v", fields)
	}
	v, _, err := gpu.Match.Value(fields)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != 123.4 {
		t.Fatalf("expected 123.4, got %v", v)
	}
}

func TestPreset_SierraUsesAverageNumber(t *testing.T) {
	cfg, _, err := Preset("sierra")
	if err != nil {
		t.Fatalf("Preset: %v", err)
	}
	gpu, _ := cfg.GetSweep("gpu")
	if gpu.Divisor != 4 {
		t.Fatalf("expected 4 GPUs per node, got %v", gpu.Divisor)
	}
	if gpu.Match.ValuePos != results.AverageNumber.ValuePos {
		t.Fatalf("expected value position %d, got %d", results.AverageNumber.ValuePos, gpu.Match.ValuePos)
	}
	cpu, _ := cfg.GetSweep("cpu")
	if cpu.Style.Marker != "square" {
		t.Fatalf("expected square markers for cpu sweep, got %q", cpu.Style.Marker)
	}
}

func TestPreset_Unknown(t *testing.T) {
	if _, _, err := Preset("frontier"); err == nil {
		t.Fatalf("expected error for unknown preset")
	}
}
