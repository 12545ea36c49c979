package dataparser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"scaling-bench/internal/config"
	"scaling-bench/internal/results"
)

func TestProcessSweeps_SummitPreset(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"castro.ngpu.6.out":   "Figure of Merit (zones / usec): 50.0\n",
		"castro.ngpu.24.out":  "Figure of Merit (zones / usec): 190.0\n",
		"castro.ngpu.12.out":  "Figure of Merit (zones / usec): 98.0\n",
		"castro.ncpu.2.out":   "Figure of Merit (zones / usec): 4.0\n",
		"castro.ncpu.1.out":   "Figure of Merit (zones / usec): 2.1\n",
		"castro.ngpu.6.inp":   "Figure of Merit (zones / usec): 999\n",
		"castro.ngpu.6b.out2": "not a result\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	cfg, _, err := config.Preset("summit")
	if err != nil {
		t.Fatalf("Preset: %v", err)
	}
	cfg.SetResultsDir(dir)

	// castro.ngpu.6b.out2 carries a non-numeric key after the marker.
	if _, err := ProcessSweeps(cfg); !errors.Is(err, results.ErrMalformedFilename) {
		t.Fatalf("expected ErrMalformedFilename, got %v", err)
	}
	if err := os.Remove(filepath.Join(dir, "castro.ngpu.6b.out2")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	out, err := ProcessSweeps(cfg)
	if err != nil {
		t.Fatalf("ProcessSweeps: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 sweeps, got %d", len(out))
	}

	gpu := out[0]
	wantKeys := []float64{1, 2, 4}
	wantValues := []float64{50, 98, 190}
	for i := range wantKeys {
		if gpu.Series.Keys[i] != wantKeys[i] || gpu.Series.Values[i] != wantValues[i] {
			t.Fatalf("gpu point %d: got (%v, %v), want (%v, %v)", i,
				gpu.Series.Keys[i], gpu.Series.Values[i], wantKeys[i], wantValues[i])
		}
	}
	if len(gpu.Reference) != 3 || gpu.Reference[2] != 200 {
		t.Fatalf("unexpected linear reference %v", gpu.Reference)
	}

	cpu := out[1]
	if cpu.Reference != nil {
		t.Fatalf("cpu sweep should not carry a reference")
	}
	if len(cpu.Series.Keys) != 2 || cpu.Series.Keys[0] != 1 || cpu.Series.Values[1] != 4.0 {
		t.Fatalf("unexpected cpu series %+v", cpu.Series)
	}
}

func TestProcessSweeps_MissingDirectory(t *testing.T) {
	cfg, _, err := config.Preset("sierra")
	if err != nil {
		t.Fatalf("Preset: %v", err)
	}
	cfg.SetResultsDir(filepath.Join(t.TempDir(), "nope"))

	if _, err := ProcessSweeps(cfg); !errors.Is(err, results.ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
}
