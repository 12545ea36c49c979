package database

import (
	"strings"
	"testing"
	"time"

	"scaling-bench/internal/config"
	"scaling-bench/internal/dataparser"
	"scaling-bench/internal/results"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

func sampleSweeps() []dataparser.SweepResult {
	return []dataparser.SweepResult{
		{
			Config:    config.SweepConfig{Name: "gpu", Marker: "ngpu"},
			Records:   []results.Record{{Key: 6, FOM: 50}, {Key: 24, FOM: 190}},
			Series:    results.Series{Name: "gpu", Keys: []float64{1, 4}, Values: []float64{50, 190}},
			Reference: []float64{50, 200},
		},
		{
			Config:  config.SweepConfig{Name: "cpu", Marker: "ncpu"},
			Records: []results.Record{{Key: 1, FOM: 2}},
			Series:  results.Series{Name: "cpu", Keys: []float64{1}, Values: []float64{2}},
		},
	}
}

func TestBuildPoints_OnePointPerKey(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	points := BuildPoints("castro", "abc123", "run-1", sampleSweeps(), ts)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}

	line := write.PointToLineProtocol(points[1], time.Nanosecond)
	for _, want := range []string{
		MeasurementScalingResults,
		"sweep=gpu",
		"config_checksum=abc123",
		"fom=190",
		"raw_key=24i",
		"linear_reference=200",
	} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}

	cpu := write.PointToLineProtocol(points[2], time.Nanosecond)
	if strings.Contains(cpu, "linear_reference") {
		t.Fatalf("cpu point should not carry a reference: %q", cpu)
	}
}

func TestBuildPoints_DistinctTimestampsWithinSweep(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	points := BuildPoints("castro", "abc123", "run-1", sampleSweeps(), ts)
	if !points[0].Time().Before(points[1].Time()) {
		t.Fatalf("expected increasing timestamps within a sweep")
	}
}
