package database

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"scaling-bench/internal/config"
	"scaling-bench/internal/dataparser"
	"scaling-bench/internal/host"

	"github.com/google/uuid"
)

type SpoolArtifact struct {
	Version int `json:"version"`

	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`

	Figure         string `json:"figure"`
	ConfigChecksum string `json:"config_checksum"`
	ConfigContent  string `json:"config_content"`

	Host *host.HostConfig `json:"host,omitempty"`

	Sweeps []dataparser.SweepResult `json:"sweeps"`
	Files  []string                 `json:"files,omitempty"`
}

func DefaultSpoolDir() string {
	if v := strings.TrimSpace(os.Getenv("SCALING_BENCH_SPOOL_DIR")); v != "" {
		return v
	}
	return "spool"
}

// BuildSpoolArtifact wraps the aggregated sweeps of one run.
func BuildSpoolArtifact(cfg *config.PlotConfig, configContent string, sweeps []dataparser.SweepResult, files []string) *SpoolArtifact {
	name := ""
	checksum := ""
	if cfg != nil {
		name = cfg.Figure.Name
		if cs, err := config.Checksum(cfg); err == nil {
			checksum = cs
		}
	}

	return &SpoolArtifact{
		Version:        1,
		RunID:          uuid.NewString(),
		CreatedAt:      time.Now(),
		Figure:         name,
		ConfigChecksum: checksum,
		ConfigContent:  configContent,
		Host:           host.GetHostConfig(),
		Sweeps:         sweeps,
		Files:          files,
	}
}

// WriteSpoolArtifact writes a gzip-compressed JSON artifact to disk atomically.
// It returns the final file path.
func WriteSpoolArtifact(dir string, artifact *SpoolArtifact) (string, error) {
	if artifact == nil {
		return "", fmt.Errorf("spool artifact is nil")
	}
	if dir == "" {
		dir = DefaultSpoolDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	checksum := artifact.ConfigChecksum
	if checksum == "" {
		checksum = "nocsum"
	}
	figure := artifact.Figure
	if figure == "" {
		figure = "figure"
	}
	name := fmt.Sprintf(
		"scaling_%s_%s_%s.json.gz",
		figure,
		artifact.CreatedAt.UTC().Format("20060102T150405Z"),
		checksum,
	)
	finalPath := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, name+".tmp.*")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()

	ok := false
	defer func() {
		_ = tmp.Close()
		if !ok {
			_ = os.Remove(tmpPath)
		}
	}()

	gz := gzip.NewWriter(tmp)
	enc := json.NewEncoder(gz)
	enc.SetIndent("", "  ")
	if err := enc.Encode(artifact); err != nil {
		_ = gz.Close()
		return "", err
	}
	if err := gz.Close(); err != nil {
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		return "", err
	}
	ok = true
	return finalPath, nil
}

func ReadSpoolArtifact(path string) (*SpoolArtifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("spool %s: %w", path, err)
	}
	defer gz.Close()

	var artifact SpoolArtifact
	if err := json.NewDecoder(gz).Decode(&artifact); err != nil {
		return nil, fmt.Errorf("spool %s: %w", path, err)
	}
	return &artifact, nil
}
