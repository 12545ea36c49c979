package config

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
)

type checksumPayload struct {
	Figure FigureConfig  `json:"figure"`
	Sweeps []SweepConfig `json:"sweeps"`
}

// Checksum returns a short, stable checksum that identifies the figure and the
// sweep definitions that produced a set of results. Database credentials and
// log level do not contribute.
//
// It computes MD5 over the JSON form and returns the first 6 hex characters.
func Checksum(cfg *PlotConfig) (string, error) {
	if cfg == nil {
		return "", nil
	}

	b, err := json.Marshal(checksumPayload{Figure: cfg.Figure, Sweeps: cfg.Sweeps})
	if err != nil {
		return "", err
	}

	sum := md5.Sum(b)
	hexStr := hex.EncodeToString(sum[:])
	if len(hexStr) > 6 {
		hexStr = hexStr[:6]
	}
	return hexStr, nil
}
