package dataparser

import (
	"fmt"

	"scaling-bench/internal/config"
	"scaling-bench/internal/logging"
	"scaling-bench/internal/results"

	"github.com/sirupsen/logrus"
)

// SweepResult is one aggregated sweep with the series derived from it.
type SweepResult struct {
	Config    config.SweepConfig `json:"config"`
	Records   []results.Record   `json:"records"`
	Series    results.Series     `json:"series"`
	Reference []float64          `json:"linear_reference,omitempty"`
}

// ProcessSweeps aggregates every sweep of the configuration in order and
// derives the normalized, sorted series. The first error aborts the run.
func ProcessSweeps(cfg *config.PlotConfig) ([]SweepResult, error) {
	logger := logging.GetLogger()
	logger.WithField("figure", cfg.Figure.Name).Info("Processing sweeps")

	out := make([]SweepResult, 0, len(cfg.Sweeps))
	for _, sc := range cfg.Sweeps {
		sw := sc.ToSweep()

		rs, err := results.Collect(sw, sc.Dir)
		if err != nil {
			return nil, fmt.Errorf("sweep %s: %w", sc.Name, err)
		}

		series, err := rs.Series(sc.Name, sc.Divisor)
		if err != nil {
			return nil, err
		}

		res := SweepResult{
			Config:  sc,
			Records: rs.Records(),
			Series:  series,
		}
		if sc.Reference.Enabled {
			res.Reference = series.LinearReference()
		}

		logger.WithFields(logrus.Fields{
			"sweep":  sc.Name,
			"keys":   series.Keys,
			"values": series.Values,
		}).Info("Sweep aggregated")

		out = append(out, res)
	}

	logger.WithField("sweeps_processed", len(out)).Info("Sweep processing completed")
	return out, nil
}
