package cmd

import (
	"context"
	"fmt"
	"os"

	"scaling-bench/internal/config"
	"scaling-bench/internal/database"
	"scaling-bench/internal/dataparser"
	"scaling-bench/internal/logging"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var requiredInfluxVars = []string{
	"INFLUXDB_HOST",
	"INFLUXDB_TOKEN",
	"INFLUXDB_ORG",
	"INFLUXDB_BUCKET",
}

func validateEnvironment() error {
	logger := logging.GetLogger()

	var missing []string
	for _, varName := range requiredInfluxVars {
		if os.Getenv(varName) == "" {
			missing = append(missing, varName)
		}
	}

	if len(missing) > 0 {
		logger.WithField("missing_vars", missing).Error("Missing required environment variables")
		return fmt.Errorf("missing required environment variables: %v. Please ensure your .env file contains these variables", missing)
	}

	logger.Debug("All required environment variables are present")
	return nil
}

// databaseConfig prefers a complete data.db block from the figure config and
// falls back to the INFLUXDB_* environment.
func databaseConfig(cfg *config.PlotConfig) (config.DatabaseConfig, error) {
	if cfg.Data.DB.IsComplete() {
		return cfg.Data.DB, nil
	}
	if err := validateEnvironment(); err != nil {
		return config.DatabaseConfig{}, err
	}
	return config.DatabaseConfig{
		Host:     os.Getenv("INFLUXDB_HOST"),
		Name:     os.Getenv("INFLUXDB_BUCKET"),
		User:     os.Getenv("INFLUXDB_USER"),
		Password: os.Getenv("INFLUXDB_TOKEN"),
		Org:      os.Getenv("INFLUXDB_ORG"),
	}, nil
}

func newPublishCommand() *cobra.Command {
	var src figureSource

	publishCmd := &cobra.Command{
		Use:   "publish",
		Short: "Aggregate sweeps and write the results to InfluxDB",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger()

			cfg, _, checksum, err := src.load()
			if err != nil {
				return err
			}
			applyConfigLogLevel(cmd, cfg)

			dbConfig, err := databaseConfig(cfg)
			if err != nil {
				return err
			}

			sweeps, err := dataparser.ProcessSweeps(cfg)
			if err != nil {
				return err
			}

			client, err := database.NewInfluxDBClient(dbConfig)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer client.Close()

			runID := uuid.NewString()
			if err := client.WriteSweeps(context.Background(), cfg.Figure.Name, checksum, runID, sweeps); err != nil {
				return err
			}
			logger.WithField("run_id", runID).Info("Results published")
			return nil
		},
	}

	src.register(publishCmd)
	return publishCmd
}
