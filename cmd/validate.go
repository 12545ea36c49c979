package cmd

import (
	"scaling-bench/internal/logging"

	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	var src figureSource

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a figure configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger()

			cfg, _, checksum, err := src.load()
			if err != nil {
				logger.WithField("config_file", src.configFile).WithError(err).Error("Configuration validation failed")
				return err
			}
			logger.WithField("figure", cfg.Figure.Name).WithField("checksum", checksum).Info("Configuration is valid")
			return nil
		},
	}

	src.register(validateCmd)
	return validateCmd
}
