package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"scaling-bench/internal/config"
	"scaling-bench/internal/logging"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const Version = "1.0.0"

// figureSource captures how a command locates its figure configuration.
type figureSource struct {
	configFile string
	preset     string
	resultsDir string
	outputDir  string
}

func (fs *figureSource) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&fs.configFile, "config", "c", "", "Path to figure configuration file")
	cmd.Flags().StringVar(&fs.preset, "preset", "", fmt.Sprintf("Built-in figure configuration %v", config.PresetNames()))
	cmd.Flags().StringVar(&fs.resultsDir, "results-dir", "", "Override the results directory of every directory sweep")
	cmd.Flags().StringVar(&fs.outputDir, "output-dir", "", "Override the figure output directory")
	cmd.MarkFlagsMutuallyExclusive("config", "preset")
	cmd.MarkFlagsOneRequired("config", "preset")
}

// load returns the configuration, its raw content and its checksum.
func (fs *figureSource) load() (*config.PlotConfig, string, string, error) {
	logger := logging.GetLogger()

	var (
		cfg     *config.PlotConfig
		content string
		err     error
	)
	if fs.preset != "" {
		cfg, content, err = config.Preset(fs.preset)
	} else {
		cfg, content, err = config.LoadConfigWithContent(fs.configFile)
	}
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to load config: %w", err)
	}

	if fs.resultsDir != "" {
		cfg.SetResultsDir(fs.resultsDir)
	}
	if fs.outputDir != "" {
		cfg.Figure.Output.Dir = fs.outputDir
	}

	checksum, err := config.Checksum(cfg)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to compute config checksum: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"figure":   cfg.Figure.Name,
		"sweeps":   len(cfg.Sweeps),
		"checksum": checksum,
	}).Debug("Configuration loaded")
	return cfg, content, checksum, nil
}

func loadEnvironment() {
	logger := logging.GetLogger()

	// Try to load .env file from current directory
	envFile := ".env"
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			logger.WithField("file", envFile).WithError(err).Warn("Error loading .env file")
		} else {
			logger.WithField("file", envFile).Debug("Loaded environment variables")
		}
		return
	}

	// Try to load from the application directory
	if execPath, err := os.Executable(); err == nil {
		envFile = filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				logger.WithField("file", envFile).WithError(err).Warn("Error loading .env file")
			} else {
				logger.WithField("file", envFile).Debug("Loaded environment variables")
			}
		}
	}
}

func NewRootCommand() *cobra.Command {
	var logLevel string
	var logFormat string

	rootCmd := &cobra.Command{
		Use:           "scaling-bench",
		Short:         "Weak-scaling benchmark result plotter",
		Long:          "Aggregates figure-of-merit lines from benchmark logs per resource count and renders scaling charts",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logLevel != "" {
				if err := logging.SetLogLevel(logLevel); err != nil {
					return fmt.Errorf("invalid log level: %w", err)
				}
			}
			switch logFormat {
			case "", "text":
			case "json":
				logging.SetFormatter(&logrus.JSONFormatter{})
			default:
				return fmt.Errorf("invalid log format %q (text, json)", logFormat)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log output format (text, json)")

	rootCmd.AddCommand(newPlotCommand())
	rootCmd.AddCommand(newAggregateCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newPublishCommand())
	rootCmd.AddCommand(newRecipeCommand())

	return rootCmd
}

func Execute() error {
	loadEnvironment()
	return NewRootCommand().Execute()
}

// applyConfigLogLevel honours figure.log_level unless --log-level was given.
func applyConfigLogLevel(cmd *cobra.Command, cfg *config.PlotConfig) {
	logger := logging.GetLogger()

	if f := cmd.Flag("log-level"); f != nil && f.Changed {
		return
	}
	if err := logging.SetLogLevel(cfg.Figure.LogLevel); err != nil {
		logger.WithField("log_level", cfg.Figure.LogLevel).WithError(err).Warn("Invalid log level in config, using INFO")
		logging.SetLogLevel("info")
	}
}
