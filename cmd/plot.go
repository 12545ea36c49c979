package cmd

import (
	"fmt"

	"scaling-bench/internal/database"
	"scaling-bench/internal/dataparser"
	"scaling-bench/internal/logging"
	"scaling-bench/internal/plot"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newPlotCommand() *cobra.Command {
	var src figureSource
	var spool bool
	var spoolDir string
	var printTikz bool

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "Aggregate sweeps and render the scaling chart",
		Long:  "Aggregate every sweep of a figure and write the chart in each configured format (eps and png by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if printTikz {
				return runPrintTikz(cmd, &src)
			}
			return runPlot(cmd, &src, spool, spoolDir)
		},
	}

	src.register(plotCmd)
	plotCmd.Flags().BoolVar(&spool, "spool", false, "Also write the aggregated results as a gzip JSON artifact")
	plotCmd.Flags().StringVar(&spoolDir, "spool-dir", "", "Spool directory (default $SCALING_BENCH_SPOOL_DIR or ./spool)")
	plotCmd.Flags().BoolVar(&printTikz, "print-tikz", false, "Print the pgfplots picture and LaTeX wrapper to stdout instead of writing files")
	plotCmd.MarkFlagsMutuallyExclusive("print-tikz", "spool")

	return plotCmd
}

func runPlot(cmd *cobra.Command, src *figureSource, spool bool, spoolDir string) error {
	logger := logging.GetLogger()

	cfg, content, checksum, err := src.load()
	if err != nil {
		return err
	}
	applyConfigLogLevel(cmd, cfg)

	sweeps, err := dataparser.ProcessSweeps(cfg)
	if err != nil {
		logger.WithField("figure", cfg.Figure.Name).WithError(err).Error("Failed to aggregate results")
		return err
	}

	files, err := plot.NewPlotManager().GenerateScalingPlot(cfg, checksum, sweeps)
	if err != nil {
		return fmt.Errorf("failed to generate plot: %w", err)
	}

	for _, f := range files {
		fmt.Fprintln(cmd.OutOrStdout(), f)
	}

	if spool {
		artifact := database.BuildSpoolArtifact(cfg, content, sweeps, files)
		path, err := database.WriteSpoolArtifact(spoolDir, artifact)
		if err != nil {
			return fmt.Errorf("failed to write spool artifact: %w", err)
		}
		logger.WithFields(logrus.Fields{
			"file":   path,
			"run_id": artifact.RunID,
		}).Info("Spool artifact written")
	}

	return nil
}

func runPrintTikz(cmd *cobra.Command, src *figureSource) error {
	logging.SetOutput(cmd.ErrOrStderr())

	cfg, _, checksum, err := src.load()
	if err != nil {
		return err
	}
	applyConfigLogLevel(cmd, cfg)

	sweeps, err := dataparser.ProcessSweeps(cfg)
	if err != nil {
		return err
	}

	plotTikz, wrapperTex, err := plot.NewPlotManager().GenerateTikz(cfg, checksum, sweeps)
	if err != nil {
		return fmt.Errorf("failed to generate tikz: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), plotTikz)
	fmt.Fprintln(cmd.OutOrStdout(), wrapperTex)
	return nil
}
