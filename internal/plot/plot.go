package plot

import (
	"scaling-bench/internal/config"
	"scaling-bench/internal/dataparser"
	"scaling-bench/internal/logging"
	"scaling-bench/internal/plot/scaling"

	"github.com/sirupsen/logrus"
)

type PlotManager struct {
	scalingGenerator *scaling.ScalingPlotGenerator
	logger           *logrus.Logger
}

func NewPlotManager() *PlotManager {
	logger := logging.GetLogger()

	return &PlotManager{
		scalingGenerator: scaling.NewScalingPlotGenerator(logger),
		logger:           logger,
	}
}

// GenerateScalingPlot draws the aggregated sweeps in every configured format
// and returns the files written.
func (pm *PlotManager) GenerateScalingPlot(
	cfg *config.PlotConfig,
	checksum string,
	sweeps []dataparser.SweepResult,
) ([]string, error) {
	return pm.scalingGenerator.Render(ChartSpec(cfg, checksum), StyledSeries(sweeps))
}

// GenerateTikz returns the pgfplots picture and LaTeX wrapper without writing files.
func (pm *PlotManager) GenerateTikz(
	cfg *config.PlotConfig,
	checksum string,
	sweeps []dataparser.SweepResult,
) (plotTikz, wrapperTex string, err error) {
	return pm.scalingGenerator.GenerateTikz(ChartSpec(cfg, checksum), StyledSeries(sweeps))
}

func ChartSpec(cfg *config.PlotConfig, checksum string) scaling.ChartSpec {
	fig := cfg.Figure
	return scaling.ChartSpec{
		Name:        fig.Name,
		Description: fig.Description,
		Checksum:    checksum,
		Title:       fig.Title,
		XLabel:      fig.XLabel,
		YLabel:      fig.YLabel,
		XTicks:      fig.XTicks,
		YMax:        fig.YMax,
		Width:       fig.Width,
		Height:      fig.Height,
		OutputDir:   fig.Output.Dir,
		Basename:    fig.Output.Basename,
		Formats:     fig.Output.Formats,
	}
}

func StyledSeries(sweeps []dataparser.SweepResult) []scaling.StyledSeries {
	out := make([]scaling.StyledSeries, 0, len(sweeps))
	for _, s := range sweeps {
		sc := s.Config
		out = append(out, scaling.StyledSeries{
			Series:         s.Series,
			Label:          sc.Label,
			Marker:         sc.Style.Marker,
			Dashed:         sc.Style.Dashed,
			Width:          sc.Style.Width,
			Reference:      sc.Reference.Enabled,
			ReferenceLabel: sc.Reference.Label,
		})
	}
	return out
}
