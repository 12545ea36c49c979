package scaling

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"scaling-bench/internal/plot/scaling/mappings"
	plotTemplate "scaling-bench/internal/plot/scaling/templates/plot"
	wrapperTemplate "scaling-bench/internal/plot/scaling/templates/wrapper"
	"scaling-bench/internal/results"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	titleFontSize = 16
	tickFontSize  = 14
	markerRadius  = 4
	referenceLW   = 2
	xHeadroom     = 1.01
	yHeadroom     = 1.10
)

// ChartSpec describes the figure independent of the data drawn on it.
type ChartSpec struct {
	Name        string
	Description string
	Checksum    string
	Title       string
	XLabel      string
	YLabel      string
	XTicks      []float64
	YMax        float64 // 0 derives the limit from the first series
	Width       float64 // inches
	Height      float64 // inches
	OutputDir   string
	Basename    string
	Formats     []string
}

// StyledSeries is a measured series plus how to draw it.
type StyledSeries struct {
	Series         results.Series
	Label          string
	Marker         string
	Dashed         bool
	Width          float64 // points
	Reference      bool
	ReferenceLabel string
}

type ScalingPlotGenerator struct {
	logger *logrus.Logger
}

func NewScalingPlotGenerator(logger *logrus.Logger) *ScalingPlotGenerator {
	return &ScalingPlotGenerator{logger: logger}
}

// drawn is one line on the chart after reference lines have been expanded.
type drawn struct {
	sweep     string
	reference bool
	label     string
	marker    string
	dashed    bool
	width     float64
	xs, ys    []float64
	style     mappings.PlotStyle
}

// Render writes the chart in every requested format and returns the paths written.
func (g *ScalingPlotGenerator) Render(spec ChartSpec, series []StyledSeries) ([]string, error) {
	g.logger.WithFields(logrus.Fields{
		"figure":  spec.Name,
		"series":  len(series),
		"formats": spec.Formats,
	}).Info("Generating scaling plot")

	lines, err := expand(series)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(spec.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", spec.OutputDir, err)
	}

	var written []string
	for _, format := range spec.Formats {
		var paths []string
		switch format {
		case "tikz":
			paths, err = g.writeTikz(spec, lines)
		default:
			var path string
			path, err = g.writeImage(spec, lines, format)
			paths = []string{path}
		}
		if err != nil {
			return written, err
		}
		written = append(written, paths...)
	}

	g.logger.WithField("files", written).Info("Scaling plot generated successfully")
	return written, nil
}

func expand(series []StyledSeries) ([]drawn, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no series to plot")
	}
	if series[0].Series.Len() == 0 {
		return nil, fmt.Errorf("sweep %s has no results", series[0].Series.Name)
	}

	var lines []drawn
	colorIdx := 0
	for _, s := range series {
		if s.Series.Len() == 0 {
			continue
		}
		if s.Reference {
			ref := s.Series.LinearReference()
			if ref == nil {
				return nil, fmt.Errorf("sweep %s: no linear reference for a series starting at key %v", s.Series.Name, s.Series.Keys[0])
			}
			lines = append(lines, drawn{
				sweep:     s.Series.Name,
				reference: true,
				label:     s.ReferenceLabel,
				width:     referenceLW,
				xs:        s.Series.Keys,
				ys:        ref,
				style:     mappings.GetStyle(colorIdx),
			})
			colorIdx++
		}
		lines = append(lines, drawn{
			sweep:  s.Series.Name,
			label:  s.Label,
			marker: s.Marker,
			dashed: s.Dashed,
			width:  s.Width,
			xs:     s.Series.Keys,
			ys:     s.Series.Values,
			style:  mappings.GetStyle(colorIdx),
		})
		colorIdx++
	}
	return lines, nil
}

// limits follows the first measured series: x to 1.01 times its last key and
// y to 1.10 times its last value unless YMax is fixed.
func limits(spec ChartSpec, lines []drawn) (xMax, yMax float64) {
	for _, l := range lines {
		if l.reference {
			continue
		}
		lastKey, lastValue := results.Series{Keys: l.xs, Values: l.ys}.Last()
		xMax = xHeadroom * lastKey
		yMax = yHeadroom * lastValue
		break
	}
	if spec.YMax > 0 {
		yMax = spec.YMax
	}
	return xMax, yMax
}

// Build assembles the gonum plot without writing it.
func (g *ScalingPlotGenerator) Build(spec ChartSpec, series []StyledSeries) (*plot.Plot, error) {
	lines, err := expand(series)
	if err != nil {
		return nil, err
	}
	return g.build(spec, lines)
}

func (g *ScalingPlotGenerator) build(spec ChartSpec, lines []drawn) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(titleFontSize)
	p.X.Label.Text = spec.XLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(titleFontSize)
	p.Y.Label.Text = spec.YLabel
	p.Y.Label.TextStyle.Font.Size = vg.Points(titleFontSize)
	p.X.Tick.Label.Font.Size = vg.Points(tickFontSize)
	p.Y.Tick.Label.Font.Size = vg.Points(tickFontSize)

	labelled := false
	for _, l := range lines {
		pts := make(plotter.XYs, len(l.xs))
		for i := range l.xs {
			pts[i].X = l.xs[i]
			pts[i].Y = l.ys[i]
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("sweep %s: %w", l.sweep, err)
		}
		line.Color = l.style.Color
		line.Width = vg.Points(l.width)
		if l.dashed {
			line.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		}
		p.Add(line)

		thumbs := []plot.Thumbnailer{line}
		if glyph, ok := mappings.GlyphFor(l.marker); ok {
			scatter, err := plotter.NewScatter(pts)
			if err != nil {
				return nil, fmt.Errorf("sweep %s: %w", l.sweep, err)
			}
			scatter.Color = l.style.Color
			scatter.Radius = vg.Points(markerRadius)
			scatter.Shape = glyph
			p.Add(scatter)
			thumbs = append(thumbs, scatter)
		}

		if l.label != "" {
			p.Legend.Add(l.label, thumbs...)
			labelled = true
		}
	}

	if labelled {
		p.Legend.Top = true
		p.Legend.Left = true
	}

	if len(spec.XTicks) > 0 {
		ticks := make([]plot.Tick, len(spec.XTicks))
		for i, v := range spec.XTicks {
			ticks[i] = plot.Tick{Value: v, Label: formatTick(v)}
		}
		p.X.Tick.Marker = plot.ConstantTicks(ticks)
	}

	xMax, yMax := limits(spec, lines)
	p.X.Min = 0
	if xMax > 0 {
		p.X.Max = xMax
	}
	p.Y.Min = 0
	if yMax > 0 {
		p.Y.Max = yMax
	}

	return p, nil
}

func (g *ScalingPlotGenerator) writeImage(spec ChartSpec, lines []drawn, format string) (string, error) {
	p, err := g.build(spec, lines)
	if err != nil {
		return "", err
	}

	wt, err := p.WriterTo(vg.Length(spec.Width)*vg.Inch, vg.Length(spec.Height)*vg.Inch, format)
	if err != nil {
		return "", fmt.Errorf("failed to create %s canvas: %w", format, err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", format, err)
	}

	data := buf.Bytes()
	if format == "eps" {
		data = stripCreationDate(data)
	}

	path := filepath.Join(spec.OutputDir, spec.Basename+"."+format)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	g.logger.WithField("file", path).Debug("Wrote chart")
	return path, nil
}

// stripCreationDate drops the PostScript creation timestamp so that identical
// inputs give byte-identical files.
func stripCreationDate(data []byte) []byte {
	var out bytes.Buffer
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for scanner.Scan() {
		line := scanner.Bytes()
		if bytes.HasPrefix(line, []byte("%%CreationDate")) {
			continue
		}
		out.Write(line)
		out.WriteByte('\n')
	}
	return out.Bytes()
}

func (g *ScalingPlotGenerator) writeTikz(spec ChartSpec, lines []drawn) ([]string, error) {
	plotOutput, wrapperOutput, err := g.renderTikz(spec, lines)
	if err != nil {
		return nil, err
	}

	plotPath := filepath.Join(spec.OutputDir, spec.Basename+".tikz")
	if err := os.WriteFile(plotPath, []byte(plotOutput), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", plotPath, err)
	}
	wrapperPath := filepath.Join(spec.OutputDir, spec.Basename+".tex")
	if err := os.WriteFile(wrapperPath, []byte(wrapperOutput), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", wrapperPath, err)
	}
	return []string{plotPath, wrapperPath}, nil
}

// GenerateTikz returns the pgfplots picture and its LaTeX figure wrapper.
func (g *ScalingPlotGenerator) GenerateTikz(spec ChartSpec, series []StyledSeries) (string, string, error) {
	lines, err := expand(series)
	if err != nil {
		return "", "", err
	}
	return g.renderTikz(spec, lines)
}

func (g *ScalingPlotGenerator) renderTikz(spec ChartSpec, lines []drawn) (string, string, error) {
	plotData := g.preparePlotData(spec, lines)
	wrapperData := &wrapperTemplate.WrapperData{
		Name:         spec.Name,
		Checksum:     spec.Checksum,
		PlotFileName: spec.Basename + ".tikz",
		ShortCaption: spec.Title,
		Caption:      spec.Description,
	}
	if wrapperData.Caption == "" {
		wrapperData.Caption = spec.Title
	}

	plotOutput, err := execute("plot", plotTemplate.PlotTemplate, plotData)
	if err != nil {
		return "", "", fmt.Errorf("failed to render plot: %w", err)
	}
	wrapperOutput, err := execute("wrapper", wrapperTemplate.WrapperTemplate, wrapperData)
	if err != nil {
		return "", "", fmt.Errorf("failed to render wrapper: %w", err)
	}
	return plotOutput, wrapperOutput, nil
}

func (g *ScalingPlotGenerator) preparePlotData(spec ChartSpec, lines []drawn) *plotTemplate.PlotData {
	xMax, yMax := limits(spec, lines)

	data := &plotTemplate.PlotData{
		Name:        spec.Name,
		Description: spec.Description,
		Checksum:    spec.Checksum,
		Title:       spec.Title,
		XLabel:      spec.XLabel,
		YLabel:      spec.YLabel,
		XMin:        "0",
		XMax:        fmt.Sprintf("%.4f", xMax),
		YMin:        "0",
	}
	if yMax > 0 {
		data.YMax = fmt.Sprintf("%.4f", yMax)
	}

	ticks := make([]string, len(spec.XTicks))
	for i, v := range spec.XTicks {
		ticks[i] = formatTick(v)
	}
	data.XTicks = strings.Join(ticks, ",")

	for _, l := range lines {
		style := mappings.TikzOptions(l.style, l.marker, l.dashed, l.width)
		if l.label == "" {
			style += ",forget plot"
		}
		series := plotTemplate.PlotSeries{
			SweepName:   l.sweep,
			Reference:   l.reference,
			Points:      len(l.xs),
			Style:       style,
			LegendEntry: l.label,
		}
		for i := range l.xs {
			series.Coordinates = append(series.Coordinates, fmt.Sprintf("(%.6f,%.6f)", l.xs[i], l.ys[i]))
		}
		data.Plots = append(data.Plots, series)
	}
	return data
}

func execute(name, text string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s template: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", name, err)
	}
	return buf.String(), nil
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
