package templates

const PlotTemplate = `% Figure: {{.Name}}
% Description: {{.Description}}
% Config checksum: {{.Checksum}}
%
{{range .Plots}}% Sweep {{.SweepName}}: {{.Points}} points{{if .Reference}} (linear reference){{end}}
{{end}}%
\begin{tikzpicture}
	\begin{axis}[
		title={ {{.Title}} },
		xlabel={ {{.XLabel}} },
		ylabel={ {{.YLabel}} },
		width=\textwidth,
		height=0.75\textwidth,
		xmin={{.XMin}}, xmax={{.XMax}},
		ymin={{.YMin}}{{if .YMax}}, ymax={{.YMax}}{{end}},
{{- if .XTicks}}
		xtick={ {{.XTicks}} },
{{- end}}
		ymajorgrids,
		grid style=dashed,
		legend pos=north west,
		legend cell align=left,
	]

{{range .Plots}}% addplot source: figure={{$.Name}} sweep={{.SweepName}}
\addplot[{{.Style}}]
  coordinates {
{{range .Coordinates}}    {{.}}
{{end}}  };
{{if .LegendEntry}}\addlegendentry{ {{.LegendEntry}} }
{{end}}
{{end}}	\end{axis}
\end{tikzpicture}
`

type PlotData struct {
	Name        string
	Description string
	Checksum    string
	Title       string
	XLabel      string
	YLabel      string
	XMin        string
	XMax        string
	YMin        string
	YMax        string
	XTicks      string
	Plots       []PlotSeries
}

type PlotSeries struct {
	SweepName   string
	Reference   bool
	Points      int
	Style       string
	LegendEntry string
	Coordinates []string
}
