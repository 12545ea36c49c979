package templates

const WrapperTemplate = `% Figure: {{.Name}}
% Config checksum: {{.Checksum}}
\begin{center}
    \begin{figure}[H]
    \centering
    \resizebox{1\linewidth}{!}{\input{./{{.PlotFileName}} }}
    \caption[{{.ShortCaption}}]{ {{.Caption}} }
    \label{fig:scaling-{{.Name}}}
    \end{figure}
\end{center}
`

type WrapperData struct {
	Name         string
	Checksum     string
	PlotFileName string
	ShortCaption string
	Caption      string
}
