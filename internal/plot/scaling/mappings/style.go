package mappings

import (
	"image/color"

	"gonum.org/v1/plot/vg/draw"
)

// PlotStyle pairs an image color with its pgfplots counterpart.
type PlotStyle struct {
	Color     color.RGBA
	TikzColor string
}

// Palette follows the default matplotlib cycle so charts keep the colors
// readers of earlier scaling figures are used to.
var Palette = []PlotStyle{
	{Color: color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, TikzColor: "blue!70!black"},
	{Color: color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}, TikzColor: "orange"},
	{Color: color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}, TikzColor: "green!60!black"},
	{Color: color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}, TikzColor: "red!80!black"},
	{Color: color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff}, TikzColor: "violet"},
	{Color: color.RGBA{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff}, TikzColor: "brown"},
	{Color: color.RGBA{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff}, TikzColor: "magenta"},
	{Color: color.RGBA{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff}, TikzColor: "gray"},
	{Color: color.RGBA{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff}, TikzColor: "olive"},
	{Color: color.RGBA{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff}, TikzColor: "cyan"},
}

func GetStyle(index int) PlotStyle {
	if index < 0 {
		index = 0
	}
	return Palette[index%len(Palette)]
}

// GlyphFor maps a marker name to a gonum glyph. ok is false for "none" or "".
func GlyphFor(marker string) (draw.GlyphDrawer, bool) {
	switch marker {
	case "circle":
		return draw.CircleGlyph{}, true
	case "square":
		return draw.SquareGlyph{}, true
	case "triangle":
		return draw.TriangleGlyph{}, true
	case "cross":
		return draw.CrossGlyph{}, true
	default:
		return nil, false
	}
}

// TikzMark maps a marker name to a pgfplots mark.
func TikzMark(marker string) string {
	switch marker {
	case "circle":
		return "*"
	case "square":
		return "square*"
	case "triangle":
		return "triangle*"
	case "cross":
		return "x"
	default:
		return ""
	}
}

// TikzOptions builds the \addplot option list for a series.
func TikzOptions(style PlotStyle, marker string, dashed bool, width float64) string {
	options := style.TikzColor
	if dashed {
		options += ",dashed"
	} else {
		options += ",solid"
	}
	if width >= 3 {
		options += ",ultra thick"
	} else {
		options += ",thick"
	}
	if mark := TikzMark(marker); mark != "" {
		options += ",mark=" + mark + ",mark options={solid,fill=" + style.TikzColor + "}"
	} else {
		options += ",mark=none"
	}
	return options
}
