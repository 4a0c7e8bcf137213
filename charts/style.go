package charts

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Size is a figure size.
type Size struct {
	Width  vg.Length
	Height vg.Length
}

var (
	// PageSize is the full-width figure used for stacked charts.
	PageSize = Size{Width: 12 * vg.Inch, Height: 5 * vg.Inch}
	// HalfSize is used for every other chart.
	HalfSize = Size{Width: 8 * vg.Inch, Height: 5 * vg.Inch}
)

// Palette holds the colors used across all charts.
type Palette struct {
	// Categorical returns n distinct series colors.
	Categorical func(n int) []color.Color
	// HeatmapScheme names a sequential ColorBrewer scheme.
	HeatmapScheme string

	TicketFill    color.Color
	TicketEdge    color.Color
	FrequencyFill color.Color
	FrequencyEdge color.Color
	Grid          color.Color
}

// DefaultPalette approximates a husl categorical palette on a white grid.
func DefaultPalette() Palette {
	return Palette{
		Categorical:   evenHues,
		HeatmapScheme: "YlOrRd",
		TicketFill:    color.RGBA{R: 128, G: 128, B: 128, A: 255},
		TicketEdge:    color.White,
		FrequencyFill: color.RGBA{R: 60, G: 179, B: 113, A: 255}, // mediumseagreen
		FrequencyEdge: color.Black,
		Grid:          color.Gray{Y: 225},
	}
}

// evenHues spreads n colors evenly around the hue circle.
func evenHues(n int) []color.Color {
	if n < 1 {
		return nil
	}
	end := float64(n-1) / float64(n)
	return palette.Rainbow(n, 0, palette.Hue(end), 0.65, 0.85, 1).Colors()
}

const (
	titleSize = 14
	titlePad  = 20
	labelSize = 12
)

// newPlot returns a plot with the shared title, axis and grid styling.
func newPlot(title, xLabel, yLabel string, grid color.Color, withGrid bool) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(titleSize)
	p.Title.Padding = vg.Points(titlePad)
	p.X.Label.Text = xLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(labelSize)
	p.Y.Label.Text = yLabel
	p.Y.Label.TextStyle.Font.Size = vg.Points(labelSize)

	if withGrid {
		g := plotter.NewGrid()
		g.Vertical.Color = grid
		g.Horizontal.Color = grid
		p.Add(g)
	}
	return p
}

// barWidth fits n horizontal bars into a figure of the given height.
func barWidth(size Size, n int) vg.Length {
	if n < 1 {
		n = 1
	}
	w := size.Height * 0.6 / vg.Length(n)
	if w < vg.Points(1) {
		w = vg.Points(1)
	}
	return w
}
