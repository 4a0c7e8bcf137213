package charts

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"wine-analysis/models"
)

// crosstabGrid exposes a Crosstab as a plotter.GridXYZ with the first row on top.
type crosstabGrid struct {
	ct *models.Crosstab
}

func (g crosstabGrid) Dims() (c, r int) { return len(g.ct.Cols), len(g.ct.Rows) }

func (g crosstabGrid) Z(c, r int) float64 { return float64(g.count(c, r)) }

func (g crosstabGrid) X(c int) float64 { return float64(c) }

func (g crosstabGrid) Y(r int) float64 { return float64(r) }

func (g crosstabGrid) count(c, r int) int {
	return g.ct.Counts[len(g.ct.Rows)-1-r][c]
}

// rowLabels returns row labels bottom to top.
func (g crosstabGrid) rowLabels() []string {
	n := len(g.ct.Rows)
	out := make([]string, n)
	for i, l := range g.ct.Rows {
		out[n-1-i] = l
	}
	return out
}

// heatmap draws ct as colored cells annotated with their counts.
func heatmap(ct *models.Crosstab, pal Palette, title, xLabel, yLabel string) (*figure, error) {
	p := newPlot(title, xLabel, yLabel, pal.Grid, false)
	if len(ct.Rows) == 0 || len(ct.Cols) == 0 {
		return &figure{plot: p}, nil
	}

	scheme, err := brewer.GetPalette(brewer.TypeSequential, pal.HeatmapScheme, 9)
	if err != nil {
		return nil, fmt.Errorf("heatmap palette %q: %w", pal.HeatmapScheme, err)
	}

	grid := crosstabGrid{ct: ct}
	hm := plotter.NewHeatMap(grid, scheme)
	if hm.Max == hm.Min {
		hm.Max = hm.Min + 1
	}
	p.Add(hm)

	cols, rows := grid.Dims()
	xys := make(plotter.XYs, 0, cols*rows)
	texts := make([]string, 0, cols*rows)
	dark := make([]bool, 0, cols*rows)
	mid := (hm.Min + hm.Max) / 2
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			xys = append(xys, plotter.XY{X: grid.X(c), Y: grid.Y(r)})
			texts = append(texts, strconv.Itoa(grid.count(c, r)))
			dark = append(dark, grid.Z(c, r) > mid)
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
		if dark[i] {
			labels.TextStyle[i].Color = color.White
		}
	}
	p.Add(labels)

	p.NominalX(ct.Cols...)
	p.NominalY(grid.rowLabels()...)
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return &figure{plot: p}, nil
}
