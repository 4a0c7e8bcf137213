package charts

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"wine-analysis/models"
)

// stackedBars draws one horizontal bar per crosstab row, stacked by column.
func stackedBars(ct *models.Crosstab, size Size, pal Palette, title, xLabel, yLabel, legendTitle string) (*figure, error) {
	p := newPlot(title, xLabel, yLabel, pal.Grid, true)
	if len(ct.Rows) == 0 || len(ct.Cols) == 0 {
		return &figure{plot: p}, nil
	}
	leg := newSideLegend(legendTitle)

	colors := pal.Categorical(len(ct.Cols))
	width := barWidth(size, len(ct.Rows))

	var below *plotter.BarChart
	for j, name := range ct.Cols {
		vals := make(plotter.Values, len(ct.Rows))
		for i := range ct.Rows {
			vals[i] = float64(ct.Counts[i][j])
		}
		bars, err := plotter.NewBarChart(vals, width)
		if err != nil {
			return nil, err
		}
		bars.Horizontal = true
		bars.Color = colors[j]
		bars.LineStyle.Width = 0
		if below != nil {
			bars.StackOn(below)
		}
		p.Add(bars)
		leg.add(name, bars)
		below = bars
	}

	p.NominalY(ct.Rows...)
	return &figure{plot: p, legend: leg}, nil
}

// rankedBars draws a single horizontal bar series; the last value ends up on top.
func rankedBars(labels []string, values []float64, size Size, pal Palette, title, xLabel, yLabel string) (*figure, error) {
	p := newPlot(title, xLabel, yLabel, pal.Grid, true)
	if len(values) == 0 {
		return &figure{plot: p}, nil
	}

	bars, err := plotter.NewBarChart(plotter.Values(values), barWidth(size, len(values)))
	if err != nil {
		return nil, err
	}
	bars.Horizontal = true
	bars.Color = pal.Categorical(1)[0]
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalY(labels...)
	return &figure{plot: p}, nil
}

// sideLegend is a titled legend drawn beside the plot instead of over it.
type sideLegend struct {
	title  string
	names  []string
	legend plot.Legend
}

func newSideLegend(title string) *sideLegend {
	l := plot.NewLegend()
	l.Top = true
	l.Left = true
	return &sideLegend{title: title, legend: l}
}

func (s *sideLegend) add(name string, thumb plot.Thumbnailer) {
	s.names = append(s.names, name)
	s.legend.Add(name, thumb)
}

// width is the horizontal space the legend needs, gap included.
func (s *sideLegend) width() vg.Length {
	sty := s.legend.TextStyle
	w := sty.Width(s.title)
	for _, n := range s.names {
		if nw := sty.Width(n) + s.legend.ThumbnailWidth + s.legend.Padding; nw > w {
			w = nw
		}
	}
	return w + 2*legendGap
}

func (s *sideLegend) draw(c draw.Canvas) {
	c = draw.Crop(c, legendGap, 0, 0, -vg.Points(titleSize+titlePad))

	sty := s.legend.TextStyle
	sty.XAlign = draw.XLeft
	sty.YAlign = draw.YTop
	c.FillText(sty, vg.Point{X: c.Min.X, Y: c.Max.Y}, s.title)

	body := draw.Crop(c, 0, 0, 0, -(sty.Height(s.title) + vg.Points(4)))
	s.legend.Draw(body)
}
