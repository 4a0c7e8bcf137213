package charts

import (
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	ticketBins = 20
	// freqBarWidth is the bar width of the ordinal histogram, in scale units.
	freqBarWidth = 0.8
	freqMin      = 1
	freqMax      = 7
)

func ticketHistogram(values []float64, pal Palette) (*figure, error) {
	p := newPlot("Distribution of Ticket Values", "Ticket Value (€)", "Number of Purchases", pal.Grid, true)
	if len(values) == 0 {
		return &figure{plot: p}, nil
	}

	h, err := plotter.NewHist(plotter.Values(values), ticketBins)
	if err != nil {
		return nil, err
	}
	h.FillColor = pal.TicketFill
	h.LineStyle.Color = pal.TicketEdge
	p.Add(h)
	return &figure{plot: p}, nil
}

// frequencyHistogram draws one bar per ordinal value from 1 to 7. The scale
// has no 6, so that slot stays empty.
func frequencyHistogram(values []float64, pal Palette) (*figure, error) {
	p := newPlot("Wine Consumption Frequency Distribution", "Frequency (higher = more often)", "Number of Customers", pal.Grid, true)

	counts := make(map[int]float64)
	for _, v := range values {
		counts[int(v)]++
	}

	bins := make([]plotter.HistogramBin, 0, freqMax-freqMin+1)
	ticks := make([]plot.Tick, 0, freqMax-freqMin+1)
	for v := freqMin; v <= freqMax; v++ {
		bins = append(bins, plotter.HistogramBin{
			Min:    float64(v) - freqBarWidth/2,
			Max:    float64(v) + freqBarWidth/2,
			Weight: counts[v],
		})
		ticks = append(ticks, plot.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}

	p.Add(&plotter.Histogram{
		Bins:      bins,
		Width:     freqBarWidth,
		FillColor: pal.FrequencyFill,
		LineStyle: draw.LineStyle{Color: pal.FrequencyEdge, Width: vg.Points(1)},
	})
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	return &figure{plot: p}, nil
}
