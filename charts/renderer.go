package charts

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"wine-analysis/models"
	"wine-analysis/utils"
)

// Output file names, one per chart.
const (
	FileConsumptionByAge = "wine_consumption_by_age.jpg"
	FilePaymentByAge     = "payment_by_age.jpg"
	FilePlacesToDrink    = "places_to_drink.jpg"
	FileAvgTicketByPlace = "avg_ticket_by_place.jpg"
	FilePopularProducts  = "popular_products.jpg"
	FileProductAgeHeat   = "product_age_heatmap.jpg"
	FileTicketHistogram  = "ticket_histogram.jpg"
	FileFreqHistogram    = "frequency_histogram.jpg"
)

// RenderConfig controls where and how charts are drawn.
type RenderConfig struct {
	OutputDir string
	DPI       int
	PageSize  Size
	HalfSize  Size
	Palette   Palette
	Workers   int
}

// DefaultRenderConfig returns the standard figure styling for outputDir.
func DefaultRenderConfig(outputDir string, dpi, workers int) RenderConfig {
	return RenderConfig{
		OutputDir: outputDir,
		DPI:       dpi,
		PageSize:  PageSize,
		HalfSize:  HalfSize,
		Palette:   DefaultPalette(),
		Workers:   workers,
	}
}

// figure is a drawn plot, plus an optional legend placed to its right.
type figure struct {
	plot   *plot.Plot
	legend *sideLegend
}

type chart struct {
	file  string
	size  Size
	build func(size Size) (*figure, error)
}

// Renderer draws the report charts as JPEG files.
type Renderer struct {
	cfg    RenderConfig
	logger *utils.Logger
}

func NewRenderer(cfg RenderConfig, logger *utils.Logger) *Renderer {
	return &Renderer{cfg: cfg, logger: logger}
}

// Files lists every file RenderAll writes, in render order.
func (rd *Renderer) Files(report *models.Report) []string {
	charts := rd.charts(report)
	files := make([]string, len(charts))
	for i, c := range charts {
		files[i] = filepath.Join(rd.cfg.OutputDir, c.file)
	}
	return files
}

// RenderAll writes every chart. The output directory must already exist.
func (rd *Renderer) RenderAll(ctx context.Context, report *models.Report) error {
	info, err := os.Stat(rd.cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("chart: output dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("chart: output dir %q is not a directory", rd.cfg.OutputDir)
	}

	pool := utils.NewWorkerPool(ctx, rd.cfg.Workers)
	for _, c := range rd.charts(report) {
		c := c
		pool.Submit(func(context.Context) error {
			return rd.render(c)
		})
	}
	return pool.Wait()
}

// render builds and saves one chart. A panic from the plotting library is
// returned as an error so it cannot take down other workers.
func (rd *Renderer) render(c chart) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("chart: build %s: panic: %v", c.file, r)
		}
	}()

	fig, err := c.build(c.size)
	if err != nil {
		return fmt.Errorf("chart: build %s: %w", c.file, err)
	}
	path := filepath.Join(rd.cfg.OutputDir, c.file)
	if err := rd.save(path, c.size, fig); err != nil {
		return err
	}
	rd.logger.Info("[renderer] Saved %s", path)
	return nil
}

func (rd *Renderer) charts(r *models.Report) []chart {
	pal := rd.cfg.Palette
	return []chart{
		{FileConsumptionByAge, rd.cfg.PageSize, func(s Size) (*figure, error) {
			return stackedBars(r.AgeByFrequency, s, pal,
				"Wine Consumption Frequency by Age Group", "Number of Customers", "Age Group", "Consumption Frequency")
		}},
		{FilePaymentByAge, rd.cfg.PageSize, func(s Size) (*figure, error) {
			return stackedBars(r.AgeByPayment, s, pal,
				"Payment Method Preferences by Age Group", "Number of Transactions", "Age Group", "Payment Method")
		}},
		{FilePlacesToDrink, rd.cfg.HalfSize, func(s Size) (*figure, error) {
			labels, values := countSeries(r.PlaceCounts)
			return rankedBars(labels, values, s, pal,
				"Most Popular Places to Drink Wine", "Number of Customers", "Place")
		}},
		{FileAvgTicketByPlace, rd.cfg.HalfSize, func(s Size) (*figure, error) {
			labels, values := meanSeries(r.AvgTicketByPlace)
			return rankedBars(labels, values, s, pal,
				"Average Spending by Venue", "Average Ticket Value (€)", "Place")
		}},
		{FilePopularProducts, rd.cfg.HalfSize, func(s Size) (*figure, error) {
			labels, values := countSeries(r.ProductCounts)
			return rankedBars(labels, values, s, pal,
				"Most Popular Additional Products", "Number of Purchases", "Product")
		}},
		{FileProductAgeHeat, rd.cfg.HalfSize, func(Size) (*figure, error) {
			return heatmap(r.AgeByProduct, pal,
				"Product Preferences by Age Group", "Additional Products", "Age Group")
		}},
		{FileTicketHistogram, rd.cfg.HalfSize, func(Size) (*figure, error) {
			return ticketHistogram(r.TicketValues, pal)
		}},
		{FileFreqHistogram, rd.cfg.HalfSize, func(Size) (*figure, error) {
			return frequencyHistogram(r.FrequencyValues, pal)
		}},
	}
}

func (rd *Renderer) save(path string, size Size, fig *figure) error {
	img := vgimg.NewWith(
		vgimg.UseWH(size.Width, size.Height),
		vgimg.UseDPI(rd.cfg.DPI),
		vgimg.UseBackgroundColor(color.White),
	)
	dc := draw.New(img)

	if fig.legend != nil {
		width := fig.legend.width()
		fig.plot.Draw(draw.Crop(dc, 0, -width, 0, 0))
		fig.legend.draw(draw.Crop(dc, dc.Max.X-dc.Min.X-width, 0, 0, 0))
	} else {
		fig.plot.Draw(dc)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("chart: create %q: %w", path, err)
	}
	if _, err := (vgimg.JpegCanvas{Canvas: img}).WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("chart: encode %q: %w", path, err)
	}
	return f.Close()
}

func countSeries(counts []models.Count) ([]string, []float64) {
	labels := make([]string, len(counts))
	values := make([]float64, len(counts))
	for i, c := range counts {
		labels[i] = c.Label
		values[i] = float64(c.Count)
	}
	return labels, values
}

func meanSeries(stats []models.GroupStat) ([]string, []float64) {
	labels := make([]string, len(stats))
	values := make([]float64, len(stats))
	for i, s := range stats {
		labels[i] = s.Label
		values[i] = s.Mean
	}
	return labels, values
}

// legendGap separates the plot area from a side legend.
const legendGap = vg.Length(10)
