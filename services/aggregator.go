package services

import (
	"sort"

	"wine-analysis/models"
	"wine-analysis/utils"
)

// Aggregator derives the report aggregates from a cleaned table.
type Aggregator struct {
	logger *utils.Logger
}

func NewAggregator(logger *utils.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Build computes every aggregate used by the charts and the console report.
func (a *Aggregator) Build(table *models.ResponseTable) *models.Report {
	rs := table.Responses
	report := &models.Report{
		TotalResponses: len(rs),

		AgeByFrequency: Crosstab(rs, models.ColAge, models.ColFrequency),
		AgeByPayment:   Crosstab(rs, models.ColAge, models.ColPaymentMode),
		AgeByProduct:   Crosstab(rs, models.ColAge, models.ColAdditionalProducts),

		PlaceCounts:   ValueCounts(rs, models.ColPlace),
		ProductCounts: ValueCounts(rs, models.ColAdditionalProducts),

		AvgTicketByPlace:   GroupMean(rs, models.ColPlace),
		AvgTicketByProduct: GroupMeanCount(rs, models.ColAdditionalProducts),

		TicketValues:    TicketValues(rs),
		FrequencyValues: FrequencyValues(rs),
	}
	report.PaymentShareByAge = RowPercentages(report.AgeByPayment)

	a.logger.Info("[aggregator] %d responses: %d age groups, %d places, %d products",
		report.TotalResponses, len(report.AgeByPayment.Rows), len(report.PlaceCounts), len(report.ProductCounts))
	return report
}

// Crosstab counts co-occurrences of row and col values. Labels are sorted;
// rows missing either column are skipped.
func Crosstab(rs []*models.Response, row, col models.Column) *models.Crosstab {
	rowIdx := make(map[string]int)
	colIdx := make(map[string]int)
	for _, r := range rs {
		if r.IsMissing(row) || r.IsMissing(col) {
			continue
		}
		rv, cv := r.Value(row), r.Value(col)
		rowIdx[rv] = 0
		colIdx[cv] = 0
	}

	ct := &models.Crosstab{
		RowColumn: row,
		ColColumn: col,
		Rows:      sortedKeys(rowIdx),
		Cols:      sortedKeys(colIdx),
	}
	for i, label := range ct.Rows {
		rowIdx[label] = i
	}
	for j, label := range ct.Cols {
		colIdx[label] = j
	}

	ct.Counts = make([][]int, len(ct.Rows))
	for i := range ct.Counts {
		ct.Counts[i] = make([]int, len(ct.Cols))
	}
	for _, r := range rs {
		if r.IsMissing(row) || r.IsMissing(col) {
			continue
		}
		rv, cv := r.Value(row), r.Value(col)
		ct.Counts[rowIdx[rv]][colIdx[cv]]++
	}
	return ct
}

// ValueCounts returns one entry per distinct non-missing value of col, smallest
// count first. Ties are ordered so that reading the slice backwards gives the
// descending ranking with labels in ascending order.
func ValueCounts(rs []*models.Response, col models.Column) []models.Count {
	counts := make(map[string]int)
	for _, r := range rs {
		if !r.IsMissing(col) {
			counts[r.Value(col)]++
		}
	}

	out := make([]models.Count, 0, len(counts))
	for label, n := range counts {
		out = append(out, models.Count{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count < out[j].Count
		}
		return out[i].Label > out[j].Label
	})
	return out
}

// GroupMean returns the mean ticket per distinct value of col, ascending.
func GroupMean(rs []*models.Response, col models.Column) []models.GroupStat {
	stats := groupTickets(rs, col)
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Mean < stats[j].Mean
	})
	return stats
}

// GroupMeanCount returns mean and count of priced rows per distinct value of
// col, descending by mean.
func GroupMeanCount(rs []*models.Response, col models.Column) []models.GroupStat {
	stats := groupTickets(rs, col)
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Mean > stats[j].Mean
	})
	return stats
}

// groupTickets averages tickets per group in label order. Groups with no
// priced row are dropped.
func groupTickets(rs []*models.Response, col models.Column) []models.GroupStat {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range rs {
		if r.IsMissing(col) || !r.HasTicket() {
			continue
		}
		v := r.Value(col)
		sums[v] += r.Ticket
		counts[v]++
	}

	stats := make([]models.GroupStat, 0, len(counts))
	for _, label := range sortedKeys(counts) {
		stats = append(stats, models.GroupStat{
			Label: label,
			Mean:  sums[label] / float64(counts[label]),
			Count: counts[label],
		})
	}
	return stats
}

// RowPercentages divides each row of ct by its total and scales to 100.
// A row with a zero total is reported as all zeros.
func RowPercentages(ct *models.Crosstab) *models.Percentages {
	p := &models.Percentages{
		Rows:   append([]string(nil), ct.Rows...),
		Cols:   append([]string(nil), ct.Cols...),
		Values: make([][]float64, len(ct.Rows)),
	}
	for i := range ct.Rows {
		p.Values[i] = make([]float64, len(ct.Cols))
		total := ct.RowTotal(i)
		if total == 0 {
			continue
		}
		for j, n := range ct.Counts[i] {
			p.Values[i][j] = float64(n) / float64(total) * 100
		}
	}
	return p
}

// TicketValues returns every present ticket value in row order.
func TicketValues(rs []*models.Response) []float64 {
	out := make([]float64, 0, len(rs))
	for _, r := range rs {
		if r.HasTicket() {
			out = append(out, r.Ticket)
		}
	}
	return out
}

// FrequencyValues returns Freq_num for rows where it is set.
func FrequencyValues(rs []*models.Response) []float64 {
	out := make([]float64, 0, len(rs))
	for _, r := range rs {
		if r.FreqKnown {
			out = append(out, float64(r.FreqNum))
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
