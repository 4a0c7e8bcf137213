package models

// Crosstab is a count matrix of co-occurring values between two columns.
// Counts[i][j] is the number of rows with Rows[i] and Cols[j].
type Crosstab struct {
	RowColumn Column
	ColColumn Column
	Rows      []string
	Cols      []string
	Counts    [][]int
}

// RowTotal returns the sum of row i.
func (c *Crosstab) RowTotal(i int) int {
	total := 0
	for _, n := range c.Counts[i] {
		total += n
	}
	return total
}

// Percentages is a row-normalized Crosstab; each non-empty row sums to 100.
type Percentages struct {
	Rows   []string
	Cols   []string
	Values [][]float64
}

// Count is one entry of a value-count ranking.
type Count struct {
	Label string
	Count int
}

// GroupStat is the mean ticket and number of priced rows for one group.
type GroupStat struct {
	Label string
	Mean  float64
	Count int
}

// Report holds every aggregate derived from the cleaned survey.
type Report struct {
	TotalResponses int

	AgeByFrequency *Crosstab
	AgeByPayment   *Crosstab
	AgeByProduct   *Crosstab

	PlaceCounts   []Count // ascending
	ProductCounts []Count // ascending

	AvgTicketByPlace   []GroupStat // ascending by mean
	AvgTicketByProduct []GroupStat // descending by mean

	PaymentShareByAge *Percentages

	TicketValues    []float64
	FrequencyValues []float64
}
