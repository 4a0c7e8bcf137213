package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wine-analysis/models"
)

func sampleResponses() []*models.Response {
	return []*models.Response{
		{Ticket: 5, Age: "18-24", Place: "Bar", PaymentMode: "Card", AdditionalProducts: "Cheese", Frequency: "Once per month", FreqNum: 1, FreqKnown: true},
		{Ticket: 7.5, Age: "18-24", Place: "Restaurant", PaymentMode: "Cash", AdditionalProducts: "Bread", Frequency: "Once per day", FreqNum: 7, FreqKnown: true},
		{Ticket: 10, Age: "25-34", Place: "Bar", PaymentMode: "Card", AdditionalProducts: "Cheese", Frequency: "Never"},
		{Ticket: 20, Age: "35-44", Place: "Home", PaymentMode: "Card", AdditionalProducts: "None", Frequency: "Once per month", FreqNum: 1, FreqKnown: true},
		{Ticket: math.NaN(), Age: "35-44", Place: "Bar", PaymentMode: "Cash", AdditionalProducts: "Cheese", Frequency: "Once per day", FreqNum: 7, FreqKnown: true},
		{Ticket: 4, PaymentMode: "Card", AdditionalProducts: "Bread",
			Missing: models.ColumnSet{models.ColAge: true, models.ColPlace: true}},
	}
}

func TestCrosstab(t *testing.T) {
	ct := Crosstab(sampleResponses(), models.ColAge, models.ColPaymentMode)

	assert.Equal(t, []string{"18-24", "25-34", "35-44"}, ct.Rows)
	assert.Equal(t, []string{"Card", "Cash"}, ct.Cols)
	assert.Equal(t, [][]int{{1, 1}, {1, 0}, {1, 1}}, ct.Counts)
	assert.Equal(t, 2, ct.RowTotal(0))
}

func TestValueCounts(t *testing.T) {
	rs := sampleResponses()
	counts := ValueCounts(rs, models.ColPlace)

	require.Len(t, counts, 3)
	assert.Equal(t, []models.Count{
		{Label: "Restaurant", Count: 1},
		{Label: "Home", Count: 1},
		{Label: "Bar", Count: 3},
	}, counts)

	total := 0
	for _, c := range counts {
		total += c.Count
	}
	assert.Equal(t, 5, total, "counts sum to the non-missing rows")
}

func TestGroupMean(t *testing.T) {
	stats := GroupMean(sampleResponses(), models.ColPlace)

	require.Len(t, stats, 3)
	assert.Equal(t, "Bar", stats[0].Label, "equal means keep label order")
	assert.InDelta(t, 7.5, stats[0].Mean, 1e-9, "NaN tickets are skipped")
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, "Restaurant", stats[1].Label)
	assert.InDelta(t, 7.5, stats[1].Mean, 1e-9)
	assert.Equal(t, "Home", stats[2].Label)
}

func TestGroupMeanCount(t *testing.T) {
	stats := GroupMeanCount(sampleResponses(), models.ColAdditionalProducts)

	require.Len(t, stats, 3)
	assert.Equal(t, models.GroupStat{Label: "None", Mean: 20, Count: 1}, stats[0])
	assert.Equal(t, "Cheese", stats[1].Label)
	assert.InDelta(t, 7.5, stats[1].Mean, 1e-9)
	assert.Equal(t, 2, stats[1].Count)
	assert.Equal(t, models.GroupStat{Label: "Bread", Mean: 5.75, Count: 2}, stats[2])
}

func TestRowPercentages(t *testing.T) {
	ct := Crosstab(sampleResponses(), models.ColAge, models.ColPaymentMode)
	p := RowPercentages(ct)

	assert.Equal(t, ct.Rows, p.Rows)
	assert.Equal(t, ct.Cols, p.Cols)
	assert.InDeltaSlice(t, []float64{100, 0}, p.Values[1], 1e-9)
	for i, row := range p.Values {
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		assert.InDelta(t, 100, sum, 1e-9, "row %s", p.Rows[i])
	}
}

func TestRowPercentagesZeroRow(t *testing.T) {
	ct := &models.Crosstab{
		Rows:   []string{"a", "b"},
		Cols:   []string{"x", "y"},
		Counts: [][]int{{0, 0}, {1, 3}},
	}
	p := RowPercentages(ct)

	assert.Equal(t, []float64{0, 0}, p.Values[0])
	assert.InDeltaSlice(t, []float64{25, 75}, p.Values[1], 1e-9)
}

func TestDistributions(t *testing.T) {
	rs := sampleResponses()
	assert.Equal(t, []float64{5, 7.5, 10, 20, 4}, TicketValues(rs))
	assert.Equal(t, []float64{1, 7, 1, 7}, FrequencyValues(rs), "unset Freq_num is excluded")
}

func TestBuildThreeRowScenario(t *testing.T) {
	table := &models.ResponseTable{Responses: []*models.Response{
		{RawTicket: "5,00", Age: "18-24", Place: "Bar"},
		{RawTicket: "7,50", Age: "18-24", Place: "Restaurant"},
		{RawTicket: "10,00", Age: "25-34", Place: "Bar"},
	}}
	require.NoError(t, NewCleaner(newTestLogger()).Clean(table))

	report := NewAggregator(newTestLogger()).Build(table)
	assert.Equal(t, 3, report.TotalResponses)
	require.Len(t, report.AvgTicketByPlace, 2)
	for _, s := range report.AvgTicketByPlace {
		assert.InDelta(t, 7.50, s.Mean, 1e-9, s.Label)
	}
	assert.Equal(t, []models.Count{{Label: "Restaurant", Count: 1}, {Label: "Bar", Count: 2}}, report.PlaceCounts)
	assert.Empty(t, report.FrequencyValues)
	assert.Len(t, report.TicketValues, 3)
}

func TestWhitespaceOnlyCellIsEmptyCategory(t *testing.T) {
	table := &models.ResponseTable{Responses: []*models.Response{
		{RawTicket: "5,00", Age: "18-24", Place: "   "},
		{RawTicket: "6,00", Age: "18-24", Place: "Bar"},
		{RawTicket: "7,00", Age: "18-24", Missing: models.ColumnSet{models.ColPlace: true}},
	}}
	require.NoError(t, NewCleaner(newTestLogger()).Clean(table))
	assert.Equal(t, "", table.Responses[0].Place)

	counts := ValueCounts(table.Responses, models.ColPlace)
	assert.Equal(t, []models.Count{{Label: "Bar", Count: 1}, {Label: "", Count: 1}}, counts)

	stats := GroupMean(table.Responses, models.ColPlace)
	require.Len(t, stats, 2)
	assert.Equal(t, models.GroupStat{Label: "", Mean: 5, Count: 1}, stats[0])

	ct := Crosstab(table.Responses, models.ColAge, models.ColPlace)
	assert.Equal(t, []string{"", "Bar"}, ct.Cols)
	assert.Equal(t, [][]int{{1, 1}}, ct.Counts)
}
