package services

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wine-analysis/models"
	"wine-analysis/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLoggerTo(&bytes.Buffer{}) }

func TestParseTicket(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"12,50", 12.50},
		{" 8,00 ", 8.00},
		{"€5,00", 5},
		{"€ 7,5", 7.5},
		{"10", 10},
		{"€1,234,56", 1234.56},
		{" 3,20\t", 3.20},
	}

	for _, tt := range tests {
		got, err := ParseTicket(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.InDelta(t, tt.want, got, 1e-9, "ParseTicket(%q)", tt.raw)
	}
}

func TestParseTicketEmptyIsMissing(t *testing.T) {
	for _, raw := range []string{"", "  ", "€"} {
		got, err := ParseTicket(raw)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(got), "ParseTicket(%q) should be NaN", raw)
	}
}

func TestParseTicketInvalid(t *testing.T) {
	for _, raw := range []string{"free", "12,5a", "$", "NaN", "1.234,56"} {
		_, err := ParseTicket(raw)
		assert.Error(t, err, "ParseTicket(%q)", raw)
	}
}

func rawTable() *models.ResponseTable {
	return &models.ResponseTable{Responses: []*models.Response{
		{RawTicket: "€5,00", Age: " 18-24", Place: "Bar ", Frequency: " Once per day ", PaymentMode: "Card", Gender: "F ", Education: " Uni", AdditionalProducts: " Cheese."},
		{RawTicket: " 7,50 ", Age: "18-24 ", Place: " Restaurant", Frequency: "5 to 6 times per week"},
		{RawTicket: "10,00", Age: "25-34", Place: "Bar", Frequency: "Rarely"},
	}}
}

func TestCleanerCleansInPlace(t *testing.T) {
	table := rawTable()
	first := table.Responses[0]

	require.NoError(t, NewCleaner(newTestLogger()).Clean(table))
	require.Equal(t, 3, table.Len())
	assert.Same(t, first, table.Responses[0])

	assert.Equal(t, 5.0, first.Ticket)
	assert.Equal(t, "18-24", first.Age)
	assert.Equal(t, "Bar", first.Place)
	assert.Equal(t, "F", first.Gender)
	assert.Equal(t, "Uni", first.Education)
	assert.Equal(t, "Cheese.", first.AdditionalProducts, "punctuation is not normalized")
	assert.Equal(t, 7, first.FreqNum)
	assert.True(t, first.FreqKnown)

	assert.Equal(t, 7.5, table.Responses[1].Ticket)
	assert.Equal(t, 5, table.Responses[1].FreqNum)
}

func TestCleanerUnmappedFrequencyStaysUnset(t *testing.T) {
	table := rawTable()
	require.NoError(t, NewCleaner(newTestLogger()).Clean(table))

	r := table.Responses[2]
	assert.False(t, r.FreqKnown)
	assert.Equal(t, 0, r.FreqNum)
	assert.Equal(t, "Rarely", r.Frequency)
}

func TestCleanerIsIdempotentOnCategoricals(t *testing.T) {
	table := rawTable()
	c := NewCleaner(newTestLogger())
	require.NoError(t, c.Clean(table))

	before := make([]string, 0)
	for _, r := range table.Responses {
		for _, col := range models.CategoricalColumns {
			before = append(before, r.Value(col))
		}
	}

	for _, r := range table.Responses {
		r.RawTicket = "1,00"
	}
	require.NoError(t, c.Clean(table))

	after := make([]string, 0)
	for _, r := range table.Responses {
		for _, col := range models.CategoricalColumns {
			after = append(after, r.Value(col))
		}
	}
	assert.Equal(t, before, after)
}

func TestCleanerFailsOnBadTicket(t *testing.T) {
	table := rawTable()
	table.Responses[1].RawTicket = "seven"

	err := NewCleaner(newTestLogger()).Clean(table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}
