package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wine-analysis/models"
)

func TestReporterPrintsBlocksInOrder(t *testing.T) {
	report := NewAggregator(newTestLogger()).Build(&models.ResponseTable{Responses: sampleResponses()})

	var buf bytes.Buffer
	NewReporter(&buf).Print(report)
	out := buf.String()

	i1 := strings.Index(out, "1. Average Ticket Value by Place:")
	i2 := strings.Index(out, "2. Average Ticket Value by Product:")
	i3 := strings.Index(out, "3. Payment Mode Percentages by Age Group:")
	require.True(t, i1 >= 0 && i2 > i1 && i3 > i2, "blocks out of order:\n%s", out)

	block1, block2, block3 := out[i1:i2], out[i2:i3], out[i3:]
	assert.Contains(t, block1, "7.50")
	assert.Contains(t, block1, "20.00")
	assert.Contains(t, block2, "5.75")
	assert.Contains(t, block2, "count")
	assert.Contains(t, block3, "100.0")
	assert.Contains(t, block3, "50.0")
	assert.Contains(t, block3, "Cash")
}
