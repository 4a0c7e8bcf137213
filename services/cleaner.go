package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"wine-analysis/models"
	"wine-analysis/utils"
)

// Cleaner normalizes a loaded ResponseTable in place.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean parses Ticket, trims the categorical columns and derives Freq_num.
// It stops at the first ticket that cannot be parsed.
func (c *Cleaner) Clean(table *models.ResponseTable) error {
	var missingTickets, unmapped int

	for i, r := range table.Responses {
		ticket, err := ParseTicket(r.RawTicket)
		if err != nil {
			return fmt.Errorf("cleaner: row %d: %w", i+1, err)
		}
		r.Ticket = ticket
		if !r.HasTicket() {
			missingTickets++
		}

		for _, col := range models.CategoricalColumns {
			r.SetValue(col, strings.TrimSpace(r.Value(col)))
		}

		r.FreqNum, r.FreqKnown = models.FrequencyScale[r.Frequency]
		if !r.FreqKnown {
			unmapped++
			c.logger.Debug("[cleaner] Row %d: unmapped frequency %q", i+1, r.Frequency)
		}
	}

	c.logger.Info("[cleaner] Cleaned %d responses (%d without ticket, %d unmapped frequencies)",
		table.Len(), missingTickets, unmapped)
	return nil
}

// ParseTicket converts a euro amount such as "€12,50" to 12.5. When several
// commas appear, the last one is the decimal separator and the rest are
// thousands separators. An empty value yields NaN.
func ParseTicket(raw string) (float64, error) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "€", ""))
	if s == "" {
		return math.NaN(), nil
	}

	if last := strings.LastIndex(s, ","); last >= 0 {
		s = strings.ReplaceAll(s[:last], ",", "") + "." + s[last+1:]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid ticket %q", raw)
	}
	return v, nil
}
