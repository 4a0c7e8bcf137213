package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"wine-analysis/models"
)

// exportColumns is the header of the cleaned CSV export.
var exportColumns = append(append([]models.Column{}, models.RequiredColumns...), models.ColFreqNum)

// CSVWriter writes the cleaned survey table to a semicolon-delimited file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	w.Comma = Delimiter

	header := make([]string, len(exportColumns))
	for i, col := range exportColumns {
		header[i] = string(col)
	}
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends the cleaned responses.
func (c *CSVWriter) Write(responses []*models.Response) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range responses {
		if err := c.writer.Write(exportRow(r)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func exportRow(r *models.Response) []string {
	row := make([]string, 0, len(exportColumns))
	for _, col := range exportColumns {
		switch col {
		case models.ColTicket:
			if r.HasTicket() {
				row = append(row, strconv.FormatFloat(r.Ticket, 'f', 2, 64))
			} else {
				row = append(row, "")
			}
		case models.ColFreqNum:
			if r.FreqKnown {
				row = append(row, strconv.Itoa(r.FreqNum))
			} else {
				row = append(row, "")
			}
		default:
			row = append(row, r.Value(col))
		}
	}
	return row
}
