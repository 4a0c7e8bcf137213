package storage

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"wine-analysis/models"
)

// Delimiter separates fields in the survey CSV.
const Delimiter = ';'

var utf8BOM = []byte("\ufeff")

// ReadResponses loads the semicolon-delimited survey file at path.
func ReadResponses(path string) (*models.ResponseTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	table, err := DecodeResponses(f)
	if err != nil {
		return nil, fmt.Errorf("csv: %q: %w", path, err)
	}
	table.Source = path
	return table, nil
}

// DecodeResponses reads a survey table from r. Every column is kept as raw
// text; only the columns in models.RequiredColumns are retained.
func DecodeResponses(r io.Reader) (*models.ResponseTable, error) {
	df := dataframe.ReadCSV(skipBOM(r),
		dataframe.WithDelimiter(Delimiter),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parse: %w", df.Err)
	}

	rows := df.Nrow()
	table := &models.ResponseTable{Responses: make([]*models.Response, rows)}
	for i := range table.Responses {
		table.Responses[i] = &models.Response{Ticket: math.NaN()}
	}

	for _, col := range models.RequiredColumns {
		s := df.Col(string(col))
		if s.Err != nil {
			return nil, fmt.Errorf("missing column %q: %w", col, s.Err)
		}
		for i, v := range s.Records() {
			table.Responses[i].SetValue(col, v)
			if v == "" && col != models.ColTicket {
				table.Responses[i].MarkMissing(col)
			}
		}
	}
	return table, nil
}

// skipBOM drops a leading UTF-8 byte order mark so the first header matches.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}
