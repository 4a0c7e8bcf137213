package storage

import "wine-analysis/models"

// ResponseWriter is the interface any export backend must satisfy.
type ResponseWriter interface {
	Write(responses []*models.Response) error
	Close() error
}

var (
	_ ResponseWriter = (*CSVWriter)(nil)
	_ ResponseWriter = (*PostgresWriter)(nil)
)
