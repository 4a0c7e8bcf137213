package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"wine-analysis/models"
	"wine-analysis/utils"
)

const insertColumns = 10

// PostgresWriter persists cleaned survey responses to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do("postgres ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS wine_responses (
			id                  SERIAL PRIMARY KEY,
			row_number          INTEGER       NOT NULL,
			ticket              NUMERIC(10,2),
			frequency           TEXT          NOT NULL DEFAULT '',
			freq_num            SMALLINT,
			payment_mode        TEXT          NOT NULL DEFAULT '',
			place_to_drink      TEXT          NOT NULL DEFAULT '',
			additional_products TEXT          NOT NULL DEFAULT '',
			gender              TEXT          NOT NULL DEFAULT '',
			education           TEXT          NOT NULL DEFAULT '',
			age                 TEXT          NOT NULL DEFAULT '',
			created_at          TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_wine_responses_age   ON wine_responses(age);
		CREATE INDEX IF NOT EXISTS idx_wine_responses_place ON wine_responses(place_to_drink);
	`)
	return err
}

// Clear deletes all existing responses from the table.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM wine_responses")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write replaces the stored survey with responses, in batches.
func (pw *PostgresWriter) Write(responses []*models.Response) error {
	if len(responses) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(responses); i += batchSize {
		end := i + batchSize
		if end > len(responses) {
			end = len(responses)
		}
		query, args := buildInsert(i, responses[i:end])
		if _, err := pw.db.Exec(query, args...); err != nil {
			return fmt.Errorf("postgres: insert rows %d-%d: %w", i+1, end, err)
		}
	}
	return nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// buildInsert returns a multi-row INSERT for batch, whose first row is
// survey row offset+1.
func buildInsert(offset int, batch []*models.Response) (string, []interface{}) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*insertColumns)

	for idx, r := range batch {
		base := idx * insertColumns
		placeholders := make([]string, insertColumns)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")

		ticket := sql.NullFloat64{Float64: r.Ticket, Valid: r.HasTicket()}
		if !ticket.Valid {
			ticket.Float64 = 0
		}
		freq := sql.NullInt64{Int64: int64(r.FreqNum), Valid: r.FreqKnown}

		valueArgs = append(valueArgs,
			offset+idx+1, ticket, r.Frequency, freq, r.PaymentMode,
			r.Place, r.AdditionalProducts, r.Gender, r.Education, r.Age)
	}

	query := fmt.Sprintf(`
		INSERT INTO wine_responses
			(row_number, ticket, frequency, freq_num, payment_mode,
			 place_to_drink, additional_products, gender, education, age)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	return query, valueArgs
}
