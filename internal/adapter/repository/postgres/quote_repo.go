package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/simaogato/goldflow-backend/internal/domain"
)

// quoteRepository implements domain.QuoteRepository
// It reads the daily_quotes table (symbol, date, close), which is filled by an external loader:
//
//	CREATE TABLE daily_quotes (
//	    symbol TEXT NOT NULL,
//	    date   DATE NOT NULL,
//	    close  NUMERIC,
//	    PRIMARY KEY (symbol, date)
//	);
type quoteRepository struct {
	db *DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *DB) domain.QuoteRepository {
	return &quoteRepository{db: db}
}

// Range retrieves the daily quotes of a symbol within [from, to], ordered by date
// A NULL close is returned as a quote with a nil Close
func (r *quoteRepository) Range(ctx context.Context, symbol string, from, to time.Time) ([]domain.Quote, error) {
	query := `
		SELECT date, close::float8
		FROM daily_quotes
		WHERE symbol = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, symbol, from.Format(time.DateOnly), to.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes for %s: %w", symbol, err)
	}
	defer rows.Close()

	var quotes []domain.Quote
	for rows.Next() {
		var (
			date     time.Time
			closeVal sql.NullFloat64
		)
		if err := rows.Scan(&date, &closeVal); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}

		q := domain.Quote{Date: date.UTC()}
		if closeVal.Valid {
			v := closeVal.Float64
			q.Close = &v
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotes: %w", err)
	}

	return quotes, nil
}
