package domain

import (
	"context"
	"time"
)

// PriceProvider defines the boundary to the market data source
type PriceProvider interface {
	// FetchSeries returns the merged, forward-filled daily series for the closed range [from, to]
	// Returns ErrDataUnavailable when either instrument cannot be resolved
	FetchSeries(ctx context.Context, from, to time.Time) (PriceSeries, error)
}

// QuoteRepository defines read access to stored daily quotes
type QuoteRepository interface {
	// Range retrieves the daily quotes of a symbol within [from, to], ordered by date
	Range(ctx context.Context, symbol string, from, to time.Time) ([]Quote, error)
}
