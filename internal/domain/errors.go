package domain

import "errors"

var (
	// ErrDataUnavailable is returned when the price provider has no usable series
	// or could not resolve one of the requested symbols.
	ErrDataUnavailable = errors.New("price data unavailable")

	// ErrEmptySeries is returned when a series resolved but holds no usable samples after cleaning.
	ErrEmptySeries = errors.New("price series is empty")

	// ErrNumericOverflow is returned when a projection leaves the range of float64.
	ErrNumericOverflow = errors.New("numeric overflow")

	// ErrInvalidParameters is returned when caller supplied parameters break a domain rule.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrInvalidDateRange is returned when a requested range is empty or inverted.
	ErrInvalidDateRange = errors.New("invalid date range: start must be before end")
)
