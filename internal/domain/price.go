package domain

import (
	"fmt"
	"sort"
	"time"
)

// TroyOunceGrams is the number of grams in one troy ounce.
// It converts an ounce quote into a gram price.
const TroyOunceGrams = 31.1035

// Quote is a single daily closing price for one instrument, as delivered by a price provider.
// A nil Close marks a day the provider listed without a value.
type Quote struct {
	Date  time.Time
	Close *float64
}

// PriceSample represents one day of the merged price series in the domain layer
// AssetUnitPrice is the asset price per ounce in the quote currency (e.g. USD),
// FXUnitPrice converts one unit of the quote currency into local currency (e.g. TRY)
type PriceSample struct {
	Date           time.Time
	AssetUnitPrice float64
	FXUnitPrice    float64
}

// CompositePrice returns the value of one gram of the asset in local currency
// Logic: (AssetUnitPrice * FXUnitPrice) / TroyOunceGrams
func (p PriceSample) CompositePrice() float64 {
	return (p.AssetUnitPrice * p.FXUnitPrice) / TroyOunceGrams
}

// PriceSeries is an ordered sequence of daily samples, strictly increasing by date
type PriceSeries []PriceSample

// Validate ensures the series adheres to domain rules
// Returns an error if dates are not strictly increasing or a composite price is not positive
func (s PriceSeries) Validate() error {
	for i, sample := range s {
		if !(sample.CompositePrice() > 0) {
			return fmt.Errorf("sample %s: composite price must be positive", sample.Date.Format(time.DateOnly))
		}
		if i > 0 && !sample.Date.After(s[i-1].Date) {
			return fmt.Errorf("sample %s: dates must be strictly increasing", sample.Date.Format(time.DateOnly))
		}
	}
	return nil
}

// Last returns the most recent sample
func (s PriceSeries) Last() (PriceSample, bool) {
	if len(s) == 0 {
		return PriceSample{}, false
	}
	return s[len(s)-1], true
}

// BuildPriceSeries merges the asset and fx quotes into a PriceSeries
// Logic:
//  1. Take the union of the dates of both instruments, sorted ascending
//  2. Forward-fill each instrument: a day without a value inherits the previous known value
//  3. Drop days where either instrument has no known value yet (leading gaps)
//  4. Drop days whose composite price is not positive
//
// Returns ErrDataUnavailable if either instrument has no quotes at all
func BuildPriceSeries(asset, fx []Quote) (PriceSeries, error) {
	if len(asset) == 0 || len(fx) == 0 {
		return nil, fmt.Errorf("%w: both instruments must have quotes", ErrDataUnavailable)
	}

	assetByDay := indexByDay(asset)
	fxByDay := indexByDay(fx)

	days := make([]time.Time, 0, len(assetByDay)+len(fxByDay))
	seen := make(map[time.Time]bool, len(assetByDay)+len(fxByDay))
	for _, byDay := range []map[time.Time]*float64{assetByDay, fxByDay} {
		for day := range byDay {
			if !seen[day] {
				seen[day] = true
				days = append(days, day)
			}
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	series := make(PriceSeries, 0, len(days))
	var lastAsset, lastFX *float64
	for _, day := range days {
		if v := assetByDay[day]; v != nil {
			lastAsset = v
		}
		if v := fxByDay[day]; v != nil {
			lastFX = v
		}
		if lastAsset == nil || lastFX == nil {
			continue
		}

		sample := PriceSample{Date: day, AssetUnitPrice: *lastAsset, FXUnitPrice: *lastFX}
		if !(sample.CompositePrice() > 0) {
			continue
		}
		series = append(series, sample)
	}

	return series, nil
}

// indexByDay keys quotes by their UTC calendar day; a later non-nil quote for the same day wins
func indexByDay(quotes []Quote) map[time.Time]*float64 {
	byDay := make(map[time.Time]*float64, len(quotes))
	for _, q := range quotes {
		day := truncateDay(q.Date)
		if q.Close != nil || byDay[day] == nil {
			byDay[day] = q.Close
		}
	}
	return byDay
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
