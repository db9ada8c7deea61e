package accumulator

import (
	"fmt"
	"math"
	"time"

	"github.com/simaogato/goldflow-backend/internal/domain"
)

const daysPerYear = 365

// Parameters are the scalar inputs of a dual-track run
type Parameters struct {
	InitialCapital      float64
	MonthlyContribution float64
	AnnualRatePercent   float64
}

// DailyRate converts the annual deposit rate to the daily rate applied on every sample
// Logic: (percent / 100) / 365, simple division rather than a geometric root
func (p Parameters) DailyRate() float64 {
	return (p.AnnualRatePercent / 100) / daysPerYear
}

// Run walks the price series once and accumulates the gold and deposit tracks side by side
// Logic:
//  1. Seed: the whole initial capital buys gold at the first composite price and opens the deposit
//  2. For every sample (the first one included):
//     a. If the sample's month differs from the last seen month, contribute to both tracks
//     b. Compound the deposit by one day
//     c. Record the day
//  3. The final scalars are read from the last recorded entry
//
// Returns domain.ErrEmptySeries if the series has no samples
// Returns domain.ErrNumericOverflow if either track stops being a finite number
func Run(series domain.PriceSeries, p Parameters) (*domain.AccumulationResult, error) {
	if len(series) == 0 {
		return nil, domain.ErrEmptySeries
	}

	dailyRate := p.DailyRate()
	state := Seed(series[0], p.InitialCapital)

	entries := make([]domain.AccumulationEntry, 0, len(series))
	for _, sample := range series {
		state = Step(state, sample, p.MonthlyContribution, dailyRate)
		entry := domain.AccumulationEntry{
			Date:                  sample.Date,
			AssetValue:            state.AssetQuantity * sample.CompositePrice(),
			CashValue:             state.CashBalance,
			CumulativeContributed: state.CumulativeContributed,
		}
		if !isFinite(entry.AssetValue) || !isFinite(entry.CashValue) || !isFinite(entry.CumulativeContributed) {
			return nil, fmt.Errorf("%w: balances are not finite on %s", domain.ErrNumericOverflow, sample.Date.Format(time.DateOnly))
		}
		entries = append(entries, entry)
	}

	last := entries[len(entries)-1]
	lastSample, _ := series.Last()

	return &domain.AccumulationResult{
		Entries:            entries,
		FinalAssetValue:    last.AssetValue,
		FinalCashValue:     last.CashValue,
		FinalContributed:   last.CumulativeContributed,
		LastCompositePrice: lastSample.CompositePrice(),
		Winner:             domain.WinnerOf(last.AssetValue, last.CashValue),
	}, nil
}

// Seed opens both tracks with the initial capital on the first sample
func Seed(first domain.PriceSample, initialCapital float64) domain.AccumulationState {
	return domain.AccumulationState{
		AssetQuantity:         initialCapital / first.CompositePrice(),
		CashBalance:           initialCapital,
		CumulativeContributed: initialCapital,
		LastSeenMonth:         first.Date.Month(),
	}
}

// Step advances the state by one sample and returns the new state
// A month change is detected by month number alone, so December to January counts as a change
// and two samples a year apart in the same month do not.
func Step(state domain.AccumulationState, sample domain.PriceSample, contribution, dailyRate float64) domain.AccumulationState {
	next := state

	if sample.Date.Month() != state.LastSeenMonth {
		next.AssetQuantity += contribution / sample.CompositePrice()
		next.CashBalance += contribution
		next.CumulativeContributed += contribution
		next.LastSeenMonth = sample.Date.Month()
	}

	next.CashBalance *= 1 + dailyRate

	return next
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
