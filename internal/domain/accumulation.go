package domain

import "time"

// Track identifies one of the two accumulation tracks
type Track string

const (
	TrackGold    Track = "GOLD"
	TrackDeposit Track = "DEPOSIT"
)

// AccumulationState is the running state of a dual-track accumulation.
// A new value is produced for every sample; the previous one is never mutated.
type AccumulationState struct {
	AssetQuantity         float64    // grams held, never decreases
	CashBalance           float64    // deposit balance in local currency
	CumulativeContributed float64    // money put in so far, never decreases
	LastSeenMonth         time.Month // month of the last contribution (or of the seed sample)
}

// AccumulationEntry is one recorded day of an accumulation run
type AccumulationEntry struct {
	Date                  time.Time
	AssetValue            float64
	CashValue             float64
	CumulativeContributed float64
}

// AccumulationResult holds the daily entries of a run plus the final summary scalars
type AccumulationResult struct {
	Entries            []AccumulationEntry
	FinalAssetValue    float64
	FinalCashValue     float64
	FinalContributed   float64
	LastCompositePrice float64
	Winner             Track
}

// Summary is the derived comparison shown next to the final values
type Summary struct {
	AssetReturnPercent float64 // (FinalAssetValue / FinalContributed - 1) * 100
	CashReturnPercent  float64 // (FinalCashValue / FinalContributed - 1) * 100
	Difference         float64 // |FinalAssetValue - FinalCashValue|
}

// Summary computes the return percentages of both tracks against the contributed money
func (r *AccumulationResult) Summary() Summary {
	s := Summary{Difference: r.FinalAssetValue - r.FinalCashValue}
	if s.Difference < 0 {
		s.Difference = -s.Difference
	}
	if r.FinalContributed != 0 {
		s.AssetReturnPercent = (r.FinalAssetValue/r.FinalContributed - 1) * 100
		s.CashReturnPercent = (r.FinalCashValue/r.FinalContributed - 1) * 100
	}
	return s
}

// WinnerOf picks the winning track
// Logic: gold wins only when strictly greater, ties go to the deposit track
func WinnerOf(assetValue, cashValue float64) Track {
	if assetValue > cashValue {
		return TrackGold
	}
	return TrackDeposit
}
