package normalizer

import (
	"fmt"
	"math"

	"github.com/simaogato/goldflow-backend/internal/domain"
)

// Basis is the period a rate or flow input is expressed in
type Basis string

const (
	BasisMonthly Basis = "MONTHLY"
	BasisAnnual  Basis = "ANNUAL"
)

// TermUnit is the unit of the projection horizon
type TermUnit string

const (
	TermMonths TermUnit = "MONTHS"
	TermYears  TermUnit = "YEARS"
)

const monthsPerYear = 12

var errTermTooLong = fmt.Errorf("%w: term cannot exceed %d months", domain.ErrInvalidParameters, domain.MaxHorizonMonths)

// Input is the raw, user-facing form of the projection inputs
type Input struct {
	RatePercent float64 // e.g. 8.0 for 8%
	RateBasis   Basis
	Flow        float64 // contribution (positive) or withdrawal (negative) amount
	FlowBasis   Basis
	Term        int
	TermUnit    TermUnit
}

// Normalized holds the canonical monthly-basis values plus the annual values used for display
type Normalized struct {
	MonthlyRate       float64 // decimal, e.g. 0.0066
	AnnualRatePercent float64 // display only
	MonthlyFlow       float64
	AnnualFlow        float64 // display only
	HorizonMonths     int
}

// Normalize converts the raw inputs to a monthly basis
// Logic:
//   - Annual rate: monthly = (percent / 100) / 12
//   - Monthly rate: monthly = percent / 100, annual display = percent * 12
//   - Annual flow: monthly = amount / 12; monthly flow: annual = amount * 12
//   - Years: horizon = term * 12
//
// All conversions are linear on purpose; no effective-rate conversion is applied
func Normalize(in Input) (Normalized, error) {
	var out Normalized

	if !isFinite(in.RatePercent) || !isFinite(in.Flow) {
		return Normalized{}, fmt.Errorf("%w: rate and flow must be finite numbers", domain.ErrInvalidParameters)
	}

	switch in.RateBasis {
	case BasisMonthly:
		out.MonthlyRate = in.RatePercent / 100
		out.AnnualRatePercent = in.RatePercent * monthsPerYear
	case BasisAnnual:
		out.MonthlyRate = (in.RatePercent / 100) / monthsPerYear
		out.AnnualRatePercent = in.RatePercent
	default:
		return Normalized{}, fmt.Errorf("%w: unknown rate basis %q", domain.ErrInvalidParameters, in.RateBasis)
	}

	switch in.FlowBasis {
	case BasisMonthly:
		out.MonthlyFlow = in.Flow
		out.AnnualFlow = in.Flow * monthsPerYear
	case BasisAnnual:
		out.MonthlyFlow = in.Flow / monthsPerYear
		out.AnnualFlow = in.Flow
	default:
		return Normalized{}, fmt.Errorf("%w: unknown flow basis %q", domain.ErrInvalidParameters, in.FlowBasis)
	}

	// Range-check the raw term first so the years conversion cannot overflow
	switch in.TermUnit {
	case TermMonths:
		if in.Term > domain.MaxHorizonMonths {
			return Normalized{}, errTermTooLong
		}
		out.HorizonMonths = in.Term
	case TermYears:
		if in.Term > domain.MaxHorizonMonths/monthsPerYear {
			return Normalized{}, errTermTooLong
		}
		out.HorizonMonths = in.Term * monthsPerYear
	default:
		return Normalized{}, fmt.Errorf("%w: unknown term unit %q", domain.ErrInvalidParameters, in.TermUnit)
	}
	if out.HorizonMonths < 1 {
		return Normalized{}, fmt.Errorf("%w: term must be at least one month", domain.ErrInvalidParameters)
	}

	if !isFinite(out.AnnualRatePercent) || !isFinite(out.AnnualFlow) {
		return Normalized{}, fmt.Errorf("%w: annual equivalents are not finite", domain.ErrNumericOverflow)
	}

	return out, nil
}

// Parameters builds the projector parameters from the normalized values
func (n Normalized) Parameters(initialPrincipal float64) domain.ProjectionParameters {
	return domain.ProjectionParameters{
		InitialPrincipal: initialPrincipal,
		MonthlyRate:      n.MonthlyRate,
		MonthlyFlow:      n.MonthlyFlow,
		HorizonMonths:    n.HorizonMonths,
	}
}

// ParseBasis maps a loose textual basis ("monthly", "annual", "yearly") to a Basis
func ParseBasis(s string) (Basis, error) {
	switch s {
	case "monthly", "MONTHLY", "month", "m":
		return BasisMonthly, nil
	case "annual", "ANNUAL", "yearly", "year", "y":
		return BasisAnnual, nil
	}
	return "", fmt.Errorf("%w: unknown basis %q", domain.ErrInvalidParameters, s)
}

// ParseTermUnit maps a loose textual unit ("months", "years") to a TermUnit
func ParseTermUnit(s string) (TermUnit, error) {
	switch s {
	case "months", "MONTHS", "month", "m":
		return TermMonths, nil
	case "years", "YEARS", "year", "y":
		return TermYears, nil
	}
	return "", fmt.Errorf("%w: unknown term unit %q", domain.ErrInvalidParameters, s)
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
