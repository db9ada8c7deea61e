package projector

import (
	"fmt"
	"math"

	"github.com/simaogato/goldflow-backend/internal/domain"
)

// Project evaluates the closed-form solution of dS/dt = r*S + k on the month grid 0..HorizonMonths
// Logic:
//   - r == 0: S(t) = S0 + k*t
//   - r != 0: S(t) = S0*e^(r*t) + (k/r)*(e^(r*t) - 1)
//   - Contributed reference line in both cases: C(t) = S0 + k*t
//   - NetGain = S(T) - C(T), negative when withdrawals outrun growth
//
// Every grid point is computed from the closed form alone, so the order of evaluation does not matter
// Returns domain.ErrNumericOverflow if any balance is not finite
func Project(p domain.ProjectionParameters) (*domain.ProjectionResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	points := make([]domain.ProjectionPoint, p.HorizonMonths+1)
	for month := range points {
		point, err := At(p, month)
		if err != nil {
			return nil, err
		}
		points[month] = point
	}

	final := points[len(points)-1]
	return &domain.ProjectionResult{
		Points:           points,
		FinalBalance:     final.Balance,
		TotalContributed: final.Contributed,
		NetGain:          final.Balance - final.Contributed,
	}, nil
}

// At evaluates a single grid point
func At(p domain.ProjectionParameters, month int) (domain.ProjectionPoint, error) {
	t := float64(month)
	contributed := p.InitialPrincipal + p.MonthlyFlow*t

	var balance float64
	if p.MonthlyRate == 0 {
		balance = contributed
	} else {
		growth := math.Exp(p.MonthlyRate * t)
		balance = p.InitialPrincipal*growth + (p.MonthlyFlow/p.MonthlyRate)*(growth-1)
	}

	if math.IsInf(balance, 0) || math.IsNaN(balance) || math.IsInf(contributed, 0) {
		return domain.ProjectionPoint{}, fmt.Errorf("%w: balance at month %d is not finite", domain.ErrNumericOverflow, month)
	}

	return domain.ProjectionPoint{Month: month, Balance: balance, Contributed: contributed}, nil
}
