package domain

import (
	"fmt"
	"math"
)

// MaxHorizonMonths caps a projection at 60 years
const MaxHorizonMonths = 720

// ProjectionParameters are the monthly-basis inputs of the continuous compounding model dS/dt = r*S + k
type ProjectionParameters struct {
	InitialPrincipal float64 // S0
	MonthlyRate      float64 // r, decimal per month, may be 0 or negative
	MonthlyFlow      float64 // k, per month, negative for withdrawals
	HorizonMonths    int
}

// Validate ensures the parameters adhere to domain rules
func (p ProjectionParameters) Validate() error {
	if !finite(p.InitialPrincipal) || !finite(p.MonthlyRate) || !finite(p.MonthlyFlow) {
		return fmt.Errorf("%w: principal, rate and flow must be finite numbers", ErrInvalidParameters)
	}
	if p.InitialPrincipal < 0 {
		return fmt.Errorf("%w: initial principal cannot be negative", ErrInvalidParameters)
	}
	if p.HorizonMonths < 1 {
		return fmt.Errorf("%w: horizon must be at least one month", ErrInvalidParameters)
	}
	if p.HorizonMonths > MaxHorizonMonths {
		return fmt.Errorf("%w: horizon cannot exceed %d months", ErrInvalidParameters, MaxHorizonMonths)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// ProjectionPoint is the projected balance at one month of the grid
type ProjectionPoint struct {
	Month       int
	Balance     float64 // S(t)
	Contributed float64 // C(t) = S0 + k*t
}

// ProjectionResult holds points for months 0..HorizonMonths plus the final scalars
type ProjectionResult struct {
	Points           []ProjectionPoint
	FinalBalance     float64
	TotalContributed float64
	NetGain          float64 // FinalBalance - TotalContributed, negative when withdrawals outrun growth
}
