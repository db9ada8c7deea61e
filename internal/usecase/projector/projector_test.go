package projector

import (
	"math"
	"testing"

	"github.com/simaogato/goldflow-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_ConcreteScenario(t *testing.T) {
	params := domain.ProjectionParameters{
		InitialPrincipal: 10000,
		MonthlyRate:      0.0066,
		MonthlyFlow:      166,
		HorizonMonths:    12,
	}

	result, err := Project(params)

	require.NoError(t, err)
	require.Len(t, result.Points, 13)

	growth := math.Exp(0.0066 * 12)
	want := 10000*growth + (166/0.0066)*(growth-1)
	assert.InDelta(t, want, result.FinalBalance, 1e-6)
	assert.InDelta(t, 11992.0, result.TotalContributed, 1e-9)
	assert.InDelta(t, want-11992, result.NetGain, 1e-6)
	assert.Equal(t, 0, result.Points[0].Month)
	assert.Equal(t, 12, result.Points[12].Month)
	assert.Equal(t, 10000.0, result.Points[0].Balance)
}

func TestProject_ZeroRateIsLinear(t *testing.T) {
	params := domain.ProjectionParameters{InitialPrincipal: 2500, MonthlyRate: 0, MonthlyFlow: 175.5, HorizonMonths: 480}

	result, err := Project(params)

	require.NoError(t, err)
	for _, p := range result.Points {
		want := 2500 + 175.5*float64(p.Month)
		assert.Equal(t, want, p.Balance)
		assert.Equal(t, want, p.Contributed)
	}
	assert.Equal(t, 0.0, result.NetGain)
}

func TestProject_ZeroFlowIsPureCompounding(t *testing.T) {
	params := domain.ProjectionParameters{InitialPrincipal: 10000, MonthlyRate: 0.01, MonthlyFlow: 0, HorizonMonths: 120}

	result, err := Project(params)

	require.NoError(t, err)
	for _, p := range result.Points {
		assert.Equal(t, 10000*math.Exp(0.01*float64(p.Month)), p.Balance)
		assert.Equal(t, 10000.0, p.Contributed)
	}
}

func TestProject_WithdrawalsGiveNegativeGain(t *testing.T) {
	// Withdrawals larger than the interest earned drain the balance below the contributed line
	params := domain.ProjectionParameters{InitialPrincipal: 10000, MonthlyRate: 0.005, MonthlyFlow: -500, HorizonMonths: 12}

	result, err := Project(params)

	require.NoError(t, err)
	assert.InDelta(t, 4000.0, result.TotalContributed, 1e-9)
	assert.Less(t, result.FinalBalance, 10000.0)
	assert.Greater(t, result.NetGain, 0.0, "interest on the principal still exceeds the contributed line here")

	params.MonthlyRate = -0.01
	result, err = Project(params)

	require.NoError(t, err)
	assert.Less(t, result.NetGain, 0.0)
}

func TestProject_Overflow(t *testing.T) {
	params := domain.ProjectionParameters{InitialPrincipal: 1e300, MonthlyRate: 2, MonthlyFlow: 0, HorizonMonths: 720}

	result, err := Project(params)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrNumericOverflow)
}

func TestProject_InvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		params domain.ProjectionParameters
	}{
		{name: "Zero horizon", params: domain.ProjectionParameters{InitialPrincipal: 100, HorizonMonths: 0}},
		{name: "Negative principal", params: domain.ProjectionParameters{InitialPrincipal: -1, HorizonMonths: 12}},
		{name: "Horizon beyond the cap", params: domain.ProjectionParameters{InitialPrincipal: 100, HorizonMonths: 1e17}},
		{name: "Infinite rate", params: domain.ProjectionParameters{InitialPrincipal: 100, MonthlyRate: math.Inf(1), HorizonMonths: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Project(tt.params)

			assert.ErrorIs(t, err, domain.ErrInvalidParameters)
		})
	}
}

func TestProject_Idempotent(t *testing.T) {
	params := domain.ProjectionParameters{InitialPrincipal: 10000, MonthlyRate: 0.0066, MonthlyFlow: 166, HorizonMonths: 480}

	first, err := Project(params)
	require.NoError(t, err)
	second, err := Project(params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAt_OrderIndependent(t *testing.T) {
	params := domain.ProjectionParameters{InitialPrincipal: 5000, MonthlyRate: 0.004, MonthlyFlow: 120, HorizonMonths: 60}
	result, err := Project(params)
	require.NoError(t, err)

	for month := params.HorizonMonths; month >= 0; month-- {
		point, err := At(params, month)
		require.NoError(t, err)
		assert.Equal(t, result.Points[month], point)
	}
}
