package comparison

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/simaogato/goldflow-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPriceProvider is a mock implementation of PriceProvider for testing
type MockPriceProvider struct {
	mock.Mock
}

func (m *MockPriceProvider) FetchSeries(ctx context.Context, from, to time.Time) (domain.PriceSeries, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.PriceSeries), args.Error(1)
}

func sampleAt(date time.Time, gramPrice float64) domain.PriceSample {
	return domain.PriceSample{Date: date, AssetUnitPrice: gramPrice * domain.TroyOunceGrams, FXUnitPrice: 1}
}

func TestCompare_GoldWins(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	mockPrices := new(MockPriceProvider)
	service := NewComparisonService(mockPrices, nil)

	// Setup: price doubles on the first day of February
	series := domain.PriceSeries{
		sampleAt(start, 100),
		sampleAt(start.AddDate(0, 0, 1), 100),
		sampleAt(end, 200),
	}
	mockPrices.On("FetchSeries", ctx, start, end).Return(series, nil)

	// Execute
	result, err := service.Compare(ctx, CompareInput{
		Start:               start,
		End:                 end,
		InitialCapital:      1000,
		MonthlyContribution: 100,
		AnnualRatePercent:   0,
	})

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 2100.0, result.FinalAssetValue, 1e-9)
	assert.InDelta(t, 1100.0, result.FinalCashValue, 1e-9)
	assert.Equal(t, domain.TrackGold, result.Winner)

	mockPrices.AssertExpectations(t)
}

func TestCompare_DepositWins(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	mockPrices := new(MockPriceProvider)
	service := NewComparisonService(mockPrices, nil)

	// Setup: flat gold price, 40% deposit rate
	var series domain.PriceSeries
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		series = append(series, sampleAt(d, 2000))
	}
	mockPrices.On("FetchSeries", ctx, start, end).Return(series, nil)

	result, err := service.Compare(ctx, CompareInput{
		Start:               start,
		End:                 end,
		InitialCapital:      100000,
		MonthlyContribution: 5000,
		AnnualRatePercent:   40,
	})

	require.NoError(t, err)
	assert.Len(t, result.Entries, len(series))
	assert.Equal(t, 110000.0, result.FinalContributed)
	assert.InDelta(t, 110000.0, result.FinalAssetValue, 1e-6)
	assert.Greater(t, result.FinalCashValue, result.FinalAssetValue)
	assert.Equal(t, domain.TrackDeposit, result.Winner)

	mockPrices.AssertExpectations(t)
}

func TestCompare_ProviderFailure(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		provided error
	}{
		{name: "Provider reports no data", provided: domain.ErrDataUnavailable},
		{name: "Provider fails with an unknown error", provided: errors.New("dial tcp: timeout")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPrices := new(MockPriceProvider)
			service := NewComparisonService(mockPrices, nil)
			mockPrices.On("FetchSeries", ctx, start, end).Return(nil, tt.provided)

			result, err := service.Compare(ctx, CompareInput{Start: start, End: end, InitialCapital: 1000})

			assert.Nil(t, result)
			assert.ErrorIs(t, err, domain.ErrDataUnavailable)
			mockPrices.AssertExpectations(t)
		})
	}
}

func TestCompare_EmptySeries(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)

	mockPrices := new(MockPriceProvider)
	service := NewComparisonService(mockPrices, nil)
	mockPrices.On("FetchSeries", ctx, start, end).Return(domain.PriceSeries{}, nil)

	result, err := service.Compare(ctx, CompareInput{Start: start, End: end, InitialCapital: 1000})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrEmptySeries)
	mockPrices.AssertExpectations(t)
}

func TestCompare_InvalidInput(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   CompareInput
		wantErr error
	}{
		{
			name:    "End before start",
			input:   CompareInput{Start: start, End: start.AddDate(0, 0, -1), InitialCapital: 1000},
			wantErr: domain.ErrInvalidDateRange,
		},
		{
			name:    "Empty range",
			input:   CompareInput{Start: start, End: start, InitialCapital: 1000},
			wantErr: domain.ErrInvalidDateRange,
		},
		{
			name:    "Negative capital",
			input:   CompareInput{Start: start, End: start.AddDate(1, 0, 0), InitialCapital: -1},
			wantErr: domain.ErrInvalidParameters,
		},
		{
			name:    "Negative contribution",
			input:   CompareInput{Start: start, End: start.AddDate(1, 0, 0), MonthlyContribution: -5},
			wantErr: domain.ErrInvalidParameters,
		},
		{
			name:    "NaN capital",
			input:   CompareInput{Start: start, End: start.AddDate(1, 0, 0), InitialCapital: math.NaN()},
			wantErr: domain.ErrInvalidParameters,
		},
		{
			name:    "Infinite rate",
			input:   CompareInput{Start: start, End: start.AddDate(1, 0, 0), InitialCapital: 1000, AnnualRatePercent: math.Inf(1)},
			wantErr: domain.ErrInvalidParameters,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPrices := new(MockPriceProvider)
			service := NewComparisonService(mockPrices, nil)

			_, err := service.Compare(context.Background(), tt.input)

			assert.ErrorIs(t, err, tt.wantErr)
			// The provider is never asked for data on invalid input
			mockPrices.AssertNotCalled(t, "FetchSeries", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCompare_Overflow(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	var series domain.PriceSeries
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		series = append(series, domain.PriceSample{Date: d, AssetUnitPrice: domain.TroyOunceGrams, FXUnitPrice: 1})
	}

	mockPrices := new(MockPriceProvider)
	service := NewComparisonService(mockPrices, nil)
	mockPrices.On("FetchSeries", ctx, start, end).Return(series, nil)

	result, err := service.Compare(ctx, CompareInput{Start: start, End: end, InitialCapital: 1000, AnnualRatePercent: 1e300})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrNumericOverflow)
}
