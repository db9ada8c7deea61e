package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/simaogato/goldflow-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockQuoteRepository is a mock implementation of QuoteRepository for testing
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) Range(ctx context.Context, symbol string, from, to time.Time) ([]domain.Quote, error) {
	args := m.Called(ctx, symbol, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quote), args.Error(1)
}

func price(v float64) *float64 { return &v }

func TestPriceProvider_FetchSeries(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	repo := new(MockQuoteRepository)
	repo.On("Range", ctx, "GC=F", from, to).Return([]domain.Quote{
		{Date: from, Close: price(2000)},
		{Date: to, Close: price(2100)},
	}, nil)
	repo.On("Range", ctx, "TRY=X", from, to).Return([]domain.Quote{
		{Date: from, Close: price(30)},
		{Date: from.AddDate(0, 0, 1), Close: price(31)},
	}, nil)

	provider := NewPriceProvider(repo, "GC=F", "TRY=X", nil)

	series, err := provider.FetchSeries(ctx, from, to)

	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, 2000.0, series[1].AssetUnitPrice)
	assert.Equal(t, 31.0, series[2].FXUnitPrice)
	repo.AssertExpectations(t)
}

func TestPriceProvider_FetchSeries_NoData(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		setup func(repo *MockQuoteRepository)
	}{
		{
			name: "Query failure",
			setup: func(repo *MockQuoteRepository) {
				repo.On("Range", ctx, "GC=F", from, to).Return(nil, errors.New("connection refused"))
			},
		},
		{
			name: "Symbol without rows",
			setup: func(repo *MockQuoteRepository) {
				repo.On("Range", ctx, "GC=F", from, to).Return([]domain.Quote{{Date: from, Close: price(2000)}}, nil)
				repo.On("Range", ctx, "TRY=X", from, to).Return([]domain.Quote{}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockQuoteRepository)
			tt.setup(repo)
			provider := NewPriceProvider(repo, "GC=F", "TRY=X", nil)

			series, err := provider.FetchSeries(ctx, from, to)

			assert.Nil(t, series)
			assert.ErrorIs(t, err, domain.ErrDataUnavailable)
			repo.AssertExpectations(t)
		})
	}
}
