package comparison

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/simaogato/goldflow-backend/internal/domain"
	"github.com/simaogato/goldflow-backend/internal/logger"
	"github.com/simaogato/goldflow-backend/internal/metrics"
	"github.com/simaogato/goldflow-backend/internal/usecase/accumulator"
)

// ComparisonService runs the gold vs deposit comparison over historical prices
type ComparisonService struct {
	Prices domain.PriceProvider
	logger *zap.Logger
}

// NewComparisonService creates a new ComparisonService instance
func NewComparisonService(prices domain.PriceProvider, log *zap.Logger) *ComparisonService {
	return &ComparisonService{
		Prices: prices,
		logger: logger.OrNop(log),
	}
}

// CompareInput holds the input data for a comparison
type CompareInput struct {
	Start               time.Time
	End                 time.Time
	InitialCapital      float64
	MonthlyContribution float64
	AnnualRatePercent   float64
}

// Validate ensures the input adheres to domain rules
func (in CompareInput) Validate() error {
	if !in.Start.Before(in.End) {
		return domain.ErrInvalidDateRange
	}
	for name, v := range map[string]float64{
		"initial capital":      in.InitialCapital,
		"monthly contribution": in.MonthlyContribution,
		"annual rate":          in.AnnualRatePercent,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be a finite number", domain.ErrInvalidParameters, name)
		}
	}
	if in.InitialCapital < 0 {
		return fmt.Errorf("%w: initial capital cannot be negative", domain.ErrInvalidParameters)
	}
	if in.MonthlyContribution < 0 {
		return fmt.Errorf("%w: monthly contribution cannot be negative", domain.ErrInvalidParameters)
	}
	return nil
}

// Compare fetches the price series for the requested range and runs the dual-track accumulator
// Logic:
//  1. Validate the input
//  2. Fetch the merged series from the price provider (ErrDataUnavailable when it has nothing)
//  3. Run the accumulator (ErrEmptySeries when the cleaned series has no samples)
//
// The service never retries the provider; that is left to the caller
func (s *ComparisonService) Compare(ctx context.Context, input CompareInput) (*domain.AccumulationResult, error) {
	if err := input.Validate(); err != nil {
		metrics.ComparisonsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, err
	}

	series, err := s.Prices.FetchSeries(ctx, input.Start, input.End)
	if err != nil {
		metrics.ComparisonsTotal.WithLabelValues(metrics.OutcomeNoData).Inc()
		s.logger.Warn("Price series unavailable",
			zap.Time("start", input.Start),
			zap.Time("end", input.End),
			zap.Error(err))
		if errors.Is(err, domain.ErrDataUnavailable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	metrics.SeriesLength.Observe(float64(len(series)))

	result, err := accumulator.Run(series, accumulator.Parameters{
		InitialCapital:      input.InitialCapital,
		MonthlyContribution: input.MonthlyContribution,
		AnnualRatePercent:   input.AnnualRatePercent,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNumericOverflow) {
			metrics.ComparisonsTotal.WithLabelValues(metrics.OutcomeOverflow).Inc()
			s.logger.Warn("Comparison overflowed", zap.Error(err))
		} else {
			metrics.ComparisonsTotal.WithLabelValues(metrics.OutcomeNoData).Inc()
		}
		return nil, err
	}

	if result.Winner == domain.TrackGold {
		metrics.ComparisonsTotal.WithLabelValues(metrics.OutcomeGold).Inc()
	} else {
		metrics.ComparisonsTotal.WithLabelValues(metrics.OutcomeDeposit).Inc()
	}

	s.logger.Info("Comparison finished",
		zap.Int("samples", len(series)),
		zap.Float64("final_gold", result.FinalAssetValue),
		zap.Float64("final_deposit", result.FinalCashValue),
		zap.Float64("contributed", result.FinalContributed),
		zap.String("winner", string(result.Winner)))

	return result, nil
}
