package projection

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/simaogato/goldflow-backend/internal/domain"
	"github.com/simaogato/goldflow-backend/internal/logger"
	"github.com/simaogato/goldflow-backend/internal/metrics"
	"github.com/simaogato/goldflow-backend/internal/usecase/normalizer"
	"github.com/simaogato/goldflow-backend/internal/usecase/projector"
)

// ProjectionService normalizes raw projection inputs and evaluates the continuous model
type ProjectionService struct {
	logger *zap.Logger
}

// NewProjectionService creates a new ProjectionService instance
func NewProjectionService(log *zap.Logger) *ProjectionService {
	return &ProjectionService{logger: logger.OrNop(log)}
}

// ProjectInput holds the raw inputs of a projection
type ProjectInput struct {
	InitialPrincipal float64
	normalizer.Input
}

// Outcome bundles the normalized inputs with the projection so callers can show both bases
type Outcome struct {
	Normalized normalizer.Normalized
	Result     *domain.ProjectionResult
}

// Project normalizes the input to a monthly basis and runs the closed-form projector
func (s *ProjectionService) Project(ctx context.Context, input ProjectInput) (*Outcome, error) {
	normalized, err := normalizer.Normalize(input.Input)
	if err != nil {
		metrics.ProjectionsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, err
	}

	result, err := projector.Project(normalized.Parameters(input.InitialPrincipal))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNumericOverflow):
			metrics.ProjectionsTotal.WithLabelValues(metrics.OutcomeOverflow).Inc()
		case errors.Is(err, domain.ErrInvalidParameters):
			metrics.ProjectionsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		default:
			metrics.ProjectionsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		}
		s.logger.Warn("Projection failed", zap.Error(err))
		return nil, err
	}
	metrics.ProjectionsTotal.WithLabelValues(metrics.OutcomeOK).Inc()

	s.logger.Debug("Projection finished",
		zap.Int("horizon_months", normalized.HorizonMonths),
		zap.Float64("monthly_rate", normalized.MonthlyRate),
		zap.Float64("final_balance", result.FinalBalance))

	return &Outcome{Normalized: normalized, Result: result}, nil
}
