package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/simaogato/goldflow-backend/internal/domain"
	"github.com/simaogato/goldflow-backend/internal/logger"
	"github.com/simaogato/goldflow-backend/internal/metrics"
)

const sourceName = "postgres"

// PriceProvider implements domain.PriceProvider from stored daily quotes
type PriceProvider struct {
	Quotes      domain.QuoteRepository
	AssetSymbol string
	FXSymbol    string
	logger      *zap.Logger
}

// NewPriceProvider creates a provider reading both instruments from the quote repository
func NewPriceProvider(quotes domain.QuoteRepository, assetSymbol, fxSymbol string, log *zap.Logger) *PriceProvider {
	return &PriceProvider{
		Quotes:      quotes,
		AssetSymbol: assetSymbol,
		FXSymbol:    fxSymbol,
		logger:      logger.OrNop(log),
	}
}

// FetchSeries loads both symbols for [from, to] and merges them into a forward-filled series
// A query failure or a symbol without rows is reported as domain.ErrDataUnavailable
func (p *PriceProvider) FetchSeries(ctx context.Context, from, to time.Time) (domain.PriceSeries, error) {
	asset, err := p.Quotes.Range(ctx, p.AssetSymbol, from, to)
	if err != nil {
		metrics.ProviderFetchesTotal.WithLabelValues(sourceName, metrics.StatusError).Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}

	fx, err := p.Quotes.Range(ctx, p.FXSymbol, from, to)
	if err != nil {
		metrics.ProviderFetchesTotal.WithLabelValues(sourceName, metrics.StatusError).Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	metrics.ProviderFetchesTotal.WithLabelValues(sourceName, metrics.StatusSuccess).Inc()

	p.logger.Debug("Loaded stored quotes",
		zap.String("asset", p.AssetSymbol),
		zap.Int("asset_rows", len(asset)),
		zap.String("fx", p.FXSymbol),
		zap.Int("fx_rows", len(fx)))

	return domain.BuildPriceSeries(asset, fx)
}
