package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/simaogato/goldflow-backend/internal/adapter/provider/yahoo"
	"github.com/simaogato/goldflow-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/goldflow-backend/internal/config"
	"github.com/simaogato/goldflow-backend/internal/domain"
	"github.com/simaogato/goldflow-backend/internal/logger"
)

// NewPriceProvider builds the configured price provider
// The returned cleanup func must be called once the provider is no longer used
func NewPriceProvider(ctx context.Context, cfg *config.Config, log *zap.Logger) (domain.PriceProvider, func(), error) {
	log = logger.OrNop(log)

	switch cfg.Prices.Source {
	case config.PriceSourcePostgres:
		db, err := postgres.NewDB(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, err
		}
		provider := postgres.NewPriceProvider(
			postgres.NewQuoteRepository(db),
			cfg.Prices.AssetSymbol,
			cfg.Prices.FXSymbol,
			log.Named("postgres"),
		)
		return provider, func() { db.Close() }, nil

	case config.PriceSourceYahoo:
		provider := yahoo.NewClient(yahoo.Config{
			BaseURL:     cfg.Yahoo.BaseURL,
			Timeout:     cfg.Yahoo.Timeout,
			AssetSymbol: cfg.Prices.AssetSymbol,
			FXSymbol:    cfg.Prices.FXSymbol,
		}, log.Named("yahoo"))
		return provider, func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown price source %q", cfg.Prices.Source)
}
