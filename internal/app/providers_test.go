package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simaogato/goldflow-backend/internal/adapter/provider/yahoo"
	"github.com/simaogato/goldflow-backend/internal/config"
)

func TestNewPriceProvider_Yahoo(t *testing.T) {
	cfg := &config.Config{
		Prices: config.PricesConfig{Source: config.PriceSourceYahoo, AssetSymbol: "GC=F", FXSymbol: "TRY=X"},
		Yahoo:  config.YahooConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second},
	}

	provider, cleanup, err := NewPriceProvider(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, &yahoo.Client{}, provider)
}

func TestNewPriceProvider_NilLogger(t *testing.T) {
	cfg := &config.Config{
		Prices: config.PricesConfig{Source: config.PriceSourceYahoo, AssetSymbol: "GC=F", FXSymbol: "TRY=X"},
		Yahoo:  config.YahooConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second},
	}

	provider, cleanup, err := NewPriceProvider(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, provider)
}

func TestNewPriceProvider_PostgresUnreachable(t *testing.T) {
	cfg := &config.Config{
		Prices:   config.PricesConfig{Source: config.PriceSourcePostgres, AssetSymbol: "GC=F", FXSymbol: "TRY=X"},
		Database: config.DatabaseConfig{ConnStr: "host=127.0.0.1 port=1 user=x dbname=x sslmode=disable connect_timeout=1"},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, cleanup, err := NewPriceProvider(ctx, cfg, zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, provider)
	assert.Nil(t, cleanup)
}

func TestNewPriceProvider_UnknownSource(t *testing.T) {
	cfg := &config.Config{Prices: config.PricesConfig{Source: "bloomberg"}}

	_, _, err := NewPriceProvider(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, `unknown price source "bloomberg"`)
}
