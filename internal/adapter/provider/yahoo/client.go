package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/simaogato/goldflow-backend/internal/domain"
	"github.com/simaogato/goldflow-backend/internal/logger"
	"github.com/simaogato/goldflow-backend/internal/metrics"
)

const sourceName = "yahoo"

// errCallerAborted marks a request that stopped because the caller's context ended
var errCallerAborted = errors.New("request aborted by caller")

// Config holds the settings of the Yahoo Finance provider
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	AssetSymbol string // e.g. GC=F, gold ounce in USD
	FXSymbol    string // e.g. TRY=X, USD in TRY
}

// Client implements domain.PriceProvider on top of the Yahoo Finance chart API.
// It never retries; a failing upstream opens the circuit breaker and later calls fail fast.
type Client struct {
	config         Config
	httpClient     *http.Client
	circuitBreaker *gobreaker.CircuitBreaker
	logger         *zap.Logger
}

// NewClient creates a new Yahoo Finance price provider
func NewClient(config Config, log *zap.Logger) *Client {
	log = logger.OrNop(log)
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	st := gobreaker.Settings{
		Name:        "YahooFinance",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		// A caller giving up says nothing about the upstream
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errCallerAborted)
		},
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Info("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &Client{
		config:         config,
		httpClient:     &http.Client{Timeout: config.Timeout},
		circuitBreaker: gobreaker.NewCircuitBreaker(st),
		logger:         log,
	}
}

// FetchSeries fetches both instruments for [from, to] and merges them into a forward-filled series
// Returns domain.ErrDataUnavailable (wrapped) when either symbol cannot be resolved
func (c *Client) FetchSeries(ctx context.Context, from, to time.Time) (domain.PriceSeries, error) {
	asset, err := c.FetchQuotes(ctx, c.config.AssetSymbol, from, to)
	if err != nil {
		return nil, err
	}

	fx, err := c.FetchQuotes(ctx, c.config.FXSymbol, from, to)
	if err != nil {
		return nil, err
	}

	series, err := domain.BuildPriceSeries(asset, fx)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Fetched price series",
		zap.String("asset", c.config.AssetSymbol),
		zap.String("fx", c.config.FXSymbol),
		zap.Int("samples", len(series)))

	return series, nil
}

// FetchQuotes fetches the daily closes of one symbol for the closed range [from, to]
func (c *Client) FetchQuotes(ctx context.Context, symbol string, from, to time.Time) ([]domain.Quote, error) {
	result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		quotes, err := c.queryChart(ctx, symbol, from, to)
		if err != nil && ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", errCallerAborted, ctx.Err())
		}
		return quotes, err
	})
	if errors.Is(err, errCallerAborted) {
		return nil, fmt.Errorf("fetching %s: %w", symbol, ctx.Err())
	}
	if err != nil {
		metrics.ProviderFetchesTotal.WithLabelValues(sourceName, metrics.StatusError).Inc()
		c.logger.Warn("Failed to fetch quotes",
			zap.String("symbol", symbol),
			zap.Error(err))
		return nil, fmt.Errorf("%w: symbol %s: %v", domain.ErrDataUnavailable, symbol, err)
	}

	metrics.ProviderFetchesTotal.WithLabelValues(sourceName, metrics.StatusSuccess).Inc()
	return result.([]domain.Quote), nil
}

// queryChart executes the chart request and parses the daily closes
// The upper bound is pushed to the next midnight so the end day itself is included
func (c *Client) queryChart(ctx context.Context, symbol string, from, to time.Time) ([]domain.Quote, error) {
	params := url.Values{}
	params.Set("interval", "1d")
	params.Set("period1", strconv.FormatInt(from.Unix(), 10))
	params.Set("period2", strconv.FormatInt(to.AddDate(0, 0, 1).Unix(), 10))

	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.config.BaseURL, url.PathEscape(symbol), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return parseChart(symbol, data)
}

// parseChart converts a raw chart payload into daily quotes
// Timestamps are shifted by the exchange gmtoffset so each bar lands on its trading day.
// Null closes are kept as nil so the series builder can forward-fill them
func parseChart(symbol string, data []byte) ([]domain.Quote, error) {
	var resp chartResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s - %s", resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no result in response for %s", symbol)
	}

	result := resp.Chart.Result[0]
	if len(result.Timestamp) == 0 {
		return nil, fmt.Errorf("no timestamps in response for %s", symbol)
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) != len(result.Timestamp) {
		return nil, fmt.Errorf("mismatched data lengths for %s", symbol)
	}

	closes := result.Indicators.Quote[0].Close
	offset := result.Meta.Gmtoffset
	quotes := make([]domain.Quote, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		quotes[i] = domain.Quote{Date: time.Unix(ts+offset, 0).UTC(), Close: closes[i]}
	}

	return quotes, nil
}
