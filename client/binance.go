package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"

	"trading_journal/interfaces"
	"trading_journal/logger"
	"trading_journal/models"
)

// BinanceClient reads public market data from Binance.
type BinanceClient struct {
	client *binance.Client
}

// NewBinanceClient creates a client against baseURL. An empty baseURL keeps
// the library default, a nil httpClient keeps http.DefaultClient.
func NewBinanceClient(baseURL string, httpClient *http.Client) *BinanceClient {
	// Public endpoints need no credentials.
	client := binance.NewClient("", "")
	if baseURL != "" {
		client.BaseURL = baseURL
	}
	if httpClient != nil {
		client.HTTPClient = httpClient
	}
	logger.Debugf("Binance quote source at %s", client.BaseURL)
	return &BinanceClient{client: client}
}

// FetchTickers implements interfaces.QuoteSource with one call to the 24h
// ticker statistics endpoint for all symbols.
func (b *BinanceClient) FetchTickers(ctx context.Context, symbols []string) ([]models.Ticker, error) {
	if len(symbols) == 0 {
		return nil, errors.New("no symbols requested")
	}

	stats, err := b.client.NewListPriceChangeStatsService().Symbols(symbols).Do(ctx)
	if err != nil {
		var apiErr *common.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("binance API error %d: %s: %w", apiErr.Code, apiErr.Message, err)
		}
		return nil, fmt.Errorf("failed to fetch 24h tickers: %w", err)
	}

	tickers := make([]models.Ticker, 0, len(stats))
	for _, s := range stats {
		if s == nil {
			continue
		}
		tickers = append(tickers, models.Ticker{
			Symbol:             s.Symbol,
			PriceChange:        s.PriceChange,
			PriceChangePercent: s.PriceChangePercent,
			LastPrice:          s.LastPrice,
			Volume:             s.Volume,
		})
	}
	return tickers, nil
}

var _ interfaces.QuoteSource = (*BinanceClient)(nil)
