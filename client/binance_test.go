package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adshao/go-binance/v2/common"
)

func TestFetchTickers(t *testing.T) {
	var gotPath, gotSymbols string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSymbols = r.URL.Query().Get("symbols")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"symbol":"ETHUSDT","priceChange":"-12.5","priceChangePercent":"-0.41","lastPrice":"3012.10","volume":"1000"},
			{"symbol":"BTCUSDT","priceChange":"500","priceChangePercent":"0.80","lastPrice":"64000.01","volume":"20"}
		]`))
	}))
	defer server.Close()

	c := NewBinanceClient(server.URL, server.Client())
	tickers, err := c.FetchTickers(context.Background(), []string{"BTCUSDT", "ETHUSDT"})
	if err != nil {
		t.Fatalf("FetchTickers failed: %v", err)
	}

	if gotPath != "/api/v3/ticker/24hr" {
		t.Errorf("path = %q, want /api/v3/ticker/24hr", gotPath)
	}
	if gotSymbols != `["BTCUSDT","ETHUSDT"]` {
		t.Errorf("symbols = %q", gotSymbols)
	}
	if len(tickers) != 2 {
		t.Fatalf("len(tickers) = %d, want 2", len(tickers))
	}
	if tickers[0].Symbol != "ETHUSDT" || tickers[0].LastPrice != "3012.10" || tickers[0].PriceChangePercent != "-0.41" {
		t.Errorf("tickers[0] = %+v", tickers[0])
	}
	if tickers[1].Volume != "20" {
		t.Errorf("tickers[1].Volume = %q", tickers[1].Volume)
	}
}

func TestFetchTickers_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
	}))
	defer server.Close()

	c := NewBinanceClient(server.URL, server.Client())
	_, err := c.FetchTickers(context.Background(), []string{"NOPEUSDT"})
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *common.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *common.APIError in chain", err)
	}
	if apiErr.Message != "Invalid symbol." {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if !strings.Contains(err.Error(), "Invalid symbol.") {
		t.Errorf("err = %q", err)
	}
}

func TestFetchTickers_NoSymbols(t *testing.T) {
	c := NewBinanceClient("http://127.0.0.1:0", nil)
	if _, err := c.FetchTickers(context.Background(), nil); err == nil {
		t.Error("expected error for empty symbol list")
	}
}

func TestFetchTickers_Canceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewBinanceClient(server.URL, server.Client())
	if _, err := c.FetchTickers(ctx, []string{"BTCUSDT"}); err == nil {
		t.Error("expected error for canceled context")
	}
}
