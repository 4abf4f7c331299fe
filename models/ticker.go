package models

import "github.com/shopspring/decimal"

// Ticker is one 24h quote as returned upstream. Numbers stay strings.
type Ticker struct {
	Symbol             string `json:"symbol"`
	PriceChange        string `json:"priceChange"`
	PriceChangePercent string `json:"priceChangePercent"`
	LastPrice          string `json:"lastPrice"`
	Volume             string `json:"volume"`
}

// Price parses LastPrice. Unparseable values yield zero.
func (t Ticker) Price() decimal.Decimal {
	d, err := decimal.NewFromString(t.LastPrice)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ChangePercent parses PriceChangePercent. Unparseable values yield zero.
func (t Ticker) ChangePercent() decimal.Decimal {
	d, err := decimal.NewFromString(t.PriceChangePercent)
	if err != nil {
		return decimal.Zero
	}
	return d
}
