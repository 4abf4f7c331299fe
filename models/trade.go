package models

import (
	"errors"
	"fmt"
	"time"
)

// Market is the venue type a trade was made on.
type Market string

const (
	MarketCoin  Market = "coin"
	MarketStock Market = "stock"
)

// IsValid reports whether m is a known market.
func (m Market) IsValid() bool {
	switch m {
	case MarketCoin, MarketStock:
		return true
	default:
		return false
	}
}

// Position is the trade direction.
type Position string

const (
	PositionBuy  Position = "buy"
	PositionSell Position = "sell"
)

// IsValid reports whether p is a known position.
func (p Position) IsValid() bool {
	switch p {
	case PositionBuy, PositionSell:
		return true
	default:
		return false
	}
}

// Sign returns +1 for buy and -1 for sell.
func (p Position) Sign() float64 {
	if p == PositionSell {
		return -1
	}
	return 1
}

// EntryType tells whether Quantity was entered as units or as a notional amount.
type EntryType string

const (
	EntryQuantity EntryType = "quantity"
	EntryAmount   EntryType = "amount"
)

// IsValid reports whether e is a known entry type.
func (e EntryType) IsValid() bool {
	switch e {
	case EntryQuantity, EntryAmount:
		return true
	default:
		return false
	}
}

// Trade is a single journal trade record.
// PnL and ExitPrice are set if and only if IsComplete is true.
type Trade struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	Market        Market    `json:"market"`
	Symbol        string    `json:"symbol"`
	Position      Position  `json:"position"`
	EntryType     EntryType `json:"entryType,omitempty"`
	Quantity      float64   `json:"quantity"`
	Price         float64   `json:"price"`
	Commission    float64   `json:"commission,omitempty"`
	Indicators    []string  `json:"indicators,omitempty"`
	TargetPrice   float64   `json:"targetPrice,omitempty"`
	StopLossPrice float64   `json:"stopLossPrice,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	IsComplete    bool      `json:"isComplete"`
	ExitPrice     *float64  `json:"exitPrice,omitempty"`
	PnL           *float64  `json:"pnl,omitempty"`
}

// EntryValue is price times quantity.
func (t Trade) EntryValue() float64 {
	return t.Price * t.Quantity
}

// PnLAt returns the profit/loss the trade would realize if closed at exitPrice,
// net of commission.
func (t Trade) PnLAt(exitPrice float64) float64 {
	exitValue := exitPrice * t.Quantity
	return (exitValue-t.EntryValue())*t.Position.Sign() - t.Commission
}

// Close marks the trade complete at exitPrice and records its P/L.
func (t *Trade) Close(exitPrice float64) {
	pnl := t.PnLAt(exitPrice)
	t.IsComplete = true
	t.ExitPrice = &exitPrice
	t.PnL = &pnl
}

// Reopen clears the exit of a completed trade.
func (t *Trade) Reopen() {
	t.IsComplete = false
	t.ExitPrice = nil
	t.PnL = nil
}

// RealizedPnL returns the recorded P/L, 0 for open trades or records missing it.
func (t Trade) RealizedPnL() float64 {
	if !t.IsComplete || t.PnL == nil {
		return 0
	}
	return *t.PnL
}

// Validate checks the fields a user has to provide.
func (t Trade) Validate() error {
	if !t.Market.IsValid() {
		return fmt.Errorf("invalid market %q", t.Market)
	}
	if !t.Position.IsValid() {
		return fmt.Errorf("invalid position %q", t.Position)
	}
	// empty entry type means quantity
	if t.EntryType != "" && !t.EntryType.IsValid() {
		return fmt.Errorf("invalid entry type %q", t.EntryType)
	}
	if t.Symbol == "" {
		return errors.New("symbol is required")
	}
	if t.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %v", t.Quantity)
	}
	if t.Price <= 0 {
		return fmt.Errorf("price must be positive, got %v", t.Price)
	}
	if t.Commission < 0 {
		return fmt.Errorf("commission must not be negative, got %v", t.Commission)
	}
	if t.IsComplete && t.ExitPrice == nil {
		return errors.New("completed trade needs an exit price")
	}
	return nil
}
