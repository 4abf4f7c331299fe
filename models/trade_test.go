package models

import (
	"testing"
	"time"
)

func TestTrade_PnLAt(t *testing.T) {
	tests := []struct {
		name     string
		position Position
		want     float64
	}{
		{"buy", PositionBuy, 95},
		{"sell", PositionSell, -105},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Trade{Position: tt.position, Price: 100, Quantity: 2, Commission: 5}
			if got := tr.PnLAt(150); got != tt.want {
				t.Errorf("PnLAt(150) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrade_CloseAndReopen(t *testing.T) {
	tr := Trade{Position: PositionBuy, Price: 10, Quantity: 3}

	if tr.RealizedPnL() != 0 {
		t.Errorf("open trade RealizedPnL = %v, want 0", tr.RealizedPnL())
	}

	tr.Close(12)
	if !tr.IsComplete {
		t.Fatal("IsComplete = false after Close")
	}
	if tr.ExitPrice == nil || *tr.ExitPrice != 12 {
		t.Errorf("ExitPrice = %v, want 12", tr.ExitPrice)
	}
	if tr.PnL == nil || *tr.PnL != 6 {
		t.Errorf("PnL = %v, want 6", tr.PnL)
	}

	tr.Reopen()
	if tr.IsComplete || tr.ExitPrice != nil || tr.PnL != nil {
		t.Errorf("Reopen left exit state: %+v", tr)
	}
}

func TestTrade_RealizedPnLMissing(t *testing.T) {
	tr := Trade{IsComplete: true}
	if got := tr.RealizedPnL(); got != 0 {
		t.Errorf("RealizedPnL = %v, want 0", got)
	}
}

func TestTrade_Validate(t *testing.T) {
	exit := 1.0
	valid := Trade{
		Date:     time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Market:   MarketCoin,
		Symbol:   "BTCUSDT",
		Position: PositionBuy,
		Quantity: 1,
		Price:    1,
	}

	tests := []struct {
		name    string
		mutate  func(*Trade)
		wantErr bool
	}{
		{"valid", func(*Trade) {}, false},
		{"bad market", func(tr *Trade) { tr.Market = "fx" }, true},
		{"bad position", func(tr *Trade) { tr.Position = "hold" }, true},
		{"amount entry", func(tr *Trade) { tr.EntryType = EntryAmount }, false},
		{"bad entry type", func(tr *Trade) { tr.EntryType = "garbage" }, true},
		{"no symbol", func(tr *Trade) { tr.Symbol = "" }, true},
		{"zero quantity", func(tr *Trade) { tr.Quantity = 0 }, true},
		{"negative price", func(tr *Trade) { tr.Price = -1 }, true},
		{"negative commission", func(tr *Trade) { tr.Commission = -1 }, true},
		{"complete without exit", func(tr *Trade) { tr.IsComplete = true }, true},
		{"complete with exit", func(tr *Trade) { tr.IsComplete = true; tr.ExitPrice = &exit }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := valid
			tt.mutate(&tr)
			err := tr.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTicker_Price(t *testing.T) {
	tk := Ticker{LastPrice: "64012.50000000", PriceChangePercent: "-1.234"}
	if got := tk.Price().String(); got != "64012.5" {
		t.Errorf("Price() = %s, want 64012.5", got)
	}
	if got := tk.ChangePercent().String(); got != "-1.234" {
		t.Errorf("ChangePercent() = %s, want -1.234", got)
	}

	bad := Ticker{LastPrice: "n/a"}
	if !bad.Price().IsZero() {
		t.Errorf("Price() of garbage = %s, want 0", bad.Price())
	}
}
