package models

import "time"

// Stats is the aggregated performance of a trade list.
type Stats struct {
	TotalTrades     int     `json:"totalTrades"`
	CompletedTrades int     `json:"completedTrades"`
	Wins            int     `json:"wins"`
	Losses          int     `json:"losses"`
	TotalPnL        float64 `json:"totalPnl"`
	WinRate         float64 `json:"winRate"`
	AvgPnL          float64 `json:"avgPnl"`
	MaxProfit       float64 `json:"maxProfit"`
	MaxLoss         float64 `json:"maxLoss"`
}

// PnLPoint is one step of the cumulative P/L curve.
type PnLPoint struct {
	Index         int       `json:"index"`
	Date          time.Time `json:"date"`
	Symbol        string    `json:"symbol"`
	PnL           float64   `json:"pnl"`
	CumulativePnL float64   `json:"cumulativePnl"`
}
