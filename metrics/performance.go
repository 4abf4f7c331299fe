package metrics

import (
	"context"
	"sort"
	"time"

	"trading_journal/logger"
	"trading_journal/models"
	"trading_journal/utils"
)

// Calculate aggregates the performance of trades. The input is not modified.
// Completed trades without a recorded P/L count as 0.
func Calculate(trades []models.Trade) models.Stats {
	stats := models.Stats{TotalTrades: len(trades)}

	for _, t := range trades {
		if !t.IsComplete {
			continue
		}
		pnl := t.RealizedPnL()
		stats.CompletedTrades++
		stats.TotalPnL += pnl

		switch {
		case pnl > 0:
			stats.Wins++
		case pnl < 0:
			stats.Losses++
		}

		// Floors at 0 so an all-losing history reports no best trade, and the
		// other way around for the worst one.
		if pnl > stats.MaxProfit {
			stats.MaxProfit = pnl
		}
		if pnl < stats.MaxLoss {
			stats.MaxLoss = pnl
		}
	}

	if stats.CompletedTrades > 0 {
		n := float64(stats.CompletedTrades)
		stats.WinRate = float64(stats.Wins) / n * 100
		stats.AvgPnL = stats.TotalPnL / n
	}
	return stats
}

// Cumulative returns the running P/L of completed trades in chronological order.
func Cumulative(trades []models.Trade) []models.PnLPoint {
	completed := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if t.IsComplete {
			completed = append(completed, t)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].Date.Before(completed[j].Date)
	})

	points := make([]models.PnLPoint, len(completed))
	var running float64
	for i, t := range completed {
		pnl := t.RealizedPnL()
		running += pnl
		points[i] = models.PnLPoint{
			Index:         i + 1,
			Date:          t.Date,
			Symbol:        t.Symbol,
			PnL:           pnl,
			CumulativePnL: running,
		}
	}
	return points
}

// TradeLister provides the current trade list.
type TradeLister interface {
	List(ctx context.Context) ([]models.Trade, error)
}

// MonitorPerformance appends a stats snapshot to the CSV file at path every
// interval until ctx is done.
func MonitorPerformance(ctx context.Context, trades TradeLister, interval time.Duration, path string) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			list, err := trades.List(ctx)
			if err != nil {
				logger.Errorf("Failed to load trades for performance snapshot: %v", err)
				continue
			}

			stats := Calculate(list)
			if err := utils.AppendStatsToCSV(path, time.Now(), stats); err != nil {
				logger.Errorf("Failed to append metrics to CSV: %v", err)
				continue
			}

			logger.Infof("Performance snapshot: %d trades, P/L %.2f, win rate %.1f%%",
				stats.TotalTrades, stats.TotalPnL, stats.WinRate)

		case <-ctx.Done():
			return
		}
	}
}
