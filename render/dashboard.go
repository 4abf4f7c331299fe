package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"trading_journal/models"
	"trading_journal/ticker"
)

// RecentTrades is how many trades the dashboard lists.
const RecentTrades = 5

// Dashboard is everything the dashboard screen shows.
type Dashboard struct {
	Stats    models.Stats
	Quotes   ticker.Snapshot
	Trades   []models.Trade // newest first
	Currency string
}

// WriteDashboard prints the summary cards, live quotes and recent trades.
func WriteDashboard(w io.Writer, d Dashboard) error {
	ew := &errWriter{w: w}
	ew.printf("Total trades: %d (%d completed)\n", d.Stats.TotalTrades, d.Stats.CompletedTrades)
	ew.printf("Total P/L:    %s (win rate %.1f%%)\n\n", SignedMoney(d.Stats.TotalPnL, d.Currency), d.Stats.WinRate)
	if ew.err != nil {
		return ew.err
	}
	if err := WriteQuotes(w, d.Quotes); err != nil {
		return err
	}
	ew.printf("\nRecent trades\n")
	if ew.err != nil {
		return ew.err
	}
	recent := d.Trades
	if len(recent) > RecentTrades {
		recent = recent[:RecentTrades]
	}
	return WriteTrades(w, recent, d.Currency)
}

// WriteQuotes prints the live quote board of a ticker snapshot.
func WriteQuotes(w io.Writer, s ticker.Snapshot) error {
	ew := &errWriter{w: w}
	status := "connected"
	if s.HasError() {
		status = "error: " + s.Error
	}
	updated := s.LastUpdated
	if updated == "" {
		updated = "..."
	}
	ew.printf("Live prices [%s] updated: %s\n", status, updated)

	if s.Loading && len(s.Tickers) == 0 {
		ew.printf("Loading live prices...\n")
		return ew.err
	}
	if ew.err != nil {
		return ew.err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, t := range s.Tickers {
		info, ok := models.Coins[t.Symbol]
		if !ok {
			info = models.CoinInfo{Name: t.Symbol, Symbol: t.Symbol}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", info.Symbol, info.Name, Price(t.Price()), Percent(t.ChangePercent()))
	}
	return tw.Flush()
}

// WriteTrades prints trades as a table.
func WriteTrades(w io.Writer, trades []models.Trade, currency string) error {
	if len(trades) == 0 {
		_, err := fmt.Fprintln(w, "No trades yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tSYMBOL\tMARKET\tSIDE\tQTY\tPRICE\tEXIT\tP/L")
	for _, t := range trades {
		exit, pnl := "-", "open"
		if t.IsComplete {
			if t.ExitPrice != nil {
				exit = formatNumber(*t.ExitPrice)
			}
			pnl = SignedMoney(t.RealizedPnL(), currency)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			ShortID(t.ID), t.Date.Format("2006-01-02"), t.Symbol, t.Market, t.Position,
			formatNumber(t.Quantity), formatNumber(t.Price), exit, pnl)
	}
	return tw.Flush()
}

// WriteStats prints the aggregated statistics.
func WriteStats(w io.Writer, s models.Stats, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total trades\t%d\n", s.TotalTrades)
	fmt.Fprintf(tw, "Completed\t%d\n", s.CompletedTrades)
	fmt.Fprintf(tw, "Wins / losses\t%d / %d\n", s.Wins, s.Losses)
	fmt.Fprintf(tw, "Total P/L\t%s\n", SignedMoney(s.TotalPnL, currency))
	fmt.Fprintf(tw, "Win rate\t%.1f%%\n", s.WinRate)
	fmt.Fprintf(tw, "Average P/L\t%s\n", SignedMoney(s.AvgPnL, currency))
	fmt.Fprintf(tw, "Max profit\t%s\n", SignedMoney(s.MaxProfit, currency))
	fmt.Fprintf(tw, "Max loss\t%s\n", SignedMoney(s.MaxLoss, currency))
	return tw.Flush()
}

// WriteCumulative prints the running P/L of completed trades.
func WriteCumulative(w io.Writer, points []models.PnLPoint, currency string) error {
	if len(points) == 0 {
		_, err := fmt.Fprintln(w, "No completed trades.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDATE\tSYMBOL\tP/L\tCUMULATIVE")
	for _, p := range points {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.Index, p.Date.Format("2006-01-02"), p.Symbol,
			SignedMoney(p.PnL, currency), SignedMoney(p.CumulativePnL, currency))
	}
	return tw.Flush()
}

// ShortID is the id prefix shown in tables; commands accept it back.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatNumber(f float64) string {
	return fmt.Sprintf("%g", f)
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
