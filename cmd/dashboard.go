package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"

	"trading_journal/metrics"
	"trading_journal/render"
	"trading_journal/ticker"
)

const clearScreen = "\033[H\033[2J"

type dashboardCmd struct {
	app         *App
	once        bool
	csvPath     string
	csvInterval time.Duration
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show trading stats and live coin prices" }
func (*dashboardCmd) Usage() string {
	return `tj dashboard [-once] [-csv <file>] [-csv-interval <duration>]

  Shows the trade summary, the recent trades and live 24h prices of the
  configured coins. Prices refresh every TJ_TICKER_INTERVAL until interrupted.
  With -csv a performance snapshot is appended to <file> every -csv-interval.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.once, "once", false, "Fetch prices once, print and exit.")
	f.StringVar(&c.csvPath, "csv", "", "Append performance snapshots to this CSV file.")
	f.DurationVar(&c.csvInterval, "csv-interval", 5*time.Minute, "Interval between performance snapshots.")
}

func (c *dashboardCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := c.app.Config
	updates := make(chan ticker.Snapshot, 1)
	quotes := ticker.NewSyncClient(c.app.quotes(), cfg.Symbols,
		ticker.WithInterval(cfg.TickerInterval),
		ticker.WithTimeLayout(cfg.TimeLayout),
		ticker.WithOnUpdate(func(s ticker.Snapshot) {
			// keep only the latest snapshot for the render loop
			select {
			case <-updates:
			default:
			}
			updates <- s
		}),
	)

	if c.once {
		quotes.Start(ctx)
		defer quotes.Stop()
		select {
		case s := <-updates:
			if err := c.draw(ctx, c.app.Out, s); err != nil {
				return c.app.fail("%v", err)
			}
			return subcommands.ExitSuccess
		case <-ctx.Done():
			return c.app.fail("%v", ctx.Err())
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	if c.csvPath != "" {
		g.Go(func() error {
			metrics.MonitorPerformance(ctx, c.app.Trades, c.csvInterval, c.csvPath)
			return nil
		})
	}
	g.Go(func() error {
		quotes.Start(ctx)
		defer quotes.Stop()
		if err := c.draw(ctx, c.app.Out, quotes.Snapshot()); err != nil {
			return err
		}
		for {
			select {
			case s := <-updates:
				if err := c.draw(ctx, c.app.Out, s); err != nil {
					return err
				}
			case <-ctx.Done():
				return nil
			}
		}
	})

	if err := g.Wait(); err != nil {
		return c.app.fail("%v", err)
	}
	fmt.Fprintln(c.app.Out, "Dashboard stopped")
	return subcommands.ExitSuccess
}

func (c *dashboardCmd) draw(ctx context.Context, w io.Writer, s ticker.Snapshot) error {
	trades, err := c.app.Trades.List(ctx)
	if err != nil {
		return err
	}
	if !c.once {
		fmt.Fprint(w, clearScreen)
	}
	return render.WriteDashboard(w, render.Dashboard{
		Stats:    metrics.Calculate(trades),
		Quotes:   s,
		Trades:   trades,
		Currency: c.app.Config.Currency,
	})
}

type statsCmd struct {
	app        *App
	cumulative bool
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "show performance statistics of closed trades" }
func (*statsCmd) Usage() string {
	return `tj stats [-cumulative]

  Prints total, win rate, average, best and worst P/L over completed trades.
  -cumulative adds the running P/L of every completed trade in date order.
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.cumulative, "cumulative", false, "Also print the cumulative P/L series.")
}

func (c *statsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	trades, err := c.app.Trades.List(ctx)
	if err != nil {
		return c.app.fail("%v", err)
	}
	if err := render.WriteStats(c.app.Out, metrics.Calculate(trades), c.app.Config.Currency); err != nil {
		return c.app.fail("%v", err)
	}
	if c.cumulative {
		fmt.Fprintln(c.app.Out)
		if err := render.WriteCumulative(c.app.Out, metrics.Cumulative(trades), c.app.Config.Currency); err != nil {
			return c.app.fail("%v", err)
		}
	}
	return subcommands.ExitSuccess
}
