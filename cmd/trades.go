package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/subcommands"

	"trading_journal/models"
	"trading_journal/render"
	"trading_journal/utils"
)

type tradesCmd struct {
	app   *App
	open  bool
	limit int
}

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "list recorded trades, newest first" }
func (*tradesCmd) Usage() string {
	return `tj trades [-open] [-n <count>]

  Lists the trade log sorted by date, newest first.
`
}

func (c *tradesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.open, "open", false, "Only show trades that are not closed yet.")
	f.IntVar(&c.limit, "n", 0, "Show at most n trades (0 for all).")
}

func (c *tradesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	trades, err := c.app.Trades.List(ctx)
	if err != nil {
		return c.app.fail("%v", err)
	}
	if c.open {
		var open []models.Trade
		for _, t := range trades {
			if !t.IsComplete {
				open = append(open, t)
			}
		}
		trades = open
	}
	if c.limit > 0 && len(trades) > c.limit {
		trades = trades[:c.limit]
	}
	if err := render.WriteTrades(c.app.Out, trades, c.app.Config.Currency); err != nil {
		return c.app.fail("%v", err)
	}
	return subcommands.ExitSuccess
}

type addCmd struct {
	app        *App
	market     string
	symbol     string
	side       string
	entryType  string
	quantity   float64
	price      float64
	commission float64
	exit       float64
	target     float64
	stopLoss   float64
	indicators string
	notes      string
	date       string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new trade" }
func (*addCmd) Usage() string {
	return `tj add -symbol <symbol> -qty <quantity> -price <price> [options]

  Records a trade. Pass -exit to record it as already closed.

Usage Examples:
$ tj add -symbol BTCUSDT -side buy -qty 0.1 -price 64000
$ tj add -market stock -symbol AAPL -side sell -qty 10 -price 190 -exit 185 -commission 2
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.market, "market", string(models.MarketCoin), "Market: coin or stock.")
	f.StringVar(&c.symbol, "symbol", "", "Traded symbol.")
	f.StringVar(&c.side, "side", string(models.PositionBuy), "Position: buy or sell.")
	f.StringVar(&c.entryType, "entry", string(models.EntryQuantity), "How the size was entered: quantity or amount.")
	f.Float64Var(&c.quantity, "qty", 0, "Quantity.")
	f.Float64Var(&c.price, "price", 0, "Entry price.")
	f.Float64Var(&c.commission, "commission", 0, "Commission paid.")
	f.Float64Var(&c.exit, "exit", 0, "Exit price; closes the trade when set.")
	f.Float64Var(&c.target, "target", 0, "Target price.")
	f.Float64Var(&c.stopLoss, "stop", 0, "Stop loss price.")
	f.StringVar(&c.indicators, "indicators", "", "Comma separated indicators used.")
	f.StringVar(&c.notes, "notes", "", "Free notes.")
	f.StringVar(&c.date, "date", "", "Entry date, YYYY-MM-DD or RFC 3339 (defaults to now).")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t := models.Trade{
		Market:        models.Market(c.market),
		Symbol:        strings.ToUpper(strings.TrimSpace(c.symbol)),
		Position:      models.Position(c.side),
		EntryType:     models.EntryType(c.entryType),
		Quantity:      c.quantity,
		Price:         c.price,
		Commission:    c.commission,
		TargetPrice:   c.target,
		StopLossPrice: c.stopLoss,
		Notes:         c.notes,
		Indicators:    splitComma(c.indicators),
	}
	if c.date != "" {
		d, err := parseDate(c.date)
		if err != nil {
			return c.app.fail("%v", err)
		}
		t.Date = d
	}
	if c.exit > 0 {
		t.Close(c.exit)
	}

	added, err := c.app.Trades.Add(ctx, t)
	if err != nil {
		return c.app.fail("%v", err)
	}
	fmt.Fprintf(c.app.Out, "Added trade %s\n", render.ShortID(added[0].ID))
	return subcommands.ExitSuccess
}

type closeCmd struct{ app *App }

func (*closeCmd) Name() string     { return "close" }
func (*closeCmd) Synopsis() string { return "close an open trade at an exit price" }
func (*closeCmd) Usage() string {
	return `tj close <id> <exit-price>

  Marks the trade complete and records its P/L net of commission.
`
}
func (*closeCmd) SetFlags(_ *flag.FlagSet) {}

func (c *closeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return c.app.usage(c)
	}
	exit, err := strconv.ParseFloat(f.Arg(1), 64)
	if err != nil || exit <= 0 {
		return c.app.fail("invalid exit price %q", f.Arg(1))
	}
	t, err := c.app.Trades.Close(ctx, f.Arg(0), exit)
	if err != nil {
		return c.app.fail("%v", err)
	}
	fmt.Fprintf(c.app.Out, "Closed %s %s: %s\n", render.ShortID(t.ID), t.Symbol,
		render.SignedMoney(t.RealizedPnL(), c.app.Config.Currency))
	return subcommands.ExitSuccess
}

type reopenCmd struct{ app *App }

func (*reopenCmd) Name() string     { return "reopen" }
func (*reopenCmd) Synopsis() string { return "reopen a closed trade" }
func (*reopenCmd) Usage() string {
	return `tj reopen <id>

  Clears the exit price and P/L of a closed trade.
`
}
func (*reopenCmd) SetFlags(_ *flag.FlagSet) {}

func (c *reopenCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage(c)
	}
	t, err := c.app.Trades.Reopen(ctx, f.Arg(0))
	if err != nil {
		return c.app.fail("%v", err)
	}
	fmt.Fprintf(c.app.Out, "Reopened %s %s\n", render.ShortID(t.ID), t.Symbol)
	return subcommands.ExitSuccess
}

type deleteCmd struct{ app *App }

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a trade" }
func (*deleteCmd) Usage() string {
	return `tj delete <id>
`
}
func (*deleteCmd) SetFlags(_ *flag.FlagSet) {}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage(c)
	}
	if err := c.app.Trades.Delete(ctx, f.Arg(0)); err != nil {
		return c.app.fail("%v", err)
	}
	fmt.Fprintln(c.app.Out, "Trade deleted")
	return subcommands.ExitSuccess
}

type importCmd struct{ app *App }

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import trades from a CSV file" }
func (*importCmd) Usage() string {
	return `tj import <file.csv>

  Imports trades from a CSV file with the headers
  date,pair,direction,entryPrice,exitPrice,size,setup and optionally
  notes,image. direction is long or short; an empty exitPrice keeps the
  trade open.
  Nothing is imported when any row is invalid.
`
}
func (*importCmd) SetFlags(_ *flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage(c)
	}
	file, err := os.Open(f.Arg(0))
	if err != nil {
		return c.app.fail("could not open %q: %v", f.Arg(0), err)
	}
	defer file.Close()

	trades, err := utils.ImportTrades(file)
	if err != nil {
		return c.app.fail("%v", err)
	}
	added, err := c.app.Trades.Add(ctx, trades...)
	if err != nil {
		return c.app.fail("%v", err)
	}
	fmt.Fprintf(c.app.Out, "Imported %d trades\n", len(added))
	return subcommands.ExitSuccess
}

func splitComma(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}
