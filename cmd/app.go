// Package cmd implements the trading journal command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"trading_journal/analysis"
	"trading_journal/client"
	"trading_journal/config"
	"trading_journal/interfaces"
	"trading_journal/logger"
	"trading_journal/repository"
)

// App is the state shared by every command.
type App struct {
	Config    config.Config
	Trades    *repository.Trades
	Journals  *repository.Journals
	Community *repository.Community

	// Quotes and Generator are built from Config when nil.
	Quotes    interfaces.QuoteSource
	Generator interfaces.TextGenerator

	Out io.Writer
	Err io.Writer

	analyst *analysis.Analyst
	cache   *analysis.Cache
}

// NewApp wires the repositories over store.
func NewApp(cfg config.Config, store interfaces.Store) *App {
	return &App{
		Config:    cfg,
		Trades:    repository.NewTrades(store),
		Journals:  repository.NewJournals(store),
		Community: repository.NewCommunity(store),
		Out:       os.Stdout,
		Err:       os.Stderr,
	}
}

// Register adds every journal command to c.
func Register(c *subcommands.Commander, app *App) {
	c.Register(&dashboardCmd{app: app}, "dashboard")
	c.Register(&statsCmd{app: app}, "dashboard")

	c.Register(&tradesCmd{app: app}, "trades")
	c.Register(&addCmd{app: app}, "trades")
	c.Register(&closeCmd{app: app}, "trades")
	c.Register(&reopenCmd{app: app}, "trades")
	c.Register(&deleteCmd{app: app}, "trades")
	c.Register(&importCmd{app: app}, "trades")

	c.Register(&journalCmd{app: app}, "journal")
	c.Register(&journalAddCmd{app: app}, "journal")
	c.Register(&journalShowCmd{app: app}, "journal")
	c.Register(&journalDeleteCmd{app: app}, "journal")
	c.Register(&analyzeCmd{app: app}, "journal")

	c.Register(&chatCmd{app: app}, "community")
	c.Register(&chatPostCmd{app: app}, "community")
	c.Register(&chatClearCmd{app: app}, "community")
	c.Register(&chatArchiveCmd{app: app}, "community")
	c.Register(&nicknameCmd{app: app}, "community")
}

func (a *App) quotes() interfaces.QuoteSource {
	if a.Quotes == nil {
		a.Quotes = client.NewBinanceClient(a.Config.BinanceBaseURL, nil)
	}
	return a.Quotes
}

// Analyst returns the journal analyst, creating the Gemini client on first use.
func (a *App) Analyst(ctx context.Context) (*analysis.Analyst, error) {
	if a.analyst != nil {
		return a.analyst, nil
	}
	if a.Generator == nil {
		g, err := analysis.NewGemini(ctx, a.Config.GeminiAPIKey, a.Config.GeminiModel)
		if err != nil {
			return nil, err
		}
		a.Generator = g
	}
	if a.Config.AnalysisCacheTTL > 0 {
		c, err := analysis.NewCache(1<<20, a.Config.AnalysisCacheTTL)
		if err != nil {
			logger.Warnf("Analysis cache disabled: %v", err)
		} else {
			a.cache = c
		}
	}
	a.analyst = analysis.NewAnalyst(a.Generator, a.cache)
	return a.analyst, nil
}

// Close releases the analysis cache, if one was created.
func (a *App) Close() {
	if a.cache != nil {
		a.cache.Close()
		a.cache = nil
	}
	a.analyst = nil
}

// fail prints err and returns the failure status.
func (a *App) fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(a.Err, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}

// usage reports a wrong argument count.
func (a *App) usage(cmd subcommands.Command) subcommands.ExitStatus {
	fmt.Fprintf(a.Err, "usage: %s", cmd.Usage())
	return subcommands.ExitUsageError
}
