package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"trading_journal/logger"
	"trading_journal/models"
	"trading_journal/render"
)

type journalCmd struct{ app *App }

func (*journalCmd) Name() string     { return "journal" }
func (*journalCmd) Synopsis() string { return "list journal entries" }
func (*journalCmd) Usage() string {
	return `tj journal

  Lists journal entries, newest first.
`
}
func (*journalCmd) SetFlags(_ *flag.FlagSet) {}

func (c *journalCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	journals, err := c.app.Journals.List(ctx)
	if err != nil {
		return c.app.fail("%v", err)
	}
	if err := render.WriteJournals(c.app.Out, journals); err != nil {
		return c.app.fail("%v", err)
	}
	return subcommands.ExitSuccess
}

type journalAddCmd struct {
	app      *App
	title    string
	content  string
	category string
	date     string
	keywords string
	symbols  string
	ai       bool
}

func (*journalAddCmd) Name() string     { return "journal-add" }
func (*journalAddCmd) Synopsis() string { return "write a journal entry" }
func (*journalAddCmd) Usage() string {
	return `tj journal-add -title <title> [-content <text>] [options]

  Adds a journal entry. With -ai the mentioned symbols are recognized and
  keywords are suggested by Gemini (needs GEMINI_API_KEY and at least 10
  characters of content).
`
}

func (c *journalAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.title, "title", "", "Entry title.")
	f.StringVar(&c.content, "content", "", "Entry body.")
	f.StringVar(&c.category, "category", models.DefaultJournalCategory, "Entry category.")
	f.StringVar(&c.date, "date", "", "Entry date, YYYY-MM-DD (defaults to today).")
	f.StringVar(&c.keywords, "keywords", "", "Comma separated keywords.")
	f.StringVar(&c.symbols, "symbols", "", "Comma separated linked symbols.")
	f.BoolVar(&c.ai, "ai", false, "Recognize symbols and suggest keywords with Gemini.")
}

func (c *journalAddCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j := models.Journal{
		Date:          c.date,
		Category:      c.category,
		Title:         c.title,
		Content:       c.content,
		LinkedSymbols: splitComma(c.symbols),
		Keywords:      splitComma(c.keywords),
	}
	if c.ai {
		c.enrich(ctx, &j)
	}

	added, err := c.app.Journals.Add(ctx, j)
	if err != nil {
		return c.app.fail("%v", err)
	}
	fmt.Fprintf(c.app.Out, "Added journal entry %s\n", render.ShortID(added.ID))
	return subcommands.ExitSuccess
}

// enrich fills symbols and keywords from the model. Failures only warn so the
// entry is still saved.
func (c *journalAddCmd) enrich(ctx context.Context, j *models.Journal) {
	analyst, err := c.app.Analyst(ctx)
	if err != nil {
		logger.Warnf("AI suggestions unavailable: %v", err)
		return
	}
	if symbols, err := analyst.ExtractSymbols(ctx, *j); err != nil {
		logger.Warnf("Error recognizing symbols: %v", err)
	} else if len(j.LinkedSymbols) == 0 {
		j.LinkedSymbols = symbols
	}
	if keywords, err := analyst.RecommendKeywords(ctx, *j); err != nil {
		logger.Warnf("Error recommending keywords: %v", err)
	} else {
		j.Keywords = keywords
	}
}

type journalShowCmd struct {
	app *App
	raw bool
}

func (*journalShowCmd) Name() string     { return "journal-show" }
func (*journalShowCmd) Synopsis() string { return "show a journal entry and its AI analysis" }
func (*journalShowCmd) Usage() string {
	return `tj journal-show [-raw] <id>

  Renders the entry as markdown in the terminal.
`
}

func (c *journalShowCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print the markdown source instead of rendering it.")
}

func (c *journalShowCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage(c)
	}
	j, err := c.app.Journals.Get(ctx, f.Arg(0))
	if err != nil {
		return c.app.fail("%v", err)
	}
	if err := writeMarkdown(c.app.Out, render.JournalMarkdown(j), c.raw); err != nil {
		return c.app.fail("%v", err)
	}
	return subcommands.ExitSuccess
}

type journalDeleteCmd struct{ app *App }

func (*journalDeleteCmd) Name() string     { return "journal-delete" }
func (*journalDeleteCmd) Synopsis() string { return "delete a journal entry" }
func (*journalDeleteCmd) Usage() string {
	return `tj journal-delete <id>
`
}
func (*journalDeleteCmd) SetFlags(_ *flag.FlagSet) {}

func (c *journalDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage(c)
	}
	if err := c.app.Journals.Delete(ctx, f.Arg(0)); err != nil {
		return c.app.fail("%v", err)
	}
	fmt.Fprintln(c.app.Out, "Journal entry deleted")
	return subcommands.ExitSuccess
}

type analyzeCmd struct {
	app *App
	raw bool
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "analyze a journal entry with Gemini" }
func (*analyzeCmd) Usage() string {
	return `tj analyze [-raw] <id>

  Asks Gemini for technical and mindset feedback on the entry, stores it on
  the entry and shows the result. Needs GEMINI_API_KEY.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print the markdown source instead of rendering it.")
}

func (c *analyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage(c)
	}
	j, err := c.app.Journals.Get(ctx, f.Arg(0))
	if err != nil {
		return c.app.fail("%v", err)
	}
	analyst, err := c.app.Analyst(ctx)
	if err != nil {
		return c.app.fail("%v", err)
	}
	result, err := analyst.Analyze(ctx, j)
	if err != nil {
		return c.app.fail("%v", err)
	}
	j, err = c.app.Journals.SetAnalysis(ctx, j.ID, result)
	if err != nil {
		return c.app.fail("%v", err)
	}
	if err := writeMarkdown(c.app.Out, render.JournalMarkdown(j), c.raw); err != nil {
		return c.app.fail("%v", err)
	}
	return subcommands.ExitSuccess
}

func writeMarkdown(w io.Writer, md string, raw bool) error {
	if raw {
		_, err := io.WriteString(w, md)
		return err
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
