package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/subcommands"

	"trading_journal/models"
	"trading_journal/render"
	"trading_journal/repository"
)

type chatCmd struct{ app *App }

func (*chatCmd) Name() string     { return "chat" }
func (*chatCmd) Synopsis() string { return "list chat channels or read one" }
func (*chatCmd) Usage() string {
	return `tj chat [<channel>]

  Without arguments lists the channels, otherwise prints the messages of
  <channel>, oldest first.
`
}
func (*chatCmd) SetFlags(_ *flag.FlagSet) {}

func (c *chatCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	switch f.NArg() {
	case 0:
		for _, ch := range models.Channels {
			fmt.Fprintf(c.app.Out, "%-10s %-14s %s\n", ch.ID, ch.Name, ch.Description)
		}
		return subcommands.ExitSuccess
	case 1:
	default:
		return c.app.usage(c)
	}
	ch, ok := models.FindChannel(f.Arg(0))
	if !ok {
		return c.app.fail("unknown channel %q", f.Arg(0))
	}
	msgs, err := c.app.Community.Messages(ctx, ch.ID)
	if err != nil {
		return c.app.fail("%v", err)
	}
	if err := render.WriteMessages(c.app.Out, ch, msgs); err != nil {
		return c.app.fail("%v", err)
	}
	return subcommands.ExitSuccess
}

type chatPostCmd struct{ app *App }

func (*chatPostCmd) Name() string     { return "chat-post" }
func (*chatPostCmd) Synopsis() string { return "post a message to a chat channel" }
func (*chatPostCmd) Usage() string {
	return `tj chat-post <channel> <text...>

  Posts as the nickname set with "tj nickname".
`
}
func (*chatPostCmd) SetFlags(_ *flag.FlagSet) {}

func (c *chatPostCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		return c.app.usage(c)
	}
	msg, err := c.app.Community.Post(ctx, f.Arg(0), strings.Join(f.Args()[1:], " "))
	if err != nil {
		return c.app.fail("%v", err)
	}
	fmt.Fprintf(c.app.Out, "Posted to #%s as %s\n", msg.ChannelID, msg.Nickname)
	return subcommands.ExitSuccess
}

type chatClearCmd struct{ app *App }

func (*chatClearCmd) Name() string     { return "chat-clear" }
func (*chatClearCmd) Synopsis() string { return "delete every message of a channel" }
func (*chatClearCmd) Usage() string {
	return `tj chat-clear <channel>
`
}
func (*chatClearCmd) SetFlags(_ *flag.FlagSet) {}

func (c *chatClearCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage(c)
	}
	n, err := c.app.Community.Clear(ctx, f.Arg(0))
	if err != nil {
		return c.app.fail("%v", err)
	}
	fmt.Fprintf(c.app.Out, "Removed %d messages\n", n)
	return subcommands.ExitSuccess
}

type chatArchiveCmd struct {
	app *App
	dir string
}

func (*chatArchiveCmd) Name() string     { return "chat-archive" }
func (*chatArchiveCmd) Synopsis() string { return "save a channel's messages to a text file" }
func (*chatArchiveCmd) Usage() string {
	return `tj chat-archive [-dir <directory>] <channel>

  Writes TradingDiary_<channel>_Chat_Archive_<date>.txt with one
  "[time] nickname: text" line per message.
`
}

func (c *chatArchiveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "dir", ".", "Directory to write the archive to.")
}

func (c *chatArchiveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage(c)
	}
	ch, ok := models.FindChannel(f.Arg(0))
	if !ok {
		return c.app.fail("unknown channel %q", f.Arg(0))
	}

	path := filepath.Join(c.dir, repository.ArchiveName(ch, time.Now()))
	file, err := os.Create(path)
	if err != nil {
		return c.app.fail("could not create %q: %v", path, err)
	}
	n, err := c.app.Community.Archive(ctx, ch.ID, file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		if errors.Is(err, repository.ErrEmptyChannel) {
			fmt.Fprintln(c.app.Out, "No messages to archive")
			return subcommands.ExitSuccess
		}
		return c.app.fail("%v", err)
	}
	fmt.Fprintf(c.app.Out, "Archived %d messages to %s\n", n, path)
	return subcommands.ExitSuccess
}

type nicknameCmd struct{ app *App }

func (*nicknameCmd) Name() string     { return "nickname" }
func (*nicknameCmd) Synopsis() string { return "show or set the chat nickname" }
func (*nicknameCmd) Usage() string {
	return `tj nickname [<name>]
`
}
func (*nicknameCmd) SetFlags(_ *flag.FlagSet) {}

func (c *nicknameCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		p, ok, err := c.app.Community.Profile(ctx)
		if err != nil {
			return c.app.fail("%v", err)
		}
		if !ok {
			fmt.Fprintln(c.app.Out, "No nickname set")
			return subcommands.ExitSuccess
		}
		fmt.Fprintln(c.app.Out, p.Nickname)
		return subcommands.ExitSuccess
	}
	p, err := c.app.Community.SetNickname(ctx, strings.Join(f.Args(), " "))
	if err != nil {
		return c.app.fail("%v", err)
	}
	fmt.Fprintf(c.app.Out, "Nickname set to %s\n", p.Nickname)
	return subcommands.ExitSuccess
}
