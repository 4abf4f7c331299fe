package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"trading_journal/models"
)

// JournalMarkdown renders a journal entry, with its AI analysis if any, as
// markdown.
func JournalMarkdown(j models.Journal) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", j.Title)
	fmt.Fprintf(&sb, "*%s · %s*\n\n", j.Date, j.Category)
	if content := strings.TrimSpace(j.Content); content != "" {
		sb.WriteString(content)
		sb.WriteString("\n\n")
	}
	if len(j.LinkedSymbols) > 0 {
		fmt.Fprintf(&sb, "**Symbols:** %s\n\n", codeList(j.LinkedSymbols))
	}
	if len(j.Keywords) > 0 {
		fmt.Fprintf(&sb, "**Keywords:** %s\n\n", strings.Join(j.Keywords, ", "))
	}
	if a := j.Analysis; a != nil {
		sb.WriteString("## AI analysis\n\n")
		fmt.Fprintf(&sb, "### Technical\n\n%s\n\n", a.Technical)
		fmt.Fprintf(&sb, "### Mindset\n\n%s\n\n", a.Mindset)
		fmt.Fprintf(&sb, "> %s\n", a.Quote)
	}
	return sb.String()
}

func codeList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "`" + s + "`"
	}
	return strings.Join(quoted, " ")
}

// WriteJournals prints a one-line summary per entry.
func WriteJournals(w io.Writer, journals []models.Journal) error {
	if len(journals) == 0 {
		_, err := fmt.Fprintln(w, "No journal entries yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tTITLE\tAI")
	for _, j := range journals {
		analyzed := ""
		if j.Analysis != nil {
			analyzed = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", ShortID(j.ID), j.Date, j.Category, j.Title, analyzed)
	}
	return tw.Flush()
}

// WriteMessages prints chat messages oldest first in local time.
func WriteMessages(w io.Writer, channel models.Channel, msgs []models.CommunityMessage) error {
	ew := &errWriter{w: w}
	ew.printf("#%s  %s\n", channel.Name, channel.Description)
	if len(msgs) == 0 {
		ew.printf("No messages yet.\n")
	}
	for _, m := range msgs {
		ew.printf("[%s] %s: %s\n", m.Timestamp.Local().Format("01-02 15:04"), m.Nickname, m.Text)
	}
	return ew.err
}
