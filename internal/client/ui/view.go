package ui

import (
	"fmt"
	"strings"
)

// EmptyText is shown when the list has no journals.
const EmptyText = "No journals to show"

// View renders m as plain text.
func View(m Model) string {
	var b strings.Builder

	switch {
	case m.Dialog != nil:
		viewDialog(&b, m.Dialog)
	case m.Loading && len(m.Journals) == 0:
		b.WriteString("Loading...\n")
	case len(m.Journals) == 0:
		b.WriteString(EmptyText + "\n")
	default:
		if m.Loading {
			b.WriteString("Refreshing...\n")
		}
		for _, j := range m.Journals {
			fmt.Fprintf(&b, "#%d %s (%s, %s) ISSN %s, %s, founded %s\n",
				j.ID, j.Name, j.Topic, j.Language, j.ISSN, j.RecommendedPrice, j.FoundationDate)
			fmt.Fprintf(&b, "    article #%d %q by %s, %s, %d words, %d refs\n",
				j.Article.ID, j.Article.Title, j.Article.Author, j.Article.WritingDate,
				j.Article.WordCount, j.Article.ReferenceCount)
		}
	}

	for i, n := range m.Notifications {
		fmt.Fprintf(&b, "[%d] %s\n", i, n)
	}
	return b.String()
}

func viewDialog(b *strings.Builder, d *Dialog) {
	b.WriteString(d.Title() + "\n")
	for _, f := range Fields {
		fmt.Fprintf(b, "  %-24s %s\n", f, fieldValue(d.Form, f))
	}
	if d.Submitting {
		b.WriteString("Saving...\n")
	}
}
