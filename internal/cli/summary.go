package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/avask-dev/pgdoc/pkg/pgdoc"
)

// loadResult is one line of the final summary: a source and the documents
// it produced.
type loadResult struct {
	name string
	docs []pgdoc.Document
}

type summaryStyles struct {
	Title  lipgloss.Style
	Source lipgloss.Style
	Count  lipgloss.Style
	Detail lipgloss.Style
}

func defaultSummaryStyles() summaryStyles {
	return summaryStyles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Source: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Count:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Detail: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// renderSummary formats the per-source load results.
func renderSummary(results []loadResult) string {
	styles := defaultSummaryStyles()

	var b strings.Builder
	total := 0
	b.WriteString(styles.Title.Render("Load summary") + "\n")

	for _, res := range results {
		total += len(res.docs)
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			styles.Source.Render(res.name),
			styles.Count.Render(fmt.Sprintf("%d documents", len(res.docs)))))

		for _, doc := range res.docs {
			if title, ok := doc.Metadata[pgdoc.TitleKey]; ok {
				b.WriteString(styles.Detail.Render(
					fmt.Sprintf("    %v  %v", doc.Metadata[pgdoc.ObjectIDKey], title)) + "\n")
			}
		}
	}

	b.WriteString(styles.Title.Render(fmt.Sprintf("Total: %d documents", total)) + "\n")
	return b.String()
}
