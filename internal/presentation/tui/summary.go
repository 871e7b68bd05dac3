package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/florentine/pkg/migrate"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// SummaryMarkdown renders a report as a markdown document.
func SummaryMarkdown(report *migrate.Report) string {
	var sb strings.Builder
	sb.WriteString("# Migration summary\n\n")
	sb.WriteString(fmt.Sprintf("**%d** nodes in, **%d** nodes out.\n\n", report.InputNodes, report.OutputNodes))

	if len(report.Substitutions) == 0 {
		sb.WriteString("No GroundingDino nodes found.\n")
		return sb.String()
	}

	sb.WriteString("| Node | From | To | Added | Prompt |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, sub := range report.Substitutions {
		prompt := "ok"
		if sub.PromptFallback {
			prompt = "default"
		}
		added := "-"
		if len(sub.Created) > 0 {
			added = strings.Join(sub.Created, ", ")
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n", sub.NodeID, sub.From, Target(sub), added, prompt))
	}
	return sb.String()
}

// RenderSummary renders the report for out using glamour. Terminals get
// the auto-detected style, anything else the plain "notty" style.
func RenderSummary(out io.Writer, report *migrate.Report) (string, error) {
	style := glamour.WithStandardStyle("notty")
	if ProfileFor(out) != termenv.Ascii {
		style = glamour.WithAutoStyle()
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(120))
	if err != nil {
		return "", fmt.Errorf("failed to create summary renderer: %w", err)
	}
	return r.Render(SummaryMarkdown(report))
}
