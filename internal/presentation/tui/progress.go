package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/florentine/pkg/migrate"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Progress prints the human-readable migration log. It is the console
// side of a run; structured logs go through slog instead.
type Progress struct {
	out     io.Writer
	profile termenv.Profile
	quiet   bool
}

// NewProgress writes to out. Colors are used only when out is a terminal.
func NewProgress(out io.Writer, quiet bool) *Progress {
	return &Progress{out: out, profile: ProfileFor(out), quiet: quiet}
}

// ProfileFor picks the color profile for w: the environment's profile on a
// TTY, plain ASCII otherwise.
func ProfileFor(w io.Writer) termenv.Profile {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return termenv.EnvColorProfile()
	}
	return termenv.Ascii
}

func (p *Progress) printf(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, format, args...)
}

func (p *Progress) color(s, hex string) string {
	if p.profile == termenv.Ascii {
		return s
	}
	return termenv.String(s).Foreground(p.profile.Color(hex)).String()
}

// Loading announces the input file.
func (p *Progress) Loading(path string) {
	p.printf("Loading workflow from %s...\n", path)
}

// Found reports the node count of the input document.
func (p *Progress) Found(nodes int) {
	p.printf("Found %d nodes in workflow\n", nodes)
	p.printf("\nMigrating workflow...\n")
}

// Substitutions prints one line per rewritten node, followed by its
// warning when the default prompt was used.
func (p *Progress) Substitutions(report *migrate.Report) {
	for _, sub := range report.Substitutions {
		p.printf("%s Migrating %s: %s → %s\n", p.color("✓", "#22c55e"), sub.NodeID, sub.From, Target(sub))
		if sub.PromptFallback {
			p.printf("  %s\n", p.color(fallbackWarning(sub.Rule), "#f59e0b"))
		}
	}
	for _, id := range report.Collisions {
		p.printf("  %s\n", p.color(fmt.Sprintf("⚠ Warning: node %s was replaced by a derived node", id), "#f59e0b"))
	}
}

func fallbackWarning(rule migrate.Rule) string {
	if rule == migrate.RuleSegment {
		return "⚠ Warning: No prompt found in segment node, using default"
	}
	return "⚠ Warning: No prompt found, using default prompt"
}

// Saving announces the output file.
func (p *Progress) Saving(path string) {
	p.printf("\nSaving migrated workflow to %s...\n", path)
}

// Done prints the completion line and the follow-up checklist.
func (p *Progress) Done(nodes int) {
	p.printf("\n%s\n", p.color(fmt.Sprintf("✅ Migration complete! %d nodes in new workflow", nodes), "#22c55e"))
	p.printf("\nNext steps:\n")
	p.printf("1. Install Florence-2 custom node in ComfyUI\n")
	p.printf("2. Load the migrated workflow in ComfyUI\n")
	p.printf("3. Test with your images\n")
	p.printf("4. Adjust parameters as needed\n")
}

// Failure prints an error line. It is never silenced by quiet mode.
func (p *Progress) Failure(msg string) {
	fmt.Fprintf(p.out, "%s\n", p.color("❌ Error: "+msg, "#ef4444"))
}

// Target describes what replaced a node, e.g. "Florence2Run" or
// "Florence2Run + SAM2 pipeline" for an expansion.
func Target(sub migrate.Substitution) string {
	if sub.Rule == migrate.RuleSegment && len(sub.To) > 1 {
		return sub.To[0] + " + " + sub.To[len(sub.To)-1] + " pipeline"
	}
	return strings.Join(sub.To, ", ")
}
