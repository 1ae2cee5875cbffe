// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jordan/marketing-audit/internal/analyzer"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCheckResults outputs one analyzer run's results, one line per
// category with a status glyph and the feedback sentence.
func (p *Printer) PrintCheckResults(title string, results []analyzer.CheckResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	for i, result := range results {
		sb.WriteString(fmt.Sprintf("%s %s", statusGlyph(result.Status), result.Category))
		if result.Score != nil {
			sb.WriteString(fmt.Sprintf(" (%.0f)", *result.Score))
		}
		sb.WriteString("\n")

		feedback := result.FeedbackSummary
		if feedback == "" {
			feedback = result.Notes
		}
		if feedback != "" {
			if len(feedback) > 50 {
				feedback = feedback[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  %s\n", feedback))
		}
		if i < len(results)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(strings.ToUpper(title), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScoreSummary outputs the aggregate line for one report or set.
func (p *Printer) PrintScoreSummary(title string, score *float64, maxScore int, tier string) {
	var sb strings.Builder
	if score == nil {
		sb.WriteString(fmt.Sprintf("Score:  not yet scored (max %d)\n", maxScore))
	} else {
		sb.WriteString(fmt.Sprintf("Score:  %.1f / %d\n", *score, maxScore))
	}
	if tier != "" {
		sb.WriteString(fmt.Sprintf("Tier:   %s", strings.ToUpper(tier)))
	}

	p.printBox(strings.ToUpper(title), strings.TrimSuffix(sb.String(), "\n"))
}

func statusGlyph(status analyzer.Status) string {
	switch status {
	case analyzer.StatusPass:
		return "✓"
	case analyzer.StatusWarning:
		return "~"
	case analyzer.StatusError:
		return "✗"
	default:
		return "•"
	}
}
