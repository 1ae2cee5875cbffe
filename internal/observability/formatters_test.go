package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jordan/marketing-audit/internal/analyzer"
)

func TestPrintCheckResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCheckResults("Website Performance", []analyzer.CheckResult{
		{
			Category:        "SSL Certificate",
			Status:          analyzer.StatusPass,
			Score:           analyzer.Score(1),
			FeedbackSummary: "The site is served over HTTPS.",
		},
		{
			Category: "Typography",
			Status:   analyzer.StatusNeutral,
			Notes:    "Requires manual review.",
		},
	})

	out := buf.String()
	assert.Contains(t, out, "WEBSITE PERFORMANCE")
	assert.Contains(t, out, "✓ SSL Certificate (1)")
	assert.Contains(t, out, "• Typography")
	assert.Contains(t, out, "Requires manual review.")
}

func TestPrintCheckResultsEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCheckResults("Website Performance", nil)
	assert.Empty(t, buf.String())
}

func TestPrintScoreSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	score := 5.0
	p.PrintScoreSummary("Website Performance", &score, 7, "pass")

	out := buf.String()
	assert.Contains(t, out, "Score:  5.0 / 7")
	assert.Contains(t, out, "Tier:   PASS")
}

func TestPrintScoreSummaryUnscored(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScoreSummary("Brand & Logo", nil, 50, "")

	assert.Contains(t, buf.String(), "not yet scored (max 50)")
}
