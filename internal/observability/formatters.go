// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-match/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
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
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// PrintSkills outputs the skills extracted from a job description.
func (p *Printer) PrintSkills(skills []string) {
	content := "No known skills found"
	if len(skills) > 0 {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Skills found: %d\n\n", len(skills)))
		for _, skill := range skills {
			sb.WriteString(fmt.Sprintf("  • %s\n", skill))
		}
		content = strings.TrimSuffix(sb.String(), "\n")
	}
	p.printBox("EXTRACTED SKILLS", content)
}

// PrintMatchResult outputs the score, skill coverage and top bullets.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	total := len(result.Coverage.Matched) + len(result.Coverage.Missing)
	sb.WriteString(fmt.Sprintf("Score:    %d/100\n", result.Score))
	sb.WriteString(fmt.Sprintf("Matched:  %d of %d\n", len(result.Coverage.Matched), total))

	if len(result.Coverage.Matched) > 0 {
		sb.WriteString(fmt.Sprintf("  ✓ %s\n", strings.Join(result.Coverage.Matched, ", ")))
	}
	if len(result.Coverage.Missing) > 0 {
		sb.WriteString(fmt.Sprintf("  ✗ %s\n", strings.Join(result.Coverage.Missing, ", ")))
	}

	if len(result.TopBullets) > 0 {
		sb.WriteString("\nTop bullets:\n")
		count := min(len(result.TopBullets), maxItemsToShow)
		for i := 0; i < count; i++ {
			b := result.TopBullets[i]
			sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, b.Text))
			sb.WriteString(fmt.Sprintf("    %s\n", b.Reason))
		}
	}

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))
}
