// Package observability provides formatted output utilities for the CLI's
// text output mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/environment-evaluator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of ids listed in summaries
	maxItemsToShow = 5
)

// Printer handles formatted output for text mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content. Long lines are
// wrapped rather than cut so multi-byte text stays intact.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, part := range wrap(line, inner) {
			fmt.Fprintf(p.out, "│ %s │\n", pad(part, inner))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// wrap splits s into chunks of at most width runes.
func wrap(s string, width int) []string {
	if utf8.RuneCountInString(s) <= width {
		return []string{s}
	}
	var parts []string
	runes := []rune(s)
	for len(runes) > width {
		parts = append(parts, string(runes[:width]))
		runes = runes[width:]
	}
	return append(parts, string(runes))
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// PrintEvaluation outputs a human-readable view of a stored evaluation.
func (p *Printer) PrintEvaluation(rec *types.EvaluationRecord) {
	if rec == nil {
		return
	}

	var sb strings.Builder
	if rec.ID > 0 {
		sb.WriteString(fmt.Sprintf("ID:     %d\n", rec.ID))
	}
	sb.WriteString(fmt.Sprintf("Score:  %d\n", rec.Score))

	sb.WriteString("\nMain problems:\n")
	sb.WriteString(orNone(rec.Problem))
	sb.WriteString("\n\nKey improvement areas:\n")
	sb.WriteString(orNone(rec.ImprovementAreas))

	p.printBox("ENVIRONMENT EVALUATION", sb.String())
}

// PrintImportSummary outputs the ids stored by a batch import.
func (p *Printer) PrintImportSummary(ids []int64) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Stored: %d\n", len(ids)))

	count := min(len(ids), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %d\n", ids[i]))
	}
	if len(ids) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(ids)-maxItemsToShow))
	}

	p.printBox("IMPORT SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
