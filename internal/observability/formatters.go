// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/auto-applier/internal/types"
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

// PrintJob outputs a human-readable summary of a discovered posting.
func (p *Printer) PrintJob(job *types.Job) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:    %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", job.Company))
	sb.WriteString(fmt.Sprintf("Location: %s\n", job.Location))
	sb.WriteString(fmt.Sprintf("Link:     %s\n", job.Link))
	if job.Summary != "" {
		sb.WriteString("\nSummary:\n")
		for i, line := range strings.Split(job.Summary, "\n") {
			if i >= maxItemsToShow {
				sb.WriteString("  ...\n")
				break
			}
			sb.WriteString(fmt.Sprintf("  %s\n", line))
		}
	}

	p.printBox("POSTING", sb.String())
}

// PrintAnswer outputs one resolved form field with its provenance.
func (p *Printer) PrintAnswer(field types.Field, answer types.Answer) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Question: %s\n", field.Label))
	sb.WriteString(fmt.Sprintf("Kind:     %s\n", field.Kind))
	sb.WriteString(fmt.Sprintf("Answer:   %s\n", answer.Value()))
	sb.WriteString(fmt.Sprintf("Source:   %s\n", answer.Source))

	p.printBox("ANSWER", sb.String())
}

// RunSummary aggregates the terminal outcomes of one run.
type RunSummary struct {
	Succeeded int
	Failed    int
	Skipped   int
}

// PrintRunSummary outputs the outcome counts of a finished run.
func (p *Printer) PrintRunSummary(summary RunSummary) {
	total := summary.Succeeded + summary.Failed + summary.Skipped

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Postings seen: %d\n", total))
	sb.WriteString(fmt.Sprintf("Submitted:     %d\n", summary.Succeeded))
	sb.WriteString(fmt.Sprintf("Failed:        %d\n", summary.Failed))
	sb.WriteString(fmt.Sprintf("Skipped:       %d\n", summary.Skipped))

	p.printBox("RUN SUMMARY", sb.String())
}
