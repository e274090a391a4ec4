package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/auto-applier/internal/types"
)

func TestPrintJob(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJob(&types.Job{
		Title:    "Staff SRE",
		Company:  "Acme Corp",
		Location: "Berlin",
		Link:     "https://example.test/jobs/1",
		Summary:  "Reliability work at scale.",
	})
	output := buf.String()

	assert.Contains(t, output, "POSTING")
	assert.Contains(t, output, "Staff SRE")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "Reliability work at scale.")
}

func TestPrintJobNil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintJob(nil)
	assert.Empty(t, buf.String())
}

func TestPrintAnswer(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnswer(
		types.Field{Label: "Years of Go?", Kind: types.FieldNumeric},
		types.Answer{Kind: types.FieldNumeric, Number: 4, Source: types.SourceCached},
	)
	output := buf.String()

	assert.Contains(t, output, "ANSWER")
	assert.Contains(t, output, "Years of Go?")
	assert.Contains(t, output, "4")
	assert.Contains(t, output, "cached")
}

func TestPrintRunSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRunSummary(RunSummary{Succeeded: 3, Failed: 1, Skipped: 2})
	output := buf.String()

	assert.Contains(t, output, "RUN SUMMARY")
	assert.Contains(t, output, "Postings seen: 6")
	assert.Contains(t, output, "Submitted:     3")
}
