package main

import (
	"context"
	"sync"

	"github.com/jonathan/auto-applier/internal/linkedin"
	"github.com/jonathan/auto-applier/internal/observability"
	"github.com/jonathan/auto-applier/internal/types"
)

// teeApplicationRecorder fans one posting outcome out to several
// recorders. The first failure stops the fan-out.
type teeApplicationRecorder []linkedin.ApplicationRecorder

func (t teeApplicationRecorder) RecordApplication(ctx context.Context, job *types.Job, status, reason string) error {
	for _, r := range t {
		if err := r.RecordApplication(ctx, job, status, reason); err != nil {
			return err
		}
	}
	return nil
}

// teeAnswerRecorder fans one filled field out to several recorders.
type teeAnswerRecorder []linkedin.AnswerRecorder

func (t teeAnswerRecorder) RecordAnswer(ctx context.Context, job *types.Job, field types.Field, answer types.Answer) error {
	for _, r := range t {
		if err := r.RecordAnswer(ctx, job, field, answer); err != nil {
			return err
		}
	}
	return nil
}

// countingRecorder tallies terminal outcomes for the end-of-run
// summary.
type countingRecorder struct {
	mu        sync.Mutex
	succeeded int
	failed    int
	skipped   int
}

func (c *countingRecorder) RecordApplication(_ context.Context, _ *types.Job, status, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch status {
	case linkedin.OutcomeSuccess:
		c.succeeded++
	case linkedin.OutcomeFailed:
		c.failed++
	case linkedin.OutcomeSkipped:
		c.skipped++
	}
	return nil
}

func (c *countingRecorder) summary() observability.RunSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return observability.RunSummary{
		Succeeded: c.succeeded,
		Failed:    c.failed,
		Skipped:   c.skipped,
	}
}

// printingRecorder mirrors postings and answers to the terminal in
// verbose mode.
type printingRecorder struct {
	printer *observability.Printer
}

func (p *printingRecorder) RecordApplication(_ context.Context, job *types.Job, _, _ string) error {
	p.printer.PrintJob(job)
	return nil
}

func (p *printingRecorder) RecordAnswer(_ context.Context, _ *types.Job, field types.Field, answer types.Answer) error {
	p.printer.PrintAnswer(field, answer)
	return nil
}
