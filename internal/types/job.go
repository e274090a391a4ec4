// Package types defines the shared domain types for the auto-applier:
// job postings, form field descriptors, and synthesized answers.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Job represents a single posting discovered by the search adapter.
// Description is populated lazily when the posting is first opened;
// Summary is the cached LLM-condensed derivative of Description.
type Job struct {
	ID          string
	Title       string
	Company     string
	Location    string
	Link        string
	ApplyMethod string
	Description string
	Summary     string
	AppliedAt   *time.Time
}

// SetDescription stores the raw job description scraped from the posting page.
func (j *Job) SetDescription(description string) {
	j.Description = description
}

// SetSummary stores the summarized job description so it is computed at most once.
func (j *Job) SetSummary(summary string) {
	j.Summary = summary
}

// MarkApplied records the submission timestamp, making the posting terminal.
func (j *Job) MarkApplied(at time.Time) {
	j.AppliedAt = &at
}

// DescriptionExcerpt returns at most n characters of the summarized
// description, falling back to the raw description when no summary exists.
func (j *Job) DescriptionExcerpt(n int) string {
	text := j.Summary
	if text == "" {
		text = j.Description
	}
	text = strings.TrimSpace(text)
	if len(text) <= n {
		return text
	}
	return text[:n] + "..."
}

// FormattedInfo renders the posting as prompt-ready text.
func (j *Job) FormattedInfo() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job Title: %s\n", j.Title))
	sb.WriteString(fmt.Sprintf("Company: %s\n", j.Company))
	if j.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", j.Location))
	}
	sb.WriteString(fmt.Sprintf("Link: %s\n", j.Link))
	if j.Summary != "" {
		sb.WriteString(fmt.Sprintf("Summarized Description:\n%s\n", j.Summary))
	} else if j.Description != "" {
		sb.WriteString(fmt.Sprintf("Description:\n%s\n", j.Description))
	}
	return sb.String()
}
