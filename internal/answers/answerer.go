// Package answers maps form-field descriptors to typed answers. Every
// synthesized answer is recorded in a persistent question cache so the
// same question, on any later posting, is answered without an LLM call.
package answers

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/jonathan/auto-applier/internal/llm"
	"github.com/jonathan/auto-applier/internal/prompts"
	"github.com/jonathan/auto-applier/internal/types"
)

// DefaultExperience is the number of years reported when a numeric
// question cannot be answered from the resume.
const DefaultExperience = 3

// Question type tags as stored in the cache file.
const (
	typeSummary      = "summary"
	typeNumeric      = "numeric"
	typeOptions      = "options"
	typeMultiOptions = "multi_options"
	typeTextual      = "textual"
	typeCoverLetter  = "cover_letter"
)

// CoverLetterGenerator produces a tailored cover-letter PDF for a
// posting and returns the path of the generated file.
type CoverLetterGenerator interface {
	CoverLetter(ctx context.Context, job *types.Job) (string, error)
}

// Answerer is the question-answer dispatcher. It classifies a field,
// probes the cache, and only then synthesizes via the LLM. LLM failures
// degrade to typed fallback answers rather than aborting the posting.
type Answerer struct {
	client   llm.Client
	composer *prompts.Composer
	cache    *Cache

	// Generator handles cover-letter upload fields. Optional; without
	// it those fields resolve to a no-op fallback.
	Generator CoverLetterGenerator

	// DefaultExperience is returned when a numeric reply cannot be
	// parsed or the LLM call fails.
	DefaultExperience int

	// FuzzyThreshold is the minimum similarity for fuzzy cache hits.
	FuzzyThreshold float64
}

// NewAnswerer wires a dispatcher to its LLM client, prompt composer and
// question cache.
func NewAnswerer(client llm.Client, composer *prompts.Composer, cache *Cache) *Answerer {
	return &Answerer{
		client:            client,
		composer:          composer,
		cache:             cache,
		DefaultExperience: DefaultExperience,
		FuzzyThreshold:    DefaultFuzzyThreshold,
	}
}

// classify picks the question type for a field. Priority order: summary
// label, enumerated options, declared numeric, cover-letter indicator,
// then wide-range textual.
func classify(field types.Field) string {
	label := strings.ToLower(field.Label)
	switch {
	case field.Kind == types.FieldSummary,
		strings.Contains(label, "summary"),
		strings.Contains(label, "tell us about yourself"):
		return typeSummary
	case field.Kind == types.FieldMultiSelect:
		return typeMultiOptions
	case field.Kind == types.FieldSelect || len(field.Options) > 0:
		return typeOptions
	case field.Kind == types.FieldNumeric:
		return typeNumeric
	case strings.Contains(label, "cover letter"):
		return typeCoverLetter
	default:
		return typeTextual
	}
}

// Answer resolves one field. The returned error is non-nil only on
// context cancellation; every other failure degrades to a fallback
// answer so a single bad field never aborts the posting.
func (a *Answerer) Answer(ctx context.Context, field types.Field, job *types.Job) (types.Answer, error) {
	if err := ctx.Err(); err != nil {
		return types.Answer{}, err
	}

	// Deterministic kinds never reach the LLM.
	switch field.Kind {
	case types.FieldDate:
		return types.Answer{Kind: types.FieldDate, Date: time.Now(), Source: types.SourceFallback}, nil
	case types.FieldCheckbox:
		return types.Answer{Kind: types.FieldCheckbox, Text: "true", Source: types.SourceFallback}, nil
	case types.FieldUpload:
		if !strings.Contains(strings.ToLower(field.Label), "cover letter") {
			// Resume uploads use the path bound at parameter-set time;
			// the orchestrator attaches it directly.
			return types.Answer{Kind: types.FieldUpload, Source: types.SourceFallback}, nil
		}
	}

	qtype := classify(field)
	normalized := Normalize(field.Label)
	hash := Hash(normalized)

	if qtype == typeCoverLetter || field.Kind == types.FieldUpload {
		return a.coverLetter(ctx, job, hash)
	}

	if entry, ok := a.cache.Lookup(qtype, normalized); ok {
		return a.fromCache(field, qtype, entry, hash), nil
	}
	if entry, _, ok := a.cache.FuzzyLookup(qtype, normalized, a.FuzzyThreshold); ok {
		return a.fromCache(field, qtype, entry, hash), nil
	}

	answer, cacheValue, ok := a.synthesize(ctx, field, job, qtype)
	answer.QuestionHash = hash
	if err := ctx.Err(); err != nil {
		return types.Answer{}, err
	}
	if !ok {
		return answer, nil
	}

	if err := a.cache.Append(qtype, normalized, cacheValue); err != nil {
		log.Printf("[answers] Warning: failed to persist answer for %q: %v", field.Label, err)
	}
	return answer, nil
}

// fromCache rebuilds a typed answer from a cache entry.
func (a *Answerer) fromCache(field types.Field, qtype string, entry Entry, hash string) types.Answer {
	answer := types.Answer{Kind: field.Kind, Source: types.SourceCached, QuestionHash: hash}
	switch qtype {
	case typeNumeric:
		answer.Number = entry.AnswerInt(a.DefaultExperience)
	case typeOptions:
		answer.Selected = []string{entry.AnswerString()}
	case typeMultiOptions:
		answer.Selected = entry.AnswerList()
	default:
		answer.Text = entry.AnswerString()
	}
	return answer
}

// synthesize calls the LLM for a field and parses the reply per type.
// The third return reports whether the answer should be cached; fallback
// answers are returned but never recorded.
func (a *Answerer) synthesize(ctx context.Context, field types.Field, job *types.Job, qtype string) (types.Answer, any, bool) {
	var prompt string
	switch qtype {
	case typeSummary:
		prompt = a.composer.Summary(job)
	case typeNumeric:
		prompt = a.composer.Numeric(field.Label, a.DefaultExperience)
	case typeOptions:
		prompt = a.composer.Options(field.Label, field.Options)
	case typeMultiOptions:
		prompt = a.composer.MultiOptions(field.Label, field.Options)
	default:
		prompt = a.composer.Textual(field.Label)
	}

	reply, err := a.client.Complete(ctx, prompt)
	if err != nil {
		log.Printf("[answers] Warning: LLM call failed for %q, using fallback: %v", field.Label, err)
		return a.fallback(field, qtype), nil, false
	}
	reply = llm.CleanResponse(reply)

	answer := types.Answer{Kind: field.Kind, Source: types.SourceSynthesized}
	switch qtype {
	case typeNumeric:
		n, ok := extractNumber(reply)
		if !ok {
			log.Printf("[answers] Warning: non-numeric reply %q for %q, using default %d", reply, field.Label, a.DefaultExperience)
			return a.fallback(field, qtype), nil, false
		}
		answer.Number = n
		return answer, n, true
	case typeOptions:
		choice := bestOptionMatch(reply, field.Options)
		answer.Selected = []string{choice}
		return answer, choice, true
	case typeMultiOptions:
		selected := matchSubset(reply, field.Options)
		if len(selected) == 0 {
			selected = []string{firstRealOption(field.Options)}
		}
		answer.Selected = selected
		return answer, selected, true
	default:
		answer.Text = reply
		return answer, reply, true
	}
}

// fallback builds the typed default answer used when synthesis fails.
func (a *Answerer) fallback(field types.Field, qtype string) types.Answer {
	answer := types.Answer{Kind: field.Kind, Source: types.SourceFallback}
	switch qtype {
	case typeNumeric:
		answer.Number = a.DefaultExperience
	case typeOptions:
		answer.Selected = []string{firstRealOption(field.Options)}
	case typeMultiOptions:
		answer.Selected = []string{firstRealOption(field.Options)}
	}
	return answer
}

// coverLetter delegates to the generator; without one the field is a
// no-op so the posting can still proceed.
func (a *Answerer) coverLetter(ctx context.Context, job *types.Job, hash string) (types.Answer, error) {
	if a.Generator == nil {
		log.Printf("[answers] Warning: cover letter requested but no generator configured")
		return types.Answer{Kind: types.FieldUpload, Source: types.SourceFallback, QuestionHash: hash}, nil
	}
	path, err := a.Generator.CoverLetter(ctx, job)
	if err != nil {
		if ctx.Err() != nil {
			return types.Answer{}, ctx.Err()
		}
		log.Printf("[answers] Warning: cover letter generation failed: %v", err)
		return types.Answer{Kind: types.FieldUpload, Source: types.SourceFallback, QuestionHash: hash}, nil
	}
	return types.Answer{Kind: types.FieldUpload, FilePath: path, Source: types.SourceSynthesized, QuestionHash: hash}, nil
}

// AttemptRepair re-prompts once with the form's own error text. On LLM
// failure the prior answer comes back unchanged, tagged fallback.
func (a *Answerer) AttemptRepair(ctx context.Context, field types.Field, prior types.Answer, serverError string) (types.Answer, error) {
	if err := ctx.Err(); err != nil {
		return types.Answer{}, err
	}

	prompt := a.composer.Fix(field.Label, prior.Value(), serverError)
	reply, err := a.client.Complete(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return types.Answer{}, ctx.Err()
		}
		log.Printf("[answers] Warning: repair call failed for %q: %v", field.Label, err)
		prior.Source = types.SourceFallback
		return prior, nil
	}
	reply = llm.CleanResponse(reply)

	qtype := classify(field)
	repaired := types.Answer{Kind: field.Kind, Source: types.SourceSynthesized, QuestionHash: prior.QuestionHash}
	switch qtype {
	case typeNumeric:
		n, ok := extractNumber(reply)
		if !ok {
			n = a.DefaultExperience
		}
		repaired.Number = n
	case typeOptions:
		repaired.Selected = []string{bestOptionMatch(reply, field.Options)}
	case typeMultiOptions:
		selected := matchSubset(reply, field.Options)
		if len(selected) == 0 {
			selected = []string{firstRealOption(field.Options)}
		}
		repaired.Selected = selected
	default:
		repaired.Text = reply
	}

	a.Remember(field, repaired)
	return repaired, nil
}

// Remember persists an answer for a field. Idempotent: re-recording an
// answer identical to the cached one is a no-op.
func (a *Answerer) Remember(field types.Field, answer types.Answer) {
	qtype := classify(field)
	normalized := Normalize(field.Label)

	var value any
	switch qtype {
	case typeNumeric:
		value = answer.Number
	case typeOptions:
		if len(answer.Selected) > 0 {
			value = answer.Selected[0]
		} else {
			value = ""
		}
	case typeMultiOptions:
		value = answer.Selected
	case typeCoverLetter:
		return
	default:
		value = answer.Text
	}

	if entry, ok := a.cache.Lookup(qtype, normalized); ok && entry.AnswerString() == answer.Value() {
		return
	}
	if err := a.cache.Append(qtype, normalized, value); err != nil {
		log.Printf("[answers] Warning: failed to persist answer for %q: %v", field.Label, err)
	}
}

// SummarizeJob fills a posting's summarized description lazily. Already
// summarized postings are left untouched.
func (a *Answerer) SummarizeJob(ctx context.Context, job *types.Job) error {
	if job.Summary != "" || job.Description == "" {
		return nil
	}
	reply, err := a.client.Complete(ctx, a.composer.SummarizeJobDescription(job.Description))
	if err != nil {
		return err
	}
	job.SetSummary(llm.CleanResponse(reply))
	return nil
}
