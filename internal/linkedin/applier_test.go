package linkedin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/auto-applier/internal/types"
)

func openedMachine(t *testing.T) *Machine {
	t.Helper()
	m := NewMachine()
	advance(t, m, StateLoggedIn, StateBrowsing, StateOpenedPosting)
	return m
}

func numericFieldJSON(id, label, errText string) string {
	return mustJSON([]fieldDescriptor{{
		ID: id, Label: label, Kind: "numeric", Options: []string{}, Error: errText,
	}})
}

func TestApplySinglePageSubmit(t *testing.T) {
	driver := newFakeDriver()
	driver.pushText(selDescription, "We run large fleets.")
	driver.pushText(selPrimaryBtn, "Submit application")
	driver.pushEval(
		numericFieldJSON("q1", "Years of Go?", ""),
		"false", // unfollow probe
	)

	answerer := &fakeAnswerer{
		answers: map[string]types.Answer{
			"Years of Go?": {Kind: types.FieldNumeric, Number: 4, Source: types.SourceSynthesized},
		},
		summary: "SRE heavy role.",
	}

	applier := NewEasyApplier(driver, answerer)
	job := &types.Job{Title: "Staff SRE", Company: "Acme", Link: "https://example.test/jobs/1"}
	m := openedMachine(t)

	require.NoError(t, applier.Apply(context.Background(), job, m))

	assert.Equal(t, StateSubmitted, m.Current())
	require.NotNil(t, job.AppliedAt)
	assert.WithinDuration(t, time.Now(), *job.AppliedAt, time.Minute)
	assert.Equal(t, "We run large fleets.", job.Description)
	assert.Equal(t, "SRE heavy role.", job.Summary)
	assert.Equal(t, []string{"4"}, driver.typed[`[id="q1"]`])
	assert.Contains(t, driver.clicked, selEasyApply)
	assert.Contains(t, driver.clicked, selPrimaryBtn)
}

func TestApplyRepairsInlineErrorOnce(t *testing.T) {
	driver := newFakeDriver()
	driver.pushText(selDescription, "desc")
	driver.pushText(selPrimaryBtn, "Next", "Submit application")
	driver.pushExists(selInlineError, true, false)
	driver.pushEval(
		numericFieldJSON("q1", "Years of Go?", ""),
		numericFieldJSON("q1", "Years of Go?", "must be less than or equal to 40"),
		"[]",    // review page has nothing left to fill
		"false", // unfollow probe
	)

	answerer := &fakeAnswerer{
		answers: map[string]types.Answer{
			"Years of Go?": {Kind: types.FieldNumeric, Number: 100, Source: types.SourceSynthesized},
		},
		repaired: map[string]types.Answer{
			"Years of Go?": {Kind: types.FieldNumeric, Number: 3, Source: types.SourceSynthesized},
		},
	}

	applier := NewEasyApplier(driver, answerer)
	job := &types.Job{Title: "Staff SRE", Company: "Acme", Link: "https://example.test/jobs/2"}
	m := openedMachine(t)

	require.NoError(t, applier.Apply(context.Background(), job, m))

	assert.Equal(t, StateSubmitted, m.Current())
	require.Len(t, answerer.repairCalls, 1)
	assert.Equal(t, "must be less than or equal to 40", answerer.repairCalls[0])
	assert.Equal(t, []string{"100", "3"}, driver.typed[`[id="q1"]`])
}

func TestApplyPersistentErrorsSkipOnRejection(t *testing.T) {
	driver := newFakeDriver()
	driver.pushText(selDescription, "desc")
	driver.pushText(selPrimaryBtn, "Next")
	driver.pushExists(selInlineError, true, true)
	driver.pushEval(
		numericFieldJSON("q1", "Years of Go?", ""),
		numericFieldJSON("q1", "Years of Go?", "still wrong"),
	)

	answerer := &fakeAnswerer{answers: map[string]types.Answer{}}
	applier := NewEasyApplier(driver, answerer)
	applier.SkipOnRejection = true

	job := &types.Job{Title: "Staff SRE", Company: "Acme", Link: "https://example.test/jobs/3"}
	err := applier.Apply(context.Background(), job, openedMachine(t))

	var perr *PostingError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ReasonFormRejected, perr.Reason)
	assert.Contains(t, driver.clicked, selModalDismiss, "failed posting must be discarded")
}

func TestApplyPremiumRedirectGivesUpAfterReloads(t *testing.T) {
	driver := newFakeDriver()
	driver.redirectTo = "https://example.test/premium/products"

	applier := NewEasyApplier(driver, &fakeAnswerer{})
	job := &types.Job{Title: "Staff SRE", Company: "Acme", Link: "https://example.test/jobs/4"}
	err := applier.Apply(context.Background(), job, openedMachine(t))

	var perr *PostingError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ReasonPremiumRedirect, perr.Reason)
	// Initial navigation plus three reloads.
	assert.Len(t, driver.navigated, 4)
}

type stubResumeGenerator struct {
	path  string
	fails int
	calls int
}

func (g *stubResumeGenerator) ResumePDF(_ context.Context, _ *types.Job) (string, error) {
	g.calls++
	if g.calls <= g.fails {
		return "", errors.New("render failed")
	}
	return g.path, nil
}

func TestApplyGeneratesResumeWhenNoneBound(t *testing.T) {
	driver := newFakeDriver()
	driver.pushText(selDescription, "desc")
	driver.pushText(selPrimaryBtn, "Submit application")
	driver.pushEval(
		mustJSON([]fieldDescriptor{{ID: "up1", Label: "Upload your resume", Kind: "upload", Options: []string{}}}),
		"false",
	)

	answerer := &fakeAnswerer{
		answers: map[string]types.Answer{
			"Upload your resume": {Kind: types.FieldUpload, Source: types.SourceFallback},
		},
	}
	applier := NewEasyApplier(driver, answerer)
	gen := &stubResumeGenerator{path: "/tmp/out/p1/resume.pdf", fails: 2}
	applier.Generator = gen

	job := &types.Job{Title: "Staff SRE", Company: "Acme", Link: "https://example.test/jobs/7"}
	require.NoError(t, applier.Apply(context.Background(), job, openedMachine(t)))

	assert.Equal(t, 3, gen.calls, "generation is retried until the attempt budget")
	assert.Equal(t, "/tmp/out/p1/resume.pdf", driver.uploads[`[id="up1"]`])
}

func TestApplySkipSubmitDiscards(t *testing.T) {
	driver := newFakeDriver()
	driver.pushText(selDescription, "desc")
	driver.pushText(selPrimaryBtn, "Submit application")
	driver.pushEval(numericFieldJSON("q1", "Years of Go?", ""))

	answerer := &fakeAnswerer{
		answers: map[string]types.Answer{
			"Years of Go?": {Kind: types.FieldNumeric, Number: 4, Source: types.SourceSynthesized},
		},
	}
	applier := NewEasyApplier(driver, answerer)
	applier.SkipSubmit = true

	job := &types.Job{Title: "Staff SRE", Company: "Acme", Link: "https://example.test/jobs/6"}
	m := openedMachine(t)
	err := applier.Apply(context.Background(), job, m)

	var perr *PostingError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ReasonSkipSubmit, perr.Reason)
	assert.Equal(t, StateDiscarded, m.Current())
	assert.Nil(t, job.AppliedAt)
	assert.Equal(t, []string{"4"}, driver.typed[`[id="q1"]`], "the form is still filled end to end")
	assert.NotContains(t, driver.clicked, selPrimaryBtn)
	assert.Contains(t, driver.clicked, selModalDismiss)
}

func TestApplyUploadsResume(t *testing.T) {
	driver := newFakeDriver()
	driver.pushText(selDescription, "desc")
	driver.pushText(selPrimaryBtn, "Submit application")
	driver.pushEval(
		mustJSON([]fieldDescriptor{{ID: "up1", Label: "Upload your resume", Kind: "upload", Options: []string{}}}),
		"false",
	)

	answerer := &fakeAnswerer{
		answers: map[string]types.Answer{
			"Upload your resume": {Kind: types.FieldUpload, Source: types.SourceFallback},
		},
	}
	applier := NewEasyApplier(driver, answerer)
	applier.ResumePDF = "/data/resume.pdf"

	job := &types.Job{Title: "Staff SRE", Company: "Acme", Link: "https://example.test/jobs/5"}
	require.NoError(t, applier.Apply(context.Background(), job, openedMachine(t)))

	assert.Equal(t, "/data/resume.pdf", driver.uploads[`[id="up1"]`])
}
