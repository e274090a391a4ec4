package linkedin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/auto-applier/internal/types"
)

// fakeDriver is a scripted stand-in for the Chrome driver. Evaluate
// results, element texts and existence checks are consumed from queues
// in call order.
type fakeDriver struct {
	navigated []string
	clicked   []string
	waited    []string
	typed     map[string][]string
	uploads   map[string]string

	// redirectTo, when set, is the URL reported after every
	// navigation, regardless of the target.
	redirectTo string
	url        string

	texts  map[string][]string
	exists map[string][]bool
	evals  []string
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		typed:   make(map[string][]string),
		uploads: make(map[string]string),
		texts:   make(map[string][]string),
		exists:  make(map[string][]bool),
	}
}

func (f *fakeDriver) pushText(selector string, values ...string) {
	f.texts[selector] = append(f.texts[selector], values...)
}

func (f *fakeDriver) pushExists(selector string, values ...bool) {
	f.exists[selector] = append(f.exists[selector], values...)
}

func (f *fakeDriver) pushEval(results ...string) {
	f.evals = append(f.evals, results...)
}

func (f *fakeDriver) Navigate(_ context.Context, url string) error {
	f.navigated = append(f.navigated, url)
	if f.redirectTo != "" {
		f.url = f.redirectTo
	} else {
		f.url = url
	}
	return nil
}

func (f *fakeDriver) CurrentURL(context.Context) (string, error) {
	return f.url, nil
}

func (f *fakeDriver) Reload(ctx context.Context) error {
	return f.Navigate(ctx, f.url)
}

func (f *fakeDriver) WaitVisible(_ context.Context, selector string) error {
	f.waited = append(f.waited, selector)
	return nil
}

func (f *fakeDriver) Exists(_ context.Context, selector string) (bool, error) {
	queue := f.exists[selector]
	if len(queue) == 0 {
		return false, nil
	}
	f.exists[selector] = queue[1:]
	return queue[0], nil
}

func (f *fakeDriver) Click(_ context.Context, selector string) error {
	f.clicked = append(f.clicked, selector)
	return nil
}

func (f *fakeDriver) Text(_ context.Context, selector string) (string, error) {
	queue := f.texts[selector]
	if len(queue) == 0 {
		return "", fmt.Errorf("no scripted text for selector %q", selector)
	}
	f.texts[selector] = queue[1:]
	return queue[0], nil
}

func (f *fakeDriver) HTML(context.Context, string) (string, error) {
	return "", nil
}

func (f *fakeDriver) SendKeys(_ context.Context, selector, value string) error {
	f.typed[selector] = append(f.typed[selector], value)
	return nil
}

func (f *fakeDriver) Clear(context.Context, string) error {
	return nil
}

func (f *fakeDriver) SetUpload(_ context.Context, selector, path string) error {
	f.uploads[selector] = path
	return nil
}

func (f *fakeDriver) Evaluate(_ context.Context, _ string, out any) error {
	if len(f.evals) == 0 {
		return fmt.Errorf("no scripted evaluate result left")
	}
	result := f.evals[0]
	f.evals = f.evals[1:]
	if out == nil {
		return nil
	}
	return json.Unmarshal([]byte(result), out)
}

func (f *fakeDriver) ScrollSlow(context.Context) error {
	return nil
}

func (f *fakeDriver) Close() error {
	return nil
}

// fakeAnswerer resolves fields from a fixed table, recording calls.
type fakeAnswerer struct {
	answers     map[string]types.Answer
	repaired    map[string]types.Answer
	repairCalls []string
	summary     string
}

func (f *fakeAnswerer) Answer(_ context.Context, field types.Field, _ *types.Job) (types.Answer, error) {
	if answer, ok := f.answers[field.Label]; ok {
		return answer, nil
	}
	return types.Answer{Kind: field.Kind, Source: types.SourceFallback}, nil
}

func (f *fakeAnswerer) AttemptRepair(_ context.Context, field types.Field, prior types.Answer, serverError string) (types.Answer, error) {
	f.repairCalls = append(f.repairCalls, serverError)
	if answer, ok := f.repaired[field.Label]; ok {
		return answer, nil
	}
	return prior, nil
}

func (f *fakeAnswerer) SummarizeJob(_ context.Context, job *types.Job) error {
	if job.Summary == "" {
		job.SetSummary(f.summary)
	}
	return nil
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}
