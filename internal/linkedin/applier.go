package linkedin

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jonathan/auto-applier/internal/browser"
	"github.com/jonathan/auto-applier/internal/types"
)

// premiumReloadLimit is how many times a posting is reloaded after an
// upsell redirect before giving up on it.
const premiumReloadLimit = 3

// resumeRenderAttempts bounds on-the-spot resume PDF generation.
const resumeRenderAttempts = 3

// dateLayout is the format the datepicker widget accepts.
const dateLayout = "01/02/06"

// Answerer resolves form fields to typed answers. Satisfied by
// answers.Answerer.
type Answerer interface {
	Answer(ctx context.Context, field types.Field, job *types.Job) (types.Answer, error)
	AttemptRepair(ctx context.Context, field types.Field, prior types.Answer, serverError string) (types.Answer, error)
	SummarizeJob(ctx context.Context, job *types.Job) error
}

// AnswerRecorder observes every filled field. Optional; used for the
// run store and the collect-data mode.
type AnswerRecorder interface {
	RecordAnswer(ctx context.Context, job *types.Job, field types.Field, answer types.Answer) error
}

// EasyApplier fills and submits the quick-apply flow for one posting at
// a time.
type EasyApplier struct {
	driver   browser.Driver
	answerer Answerer

	// ResumePDF is the path attached to resume upload fields. Empty
	// means resume uploads are left untouched.
	ResumePDF string

	// SkipOnRejection discards a posting whose form still shows
	// validation errors after one repair pass. When false the flow
	// continues with the fallback values already entered.
	SkipOnRejection bool

	// SkipSubmit fills the whole form but discards it instead of
	// pressing the final submit. Dry-run knob, bound to SKIP_APPLY.
	SkipSubmit bool

	// Generator, when set, renders a tailored resume PDF for upload
	// fields that have no bound resume path.
	Generator ResumeGenerator

	// Recorder, when set, observes every filled field.
	Recorder AnswerRecorder
}

// ResumeGenerator renders a tailored resume PDF for one posting.
type ResumeGenerator interface {
	ResumePDF(ctx context.Context, job *types.Job) (string, error)
}

// NewEasyApplier wires an applier to its driver and answer dispatcher.
func NewEasyApplier(driver browser.Driver, answerer Answerer) *EasyApplier {
	return &EasyApplier{driver: driver, answerer: answerer}
}

// Apply drives one posting from its page to submission. The machine
// must be in the opened-posting state. On error the modal is discarded
// and the machine is moved to a terminal state by the caller.
func (e *EasyApplier) Apply(ctx context.Context, job *types.Job, m *Machine) error {
	if err := e.driver.Navigate(ctx, job.Link); err != nil {
		return &PostingError{Reason: ReasonNavigation, Message: "failed to open posting", Cause: err}
	}
	if err := e.ensureNotPremium(ctx, job); err != nil {
		return err
	}

	e.captureDescription(ctx, job)

	if err := e.driver.Click(ctx, selEasyApply); err != nil {
		return &PostingError{Reason: ReasonNoEasyApply, Message: "no clickable quick-apply button", Cause: err}
	}
	if err := m.To(StateFormOpen); err != nil {
		return err
	}

	filled := make(map[string]types.Answer)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if m.Current() == StateFormOpen {
			if err := m.To(StateFilling); err != nil {
				return err
			}
			if err := e.fillSection(ctx, job, m, filled); err != nil {
				e.discard(ctx)
				return err
			}
			if err := m.To(StateFormOpen); err != nil {
				return err
			}
		}

		done, err := e.nextOrSubmit(ctx, job, m, filled)
		if err != nil {
			e.discard(ctx)
			return err
		}
		if done {
			return nil
		}
	}
}

// captureDescription expands and reads the posting description, then
// fills the cached summary. Best effort; a posting without a readable
// description is still applied to.
func (e *EasyApplier) captureDescription(ctx context.Context, job *types.Job) {
	if ok, _ := e.driver.Exists(ctx, selSeeMore); ok {
		_ = e.driver.Click(ctx, selSeeMore)
	}
	text, err := e.driver.Text(ctx, selDescription)
	if err != nil {
		log.Printf("[APPLY] Warning: failed to read description for %s: %v", job.Title, err)
		return
	}
	job.SetDescription(text)
	if err := e.answerer.SummarizeJob(ctx, job); err != nil {
		log.Printf("[APPLY] Warning: failed to summarize description for %s: %v", job.Title, err)
	}
}

// fillSection answers every field of the currently visible form page.
// A single failing field never aborts the posting; the dispatcher
// degrades to fallbacks.
func (e *EasyApplier) fillSection(ctx context.Context, job *types.Job, m *Machine, filled map[string]types.Answer) error {
	fields, err := scanFields(ctx, e.driver)
	if err != nil {
		return &PostingError{Reason: ReasonFormRejected, Message: "failed to scan form", Cause: err}
	}

	for _, field := range fields {
		answer, err := e.answerer.Answer(ctx, field, job)
		if err != nil {
			return err
		}

		if field.Kind == types.FieldUpload {
			if err := m.To(StateUploading); err != nil {
				return err
			}
			e.attachUpload(ctx, field, answer, job)
			if err := m.To(StateFilling); err != nil {
				return err
			}
		} else {
			e.enterAnswer(ctx, field, answer)
		}

		filled[field.ID] = answer
		if e.Recorder != nil {
			if err := e.Recorder.RecordAnswer(ctx, job, field, answer); err != nil {
				log.Printf("[APPLY] Warning: failed to record answer for %q: %v", field.Label, err)
			}
		}
	}
	return nil
}

// attachUpload sets the file path on an upload input: the bound resume
// for resume fields, the generated cover letter otherwise. Without a
// bound resume PDF a tailored one is rendered on the spot.
func (e *EasyApplier) attachUpload(ctx context.Context, field types.Field, answer types.Answer, job *types.Job) {
	path := answer.FilePath
	if path == "" && strings.Contains(strings.ToLower(field.Label), "resume") {
		path = e.ResumePDF
		if path == "" && e.Generator != nil {
			path = e.generateResume(ctx, job)
		}
	}
	if path == "" {
		return
	}
	if err := e.driver.SetUpload(ctx, fieldSelector(field), path); err != nil {
		log.Printf("[APPLY] Warning: failed to attach %s to %q: %v", path, field.Label, err)
	}
}

// generateResume renders a posting-tailored resume PDF, retrying the
// generation up to three times. Returns empty on persistent failure.
func (e *EasyApplier) generateResume(ctx context.Context, job *types.Job) string {
	for attempt := 1; attempt <= resumeRenderAttempts; attempt++ {
		path, err := e.Generator.ResumePDF(ctx, job)
		if err == nil {
			return path
		}
		log.Printf("[APPLY] Warning: resume render attempt %d failed: %v", attempt, err)
		if ctx.Err() != nil {
			return ""
		}
	}
	return ""
}

// enterAnswer writes a typed answer into its field.
func (e *EasyApplier) enterAnswer(ctx context.Context, field types.Field, answer types.Answer) {
	var err error
	switch field.Kind {
	case types.FieldSelect, types.FieldMultiSelect:
		for _, option := range answer.Selected {
			if selErr := e.selectOption(ctx, field, option); selErr != nil {
				err = selErr
			}
		}
	case types.FieldCheckbox:
		err = e.driver.Click(ctx, fieldSelector(field))
	case types.FieldDate:
		sel := fieldSelector(field)
		if err = e.driver.Clear(ctx, sel); err == nil {
			err = e.driver.SendKeys(ctx, sel, answer.Date.Format(dateLayout)+"\n")
		}
	default:
		sel := fieldSelector(field)
		if err = e.driver.Clear(ctx, sel); err == nil {
			err = e.driver.SendKeys(ctx, sel, answer.Value())
		}
	}
	if err != nil {
		log.Printf("[APPLY] Warning: failed to fill %q: %v", field.Label, err)
	}
}

// selectOption picks a dropdown option or radio by its visible text.
func (e *EasyApplier) selectOption(ctx context.Context, field types.Field, option string) error {
	js := fmt.Sprintf(`(() => {
		const want = %q;
		const sel = document.querySelector(%q);
		if (sel && sel.tagName === 'SELECT') {
			for (const opt of sel.options) {
				if (opt.text.trim() === want) {
					sel.value = opt.value;
					sel.dispatchEvent(new Event('change', {bubbles: true}));
					return true;
				}
			}
			return false;
		}
		for (const label of document.querySelectorAll('.jobs-easy-apply-content label')) {
			if (label.innerText.trim() === want) { label.click(); return true; }
		}
		return false;
	})()`, option, fieldSelector(field))

	var picked bool
	if err := e.driver.Evaluate(ctx, js, &picked); err != nil {
		return err
	}
	if !picked {
		return fmt.Errorf("option %q not found for %q", option, field.Label)
	}
	return nil
}

// fieldSelector builds a CSS selector addressing a field by its DOM id.
func fieldSelector(field types.Field) string {
	return fmt.Sprintf(`[id=%q]`, field.ID)
}

// nextOrSubmit reads the primary button, submits when it closes the
// flow, and otherwise advances to the next section, repairing inline
// validation errors once.
func (e *EasyApplier) nextOrSubmit(ctx context.Context, job *types.Job, m *Machine, filled map[string]types.Answer) (bool, error) {
	label, err := e.driver.Text(ctx, selPrimaryBtn)
	if err != nil {
		return false, &PostingError{Reason: ReasonFormRejected, Message: "primary button not found", Cause: err}
	}
	lower := strings.ToLower(label)

	if strings.Contains(lower, "submit application") {
		if e.SkipSubmit {
			log.Printf("[APPLY] SKIP_APPLY set, discarding %s instead of submitting", job.Title)
			_ = m.To(StateDiscarded)
			return false, &PostingError{Reason: ReasonSkipSubmit, Message: "submission disabled"}
		}
		e.unfollowCompany(ctx)
		if m.Current() == StateFormOpen {
			if err := m.To(StateReviewing); err != nil {
				return false, err
			}
		}
		if err := e.driver.Click(ctx, selPrimaryBtn); err != nil {
			return false, &PostingError{Reason: ReasonFormRejected, Message: "failed to submit", Cause: err}
		}
		if err := e.ensureNotPremium(ctx, job); err != nil {
			return false, err
		}
		if err := m.To(StateSubmitted); err != nil {
			return false, err
		}
		job.MarkApplied(time.Now())
		return true, nil
	}

	if err := e.driver.Click(ctx, selPrimaryBtn); err != nil {
		return false, &PostingError{Reason: ReasonFormRejected, Message: "failed to advance form", Cause: err}
	}
	if strings.Contains(lower, "review") && m.Current() == StateFormOpen {
		if err := m.To(StateReviewing); err != nil {
			return false, err
		}
	}
	if err := e.repairInlineErrors(ctx, job, filled); err != nil {
		return false, err
	}
	return false, nil
}

// repairInlineErrors runs one repair pass over fields the form flagged.
// Persisting errors either discard the posting or are carried forward
// with the fallback values, per SkipOnRejection.
func (e *EasyApplier) repairInlineErrors(ctx context.Context, job *types.Job, filled map[string]types.Answer) error {
	flagged, err := e.driver.Exists(ctx, selInlineError)
	if err != nil || !flagged {
		return nil
	}

	fields, err := scanFields(ctx, e.driver)
	if err != nil {
		return &PostingError{Reason: ReasonFormRejected, Message: "failed to rescan form", Cause: err}
	}
	for _, field := range fields {
		if field.ErrorText == "" {
			continue
		}
		prior := filled[field.ID]
		repaired, err := e.answerer.AttemptRepair(ctx, field, prior, field.ErrorText)
		if err != nil {
			return err
		}
		e.enterAnswer(ctx, field, repaired)
		filled[field.ID] = repaired
	}

	if err := e.driver.Click(ctx, selPrimaryBtn); err != nil {
		return &PostingError{Reason: ReasonFormRejected, Message: "failed to advance after repair", Cause: err}
	}
	stillFlagged, err := e.driver.Exists(ctx, selInlineError)
	if err == nil && stillFlagged {
		if e.SkipOnRejection {
			return &PostingError{Reason: ReasonFormRejected, Message: "validation errors persist after repair"}
		}
		log.Printf("[APPLY] Warning: validation errors persist for %s, continuing with fallback values", job.Title)
	}
	return nil
}

// ensureNotPremium reloads the posting after an upsell redirect, up to
// the reload limit.
func (e *EasyApplier) ensureNotPremium(ctx context.Context, job *types.Job) error {
	for attempt := 0; ; attempt++ {
		current, err := e.driver.CurrentURL(ctx)
		if err != nil {
			return &PostingError{Reason: ReasonNavigation, Message: "failed to read current URL", Cause: err}
		}
		if !strings.Contains(current, premiumMarker) {
			return nil
		}
		if attempt >= premiumReloadLimit {
			return &PostingError{Reason: ReasonPremiumRedirect, Message: "redirected to the upsell page"}
		}
		log.Printf("[APPLY] Upsell redirect, reloading posting (%d/%d)", attempt+1, premiumReloadLimit)
		if err := e.driver.Navigate(ctx, job.Link); err != nil {
			return &PostingError{Reason: ReasonNavigation, Message: "failed to reload posting", Cause: err}
		}
	}
}

// unfollowCompany unticks the follow checkbox before submitting. Best
// effort.
func (e *EasyApplier) unfollowCompany(ctx context.Context) {
	js := fmt.Sprintf(`(() => {
		for (const label of document.querySelectorAll(%q)) {
			if (label.innerText.includes('to stay up to date with their page')) { label.click(); return true; }
		}
		return false;
	})()`, selFollowLabel)
	var clicked bool
	_ = e.driver.Evaluate(ctx, js, &clicked)
}

// discard dismisses the apply modal and confirms the discard dialog.
func (e *EasyApplier) discard(ctx context.Context) {
	if err := e.driver.Click(ctx, selModalDismiss); err != nil {
		return
	}
	time.Sleep(500 * time.Millisecond)
	_ = e.driver.Click(ctx, selModalConfirm)
}
