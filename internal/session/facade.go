// Package session gates the application flow behind a strict readiness
// sequence: profile, answerer, parameters, then login, then driving.
package session

import (
	"context"

	"github.com/jonathan/auto-applier/internal/answers"
	"github.com/jonathan/auto-applier/internal/browser"
	"github.com/jonathan/auto-applier/internal/config"
	"github.com/jonathan/auto-applier/internal/linkedin"
	"github.com/jonathan/auto-applier/internal/resume"
)

// Parameters is everything SetParameters binds in one call.
type Parameters struct {
	Filters   *config.Filters
	Secrets   config.Secrets
	OutputDir string

	// ResumePDF is attached to resume upload fields. Optional.
	ResumePDF string

	// SkipOnRejection discards postings whose forms keep rejecting
	// answers after one repair pass.
	SkipOnRejection bool

	// SkipSubmit fills forms but discards them before the final
	// submit.
	SkipSubmit bool
}

// Session owns the readiness state and the orchestrator. All methods
// are meant for a single goroutine; the drive loop itself honors the
// context it is given.
type Session struct {
	driver browser.Driver
	ready  *Readiness

	profile   string
	resume    *resume.Resume
	answerer  *answers.Answerer
	generator answers.CoverLetterGenerator
	params    Parameters

	// AnswerRecorder and ApplicationRecorder observe the run when set
	// before StartApply.
	AnswerRecorder      linkedin.AnswerRecorder
	ApplicationRecorder linkedin.ApplicationRecorder

	manager *linkedin.Manager
}

// New builds a session around a browser driver.
func New(driver browser.Driver) *Session {
	return &Session{driver: driver, ready: NewReadiness()}
}

// Readiness exposes the readiness state read-only for reporting.
func (s *Session) Readiness() *Readiness {
	return s.ready
}

// SetProfileAndResume binds the plain-text profile and the validated
// resume. On any rejection the previous values are kept.
func (s *Session) SetProfileAndResume(profile string, r *resume.Resume) error {
	if profile == "" {
		return &ArgumentError{Message: "profile cannot be empty"}
	}
	if r == nil {
		return &ArgumentError{Message: "resume cannot be empty"}
	}
	s.profile = profile
	s.resume = r
	s.ready.Mark(PredProfileSet)
	return nil
}

// SetAnswererAndGenerator wires the answer dispatcher and the
// cover-letter generator. Requires the profile to be bound first, since
// the answerer prompts are composed from it.
func (s *Session) SetAnswererAndGenerator(a *answers.Answerer, g answers.CoverLetterGenerator) error {
	if missing := s.ready.Missing(PredProfileSet); len(missing) > 0 {
		return &PreconditionError{Operation: "set_answerer_and_generator", Missing: missing}
	}
	if a == nil {
		return &ArgumentError{Message: "answerer cannot be empty"}
	}
	a.Generator = g
	s.answerer = a
	s.generator = g
	s.ready.Mark(PredAnswererSet)
	return nil
}

// SetParameters binds filters, credentials and output locations.
func (s *Session) SetParameters(params Parameters) error {
	if params.Filters == nil {
		return &ArgumentError{Message: "filters cannot be empty"}
	}
	if params.Secrets.Email == "" || params.Secrets.Password == "" {
		return &ArgumentError{Message: "credentials cannot be empty"}
	}
	s.params = params
	s.ready.Mark(PredCredentialsSet)
	s.ready.Mark(PredParametersSet)
	return nil
}

// StartLogin runs the login flow with the bound credentials.
func (s *Session) StartLogin(ctx context.Context) error {
	if missing := s.ready.Missing(PredCredentialsSet); len(missing) > 0 {
		return &PreconditionError{Operation: "start_login", Missing: missing}
	}
	auth := linkedin.NewAuthenticator(s.driver, s.params.Secrets.Email, s.params.Secrets.Password)
	if err := auth.Login(ctx); err != nil {
		return err
	}
	s.ready.Mark(PredLoggedIn)
	return nil
}

// StartApply enters the drive loop, applying to every discovered
// posting.
func (s *Session) StartApply(ctx context.Context) error {
	return s.startDrive(ctx, "start_apply", false)
}

// StartCollectData walks the search plan recording postings without
// applying.
func (s *Session) StartCollectData(ctx context.Context) error {
	return s.startDrive(ctx, "start_collect_data", true)
}

func (s *Session) startDrive(ctx context.Context, operation string, collectOnly bool) error {
	missing := s.ready.Missing(PredLoggedIn, PredProfileSet, PredAnswererSet, PredParametersSet)
	if len(missing) > 0 {
		return &PreconditionError{Operation: operation, Missing: missing}
	}

	applier := linkedin.NewEasyApplier(s.driver, s.answerer)
	applier.ResumePDF = s.params.ResumePDF
	applier.SkipOnRejection = s.params.SkipOnRejection
	applier.SkipSubmit = s.params.SkipSubmit
	if g, ok := s.generator.(linkedin.ResumeGenerator); ok {
		applier.Generator = g
	}
	applier.Recorder = s.AnswerRecorder

	s.manager = linkedin.NewManager(s.driver, applier, s.params.Filters, s.params.OutputDir)
	s.manager.CollectOnly = collectOnly
	s.manager.Recorder = s.ApplicationRecorder

	return s.manager.Run(ctx)
}

// State reports the orchestrator state of the active or last run.
func (s *Session) State() linkedin.State {
	if s.manager == nil {
		return linkedin.StateIdle
	}
	return s.manager.State()
}
