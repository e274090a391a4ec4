package linkedin

import (
	"context"
	"encoding/csv"
	"errors"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/auto-applier/internal/browser"
	"github.com/jonathan/auto-applier/internal/config"
	"github.com/jonathan/auto-applier/internal/types"
)

// Outcome statuses, also the names of the per-status CSV files.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

// ApplicationRecorder observes every terminal posting outcome.
// Optional; used for the run store.
type ApplicationRecorder interface {
	RecordApplication(ctx context.Context, job *types.Job, status, reason string) error
}

// Manager walks the search plan page by page and drives the applier
// over every discovered posting. Postings are processed strictly in
// discovery order.
type Manager struct {
	driver    browser.Driver
	applier   *EasyApplier
	filters   *config.Filters
	blacklist *Blacklist
	machine   *Machine
	outputDir string

	// CollectOnly records discovered postings without applying.
	CollectOnly bool

	// Recorder, when set, observes terminal posting outcomes.
	Recorder ApplicationRecorder

	// delay paces page loads and posting visits. Replaceable in tests.
	delay func(ctx context.Context)
}

// NewManager wires a manager to its driver, applier and filter
// configuration. Outcome CSVs are written under outputDir.
func NewManager(driver browser.Driver, applier *EasyApplier, filters *config.Filters, outputDir string) *Manager {
	return &Manager{
		driver:    driver,
		applier:   applier,
		filters:   filters,
		blacklist: NewBlacklist(filters.TitleBlacklist, filters.CompanyBlacklist),
		machine:   NewMachine(),
		outputDir: outputDir,
		delay:     humanDelay,
	}
}

// humanDelay sleeps between 1.0 and 2.6 seconds, honoring cancellation.
func humanDelay(ctx context.Context) {
	pause := time.Duration(1000+rand.Intn(1600)) * time.Millisecond
	select {
	case <-ctx.Done():
	case <-time.After(pause):
	}
}

// State returns the orchestrator's current state.
func (m *Manager) State() State {
	return m.machine.Current()
}

// Run processes the whole search plan. Cancellation is checked at the
// top of the posting loop, so the current posting always reaches a
// terminal state first.
func (m *Manager) Run(ctx context.Context) error {
	if err := m.machine.To(StateLoggedIn); err != nil {
		return err
	}
	if err := m.machine.To(StateBrowsing); err != nil {
		return err
	}
	defer func() {
		_ = m.machine.To(StateLoggedIn)
		_ = m.machine.To(StateIdle)
	}()

	for _, query := range SearchPlan(m.filters) {
		log.Printf("[MANAGER] Searching for %q in %q", query.Position, query.Location)
		for page := 0; ; page++ {
			if err := ctx.Err(); err != nil {
				return err
			}

			jobs, err := m.loadPage(ctx, query, page)
			if err != nil {
				log.Printf("[MANAGER] Warning: failed to load page %d: %v", page, err)
				break
			}
			if len(jobs) == 0 {
				log.Printf("[MANAGER] No more postings for %q in %q", query.Position, query.Location)
				break
			}

			if err := m.processPage(ctx, jobs); err != nil {
				return err
			}
		}
	}
	return nil
}

// loadPage navigates to one results page and scans its tiles. Slow
// scrolling forces the lazy list to render fully.
func (m *Manager) loadPage(ctx context.Context, query SearchQuery, page int) ([]*types.Job, error) {
	if err := m.driver.Navigate(ctx, SearchURL(m.filters, query, page)); err != nil {
		return nil, err
	}
	m.delay(ctx)
	if noResults, _ := m.driver.Exists(ctx, selNoResults); noResults {
		return nil, nil
	}
	if err := m.driver.WaitVisible(ctx, selResultsList); err != nil {
		return nil, err
	}
	if err := m.driver.ScrollSlow(ctx); err != nil {
		return nil, err
	}
	return scanTiles(ctx, m.driver)
}

// processPage walks the postings of one page in discovery order.
func (m *Manager) processPage(ctx context.Context, jobs []*types.Job) error {
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return err
		}

		if m.blacklist.Blocked(job.Title, job.Company, job.Link) {
			log.Printf("[MANAGER] Blacklisted %s at %s, skipping", job.Title, job.Company)
			m.recordOutcome(ctx, job, OutcomeSkipped, "blacklisted")
			continue
		}
		m.blacklist.MarkSeen(job.Link)

		if m.CollectOnly {
			m.recordOutcome(ctx, job, OutcomeSkipped, "collect_only")
			continue
		}
		if alreadyHandled(job.ApplyMethod) {
			m.recordOutcome(ctx, job, OutcomeSkipped, "already_applied")
			continue
		}

		if err := m.applyOne(ctx, job); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
		}
		m.delay(ctx)
	}
	return nil
}

// applyOne runs one posting through the applier and records its
// terminal outcome. Posting failures are contained here; only
// cancellation propagates.
func (m *Manager) applyOne(ctx context.Context, job *types.Job) error {
	if err := m.machine.To(StateOpenedPosting); err != nil {
		return err
	}

	err := m.applier.Apply(ctx, job, m.machine)
	switch {
	case err == nil:
		log.Printf("[MANAGER] Applied to %s at %s", job.Title, job.Company)
		m.recordOutcome(ctx, job, OutcomeSuccess, "")
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		log.Printf("[MANAGER] Failed %s at %s: %v", job.Title, job.Company, err)
		reason := ReasonNavigation
		var perr *PostingError
		if errors.As(err, &perr) {
			reason = perr.Reason
		}
		if !m.machine.Current().Terminal() {
			_ = m.machine.To(StateErrored)
		}
		status := OutcomeFailed
		if reason == ReasonSkipSubmit {
			status = OutcomeSkipped
		}
		m.recordOutcome(ctx, job, status, reason)
	}

	return m.machine.To(StateBrowsing)
}

// alreadyHandled reports tiles whose apply method shows the posting is
// not an open quick-apply flow.
func alreadyHandled(applyMethod string) bool {
	switch applyMethod {
	case "Continue", "Applied", "Apply":
		return true
	}
	return false
}

// recordOutcome appends the posting to its per-status CSV and notifies
// the recorder. Write failures are logged, never fatal.
func (m *Manager) recordOutcome(ctx context.Context, job *types.Job, status, reason string) {
	if err := m.writeOutcomeCSV(job, status, reason); err != nil {
		log.Printf("[MANAGER] Warning: failed to record %s outcome: %v", status, err)
	}
	if m.Recorder != nil {
		if err := m.Recorder.RecordApplication(ctx, job, status, reason); err != nil {
			log.Printf("[MANAGER] Warning: recorder failed for %s: %v", job.Title, err)
		}
	}
}

func (m *Manager) writeOutcomeCSV(job *types.Job, status, reason string) error {
	if m.outputDir == "" {
		return nil
	}
	if err := os.MkdirAll(m.outputDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(m.outputDir, status+".csv")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{job.Company, job.Title, job.Link, job.Location, reason}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
