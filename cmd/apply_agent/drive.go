package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/auto-applier/internal/answers"
	"github.com/jonathan/auto-applier/internal/browser"
	"github.com/jonathan/auto-applier/internal/config"
	"github.com/jonathan/auto-applier/internal/db"
	"github.com/jonathan/auto-applier/internal/linkedin"
	"github.com/jonathan/auto-applier/internal/llm"
	"github.com/jonathan/auto-applier/internal/observability"
	"github.com/jonathan/auto-applier/internal/prompts"
	"github.com/jonathan/auto-applier/internal/render"
	"github.com/jonathan/auto-applier/internal/resume"
	"github.com/jonathan/auto-applier/internal/session"
	"github.com/jonathan/auto-applier/internal/styles"
)

// Shared flag set of the start-apply and start-collect-data commands.
// Both commands bind the same variables; only one runs per invocation.
var (
	driveDataDir         string
	driveResumePath      string
	driveFiltersPath     string
	driveSecretsPath     string
	driveResumePDF       string
	driveBackend         string
	driveStyle           string
	driveStylesDir       string
	driveProfileDir      string
	driveHeaded          bool
	driveVerbose         bool
	driveSkipOnRejection bool
	driveDatabaseURL     string
)

func registerDriveFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&driveDataDir, "data-dir", "d", "data_folder", "Directory holding the YAML bundles; run artifacts land in its output/ subdirectory")
	cmd.Flags().StringVar(&driveResumePath, "resume-yaml", "", "Path to the structured resume YAML (defaults to <data-dir>/plain_text_resume.yaml)")
	cmd.Flags().StringVar(&driveFiltersPath, "filters", "", "Path to the search filter YAML (defaults to <data-dir>/config.yaml)")
	cmd.Flags().StringVar(&driveSecretsPath, "secrets", "", "Path to the secrets YAML (defaults to <data-dir>/secrets.yaml)")
	cmd.Flags().StringVar(&driveResumePDF, "resume-pdf", "", "Pre-built resume PDF to attach to upload fields")
	cmd.Flags().StringVar(&driveBackend, "backend", "openai", "LLM backend: openai, claude or gemini")
	cmd.Flags().StringVar(&driveStyle, "style", "", "Style name for rendered resumes and cover letters (see the styles command)")
	cmd.Flags().StringVar(&driveStylesDir, "styles-dir", "styles", "Directory holding style sheets")
	cmd.Flags().StringVar(&driveProfileDir, "profile-dir", "", "Chrome profile directory for persistent cookies (defaults to <data-dir>/chrome_profile)")
	cmd.Flags().BoolVar(&driveHeaded, "headed", false, "Run Chrome with a visible window (needed to clear security checkpoints by hand)")
	cmd.Flags().BoolVarP(&driveVerbose, "verbose", "v", false, "Print every posting and synthesized answer")
	cmd.Flags().BoolVar(&driveSkipOnRejection, "skip-on-rejection", true, "Discard postings whose forms still reject answers after one repair pass")

	// Database URL for run history persistence
	cmd.Flags().StringVar(&driveDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
}

// runDrive wires the full stack and enters the drive loop. The same
// path serves both commands; collectOnly records postings without
// applying.
func runDrive(cmd *cobra.Command, collectOnly bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resumePath := driveResumePath
	if resumePath == "" {
		resumePath = filepath.Join(driveDataDir, "plain_text_resume.yaml")
	}
	filtersPath := driveFiltersPath
	if filtersPath == "" {
		filtersPath = filepath.Join(driveDataDir, "config.yaml")
	}
	secretsPath := driveSecretsPath
	if secretsPath == "" {
		secretsPath = filepath.Join(driveDataDir, "secrets.yaml")
	}
	outputDir := filepath.Join(driveDataDir, "output")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	env := config.Env()
	verbose := driveVerbose || env.LogLevel > 0
	if env.SkipApply {
		fmt.Fprintln(os.Stderr, "SKIP_APPLY is set, forms will be filled but never submitted")
	}

	filters, err := config.LoadFilters(filtersPath)
	if err != nil {
		return fatalInput(filtersPath, err)
	}
	secrets, err := config.LoadSecrets(secretsPath)
	if err != nil {
		return fatalInput(secretsPath, err)
	}
	resumeYAML, err := os.ReadFile(resumePath)
	if err != nil {
		return fatalInput(resumePath, fmt.Errorf("failed to read resume: %w", err))
	}
	profile, err := resume.Load(resumeYAML)
	if err != nil {
		return fatalInput(resumePath, err)
	}

	client, err := llm.New(ctx, llm.Backend(driveBackend), secrets.LLMKey)
	if err != nil {
		return err
	}
	logged := llm.NewLoggingClient(client, filepath.Join(outputDir, "llm_calls.jsonl"))

	cache, err := answers.OpenCache(filepath.Join(outputDir, "answers.jsonl"))
	if err != nil {
		return err
	}
	composer := prompts.NewComposer(profile)
	answerer := answers.NewAnswerer(logged, composer, cache)

	var registry *styles.Registry
	if driveStyle != "" {
		registry, err = styles.Discover(driveStylesDir)
		if err != nil {
			return fatalInput(driveStylesDir, err)
		}
	}
	generator := render.NewGenerator(logged, composer, registry, outputDir)
	generator.StyleName = driveStyle

	profileDir := driveProfileDir
	if profileDir == "" {
		profileDir = filepath.Join(driveDataDir, "chrome_profile")
	}
	drv, err := browser.NewChrome(ctx, browser.Options{
		ProfileDir: profileDir,
		Headed:     driveHeaded,
		Verbose:    verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer drv.Close()

	sess := session.New(drv)
	if err := sess.SetProfileAndResume(profile.String(), profile); err != nil {
		return err
	}
	if err := sess.SetAnswererAndGenerator(answerer, generator); err != nil {
		return err
	}
	if err := sess.SetParameters(session.Parameters{
		Filters:         filters,
		Secrets:         *secrets,
		OutputDir:       outputDir,
		ResumePDF:       driveResumePDF,
		SkipOnRejection: driveSkipOnRejection,
		SkipSubmit:      env.SkipApply,
	}); err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	counter := &countingRecorder{}
	appRecorders := teeApplicationRecorder{counter}
	var answerRecorders teeAnswerRecorder
	if verbose {
		pr := &printingRecorder{printer: printer}
		appRecorders = append(appRecorders, pr)
		answerRecorders = append(answerRecorders, pr)
	}

	databaseURL := driveDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	var store *db.Store
	var runID uuid.UUID
	if databaseURL != "" {
		store, err = db.Connect(ctx, databaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer store.Close()

		mode := "apply"
		if collectOnly {
			mode = "collect"
		}
		runID, err = store.CreateRun(ctx, mode)
		if err != nil {
			return err
		}
		recorder := store.Bind(runID)
		appRecorders = append(appRecorders, recorder)
		answerRecorders = append(answerRecorders, recorder)
	} else {
		fmt.Fprintln(os.Stderr, "no database URL configured, run history persistence disabled")
	}
	sess.ApplicationRecorder = appRecorders
	if len(answerRecorders) > 0 {
		sess.AnswerRecorder = answerRecorders
	}

	if err := sess.StartLogin(ctx); err != nil {
		var aerr *linkedin.AuthError
		if errors.As(err, &aerr) {
			fmt.Fprintf(os.Stderr, "login failed: check the credentials in %s\n", secretsPath)
		}
		completeRun(store, runID, "failed")
		return err
	}

	var driveErr error
	if collectOnly {
		driveErr = sess.StartCollectData(ctx)
	} else {
		driveErr = sess.StartApply(ctx)
	}

	status := "completed"
	switch {
	case errors.Is(driveErr, context.Canceled):
		status = "cancelled"
	case driveErr != nil:
		status = "failed"
	}
	completeRun(store, runID, status)
	printer.PrintRunSummary(counter.summary())

	if errors.Is(driveErr, context.Canceled) {
		fmt.Fprintln(os.Stderr, "interrupted, shutting down")
		return nil
	}
	return driveErr
}

// fatalInput prints the one-line hint for startup input failures before
// surfacing the error.
func fatalInput(path string, err error) error {
	fmt.Fprintf(os.Stderr, "configuration error: fix %s and retry\n", path)
	return err
}

func completeRun(store *db.Store, runID uuid.UUID, status string) {
	if store == nil {
		return
	}
	// Best effort with a fresh context; the run context may already be
	// cancelled.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.CompleteRun(ctx, runID, status); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to close run record: %v\n", err)
	}
}
