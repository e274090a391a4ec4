// Package render generates tailored application artifacts: an HTML
// resume assembled from LLM-written sections, and the PDFs attached to
// upload fields.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/auto-applier/internal/llm"
	"github.com/jonathan/auto-applier/internal/prompts"
	"github.com/jonathan/auto-applier/internal/styles"
	"github.com/jonathan/auto-applier/internal/types"
)

// Generator produces per-posting artifacts under OutputDir/<posting-id>/.
type Generator struct {
	client   llm.Client
	composer *prompts.Composer
	registry *styles.Registry

	// StyleName selects the CSS theme for the HTML resume. Empty means
	// no stylesheet.
	StyleName string

	OutputDir string
}

// NewGenerator wires a generator to its LLM client, composer and style
// registry. The registry may be nil when no styling is wanted.
func NewGenerator(client llm.Client, composer *prompts.Composer, registry *styles.Registry, outputDir string) *Generator {
	return &Generator{client: client, composer: composer, registry: registry, OutputDir: outputDir}
}

// ResumeHTML renders every resume section concurrently and assembles
// the full document. Section order is fixed regardless of completion
// order.
func (g *Generator) ResumeHTML(ctx context.Context, job *types.Job) (string, error) {
	names := prompts.SectionNames()
	fragments := make([]string, len(names))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		eg.Go(func() error {
			prompt, err := g.composer.Section(name, job.Summary)
			if err != nil {
				return err
			}
			reply, err := g.client.Complete(egCtx, prompt)
			if err != nil {
				return fmt.Errorf("failed to render section %s: %w", name, err)
			}
			fragments[i] = llm.CleanResponse(reply)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return "", err
	}

	var css string
	if g.registry != nil && g.StyleName != "" {
		data, err := g.registry.CSS(g.StyleName)
		if err != nil {
			return "", err
		}
		css = string(data)
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	if css != "" {
		sb.WriteString("<style>\n")
		sb.WriteString(css)
		sb.WriteString("\n</style>\n")
	}
	sb.WriteString("</head>\n<body>\n")
	for _, fragment := range fragments {
		sb.WriteString(fragment)
		sb.WriteString("\n")
	}
	sb.WriteString("</body>\n</html>\n")
	return sb.String(), nil
}

// WriteResumeHTML renders the resume and writes it under the posting's
// output directory, returning the file path.
func (g *Generator) WriteResumeHTML(ctx context.Context, job *types.Job) (string, error) {
	html, err := g.ResumeHTML(ctx, job)
	if err != nil {
		return "", err
	}
	dir, err := g.postingDir(job)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "resume.html")
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("failed to write resume: %w", err)
	}
	return path, nil
}

// ResumePDF renders the resume, flattens it to text and typesets it
// into a PDF for upload fields that want a file.
func (g *Generator) ResumePDF(ctx context.Context, job *types.Job) (string, error) {
	html, err := g.ResumeHTML(ctx, job)
	if err != nil {
		return "", err
	}
	text, err := htmlToText(html)
	if err != nil {
		return "", err
	}
	dir, err := g.postingDir(job)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "resume.pdf")
	if err := writeTextPDF(path, text); err != nil {
		return "", err
	}
	return path, nil
}

// CoverLetter writes a tailored single-page cover letter PDF and
// returns its path. Satisfies answers.CoverLetterGenerator.
func (g *Generator) CoverLetter(ctx context.Context, job *types.Job) (string, error) {
	reply, err := g.client.Complete(ctx, g.composer.CoverLetter(job))
	if err != nil {
		return "", fmt.Errorf("failed to write cover letter: %w", err)
	}
	dir, err := g.postingDir(job)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "cover_letter.pdf")
	if err := writeTextPDF(path, llm.CleanResponse(reply)); err != nil {
		return "", err
	}
	return path, nil
}

func (g *Generator) postingDir(job *types.Job) (string, error) {
	id := job.ID
	if id == "" {
		id = "posting"
	}
	dir := filepath.Join(g.OutputDir, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return dir, nil
}
