// Package filer runs the extract, parse, submit pipeline over one plan
// document.
package filer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dotandev/planfiler/internal/plan"
)

// IssueCreator is the single tracker operation the filer needs.
type IssueCreator interface {
	CreateIssue(ctx context.Context, title, body string, labels []string) (int, error)
}

// Result records the outcome of one entry's submission. Exactly one of
// Issue and Error is set (neither in a dry run).
type Result struct {
	Number string `json:"number"`
	Title  string `json:"title"`
	Issue  int    `json:"issue,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Report summarizes a filing run.
type Report struct {
	Marker    string   `json:"marker"`
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	DryRun    bool     `json:"dry_run,omitempty"`
	Results   []Result `json:"results"`
}

// Filer extracts a plan section and files its entries as tracker issues.
type Filer struct {
	tracker IssueCreator
	label   string
	dryRun  bool
	out     io.Writer
	log     *slog.Logger
}

// New builds a Filer. Per-entry status lines go to out; label is attached
// to every created issue.
func New(tracker IssueCreator, label string, dryRun bool, out io.Writer, log *slog.Logger) *Filer {
	return &Filer{
		tracker: tracker,
		label:   label,
		dryRun:  dryRun,
		out:     out,
		log:     log,
	}
}

// Run extracts marker's section from doc, parses its entries, and files one
// issue per entry, strictly in document order. A per-entry failure is
// reported and never stops the remaining submissions. A missing section is
// reported and returned as plan.ErrSectionNotFound.
func (f *Filer) Run(ctx context.Context, doc, marker string) (*Report, error) {
	section, err := plan.Extract(doc, marker)
	if err != nil {
		if errors.Is(err, plan.ErrSectionNotFound) {
			fmt.Fprintf(f.out, "Section %q not found\n", marker)
		}
		return nil, err
	}

	entries := plan.ParseEntries(section)
	fmt.Fprintf(f.out, "Found %d issues to create for %s.\n", len(entries), marker)

	report := &Report{
		Marker:  marker,
		Total:   len(entries),
		DryRun:  f.dryRun,
		Results: []Result{},
	}

	for _, e := range entries {
		title := e.ComposedTitle()

		if f.dryRun {
			fmt.Fprintf(f.out, "Would create issue: %s\n", title)
			report.Results = append(report.Results, Result{Number: e.Number, Title: title})
			continue
		}

		num, err := f.tracker.CreateIssue(ctx, title, e.Body, []string{f.label})
		if err != nil {
			fmt.Fprintf(f.out, "Failed to create issue %s: %v\n", title, err)
			f.log.Error("create issue failed", "title", title, "error", err)
			report.Failed++
			report.Results = append(report.Results, Result{Number: e.Number, Title: title, Error: err.Error()})
			continue
		}

		fmt.Fprintf(f.out, "Created issue #%d: %s\n", num, title)
		f.log.Info("issue created", "issue", num, "title", title)
		report.Succeeded++
		report.Results = append(report.Results, Result{Number: e.Number, Title: title, Issue: num})
	}

	return report, nil
}
