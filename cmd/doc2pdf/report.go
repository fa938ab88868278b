package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	doc2pdf "github.com/alnah/go-doc2pdf"
	"github.com/alnah/go-doc2pdf/internal/hints"
)

// consoleReporter prints one line per outcome as the batch runs.
type consoleReporter struct {
	stdout      io.Writer
	stderr      io.Writer
	quiet       bool
	inputErrors int
}

var _ doc2pdf.Reporter = (*consoleReporter)(nil)

func newConsoleReporter(stdout, stderr io.Writer, quiet bool) *consoleReporter {
	return &consoleReporter{stdout: stdout, stderr: stderr, quiet: quiet}
}

// Outcome prints the result of one file. Failures go to stderr even when quiet.
func (r *consoleReporter) Outcome(o doc2pdf.Outcome) {
	switch o.Kind {
	case doc2pdf.Converted:
		if !r.quiet {
			fmt.Fprintf(r.stdout, "Saved '%s'\n   as '%s'\n", o.Source, o.Output)
		}
	case doc2pdf.SkippedExists:
		if !r.quiet {
			fmt.Fprintf(r.stdout, "Skipped '%s': '%s' already exists\n", o.Source, o.Output)
		}
	case doc2pdf.Cancelled:
		fmt.Fprintf(r.stdout, "Cancelled at '%s'\n", o.Source)
	case doc2pdf.Failed:
		msg := fmt.Sprintf("FAILED %s: %v", o.Source, o.Err)
		if errors.Is(o.Err, context.DeadlineExceeded) {
			msg += hints.ForTimeout()
		}
		fmt.Fprintln(r.stderr, msg)
	}
}

// InputError prints an input that could not be resolved.
func (r *consoleReporter) InputError(err error) {
	r.inputErrors++
	fmt.Fprintf(r.stderr, "FAILED %v\n", err)
}

// printSummary prints the final tally when more than one file was attempted.
func (r *consoleReporter) printSummary(s doc2pdf.Summary) {
	if r.quiet || s.Total() <= 1 {
		return
	}
	line := fmt.Sprintf("\n%d converted, %d skipped, %d failed", s.Converted, s.Skipped, s.Failed)
	if s.Cancelled > 0 {
		line += ", cancelled"
	}
	fmt.Fprintln(r.stdout, line)
}
