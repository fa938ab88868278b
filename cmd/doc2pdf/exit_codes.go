package main

import (
	"errors"

	doc2pdf "github.com/alnah/go-doc2pdf"
	"github.com/alnah/go-doc2pdf/internal/chrome"
	"github.com/alnah/go-doc2pdf/internal/config"
)

// Exit codes for the doc2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Everything converted, skipped by choice, or cancelled
	ExitGeneral = 1 // At least one file failed, or an unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitNoInput = 3 // Every input on the command line was missing
	ExitEngine  = 4 // The browser could not be launched or reached
)

// exitCodeFor returns the exit code for an error that ended the run.
// It uses errors.Is, so callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, doc2pdf.ErrEngineConnect) ||
		errors.Is(err, chrome.ErrBrowserLaunch) ||
		errors.Is(err, chrome.ErrBrowserConnect) {
		return ExitEngine
	}

	if errors.Is(err, doc2pdf.ErrNoInput) {
		return ExitNoInput
	}

	if errors.Is(err, errUsage) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, doc2pdf.ErrInvalidPolicy) ||
		errors.Is(err, chrome.ErrInvalidPageSize) ||
		errors.Is(err, chrome.ErrInvalidOrientation) ||
		errors.Is(err, chrome.ErrInvalidMargin) {
		return ExitUsage
	}

	return ExitGeneral
}
