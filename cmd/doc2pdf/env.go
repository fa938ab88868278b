package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	doc2pdf "github.com/alnah/go-doc2pdf"
	"github.com/alnah/go-doc2pdf/internal/chrome"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, process environment, and the engine factory.
type Environment struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string

	// NewConnector builds the engine connector from the merged settings.
	NewConnector func(opts chrome.Options) doc2pdf.Connector

	// Color enables colored diagnostics.
	Color bool
	// AdjustProcs sets GOMAXPROCS from the container CPU quota.
	AdjustProcs bool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		NewConnector: func(opts chrome.Options) doc2pdf.Connector {
			return chrome.NewConnector(opts)
		},
		Color:       isatty.IsTerminal(os.Stderr.Fd()),
		AdjustProcs: true,
	}
}
