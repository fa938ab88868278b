package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-doc2pdf/internal/config"
	"github.com/alnah/go-doc2pdf/internal/fileutil"
	"github.com/alnah/go-doc2pdf/internal/hints"
)

// doctorResult holds the outcome of the setup checks.
type doctorResult struct {
	BrowserPath    string
	BrowserVersion string
	ControlURL     string
	Sandbox        bool
	Container      bool
	TempWritable   bool
	Warnings       []string
	Errors         []string
}

// lookPath locates a local browser. Replaced in tests.
var lookPath = launcher.LookPath

// runDoctor checks that a browser can be reached with cfg.
func runDoctor(ctx context.Context, cfg *config.Config) *doctorResult {
	r := &doctorResult{
		ControlURL: cfg.Engine.ControlURL,
		Sandbox:    !cfg.Engine.NoSandbox,
		Container:  hints.IsInContainer(),
	}

	if r.ControlURL != "" {
		if _, err := launcher.ResolveURL(r.ControlURL); err != nil {
			r.Errors = append(r.Errors, fmt.Sprintf("cannot reach browser at %s: %v", r.ControlURL, err))
		}
	} else {
		checkBrowser(ctx, cfg.Engine.BrowserBin, r)
	}

	if r.Container && r.Sandbox && r.ControlURL == "" {
		r.Warnings = append(r.Warnings, "container detected but sandbox enabled; set DOC2PDF_NO_SANDBOX=1")
	}

	if _, cleanup, err := fileutil.WriteTempFile("<html></html>", ".html"); err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("temp directory not writable: %s", os.TempDir()))
	} else {
		cleanup()
		r.TempWritable = true
	}

	return r
}

// checkBrowser finds the executable and asks it for its version.
func checkBrowser(ctx context.Context, bin string, r *doctorResult) {
	if bin == "" {
		var found bool
		bin, found = lookPath()
		if !found {
			r.Warnings = append(r.Warnings, "no Chrome/Chromium found; one will be downloaded on first run")
			return
		}
	}

	if _, err := os.Stat(bin); err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("browser not found at %s", bin))
		return
	}
	r.BrowserPath = bin

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	out, err := exec.CommandContext(ctx, bin, "--version").Output() // #nosec G204 -- operator-chosen browser
	if err != nil {
		r.Warnings = append(r.Warnings, fmt.Sprintf("could not get browser version: %v", err))
		return
	}
	r.BrowserVersion = strings.TrimSpace(string(out))
}

// ok reports whether no check failed.
func (r *doctorResult) ok() bool {
	return len(r.Errors) == 0
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "doc2pdf doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Browser")
	switch {
	case r.ControlURL != "":
		fmt.Fprintf(w, "  [OK] Attach to %s\n", r.ControlURL)
	case r.BrowserPath != "":
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.BrowserPath)
		if r.BrowserVersion != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.BrowserVersion)
		}
	}
	if r.Sandbox {
		fmt.Fprintln(w, "  [OK] Sandbox: enabled")
	} else {
		fmt.Fprintln(w, "  [OK] Sandbox: disabled")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if r.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if r.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	}
	fmt.Fprintln(w)

	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "  [WARN] %s\n", warn)
	}
	for _, err := range r.Errors {
		fmt.Fprintf(w, "  [ERROR] %s\n", err)
	}
	if len(r.Warnings)+len(r.Errors) > 0 {
		fmt.Fprintln(w)
	}

	if r.ok() {
		fmt.Fprintln(w, "Status: ready")
	} else {
		fmt.Fprintln(w, "Status: not ready")
	}
}
