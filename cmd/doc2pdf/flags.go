package main

import (
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags that control the CLI itself.
type commonFlags struct {
	config      string
	quiet       bool
	verbose     int
	help        bool
	version     bool
	printConfig bool
	doctor      bool
	completion  string
}

// batchFlags holds flags that shape the work list and overwrite policy.
type batchFlags struct {
	recursive    bool
	overwrite    bool
	skipExisting bool
	sourceExt    string
}

// engineFlags holds flags for reaching the browser.
type engineFlags struct {
	browserBin string
	controlURL string
	visible    bool
	noSandbox  bool
	timeout    time.Duration
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// cliFlags holds every flag of the doc2pdf command.
type cliFlags struct {
	common commonFlags
	batch  batchFlags
	engine engineFlags
	page   pageFlags

	// changed reports whether a flag was given on the command line.
	changed func(name string) bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.CountVarP(&f.verbose, "verbose", "v", "more diagnostics (repeatable)")
	fs.BoolVarP(&f.help, "help", "h", false, "show this help")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective configuration and exit")
	fs.BoolVar(&f.doctor, "doctor", false, "check the browser setup and exit")
	fs.StringVar(&f.completion, "completion", "", "print a shell completion script (bash, zsh, fish, powershell)")
}

// addBatchFlags adds work-list and overwrite flags to a FlagSet.
func addBatchFlags(fs *flag.FlagSet, f *batchFlags) {
	fs.BoolVar(&f.recursive, "recursive", false, "also convert files in child directories")
	fs.BoolVar(&f.overwrite, "overwrite", false, "overwrite existing outputs without asking")
	fs.BoolVar(&f.skipExisting, "skip-existing", false, "skip existing outputs without asking")
	fs.StringVar(&f.sourceExt, "source-ext", "", "extension of the files to convert (default .html)")
}

// addEngineFlags adds browser flags to a FlagSet.
func addEngineFlags(fs *flag.FlagSet, f *engineFlags) {
	fs.StringVar(&f.browserBin, "browser-bin", "", "Chrome/Chromium executable")
	fs.StringVar(&f.controlURL, "control-url", "", "attach to a running browser (ws:// or http://host:port)")
	fs.BoolVar(&f.visible, "visible", false, "show the browser and leave it open")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "disable the Chrome sandbox (containers)")
	fs.DurationVar(&f.timeout, "timeout", 0, "page-load timeout (e.g., 30s, 2m; 0 = none)")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// newFlagSet registers every flag of the command. Parsing and completion
// scripts share it.
func newFlagSet() (*flag.FlagSet, *cliFlags) {
	fs := flag.NewFlagSet("doc2pdf", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &cliFlags{changed: fs.Changed}

	addCommonFlags(fs, &f.common)
	addBatchFlags(fs, &f.batch)
	addEngineFlags(fs, &f.engine)
	addPageFlags(fs, &f.page)
	return fs, f
}

// parseFlags normalizes the short switches, parses args and returns the
// positional paths. Parse errors are printed to stderr with the usage.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, []string, error) {
	fs, f := newFlagSet()

	if err := fs.Parse(normalizeArgs(args)); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		fmt.Fprintln(stderr)
		printUsage(stderr)
		return nil, nil, fmt.Errorf("%w: %w", errUsage, err)
	}

	return f, fs.Args(), nil
}
