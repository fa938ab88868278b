// Command doc2pdf converts documents to PDF by driving Chrome.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"go.uber.org/automaxprocs/maxprocs"

	doc2pdf "github.com/alnah/go-doc2pdf"
	"github.com/alnah/go-doc2pdf/internal/chrome"
	"github.com/alnah/go-doc2pdf/internal/config"
	"github.com/alnah/go-doc2pdf/internal/console"
	"github.com/alnah/go-doc2pdf/internal/fileutil"
	"github.com/alnah/go-doc2pdf/internal/hints"
	"github.com/alnah/go-doc2pdf/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

var errUsage = errors.New("invalid usage")

func main() {
	os.Exit(run(context.Background(), os.Args[1:], DefaultEnv()))
}

// run executes the command and returns the process exit code.
func run(parent context.Context, args []string, env *Environment) int {
	flags, paths, err := parseFlags(args, env.Stderr)
	if err != nil {
		return ExitUsage
	}
	if flags.common.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.common.version {
		fmt.Fprintf(env.Stdout, "doc2pdf %s\n", Version)
		return ExitSuccess
	}
	if flags.common.completion != "" {
		if err := GenerateCompletion(env.Stdout, Shell(flags.common.completion)); err != nil {
			fmt.Fprintln(env.Stderr, "error:", err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	}

	verbosity := flags.common.verbose
	if flags.common.quiet {
		verbosity = -1
	}
	logger := logging.New(env.Stderr, verbosity, env.Color)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	if env.AdjustProcs {
		undo, _ := maxprocs.Set(maxprocs.Logger(func(format string, a ...interface{}) {
			logger.Debug().Msgf(format, a...)
		}))
		if undo != nil {
			defer undo()
		}
	}

	envCfg, warnings := loadEnvConfig(env.Getenv)
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr, env.Environ())
		for _, w := range warnings {
			fmt.Fprintf(env.Stderr, "warning: %s\n", w)
		}
	}

	cfg, err := resolveConfig(flags, envCfg)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, config.ErrConfigNotFound) {
			msg += hints.ForConfigNotFound(config.SearchDirs())
		}
		fmt.Fprintln(env.Stderr, "error:", msg)
		return exitCodeFor(err)
	}

	if flags.common.printConfig {
		out, err := config.Dump(cfg)
		if err != nil {
			fmt.Fprintln(env.Stderr, "error:", err)
			return ExitGeneral
		}
		_, _ = env.Stdout.Write(out)
		return ExitSuccess
	}

	ctx, stop := notifyContext(parent)
	defer stop()

	if flags.common.doctor {
		result := runDoctor(ctx, cfg)
		printDoctorResult(env.Stdout, result)
		if !result.ok() {
			return ExitGeneral
		}
		return ExitSuccess
	}

	opts, err := sessionOptions(cfg)
	if err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		return exitCodeFor(err)
	}
	formats := formatsFor(cfg)
	con := console.New(env.Stdin, env.Stdout).WithContext(ctx)

	inputs := paths
	switch {
	case len(args) == 0:
		path, recursive, ok, err := promptInputs(con, formats.Source)
		if err != nil {
			fmt.Fprintln(env.Stderr, "error:", err)
			return ExitGeneral
		}
		if !ok {
			return ExitSuccess
		}
		inputs = []string{path}
		opts.Recursive = recursive
	case len(paths) == 0:
		printUsage(env.Stdout)
		return ExitSuccess
	}

	reporter := newConsoleReporter(env.Stdout, env.Stderr, flags.common.quiet)

	if allMissing(inputs) {
		for _, in := range inputs {
			reporter.InputError(fmt.Errorf("%w: %s", doc2pdf.ErrInputNotFound, in))
		}
		err := fmt.Errorf("%w: none of the inputs exist", doc2pdf.ErrNoInput)
		fmt.Fprintln(env.Stderr, "error:", err.Error()+hints.ForAllInputsMissing())
		return exitCodeFor(err)
	}

	session := doc2pdf.NewSession(opts,
		doc2pdf.WithFormats(formats),
		doc2pdf.WithPrompter(con),
		doc2pdf.WithLogger(logging.Component(logger, "session")),
	)
	connector := env.NewConnector(chromeOptions(cfg, logger))
	runner := doc2pdf.NewRunner(connector, session, reporter)
	runner.Logger = logging.Component(logger, "batch")

	done := logging.Operation(logger, "batch")
	outcomes, err := runner.Run(ctx, inputs)
	done()
	if err != nil {
		fmt.Fprintln(env.Stderr, "error:", err.Error()+hints.ForEngineConnect(cfg.Engine.ControlURL))
		return exitCodeFor(err)
	}

	summary := doc2pdf.Summarize(outcomes)
	reporter.printSummary(summary)

	if summary.Failed > 0 || reporter.inputErrors > 0 {
		return ExitGeneral
	}
	return ExitSuccess
}

// resolveConfig merges defaults, the config file, env vars and flags, in
// increasing precedence, and validates the result.
func resolveConfig(f *cliFlags, env *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()

	name := f.common.config
	if name == "" {
		name = env.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	if err := applyFlags(f, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overlays the flags given on the command line onto cfg.
func applyFlags(f *cliFlags, cfg *config.Config) error {
	if f.batch.overwrite && f.batch.skipExisting {
		return fmt.Errorf("%w: --overwrite and --skip-existing are mutually exclusive", errUsage)
	}

	if f.batch.recursive {
		cfg.Recursive = true
	}
	if f.batch.overwrite {
		cfg.Overwrite = doc2pdf.OverwriteAlways.String()
	}
	if f.batch.skipExisting {
		cfg.Overwrite = doc2pdf.OverwriteNever.String()
	}
	if f.changed("source-ext") {
		cfg.Source.Extension = f.batch.sourceExt
	}

	if f.changed("browser-bin") {
		cfg.Engine.BrowserBin = f.engine.browserBin
	}
	if f.changed("control-url") {
		cfg.Engine.ControlURL = f.engine.controlURL
	}
	if f.changed("visible") {
		cfg.Engine.Visible = f.engine.visible
	}
	if f.changed("no-sandbox") {
		cfg.Engine.NoSandbox = f.engine.noSandbox
	}
	if f.changed("timeout") {
		cfg.Engine.Timeout = config.Duration(f.engine.timeout)
	}

	if f.changed("page-size") {
		cfg.PDF.PageSize = f.page.size
	}
	if f.changed("orientation") {
		cfg.PDF.Orientation = f.page.orientation
	}
	if f.changed("margin") {
		cfg.PDF.Margin = f.page.margin
	}
	return nil
}

// sessionOptions converts the merged config into run options.
func sessionOptions(cfg *config.Config) (doc2pdf.Options, error) {
	policy, err := doc2pdf.ParseOverwriteState(cfg.Overwrite)
	if err != nil {
		return doc2pdf.Options{}, err
	}
	return doc2pdf.Options{Recursive: cfg.Recursive, Overwrite: policy}, nil
}

// formatsFor returns the configured extensions, defaulting empty ones.
func formatsFor(cfg *config.Config) doc2pdf.Formats {
	f := doc2pdf.DefaultFormats()
	if ext := fileutil.NormalizeExt(cfg.Source.Extension); ext != "" {
		f.Source = ext
	}
	if ext := fileutil.NormalizeExt(cfg.Target.Extension); ext != "" {
		f.Target = ext
	}
	return f
}

// chromeOptions converts the merged config into engine options.
func chromeOptions(cfg *config.Config, logger zerolog.Logger) chrome.Options {
	return chrome.Options{
		BrowserBin: cfg.Engine.BrowserBin,
		ControlURL: cfg.Engine.ControlURL,
		Visible:    cfg.Engine.Visible,
		NoSandbox:  cfg.Engine.NoSandbox,
		Timeout:    cfg.Engine.Timeout.Std(),
		Page: chrome.PageSettings{
			Size:        cfg.PDF.PageSize,
			Orientation: cfg.PDF.Orientation,
			Margin:      cfg.PDF.Margin,
		},
		Logger: logger,
	}
}

// allMissing reports whether no input exists on disk.
func allMissing(inputs []string) bool {
	for _, in := range inputs {
		if _, err := os.Stat(in); !errors.Is(err, os.ErrNotExist) {
			return false
		}
	}
	return true
}
