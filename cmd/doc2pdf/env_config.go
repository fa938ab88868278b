package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-doc2pdf/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // DOC2PDF_CONFIG: config file name or path
	SourceExt  string        // DOC2PDF_SOURCE_EXT: extension of the files to convert
	Overwrite  string        // DOC2PDF_OVERWRITE: ask, always, never
	BrowserBin string        // DOC2PDF_BROWSER_BIN: Chrome/Chromium executable
	ControlURL string        // DOC2PDF_CONTROL_URL: attach to a running browser
	Visible    *bool         // DOC2PDF_VISIBLE: show the browser
	NoSandbox  *bool         // DOC2PDF_NO_SANDBOX: disable the Chrome sandbox
	Timeout    time.Duration // DOC2PDF_TIMEOUT: page-load timeout
}

// knownEnvVars lists valid DOC2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DOC2PDF_CONFIG":      true,
	"DOC2PDF_SOURCE_EXT":  true,
	"DOC2PDF_OVERWRITE":   true,
	"DOC2PDF_BROWSER_BIN": true,
	"DOC2PDF_CONTROL_URL": true,
	"DOC2PDF_VISIBLE":     true,
	"DOC2PDF_NO_SANDBOX":  true,
	"DOC2PDF_TIMEOUT":     true,
}

// loadEnvConfig reads the DOC2PDF_* variables through getenv.
// Unparseable booleans and durations are ignored and reported in warnings.
func loadEnvConfig(getenv func(string) string) (*envConfig, []string) {
	var warnings []string
	cfg := &envConfig{
		ConfigPath: getenv("DOC2PDF_CONFIG"),
		SourceExt:  getenv("DOC2PDF_SOURCE_EXT"),
		Overwrite:  getenv("DOC2PDF_OVERWRITE"),
		BrowserBin: getenv("DOC2PDF_BROWSER_BIN"),
		ControlURL: getenv("DOC2PDF_CONTROL_URL"),
	}

	parseBool := func(name string) *bool {
		v := getenv(name)
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("ignoring %s=%q (not a boolean)", name, v))
			return nil
		}
		return &b
	}
	cfg.Visible = parseBool("DOC2PDF_VISIBLE")
	cfg.NoSandbox = parseBool("DOC2PDF_NO_SANDBOX")

	if timeout := getenv("DOC2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d >= 0 {
			cfg.Timeout = d
		} else {
			warnings = append(warnings, fmt.Sprintf("ignoring DOC2PDF_TIMEOUT=%q (not a duration)", timeout))
		}
	}

	return cfg, warnings
}

// warnUnknownEnvVars prints warnings for unrecognized DOC2PDF_* variables.
// Helps catch typos like DOC2PDF_OVERWRTE.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, "DOC2PDF_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays the set environment values onto cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via applyFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.SourceExt != "" {
		cfg.Source.Extension = env.SourceExt
	}
	if env.Overwrite != "" {
		cfg.Overwrite = env.Overwrite
	}
	if env.BrowserBin != "" {
		cfg.Engine.BrowserBin = env.BrowserBin
	}
	if env.ControlURL != "" {
		cfg.Engine.ControlURL = env.ControlURL
	}
	if env.Visible != nil {
		cfg.Engine.Visible = *env.Visible
	}
	if env.NoSandbox != nil {
		cfg.Engine.NoSandbox = *env.NoSandbox
	}
	if env.Timeout > 0 {
		cfg.Engine.Timeout = config.Duration(env.Timeout)
	}
}
