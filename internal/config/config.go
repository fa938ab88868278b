package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/alnah/go-doc2pdf/internal/yamlutil"
)

// AppDirName is the directory searched under each XDG config dir.
const AppDirName = "go-doc2pdf"

// PDFExtension is the only target extension the browser engine can honour.
const PDFExtension = ".pdf"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxExtensionLength   = 16
	MaxPathLength        = 4096
	MaxURLLength         = 2048
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxOrientationLength = 10 // "portrait", "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// Config holds everything a run can be configured with from a file.
type Config struct {
	Source    FormatConfig `yaml:"source"`
	Target    FormatConfig `yaml:"target"`
	Recursive bool         `yaml:"recursive"`
	Overwrite string       `yaml:"overwrite"` // "ask", "always", "never" (default: "ask")
	Engine    EngineConfig `yaml:"engine"`
	PDF       PDFConfig    `yaml:"pdf"`
}

// FormatConfig names a file extension, dot included.
type FormatConfig struct {
	Extension string `yaml:"extension"`
}

// EngineConfig defines how the browser engine is reached.
type EngineConfig struct {
	BrowserBin string   `yaml:"browserBin"` // empty = auto-detect
	ControlURL string   `yaml:"controlURL"` // attach instead of launching
	Visible    bool     `yaml:"visible"`    // show the window, keep it after the run
	NoSandbox  bool     `yaml:"noSandbox"`
	Timeout    Duration `yaml:"timeout"` // page-load timeout, zero = none
}

// PDFConfig defines PDF page settings.
type PDFConfig struct {
	PageSize    string  `yaml:"pageSize"`    // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// Duration is a time.Duration written as "30s" or "2m" in YAML.
type Duration time.Duration

// UnmarshalText parses a Go duration string. Empty means zero.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("%w: duration %q", ErrInvalidValue, s)
	}
	*d = Duration(v)
	return nil
}

// MarshalText renders the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	if d == 0 {
		return []byte(""), nil
	}
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Validate checks lengths and enumerated values. Called by LoadConfig, and
// again by the CLI once flags and env vars have been merged in.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name, value string
		max         int
	}{
		{"source.extension", c.Source.Extension, MaxExtensionLength},
		{"target.extension", c.Target.Extension, MaxExtensionLength},
		{"engine.browserBin", c.Engine.BrowserBin, MaxPathLength},
		{"engine.controlURL", c.Engine.ControlURL, MaxURLLength},
		{"pdf.pageSize", c.PDF.PageSize, MaxPageSizeLength},
		{"pdf.orientation", c.PDF.Orientation, MaxOrientationLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if err := validateExtension("source.extension", c.Source.Extension); err != nil {
		return err
	}
	if err := validateExtension("target.extension", c.Target.Extension); err != nil {
		return err
	}
	if c.Target.Extension != "" && !strings.EqualFold(normalizeExt(c.Target.Extension), PDFExtension) {
		return fmt.Errorf("%w: target.extension %q (the engine only writes %s)", ErrInvalidValue, c.Target.Extension, PDFExtension)
	}
	if c.Source.Extension != "" && strings.EqualFold(normalizeExt(c.Source.Extension), normalizeExt(c.Target.Extension)) {
		return fmt.Errorf("%w: source.extension and target.extension are both %q", ErrInvalidValue, c.Source.Extension)
	}

	switch strings.ToLower(c.Overwrite) {
	case "", "ask", "always", "never":
	default:
		return fmt.Errorf("%w: overwrite %q (must be ask, always, or never)", ErrInvalidValue, c.Overwrite)
	}

	if c.Engine.Timeout < 0 {
		return fmt.Errorf("%w: engine.timeout must not be negative", ErrInvalidValue)
	}

	if c.PDF.PageSize != "" {
		switch strings.ToLower(c.PDF.PageSize) {
		case "letter", "a4", "legal":
		default:
			return fmt.Errorf("%w: pdf.pageSize %q (must be letter, a4, or legal)", ErrInvalidValue, c.PDF.PageSize)
		}
	}
	if c.PDF.Orientation != "" {
		switch strings.ToLower(c.PDF.Orientation) {
		case "portrait", "landscape":
		default:
			return fmt.Errorf("%w: pdf.orientation %q (must be portrait or landscape)", ErrInvalidValue, c.PDF.Orientation)
		}
	}
	if c.PDF.Margin != 0 && (c.PDF.Margin < MinMargin || c.PDF.Margin > MaxMargin) {
		return fmt.Errorf("%w: pdf.margin must be between %.2f and %.1f inches, got %.2f",
			ErrInvalidValue, MinMargin, MaxMargin, c.PDF.Margin)
	}

	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateExtension(fieldName, ext string) error {
	if ext == "" {
		return nil
	}
	name := strings.TrimPrefix(ext, ".")
	if name == "" || strings.ContainsAny(name, `./\ `) {
		return fmt.Errorf("%w: %s %q", ErrInvalidValue, fieldName, ext)
	}
	return nil
}

func normalizeExt(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Source:    FormatConfig{Extension: ".html"},
		Target:    FormatConfig{Extension: PDFExtension},
		Overwrite: "ask",
		PDF: PDFConfig{
			PageSize:    "letter",
			Orientation: "portrait",
			Margin:      DefaultMargin,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator or ends in .yaml/.yml, it is
// treated as a file path. Otherwise it is a config name searched in the
// current directory, then the XDG config directories. A missing file is an
// error (no silent fallback).
//
// Fields left out of the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.ReadFileStrict(configPath, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		if errors.Is(err, os.ErrPermission) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Dump renders cfg as YAML.
func Dump(cfg *Config) ([]byte, error) {
	return yamlutil.Marshal(cfg)
}

func isFilePath(s string) bool {
	if strings.ContainsAny(s, `/\`) {
		return true
	}
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

// SearchDirs lists the directories searched for a config name, in order.
func SearchDirs() []string {
	dirs := []string{"."}
	if xdg.ConfigHome != "" {
		dirs = append(dirs, filepath.Join(xdg.ConfigHome, AppDirName))
	}
	for _, d := range xdg.ConfigDirs {
		dirs = append(dirs, filepath.Join(d, AppDirName))
	}
	return dirs
}

// resolveConfigPath searches for name.yaml then name.yml in each SearchDirs entry.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	dirs := SearchDirs()
	tried := make([]string, 0, len(extensions)*len(dirs))

	for _, dir := range dirs {
		for _, ext := range extensions {
			candidate := filepath.Join(dir, name+ext)
			if fileExists(candidate) {
				return candidate, nil
			}
			tried = append(tried, candidate)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
