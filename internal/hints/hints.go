// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-doc2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// inCI reports whether a common CI marker is set.
func inCI() bool {
	for _, name := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// ForEngineConnect returns hints for a failed engine connection.
// controlURL is the attach address in use, if any.
func ForEngineConnect(controlURL string) string {
	if controlURL != "" {
		return format("check the browser at " + controlURL + " was started with --remote-debugging-port")
	}

	var hints []string
	if (inCI() || IsInContainer()) && os.Getenv("DOC2PDF_NO_SANDBOX") != "1" {
		hints = append(hints, "set DOC2PDF_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("DOC2PDF_BROWSER_BIN") == "" {
		hints = append(hints, "set DOC2PDF_BROWSER_BIN to use a specific Chrome")
	}
	return formatHints(hints)
}

// ForTimeout returns a hint about raising the page-load timeout.
func ForTimeout() string {
	return format("for large documents, raise --timeout")
}

// ForConfigNotFound returns hints for config file not found errors.
// searchedDirs are the directories that were tried, in order.
func ForConfigNotFound(searchedDirs []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, d := range searchedDirs {
		if d != "." && d != "" {
			hint += " or create a file in " + d
			break
		}
	}
	return format(hint)
}

// ForAllInputsMissing returns a hint when nothing on the command line exists.
func ForAllInputsMissing() string {
	return format("quote paths that contain spaces, or run without arguments to be prompted")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
