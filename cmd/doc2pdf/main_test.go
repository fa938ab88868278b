package main

// Notes:
// - run is exercised end to end with a fake engine that writes stub PDFs;
//   the real browser path is covered by internal/chrome integration tests.
// - Operator answers come from a strings.Reader, so the console runs in
//   line mode.

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	doc2pdf "github.com/alnah/go-doc2pdf"
	"github.com/alnah/go-doc2pdf/internal/chrome"
)

// ---------------------------------------------------------------------------
// TestRun_Usage - Help, version and argument errors
// ---------------------------------------------------------------------------

func TestRun_Usage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"help", []string{"-h"}, ExitSuccess, "Usage: doc2pdf", ""},
		{"version", []string{"--version"}, ExitSuccess, "doc2pdf dev", ""},
		{"flags without paths", []string{"-v", "/R"}, ExitSuccess, "Usage: doc2pdf", ""},
		{"unknown flag", []string{"--nope", "a.html"}, ExitUsage, "", "unknown flag"},
		{"conflicting policies", []string{"/O", "--skip-existing", "a.html"}, ExitUsage, "", "mutually exclusive"},
		{"invalid margin", []string{"--margin", "9", "a.html"}, ExitUsage, "", "pdf.margin"},
		{"invalid page size", []string{"-p", "tabloid", "a.html"}, ExitUsage, "", "pdf.pageSize"},
		{"source equals target", []string{"--source-ext", "PDF", "a.pdf"}, ExitUsage, "", "source.extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			te := newTestEnv("")
			if got := te.run(tt.args...); got != tt.wantCode {
				t.Fatalf("run(%q) = %d, want %d\nstderr: %s", tt.args, got, tt.wantCode, te.stderr)
			}
			if !strings.Contains(te.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", te.stdout, tt.wantStdout)
			}
			if !strings.Contains(te.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", te.stderr, tt.wantStderr)
			}
			if te.chromeOp != nil {
				t.Error("engine connector built for a run that converts nothing")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRun_Config - Config file, env and flag precedence
// ---------------------------------------------------------------------------

func TestRun_ConfigNotFound(t *testing.T) {
	t.Parallel()

	te := newTestEnv("")
	code := te.run("-c", filepath.Join(t.TempDir(), "missing.yaml"), "a.html")
	if code != ExitUsage {
		t.Fatalf("exit = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(te.stderr.String(), "config file not found") {
		t.Errorf("stderr = %q", te.stderr)
	}
}

func TestRun_NonPDFTargetRejected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.html"))
	cfgPath := filepath.Join(dir, "txt.yaml")
	if err := os.WriteFile(cfgPath, []byte("target:\n  extension: .txt\n"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	te := newTestEnv("")
	if code := te.run("-c", cfgPath, dir); code != ExitUsage {
		t.Fatalf("exit = %d, want %d", code, ExitUsage)
	}
	if te.chromeOp != nil {
		t.Error("engine connector built for an invalid config")
	}
	if _, err := os.Stat(filepath.Join(dir, "a.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("a.txt written: %v", err)
	}
	if !strings.Contains(te.stderr.String(), "target.extension") {
		t.Errorf("stderr = %q", te.stderr)
	}
}

func TestRun_PrintConfig_Precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "work.yaml")
	content := "overwrite: always\nrecursive: true\npdf:\n  pageSize: legal\n  orientation: landscape\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	te := newTestEnv("")
	te.vars["DOC2PDF_CONFIG"] = cfgPath
	te.vars["DOC2PDF_OVERWRITE"] = "never"
	te.vars["DOC2PDF_SOURCE_EXT"] = ".md"

	if code := te.run("--print-config", "--page-size", "a4"); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, te.stderr)
	}

	// env beats the file, flags beat the file, the file beats defaults.
	out := te.stdout.String()
	for _, want := range []string{
		"overwrite: never",
		"pageSize: a4",
		"orientation: landscape",
		"recursive: true",
		".md",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("config dump missing %q:\n%s", want, out)
		}
	}
}

func TestRun_WarnsUnknownEnvVars(t *testing.T) {
	t.Parallel()

	te := newTestEnv("")
	te.vars["DOC2PDF_OVERWRTE"] = "always"
	te.run("--print-config")
	if !strings.Contains(te.stderr.String(), "DOC2PDF_OVERWRTE") {
		t.Errorf("stderr = %q, want typo warning", te.stderr)
	}
}

func TestRun_EngineOptionsFromFlags(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.html"))

	te := newTestEnv("")
	te.vars["DOC2PDF_NO_SANDBOX"] = "1"
	code := te.run(dir,
		"--visible", "--timeout", "45s", "--browser-bin", "/opt/chrome",
		"-p", "a4", "--orientation", "landscape", "--margin", "1",
	)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, te.stderr)
	}

	want := chrome.Options{
		BrowserBin: "/opt/chrome",
		Visible:    true,
		NoSandbox:  true,
		Timeout:    45 * time.Second,
		Page:       chrome.PageSettings{Size: "a4", Orientation: "landscape", Margin: 1},
	}
	got := *te.chromeOp
	got.Logger = want.Logger
	if !reflect.DeepEqual(got, want) {
		t.Errorf("chrome.Options = %+v, want %+v", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestRun_Batch - Conversions through the fake engine
// ---------------------------------------------------------------------------

func TestRun_ConvertsDirectory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		recursive bool
		want      []string
	}{
		{"non-recursive", false, []string{"a.pdf", "b.pdf"}},
		{"recursive", true, []string{"a.pdf", "b.pdf", filepath.Join("sub", "c.pdf")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			touch(t, filepath.Join(dir, "a.html"))
			touch(t, filepath.Join(dir, "b.html"))
			touch(t, filepath.Join(dir, "notes.txt"))
			touch(t, filepath.Join(dir, "sub", "c.html"))

			args := []string{dir}
			if tt.recursive {
				args = append(args, "/R")
			}
			te := newTestEnv("")
			if code := te.run(args...); code != ExitSuccess {
				t.Fatalf("exit = %d, stderr: %s", code, te.stderr)
			}

			var got []string
			for _, p := range te.engine.saved {
				rel, _ := filepath.Rel(dir, p)
				got = append(got, rel)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("saved = %q, want %q", got, tt.want)
			}
			if te.engine.released != 1 {
				t.Errorf("engine released %d times, want 1", te.engine.released)
			}
			if !strings.Contains(te.stdout.String(), "Saved '"+filepath.Join(dir, "a.html")+"'") {
				t.Errorf("stdout = %q", te.stdout)
			}
			if !strings.Contains(te.stdout.String(), "converted") {
				t.Errorf("summary missing:\n%s", te.stdout)
			}
		})
	}
}

func TestRun_SourceExtFromEnv(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.md"))
	touch(t, filepath.Join(dir, "b.html"))

	te := newTestEnv("")
	te.vars["DOC2PDF_SOURCE_EXT"] = "md"
	if code := te.run(dir); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, te.stderr)
	}
	if len(te.engine.saved) != 1 || filepath.Base(te.engine.saved[0]) != "a.pdf" {
		t.Errorf("saved = %q, want [a.pdf]", te.engine.saved)
	}
}

func TestRun_ExistingOutputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		args        []string
		stdin       string
		wantSaved   int
		wantPrompts int
		wantStdout  string
	}{
		{"answer no skips", nil, "n\n", 1, 1, "Skipped '"},
		{"answer yes overwrites", nil, "y\n", 2, 1, "Saved '"},
		{"yes to all asks once", nil, "a\n", 2, 1, "Saved '"},
		{"no to all asks once", nil, "o\n", 1, 1, "Skipped '"},
		{"unknown key asks again", nil, "z\nn\n", 1, 2, "Skipped '"},
		{"overwrite switch never asks", []string{"-O"}, "", 2, 0, "Saved '"},
		{"skip-existing never asks", []string{"--skip-existing"}, "", 1, 0, "Skipped '"},
		{"closed input cancels", nil, "", 0, 1, "Cancelled at '"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			touch(t, filepath.Join(dir, "a.html"))
			touch(t, filepath.Join(dir, "a.pdf"))
			touch(t, filepath.Join(dir, "b.html"))

			te := newTestEnv(tt.stdin)
			code := te.run(append([]string{dir}, tt.args...)...)
			if code != ExitSuccess {
				t.Fatalf("exit = %d, stderr: %s", code, te.stderr)
			}
			if len(te.engine.saved) != tt.wantSaved {
				t.Errorf("saved = %q, want %d saves", te.engine.saved, tt.wantSaved)
			}
			if got := strings.Count(te.stdout.String(), "Warning!"); got != tt.wantPrompts {
				t.Errorf("prompts = %d, want %d", got, tt.wantPrompts)
			}
			if !strings.Contains(te.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", te.stdout, tt.wantStdout)
			}
		})
	}
}

func TestRun_CancelStopsBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"a.html", "a.pdf", "b.html", "b.pdf", "c.html"} {
		touch(t, filepath.Join(dir, name))
	}

	te := newTestEnv("c\n")
	if code := te.run(dir); code != ExitSuccess {
		t.Fatalf("exit = %d, want cancel to exit 0", code)
	}
	if len(te.engine.saved) != 0 || len(te.engine.opened) != 0 {
		t.Errorf("engine touched after cancel: opened %q, saved %q", te.engine.opened, te.engine.saved)
	}
	if !strings.Contains(te.stdout.String(), "Cancelled at '"+filepath.Join(dir, "a.html")+"'") {
		t.Errorf("stdout = %q", te.stdout)
	}
	if strings.Count(te.stdout.String(), "Warning!") != 1 {
		t.Errorf("prompted after cancel:\n%s", te.stdout)
	}
}

func TestRun_FailureExitsGeneral(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.html"))
	touch(t, filepath.Join(dir, "b.html"))

	te := newTestEnv("")
	te.engine.failOpen["a.html"] = true
	if code := te.run(dir); code != ExitGeneral {
		t.Fatalf("exit = %d, want %d", code, ExitGeneral)
	}
	if !strings.Contains(te.stderr.String(), "FAILED "+filepath.Join(dir, "a.html")) {
		t.Errorf("stderr = %q", te.stderr)
	}
	if len(te.engine.saved) != 1 || filepath.Base(te.engine.saved[0]) != "b.pdf" {
		t.Errorf("saved = %q, want [b.pdf]", te.engine.saved)
	}
	if !strings.Contains(te.stdout.String(), "1 converted, 0 skipped, 1 failed") {
		t.Errorf("summary = %q", te.stdout)
	}
}

func TestRun_InputErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.html"))
	missing := filepath.Join(dir, "missing.html")

	t.Run("some missing converts the rest", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv("")
		if code := te.run(missing, filepath.Join(dir, "a.html")); code != ExitGeneral {
			t.Fatalf("exit = %d, want %d", code, ExitGeneral)
		}
		if len(te.engine.saved) != 1 {
			t.Errorf("saved = %q", te.engine.saved)
		}
		if !strings.Contains(te.stderr.String(), "input not found") {
			t.Errorf("stderr = %q", te.stderr)
		}
	})

	t.Run("all missing never connects", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv("")
		if code := te.run(missing, filepath.Join(dir, "gone")); code != ExitNoInput {
			t.Fatalf("exit = %d, want %d", code, ExitNoInput)
		}
		if te.chromeOp != nil {
			t.Error("engine connector built although no input exists")
		}
		if strings.Count(te.stderr.String(), "FAILED input not found") != 2 {
			t.Errorf("stderr = %q", te.stderr)
		}
	})

	t.Run("unsupported file", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv("")
		other := filepath.Join(t.TempDir(), "a.txt")
		touch(t, other)
		if code := te.run(other); code != ExitGeneral {
			t.Fatalf("exit = %d, want %d", code, ExitGeneral)
		}
		if !strings.Contains(te.stderr.String(), "unsupported file extension") {
			t.Errorf("stderr = %q", te.stderr)
		}
	})
}

func TestRun_ConnectFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.html"))

	te := newTestEnv("")
	te.NewConnector = func(chrome.Options) doc2pdf.Connector {
		return doc2pdf.ConnectorFunc(func(context.Context) (doc2pdf.Engine, error) {
			return nil, errors.New("chrome not found")
		})
	}
	if code := te.run(dir); code != ExitEngine {
		t.Fatalf("exit = %d, want %d", code, ExitEngine)
	}
	if !strings.Contains(te.stderr.String(), "chrome not found") {
		t.Errorf("stderr = %q", te.stderr)
	}
}

func TestRun_InterruptedBeforeFirstFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.html"))

	te := newTestEnv("")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if code := run(ctx, []string{dir}, te.Environment); code != ExitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if len(te.engine.saved) != 0 {
		t.Errorf("saved = %q after interrupt", te.engine.saved)
	}
	if te.engine.released != 1 {
		t.Errorf("engine released %d times, want 1", te.engine.released)
	}
}

// stallingStdin blocks every Read until released, calling onRead once when
// the first Read starts.
type stallingStdin struct {
	once    sync.Once
	onRead  func()
	release chan struct{}
}

func (r *stallingStdin) Read([]byte) (int, error) {
	r.once.Do(r.onRead)
	<-r.release
	return 0, io.EOF
}

func TestRun_InterruptedAtPrompt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.html"))
	touch(t, filepath.Join(dir, "a.pdf"))
	touch(t, filepath.Join(dir, "b.html"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stdin := &stallingStdin{onRead: cancel, release: make(chan struct{})}
	t.Cleanup(func() { close(stdin.release) })

	te := newTestEnv("")
	te.Stdin = stdin
	if code := run(ctx, []string{dir}, te.Environment); code != ExitSuccess {
		t.Fatalf("exit = %d, want %d", code, ExitSuccess)
	}
	if len(te.engine.saved) != 0 {
		t.Errorf("saved = %q after interrupt at prompt", te.engine.saved)
	}
	if !strings.Contains(te.stdout.String(), "Cancelled at '"+filepath.Join(dir, "a.html")+"'") {
		t.Errorf("stdout = %q", te.stdout)
	}
}

// ---------------------------------------------------------------------------
// TestRun_Interactive - No arguments: prompt for a path
// ---------------------------------------------------------------------------

func TestRun_Interactive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		stdin     func(dir string) string
		wantSaved int
	}{
		{
			name:      "directory recursive after a bad path",
			stdin:     func(dir string) string { return filepath.Join(dir, "nope") + "\n" + dir + "\ny\n" },
			wantSaved: 2,
		},
		{
			name:      "directory flat",
			stdin:     func(dir string) string { return dir + "\nn\n" },
			wantSaved: 1,
		},
		{
			name:      "quoted single file",
			stdin:     func(dir string) string { return "\"" + filepath.Join(dir, "a.html") + "\"\n" },
			wantSaved: 1,
		},
		{
			name:      "escape at recursion prompt",
			stdin:     func(dir string) string { return dir + "\n\x1b\n" },
			wantSaved: 0,
		},
		{
			name:      "closed input",
			stdin:     func(string) string { return "" },
			wantSaved: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			touch(t, filepath.Join(dir, "a.html"))
			touch(t, filepath.Join(dir, "sub", "b.html"))

			te := newTestEnv(tt.stdin(dir))
			if code := te.run(); code != ExitSuccess {
				t.Fatalf("exit = %d, stderr: %s", code, te.stderr)
			}
			if len(te.engine.saved) != tt.wantSaved {
				t.Errorf("saved = %q, want %d", te.engine.saved, tt.wantSaved)
			}
			if !strings.Contains(te.stdout.String(), "Enter path of a .html document file or a directory") {
				t.Errorf("stdout = %q", te.stdout)
			}
		})
	}
}
