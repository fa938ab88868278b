//go:build integration

package chrome

// Notes:
// - Needs Chrome or Chromium. launcher.LookPath finds an installed browser;
//   the test fails instead of letting rod download one.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"

	doc2pdf "github.com/alnah/go-doc2pdf"
)

const testTimeout = 30 * time.Second

func requireChrome(t *testing.T) string {
	t.Helper()
	bin, found := launcher.LookPath()
	if !found {
		t.Fatal("Chrome not found. Install Chrome or Chromium to run integration tests.")
	}
	return bin
}

func connect(t *testing.T) doc2pdf.Engine {
	t.Helper()
	bin := requireChrome(t)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	e, err := NewConnector(Options{
		BrowserBin: bin,
		NoSandbox:  os.Getenv("CI") != "",
		Timeout:    testTimeout,
	}).Connect(ctx)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { _ = e.Release() })
	return e
}

func assertValidPDF(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("%s is not a PDF", path)
	}
}

func TestEngine_ConvertsHTMLAndMarkdown(t *testing.T) {
	e := connect(t)
	dir := t.TempDir()

	html := filepath.Join(dir, "page.html")
	md := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(html, []byte("<h1>Hello</h1>"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(md, []byte("# Notes\n\n```go\nfunc main() {}\n```\n"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	for _, src := range []string{html, md} {
		s := doc2pdf.NewSession(doc2pdf.Options{},
			doc2pdf.WithFormats(doc2pdf.Formats{Source: filepath.Ext(src)}))
		o := s.Convert(context.Background(), e, src)
		if o.Kind != doc2pdf.Converted {
			t.Fatalf("%s: %v (%v)", src, o.Kind, o.Err)
		}
		assertValidPDF(t, o.Output)
	}
}

func TestEngine_LookupFindsOpenTab(t *testing.T) {
	e := connect(t)
	ctx := context.Background()

	src := filepath.Join(t.TempDir(), "open.html")
	if err := os.WriteFile(src, []byte("<p>already open</p>"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	docs, err := e.Documents(ctx)
	if err != nil {
		t.Fatalf("Documents: %v", err)
	}
	defer docs.Release()

	opened, err := docs.Open(ctx, src)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	found, err := docs.Lookup(ctx, src)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	found.Release()

	if err := opened.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := docs.Lookup(ctx, src); err == nil {
		t.Error("Lookup after close should miss")
	}
}
