package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	doc2pdf "github.com/alnah/go-doc2pdf"
	"github.com/alnah/go-doc2pdf/internal/chrome"
)

// fakeEngine writes a stub PDF for every save and records what it did.
type fakeEngine struct {
	failOpen map[string]bool // by base name
	opened   []string
	saved    []string
	released int
}

func (e *fakeEngine) Documents(context.Context) (doc2pdf.Documents, error) {
	return &fakeDocuments{engine: e}, nil
}

func (e *fakeEngine) Release() error {
	e.released++
	return nil
}

type fakeDocuments struct {
	engine *fakeEngine
}

func (d *fakeDocuments) Lookup(context.Context, string) (doc2pdf.Document, error) {
	return nil, errors.New("not open")
}

func (d *fakeDocuments) Open(_ context.Context, path string) (doc2pdf.Document, error) {
	if d.engine.failOpen[filepath.Base(path)] {
		return nil, errors.New("page load failed")
	}
	d.engine.opened = append(d.engine.opened, path)
	return &fakeDocument{engine: d.engine}, nil
}

func (d *fakeDocuments) Release() {}

type fakeDocument struct {
	engine *fakeEngine
}

func (d *fakeDocument) SaveAs(_ context.Context, path string) error {
	d.engine.saved = append(d.engine.saved, path)
	return os.WriteFile(path, []byte("%PDF-1.4\n"), 0o600)
}

func (d *fakeDocument) Close(context.Context) error { return nil }
func (d *fakeDocument) Release()                    {}

// testEnv is an Environment wired to buffers and a fake engine.
type testEnv struct {
	*Environment
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	engine   *fakeEngine
	vars     map[string]string
	chromeOp *chrome.Options
}

func newTestEnv(stdin string) *testEnv {
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		engine: &fakeEngine{failOpen: map[string]bool{}},
		vars:   map[string]string{},
	}
	te.Environment = &Environment{
		Stdin:  strings.NewReader(stdin),
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getenv: func(name string) string { return te.vars[name] },
		Environ: func() []string {
			out := make([]string, 0, len(te.vars))
			for k, v := range te.vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		NewConnector: func(opts chrome.Options) doc2pdf.Connector {
			te.chromeOp = &opts
			return doc2pdf.ConnectorFunc(func(context.Context) (doc2pdf.Engine, error) {
				return te.engine, nil
			})
		},
	}
	return te
}

func (te *testEnv) run(args ...string) int {
	return run(context.Background(), args, te.Environment)
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte("<html></html>"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
}
