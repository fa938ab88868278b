package doc2pdf

// Notes:
// - mockEngine records every engine call in order so tests can assert on the
//   ownership discipline (open/close/release counts per document).
// - Failure injection is per path: failOpen, failSave, failClose.
// - SaveAs writes a small file so later prompts see an existing output.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock engine
// ---------------------------------------------------------------------------

var (
	errMockOpen    = errors.New("mock: open failed")
	errMockSave    = errors.New("mock: save failed")
	errMockClose   = errors.New("mock: close failed")
	errMockConnect = errors.New("mock: connect failed")
	errMockLookup  = errors.New("mock: not open")
)

type mockEngine struct {
	mu sync.Mutex

	// preOpen lists names the engine already has open (exact strings).
	preOpen map[string]bool

	failOpen   map[string]bool
	failSave   map[string]bool
	failClose  map[string]bool
	failDocs   bool
	lookupErr  bool // Lookup returns an error even for open names
	nilOnOpen  bool
	noWrite    bool
	calls      []string
	opens      map[string]int
	closes     map[string]int
	saves      map[string]int
	docRelease map[string]int
	docsOut    int // collections handed out and not yet released
	released   int
}

func newMockEngine() *mockEngine {
	return &mockEngine{
		preOpen:    map[string]bool{},
		failOpen:   map[string]bool{},
		failSave:   map[string]bool{},
		failClose:  map[string]bool{},
		opens:      map[string]int{},
		closes:     map[string]int{},
		saves:      map[string]int{},
		docRelease: map[string]int{},
	}
}

func (e *mockEngine) record(call string) {
	e.calls = append(e.calls, call)
}

func (e *mockEngine) Documents(context.Context) (Documents, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("documents")
	if e.failDocs {
		return nil, errors.New("mock: documents unavailable")
	}
	e.docsOut++
	return &mockDocuments{engine: e}, nil
}

func (e *mockEngine) Release() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("release-engine")
	e.released++
	return nil
}

func (e *mockEngine) count(m map[string]int, name string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return m[name]
}

func (e *mockEngine) total(m map[string]int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

type mockDocuments struct {
	engine   *mockEngine
	released bool
}

func (d *mockDocuments) Lookup(_ context.Context, name string) (Document, error) {
	e := d.engine
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("lookup " + name)
	if e.lookupErr || !e.preOpen[name] {
		return nil, errMockLookup
	}
	return &mockDocument{engine: e, name: name}, nil
}

func (d *mockDocuments) Open(_ context.Context, path string) (Document, error) {
	e := d.engine
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("open " + path)
	if e.failOpen[path] {
		return nil, errMockOpen
	}
	e.opens[path]++
	if e.nilOnOpen {
		return nil, nil
	}
	return &mockDocument{engine: e, name: path}, nil
}

func (d *mockDocuments) Release() {
	e := d.engine
	e.mu.Lock()
	defer e.mu.Unlock()
	if d.released {
		panic("mock: document collection released twice")
	}
	d.released = true
	e.record("release-documents")
	e.docsOut--
}

type mockDocument struct {
	engine   *mockEngine
	name     string
	closed   bool
	released bool
}

func (d *mockDocument) SaveAs(_ context.Context, path string) error {
	e := d.engine
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("save " + path)
	if e.failSave[d.name] {
		return errMockSave
	}
	e.saves[d.name]++
	if e.noWrite {
		return nil
	}
	return os.WriteFile(path, []byte("%PDF-1.4 mock"), 0o644)
}

func (d *mockDocument) Close(context.Context) error {
	e := d.engine
	e.mu.Lock()
	defer e.mu.Unlock()
	if d.closed {
		panic("mock: document closed twice: " + d.name)
	}
	if d.released {
		panic("mock: close after release: " + d.name)
	}
	e.record("close " + d.name)
	if e.failClose[d.name] {
		return errMockClose
	}
	d.closed = true
	e.closes[d.name]++
	return nil
}

func (d *mockDocument) Release() {
	e := d.engine
	e.mu.Lock()
	defer e.mu.Unlock()
	if d.closed {
		panic("mock: release after close: " + d.name)
	}
	if d.released {
		panic("mock: document released twice: " + d.name)
	}
	d.released = true
	e.record("release " + d.name)
	e.docRelease[d.name]++
}

// mockConnector hands out a single engine, or fails.
func mockConnector(e *mockEngine, fail bool) Connector {
	return ConnectorFunc(func(context.Context) (Engine, error) {
		if fail {
			return nil, errMockConnect
		}
		return e, nil
	})
}

// ---------------------------------------------------------------------------
// Test Infrastructure - Prompter and reporter
// ---------------------------------------------------------------------------

// scriptedPrompter replays answers and counts prompts.
type scriptedPrompter struct {
	answers []Answer
	prompts []string
	err     error
}

func (p *scriptedPrompter) PromptOverwrite(path string) (Answer, error) {
	p.prompts = append(p.prompts, path)
	if p.err != nil {
		return 0, p.err
	}
	if len(p.answers) == 0 {
		return AnswerCancel, nil
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

type recordingReporter struct {
	outcomes    []Outcome
	inputErrors []error
}

func (r *recordingReporter) Outcome(o Outcome)    { r.outcomes = append(r.outcomes, o) }
func (r *recordingReporter) InputError(err error) { r.inputErrors = append(r.inputErrors, err) }

// touch creates a file (and its parent dirs) for tests.
func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
