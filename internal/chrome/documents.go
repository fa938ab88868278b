package chrome

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	doc2pdf "github.com/alnah/go-doc2pdf"
	"github.com/alnah/go-doc2pdf/internal/fileutil"
	"github.com/alnah/go-doc2pdf/internal/markup"
)

// documents is the browser's tab list.
type documents struct {
	engine *Engine
}

// Lookup finds a tab already showing name. Only an exact URL match counts.
func (d *documents) Lookup(ctx context.Context, name string) (doc2pdf.Document, error) {
	e := d.engine
	if e.released {
		return nil, ErrEngineReleased
	}

	want := fileutil.FileURL(name)
	pages, err := e.browser.Context(ctx).Pages()
	if err != nil {
		return nil, fmt.Errorf("listing tabs: %w", err)
	}
	for _, p := range pages {
		info, err := p.Info()
		if err != nil {
			continue
		}
		if info.URL == want {
			e.log.Debug().Str("url", want).Msg("found open tab")
			return &document{engine: e, page: p, source: name}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotOpen, name)
}

// Open loads path in a new tab and waits for it to finish loading.
// Markdown is rendered to a temporary HTML file first; the file lives as
// long as the document.
func (d *documents) Open(ctx context.Context, path string) (doc2pdf.Document, error) {
	e := d.engine
	if e.released {
		return nil, ErrEngineReleased
	}

	target := path
	cleanup := func() {}
	if markup.IsMarkdown(path) {
		html, err := e.renderer.RenderFile(ctx, path)
		if err != nil {
			return nil, err
		}
		tmp, rm, err := fileutil.WriteTempFile(html, "html")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
		}
		target, cleanup = tmp, rm
	}

	page, err := e.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: fileutil.FileURL(target)})
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	waiter := page
	if e.opts.Timeout > 0 {
		waiter = page.Timeout(e.opts.Timeout)
	}
	if err := waiter.WaitLoad(); err != nil {
		_ = page.Close()
		cleanup()
		return nil, fmt.Errorf("%w: %s: %v", ErrPageLoad, path, err)
	}

	e.log.Debug().Str("source", path).Str("target", target).Msg("tab opened")
	return &document{engine: e, page: page, source: path, cleanup: cleanup}, nil
}

// Release drops the tab list. Tabs stay as they are.
func (d *documents) Release() {
	d.engine = nil
}

// document is one browser tab.
type document struct {
	engine  *Engine
	page    *rod.Page
	source  string
	cleanup func() // removes a rendered temp file, if any
}

// SaveAs prints the tab to PDF at path. The PDF is written to a temp file
// in the same directory and renamed into place, so a failed save never
// leaves a truncated file behind.
func (d *document) SaveAs(ctx context.Context, path string) error {
	if d.page == nil {
		return fmt.Errorf("%w: document already released", ErrPDFGeneration)
	}

	stream, err := d.page.Context(ctx).PDF(d.engine.opts.Page.printOptions())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	if err := writeFileAtomic(path, stream); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	d.engine.log.Debug().Str("source", d.source).Str("output", path).Msg("pdf written")
	return nil
}

// Close closes the tab.
func (d *document) Close(ctx context.Context) error {
	if d.page == nil {
		return nil
	}
	if err := d.page.Context(ctx).Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrPageClose, err)
	}
	d.page = nil
	d.dropTemp()
	return nil
}

// Release forgets the tab without closing it.
func (d *document) Release() {
	d.page = nil
	d.dropTemp()
}

func (d *document) dropTemp() {
	if d.cleanup != nil {
		d.cleanup()
		d.cleanup = nil
	}
}
