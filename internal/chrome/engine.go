// Package chrome is a conversion engine backed by a Chrome or Chromium
// browser driven over the DevTools protocol.
//
// Browser tabs are the engine's documents: opening a source loads it in a
// new tab, saving prints the tab to PDF, closing closes the tab. Tabs the
// operator already has open on the same file are found by URL and reused.
// Markdown sources are rendered to HTML first.
package chrome

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/rs/zerolog"

	doc2pdf "github.com/alnah/go-doc2pdf"
	"github.com/alnah/go-doc2pdf/internal/logging"
	"github.com/alnah/go-doc2pdf/internal/markup"
	"github.com/alnah/go-doc2pdf/internal/process"
)

// Compile-time interface checks.
var (
	_ doc2pdf.Connector = (*Connector)(nil)
	_ doc2pdf.Engine    = (*Engine)(nil)
	_ doc2pdf.Documents = (*documents)(nil)
	_ doc2pdf.Document  = (*document)(nil)
)

// Options configures how the browser is reached and how pages print.
type Options struct {
	BrowserBin string        // empty = auto-detect, downloading Chromium if needed
	ControlURL string        // attach to a running browser instead of launching
	Visible    bool          // show the window and leave the browser running
	NoSandbox  bool          // required in most containers
	Timeout    time.Duration // page-load timeout, zero = none
	Page       PageSettings
	Logger     zerolog.Logger
}

// Connector launches or attaches to a browser.
type Connector struct {
	opts Options
}

// NewConnector returns a Connector for opts.
func NewConnector(opts Options) *Connector {
	return &Connector{opts: opts}
}

// newLauncher builds the launcher for a locally started browser.
func (c *Connector) newLauncher() *launcher.Launcher {
	l := launcher.New().
		Headless(!c.opts.Visible).
		Leakless(!c.opts.Visible)
	if c.opts.NoSandbox {
		l = l.NoSandbox(true)
	}
	if c.opts.BrowserBin != "" {
		l = l.Bin(c.opts.BrowserBin)
	}
	return l
}

// Connect starts (or attaches to) the browser. Page settings are checked
// first so a bad configuration fails before anything is launched.
func (c *Connector) Connect(ctx context.Context) (doc2pdf.Engine, error) {
	if err := c.opts.Page.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := logging.Component(c.opts.Logger, "chrome")
	done := logging.Operation(log, "connect")
	defer done()

	renderer, err := markup.NewRenderer(markup.DefaultStyle)
	if err != nil {
		return nil, err
	}

	var (
		l   *launcher.Launcher
		url string
	)
	if c.opts.ControlURL != "" {
		url, err = launcher.ResolveURL(c.opts.ControlURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBrowserConnect, c.opts.ControlURL, err)
		}
		log.Debug().Str("url", url).Msg("attaching to running browser")
	} else {
		l = c.newLauncher()
		url, err = l.Launch()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
		}
		log.Debug().Int("pid", l.PID()).Bool("visible", c.opts.Visible).Msg("browser launched")
	}

	// The browser outlives an interrupt of the run so Release can still
	// close it; only Release cancels this context.
	engineCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	browser := rod.New().ControlURL(url).Context(engineCtx)
	if err := browser.Connect(); err != nil {
		cancel()
		if l != nil {
			l.Kill()
			l.Cleanup()
		}
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	return &Engine{
		browser:  browser,
		launcher: l,
		keep:     l == nil || c.opts.Visible,
		cancel:   cancel,
		opts:     c.opts,
		renderer: renderer,
		log:      log,
	}, nil
}

// Engine is a connected browser.
type Engine struct {
	browser  *rod.Browser
	launcher *launcher.Launcher // nil when attached
	keep     bool               // leave the browser running on Release
	cancel   context.CancelFunc
	opts     Options
	renderer *markup.Renderer
	log      zerolog.Logger
	released bool
}

// Documents returns the set of open tabs.
func (e *Engine) Documents(ctx context.Context) (doc2pdf.Documents, error) {
	if e.released {
		return nil, ErrEngineReleased
	}
	return &documents{engine: e}, nil
}

// Release disconnects from the browser. A browser this engine launched
// headless is closed and its process tree killed; an attached or visible
// browser is left running for the operator.
func (e *Engine) Release() error {
	if e.released {
		return nil
	}
	e.released = true
	defer e.cancel()

	if e.keep {
		e.log.Debug().Msg("leaving browser running")
		return nil
	}

	err := e.browser.Close()
	if e.launcher != nil {
		if pid := e.launcher.PID(); pid > 0 {
			if kerr := process.KillTree(pid); kerr != nil {
				e.log.Trace().Err(kerr).Int("pid", pid).Msg("process tree already gone")
			}
		}
		e.launcher.Cleanup()
	}
	if err != nil {
		return fmt.Errorf("closing browser: %w", err)
	}
	return nil
}
