// Package markup turns Markdown sources into standalone HTML pages the
// browser engine can print.
package markup

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-doc2pdf/internal/fileutil"
)

// ErrHTMLConversion indicates Markdown to HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultStyle is the chroma style used for code blocks.
const DefaultStyle = "github"

var (
	//go:embed page.css
	pageCSS string

	//go:embed page.html
	pageHTML string

	pageTemplate = template.Must(template.New("page").Parse(pageHTML))
)

// pageData fills page.html.
type pageData struct {
	Base    template.URL
	Title   string
	PageCSS template.CSS
	CodeCSS template.CSS
	Body    template.HTML
}

// Renderer converts Markdown to HTML with GFM extensions, footnotes and
// chroma syntax highlighting.
type Renderer struct {
	md  goldmark.Markdown
	css string
}

// NewRenderer creates a Renderer highlighting code with the named chroma
// style. Unknown names fall back to chroma's default style.
func NewRenderer(style string) (*Renderer, error) {
	if style == "" {
		style = DefaultStyle
	}
	formatOpts := []chromahtml.Option{chromahtml.WithClasses(true)}

	var css bytes.Buffer
	if err := chromahtml.New(formatOpts...).WriteCSS(&css, styles.Get(style)); err != nil {
		return nil, fmt.Errorf("%w: highlight style %q: %v", ErrHTMLConversion, style, err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(formatOpts...),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithXHTML(),
		),
	)
	return &Renderer{md: md, css: css.String()}, nil
}

// Render converts Markdown to a complete HTML document. Relative links and
// images resolve against baseDir.
//
// goldmark has no context support, so conversion runs in a goroutine and
// Render returns early when ctx is done.
func (r *Renderer) Render(ctx context.Context, src []byte, baseDir, title string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		body string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert(src, &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{body: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		if res.err != nil {
			return "", res.err
		}
		base := template.URL(strings.TrimSuffix(fileutil.FileURL(baseDir), "/") + "/") // #nosec G203 -- local file URL
		body := template.HTML(res.body)                                                // #nosec G203 -- goldmark output, raw HTML off

		var page bytes.Buffer
		err := pageTemplate.Execute(&page, pageData{
			Base:    base,
			Title:   title,
			PageCSS: template.CSS(pageCSS), // #nosec G203 -- embedded stylesheet
			CodeCSS: template.CSS(r.css),   // #nosec G203 -- generated by chroma
			Body:    body,
		})
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
		}
		return page.String(), nil
	}
}

// RenderFile renders the Markdown file at path, titled after its file name.
func (r *Renderer) RenderFile(ctx context.Context, path string) (string, error) {
	src, err := os.ReadFile(path) // #nosec G304 -- path is a resolved work item
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", ErrHTMLConversion, path, err)
	}
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return r.Render(ctx, src, filepath.Dir(path), title)
}

// IsMarkdown reports whether path has a Markdown extension.
func IsMarkdown(path string) bool {
	for _, ext := range []string{".md", ".markdown", ".mdown", ".mkd"} {
		if fileutil.HasExt(path, ext) {
			return true
		}
	}
	return false
}
