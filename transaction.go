package doc2pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/alnah/go-doc2pdf/internal/fileutil"
)

// Convert runs the conversion transaction for one source file.
//
// The output lands next to the source with the target extension. The
// overwrite policy is consulted first; a skip never touches the engine and a
// cancel raises the session's cancel flag. Otherwise the document is reused
// if the engine already has it open, or opened (and then owned) if not, and
// saved in the target format. Every handle acquired is cleaned up before
// Convert returns, whatever happened.
//
// Engine failures are reported in the outcome and never abort the batch.
func (s *Session) Convert(ctx context.Context, engine Engine, source string) Outcome {
	start := time.Now()
	out := Outcome{
		Source: source,
		Output: fileutil.ReplaceExt(source, s.formats.Target),
	}

	decision, _ := s.Decide(out.Output)
	switch decision {
	case Skip:
		out.Kind = SkippedExists
		out.Duration = time.Since(start)
		return out
	case Cancel:
		s.Cancel()
		out.Kind = Cancelled
		out.Duration = time.Since(start)
		return out
	}

	if err := s.save(ctx, engine, source, out.Output); err != nil {
		out.Kind = Failed
		out.Err = fmt.Errorf("%w: %s: %w", ErrConversion, source, err)
		out.Duration = time.Since(start)
		return out
	}

	out.Kind = Converted
	out.Duration = time.Since(start)
	return out
}

// save acquires a handle on source, saves it to output and cleans up.
// A close failure is returned only when nothing failed before it.
func (s *Session) save(ctx context.Context, engine Engine, source, output string) (err error) {
	if engine == nil {
		return ErrNilEngine
	}

	docs, err := engine.Documents(ctx)
	if err != nil {
		return fmt.Errorf("%w: document collection: %v", ErrOpenDocument, err)
	}
	defer docs.Release()

	h, err := s.acquire(ctx, docs, source)
	defer func() {
		if cerr := h.finish(ctx); cerr != nil {
			s.logger.Warn().Err(cerr).Str("source", source).Msg("closing document")
			if err == nil {
				err = cerr
			}
		}
	}()
	if err != nil {
		return err
	}

	s.logger.Debug().Str("source", source).Str("output", output).Bool("owned", h.owned).Msg("saving document")
	if err := h.doc.SaveAs(ctx, output); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveDocument, err)
	}
	return nil
}

// acquire returns a borrowed handle if the engine already has source open,
// otherwise opens it and returns an owned handle. A failed lookup counts as
// "not open".
func (s *Session) acquire(ctx context.Context, docs Documents, source string) (*handle, error) {
	doc, err := docs.Lookup(ctx, source)
	if err == nil && doc != nil {
		s.logger.Debug().Str("source", source).Msg("document already open, reusing")
		return borrowedHandle(doc), nil
	}
	if err != nil {
		s.logger.Trace().Err(err).Str("source", source).Msg("lookup missed")
	}

	doc, err = docs.Open(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenDocument, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenDocument, ErrNilDocument)
	}
	return ownedHandle(doc), nil
}
