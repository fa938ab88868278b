package doc2pdf

import (
	"context"
	"fmt"
)

// handle pairs a document with the ownership token of the transaction that
// obtained it. The token is consumed by the first close, so a document is
// closed at most once and only by the transaction that opened it.
type handle struct {
	doc   Document
	owned bool
}

// ownedHandle wraps a document this transaction opened.
func ownedHandle(doc Document) *handle {
	return &handle{doc: doc, owned: true}
}

// borrowedHandle wraps a document someone else opened. It is never closed.
func borrowedHandle(doc Document) *handle {
	return &handle{doc: doc}
}

// close closes an owned document and consumes the token. On success the
// engine has destroyed the document, so the local reference is dropped
// without a release. On failure the reference is kept for release.
func (h *handle) close(ctx context.Context) error {
	if h == nil || !h.owned || h.doc == nil {
		return nil
	}
	h.owned = false

	if err := h.doc.Close(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrCloseDocument, err)
	}
	h.doc = nil
	return nil
}

// release drops whatever local reference is left. Safe to call repeatedly.
func (h *handle) release() {
	if h == nil || h.doc == nil {
		return
	}
	h.doc.Release()
	h.doc = nil
}

// finish runs the full cleanup: close if owned, then release.
func (h *handle) finish(ctx context.Context) error {
	err := h.close(ctx)
	h.release()
	return err
}
