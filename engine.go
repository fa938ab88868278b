package doc2pdf

import "context"

// Connector opens a session with the external conversion engine.
type Connector interface {
	Connect(ctx context.Context) (Engine, error)
}

// ConnectorFunc adapts a function to the Connector interface.
type ConnectorFunc func(ctx context.Context) (Engine, error)

// Connect calls f(ctx).
func (f ConnectorFunc) Connect(ctx context.Context) (Engine, error) {
	return f(ctx)
}

// Engine is a connected document-processing application.
//
// Release disconnects. An engine left visible to an operator keeps running;
// otherwise releasing may terminate its process.
type Engine interface {
	Documents(ctx context.Context) (Documents, error)
	Release() error
}

// Documents is a reference to the engine's collection of open documents.
type Documents interface {
	// Lookup returns the document already open under name, matched by exact
	// string. A miss returns an error; callers treat any error as "not open".
	Lookup(ctx context.Context, name string) (Document, error)

	// Open loads the file at path. The caller owns the returned document and
	// must close it.
	Open(ctx context.Context, path string) (Document, error)

	// Release drops the local reference to the collection.
	Release()
}

// Document is a document held by the engine.
type Document interface {
	// SaveAs writes the document in the target format to path.
	SaveAs(ctx context.Context, path string) error

	// Close closes the document in the engine. A closed document is
	// destroyed and must not be released afterwards.
	Close(ctx context.Context) error

	// Release drops the local reference without closing the document.
	Release()
}
