package doc2pdf

import "errors"

// Sentinel errors for batch operations.
var (
	ErrNoInput              = errors.New("no input to convert")
	ErrEngineConnect        = errors.New("failed to connect to conversion engine")
	ErrEngineRelease        = errors.New("failed to release conversion engine")
	ErrInputNotFound        = errors.New("input not found")
	ErrUnsupportedExtension = errors.New("unsupported file extension")

	// Per-file conversion errors. Every failed outcome wraps ErrConversion
	// plus the step that failed.
	ErrConversion    = errors.New("conversion failed")
	ErrOpenDocument  = errors.New("failed to open document")
	ErrSaveDocument  = errors.New("failed to save document")
	ErrCloseDocument = errors.New("failed to close document")
	ErrNilDocument   = errors.New("engine returned no document")
	ErrNilEngine     = errors.New("nil engine")
	ErrNilConnector  = errors.New("nil engine connector")
	ErrInvalidPolicy = errors.New("invalid overwrite policy")
)
