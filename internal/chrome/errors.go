package chrome

import "errors"

// Sentinel errors for the browser engine.
var (
	ErrBrowserLaunch  = errors.New("failed to launch browser")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrEngineReleased = errors.New("engine already released")
	ErrNotOpen        = errors.New("document not open in browser")
	ErrPageCreate     = errors.New("failed to create page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPageClose      = errors.New("failed to close page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrWritePDF       = errors.New("failed to write PDF")

	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")
)
