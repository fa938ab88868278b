package chrome

import (
	"fmt"
	"strings"

	"github.com/go-rod/rod/lib/proto"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns US Letter portrait with half-inch margins.
func DefaultPageSettings() PageSettings {
	return PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// withDefaults fills empty fields from DefaultPageSettings.
func (p PageSettings) withDefaults() PageSettings {
	d := DefaultPageSettings()
	if p.Size == "" {
		p.Size = d.Size
	}
	if p.Orientation == "" {
		p.Orientation = d.Orientation
	}
	if p.Margin == 0 {
		p.Margin = d.Margin
	}
	return p
}

// Validate checks the settings after defaults are applied. Comparison is
// case-insensitive.
func (p PageSettings) Validate() error {
	p = p.withDefaults()

	switch strings.ToLower(p.Size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// dimensions returns paper width and height in inches.
func (p PageSettings) dimensions() (width, height float64) {
	p = p.withDefaults()

	switch strings.ToLower(p.Size) {
	case PageSizeA4:
		width, height = 8.27, 11.69
	case PageSizeLegal:
		width, height = 8.5, 14
	default:
		width, height = 8.5, 11
	}
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		width, height = height, width
	}
	return width, height
}

// printOptions builds the DevTools print request for p.
func (p PageSettings) printOptions() *proto.PagePrintToPDF {
	p = p.withDefaults()
	w, h := p.dimensions()
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(w),
		PaperHeight:     floatPtr(h),
		MarginTop:       floatPtr(p.Margin),
		MarginBottom:    floatPtr(p.Margin),
		MarginLeft:      floatPtr(p.Margin),
		MarginRight:     floatPtr(p.Margin),
		PrintBackground: true,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
