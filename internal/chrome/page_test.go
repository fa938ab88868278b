package chrome

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPageSettings_Validate
// ---------------------------------------------------------------------------

func TestPageSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		p       PageSettings
		wantErr error
	}{
		{name: "zero value uses defaults", p: PageSettings{}},
		{name: "defaults", p: DefaultPageSettings()},
		{name: "a4 landscape uppercase", p: PageSettings{Size: "A4", Orientation: "LANDSCAPE", Margin: 1}},
		{name: "legal at max margin", p: PageSettings{Size: "legal", Margin: MaxMargin}},
		{name: "unknown size", p: PageSettings{Size: "tabloid"}, wantErr: ErrInvalidPageSize},
		{name: "unknown orientation", p: PageSettings{Orientation: "diagonal"}, wantErr: ErrInvalidOrientation},
		{name: "margin too small", p: PageSettings{Margin: 0.1}, wantErr: ErrInvalidMargin},
		{name: "margin too large", p: PageSettings{Margin: 3.01}, wantErr: ErrInvalidMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.p.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPageSettings_Dimensions
// ---------------------------------------------------------------------------

func TestPageSettings_Dimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		p     PageSettings
		wantW float64
		wantH float64
	}{
		{PageSettings{}, 8.5, 11},
		{PageSettings{Size: "letter", Orientation: "landscape"}, 11, 8.5},
		{PageSettings{Size: "a4"}, 8.27, 11.69},
		{PageSettings{Size: "A4", Orientation: "Landscape"}, 11.69, 8.27},
		{PageSettings{Size: "legal"}, 8.5, 14},
	}

	for _, tt := range tests {
		w, h := tt.p.dimensions()
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("%+v: dimensions = %vx%v, want %vx%v", tt.p, w, h, tt.wantW, tt.wantH)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPageSettings_PrintOptions
// ---------------------------------------------------------------------------

func TestPageSettings_PrintOptions(t *testing.T) {
	t.Parallel()

	opts := PageSettings{Size: "a4", Margin: 1.25}.printOptions()

	if *opts.PaperWidth != 8.27 || *opts.PaperHeight != 11.69 {
		t.Errorf("paper = %vx%v, want 8.27x11.69", *opts.PaperWidth, *opts.PaperHeight)
	}
	for name, m := range map[string]*float64{
		"top": opts.MarginTop, "bottom": opts.MarginBottom,
		"left": opts.MarginLeft, "right": opts.MarginRight,
	} {
		if m == nil || *m != 1.25 {
			t.Errorf("margin %s = %v, want 1.25", name, m)
		}
	}
	if !opts.PrintBackground {
		t.Error("PrintBackground = false, want true")
	}

	if got := *(PageSettings{}).printOptions().MarginTop; got != DefaultMargin {
		t.Errorf("default margin = %v, want %v", got, DefaultMargin)
	}
}
