package binderpdf

import (
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

// newTestCompositor builds a compositor over a fresh single-page PDF, a logo
// directory holding ex_new (3:1) and gx (1:1), and an empty asset cache.
func newTestCompositor(t *testing.T) *compositor {
	t.Helper()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	logoDir := t.TempDir()
	logos := map[string]struct{ w, h int }{
		"ex_new": {30, 10},
		"gx":     {12, 12},
	}
	for name, dim := range logos {
		png := encodeTestPNG(t, color.NRGBA{B: 0xF0, A: 0xFF}, dim.w, dim.h)
		if err := os.WriteFile(filepath.Join(logoDir, name+".png"), png, 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	cache := NewAssetCache(t.TempDir(), 10, nil)
	return newCompositor(pdf, NewFontRegistry(), cache, logoDir)
}

const widthTolerance = 1e-9

func TestMeasureCentered(t *testing.T) {
	comp := newTestCompositor(t)

	textWidth := func(s string) float64 {
		comp.pdf.SetFont(latinFamily, "B", scaleCellName.fontSize)
		return comp.pdf.GetStringWidth(comp.latin(s))
	}
	logoWidth := func(aspect float64) float64 {
		return aspect*scaleCellName.tokenHeight + scaleCellName.gap
	}

	// Segment-count sweep: the total must equal the independently summed
	// segment widths for 0 through 5 segments.
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"empty", "", 0},
		{"single text", "Charizard", textWidth("Charizard")},
		{"text and logo", "Charizard [EX_NEW]", textWidth("Charizard ") + logoWidth(3)},
		{"logo between runs", "a [GX] b", textWidth("a ") + logoWidth(1) + textWidth(" b")},
		{
			"two logos two runs",
			"a [GX] b [EX_NEW]",
			textWidth("a ") + logoWidth(1) + textWidth(" b ") + logoWidth(3),
		},
		{
			"five segments",
			"a [GX] b [EX_NEW] c",
			textWidth("a ") + logoWidth(1) + textWidth(" b ") + logoWidth(3) + textWidth(" c"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := comp.MeasureCentered(tt.in, "en", true, scaleCellName)
			if err != nil {
				t.Fatalf("MeasureCentered() error = %v", err)
			}
			if math.Abs(got-tt.want) > widthTolerance {
				t.Errorf("MeasureCentered(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMeasureCenteredFastPath(t *testing.T) {
	comp := newTestCompositor(t)

	// A token-free string must measure identically through the fast path and
	// through the full parser.
	const s = "Bisaflor"
	fast, err := comp.MeasureCentered(s, "en", true, scaleCellName)
	if err != nil {
		t.Fatalf("MeasureCentered() error = %v", err)
	}
	if err := comp.setFont("en", true, scaleCellName.fontSize); err != nil {
		t.Fatalf("setFont() error = %v", err)
	}
	parsed := comp.measure(parseSegments(s), "en", scaleCellName)
	if math.Abs(fast-parsed) > widthTolerance {
		t.Errorf("fast path width %v != parsed width %v", fast, parsed)
	}
}

func TestMeasureCenteredMissingLogo(t *testing.T) {
	comp := newTestCompositor(t)

	// [VSTAR] has no asset file: the segment and its gap vanish, the text
	// still measures.
	withMissing, err := comp.MeasureCentered("Deoxys [VSTAR]", "en", true, scaleCellName)
	if err != nil {
		t.Fatalf("MeasureCentered() error = %v", err)
	}
	textOnly, err := comp.MeasureCentered("Deoxys ", "en", true, scaleCellName)
	if err != nil {
		t.Fatalf("MeasureCentered() error = %v", err)
	}
	if math.Abs(withMissing-textOnly) > widthTolerance {
		t.Errorf("missing logo width = %v, want text-only %v", withMissing, textOnly)
	}
}

func TestMeasureCenteredGenderSubstitution(t *testing.T) {
	comp := newTestCompositor(t)

	glyph, err := comp.MeasureCentered("Nidoran♂", "en", true, scaleCellName)
	if err != nil {
		t.Fatalf("MeasureCentered() error = %v", err)
	}
	ascii, err := comp.MeasureCentered("Nidoran[M]", "en", true, scaleCellName)
	if err != nil {
		t.Fatalf("MeasureCentered() error = %v", err)
	}
	if math.Abs(glyph-ascii) > widthTolerance {
		t.Errorf("substituted width = %v, want %v", glyph, ascii)
	}
}

func TestDrawCentered(t *testing.T) {
	comp := newTestCompositor(t)

	cases := []string{
		"Charizard",
		"Charizard [EX_NEW]",
		"a [GX] b",
		"broken [image]no-close",
	}
	for _, s := range cases {
		if err := comp.DrawCentered(s, "en", PageWidth/2, 50, true, scaleCellName); err != nil {
			t.Errorf("DrawCentered(%q) error = %v", s, err)
		}
	}
	if comp.pdf.Err() {
		t.Errorf("pdf error state: %v", comp.pdf.Error())
	}
}

func TestDrawCenteredUnregisteredFont(t *testing.T) {
	comp := newTestCompositor(t)

	// The registry was never attached to a PDF, so logographic languages
	// must fail hard instead of drawing with the wrong family.
	err := comp.DrawCentered("リザードン", "ja", PageWidth/2, 50, true, scaleCellName)
	if !errors.Is(err, ErrFontNotRegistered) {
		t.Errorf("error = %v, want ErrFontNotRegistered", err)
	}
}
