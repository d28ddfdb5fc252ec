package binderpdf

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font/gofont/goregular"
)

// writeFontDir writes a valid outline file under the candidate name for the
// given language, so the registry finds it before any system path.
func writeFontDir(t *testing.T, lang string) string {
	t.Helper()
	dir := t.TempDir()
	name := filepath.Base(logographicFonts[lang].candidates[0])
	if err := os.WriteFile(filepath.Join(dir, name), goregular.TTF, 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return dir
}

func TestFontRegistryFamily(t *testing.T) {
	t.Parallel()

	t.Run("latin languages use the built-in family", func(t *testing.T) {
		t.Parallel()
		r := NewFontRegistry()
		for _, lang := range []string{"en", "de", "fr", ""} {
			family, err := r.Family(lang)
			if err != nil {
				t.Errorf("Family(%q) error = %v", lang, err)
			}
			if family != latinFamily {
				t.Errorf("Family(%q) = %q, want %q", lang, family, latinFamily)
			}
		}
	})

	t.Run("logographic language before registration", func(t *testing.T) {
		t.Parallel()
		r := NewFontRegistry()
		_, err := r.Family("ja")
		if !errors.Is(err, ErrFontNotRegistered) {
			t.Errorf("error = %v, want ErrFontNotRegistered", err)
		}
	})

	t.Run("registered collection resolves", func(t *testing.T) {
		t.Parallel()
		r := NewFontRegistry(writeFontDir(t, "ja"))
		pdf := gofpdf.New("P", "mm", "A4", "")
		r.Register(pdf, nil)

		family, err := r.Family("ja")
		if err != nil {
			t.Fatalf("Family(ja) error = %v", err)
		}
		if family != "notosansjp" {
			t.Errorf("Family(ja) = %q, want notosansjp", family)
		}
	})

	t.Run("missing collection warns and fails hard", func(t *testing.T) {
		t.Parallel()
		r := NewFontRegistry(writeFontDir(t, "ja"))
		var warn bytes.Buffer
		r.Register(gofpdf.New("P", "mm", "A4", ""), &warn)

		_, err := r.Family("ko")
		if err == nil {
			// A system Noto install satisfied the lookup; nothing to assert.
			t.Skip("korean collection present on this host")
		}
		if !errors.Is(err, ErrFontUnavailable) {
			t.Errorf("error = %v, want ErrFontUnavailable", err)
		}
		if !strings.Contains(warn.String(), `"ko"`) {
			t.Errorf("warning output %q lacks the missing language", warn.String())
		}
	})
}

func TestFontRegistryRegisterTwice(t *testing.T) {
	t.Parallel()

	// One registry serves many PDFs: every Register call must attach the
	// collections even though the disk load runs only once.
	r := NewFontRegistry(writeFontDir(t, "ja"))

	for i := 0; i < 2; i++ {
		pdf := gofpdf.New("P", "mm", "A4", "")
		r.Register(pdf, nil)
		pdf.AddPage()
		pdf.SetFont("notosansjp", "", 10)
		if pdf.Err() {
			t.Fatalf("pdf %d error after SetFont: %v", i, pdf.Error())
		}
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	r := NewFontRegistry()

	tests := []struct {
		in   string
		lang string
		want string
	}{
		{"Nidoran♂", "en", "Nidoran[M]"},
		{"Nidoran♀", "de", "Nidoran[F]"},
		{"ニドラン♂", "ja", "ニドラン♂"},
		{"Glurak", "de", "Glurak"},
	}
	for _, tt := range tests {
		if got := r.Sanitize(tt.in, tt.lang); got != tt.want {
			t.Errorf("Sanitize(%q, %q) = %q, want %q", tt.in, tt.lang, got, tt.want)
		}
	}
}

func TestLogographic(t *testing.T) {
	t.Parallel()

	r := NewFontRegistry()
	for lang, want := range map[string]bool{
		"ja": true, "zh": true, "ko": true, "en": false, "de": false,
	} {
		if got := r.Logographic(lang); got != want {
			t.Errorf("Logographic(%q) = %v, want %v", lang, got, want)
		}
	}
}
