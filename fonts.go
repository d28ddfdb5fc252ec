package binderpdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font/sfnt"
)

// latinFamily is the built-in family used for every non-logographic language.
// It ships with the PDF engine, so it needs no registration.
const latinFamily = "Helvetica"

// logographicFonts maps each logographic language to the family name used
// inside the PDF and the system font files searched for it, in order.
// CJK-unified scripts (ja, zh) and Korean each need their own collection.
var logographicFonts = map[string]struct {
	family     string
	candidates []string
}{
	"ja": {
		family: "notosansjp",
		candidates: []string{
			"/usr/share/fonts/opentype/noto/NotoSansJP-Regular.ttf",
			"/usr/share/fonts/truetype/noto/NotoSansJP-Regular.ttf",
			"/usr/share/fonts/opentype/noto/NotoSansCJKjp-Regular.ttf",
		},
	},
	"zh": {
		family: "notosanssc",
		candidates: []string{
			"/usr/share/fonts/opentype/noto/NotoSansSC-Regular.ttf",
			"/usr/share/fonts/truetype/noto/NotoSansSC-Regular.ttf",
			"/usr/share/fonts/opentype/noto/NotoSansCJKsc-Regular.ttf",
		},
	},
	"ko": {
		family: "notosanskr",
		candidates: []string{
			"/usr/share/fonts/opentype/noto/NotoSansKR-Regular.ttf",
			"/usr/share/fonts/truetype/noto/NotoSansKR-Regular.ttf",
			"/usr/share/fonts/opentype/noto/NotoSansCJKkr-Regular.ttf",
		},
	},
}

// genderSubstitutions replaces the two gender glyphs for fonts that do not
// contain them. Logographic fonts render the glyphs directly.
var genderSubstitutions = strings.NewReplacer("♂", "[M]", "♀", "[F]")

// loadedFont holds one validated outline collection kept in memory for the
// process lifetime.
type loadedFont struct {
	family string
	data   []byte
}

// FontRegistry maps languages to PDF font families and owns the one-time
// loading of logographic font collections. Construct one instance at process
// start and hand it to the service; the disk load is idempotent, while
// Register attaches the loaded collections to each PDF it is given.
type FontRegistry struct {
	once      sync.Once
	extraDirs []string
	loaded    map[string]loadedFont // language -> collection
	missing   map[string]string     // language -> searched paths, for error text
}

// NewFontRegistry creates a registry. extraDirs are searched before the
// built-in system paths; they hold the same file names.
func NewFontRegistry(extraDirs ...string) *FontRegistry {
	return &FontRegistry{
		extraDirs: extraDirs,
		loaded:    make(map[string]loadedFont),
		missing:   make(map[string]string),
	}
}

// Register attaches every available logographic collection to the PDF.
// The underlying files are read and validated only once per process.
// Missing collections are reported on warn and recorded; drawing in such a
// language later fails hard instead of falling back to a wrong font.
func (r *FontRegistry) Register(pdf *gofpdf.Fpdf, warn io.Writer) {
	r.once.Do(func() {
		for lang, entry := range logographicFonts {
			data, tried, err := r.readCollection(entry.candidates)
			if err != nil {
				r.missing[lang] = tried
				if warn != nil {
					fmt.Fprintf(warn, "font for %q unavailable, tried %s\n", lang, tried)
				}
				continue
			}
			r.loaded[lang] = loadedFont{family: entry.family, data: data}
		}
	})

	for _, f := range r.loaded {
		// Same outline file backs both styles; logographic scripts have no
		// separate bold cut at the sizes used here.
		pdf.AddUTF8FontFromBytes(f.family, "", f.data)
		pdf.AddUTF8FontFromBytes(f.family, "B", f.data)
	}
}

// readCollection returns the first candidate file that parses as an sfnt
// font, plus the list of paths tried for diagnostics.
func (r *FontRegistry) readCollection(candidates []string) (data []byte, tried string, err error) {
	paths := make([]string, 0, len(candidates)*(1+len(r.extraDirs)))
	for _, c := range candidates {
		for _, dir := range r.extraDirs {
			paths = append(paths, filepath.Join(dir, filepath.Base(c)))
		}
		paths = append(paths, c)
	}

	for _, p := range paths {
		b, readErr := os.ReadFile(p) // #nosec G304 -- fixed system font paths
		if readErr != nil {
			continue
		}
		if _, parseErr := sfnt.Parse(b); parseErr != nil {
			// Present but not a usable outline file (wrong format, truncated).
			continue
		}
		return b, strings.Join(paths, ", "), nil
	}
	return nil, strings.Join(paths, ", "), os.ErrNotExist
}

// Family returns the PDF font family for a language. Requesting a
// logographic language whose collection was absent at registration is a hard
// error; silently drawing with a font that lacks the glyphs would corrupt
// the output invisibly.
func (r *FontRegistry) Family(lang string) (string, error) {
	if _, logographic := logographicFonts[lang]; !logographic {
		return latinFamily, nil
	}
	if f, ok := r.loaded[lang]; ok {
		return f.family, nil
	}
	if tried, ok := r.missing[lang]; ok {
		return "", fmt.Errorf("%w: %s (searched %s)", ErrFontUnavailable, lang, tried)
	}
	return "", fmt.Errorf("%w: %s", ErrFontNotRegistered, lang)
}

// Sanitize rewrites glyphs the selected font cannot render. The built-in
// Latin family lacks the gender glyphs; logographic collections have them.
func (r *FontRegistry) Sanitize(s, lang string) string {
	if _, logographic := logographicFonts[lang]; logographic {
		return s
	}
	return genderSubstitutions.Replace(s)
}

// Logographic reports whether the language uses an embedded outline
// collection rather than the built-in Latin family.
func (r *FontRegistry) Logographic(lang string) bool {
	_, ok := logographicFonts[lang]
	return ok
}
