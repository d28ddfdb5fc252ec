package binderpdf

import (
	"fmt"
	"strconv"
	"strings"
)

// Grid geometry in millimetres on an A4 portrait page.
const (
	PageWidth  = 210.0
	PageHeight = 297.0

	CellWidth  = 63.0 // standard sleeve size
	CellHeight = 88.0

	GridColumns = 3
	GridRows    = 3

	// PageCapacity is the number of card cells per grid page.
	PageCapacity = GridColumns * GridRows

	cellGapX = 2.0
	cellGapY = 2.0

	gridMarginX = (PageWidth - (GridColumns*CellWidth + (GridColumns-1)*cellGapX)) / 2
	gridMarginY = (PageHeight - (GridRows*CellHeight + (GridRows-1)*cellGapY)) / 2

	headerHeight = 12.0 // tinted band at the top of each cell
)

// SizeClass selects one of the two canonical artwork resolutions.
type SizeClass int

const (
	// SizeCell is the resolution used for card-cell artwork.
	SizeCell SizeClass = iota
	// SizeFeatured is the larger resolution used for cover thumbnails.
	SizeFeatured
)

// Pixels returns the canonical square edge length for the size class.
func (s SizeClass) Pixels() int {
	if s == SizeFeatured {
		return 512
	}
	return 256
}

// String returns the size-class name used in cache file names.
func (s SizeClass) String() string {
	if s == SizeFeatured {
		return "featured"
	}
	return "cell"
}

// CardKind identifies which of the upstream card shapes a record came from.
// The shape is resolved once when the document is loaded, never per draw.
type CardKind int

const (
	// LegacyWrapped records nest the card fields under a sub-object.
	LegacyWrapped CardKind = iota
	// FlatSetCard records carry their fields at the top level.
	FlatSetCard
	// CatalogEntry records are a bare identifier plus an artwork URL.
	CatalogEntry
)

// RGB is an 8-bit color channel triple.
type RGB struct {
	R, G, B uint8
}

// ParseHexColor parses "#RRGGBB" (leading '#' optional).
func ParseHexColor(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Darken scales each channel toward black. Darken(0.6) keeps 60% intensity.
func (c RGB) Darken(factor float64) RGB {
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	return RGB{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}

// Document is an immutable, ordered set of sections to render in one language.
type Document struct {
	Name     string
	Language string
	Sections []Section
}

// Validate checks structural invariants before generation starts.
func (d *Document) Validate() error {
	if d.Language == "" {
		return ErrNoLanguage
	}
	if len(d.Sections) == 0 {
		return ErrEmptyDocument
	}
	for i := range d.Sections {
		if len(d.Sections[i].Featured) > maxFeatured {
			return fmt.Errorf("%w: section %q has %d", ErrTooManyFeatured,
				d.Sections[i].ID, len(d.Sections[i].Featured))
		}
	}
	return nil
}

const maxFeatured = 3

// Section is a titled group of cards sharing a cover page and a color.
type Section struct {
	ID       string
	Title    map[string]string
	Subtitle map[string]string
	Color    RGB

	Cards    []CardRecord
	Featured []FeaturedArtwork

	// Prefix and Suffix apply to every card name in the section unless the
	// record carries its own override.
	Prefix string
	Suffix string

	// SeparatorTitle replaces the normal title when one logical collection is
	// split across several sub-sections ("Kanto (1/2)" and so on).
	SeparatorTitle string

	// CardCount overrides the count shown on the cover; zero means
	// len(Cards). Used by split sections that share one logical total.
	CardCount int
}

// TitleFor returns the localized title, falling back to English.
func (s *Section) TitleFor(lang string) string {
	return localized(s.Title, lang)
}

// SubtitleFor returns the localized subtitle, falling back to English.
func (s *Section) SubtitleFor(lang string) string {
	return localized(s.Subtitle, lang)
}

// DisplayTitle returns the cover title: the separator title when the section
// is a split part, otherwise the localized title.
func (s *Section) DisplayTitle(lang string) string {
	if s.SeparatorTitle != "" {
		return s.SeparatorTitle
	}
	return s.TitleFor(lang)
}

// CoverCount returns the card count shown on the section cover.
func (s *Section) CoverCount() int {
	if s.CardCount > 0 {
		return s.CardCount
	}
	return len(s.Cards)
}

// FeaturedArtwork references one of up to three cover thumbnails.
type FeaturedArtwork struct {
	URL     string
	Caption map[string]string
}

// CardRecord is one card to render into one grid cell.
type CardRecord struct {
	Kind CardKind

	// ID is the numeric identifier; it keys the artwork cache directory and
	// is drawn as the cell footer index.
	ID int

	// DisplayID overrides the footer index text for composite identifiers
	// such as set numbers ("104/165"). Empty means "#%03d" of ID.
	DisplayID string

	Names map[string]string
	Types []string

	ArtworkURL string

	// Prefix and Suffix override the section-level affixes when non-nil.
	// A non-nil empty string suppresses the section affix entirely.
	Prefix *string
	Suffix *string

	// FormMarker distinguishes paired forms: "X" and "Y" are inserted between
	// the base name and the suffix; "star" appends a star symbol to the
	// suffix.
	FormMarker string
}

// NameFor returns the localized base name, falling back to English and then
// to the footer index text.
func (c *CardRecord) NameFor(lang string) string {
	if n := localized(c.Names, lang); n != "" {
		return n
	}
	return c.IndexText()
}

// IndexText returns the footer index string for the cell.
func (c *CardRecord) IndexText() string {
	if c.DisplayID != "" {
		return c.DisplayID
	}
	return fmt.Sprintf("#%03d", c.ID)
}

// localized picks m[lang], then m["en"], then the empty string.
func localized(m map[string]string, lang string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[lang]; ok && v != "" {
		return v
	}
	return m["en"]
}

// Translator is the read-only string-table collaborator used for type labels,
// cover captions, and count strings. Implementations must return a usable
// string for any key; the conventional fallback is the key itself.
type Translator interface {
	Translate(key, lang string) string
}

// keyTranslator is the default Translator: it echoes the key, which keeps
// output legible when no string table is configured.
type keyTranslator struct{}

func (keyTranslator) Translate(key, _ string) string { return key }
