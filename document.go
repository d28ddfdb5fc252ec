package binderpdf

import (
	"fmt"
	"os"

	"github.com/DerFlash/go-binderpdf/internal/yamlutil"
)

// documentFile mirrors the YAML produced by the data-acquisition pipeline.
// The pipeline itself is out of scope; this loader only gives its output an
// explicit in-memory shape.
type documentFile struct {
	Name     string        `yaml:"name"`
	Sections []sectionFile `yaml:"sections"`
}

type sectionFile struct {
	ID             string            `yaml:"id"`
	Title          map[string]string `yaml:"title"`
	Subtitle       map[string]string `yaml:"subtitle"`
	Color          string            `yaml:"color"`
	Prefix         string            `yaml:"prefix"`
	Suffix         string            `yaml:"suffix"`
	SeparatorTitle string            `yaml:"separator_title"`
	CardCount      int               `yaml:"card_count"`
	Cards          []cardFile        `yaml:"cards"`
	Featured       []featuredFile    `yaml:"featured_elements"`
}

type featuredFile struct {
	URL     string            `yaml:"url"`
	Caption map[string]string `yaml:"caption"`
}

// cardFile accepts all three card shapes the pipeline has produced over time.
// Which shape applies is decided once in resolveCard, not per draw.
// The decoder cannot inline into an unexported embedded struct, so the flat
// shape repeats the field list.
type cardFile struct {
	// LegacyWrapped: everything nested under "card".
	Card *cardFields `yaml:"card"`

	// FlatSetCard: fields at the top level.
	ID         int               `yaml:"id"`
	Number     string            `yaml:"number"`
	Name       map[string]string `yaml:"name"`
	Types      []string          `yaml:"types"`
	ImageURL   string            `yaml:"image_url"`
	Prefix     *string           `yaml:"prefix"`
	Suffix     *string           `yaml:"suffix"`
	FormMarker string            `yaml:"form"`

	// CatalogEntry: bare id + url.
	URL string `yaml:"url"`
}

// flatFields collects the top-level card fields into the shared shape.
func (cf cardFile) flatFields() cardFields {
	return cardFields{
		ID:         cf.ID,
		Number:     cf.Number,
		Name:       cf.Name,
		Types:      cf.Types,
		ImageURL:   cf.ImageURL,
		Prefix:     cf.Prefix,
		Suffix:     cf.Suffix,
		FormMarker: cf.FormMarker,
	}
}

type cardFields struct {
	ID         int               `yaml:"id"`
	Number     string            `yaml:"number"`
	Name       map[string]string `yaml:"name"`
	Types      []string          `yaml:"types"`
	ImageURL   string            `yaml:"image_url"`
	Prefix     *string           `yaml:"prefix"`
	Suffix     *string           `yaml:"suffix"`
	FormMarker string            `yaml:"form"`
}

// LoadDocument reads and validates a document file for one target language.
func LoadDocument(path, lang string) (*Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- document path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, path)
		}
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return ParseDocument(data, lang)
}

// ParseDocument parses document YAML for one target language.
// Unknown fields are rejected so pipeline drift surfaces here, not as
// half-rendered pages.
func ParseDocument(data []byte, lang string) (*Document, error) {
	var df documentFile
	if err := yamlutil.UnmarshalStrict(data, &df); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentParse, err)
	}

	doc := &Document{
		Name:     df.Name,
		Language: lang,
		Sections: make([]Section, 0, len(df.Sections)),
	}

	for _, sf := range df.Sections {
		sec, err := resolveSection(sf)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", sf.ID, err)
		}
		doc.Sections = append(doc.Sections, sec)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func resolveSection(sf sectionFile) (Section, error) {
	color, err := ParseHexColor(sf.Color)
	if err != nil {
		return Section{}, err
	}

	sec := Section{
		ID:             sf.ID,
		Title:          sf.Title,
		Subtitle:       sf.Subtitle,
		Color:          color,
		Prefix:         sf.Prefix,
		Suffix:         sf.Suffix,
		SeparatorTitle: sf.SeparatorTitle,
		CardCount:      sf.CardCount,
	}

	for i, cf := range sf.Cards {
		rec, err := resolveCard(cf)
		if err != nil {
			return Section{}, fmt.Errorf("card %d: %w", i, err)
		}
		sec.Cards = append(sec.Cards, rec)
	}

	for _, ff := range sf.Featured {
		sec.Featured = append(sec.Featured, FeaturedArtwork{
			URL:     ff.URL,
			Caption: ff.Caption,
		})
	}

	return sec, nil
}

// resolveCard maps one raw card entry to a CardRecord with an explicit kind.
// Precedence: nested "card" object, then flat fields, then bare URL entry.
func resolveCard(cf cardFile) (CardRecord, error) {
	switch {
	case cf.Card != nil:
		rec := recordFromFields(*cf.Card)
		rec.Kind = LegacyWrapped
		return rec, nil

	case cf.ImageURL != "" || len(cf.Name) > 0:
		rec := recordFromFields(cf.flatFields())
		rec.Kind = FlatSetCard
		return rec, nil

	case cf.URL != "":
		return CardRecord{
			Kind:       CatalogEntry,
			ID:         cf.ID,
			DisplayID:  cf.Number,
			ArtworkURL: cf.URL,
		}, nil

	default:
		return CardRecord{}, fmt.Errorf("%w (id %d)", ErrUnknownCardShape, cf.ID)
	}
}

func recordFromFields(f cardFields) CardRecord {
	return CardRecord{
		ID:         f.ID,
		DisplayID:  f.Number,
		Names:      f.Name,
		Types:      f.Types,
		ArtworkURL: f.ImageURL,
		Prefix:     f.Prefix,
		Suffix:     f.Suffix,
		FormMarker: f.FormMarker,
	}
}

// resolveAffixes returns the effective name prefix and suffix for a record.
// Precedence: record-level override, then section-level affix, then none.
// A record override set to the empty string suppresses the section affix.
func resolveAffixes(rec *CardRecord, sec *Section) (prefix, suffix string) {
	prefix = sec.Prefix
	if rec.Prefix != nil {
		prefix = *rec.Prefix
	}
	suffix = sec.Suffix
	if rec.Suffix != nil {
		suffix = *rec.Suffix
	}
	return prefix, suffix
}

// displayName assembles the full rendered name for a record: prefix, base
// name, paired-form marker, then suffix. The "star" marker decorates the
// suffix with a star symbol.
func displayName(rec *CardRecord, sec *Section, lang string) string {
	prefix, suffix := resolveAffixes(rec, sec)
	name := rec.NameFor(lang)

	switch rec.FormMarker {
	case "X", "Y":
		name += " " + rec.FormMarker
	case "star":
		suffix += "★"
	}

	if prefix != "" {
		name = prefix + " " + name
	}
	if suffix != "" {
		name += " " + suffix
	}
	return name
}
