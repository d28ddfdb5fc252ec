package binderpdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// typeColors maps category tags to their header tint. Unknown tags fall back
// to a neutral gray so a new upstream type never aborts a render.
var typeColors = map[string]RGB{
	"normal":   {R: 0xA8, G: 0xA7, B: 0x7A},
	"fire":     {R: 0xEE, G: 0x81, B: 0x30},
	"water":    {R: 0x63, G: 0x90, B: 0xF0},
	"electric": {R: 0xF7, G: 0xD0, B: 0x2C},
	"grass":    {R: 0x7A, G: 0xC7, B: 0x4C},
	"ice":      {R: 0x96, G: 0xD9, B: 0xD6},
	"fighting": {R: 0xC2, G: 0x2E, B: 0x28},
	"poison":   {R: 0xA3, G: 0x3E, B: 0xA1},
	"ground":   {R: 0xE2, G: 0xBF, B: 0x65},
	"flying":   {R: 0xA9, G: 0x8F, B: 0xF3},
	"psychic":  {R: 0xF9, G: 0x55, B: 0x87},
	"bug":      {R: 0xA6, G: 0xB9, B: 0x1A},
	"rock":     {R: 0xB6, G: 0xA1, B: 0x36},
	"ghost":    {R: 0x73, G: 0x57, B: 0x97},
	"dragon":   {R: 0x6F, G: 0x35, B: 0xFC},
	"dark":     {R: 0x70, G: 0x57, B: 0x46},
	"steel":    {R: 0xB7, G: 0xB7, B: 0xCE},
	"fairy":    {R: 0xD6, G: 0x85, B: 0xAD},
}

var neutralType = RGB{R: 0x9A, G: 0x9A, B: 0x9A}

// headerTintAlpha is the fill opacity of the cell header band.
const headerTintAlpha = 0.2

// footerShade is the darkening factor applied to the header color for the
// footer index.
const footerShade = 0.6

// cellRenderer draws one fixed-size card cell: tinted header band with name
// and type label, centered artwork, and a footer index.
type cellRenderer struct {
	pdf   *gofpdf.Fpdf
	comp  *compositor
	cache *AssetCache
	tr    Translator
}

// Render draws rec into the cell whose top-left corner is (x, y).
// A record without at least one type tag is a data-integrity bug upstream
// and a hard error here: the header tint depends on the primary type.
func (r *cellRenderer) Render(rec *CardRecord, sec *Section, lang string, x, y float64) error {
	if len(rec.Types) == 0 {
		return fmt.Errorf("%w: card %s", ErrCardWithoutType, rec.IndexText())
	}
	headerColor, ok := typeColors[rec.Types[0]]
	if !ok {
		headerColor = neutralType
	}

	// Header band at low opacity.
	r.pdf.SetAlpha(headerTintAlpha, "Normal")
	r.pdf.SetFillColor(int(headerColor.R), int(headerColor.G), int(headerColor.B))
	r.pdf.Rect(x, y, CellWidth, headerHeight, "F")
	r.pdf.SetAlpha(1.0, "Normal")

	// Type label, right-aligned in the header.
	if err := r.drawTypeLabel(rec, lang, x, y); err != nil {
		return err
	}

	// Localized name, centered in the header band.
	name := displayName(rec, sec, lang)
	r.pdf.SetTextColor(30, 30, 30)
	if err := r.comp.DrawCentered(name, lang, x+CellWidth/2, y+headerHeight/2+2.4, true, scaleCellName); err != nil {
		return fmt.Errorf("card %s: %w", rec.IndexText(), err)
	}

	// Footer index in a darkened shade of the header color.
	shade := headerColor.Darken(footerShade)
	r.pdf.SetTextColor(int(shade.R), int(shade.G), int(shade.B))
	if err := r.comp.setFont(lang, true, 7); err != nil {
		return fmt.Errorf("card %s: %w", rec.IndexText(), err)
	}
	index := rec.IndexText()
	r.pdf.Text(x+CellWidth/2-r.pdf.GetStringWidth(index)/2, y+CellHeight-3, index)
	r.pdf.SetTextColor(0, 0, 0)

	// Artwork, centered in the body; omitted entirely on a cache miss.
	r.drawArtwork(rec, x, y)
	return nil
}

// drawTypeLabel draws the translated type tags (joined with "/") against the
// right edge of the header band.
func (r *cellRenderer) drawTypeLabel(rec *CardRecord, lang string, x, y float64) error {
	labels := make([]string, 0, len(rec.Types))
	for _, t := range rec.Types {
		labels = append(labels, r.tr.Translate("type."+t, lang))
	}
	label := strings.Join(labels, "/")

	if err := r.comp.setFont(lang, false, 5.5); err != nil {
		return fmt.Errorf("card %s: %w", rec.IndexText(), err)
	}
	enc := r.comp.encode(label, lang)
	r.pdf.SetTextColor(90, 90, 90)
	r.pdf.Text(x+CellWidth-1.5-r.pdf.GetStringWidth(enc), y+3.2, enc)
	r.pdf.SetTextColor(0, 0, 0)
	return nil
}

// drawArtwork places the cached, normalized artwork centered in the cell
// body, scaled to fit with its aspect ratio preserved.
func (r *cellRenderer) drawArtwork(rec *CardRecord, x, y float64) {
	data, ok := r.cache.Get(rec.ID, rec.ArtworkURL, SizeCell)
	if !ok {
		return
	}

	name := fmt.Sprintf("art_%d_%s_cell", rec.ID, variantIdentifier(rec.ArtworkURL))
	r.pdf.RegisterImageOptionsReader(name,
		gofpdf.ImageOptions{ImageType: "JPG", ReadDpi: false},
		bytes.NewReader(data))

	bodyX := x + 3.5
	bodyY := y + headerHeight + 3.0
	bodyW := CellWidth - 7.0
	bodyH := CellHeight - headerHeight - 10.0

	// Cached artwork is a square canvas, so the fitted edge is min(w, h).
	side := bodyW
	if bodyH < side {
		side = bodyH
	}
	r.pdf.ImageOptions(name,
		bodyX+(bodyW-side)/2, bodyY+(bodyH-side)/2, side, side, false,
		gofpdf.ImageOptions{ImageType: "JPG", ReadDpi: false}, 0, "")
}
