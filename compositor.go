package binderpdf

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// composeScale fixes the nominal logo/image geometry for one rendering
// context. Token sizes are independent of the font size in use.
type composeScale struct {
	fontSize    float64 // text point size
	tokenHeight float64 // mm; logos and inline images scale to this height
	gap         float64 // mm appended after each logo or image
	lift        float64 // mm from baseline up to the token's vertical center
}

var (
	scaleCellName      = composeScale{fontSize: 7, tokenHeight: 3.0, gap: 0.8, lift: 1.0}
	scaleCoverTitle    = composeScale{fontSize: 16, tokenHeight: 6.0, gap: 1.5, lift: 2.2}
	scaleCoverSubtitle = composeScale{fontSize: 10, tokenHeight: 4.0, gap: 1.0, lift: 1.4}
	scalePageFooter    = composeScale{fontSize: 7, tokenHeight: 3.0, gap: 0.8, lift: 1.0}
)

// logoAsset caches the probe result for one resolved logo file.
type logoAsset struct {
	path   string
	aspect float64 // width / height
	ok     bool
}

// compositor draws localized strings that may embed inline logos or remote
// images, centered around a target point on the current PDF page.
type compositor struct {
	pdf     *gofpdf.Fpdf
	fonts   *FontRegistry
	cache   *AssetCache
	logoDir string
	latin   func(string) string // cp1252 mapping for the built-in family
	logos   map[string]logoAsset
}

func newCompositor(pdf *gofpdf.Fpdf, fonts *FontRegistry, cache *AssetCache, logoDir string) *compositor {
	return &compositor{
		pdf:     pdf,
		fonts:   fonts,
		cache:   cache,
		logoDir: logoDir,
		latin:   pdf.UnicodeTranslatorFromDescriptor(""),
		logos:   make(map[string]logoAsset),
	}
}

// setFont selects the family for lang on the PDF. Unavailable fonts are a
// hard error at draw time.
func (c *compositor) setFont(lang string, bold bool, size float64) error {
	family, err := c.fonts.Family(lang)
	if err != nil {
		return err
	}
	style := ""
	if bold {
		style = "B"
	}
	c.pdf.SetFont(family, style, size)
	return nil
}

// encode maps a UTF-8 run to what the selected font expects. The built-in
// Latin family is cp1252; registered collections take UTF-8 directly.
func (c *compositor) encode(s, lang string) string {
	if c.fonts.Logographic(lang) {
		return s
	}
	return c.latin(s)
}

// DrawCentered renders s centered horizontally on centerX with its text
// baseline at baseY. Strings without recognized tokens take a single
// centered draw; token strings are measured and laid out left to right.
func (c *compositor) DrawCentered(s, lang string, centerX, baseY float64, bold bool, scale composeScale) error {
	s = c.fonts.Sanitize(s, lang)
	if err := c.setFont(lang, bold, scale.fontSize); err != nil {
		return err
	}

	if !hasInlineTokens(s) {
		enc := c.encode(s, lang)
		c.pdf.Text(centerX-c.pdf.GetStringWidth(enc)/2, baseY, enc)
		return nil
	}

	segs := parseSegments(s)
	total := c.measure(segs, lang, scale)
	x := centerX - total/2

	for _, seg := range segs {
		switch seg.kind {
		case segText:
			enc := c.encode(seg.text, lang)
			c.pdf.Text(x, baseY, enc)
			x += c.pdf.GetStringWidth(enc)

		case segLogo:
			asset := c.resolveLogo(seg.logo, lang)
			if !asset.ok {
				continue // degrade: text only, gap omitted
			}
			w := asset.aspect * scale.tokenHeight
			y := baseY - scale.lift - scale.tokenHeight/2
			c.pdf.ImageOptions(asset.path, x, y, w, scale.tokenHeight, false,
				gofpdf.ImageOptions{ReadDpi: false}, 0, "")
			x += w + scale.gap

		case segImage:
			name, ok := c.registerInline(seg.url)
			if !ok {
				continue
			}
			// Inline images are normalized to square canvases.
			w := scale.tokenHeight
			y := baseY - scale.lift - scale.tokenHeight/2
			c.pdf.ImageOptions(name, x, y, w, scale.tokenHeight, false,
				gofpdf.ImageOptions{ImageType: "JPG", ReadDpi: false}, 0, "")
			x += w + scale.gap
		}
	}
	return nil
}

// MeasureCentered returns the total width DrawCentered would occupy.
func (c *compositor) MeasureCentered(s, lang string, bold bool, scale composeScale) (float64, error) {
	s = c.fonts.Sanitize(s, lang)
	if err := c.setFont(lang, bold, scale.fontSize); err != nil {
		return 0, err
	}
	if !hasInlineTokens(s) {
		return c.pdf.GetStringWidth(c.encode(s, lang)), nil
	}
	return c.measure(parseSegments(s), lang, scale), nil
}

// measure sums segment widths exactly as DrawCentered advances them.
func (c *compositor) measure(segs []segment, lang string, scale composeScale) float64 {
	var total float64
	for _, seg := range segs {
		switch seg.kind {
		case segText:
			total += c.pdf.GetStringWidth(c.encode(seg.text, lang))
		case segLogo:
			if asset := c.resolveLogo(seg.logo, lang); asset.ok {
				total += asset.aspect*scale.tokenHeight + scale.gap
			}
		case segImage:
			if _, ok := c.registerInline(seg.url); ok {
				total += scale.tokenHeight + scale.gap
			}
		}
	}
	return total
}

// resolveLogo finds the asset file for a named logo with a language-aware
// fallback: localized variant first, then the default variant. A missing or
// unreadable file is never an error; the segment is simply dropped.
func (c *compositor) resolveLogo(name, lang string) logoAsset {
	key := name + "_" + lang
	if asset, ok := c.logos[key]; ok {
		return asset
	}

	asset := logoAsset{}
	for _, candidate := range []string{
		filepath.Join(c.logoDir, fmt.Sprintf("%s_%s.png", name, lang)),
		filepath.Join(c.logoDir, name+".png"),
	} {
		if aspect, err := probeImageAspect(candidate); err == nil {
			asset = logoAsset{path: candidate, aspect: aspect, ok: true}
			break
		}
	}
	c.logos[key] = asset
	return asset
}

// registerInline resolves an [image] span through the asset cache and
// registers the bytes with the PDF under a stable name. Returns false on a
// cache miss.
func (c *compositor) registerInline(url string) (string, bool) {
	data, ok := c.cache.Get(0, url, SizeCell)
	if !ok {
		return "", false
	}
	name := "inline_" + variantIdentifier(url)
	c.pdf.RegisterImageOptionsReader(name,
		gofpdf.ImageOptions{ImageType: "JPG", ReadDpi: false},
		bytes.NewReader(data))
	return name, true
}

// probeImageAspect reads just the image header and returns width/height.
func probeImageAspect(path string) (float64, error) {
	f, err := os.Open(path) // #nosec G304 -- logo asset path from configuration
	if err != nil {
		return 0, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, err
	}
	if cfg.Height == 0 {
		return 0, fmt.Errorf("logo %s: zero height", path)
	}
	return float64(cfg.Width) / float64(cfg.Height), nil
}
