package binderpdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/DerFlash/go-binderpdf/internal/dateutil"
)

// projectName appears literally in the cover footer.
const projectName = "BinderPDF"

// Cover geometry (mm).
const (
	coverStripeHeight   = 58.0
	coverTitleY         = 34.0 // title baseline when a subtitle follows
	coverSubtitleY      = 46.0 // fixed offset below the title
	coverSingleTitleY   = 40.0 // title baseline without a subtitle
	coverRuleY          = 64.0
	coverCountY         = 74.0
	coverThumbY         = 100.0
	coverThumbSide      = 48.0
	coverThumbGap       = 12.0
	coverFooterY        = 282.0
	coverOverlayAlpha   = 0.18
	coverStripeTextLift = 0.35
)

// coverRenderer draws one full-bleed section title page.
type coverRenderer struct {
	pdf   *gofpdf.Fpdf
	comp  *compositor
	cache *AssetCache
	tr    Translator
	now   func() time.Time
}

// Render draws the cover for sec on the current page. The title display mode
// follows the section metadata: a SeparatorTitle overrides the normal title
// (documents that split one collection into sub-sections use this), and the
// subtitle, when present, sits at a fixed offset below the title.
func (r *coverRenderer) Render(sec *Section, lang string) error {
	r.drawStripe(sec.Color)

	title := sec.DisplayTitle(lang)
	subtitle := sec.SubtitleFor(lang)

	r.pdf.SetTextColor(255, 255, 255)
	if subtitle != "" {
		if err := r.comp.DrawCentered(title, lang, PageWidth/2, coverTitleY, true, scaleCoverTitle); err != nil {
			return fmt.Errorf("cover title: %w", err)
		}
		if err := r.comp.DrawCentered(subtitle, lang, PageWidth/2, coverSubtitleY, false, scaleCoverSubtitle); err != nil {
			return fmt.Errorf("cover subtitle: %w", err)
		}
	} else {
		if err := r.comp.DrawCentered(title, lang, PageWidth/2, coverSingleTitleY, true, scaleCoverTitle); err != nil {
			return fmt.Errorf("cover title: %w", err)
		}
	}
	r.pdf.SetTextColor(0, 0, 0)

	r.drawRule(sec.Color)

	if err := r.drawCount(sec.CoverCount(), lang); err != nil {
		return err
	}
	if err := r.drawFeatured(sec, lang); err != nil {
		return err
	}
	return r.drawFooter(lang)
}

// drawStripe paints the colored header band with a semi-transparent white
// overlay across its lower part for depth.
func (r *coverRenderer) drawStripe(c RGB) {
	r.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	r.pdf.Rect(0, 0, PageWidth, coverStripeHeight, "F")

	r.pdf.SetAlpha(coverOverlayAlpha, "Normal")
	r.pdf.SetFillColor(255, 255, 255)
	r.pdf.Rect(0, coverStripeHeight*(1-coverStripeTextLift), PageWidth, coverStripeHeight*coverStripeTextLift, "F")
	r.pdf.SetAlpha(1.0, "Normal")
}

func (r *coverRenderer) drawRule(c RGB) {
	shade := c.Darken(0.7)
	r.pdf.SetDrawColor(int(shade.R), int(shade.G), int(shade.B))
	r.pdf.SetLineWidth(0.6)
	r.pdf.Line(25, coverRuleY, PageWidth-25, coverRuleY)
	r.pdf.SetDrawColor(0, 0, 0)
	r.pdf.SetLineWidth(0.2)
}

// drawCount renders the localized card-count line.
func (r *coverRenderer) drawCount(count int, lang string) error {
	format := r.tr.Translate("cover.count", lang)
	var text string
	if strings.Contains(format, "%d") {
		text = fmt.Sprintf(format, count)
	} else {
		text = fmt.Sprintf("%s: %d", format, count)
	}

	if err := r.comp.setFont(lang, false, 11); err != nil {
		return fmt.Errorf("cover count: %w", err)
	}
	enc := r.comp.encode(text, lang)
	r.pdf.SetTextColor(70, 70, 70)
	r.pdf.Text(PageWidth/2-r.pdf.GetStringWidth(enc)/2, coverCountY, enc)
	r.pdf.SetTextColor(0, 0, 0)
	return nil
}

// drawFeatured places up to three artwork thumbnails evenly spaced and
// centered, each with its localized caption. Cache misses leave gaps.
func (r *coverRenderer) drawFeatured(sec *Section, lang string) error {
	n := len(sec.Featured)
	if n == 0 {
		return nil
	}
	total := float64(n)*coverThumbSide + float64(n-1)*coverThumbGap
	x := (PageWidth - total) / 2

	for i, feat := range sec.Featured {
		data, ok := r.cache.Get(0, feat.URL, SizeFeatured)
		if ok {
			name := fmt.Sprintf("featured_%s_%d", sec.ID, i)
			r.pdf.RegisterImageOptionsReader(name,
				gofpdf.ImageOptions{ImageType: "JPG", ReadDpi: false},
				bytes.NewReader(data))
			r.pdf.ImageOptions(name, x, coverThumbY, coverThumbSide, coverThumbSide, false,
				gofpdf.ImageOptions{ImageType: "JPG", ReadDpi: false}, 0, "")
		}

		if caption := localized(feat.Caption, lang); caption != "" {
			if err := r.comp.DrawCentered(caption, lang, x+coverThumbSide/2,
				coverThumbY+coverThumbSide+6, false, scaleCoverSubtitle); err != nil {
				return fmt.Errorf("featured caption: %w", err)
			}
		}
		x += coverThumbSide + coverThumbGap
	}
	return nil
}

// drawFooter writes the localized caption plus the project name and the
// current date.
func (r *coverRenderer) drawFooter(lang string) error {
	goFmt, err := dateutil.ParseDateFormat(dateutil.DefaultDateFormat)
	if err != nil {
		return err
	}
	text := fmt.Sprintf("%s · %s · %s",
		r.tr.Translate("cover.caption", lang), projectName, r.now().Format(goFmt))

	if err := r.comp.setFont(lang, false, 8); err != nil {
		return fmt.Errorf("cover footer: %w", err)
	}
	enc := r.comp.encode(text, lang)
	r.pdf.SetTextColor(130, 130, 130)
	r.pdf.Text(PageWidth/2-r.pdf.GetStringWidth(enc)/2, coverFooterY, enc)
	r.pdf.SetTextColor(0, 0, 0)
	return nil
}
