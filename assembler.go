package binderpdf

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/DerFlash/go-binderpdf/internal/fileutil"
)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	cacheDir   string
	cacheBound int
	logoDir    string
	fontDirs   []string
	client     *http.Client
	progress   io.Writer
	now        func() time.Time
	translator Translator
}

// Option configures a Service.
type Option func(*serviceConfig)

// WithCacheDir sets the root directory of the on-disk artwork cache.
func WithCacheDir(dir string) Option {
	return func(c *serviceConfig) { c.cacheDir = dir }
}

// WithCacheBound sets the in-memory cache entry limit.
// Panics if n < 0 (programmer error, similar to time.NewTicker).
func WithCacheBound(n int) Option {
	if n < 0 {
		panic("binderpdf: WithCacheBound must not be negative")
	}
	return func(c *serviceConfig) { c.cacheBound = n }
}

// WithLogoDir sets the directory holding named inline logo assets.
func WithLogoDir(dir string) Option {
	return func(c *serviceConfig) { c.logoDir = dir }
}

// WithFontDirs adds directories searched for logographic font files before
// the built-in system paths.
func WithFontDirs(dirs ...string) Option {
	return func(c *serviceConfig) { c.fontDirs = append(c.fontDirs, dirs...) }
}

// WithHTTPClient overrides the artwork fetch client (e.g., by tests).
func WithHTTPClient(client *http.Client) Option {
	return func(c *serviceConfig) { c.client = client }
}

// WithTranslator sets the string-table collaborator used for type labels,
// cover captions, and count strings.
func WithTranslator(t Translator) Option {
	return func(c *serviceConfig) {
		if t != nil {
			c.translator = t
		}
	}
}

// WithProgress sets a writer that receives per-section progress lines and
// font warnings.
func WithProgress(w io.Writer) Option {
	return func(c *serviceConfig) {
		if w != nil {
			c.progress = w
		}
	}
}

// WithNow injects a fixed clock for testing the cover footer date.
func WithNow(now func() time.Time) Option {
	return func(c *serviceConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// Service assembles binder documents into PDF files. It processes sections,
// pages, and cards strictly in document order on the calling goroutine.
type Service struct {
	cfg   serviceConfig
	fonts *FontRegistry
	cache *AssetCache
}

// New creates a Service with default configuration.
func New(opts ...Option) *Service {
	cfg := serviceConfig{
		cacheDir:   "cache",
		cacheBound: DefaultCacheBound,
		logoDir:    filepath.Join("assets", "logos"),
		progress:   io.Discard,
		now:        time.Now,
		translator: keyTranslator{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Service{
		cfg:   cfg,
		fonts: NewFontRegistry(cfg.fontDirs...),
		cache: NewAssetCache(cfg.cacheDir, cfg.cacheBound, cfg.client),
	}
}

// Generate renders doc and writes the PDF to outPath. A malformed card
// aborts the whole run: silently skipping it would hide a data-integrity bug
// in the upstream pipeline.
func (s *Service) Generate(ctx context.Context, doc *Document, outPath string) error {
	pdf, err := s.generate(ctx, doc)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := fileutil.EnsureDir(dir); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	return pdf.OutputFileAndClose(outPath)
}

// generate runs the assembly state machine and returns the in-memory PDF.
func (s *Service) generate(ctx context.Context, doc *Document) (*gofpdf.Fpdf, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	lang := doc.Language

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	s.fonts.Register(pdf, s.cfg.progress)

	comp := newCompositor(pdf, s.fonts, s.cache, s.cfg.logoDir)
	layout := &pageLayout{pdf: pdf}
	cells := &cellRenderer{pdf: pdf, comp: comp, cache: s.cache, tr: s.cfg.translator}
	cover := &coverRenderer{pdf: pdf, comp: comp, cache: s.cache, tr: s.cfg.translator, now: s.cfg.now}

	caption := s.cfg.translator.Translate("page.caption", lang)

	for si := range doc.Sections {
		sec := &doc.Sections[si]
		fmt.Fprintf(s.cfg.progress, "section %s: %d cards\n", sec.ID, len(sec.Cards))

		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pdf.AddPage()
		if err := cover.Render(sec, lang); err != nil {
			return nil, fmt.Errorf("section %q (lang %s): %w", sec.ID, lang, err)
		}

		count := 0
		for ci := range sec.Cards {
			if count%PageCapacity == 0 {
				if PageBreakBefore(count) {
					if err := s.finishGridPage(layout, comp, caption, lang); err != nil {
						return nil, fmt.Errorf("section %q (lang %s): %w", sec.ID, lang, err)
					}
				}
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				pdf.AddPage()
			}
			x, y := layout.CellOrigin(count % PageCapacity)
			if err := cells.Render(&sec.Cards[ci], sec, lang, x, y); err != nil {
				return nil, fmt.Errorf("section %q (lang %s): %w", sec.ID, lang, err)
			}
			count++
		}
		if count > 0 {
			if err := s.finishGridPage(layout, comp, caption, lang); err != nil {
				return nil, fmt.Errorf("section %q (lang %s): %w", sec.ID, lang, err)
			}
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("assembling PDF: %w", pdf.Error())
	}
	return pdf, nil
}

// finishGridPage completes a grid page: footer first, then the cutting-guide
// overlay so the guides stay on top.
func (s *Service) finishGridPage(layout *pageLayout, comp *compositor, caption, lang string) error {
	if err := layout.DrawFooter(comp, caption, lang); err != nil {
		return err
	}
	layout.DrawGuides()
	return nil
}

// OutputName returns the deterministic file name for one (scope, language)
// pair.
func OutputName(scope, lang string) string {
	return fmt.Sprintf("binder_%s_%s.pdf", scope, lang)
}
