// Package binderpdf renders printable trading-card binder pages as PDF.
//
// # Quick Start
//
// Create a service, load a document, and generate:
//
//	svc := binderpdf.New(
//	    binderpdf.WithCacheDir("/var/cache/binderpdf"),
//	    binderpdf.WithTranslator(table),
//	)
//
//	doc, err := binderpdf.LoadDocument("national.yaml", "en")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := svc.Generate(ctx, doc, "binder_national_en.pdf"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Page Composition
//
// Each section of a document produces one cover page followed by grid pages
// holding up to nine fixed-size card cells (3x3 on A4). Every grid page gets
// dashed cutting guides along the gaps between cells so the printed sheet can
// be cut into standard 63x88mm sleeves.
//
// The generation process follows these stages per section:
//
//  1. Cover page (title, subtitle, card count, featured artwork, footer)
//  2. Card cells in document order, nine per page
//  3. Page footer and cutting-guide overlay on every grid page
//
// # Localized Names and Inline Logos
//
// Card and section names are localized strings that may embed inline logo
// tokens such as [EX_NEW] or [GX], or an [image]...[/image] span referencing
// remote artwork. The compositor measures the full run of text, logos, and
// images and draws it centered; strings without tokens take a plain fast path.
//
// # Artwork Cache
//
// Card artwork is fetched once, normalized to an opaque JPEG at one of two
// canonical resolutions, and cached on disk under one directory per card id.
// A bounded in-memory LRU tier sits in front of the disk tier; evicted
// entries are re-read from disk, never re-fetched. Missing or undecodable
// artwork is not an error: the cell is rendered without an image.
//
// # Fonts
//
// Latin-script languages use the built-in Helvetica family. Japanese, Chinese,
// and Korean require system font files (Noto families are searched by
// default); if a required font file is absent, registration logs a warning
// and any later attempt to draw in that language fails hard rather than
// silently falling back to a font that cannot render the glyphs.
package binderpdf
