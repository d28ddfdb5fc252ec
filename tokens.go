package binderpdf

import "strings"

// segmentKind tags one parsed unit of a localized string.
type segmentKind int

const (
	segText segmentKind = iota
	segLogo
	segImage
)

// segment is a parsed unit: literal text, a named inline logo, or a remote
// inline image. Segments exist only between parsing and drawing.
type segment struct {
	kind segmentKind
	text string // segText
	logo string // segLogo: asset base name
	url  string // segImage
}

// logoTokens maps bracketed token literals to logo asset base names.
// Matching is longest-first; the literals are what the localized string
// tables embed in names.
var logoTokens = []struct {
	literal string
	asset   string
}{
	{"[EX_OLD]", "ex_old"},
	{"[EX_NEW]", "ex_new"},
	{"[VSTAR]", "vstar"},
	{"[BREAK]", "break"},
	{"[VMAX]", "vmax"},
	{"[GX]", "gx"},
	{"[V]", "v"},
}

const (
	imageOpen  = "[image]"
	imageClose = "[/image]"
)

// hasInlineTokens reports whether s contains any recognized token. Plain
// strings skip parsing entirely and are drawn with a single centered call.
func hasInlineTokens(s string) bool {
	if strings.Contains(s, imageOpen) {
		return true
	}
	for _, t := range logoTokens {
		if strings.Contains(s, t.literal) {
			return true
		}
	}
	return false
}

// parseSegments scans s left to right and splits it into text runs, logo
// tokens, and image spans. Unrecognized bracketed text stays literal (the
// gender substitutions "[M]"/"[F]" rely on this). Malformed markup — an
// [image] span with no matching close — degrades the whole string to a
// single text segment rather than failing.
func parseSegments(s string) []segment {
	var segs []segment
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			segs = append(segs, segment{kind: segText, text: text.String()})
			text.Reset()
		}
	}

	i := 0
scan:
	for i < len(s) {
		if s[i] != '[' {
			j := strings.IndexByte(s[i:], '[')
			if j < 0 {
				text.WriteString(s[i:])
				i = len(s)
				break
			}
			text.WriteString(s[i : i+j])
			i += j
			continue
		}

		rest := s[i:]
		for _, t := range logoTokens {
			if strings.HasPrefix(rest, t.literal) {
				flush()
				segs = append(segs, segment{kind: segLogo, logo: t.asset})
				i += len(t.literal)
				continue scan
			}
		}

		if strings.HasPrefix(rest, imageOpen) {
			end := strings.Index(rest[len(imageOpen):], imageClose)
			if end < 0 {
				// Unbalanced span: treat the whole string as plain text.
				return []segment{{kind: segText, text: s}}
			}
			flush()
			url := rest[len(imageOpen) : len(imageOpen)+end]
			segs = append(segs, segment{kind: segImage, url: url})
			i += len(imageOpen) + end + len(imageClose)
			continue
		}

		// Not a token: keep the bracket as literal text.
		text.WriteByte('[')
		i++
	}

	flush()
	if segs == nil {
		segs = []segment{{kind: segText, text: ""}}
	}
	return segs
}
