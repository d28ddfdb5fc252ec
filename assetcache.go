package binderpdf

import (
	"bytes"
	"container/list"
	"fmt"
	"image"
	"image/color"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/DerFlash/go-binderpdf/internal/fileutil"
)

// DefaultCacheBound is the default in-memory entry limit.
const DefaultCacheBound = 500

// jpegQuality is the fixed re-encode quality for cached artwork.
const jpegQuality = 85

// fetchTimeout bounds a single artwork download. There are no retries: a
// failed fetch is a cache miss and the cell renders without an image.
const fetchTimeout = 15 * time.Second

// cacheKey identifies one normalized artwork bitmap. Variant disambiguates
// multiple artwork URLs sharing one numeric id (alternate forms).
type cacheKey struct {
	id      int
	variant string
	size    SizeClass
}

// cacheEntry owns the encoded bitmap bytes plus its disk path.
type cacheEntry struct {
	key  cacheKey
	path string
	data []byte
}

// AssetCache is the two-tier artwork store: a bounded in-memory LRU in front
// of a per-id directory tree on disk. Lookups go memory, then disk, then
// network. It is not safe for concurrent use; the generation pipeline is
// single-threaded by contract.
type AssetCache struct {
	dir    string
	bound  int
	client *http.Client

	ll    *list.List // front = most recently used
	index map[cacheKey]*list.Element
}

// NewAssetCache creates a cache rooted at dir. A bound <= 0 selects
// DefaultCacheBound; a nil client gets a default with a fetch timeout.
func NewAssetCache(dir string, bound int, client *http.Client) *AssetCache {
	if bound <= 0 {
		bound = DefaultCacheBound
	}
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &AssetCache{
		dir:    dir,
		bound:  bound,
		client: client,
		ll:     list.New(),
		index:  make(map[cacheKey]*list.Element),
	}
}

// Get returns the normalized JPEG bytes for an artwork reference, or false on
// any miss (empty URL, fetch failure, undecodable image). Callers omit the
// image region on a miss; the cache never substitutes a placeholder.
func (c *AssetCache) Get(id int, url string, size SizeClass) ([]byte, bool) {
	if url == "" {
		return nil, false
	}
	key := cacheKey{id: id, variant: variantIdentifier(url), size: size}

	// Memory tier: refresh recency on hit.
	if el, ok := c.index[key]; ok {
		c.ll.MoveToFront(el)
		return el.Value.(*cacheEntry).data, true
	}

	path := c.entryPath(key)

	// Disk tier: survives eviction and process restarts.
	if data, err := os.ReadFile(path); err == nil { // #nosec G304 -- path derived from key
		c.insert(&cacheEntry{key: key, path: path, data: data})
		return data, true
	}

	// Network tier. The disk write completes atomically before the memory
	// index is updated, so an aborted run never leaves a torn entry.
	raw, err := c.fetch(url)
	if err != nil {
		return nil, false
	}
	data, err := normalizeArtwork(raw, size)
	if err != nil {
		return nil, false
	}
	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		return nil, false
	}
	c.insert(&cacheEntry{key: key, path: path, data: data})
	return data, true
}

// insert adds an entry and evicts the least-recently-used one beyond the
// bound. Eviction never touches the disk tier.
func (c *AssetCache) insert(e *cacheEntry) {
	c.index[e.key] = c.ll.PushFront(e)
	if c.ll.Len() > c.bound {
		back := c.ll.Back()
		c.ll.Remove(back)
		delete(c.index, back.Value.(*cacheEntry).key)
	}
}

// Len returns the number of in-memory entries.
func (c *AssetCache) Len() int { return c.ll.Len() }

// entryPath derives the disk location for a key: one directory per numeric
// id, one file per (variant, size) pair. No directory scans are ever needed.
func (c *AssetCache) entryPath(key cacheKey) string {
	name := fmt.Sprintf("%s_%s.jpg", key.variant, key.size)
	return filepath.Join(c.dir, strconv.Itoa(key.id), name)
}

// fetch retrieves raw image bytes. References without an HTTP scheme are
// treated as local files and read directly.
func (c *AssetCache) fetch(url string) ([]byte, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return os.ReadFile(url) // #nosec G304 -- local artwork path from the document
	}

	resp, err := c.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("artwork fetch: unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// normalizeArtwork decodes raw image bytes and produces the canonical cached
// form: alpha composited over white, Lanczos-fit into the size-class box,
// centered on a white square canvas of exactly the canonical resolution, and
// re-encoded as JPEG.
func normalizeArtwork(raw []byte, size SizeClass) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	flat := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	flat = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)

	px := size.Pixels()
	fitted := imaging.Fit(flat, px, px, imaging.Lanczos)
	canvas := imaging.New(px, px, color.White)
	canvas = imaging.PasteCenter(canvas, fitted)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// imageExtensions are stripped from URL leaves before variant extraction.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp"}

// variantIdentifier derives a cache-key component from the tail of an
// artwork reference so that alternate artwork sharing a numeric id caches
// independently. A purely numeric or hyphenated leaf is used as-is;
// otherwise the final two segments combine as "parent-leaf"; with nothing
// usable the literal "default" applies.
func variantIdentifier(url string) string {
	tail := url
	if i := strings.IndexAny(tail, "?#"); i >= 0 {
		tail = tail[:i]
	}
	// Drop scheme and host so only path segments feed the variant.
	if i := strings.Index(tail, "://"); i >= 0 {
		tail = tail[i+3:]
		if j := strings.Index(tail, "/"); j >= 0 {
			tail = tail[j+1:]
		} else {
			tail = ""
		}
	}
	segs := splitPathSegments(tail)
	if len(segs) == 0 {
		return "default"
	}

	leaf := stripImageExtension(segs[len(segs)-1])
	if isVariantCandidate(leaf) {
		return sanitizeVariant(leaf)
	}
	if len(segs) >= 2 && leaf != "" {
		parent := stripImageExtension(segs[len(segs)-2])
		if parent != "" {
			return sanitizeVariant(parent + "-" + leaf)
		}
	}
	return "default"
}

func splitPathSegments(s string) []string {
	var segs []string
	for _, seg := range strings.Split(s, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}

func stripImageExtension(s string) string {
	lower := strings.ToLower(s)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return s[:len(s)-len(ext)]
		}
	}
	return s
}

// isVariantCandidate accepts purely numeric leaves ("6") and hyphenated
// leaves ("6-mega-x") as cache variants on their own.
func isVariantCandidate(s string) bool {
	if s == "" {
		return false
	}
	if strings.Contains(s, "-") {
		return true
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// sanitizeVariant keeps the variant safe as a file-name component.
func sanitizeVariant(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "default"
	}
	return b.String()
}
