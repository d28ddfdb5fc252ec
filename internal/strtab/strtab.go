// Package strtab implements the read-only string-table collaborator: a
// key -> language -> string lookup loaded from a YAML file. Renderers treat
// the table as an opaque translate service.
package strtab

import (
	"errors"
	"fmt"
	"os"

	"github.com/DerFlash/go-binderpdf/internal/yamlutil"
)

// Sentinel errors for string-table operations.
var (
	ErrTableNotFound = errors.New("string table file not found")
	ErrTableParse    = errors.New("failed to parse string table")
)

// fallbackLanguage is consulted before giving up on a key.
const fallbackLanguage = "en"

// Table is an immutable key -> language -> string map.
type Table struct {
	entries map[string]map[string]string
}

// New creates a table from an in-memory map. The map is not copied; callers
// must not mutate it afterwards.
func New(entries map[string]map[string]string) *Table {
	if entries == nil {
		entries = map[string]map[string]string{}
	}
	return &Table{entries: entries}
}

// Load reads a YAML string table:
//
//	type.grass:
//	  en: Grass
//	  de: Pflanze
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- table path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTableNotFound, path)
		}
		return nil, fmt.Errorf("reading string table: %w", err)
	}

	var entries map[string]map[string]string
	if err := yamlutil.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTableParse, err)
	}
	return New(entries), nil
}

// Translate returns the value for (key, lang), falling back to English and
// finally to the key itself so output stays legible for missing entries.
func (t *Table) Translate(key, lang string) string {
	langs, ok := t.entries[key]
	if !ok {
		return key
	}
	if v, ok := langs[lang]; ok && v != "" {
		return v
	}
	if v, ok := langs[fallbackLanguage]; ok && v != "" {
		return v
	}
	return key
}
