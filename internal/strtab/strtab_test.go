package strtab_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DerFlash/go-binderpdf/internal/strtab"
)

func TestTranslate(t *testing.T) {
	t.Parallel()

	table := strtab.New(map[string]map[string]string{
		"type.grass": {"en": "Grass", "de": "Pflanze"},
		"type.fire":  {"en": "Fire"},
		"empty.key":  {"en": ""},
	})

	tests := []struct {
		name string
		key  string
		lang string
		want string
	}{
		{"direct hit", "type.grass", "de", "Pflanze"},
		{"english fallback", "type.fire", "de", "Fire"},
		{"unknown key echoes key", "type.water", "de", "type.water"},
		{"empty value falls through to key", "empty.key", "en", "empty.key"},
		{"english lookup", "type.grass", "en", "Grass"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := table.Translate(tt.key, tt.lang); got != tt.want {
				t.Errorf("Translate(%q, %q) = %q, want %q", tt.key, tt.lang, got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "strings.yaml")
		content := "type.grass:\n  en: Grass\n  fr: Plante\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		table, err := strtab.Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got := table.Translate("type.grass", "fr"); got != "Plante" {
			t.Errorf("Translate = %q, want %q", got, "Plante")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := strtab.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, strtab.ErrTableNotFound) {
			t.Errorf("error = %v, want ErrTableNotFound", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("key: [unclosed"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		_, err := strtab.Load(path)
		if !errors.Is(err, strtab.ErrTableParse) {
			t.Errorf("error = %v, want ErrTableParse", err)
		}
	})
}
