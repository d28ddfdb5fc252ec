package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/DerFlash/go-binderpdf/internal/yamlutil"
)

type target struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	t.Run("valid input", func(t *testing.T) {
		t.Parallel()
		var v target
		if err := yamlutil.Unmarshal([]byte("name: kanto\ncount: 151\n"), &v); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if v.Name != "kanto" || v.Count != 151 {
			t.Errorf("got %+v, want {kanto 151}", v)
		}
	})

	t.Run("empty data", func(t *testing.T) {
		t.Parallel()
		var v target
		if err := yamlutil.Unmarshal(nil, &v); !errors.Is(err, yamlutil.ErrNilData) {
			t.Errorf("error = %v, want ErrNilData", err)
		}
	})

	t.Run("nil destination", func(t *testing.T) {
		t.Parallel()
		if err := yamlutil.Unmarshal([]byte("name: x"), nil); !errors.Is(err, yamlutil.ErrNilDestination) {
			t.Errorf("error = %v, want ErrNilDestination", err)
		}
	})

	t.Run("unknown fields ignored", func(t *testing.T) {
		t.Parallel()
		var v target
		if err := yamlutil.Unmarshal([]byte("name: x\nextra: y\n"), &v); err != nil {
			t.Errorf("Unmarshal() error = %v, want nil", err)
		}
	})
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()
		var v target
		if err := yamlutil.UnmarshalStrict([]byte("name: x\nextra: y\n"), &v); err == nil {
			t.Error("UnmarshalStrict() error = nil, want unknown-field error")
		}
	})

	t.Run("input too large", func(t *testing.T) {
		t.Parallel()
		var v target
		big := []byte("name: " + strings.Repeat("a", yamlutil.MaxInputSize))
		if err := yamlutil.UnmarshalStrict(big, &v); !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("error = %v, want ErrInputTooLarge", err)
		}
	})
}
