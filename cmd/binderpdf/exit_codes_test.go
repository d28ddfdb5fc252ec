package main

import (
	"fmt"
	"os"
	"testing"

	binderpdf "github.com/DerFlash/go-binderpdf"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"font unavailable", binderpdf.ErrFontUnavailable, ExitFont},
		{"wrapped font error", fmt.Errorf("section x: %w", binderpdf.ErrFontUnavailable), ExitFont},
		{"document missing", binderpdf.ErrDocumentNotFound, ExitIO},
		{"os not exist", os.ErrNotExist, ExitIO},
		{"missing input flag", ErrMissingInput, ExitUsage},
		{"document parse", binderpdf.ErrDocumentParse, ExitUsage},
		{"card shape", fmt.Errorf("card 3: %w", binderpdf.ErrUnknownCardShape), ExitUsage},
		{"card without type", binderpdf.ErrCardWithoutType, ExitGeneral},
		{"unknown error", fmt.Errorf("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
