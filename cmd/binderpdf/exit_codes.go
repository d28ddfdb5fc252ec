package main

import (
	"errors"
	"os"

	binderpdf "github.com/DerFlash/go-binderpdf"
	"github.com/DerFlash/go-binderpdf/internal/strtab"
)

// Exit codes for the binderpdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, custom codes < 126.
const (
	ExitSuccess = 0 // PDF generated
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or document validation
	ExitIO      = 3 // File not found, permission denied
	ExitFont    = 4 // Required font unavailable
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use
// fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, binderpdf.ErrFontUnavailable) ||
		errors.Is(err, binderpdf.ErrFontNotRegistered) {
		return ExitFont
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, binderpdf.ErrDocumentNotFound) ||
		errors.Is(err, strtab.ErrTableNotFound) {
		return ExitIO
	}

	if errors.Is(err, ErrMissingInput) ||
		errors.Is(err, ErrQuietVerbose) ||
		errors.Is(err, ErrConfigNotFound) ||
		errors.Is(err, ErrConfigParse) ||
		errors.Is(err, binderpdf.ErrDocumentParse) ||
		errors.Is(err, binderpdf.ErrEmptyDocument) ||
		errors.Is(err, binderpdf.ErrNoLanguage) ||
		errors.Is(err, binderpdf.ErrInvalidColor) ||
		errors.Is(err, binderpdf.ErrUnknownCardShape) ||
		errors.Is(err, binderpdf.ErrTooManyFeatured) {
		return ExitUsage
	}

	return ExitGeneral
}
