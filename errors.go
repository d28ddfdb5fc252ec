package binderpdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyDocument = errors.New("document has no sections")
	ErrNoLanguage    = errors.New("document language cannot be empty")

	// Document loading errors.
	ErrDocumentNotFound = errors.New("document file not found")
	ErrDocumentParse    = errors.New("failed to parse document")
	ErrUnknownCardShape = errors.New("card record matches no known shape")
	ErrInvalidColor     = errors.New("invalid color")
	ErrTooManyFeatured  = errors.New("a section supports at most 3 featured artworks")

	// Rendering errors.
	ErrCardWithoutType = errors.New("card has no type tags")
	ErrMissingName     = errors.New("card has no name for the requested language")

	// Font errors.
	ErrFontUnavailable   = errors.New("no registered font for language")
	ErrFontNotRegistered = errors.New("font registry has not been registered with a PDF")
)
