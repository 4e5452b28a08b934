package domain

import "errors"

// Domain errors
var (
	ErrDeckNotFound          = errors.New("deck not found")
	ErrConverterNotFound     = errors.New("office converter binary not found")
	ErrEmptyDocument         = errors.New("document has no pages")
	ErrInvalidFile           = errors.New("invalid file")
	ErrNotesNotConfigured    = errors.New("notes generation is not configured")
	ErrConversionUnavailable = errors.New("conversion service unavailable")
)
