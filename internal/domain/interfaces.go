package domain

import (
	"context"
	"io"
	"time"
)

// DocumentConverter turns an uploaded document into rendered slides.
// Implemented locally by the conversion service and over HTTP by the
// studio's client.
type DocumentConverter interface {
	Convert(ctx context.Context, filename, contentType string, data []byte) (*ConversionResult, error)
}

// PageRenderer rasterizes the pages of a PDF into PNG images and
// extracts their text.
type PageRenderer interface {
	RenderPages(ctx context.Context, pdfBytes []byte) ([]PageArtifact, error)
}

// OfficeConverter wraps the native office toolchain.
type OfficeConverter interface {
	ToPDF(ctx context.Context, filename string, data []byte) ([]byte, error)
	ToDeck(ctx context.Context, filename string, data []byte) ([]byte, error)
}

// DeckParser reads a PPTX archive into a structured outline.
type DeckParser interface {
	Parse(data []byte) (*DeckOutline, error)
}

// DeckWriter builds a simplified PPTX from an outline.
type DeckWriter interface {
	Write(outline *DeckOutline) ([]byte, *RegenerateStats, error)
}

// DeckStore keeps uploaded decks for the studio.
type DeckStore interface {
	Put(deck *Deck) error
	Get(id string) (*Deck, error)
	Delete(id string) error
}

// NotesGenerator produces speaker notes for slide texts via an
// external model API.
type NotesGenerator interface {
	GenerateNotes(ctx context.Context, slideTexts []string) ([]SlideNote, error)
	Model() string
}

// ConversionRepository persists conversion runs. Implementations may
// be no-ops when no backend is configured.
type ConversionRepository interface {
	RecordConversion(ctx context.Context, record *ConversionRecord) error
}

// ArtifactStorage uploads produced files (regenerated decks) to object
// storage.
type ArtifactStorage interface {
	Upload(ctx context.Context, path string, contentType string, file io.Reader) error
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetConverterPort() string
	GetStudioPort() string
	GetMaxFileSize() int64
	GetLogLevel() string

	GetSofficePath() string
	GetConvertTimeout() time.Duration
	GetRenderWorkers() int
	GetPageTimeout() time.Duration

	GetConversionServiceURL() string
	GetDeckCacheSize() int

	GetOpenAIKey() string
	GetOpenAIBaseURL() string
	GetOpenAIModel() string

	GetSupabaseURL() string
	GetSupabaseKey() string
	GetStorageBucket() string
}
