package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"deck-converter/internal/domain"
	apperrors "deck-converter/pkg/errors"

	"github.com/google/uuid"
)

// DeckService is the studio's business logic: it holds uploaded decks,
// exposes their parsed outline, proxies rendering to the conversion
// service, regenerates simplified copies and produces speaker notes.
type DeckService struct {
	store     domain.DeckStore
	parser    domain.DeckParser
	writer    domain.DeckWriter
	office    domain.OfficeConverter
	converter domain.DocumentConverter
	notes     domain.NotesGenerator
	storage   domain.ArtifactStorage
	logger    domain.Logger
}

// NewDeckService creates a new deck service. notes and storage are
// optional and may be nil.
func NewDeckService(
	store domain.DeckStore,
	parser domain.DeckParser,
	writer domain.DeckWriter,
	office domain.OfficeConverter,
	converter domain.DocumentConverter,
	notes domain.NotesGenerator,
	storage domain.ArtifactStorage,
	logger domain.Logger,
) *DeckService {
	return &DeckService{
		store:     store,
		parser:    parser,
		writer:    writer,
		office:    office,
		converter: converter,
		notes:     notes,
		storage:   storage,
		logger:    logger,
	}
}

// Upload registers a new deck. PDF uploads are converted to PPTX first,
// the same way the original front-end pushed PDFs through the office
// toolchain before parsing.
func (s *DeckService) Upload(ctx context.Context, filename, contentType string, data []byte) (*domain.Deck, error) {
	kind, ok := domain.KindForUpload(contentType, filename)
	if !ok {
		return nil, apperrors.NewUnsupportedFormatError(contentType)
	}

	deckBytes := data
	if kind == domain.DocumentKindPDF {
		converted, err := s.office.ToDeck(ctx, filename, data)
		if err != nil {
			return nil, err
		}
		deckBytes = converted
	}

	outline, err := s.parser.Parse(deckBytes)
	if err != nil {
		return nil, apperrors.NewValidationError("failed to load deck", err.Error())
	}

	deck := &domain.Deck{
		ID:           uuid.NewString(),
		OriginalName: filename,
		Kind:         kind,
		Data:         deckBytes,
		Outline:      outline,
		UploadedAt:   time.Now(),
	}
	if err := s.store.Put(deck); err != nil {
		return nil, apperrors.NewInternalError("failed to store deck", err)
	}

	s.logger.Info("Deck uploaded",
		"id", deck.ID, "name", filename, "kind", kind, "slides", len(outline.Slides))
	return deck, nil
}

// Outline returns the structured preview of a stored deck.
func (s *DeckService) Outline(id string) (*domain.DeckOutline, error) {
	deck, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return deck.Outline, nil
}

// Slides sends the deck through the conversion service and returns the
// per-slide renderings.
func (s *DeckService) Slides(ctx context.Context, id string) (*domain.ConversionResult, error) {
	deck, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return s.converter.Convert(ctx, deckFilename(deck), domain.ContentTypePPTX, deck.Data)
}

// Regenerate rebuilds a simplified copy of the deck and, when object
// storage is configured, uploads it as a side effect.
func (s *DeckService) Regenerate(ctx context.Context, id string) ([]byte, *domain.RegenerateStats, error) {
	deck, err := s.store.Get(id)
	if err != nil {
		return nil, nil, err
	}

	regenerated, stats, err := s.writer.Write(deck.Outline)
	if err != nil {
		return nil, nil, apperrors.NewInternalError("failed to regenerate deck", err)
	}
	s.logger.Info("Deck regenerated",
		"id", id, "slides", stats.SlideCount,
		"copied", stats.CopiedShapes, "skipped", stats.SkippedShapes)

	if s.storage != nil {
		path := fmt.Sprintf("regenerated/%s.pptx", id)
		if err := s.storage.Upload(ctx, path, domain.ContentTypePPTX, bytes.NewReader(regenerated)); err != nil {
			s.logger.Warn("Failed to upload regenerated deck", "id", id, "error", err)
		}
	}

	return regenerated, stats, nil
}

// Notes generates speaker notes for every slide of the deck.
func (s *DeckService) Notes(ctx context.Context, id string) (*domain.NotesResponse, error) {
	deck, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if s.notes == nil {
		return nil, apperrors.NewNetworkError("notes generation is not configured", domain.ErrNotesNotConfigured)
	}

	notes, err := s.notes.GenerateNotes(ctx, deck.Outline.SlideTexts())
	if err != nil {
		return nil, err
	}
	return &domain.NotesResponse{
		DeckID: id,
		Model:  s.notes.Model(),
		Notes:  notes,
	}, nil
}

// deckFilename names the payload sent to the conversion service. After
// a PDF upload the stored bytes are already PPTX.
func deckFilename(deck *domain.Deck) string {
	if deck.Kind == domain.DocumentKindPDF {
		return deck.OriginalName + ".pptx"
	}
	return deck.OriginalName
}
