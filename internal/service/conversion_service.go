package service

import (
	"context"
	"encoding/base64"
	"time"

	"deck-converter/internal/domain"
	apperrors "deck-converter/pkg/errors"

	"github.com/google/uuid"
)

// ConversionService turns uploaded documents into per-slide PNG
// renderings plus extracted text. PPTX decks go through the office
// toolchain to PDF first and keep their own XML text; PDFs are
// rendered and read directly.
type ConversionService struct {
	office   domain.OfficeConverter
	renderer domain.PageRenderer
	parser   domain.DeckParser
	repo     domain.ConversionRepository
	logger   domain.Logger
}

// NewConversionService creates a new conversion service. repo may be a
// no-op implementation when persistence is not configured.
func NewConversionService(
	office domain.OfficeConverter,
	renderer domain.PageRenderer,
	parser domain.DeckParser,
	repo domain.ConversionRepository,
	logger domain.Logger,
) *ConversionService {
	return &ConversionService{
		office:   office,
		renderer: renderer,
		parser:   parser,
		repo:     repo,
		logger:   logger,
	}
}

// Convert implements domain.DocumentConverter.
func (s *ConversionService) Convert(ctx context.Context, filename, contentType string, data []byte) (*domain.ConversionResult, error) {
	kind, ok := domain.KindForUpload(contentType, filename)
	if !ok {
		return nil, apperrors.NewUnsupportedFormatError(contentType)
	}

	start := time.Now()
	record := &domain.ConversionRecord{
		ID:           uuid.NewString(),
		OriginalName: filename,
		Kind:         kind,
		CreatedAt:    start,
	}

	result, err := s.convertKind(ctx, kind, filename, data)
	record.DurationMS = time.Since(start).Milliseconds()
	if err != nil {
		record.Status = domain.ConversionStatusFailed
		record.Detail = err.Error()
	} else {
		record.Status = domain.ConversionStatusOK
		record.SlideCount = len(result.Slides)
	}
	s.record(ctx, record)

	if err != nil {
		return nil, err
	}
	s.logger.Info("Document converted",
		"id", record.ID, "name", filename, "kind", kind,
		"slides", record.SlideCount, "duration_ms", record.DurationMS)
	return result, nil
}

func (s *ConversionService) convertKind(ctx context.Context, kind domain.DocumentKind, filename string, data []byte) (*domain.ConversionResult, error) {
	switch kind {
	case domain.DocumentKindPPTX:
		return s.convertDeck(ctx, filename, data)
	default:
		return s.convertPDF(ctx, data)
	}
}

// convertDeck renders each slide via PDF and prefers the deck's own
// XML text over the rasterizer's, matching how the original extracted
// slide text from the presentation rather than the rendering.
func (s *ConversionService) convertDeck(ctx context.Context, filename string, data []byte) (*domain.ConversionResult, error) {
	var slideTexts []string
	outline, err := s.parser.Parse(data)
	if err != nil {
		s.logger.Warn("Failed to parse deck XML; falling back to rendered text", "name", filename, "error", err)
	} else {
		slideTexts = outline.SlideTexts()
	}

	pdfBytes, err := s.office.ToPDF(ctx, filename, data)
	if err != nil {
		return nil, err
	}

	pages, err := s.renderer.RenderPages(ctx, pdfBytes)
	if err != nil {
		return nil, apperrors.NewConversionError("deck rendering failed", "", err)
	}

	slides := make([]domain.SlideArtifact, len(pages))
	for i, page := range pages {
		text := page.Text
		if i < len(slideTexts) && slideTexts[i] != "" {
			text = slideTexts[i]
		}
		slides[i] = domain.SlideArtifact{
			SlideIndex: i,
			Text:       domain.CapSlideText(text),
			ImageData:  base64.StdEncoding.EncodeToString(page.PNG),
		}
	}
	return &domain.ConversionResult{Slides: slides}, nil
}

func (s *ConversionService) convertPDF(ctx context.Context, data []byte) (*domain.ConversionResult, error) {
	pages, err := s.renderer.RenderPages(ctx, data)
	if err != nil {
		if err == domain.ErrEmptyDocument {
			return nil, apperrors.NewValidationError("document has no pages")
		}
		return nil, apperrors.NewConversionError("PDF conversion failed", "", err)
	}

	slides := make([]domain.SlideArtifact, len(pages))
	for i, page := range pages {
		slides[i] = domain.SlideArtifact{
			SlideIndex: i,
			Text:       domain.CapSlideText(page.Text),
			ImageData:  base64.StdEncoding.EncodeToString(page.PNG),
		}
	}
	return &domain.ConversionResult{Slides: slides}, nil
}

func (s *ConversionService) record(ctx context.Context, record *domain.ConversionRecord) {
	if s.repo == nil {
		return
	}
	if err := s.repo.RecordConversion(ctx, record); err != nil {
		s.logger.Warn("Failed to record conversion run", "id", record.ID, "error", err)
	}
}
