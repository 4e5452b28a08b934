package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"deck-converter/internal/domain"

	"github.com/gorilla/mux"
)

// DeckService is the slice of the studio service the handler uses.
type DeckService interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (*domain.Deck, error)
	Outline(id string) (*domain.DeckOutline, error)
	Slides(ctx context.Context, id string) (*domain.ConversionResult, error)
	Regenerate(ctx context.Context, id string) ([]byte, *domain.RegenerateStats, error)
	Notes(ctx context.Context, id string) (*domain.NotesResponse, error)
}

// DeckHandler handles the studio's deck endpoints.
type DeckHandler struct {
	decks       DeckService
	maxFileSize int64
	logger      domain.Logger
}

// NewDeckHandler creates a new deck handler.
func NewDeckHandler(decks DeckService, maxFileSize int64, logger domain.Logger) *DeckHandler {
	return &DeckHandler{
		decks:       decks,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// UploadDeck handles deck upload.
func (h *DeckHandler) UploadDeck(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	// Sanitize filename (strip any path components)
	originalName := strings.TrimSpace(filepath.Base(header.Filename))
	if originalName == "" || originalName == "." || originalName == string(filepath.Separator) {
		originalName = "deck"
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	deck, err := h.decks.Upload(r.Context(), originalName, header.Header.Get("Content-Type"), data)
	if err != nil {
		h.logger.Error("Deck upload failed", err, "name", originalName)
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":            deck.ID,
		"original_name": deck.OriginalName,
		"kind":          deck.Kind,
		"slide_count":   len(deck.Outline.Slides),
		"outline":       deck.Outline,
	})
}

// GetOutline returns the parsed preview of a deck.
func (h *DeckHandler) GetOutline(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	outline, err := h.decks.Outline(id)
	if err != nil {
		h.writeDeckError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outline)
}

// RenderSlides proxies the deck through the conversion service.
func (h *DeckHandler) RenderSlides(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result, err := h.decks.Slides(r.Context(), id)
	if err != nil {
		h.logger.Error("Slide rendering failed", err, "deck_id", id)
		h.writeDeckError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// RegenerateDeck rebuilds a simplified copy and streams it back.
func (h *DeckHandler) RegenerateDeck(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	data, stats, err := h.decks.Regenerate(r.Context(), id)
	if err != nil {
		h.logger.Error("Deck regeneration failed", err, "deck_id", id)
		h.writeDeckError(w, err)
		return
	}

	w.Header().Set("Content-Type", domain.ContentTypePPTX)
	w.Header().Set("Content-Disposition", `attachment; filename="hybrid_recreated.pptx"`)
	w.Header().Set("X-Slide-Count", fmt.Sprintf("%d", stats.SlideCount))
	w.Header().Set("X-Copied-Shapes", fmt.Sprintf("%d", stats.CopiedShapes))
	w.Header().Set("X-Skipped-Shapes", fmt.Sprintf("%d", stats.SkippedShapes))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// GenerateNotes produces speaker notes for the deck.
func (h *DeckHandler) GenerateNotes(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	notes, err := h.decks.Notes(r.Context(), id)
	if err != nil {
		h.logger.Error("Notes generation failed", err, "deck_id", id)
		h.writeDeckError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *DeckHandler) writeDeckError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrDeckNotFound) {
		writeError(w, http.StatusNotFound, "Deck not found")
		return
	}
	writeAppError(w, err)
}
