package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"deck-converter/internal/domain"
	apperrors "deck-converter/pkg/errors"
)

type mockStore struct {
	decks map[string]*domain.Deck
	put   *domain.Deck
}

func newMockStore() *mockStore {
	return &mockStore{decks: map[string]*domain.Deck{}}
}

func (m *mockStore) Put(deck *domain.Deck) error {
	m.put = deck
	m.decks[deck.ID] = deck
	return nil
}

func (m *mockStore) Get(id string) (*domain.Deck, error) {
	deck, ok := m.decks[id]
	if !ok {
		return nil, domain.ErrDeckNotFound
	}
	return deck, nil
}

func (m *mockStore) Delete(id string) error {
	delete(m.decks, id)
	return nil
}

type mockWriter struct {
	data  []byte
	stats *domain.RegenerateStats
	err   error
}

func (m *mockWriter) Write(outline *domain.DeckOutline) ([]byte, *domain.RegenerateStats, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.data, m.stats, nil
}

type mockDocConverter struct {
	result      *domain.ConversionResult
	err         error
	gotFilename string
}

func (m *mockDocConverter) Convert(ctx context.Context, filename, contentType string, data []byte) (*domain.ConversionResult, error) {
	m.gotFilename = filename
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockNotes struct {
	notes []domain.SlideNote
	err   error
}

func (m *mockNotes) GenerateNotes(ctx context.Context, slideTexts []string) ([]domain.SlideNote, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.notes, nil
}

func (m *mockNotes) Model() string { return "test-model" }

type mockStorage struct {
	paths []string
	err   error
}

func (m *mockStorage) Upload(ctx context.Context, path string, contentType string, file io.Reader) error {
	m.paths = append(m.paths, path)
	return m.err
}

func newDeckService(store domain.DeckStore, parser domain.DeckParser, writer domain.DeckWriter,
	office domain.OfficeConverter, converter domain.DocumentConverter,
	notes domain.NotesGenerator, storage domain.ArtifactStorage) *DeckService {
	return NewDeckService(store, parser, writer, office, converter, notes, storage, noopLogger{})
}

func TestDeckUpload_PPTX(t *testing.T) {
	store := newMockStore()
	parser := &mockParser{outline: outlineWithTexts("one", "two")}
	svc := newDeckService(store, parser, &mockWriter{}, &mockOffice{}, &mockDocConverter{}, nil, nil)

	deck, err := svc.Upload(context.Background(), "quarterly.pptx", domain.ContentTypePPTX, []byte("pk"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deck.ID == "" {
		t.Error("expected generated id")
	}
	if deck.Kind != domain.DocumentKindPPTX {
		t.Errorf("unexpected kind: %q", deck.Kind)
	}
	if store.put == nil || store.put.ID != deck.ID {
		t.Error("expected deck to be stored")
	}
	if len(deck.Outline.Slides) != 2 {
		t.Errorf("unexpected outline: %+v", deck.Outline)
	}
}

func TestDeckUpload_PDFGoesThroughOffice(t *testing.T) {
	store := newMockStore()
	office := &mockOffice{deck: []byte("converted-pptx")}
	parser := &mockParser{outline: outlineWithTexts("one")}
	svc := newDeckService(store, parser, &mockWriter{}, office, &mockDocConverter{}, nil, nil)

	deck, err := svc.Upload(context.Background(), "paper.pdf", domain.ContentTypePDF, []byte("%PDF"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deck.Kind != domain.DocumentKindPDF {
		t.Errorf("unexpected kind: %q", deck.Kind)
	}
	if string(deck.Data) != "converted-pptx" {
		t.Errorf("expected stored bytes to be the converted deck, got %q", deck.Data)
	}
}

func TestDeckUpload_Unsupported(t *testing.T) {
	svc := newDeckService(newMockStore(), &mockParser{}, &mockWriter{}, &mockOffice{}, &mockDocConverter{}, nil, nil)

	_, err := svc.Upload(context.Background(), "notes.txt", "text/plain", []byte("x"))
	if !apperrors.IsType(err, apperrors.ErrorTypeUnsupported) {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestDeckUpload_ParseFailure(t *testing.T) {
	parser := &mockParser{err: domain.ErrInvalidFile}
	svc := newDeckService(newMockStore(), parser, &mockWriter{}, &mockOffice{}, &mockDocConverter{}, nil, nil)

	_, err := svc.Upload(context.Background(), "deck.pptx", domain.ContentTypePPTX, []byte("junk"))
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeckOutline_NotFound(t *testing.T) {
	svc := newDeckService(newMockStore(), &mockParser{}, &mockWriter{}, &mockOffice{}, &mockDocConverter{}, nil, nil)

	_, err := svc.Outline("missing")
	if !errors.Is(err, domain.ErrDeckNotFound) {
		t.Fatalf("expected ErrDeckNotFound, got %v", err)
	}
}

func TestDeckSlides_PDFUploadSentAsPPTX(t *testing.T) {
	store := newMockStore()
	store.decks["d1"] = &domain.Deck{
		ID:           "d1",
		OriginalName: "paper.pdf",
		Kind:         domain.DocumentKindPDF,
		Data:         []byte("pk"),
		Outline:      outlineWithTexts("one"),
	}
	converter := &mockDocConverter{result: &domain.ConversionResult{}}
	svc := newDeckService(store, &mockParser{}, &mockWriter{}, &mockOffice{}, converter, nil, nil)

	if _, err := svc.Slides(context.Background(), "d1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The stored bytes are already PPTX after upload.
	if converter.gotFilename != "paper.pdf.pptx" {
		t.Fatalf("unexpected filename sent to converter: %q", converter.gotFilename)
	}
}

func TestDeckRegenerate_UploadsWhenConfigured(t *testing.T) {
	store := newMockStore()
	store.decks["d1"] = &domain.Deck{ID: "d1", Outline: outlineWithTexts("one")}
	writer := &mockWriter{data: []byte("pk-new"), stats: &domain.RegenerateStats{SlideCount: 1, CopiedShapes: 1}}
	storage := &mockStorage{}
	svc := newDeckService(store, &mockParser{}, writer, &mockOffice{}, &mockDocConverter{}, nil, storage)

	data, stats, err := svc.Regenerate(context.Background(), "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "pk-new" || stats.CopiedShapes != 1 {
		t.Fatalf("unexpected result: %q %+v", data, stats)
	}
	if len(storage.paths) != 1 || storage.paths[0] != "regenerated/d1.pptx" {
		t.Fatalf("unexpected storage paths: %v", storage.paths)
	}
}

func TestDeckRegenerate_StorageFailureIsNotFatal(t *testing.T) {
	store := newMockStore()
	store.decks["d1"] = &domain.Deck{ID: "d1", Outline: outlineWithTexts("one")}
	writer := &mockWriter{data: []byte("pk-new"), stats: &domain.RegenerateStats{SlideCount: 1}}
	storage := &mockStorage{err: errors.New("bucket gone")}
	svc := newDeckService(store, &mockParser{}, writer, &mockOffice{}, &mockDocConverter{}, nil, storage)

	if _, _, err := svc.Regenerate(context.Background(), "d1"); err != nil {
		t.Fatalf("storage failure must not fail regeneration: %v", err)
	}
}

func TestDeckNotes_NotConfigured(t *testing.T) {
	store := newMockStore()
	store.decks["d1"] = &domain.Deck{ID: "d1", Outline: outlineWithTexts("one")}
	svc := newDeckService(store, &mockParser{}, &mockWriter{}, &mockOffice{}, &mockDocConverter{}, nil, nil)

	_, err := svc.Notes(context.Background(), "d1")
	if !errors.Is(err, domain.ErrNotesNotConfigured) {
		t.Fatalf("expected ErrNotesNotConfigured, got %v", err)
	}
}

func TestDeckNotes_Success(t *testing.T) {
	store := newMockStore()
	store.decks["d1"] = &domain.Deck{ID: "d1", Outline: outlineWithTexts("one", "two")}
	notes := &mockNotes{notes: []domain.SlideNote{{SlideIndex: 0, Notes: "say hi"}}}
	svc := newDeckService(store, &mockParser{}, &mockWriter{}, &mockOffice{}, &mockDocConverter{}, notes, nil)

	resp, err := svc.Notes(context.Background(), "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.DeckID != "d1" || resp.Model != "test-model" || len(resp.Notes) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
