package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"deck-converter/internal/domain"
	apperrors "deck-converter/pkg/errors"
)

// MockConverter returns canned results for handler tests.
type MockConverter struct {
	result *domain.ConversionResult
	err    error

	gotFilename    string
	gotContentType string
}

func (m *MockConverter) Convert(ctx context.Context, filename, contentType string, data []byte) (*domain.ConversionResult, error) {
	m.gotFilename = filename
	m.gotContentType = contentType
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func multipartUpload(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}

func TestConvertDocument_Success(t *testing.T) {
	converter := &MockConverter{
		result: &domain.ConversionResult{
			Slides: []domain.SlideArtifact{
				{SlideIndex: 0, Text: "hello", ImageData: "aGVsbG8="},
			},
		},
	}
	h := NewConvertHandler(converter, 10<<20, NewMockHandlerLogger())

	body, contentType := multipartUpload(t, "file", "deck.pptx", domain.ContentTypePPTX, []byte("fake"))
	req := httptest.NewRequest(http.MethodPost, "/convert_document", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.ConvertDocument(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if converter.gotFilename != "deck.pptx" {
		t.Fatalf("expected filename deck.pptx, got %q", converter.gotFilename)
	}
	if converter.gotContentType != domain.ContentTypePPTX {
		t.Fatalf("expected pptx content type, got %q", converter.gotContentType)
	}

	var result domain.ConversionResult
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(result.Slides) != 1 || result.Slides[0].Text != "hello" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestConvertDocument_MissingFile(t *testing.T) {
	h := NewConvertHandler(&MockConverter{}, 10<<20, NewMockHandlerLogger())

	req := httptest.NewRequest(http.MethodPost, "/convert_document", strings.NewReader("not multipart"))
	rr := httptest.NewRecorder()

	h.ConvertDocument(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestConvertDocument_UnsupportedType(t *testing.T) {
	converter := &MockConverter{err: apperrors.NewUnsupportedFormatError("image/png")}
	h := NewConvertHandler(converter, 10<<20, NewMockHandlerLogger())

	body, contentType := multipartUpload(t, "file", "slide.png", "image/png", []byte("fake"))
	req := httptest.NewRequest(http.MethodPost, "/convert_document", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.ConvertDocument(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "unsupported file type") {
		t.Fatalf("expected unsupported type detail, got %s", rr.Body.String())
	}
}

func TestConvertDocument_ConversionFailure(t *testing.T) {
	converter := &MockConverter{err: apperrors.NewConversionError("pdf conversion failed", "stderr: boom", nil)}
	h := NewConvertHandler(converter, 10<<20, NewMockHandlerLogger())

	body, contentType := multipartUpload(t, "file", "deck.pptx", domain.ContentTypePPTX, []byte("fake"))
	req := httptest.NewRequest(http.MethodPost, "/convert_document", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.ConvertDocument(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "stderr: boom") {
		t.Fatalf("expected toolchain detail in body, got %s", rr.Body.String())
	}
}
