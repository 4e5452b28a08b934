package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"deck-converter/internal/domain"
)

// ConvertHandler handles document conversion requests.
type ConvertHandler struct {
	converter   domain.DocumentConverter
	maxFileSize int64
	logger      domain.Logger
}

// NewConvertHandler creates a new conversion handler.
func NewConvertHandler(converter domain.DocumentConverter, maxFileSize int64, logger domain.Logger) *ConvertHandler {
	return &ConvertHandler{
		converter:   converter,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// ConvertDocument handles the multipart upload and returns the
// per-slide renderings.
func (h *ConvertHandler) ConvertDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		writeError(w, http.StatusBadRequest, "File too large")
		return
	}

	// Sanitize filename (strip any path components)
	originalName := strings.TrimSpace(filepath.Base(header.Filename))
	if originalName == "" || originalName == "." || originalName == string(filepath.Separator) {
		originalName = "document"
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read upload", err, "name", originalName)
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	result, err := h.converter.Convert(r.Context(), originalName, contentType, data)
	if err != nil {
		h.logger.Error("Conversion failed", err, "name", originalName, "content_type", contentType)
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
