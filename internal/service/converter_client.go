package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"deck-converter/internal/domain"
	apperrors "deck-converter/pkg/errors"
)

// ConverterClient is the studio's HTTP implementation of
// domain.DocumentConverter, talking to the conversion service.
type ConverterClient struct {
	baseURL    string
	httpClient *http.Client
	logger     domain.Logger
}

// NewConverterClient creates a client for the conversion service at
// baseURL (e.g. http://converter:8000).
func NewConverterClient(baseURL string, timeout time.Duration, logger domain.Logger) *ConverterClient {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &ConverterClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Convert uploads the document as multipart form data and decodes the
// slide payload.
func (c *ConverterClient) Convert(ctx context.Context, filename, contentType string, data []byte) (*domain.ConversionResult, error) {
	if c.baseURL == "" {
		return nil, apperrors.NewNetworkError("conversion service is not configured", domain.ErrConversionUnavailable)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := createFilePart(writer, filename, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write file part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/convert_document", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewNetworkError("conversion service request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail := readErrorDetail(resp.Body)
		c.logger.Warn("Conversion service returned error",
			"status", resp.StatusCode, "detail", detail)
		if resp.StatusCode == http.StatusBadRequest {
			return nil, apperrors.NewValidationError("conversion rejected", detail)
		}
		return nil, apperrors.NewNetworkError(
			fmt.Sprintf("conversion service returned %d: %s", resp.StatusCode, detail), nil)
	}

	var result domain.ConversionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode conversion response: %w", err)
	}
	return &result, nil
}

// createFilePart builds the "file" form part carrying the document's
// real content type, which the service uses for format detection.
func createFilePart(writer *multipart.Writer, filename, contentType string) (io.Writer, error) {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, strings.ReplaceAll(filename, `"`, "")))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	return writer.CreatePart(header)
}

// readErrorDetail extracts the error message from a JSON error payload,
// falling back to the raw body.
func readErrorDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 8<<10))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		switch {
		case payload.Details != "":
			return payload.Details
		case payload.Message != "":
			return payload.Message
		case payload.Error != "":
			return payload.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
