package domain

import "time"

// DocumentKind identifies the source format of an uploaded document.
type DocumentKind string

const (
	DocumentKindPPTX DocumentKind = "pptx"
	DocumentKindPDF  DocumentKind = "pdf"
)

// MIME types accepted by the converter.
const (
	ContentTypePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	ContentTypePDF  = "application/pdf"
)

// MaxSlideTextLen caps the extracted text returned per slide.
const MaxSlideTextLen = 2000

// SlideArtifact is one rendered slide or page: a base64 PNG plus the
// text extracted from it. ImageData is empty when rendering failed for
// that page; the conversion as a whole still succeeds.
type SlideArtifact struct {
	SlideIndex int    `json:"slide_index"`
	Text       string `json:"text"`
	ImageData  string `json:"image_data"`
}

// ConversionResult is the payload returned by the conversion endpoint.
type ConversionResult struct {
	Slides []SlideArtifact `json:"slides"`
}

// ConversionStatus reports how a conversion run ended.
type ConversionStatus string

const (
	ConversionStatusOK     ConversionStatus = "ok"
	ConversionStatusFailed ConversionStatus = "failed"
)

// ConversionRecord describes a single conversion run for persistence.
type ConversionRecord struct {
	ID           string           `json:"id"`
	OriginalName string           `json:"original_name"`
	Kind         DocumentKind     `json:"kind"`
	SlideCount   int              `json:"slide_count"`
	DurationMS   int64            `json:"duration_ms"`
	Status       ConversionStatus `json:"status"`
	Detail       string           `json:"detail,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// PageArtifact is a single rasterized page before it is merged with
// deck-level text into a SlideArtifact.
type PageArtifact struct {
	PageIndex int
	Text      string
	PNG       []byte
}

// KindForUpload resolves the document kind from the declared content
// type, falling back to the file extension. The second return is false
// when neither identifies a supported format.
func KindForUpload(contentType, filename string) (DocumentKind, bool) {
	switch contentType {
	case ContentTypePPTX:
		return DocumentKindPPTX, true
	case ContentTypePDF:
		return DocumentKindPDF, true
	}
	// Browsers and test clients often send application/octet-stream.
	if hasSuffixFold(filename, ".pptx") {
		return DocumentKindPPTX, true
	}
	if hasSuffixFold(filename, ".pdf") {
		return DocumentKindPDF, true
	}
	return "", false
}

// CapSlideText truncates text to MaxSlideTextLen bytes without
// splitting a UTF-8 sequence.
func CapSlideText(text string) string {
	if len(text) <= MaxSlideTextLen {
		return text
	}
	cut := MaxSlideTextLen
	for cut > 0 && text[cut]&0xC0 == 0x80 {
		cut--
	}
	return text[:cut]
}

func hasSuffixFold(s, suffix string) bool {
	if len(s) < len(suffix) {
		return false
	}
	tail := s[len(s)-len(suffix):]
	for i := 0; i < len(suffix); i++ {
		a, b := tail[i], suffix[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}
