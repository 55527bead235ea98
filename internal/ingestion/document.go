// Package ingestion turns uploaded documents and job posting URLs into plain text.
package ingestion

import (
	"fmt"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Supported MIME types.
const (
	MIMEPDF       = "application/pdf"
	MIMEDOCX      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEPlainText = "text/plain"
	MIMEMarkdown  = "text/markdown"
)

// MinTextLength is the length below which extracted text is suspicious,
// typically an image-only or encrypted PDF.
const MinTextLength = 50

// Document is the text extracted from an uploaded file.
type Document struct {
	Text      string `json:"text"`
	MIMEType  string `json:"mime_type"`
	PageCount int    `json:"page_count"`
	CharCount int    `json:"char_count"`
}

// ExtractText extracts plain text from data according to its MIME type.
// Parameters such as "; charset=utf-8" are ignored.
func ExtractText(mimeType string, data []byte) (*Document, error) {
	mediaType := normalizeMIME(mimeType)

	var (
		text  string
		pages int
		err   error
	)
	switch mediaType {
	case MIMEPDF:
		text, pages, err = extractPDF(data)
	case MIMEDOCX:
		text, err = extractDOCX(data)
		pages = 1
	case MIMEPlainText, MIMEMarkdown:
		if !utf8.Valid(data) {
			err = &ExtractionError{MIMEType: mediaType, Message: "text is not valid UTF-8"}
		}
		text, pages = string(data), 1
	default:
		return nil, &ExtractionError{MIMEType: mimeType, Message: "no extractor for this type", Cause: ErrUnsupportedType}
	}
	if err != nil {
		return nil, err
	}

	text = CleanText(text)
	charCount := utf8.RuneCountInString(text)
	if charCount == 0 {
		return nil, &ExtractionError{MIMEType: mediaType, Message: "document is empty or image-based", Cause: ErrNoText}
	}
	if charCount < MinTextLength {
		log.Printf("[ingest] Extracted text is very short (%d chars); %s might be image-based or encrypted", charCount, mediaType)
	}

	log.Printf("[ingest] Extracted %d chars from %d pages (%s)", charCount, pages, mediaType)
	return &Document{
		Text:      text,
		MIMEType:  mediaType,
		PageCount: pages,
		CharCount: charCount,
	}, nil
}

// DetectMIME guesses a file's MIME type from its extension, falling back to
// content sniffing.
func DetectMIME(filename string, data []byte) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return MIMEPDF
	case ".docx":
		return MIMEDOCX
	case ".txt", ".text":
		return MIMEPlainText
	case ".md", ".markdown":
		return MIMEMarkdown
	}
	return normalizeMIME(http.DetectContentType(data))
}

// ReadFile extracts text from a file on disk.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ExtractText(DetectMIME(path, data), data)
}

func normalizeMIME(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(mimeType))
	}
	return mediaType
}
