package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF returns the text of every page, pages separated by a blank line.
// The pdf reader panics on some malformed inputs; that is reported as an error.
func extractPDF(data []byte) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ExtractionError{MIMEType: MIMEPDF, Message: "malformed PDF", Cause: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, &ExtractionError{MIMEType: MIMEPDF, Message: "failed to open PDF", Cause: err}
	}

	pages = reader.NumPage()
	parts := make([]string, 0, pages)
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", 0, &ExtractionError{MIMEType: MIMEPDF, Message: fmt.Sprintf("failed to read page %d", i), Cause: err}
		}
		parts = append(parts, strings.TrimSpace(pageText))
	}
	return strings.Join(parts, "\n\n"), pages, nil
}
