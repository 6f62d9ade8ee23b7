package extract

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"github.com/akolanti/DocRAG/internal/config"
	"github.com/akolanti/DocRAG/internal/domain/ragErrors"
	"github.com/dslipak/pdf"
)

// extractPDF concatenates the plain text of every page with a single
// space separator. Unreadable or encrypted files surface as an
// ExtractionError, not as an empty document.
func (e *Extractor) extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.logger.Error("failed opening pdf", "error", err)
		return "", &ragErrors.ExtractionError{Format: "pdf", Err: err}
	}

	var pages []string
	numPages := reader.NumPage()
	e.logger.Debug("extractPDF", "number of pages", numPages)

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// A single broken page poisons the whole document; partial
			// text would silently skew retrieval.
			e.logger.Error("Error parsing page content", "page", i, "error", err)
			return "", &ragErrors.ExtractionError{Format: "pdf", Err: err}
		}
		pages = append(pages, content)
	}

	return strings.Join(pages, " "), nil
}

// protectExtract guards against pathological pages that hang the parser.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()

	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(config.PDFPageTimeout):
		return "", errors.New("page extraction timeout")
	}
}
