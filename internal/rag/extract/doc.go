package extract

import (
	"github.com/akolanti/DocRAG/internal/domain/ragErrors"
	"github.com/lu4p/cat"
)

// extractDoc reads a .docx, .rtf or .odt payload and returns the content
// as a single string.
func extractDoc(data []byte) (string, error) {
	text, err := cat.FromBytes(data)
	if err != nil {
		return "", &ragErrors.ExtractionError{Format: "doc", Err: err}
	}
	return text, nil
}
