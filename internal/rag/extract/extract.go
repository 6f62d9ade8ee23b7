// Package extract converts raw uploaded bytes into plain text, one
// extractor per file format. There is no fallback chain between formats:
// an extractor either produces text or returns a typed error, and the
// caller decides whether to skip, retry or abort the ingestion.
package extract

import (
	"context"
	"unicode/utf8"

	"github.com/akolanti/DocRAG/internal/domain/docModel"
	"github.com/akolanti/DocRAG/internal/domain/ragErrors"
	"github.com/akolanti/DocRAG/pkg/logger_i"
)

// VisionDescriber turns an image into a textual description using a
// vision-capable model. The model id is caller-selectable per request.
type VisionDescriber interface {
	DescribeImage(ctx context.Context, model string, mimeType string, image []byte) (string, error)
}

type Extractor struct {
	vision VisionDescriber
	logger *logger_i.Logger
}

func NewExtractor(vision VisionDescriber) *Extractor {
	return &Extractor{
		vision: vision,
		logger: logger_i.NewLogger("Extractor"),
	}
}

// Extract dispatches on the document's detected format and returns the
// normalized plain text. visionModel is only consulted for image input.
func (e *Extractor) Extract(ctx context.Context, doc docModel.Document, visionModel string) (string, error) {
	format := docModel.DetectFormat(doc.MimeType, doc.Name)
	e.logger.Debug("Extracting document", "filename", doc.Name, "format", format)

	switch format {
	case docModel.FormatCSV:
		return extractCSV(doc.RawBytes)
	case docModel.FormatSpreadsheet:
		return extractSpreadsheet(doc.RawBytes)
	case docModel.FormatPDF:
		return e.extractPDF(doc.RawBytes)
	case docModel.FormatImage:
		return e.extractImage(ctx, doc.MimeType, doc.RawBytes, visionModel)
	case docModel.FormatDoc:
		return extractDoc(doc.RawBytes)
	case docModel.FormatText, docModel.FormatUnknown:
		return decodePlainText(doc)
	default:
		return "", &ragErrors.UnsupportedFormatError{MimeType: doc.MimeType, Filename: doc.Name}
	}
}

func decodePlainText(doc docModel.Document) (string, error) {
	if !utf8.Valid(doc.RawBytes) {
		return "", &ragErrors.UnsupportedFormatError{MimeType: doc.MimeType, Filename: doc.Name}
	}
	return string(doc.RawBytes), nil
}
