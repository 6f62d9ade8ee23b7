package extract

import (
	"context"
	"errors"
	"strings"

	"github.com/akolanti/DocRAG/internal/config"
	"github.com/akolanti/DocRAG/internal/domain/ragErrors"
)

// extractImage asks a vision-capable model to describe the image and uses
// that description as the "extracted text". This is the one extraction
// path with non-deterministic output and external latency.
func (e *Extractor) extractImage(ctx context.Context, mimeType string, image []byte, visionModel string) (string, error) {
	if e.vision == nil {
		return "", &ragErrors.ExtractionError{Format: "image", Err: errors.New("no vision client configured")}
	}
	if visionModel == "" {
		visionModel = config.DefaultVisionModel
	}

	description, err := e.vision.DescribeImage(ctx, visionModel, mimeType, image)
	if err != nil {
		e.logger.Error("vision extraction failed", "model", visionModel, "error", err)
		return "", &ragErrors.ExtractionError{Format: "image", Err: err}
	}
	if strings.TrimSpace(description) == "" {
		return "", &ragErrors.ExtractionError{Format: "image", Err: errors.New("empty description from vision model")}
	}
	return description, nil
}
