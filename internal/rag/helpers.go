package rag

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/DocRAG/internal/config"
	"github.com/akolanti/DocRAG/internal/domain/docModel"
	"github.com/akolanti/DocRAG/internal/metrics"
	"github.com/akolanti/DocRAG/internal/rag/chunker"
	"github.com/akolanti/DocRAG/pkg/logger_i"
)

func queryFilter(query docModel.ContextQuery) docModel.MatchFilter {
	return docModel.MatchFilter{
		DocumentId:     query.DocumentId,
		OwnerId:        query.OwnerId,
		MimeType:       query.MimeType,
		IngestedAfter:  query.IngestedAfter,
		IngestedBefore: query.IngestedBefore,
	}
}

func ingestReceipt(doc docModel.Document, chunkCount int) docModel.IngestReceipt {
	return docModel.IngestReceipt{
		Success:     true,
		DocumentId:  doc.Id,
		ChunkCount:  chunkCount,
		MimeType:    doc.MimeType,
		ProcessedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// lockDocument serializes pipeline runs per document id. The mutex for a
// document is never evicted; the set of distinct ids per process life is
// small enough not to matter.
func (s *service) lockDocument(documentId string) func() {
	entry, _ := s.docLocks.LoadOrStore(documentId, &sync.Mutex{})
	mu := entry.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *service) saveStatus(ctx context.Context, doc docModel.Document, state docModel.IngestState, chunkCount int, version int64) {
	err := s.statuses.SaveStatus(ctx, docModel.DocumentStatus{
		DocumentId:    doc.Id,
		OwnerId:       doc.OwnerId,
		Filename:      doc.Name,
		MimeType:      doc.MimeType,
		State:         state,
		ChunkCount:    chunkCount,
		IngestVersion: version,
		ProcessedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("Failed to save document status", "documentId", doc.Id, "error", err)
	}
}

func (s *service) failIngestion(ctx context.Context, doc docModel.Document, version int64, err error, message string) (docModel.IngestReceipt, error) {
	s.logger.Error(message, "documentId", doc.Id, "error", err)
	s.saveStatus(ctx, doc, docModel.StateFailed, 0, version)
	metrics.RecordDocumentIngested(doc.MimeType, "failed")

	return docModel.IngestReceipt{
		Success:    false,
		DocumentId: doc.Id,
		MimeType:   doc.MimeType,
	}, err
}

func (s *service) executeExtractionStep(ctx context.Context, log *logger_i.Logger, doc docModel.Document, visionModel string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("extraction", time.Since(start)) }()

	text, err := s.extractor.Extract(ctx, doc, visionModel)
	if err == nil {
		log.Debug("Extraction complete", "chars", len(text))
	}
	return text, err
}

func (s *service) executeChunkStep(text string) []docModel.Chunk {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("chunking", time.Since(start)) }()

	return chunker.Split(text, config.ChunkSize, config.ChunkOverlap)
}

func (s *service) executeQueryEmbeddingStep(ctx context.Context, query string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.GetEmbedding(ctx, query)
}
