// Package ingest writes a document's chunk vectors into the vector store:
// deterministic ids, fixed-size batches, pacing between batches to stay
// under provider rate limits.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/akolanti/DocRAG/internal/config"
	"github.com/akolanti/DocRAG/internal/domain/docModel"
	"github.com/akolanti/DocRAG/internal/domain/ragErrors"
	"github.com/akolanti/DocRAG/internal/metrics"
	"github.com/akolanti/DocRAG/internal/rag/embedding"
	"github.com/akolanti/DocRAG/internal/rag/vectorDB"
	"github.com/akolanti/DocRAG/pkg/logger_i"
	"golang.org/x/time/rate"
)

type Writer struct {
	store     vectorDB.VectorStore
	embedder  embedding.Embedder
	indexName string
	batchSize int
	pause     func(ctx context.Context) error //inter-batch pacing
	logger    *logger_i.Logger
}

func NewWriter(store vectorDB.VectorStore, embedder embedding.Embedder, indexName string) *Writer {
	// Burst 1 means the first batch goes out immediately and every
	// following batch waits out the configured delay.
	pacer := rate.NewLimiter(rate.Every(config.BatchUpsertDelay), 1)

	return &Writer{
		store:     store,
		embedder:  embedder,
		indexName: indexName,
		batchSize: config.UpsertBatchSize,
		pause:     pacer.Wait,
		logger:    logger_i.NewLogger("Vector Writer"),
	}
}

// VectorID derives the stable id for one chunk of a document. Ids repeat
// across re-ingestions of the same document, so a re-upload overwrites
// instead of appending.
func VectorID(documentId string, chunkIndex int) string {
	return fmt.Sprintf("%s-chunk-%d", documentId, chunkIndex)
}

// WriteDocument embeds every chunk and upserts the vectors in sequential
// batches. A failed batch aborts the remainder; batches already written
// stay written, and a best-effort cleanup of this ingestion's vectors is
// attempted before the error is reported.
func (w *Writer) WriteDocument(ctx context.Context, doc docModel.Document, chunks []docModel.Chunk, version int64) (int, error) {
	ingestedAt := time.Now().Unix()
	written := 0

	for batchNum := 0; written < len(chunks); batchNum++ {
		end := written + w.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[written:end]

		//pacer admits the first batch instantly, later ones wait out the delay
		if err := w.pause(ctx); err != nil {
			return written, w.abort(ctx, doc, version, &ragErrors.WriteError{BatchesWritten: batchNum, Err: err})
		}

		records, err := w.buildBatch(ctx, doc, batch, version, ingestedAt)
		if err != nil {
			return written, w.abort(ctx, doc, version, err)
		}

		w.logger.Debug("Upserting batch", "batch", batchNum, "size", len(records))
		start := time.Now()
		err = w.store.UpsertBatch(ctx, w.indexName, records)
		metrics.CaptureExecutionMetrics("vector_upsert", time.Since(start))
		if err != nil {
			return written, w.abort(ctx, doc, version, &ragErrors.WriteError{BatchesWritten: batchNum, Err: err})
		}

		written = end
	}

	return len(chunks), nil
}

func (w *Writer) buildBatch(ctx context.Context, doc docModel.Document, batch []docModel.Chunk, version int64, ingestedAt int64) ([]docModel.VectorRecord, error) {
	texts := make([]string, len(batch))
	for i, chunk := range batch {
		texts[i] = chunk.Text
	}

	start := time.Now()
	vectors, err := w.embedder.BatchEmbedding(ctx, texts)
	metrics.CaptureExecutionMetrics("embedding", time.Since(start))
	if err != nil {
		return nil, &ragErrors.EmbeddingError{Err: err}
	}
	if len(vectors) != len(batch) {
		return nil, &ragErrors.EmbeddingError{Err: fmt.Errorf("mismatch: got %d vectors for %d chunks", len(vectors), len(batch))}
	}

	records := make([]docModel.VectorRecord, len(batch))
	for i, chunk := range batch {
		records[i] = docModel.VectorRecord{
			Id:     VectorID(doc.Id, chunk.Index),
			Values: vectors[i],
			Metadata: docModel.ChunkMetadata{
				OwnerId:       doc.OwnerId,
				DocumentId:    doc.Id,
				Filename:      doc.Name,
				ChunkIndex:    chunk.Index,
				MimeType:      doc.MimeType,
				IngestedAt:    ingestedAt,
				IngestVersion: version,
				CharCount:     chunk.CharCount,
				Text:          chunk.Text,
			},
		}
	}
	return records, nil
}

// abort removes whatever this ingestion version already committed so a
// failed ingestion does not leave a half-written chunk set queryable.
// Cleanup is best effort; the original error always wins.
func (w *Writer) abort(ctx context.Context, doc docModel.Document, version int64, cause error) error {
	w.logger.Error("Ingestion aborted", "document", doc.Id, "error", cause)

	err := w.store.DeleteByFilter(ctx, w.indexName, docModel.MatchFilter{
		DocumentId:    doc.Id,
		IngestVersion: version,
	})
	if err != nil {
		w.logger.Error("Partial-write cleanup failed", "document", doc.Id, "error", err)
	}
	return cause
}
