package rag

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/DocRAG/internal/config"
	"github.com/akolanti/DocRAG/internal/domain/docModel"
	"github.com/akolanti/DocRAG/internal/metrics"
	"github.com/akolanti/DocRAG/internal/rag/embedding"
	"github.com/akolanti/DocRAG/internal/rag/extract"
	"github.com/akolanti/DocRAG/internal/rag/ingest"
	"github.com/akolanti/DocRAG/internal/rag/retrieve"
	"github.com/akolanti/DocRAG/internal/rag/vectorDB"
	"github.com/akolanti/DocRAG/pkg/logger_i"
)

/*
ARCHITECTURE NOTE: OPAQUE INTERFACE PATTERN
---------------------------------------------------------

1. Service (Interface):
  - This is the PUBLIC contract the handlers and the MCP server call.
  - It defines the "behavior" (ingest, retrieve, delete).

2. service (Private Struct):
  - This is the PRIVATE implementation.
  - It holds the state (vector store, embedder, status registry).
  - Lowercase so external packages cannot reach the internal
    dependencies directly.

3. Pointer Receiver (*service):
  - By defining methods on (*service), the struct IMPLICITLY satisfies
    the Service interface.

4. Dependency Injection (NewService):
  - The constructor links the private struct to the public interface,
    so the tests can swap the real stores for in-memory ones.
*/

// Service is the full document pipeline: upload to indexed vectors on
// the write side, query embedding to assembled context on the read side.
type Service interface {
	StoreDocument(ctx context.Context, doc docModel.Document, opts docModel.IngestOptions) (docModel.IngestReceipt, error)
	QueryContext(ctx context.Context, query docModel.ContextQuery) []docModel.Match
	AssembleContext(ctx context.Context, query docModel.ContextQuery) string
	DeleteDocument(ctx context.Context, documentId string, ownerId string) error
	Status(ctx context.Context, documentId string) (docModel.DocumentStatus, bool)
}

type service struct {
	store     vectorDB.VectorStore
	embedder  embedding.Embedder
	extractor *extract.Extractor
	writer    *ingest.Writer
	reader    *retrieve.Reader
	statuses  docModel.StatusStore
	indexName string

	docLocks sync.Map //documentId -> *sync.Mutex
	logger   *logger_i.Logger
}

// NewService constructor
func NewService(store vectorDB.VectorStore, em embedding.Embedder, extractor *extract.Extractor, statuses docModel.StatusStore) Service {
	return &service{
		store:     store,
		embedder:  em,
		extractor: extractor,
		writer:    ingest.NewWriter(store, em, config.VectorIndexName),
		reader:    retrieve.NewReader(store, config.VectorIndexName),
		statuses:  statuses,
		indexName: config.VectorIndexName,
		logger:    logger_i.NewLogger("RAG Service :"),
	}
}

// StoreDocument runs the full ingestion pipeline for one document.
// Concurrent calls for the same document id serialize on a per-document
// lock; the later caller wins because its version stamp is newer.
func (s *service) StoreDocument(ctx context.Context, doc docModel.Document, opts docModel.IngestOptions) (docModel.IngestReceipt, error) {
	inMethodLogger := s.logger.With("documentId", doc.Id, "filename", doc.Name)

	metrics.IncrementActiveIngestions()
	start := time.Now()
	defer func() {
		metrics.DecrementActiveIngestions()
		metrics.CaptureIngestMetrics(doc.MimeType, time.Since(start))
	}()

	unlock := s.lockDocument(doc.Id)
	defer unlock()

	version := time.Now().UnixNano()
	s.saveStatus(ctx, doc, docModel.StateProcessing, 0, version)

	if err := s.store.EnsureIndex(ctx, s.indexName, uint64(config.EmbeddingOutputDimensionality)); err != nil {
		return s.failIngestion(ctx, doc, version, err, "INDEX_FAILURE")
	}

	text, err := s.executeExtractionStep(ctx, inMethodLogger, doc, opts.VisionModel)
	if err != nil {
		return s.failIngestion(ctx, doc, version, err, "EXTRACTION_FAILURE")
	}

	chunks := s.executeChunkStep(text)
	inMethodLogger.Debug("Document chunked", "chunks", len(chunks))

	written, err := s.writer.WriteDocument(ctx, doc, chunks, version)
	if err != nil {
		return s.failIngestion(ctx, doc, version, err, "WRITE_FAILURE")
	}

	s.saveStatus(ctx, doc, docModel.StateIngested, written, version)
	metrics.RecordDocumentIngested(doc.MimeType, "success")
	metrics.AddChunksUpserted(written)

	return ingestReceipt(doc, written), nil
}

// QueryContext embeds the query and returns the qualifying matches.
// Read-side failures degrade to an empty result instead of erroring: a
// caller mid-conversation gets "no context" rather than a 500.
func (s *service) QueryContext(ctx context.Context, query docModel.ContextQuery) []docModel.Match {
	vector, err := s.executeQueryEmbeddingStep(ctx, query.Query)
	if err != nil {
		s.logger.Error("QUERY_EMBEDDING_FAILURE", "error", err)
		return []docModel.Match{}
	}

	topK := query.TopK
	if topK <= 0 {
		topK = config.RetrievalTopK
	}
	return s.reader.Query(ctx, vector, queryFilter(query), topK)
}

// AssembleContext returns the matched chunk texts joined into a single
// prompt-ready block. Empty when nothing matched or retrieval failed.
func (s *service) AssembleContext(ctx context.Context, query docModel.ContextQuery) string {
	return retrieve.AssembleContext(s.QueryContext(ctx, query))
}

// DeleteDocument removes every vector for the document and drops its
// status record.
func (s *service) DeleteDocument(ctx context.Context, documentId string, ownerId string) error {
	unlock := s.lockDocument(documentId)
	defer unlock()

	filter := docModel.MatchFilter{DocumentId: documentId, OwnerId: ownerId}
	if err := s.store.DeleteByFilter(ctx, s.indexName, filter); err != nil {
		s.logger.Error("DELETE_FAILURE", "documentId", documentId, "error", err)
		return err
	}
	s.statuses.DeleteStatus(ctx, documentId)
	return nil
}

func (s *service) Status(ctx context.Context, documentId string) (docModel.DocumentStatus, bool) {
	return s.statuses.GetStatus(ctx, documentId)
}
