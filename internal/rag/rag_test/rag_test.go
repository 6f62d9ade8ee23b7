package rag_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/akolanti/DocRAG/internal/config"
	"github.com/akolanti/DocRAG/internal/domain/docModel"
	"github.com/akolanti/DocRAG/internal/domain/ragErrors"
	"github.com/akolanti/DocRAG/internal/rag"
	"github.com/akolanti/DocRAG/internal/rag/extract"
	"github.com/akolanti/DocRAG/internal/rag/vectorDB/memoryDB"
)

type fixture struct {
	service  rag.Service
	store    *memoryDB.Store
	embedder *MockEmbedder
	statuses *MockStatusStore
}

func newFixture() *fixture {
	store := memoryDB.NewStore()
	embedder := &MockEmbedder{}
	statuses := NewMockStatusStore()
	svc := rag.NewService(store, embedder, extract.NewExtractor(nil), statuses)
	return &fixture{service: svc, store: store, embedder: embedder, statuses: statuses}
}

func csvDocument(id string) docModel.Document {
	return docModel.Document{
		Id:       id,
		Name:     "people.csv",
		MimeType: "text/csv",
		OwnerId:  "user-1",
		RawBytes: []byte("name,age\nAlice,30\nBob,25"),
	}
}

func TestStoreDocument_CSV_RoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	receipt, err := f.service.StoreDocument(ctx, csvDocument("doc-1"), docModel.IngestOptions{})
	if err != nil {
		t.Fatalf("StoreDocument: %v", err)
	}
	if !receipt.Success {
		t.Fatal("Receipt should report success")
	}
	if receipt.ChunkCount != 1 {
		t.Fatalf("Small CSV should produce 1 chunk, got %d", receipt.ChunkCount)
	}
	if got := f.store.Count(config.VectorIndexName, "doc-1"); got != 1 {
		t.Fatalf("Stored vector count got %d, want 1", got)
	}

	status, ok := f.statuses.GetStatus(ctx, "doc-1")
	if !ok {
		t.Fatal("Status record missing after ingestion")
	}
	if status.State != docModel.StateIngested {
		t.Errorf("State got %v, want %v", status.State, docModel.StateIngested)
	}
	if status.ChunkCount != 1 {
		t.Errorf("Status chunk count got %d, want 1", status.ChunkCount)
	}

	matches := f.service.QueryContext(ctx, docModel.ContextQuery{Query: "Alice", DocumentId: "doc-1", OwnerId: "user-1"})
	if len(matches) == 0 {
		t.Fatal("Query returned no matches for ingested document")
	}
	if !strings.Contains(matches[0].Text, `"name":"Alice"`) {
		t.Errorf("Match text missing row content: %s", matches[0].Text)
	}
	if matches[0].Metadata.ChunkIndex != 0 {
		t.Errorf("Chunk index got %d, want 0", matches[0].Metadata.ChunkIndex)
	}
}

func TestStoreDocument_ReIngest_Idempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.service.StoreDocument(ctx, csvDocument("doc-1"), docModel.IngestOptions{}); err != nil {
		t.Fatalf("First ingestion: %v", err)
	}
	first := f.store.Count(config.VectorIndexName, "doc-1")

	if _, err := f.service.StoreDocument(ctx, csvDocument("doc-1"), docModel.IngestOptions{}); err != nil {
		t.Fatalf("Second ingestion: %v", err)
	}
	second := f.store.Count(config.VectorIndexName, "doc-1")

	if first != second {
		t.Errorf("Re-ingesting the same document changed the vector count: %d -> %d", first, second)
	}
}

func TestStoreDocument_SeparatorOnlyContent_IngestsZeroChunks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc := docModel.Document{
		Id:       "doc-blank",
		Name:     "blank.txt",
		MimeType: "text/plain",
		OwnerId:  "user-1",
		RawBytes: []byte(strings.Repeat("\n", 2000)),
	}

	receipt, err := f.service.StoreDocument(ctx, doc, docModel.IngestOptions{})
	if err != nil {
		t.Fatalf("StoreDocument: %v", err)
	}
	if !receipt.Success || receipt.ChunkCount != 0 {
		t.Errorf("Unexpected receipt for content with no chunkable text: %+v", receipt)
	}
	if got := f.store.Count(config.VectorIndexName, "doc-blank"); got != 0 {
		t.Errorf("Stored vector count got %d, want 0", got)
	}

	status, ok := f.statuses.GetStatus(ctx, "doc-blank")
	if !ok || status.State != docModel.StateIngested || status.ChunkCount != 0 {
		t.Errorf("Status got %+v, want ingested with 0 chunks", status)
	}
}

func TestStoreDocument_UnsupportedFormat(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc := docModel.Document{
		Id:       "doc-bin",
		Name:     "blob.bin",
		MimeType: "application/octet-stream",
		OwnerId:  "user-1",
		RawBytes: []byte{0xff, 0xfe},
	}

	receipt, err := f.service.StoreDocument(ctx, doc, docModel.IngestOptions{})
	var unsupported *ragErrors.UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Expected UnsupportedFormatError, got %v", err)
	}
	if receipt.Success {
		t.Error("Receipt should report failure")
	}

	status, ok := f.statuses.GetStatus(ctx, "doc-bin")
	if !ok || status.State != docModel.StateFailed {
		t.Errorf("Status after failed ingestion got %+v, want StateFailed", status)
	}
}

func TestDeleteDocument_RemovesVectorsAndStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.service.StoreDocument(ctx, csvDocument("doc-1"), docModel.IngestOptions{}); err != nil {
		t.Fatalf("StoreDocument: %v", err)
	}
	if _, err := f.service.StoreDocument(ctx, csvDocument("doc-2"), docModel.IngestOptions{}); err != nil {
		t.Fatalf("StoreDocument: %v", err)
	}

	if err := f.service.DeleteDocument(ctx, "doc-1", "user-1"); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}

	if got := f.store.Count(config.VectorIndexName, "doc-1"); got != 0 {
		t.Errorf("doc-1 vectors remain after delete: %d", got)
	}
	if got := f.store.Count(config.VectorIndexName, "doc-2"); got != 1 {
		t.Errorf("doc-2 vectors affected by doc-1 delete: %d", got)
	}
	if _, ok := f.statuses.GetStatus(ctx, "doc-1"); ok {
		t.Error("Status record remains after delete")
	}
}

func TestStoreDocument_SameDocumentIngestionsSerialize(t *testing.T) {
	inner := memoryDB.NewStore()
	tracking := &overlapTrackingStore{Store: inner, writeDelay: 20 * time.Millisecond}
	svc := rag.NewService(tracking, &MockEmbedder{}, extract.NewExtractor(nil), NewMockStatusStore())

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.StoreDocument(context.Background(), csvDocument("doc-1"), docModel.IngestOptions{}); err != nil {
				t.Errorf("StoreDocument: %v", err)
			}
		}()
	}
	wg.Wait()

	if tracking.overlapped.Load() {
		t.Error("Concurrent ingestions of the same document wrote to the store at the same time")
	}
	if got := inner.Count(config.VectorIndexName, "doc-1"); got != 1 {
		t.Errorf("Vector count after concurrent ingestions got %d, want 1", got)
	}
}

func TestQueryContext_EmbeddingFailure_DegradesToEmpty(t *testing.T) {
	f := newFixture()
	f.embedder.OnGetEmbedding = func(ctx context.Context, query string) ([]float32, error) {
		return nil, errors.New("quota exhausted")
	}

	matches := f.service.QueryContext(context.Background(), docModel.ContextQuery{Query: "anything"})
	if matches == nil {
		t.Fatal("QueryContext must return an empty slice, not nil")
	}
	if len(matches) != 0 {
		t.Errorf("Expected no matches, got %d", len(matches))
	}
}

func TestAssembleContext_JoinsMatchedChunks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.service.StoreDocument(ctx, csvDocument("doc-1"), docModel.IngestOptions{}); err != nil {
		t.Fatalf("StoreDocument: %v", err)
	}

	assembled := f.service.AssembleContext(ctx, docModel.ContextQuery{Query: "Bob", DocumentId: "doc-1"})
	if !strings.Contains(assembled, `"name":"Bob"`) {
		t.Errorf("Assembled context missing stored content: %s", assembled)
	}

	empty := f.service.AssembleContext(ctx, docModel.ContextQuery{Query: "Bob", DocumentId: "no-such-doc"})
	if empty != "" {
		t.Errorf("Context for unknown document should be empty, got %q", empty)
	}
}
