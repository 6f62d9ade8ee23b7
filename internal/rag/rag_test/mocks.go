package rag_test

import (
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/DocRAG/internal/config"
	"github.com/akolanti/DocRAG/internal/domain/docModel"
	"github.com/akolanti/DocRAG/internal/rag/vectorDB/memoryDB"
)

// MockEmbedder implements embedding.Embedder with deterministic vectors:
// identical text always embeds to the identical vector, so a query for a
// stored chunk's text scores 1.0 against it.
type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, query string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return testVector(query), nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, texts)
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = testVector(text)
	}
	return vectors, nil
}

// testVector hashes the text into a sparse index-width vector.
func testVector(text string) []float32 {
	v := make([]float32, config.EmbeddingOutputDimensionality)
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()
	for i := 0; i < 8; i++ {
		v[(seed+uint32(i)*31)%uint32(len(v))] = float32(seed%97+1) / 97
	}
	return v
}

// overlapTrackingStore wraps the in-memory store and flags any two batch
// writes running at the same time. writeDelay widens the window so an
// unserialized pair of ingestions would reliably collide.
type overlapTrackingStore struct {
	*memoryDB.Store
	inflight   atomic.Int32
	overlapped atomic.Bool
	writeDelay time.Duration
}

func (s *overlapTrackingStore) UpsertBatch(ctx context.Context, indexName string, records []docModel.VectorRecord) error {
	if s.inflight.Add(1) > 1 {
		s.overlapped.Store(true)
	}
	defer s.inflight.Add(-1)

	time.Sleep(s.writeDelay)
	return s.Store.UpsertBatch(ctx, indexName, records)
}

// MockStatusStore implements docModel.StatusStore in memory.
type MockStatusStore struct {
	mu       sync.Mutex
	statuses map[string]docModel.DocumentStatus
}

func NewMockStatusStore() *MockStatusStore {
	return &MockStatusStore{statuses: make(map[string]docModel.DocumentStatus)}
}

func (m *MockStatusStore) GetStatus(ctx context.Context, documentId string) (docModel.DocumentStatus, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status, ok := m.statuses[documentId]
	return status, ok
}

func (m *MockStatusStore) SaveStatus(ctx context.Context, status docModel.DocumentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses[status.DocumentId] = status
	return nil
}

func (m *MockStatusStore) DeleteStatus(ctx context.Context, documentId string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.statuses, documentId)
}
