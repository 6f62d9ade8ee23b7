// Package memoryDB is an in-process VectorStore used by tests and as a
// local development fallback when no qdrant instance is reachable.
package memoryDB

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/akolanti/DocRAG/internal/domain/docModel"
	"github.com/akolanti/DocRAG/internal/domain/ragErrors"
	"github.com/akolanti/DocRAG/internal/rag/vectorDB"
)

type index struct {
	dimension uint64
	records   map[string]docModel.VectorRecord //keyed by deterministic vector id
}

type Store struct {
	mu      sync.RWMutex
	indexes map[string]*index
}

func NewStore() *Store {
	return &Store{indexes: make(map[string]*index)}
}

func (s *Store) EnsureIndex(ctx context.Context, indexName string, dimension uint64) error {
	if indexName == "" {
		return &ragErrors.IndexError{Index: indexName, Err: fmt.Errorf("empty index name")}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.indexes[indexName]; exists {
		return nil
	}
	s.indexes[indexName] = &index{
		dimension: dimension,
		records:   make(map[string]docModel.VectorRecord),
	}
	return nil
}

func (s *Store) UpsertBatch(ctx context.Context, indexName string, records []docModel.VectorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, exists := s.indexes[indexName]
	if !exists {
		return fmt.Errorf("index %q does not exist", indexName)
	}
	for _, record := range records {
		if uint64(len(record.Values)) != idx.dimension {
			return fmt.Errorf("vector %q has width %d, index expects %d", record.Id, len(record.Values), idx.dimension)
		}
		idx.records[record.Id] = record
	}
	return nil
}

func (s *Store) Query(ctx context.Context, indexName string, vector []float32, filter docModel.MatchFilter, topK int) ([]docModel.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, exists := s.indexes[indexName]
	if !exists {
		return nil, fmt.Errorf("index %q does not exist", indexName)
	}

	var matches []docModel.Match
	for _, record := range idx.records {
		if !matchesFilter(record.Metadata, filter) {
			continue
		}
		matches = append(matches, docModel.Match{
			Text:     record.Metadata.Text,
			Score:    cosine(vector, record.Values),
			Metadata: record.Metadata,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

func (s *Store) DeleteByFilter(ctx context.Context, indexName string, filter docModel.MatchFilter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, exists := s.indexes[indexName]
	if !exists {
		return fmt.Errorf("index %q does not exist", indexName)
	}
	for id, record := range idx.records {
		if matchesFilter(record.Metadata, filter) {
			delete(idx.records, id)
		}
	}
	return nil
}

// Count reports the stored vector count for a document; test helper.
func (s *Store) Count(indexName string, documentId string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, exists := s.indexes[indexName]
	if !exists {
		return 0
	}
	count := 0
	for _, record := range idx.records {
		if documentId == "" || record.Metadata.DocumentId == documentId {
			count++
		}
	}
	return count
}

func matchesFilter(meta docModel.ChunkMetadata, filter docModel.MatchFilter) bool {
	if filter.DocumentId != "" && meta.DocumentId != filter.DocumentId {
		return false
	}
	if filter.OwnerId != "" && meta.OwnerId != filter.OwnerId {
		return false
	}
	if filter.MimeType != "" && meta.MimeType != filter.MimeType {
		return false
	}
	if filter.IngestVersion != 0 && meta.IngestVersion != filter.IngestVersion {
		return false
	}
	if !filter.IngestedAfter.IsZero() && meta.IngestedAt < filter.IngestedAfter.Unix() {
		return false
	}
	if !filter.IngestedBefore.IsZero() && meta.IngestedAt > filter.IngestedBefore.Unix() {
		return false
	}
	return true
}

func cosine(a []float32, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

var _ vectorDB.VectorStore = (*Store)(nil)
