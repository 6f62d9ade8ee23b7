package vectorDB

import (
	"context"

	"github.com/akolanti/DocRAG/internal/domain/docModel"
)

// VectorStore is the boundary to the remote vector database. The store
// owns chunk vectors once upserted; the pipeline keeps no references to
// them after a successful write.
type VectorStore interface {
	// EnsureIndex lists existing indexes and creates the named index only
	// if absent. Creation parameters are fixed at first-creation time; a
	// pre-existing index with a different width is not validated here and
	// surfaces later as a write-time error.
	EnsureIndex(ctx context.Context, indexName string, dimension uint64) error

	// UpsertBatch writes one batch of vectors keyed by their deterministic
	// ids, overwriting any records with the same ids.
	UpsertBatch(ctx context.Context, indexName string, records []docModel.VectorRecord) error

	// Query runs a similarity search restricted by the metadata filter and
	// returns up to topK matches with their scores and stored metadata.
	Query(ctx context.Context, indexName string, vector []float32, filter docModel.MatchFilter, topK int) ([]docModel.Match, error)

	// DeleteByFilter bulk-removes every vector whose metadata matches the
	// filter.
	DeleteByFilter(ctx context.Context, indexName string, filter docModel.MatchFilter) error
}
