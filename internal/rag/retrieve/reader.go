// Package retrieve runs similarity queries against the vector store and
// assembles the retrieved chunk texts into an LLM-ready context. Errors on
// this path never propagate: retrieval must not block generation, so
// every failure degrades to "no context found".
package retrieve

import (
	"context"
	"sort"
	"time"

	"github.com/akolanti/DocRAG/internal/config"
	"github.com/akolanti/DocRAG/internal/domain/docModel"
	"github.com/akolanti/DocRAG/internal/metrics"
	"github.com/akolanti/DocRAG/internal/rag/vectorDB"
	"github.com/akolanti/DocRAG/pkg/logger_i"
)

type Reader struct {
	store          vectorDB.VectorStore
	indexName      string
	scoreThreshold float32
	fallbackCount  int
	logger         *logger_i.Logger
}

func NewReader(store vectorDB.VectorStore, indexName string) *Reader {
	return &Reader{
		store:          store,
		indexName:      indexName,
		scoreThreshold: config.ScoreThreshold,
		fallbackCount:  config.FallbackMatchCount,
		logger:         logger_i.NewLogger("Vector Reader"),
	}
}

// Query returns up to topK matches ordered by descending score. Matches
// below the score threshold are dropped unless nothing qualifies, in
// which case the top fallbackCount candidates are kept regardless of
// score. Store errors degrade to an empty result.
func (r *Reader) Query(ctx context.Context, vector []float32, filter docModel.MatchFilter, topK int) []docModel.Match {
	if topK <= 0 {
		topK = config.RetrievalTopK
	}

	start := time.Now()
	candidates, err := r.store.Query(ctx, r.indexName, vector, filter, topK)
	metrics.CaptureExecutionMetrics("vector_search", time.Since(start))
	if err != nil {
		r.logger.Error("Vector query failed, returning no context", "error", err)
		return []docModel.Match{}
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })

	qualifying := make([]docModel.Match, 0, len(candidates))
	for _, match := range candidates {
		if match.Score >= r.scoreThreshold {
			qualifying = append(qualifying, match)
		}
	}

	if len(qualifying) == 0 && len(candidates) > 0 {
		fallback := r.fallbackCount
		if fallback > len(candidates) {
			fallback = len(candidates)
		}
		qualifying = append(qualifying, candidates[:fallback]...)
		r.logger.Debug("No matches above threshold, using fallback", "kept", len(qualifying))
	}

	return qualifying
}
