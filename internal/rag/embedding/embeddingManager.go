package embedding

import "context"

// Embedder turns text into fixed-width vectors. BatchEmbedding must
// preserve input order exactly; vector i always belongs to texts[i].
type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}
