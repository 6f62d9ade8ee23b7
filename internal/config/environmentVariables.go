package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//chunking defaults
	ChunkSize    = 1000
	ChunkOverlap = 200

	//writer defaults
	UpsertBatchSize  = 100
	BatchUpsertDelay = 100 * time.Millisecond

	//retrieval defaults
	RetrievalTopK              = 5
	ScoreThreshold     float32 = 0.7
	FallbackMatchCount         = 2

	//the embedding width is fixed at index-creation time
	//both providers are asked for this exact output dimensionality
	EmbeddingOutputDimensionality int32 = 1536
	VectorIndexName                     = "document-chunks"

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	MaxUploadBytes = 32 << 20 //32mb

	//vectorDB
	QdrantHost     = ""
	QdrantGrpcPort = 6334
	QdrantUseTLS   = false
	QdrantPoolSize = 1 //2-5 is preferred for prod according to documentation

	//embeddings
	OpenAIEmbeddingModel = "text-embedding-3-small"
	GoogleEmbeddingModel = "gemini-embedding-001"

	//vision extraction
	DefaultVisionModel = "gpt-4-vision-preview"
	VisionInstruction  = "Describe the content of this image, focusing on any text, numbers, or charts."

	PDFPageTimeout = 10 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	RedisPassword    = ""
	RedisStatusStore = 0
	RedisStatusTTL   = 7 * 24 * time.Hour

	//auth
	NoAuthBypass = true
	AuthToken    = ""
)

// Env reads an environment variable with a fallback default.
func Env(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
