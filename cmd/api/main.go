// @title           Document RAG API
// @version         1.0
// @description     This API ingests documents into a vector index and retrieves context for RAG queries.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email   ank.github@gmail.com

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/DocRAG/internal/config"
	"github.com/akolanti/DocRAG/internal/data/redisStore"
	"github.com/akolanti/DocRAG/internal/data/store"
	"github.com/akolanti/DocRAG/internal/domain/docModel"
	"github.com/akolanti/DocRAG/internal/handlers"
	"github.com/akolanti/DocRAG/internal/mcpserver"
	"github.com/akolanti/DocRAG/internal/rag"
	"github.com/akolanti/DocRAG/internal/rag/embedding"
	"github.com/akolanti/DocRAG/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/DocRAG/internal/rag/embedding/openaiEmbedding"
	"github.com/akolanti/DocRAG/internal/rag/extract"
	"github.com/akolanti/DocRAG/internal/rag/extract/openaiVision"
	"github.com/akolanti/DocRAG/internal/rag/vectorDB"
	"github.com/akolanti/DocRAG/internal/rag/vectorDB/memoryDB"
	"github.com/akolanti/DocRAG/internal/rag/vectorDB/qdrantDB"
	"github.com/akolanti/DocRAG/internal/server"
	"github.com/akolanti/DocRAG/pkg/logger_i"
)

var (
	listenAddr string
	mcpMode    bool
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.BoolVar(&mcpMode, "mcp", false, "serve the retrieval tool over MCP stdio instead of http")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//status registry, redis with in-memory fallback
	var statusStore docModel.StatusStore
	redis, err := redisStore.NewStore(serviceContext, config.RedisStatusStore)
	if err != nil {
		logger.Error("Redis store is offline, statuses will not survive a restart", "error", err)
		statusStore = store.InitInMemoryStatusStore()
	} else {
		defer redis.Close()
		statusStore = store.NewRedisStatusStore(redis)
	}

	//vector store, qdrant with in-memory fallback
	var vectorStore vectorDB.VectorStore
	qdrant, err := qdrantDB.NewStore(qdrantDB.Config{
		Host:     config.Env("QDRANT_HOST", config.QdrantHost),
		Port:     config.QdrantGrpcPort,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: config.QdrantPoolSize,
	})
	if err != nil {
		logger.Error("Qdrant is offline, falling back to the in-memory store", "error", err)
		vectorStore = memoryDB.NewStore()
	} else {
		defer qdrant.Close()
		vectorStore = qdrant
	}

	embeddingService, visionClient := initProviders(serviceContext, logger)
	if embeddingService == nil {
		logger.Error("No embedding provider configured. Shutting down.")
		return
	}

	ragService := rag.NewService(vectorStore, embeddingService, extract.NewExtractor(visionClient), statusStore)

	if mcpMode {
		if err := mcpserver.NewServer(ragService).Run(serviceContext); err != nil {
			logger.Error("MCP server stopped", "error", err)
		}
		return
	}

	handlers.InitDocumentHandler(ragService)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

// initProviders picks the embedding provider by which api key is present.
// OpenAI wins when both are set. The vision client is optional; without it
// image uploads fail with an extraction error instead of at startup.
func initProviders(ctx context.Context, logger *logger_i.Logger) (embedding.Embedder, extract.VisionDescriber) {
	openaiKey := os.Getenv("OPENAI_API_KEY")
	googleKey := os.Getenv("GOOGLE_API_KEY")

	var visionClient extract.VisionDescriber
	if openaiKey != "" {
		vc, err := openaiVision.NewClient(openaiKey)
		if err != nil {
			logger.Warn("Vision client unavailable", "error", err)
		} else {
			visionClient = vc
		}
	}

	if openaiKey != "" {
		embedder, err := openaiEmbedding.NewClient(openaiKey, config.OpenAIEmbeddingModel)
		if err == nil {
			logger.Info("Using OpenAI embeddings", "model", config.OpenAIEmbeddingModel)
			return embedder, visionClient
		}
		logger.Error("OpenAI embedding client failed", "error", err)
	}

	if googleKey != "" {
		embedder, err := googleEmbedding.NewClient(ctx, googleKey, config.GoogleEmbeddingModel)
		if err == nil {
			logger.Info("Using Google embeddings", "model", config.GoogleEmbeddingModel)
			return embedder, visionClient
		}
		logger.Error("Google embedding client failed", "error", err)
	}

	return nil, visionClient
}
