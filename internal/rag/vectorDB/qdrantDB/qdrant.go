package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/akolanti/DocRAG/internal/config"
	"github.com/akolanti/DocRAG/internal/domain/docModel"
	"github.com/akolanti/DocRAG/internal/domain/ragErrors"
	"github.com/akolanti/DocRAG/internal/rag/vectorDB"
	"github.com/akolanti/DocRAG/pkg/logger_i"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// pointNamespace maps the deterministic vector id string ("{doc}-chunk-{i}")
// onto the UUID point ids qdrant requires. Same input, same UUID, so
// re-ingestion still overwrites instead of appending.
var pointNamespace = uuid.MustParse("7b1de1a6-36ce-4c5d-9c3e-9f5a1d6d0c42")

type Store struct {
	client    *qdrant.Client
	dimension uint64
	logger    *logger_i.Logger
}

type Config struct {
	Host     string
	Port     int
	UseTLS   bool
	PoolSize uint
}

// NewStore dials qdrant and returns the store. The client is constructed
// once at startup and shared; Close releases it on shutdown.
func NewStore(cfg Config) (*Store, error) {
	logger := logger_i.NewLogger("Qdrant")

	host := config.Env("QDRANT_HOST", cfg.Host)
	port := cfg.Port
	if p, err := strconv.Atoi(config.Env("QDRANT_PORT", "")); err == nil {
		port = p
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   cfg.UseTLS,
		PoolSize: cfg.PoolSize,
	})
	if err != nil {
		logger.Error("could not instantiate qdrant client", "error", err)
		return nil, err
	}

	return &Store{
		client:    client,
		dimension: uint64(config.EmbeddingOutputDimensionality),
		logger:    logger,
	}, nil
}

func (db *Store) Close() error {
	db.logger.Info("Closing qdrant client")
	return db.client.Close()
}

func (db *Store) EnsureIndex(ctx context.Context, indexName string, dimension uint64) error {
	if indexName == "" {
		return &ragErrors.IndexError{Index: indexName, Err: errors.New("empty index name")}
	}

	exists, err := db.client.CollectionExists(ctx, indexName)
	if err != nil {
		return &ragErrors.IndexError{Index: indexName, Err: err}
	}
	if exists {
		return nil
	}

	db.logger.Info("Creating collection", "collection", indexName, "dimension", dimension)
	err = db.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: indexName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return &ragErrors.IndexError{Index: indexName, Err: err}
	}
	return nil
}

func (db *Store) UpsertBatch(ctx context.Context, indexName string, records []docModel.VectorRecord) error {
	points := make([]*qdrant.PointStruct, len(records))

	for i, record := range records {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(uuid.NewSHA1(pointNamespace, []byte(record.Id)).String()),
			Vectors: qdrant.NewVectors(record.Values...),
			Payload: qdrant.NewValueMap(map[string]any{
				"vector_id":      record.Id,
				"owner_id":       record.Metadata.OwnerId,
				"document_id":    record.Metadata.DocumentId,
				"filename":       record.Metadata.Filename,
				"chunk_index":    record.Metadata.ChunkIndex,
				"mime_type":      record.Metadata.MimeType,
				"ingested_at":    record.Metadata.IngestedAt,
				"ingest_version": record.Metadata.IngestVersion,
				"char_count":     record.Metadata.CharCount,
				"text":           record.Metadata.Text,
			}),
		}
	}

	_, err := db.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: indexName,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

func (db *Store) Query(ctx context.Context, indexName string, vector []float32, filter docModel.MatchFilter, topK int) ([]docModel.Match, error) {
	result, err := db.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: indexName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(topK)),
		Filter:         buildFilter(filter),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		db.logger.Error("Error querying qdrant", "error", err)
		return nil, err
	}

	matches := make([]docModel.Match, 0, len(result))
	for _, hit := range result {
		meta := payloadToMetadata(hit.Payload)
		matches = append(matches, docModel.Match{
			Text:     meta.Text,
			Score:    hit.Score,
			Metadata: meta,
		})
	}
	return matches, nil
}

func (db *Store) DeleteByFilter(ctx context.Context, indexName string, filter docModel.MatchFilter) error {
	_, err := db.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: indexName,
		Points:         qdrant.NewPointsSelectorFilter(buildFilter(filter)),
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant delete failed: %w", err)
	}
	return nil
}

func buildFilter(filter docModel.MatchFilter) *qdrant.Filter {
	var must []*qdrant.Condition

	if filter.DocumentId != "" {
		must = append(must, qdrant.NewMatch("document_id", filter.DocumentId))
	}
	if filter.OwnerId != "" {
		must = append(must, qdrant.NewMatch("owner_id", filter.OwnerId))
	}
	if filter.MimeType != "" {
		must = append(must, qdrant.NewMatch("mime_type", filter.MimeType))
	}
	if filter.IngestVersion != 0 {
		must = append(must, qdrant.NewMatchInt("ingest_version", filter.IngestVersion))
	}
	if !filter.IngestedAfter.IsZero() || !filter.IngestedBefore.IsZero() {
		timeRange := &qdrant.Range{}
		if !filter.IngestedAfter.IsZero() {
			timeRange.Gte = qdrant.PtrOf(float64(filter.IngestedAfter.Unix()))
		}
		if !filter.IngestedBefore.IsZero() {
			timeRange.Lte = qdrant.PtrOf(float64(filter.IngestedBefore.Unix()))
		}
		must = append(must, qdrant.NewRange("ingested_at", timeRange))
	}

	if len(must) == 0 {
		return nil
	}
	return &qdrant.Filter{Must: must}
}

func payloadToMetadata(payload map[string]*qdrant.Value) docModel.ChunkMetadata {
	return docModel.ChunkMetadata{
		OwnerId:       payload["owner_id"].GetStringValue(),
		DocumentId:    payload["document_id"].GetStringValue(),
		Filename:      payload["filename"].GetStringValue(),
		ChunkIndex:    int(payload["chunk_index"].GetIntegerValue()),
		MimeType:      payload["mime_type"].GetStringValue(),
		IngestedAt:    payload["ingested_at"].GetIntegerValue(),
		IngestVersion: payload["ingest_version"].GetIntegerValue(),
		CharCount:     int(payload["char_count"].GetIntegerValue()),
		Text:          payload["text"].GetStringValue(),
	}
}

var _ vectorDB.VectorStore = (*Store)(nil)
