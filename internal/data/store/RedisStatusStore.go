package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/DocRAG/internal/config"
	"github.com/akolanti/DocRAG/internal/data/redisStore"
	"github.com/akolanti/DocRAG/internal/domain/docModel"
	"github.com/akolanti/DocRAG/pkg/logger_i"
)

const statusKeyPrefix = "docstatus:"

type RedisStatusStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func NewRedisStatusStore(store *redisStore.Store) *RedisStatusStore {
	return &RedisStatusStore{
		store:  store,
		logger: logger_i.NewLogger("StatusStore"),
	}
}

func (s *RedisStatusStore) SaveStatus(ctx context.Context, status docModel.DocumentStatus) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "documentId", status.DocumentId)
	log.Debug("saving document status", "state", status.State)

	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, statusKeyPrefix+status.DocumentId, data, config.RedisStatusTTL)
}

func (s *RedisStatusStore) GetStatus(ctx context.Context, documentId string) (docModel.DocumentStatus, bool) {
	var status docModel.DocumentStatus

	val, err := s.store.Get(ctx, statusKeyPrefix+documentId)
	if s.store.IsNil(err) {
		return status, false
	} else if err != nil {
		s.logger.Error("Error reading document status", "documentId", documentId, "error", err)
		return status, false
	}

	if err = json.Unmarshal([]byte(val), &status); err != nil {
		return status, false
	}
	return status, true
}

func (s *RedisStatusStore) DeleteStatus(ctx context.Context, documentId string) {
	if err := s.store.Del(ctx, statusKeyPrefix+documentId); err != nil {
		s.logger.Error("Error deleting document status", "documentId", documentId, "error", err)
	}
}

var _ docModel.StatusStore = (*RedisStatusStore)(nil)
