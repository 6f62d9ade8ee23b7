package store

import (
	"context"
	"sync"

	"github.com/akolanti/DocRAG/internal/domain/docModel"
	"github.com/akolanti/DocRAG/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem StatusStore")

// InMemoryStatusStore is the fallback registry when redis is offline.
// Statuses do not survive a restart.
type InMemoryStatusStore struct {
	statusMutex *sync.RWMutex
	statusMap   map[string]docModel.DocumentStatus
}

func InitInMemoryStatusStore() *InMemoryStatusStore {
	return &InMemoryStatusStore{
		statusMutex: new(sync.RWMutex),
		statusMap:   make(map[string]docModel.DocumentStatus),
	}
}

func (store *InMemoryStatusStore) SaveStatus(ctx context.Context, status docModel.DocumentStatus) error {
	store.statusMutex.Lock()
	defer store.statusMutex.Unlock()
	store.statusMap[status.DocumentId] = status
	inMemLogger.Debug("Saved document status", "documentId", status.DocumentId, "state", status.State)
	return nil
}

func (store *InMemoryStatusStore) GetStatus(ctx context.Context, documentId string) (docModel.DocumentStatus, bool) {
	store.statusMutex.RLock()
	defer store.statusMutex.RUnlock()
	result, found := store.statusMap[documentId]
	return result, found
}

func (store *InMemoryStatusStore) DeleteStatus(ctx context.Context, documentId string) {
	store.statusMutex.Lock()
	defer store.statusMutex.Unlock()
	delete(store.statusMap, documentId)
}

var _ docModel.StatusStore = (*InMemoryStatusStore)(nil)
