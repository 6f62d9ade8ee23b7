package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/akolanti/DocRAG/internal/config"
	"github.com/akolanti/DocRAG/internal/data/redisStore"
	"github.com/akolanti/DocRAG/internal/data/store"
	"github.com/akolanti/DocRAG/internal/domain/docModel"
)

func testStatus(documentId string) docModel.DocumentStatus {
	return docModel.DocumentStatus{
		DocumentId:    documentId,
		OwnerId:       "user-1",
		Filename:      "report.pdf",
		MimeType:      "application/pdf",
		State:         docModel.StateIngested,
		ChunkCount:    12,
		IngestVersion: 42,
		ProcessedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

func TestRedisStatusStore_Lifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	internalStore := redisStore.NewTestStore(client)
	statusStore := store.NewRedisStatusStore(internalStore)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	status := testStatus("doc_abc_123")

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		if err := statusStore.SaveStatus(ctx, status); err != nil {
			t.Fatalf("SaveStatus failed: %v", err)
		}

		retrieved, found := statusStore.GetStatus(ctx, status.DocumentId)
		if !found {
			t.Fatal("Status was saved but not found in Redis")
		}
		if retrieved.State != status.State {
			t.Errorf("State mismatch! Got %s, want %s", retrieved.State, status.State)
		}
		if retrieved.ChunkCount != status.ChunkCount {
			t.Errorf("ChunkCount mismatch! Got %d, want %d", retrieved.ChunkCount, status.ChunkCount)
		}
		if retrieved.IngestVersion != status.IngestVersion {
			t.Errorf("IngestVersion mismatch! Got %d, want %d", retrieved.IngestVersion, status.IngestVersion)
		}
	})

	t.Run("Get Non-Existent Status", func(t *testing.T) {
		_, found := statusStore.GetStatus(ctx, "no-such-document")
		if found {
			t.Error("Expected not found for unknown document id")
		}
	})

	t.Run("Overwrite Keeps Latest", func(t *testing.T) {
		updated := status
		updated.State = docModel.StateFailed
		updated.ChunkCount = 0
		if err := statusStore.SaveStatus(ctx, updated); err != nil {
			t.Fatalf("SaveStatus failed: %v", err)
		}

		retrieved, found := statusStore.GetStatus(ctx, status.DocumentId)
		if !found {
			t.Fatal("Status missing after overwrite")
		}
		if retrieved.State != docModel.StateFailed {
			t.Errorf("Overwrite did not stick, state got %s", retrieved.State)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		statusStore.DeleteStatus(ctx, status.DocumentId)
		if _, found := statusStore.GetStatus(ctx, status.DocumentId); found {
			t.Error("Status still present after delete")
		}
	})

	t.Run("Entry Expires", func(t *testing.T) {
		fresh := testStatus("doc_expiring")
		if err := statusStore.SaveStatus(ctx, fresh); err != nil {
			t.Fatalf("SaveStatus failed: %v", err)
		}
		mr.FastForward(config.RedisStatusTTL + time.Minute)
		if _, found := statusStore.GetStatus(ctx, fresh.DocumentId); found {
			t.Error("Status survived past its TTL")
		}
	})
}

func TestInMemoryStatusStore(t *testing.T) {
	statusStore := store.InitInMemoryStatusStore()
	ctx := context.Background()
	status := testStatus("doc-1")

	if err := statusStore.SaveStatus(ctx, status); err != nil {
		t.Fatalf("SaveStatus failed: %v", err)
	}
	retrieved, found := statusStore.GetStatus(ctx, "doc-1")
	if !found || retrieved.ChunkCount != 12 {
		t.Fatalf("Roundtrip failed: %+v found=%v", retrieved, found)
	}

	statusStore.DeleteStatus(ctx, "doc-1")
	if _, found := statusStore.GetStatus(ctx, "doc-1"); found {
		t.Error("Status still present after delete")
	}
}
