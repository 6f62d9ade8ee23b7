package memoryDB

import (
	"context"
	"testing"

	"github.com/akolanti/DocRAG/internal/domain/docModel"
)

func record(id string, documentId string, ownerId string, values []float32, text string) docModel.VectorRecord {
	return docModel.VectorRecord{
		Id:     id,
		Values: values,
		Metadata: docModel.ChunkMetadata{
			OwnerId:    ownerId,
			DocumentId: documentId,
			Text:       text,
		},
	}
}

func seededStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	ctx := context.Background()
	if err := s.EnsureIndex(ctx, "idx", 2); err != nil {
		t.Fatalf("EnsureIndex: %v", err)
	}
	err := s.UpsertBatch(ctx, "idx", []docModel.VectorRecord{
		record("doc-a-chunk-0", "doc-a", "user-1", []float32{1, 0}, "aligned"),
		record("doc-a-chunk-1", "doc-a", "user-1", []float32{0.7, 0.7}, "diagonal"),
		record("doc-b-chunk-0", "doc-b", "user-2", []float32{0, 1}, "orthogonal"),
	})
	if err != nil {
		t.Fatalf("UpsertBatch: %v", err)
	}
	return s
}

func TestQuery_RanksByCosineSimilarity(t *testing.T) {
	s := seededStore(t)

	matches, err := s.Query(context.Background(), "idx", []float32{1, 0}, docModel.MatchFilter{}, 3)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("Match count got %d, want 3", len(matches))
	}
	wantOrder := []string{"aligned", "diagonal", "orthogonal"}
	for i, want := range wantOrder {
		if matches[i].Text != want {
			t.Errorf("Match %d got %q, want %q", i, matches[i].Text, want)
		}
	}
	if matches[0].Score < 0.999 {
		t.Errorf("Identical vector should score ~1.0, got %f", matches[0].Score)
	}
}

func TestQuery_FiltersByDocumentAndOwner(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	matches, err := s.Query(ctx, "idx", []float32{1, 0}, docModel.MatchFilter{DocumentId: "doc-a"}, 10)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Document filter got %d matches, want 2", len(matches))
	}

	matches, err = s.Query(ctx, "idx", []float32{1, 0}, docModel.MatchFilter{OwnerId: "user-2"}, 10)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(matches) != 1 || matches[0].Text != "orthogonal" {
		t.Fatalf("Owner filter got %v", matches)
	}
}

func TestQuery_TopKTruncates(t *testing.T) {
	s := seededStore(t)

	matches, err := s.Query(context.Background(), "idx", []float32{1, 0}, docModel.MatchFilter{}, 1)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(matches) != 1 || matches[0].Text != "aligned" {
		t.Fatalf("topK truncation got %v", matches)
	}
}

func TestUpsert_OverwritesById(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	err := s.UpsertBatch(ctx, "idx", []docModel.VectorRecord{
		record("doc-a-chunk-0", "doc-a", "user-1", []float32{0, 1}, "rewritten"),
	})
	if err != nil {
		t.Fatalf("UpsertBatch: %v", err)
	}
	if got := s.Count("idx", "doc-a"); got != 2 {
		t.Errorf("Re-upserting the same id should not grow the index, count got %d", got)
	}
}

func TestUpsert_RejectsWrongDimension(t *testing.T) {
	s := seededStore(t)

	err := s.UpsertBatch(context.Background(), "idx", []docModel.VectorRecord{
		record("doc-c-chunk-0", "doc-c", "user-1", []float32{1, 2, 3}, "too wide"),
	})
	if err == nil {
		t.Fatal("Expected dimension mismatch error")
	}
}

func TestDeleteByFilter_RemovesOnlyMatching(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	if err := s.DeleteByFilter(ctx, "idx", docModel.MatchFilter{DocumentId: "doc-a"}); err != nil {
		t.Fatalf("DeleteByFilter: %v", err)
	}
	if got := s.Count("idx", "doc-a"); got != 0 {
		t.Errorf("doc-a count after delete got %d, want 0", got)
	}
	if got := s.Count("idx", "doc-b"); got != 1 {
		t.Errorf("doc-b count after delete got %d, want 1", got)
	}
}

func TestQuery_UnknownIndex(t *testing.T) {
	s := NewStore()
	if _, err := s.Query(context.Background(), "missing", []float32{1}, docModel.MatchFilter{}, 1); err == nil {
		t.Fatal("Expected error for unknown index")
	}
}
