package retrieve

import (
	"context"
	"errors"
	"testing"

	"github.com/akolanti/DocRAG/internal/domain/docModel"
)

type mockStore struct {
	queryFunc func(ctx context.Context, index string, v []float32, f docModel.MatchFilter, k int) ([]docModel.Match, error)
}

func (m *mockStore) EnsureIndex(ctx context.Context, index string, dim uint64) error { return nil }
func (m *mockStore) UpsertBatch(ctx context.Context, index string, r []docModel.VectorRecord) error {
	return nil
}
func (m *mockStore) DeleteByFilter(ctx context.Context, index string, f docModel.MatchFilter) error {
	return nil
}
func (m *mockStore) Query(ctx context.Context, index string, v []float32, f docModel.MatchFilter, k int) ([]docModel.Match, error) {
	return m.queryFunc(ctx, index, v, f, k)
}

func matchWithScore(text string, score float32) docModel.Match {
	return docModel.Match{Text: text, Score: score, Metadata: docModel.ChunkMetadata{Text: text}}
}

func TestQuery_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		candidates []docModel.Match
		queryErr   error
		wantTexts  []string
	}{
		{
			name: "Keeps_Only_Qualifying_Matches",
			candidates: []docModel.Match{
				matchWithScore("good", 0.91),
				matchWithScore("ok", 0.74),
				matchWithScore("weak", 0.42),
			},
			wantTexts: []string{"good", "ok"},
		},
		{
			name: "Fallback_Top_Two_When_Nothing_Qualifies",
			candidates: []docModel.Match{
				matchWithScore("a", 0.61),
				matchWithScore("b", 0.55),
				matchWithScore("c", 0.40),
			},
			wantTexts: []string{"a", "b"},
		},
		{
			name:       "Fallback_With_Single_Candidate",
			candidates: []docModel.Match{matchWithScore("only", 0.12)},
			wantTexts:  []string{"only"},
		},
		{
			name:       "Empty_Corpus",
			candidates: nil,
			wantTexts:  []string{},
		},
		{
			name:      "Store_Error_Degrades_To_Empty",
			queryErr:  errors.New("connection refused"),
			wantTexts: []string{},
		},
		{
			name: "Ordered_By_Descending_Score",
			candidates: []docModel.Match{
				matchWithScore("second", 0.80),
				matchWithScore("first", 0.95),
				matchWithScore("third", 0.71),
			},
			wantTexts: []string{"first", "second", "third"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{
				queryFunc: func(ctx context.Context, index string, v []float32, f docModel.MatchFilter, k int) ([]docModel.Match, error) {
					return tt.candidates, tt.queryErr
				},
			}
			r := NewReader(store, "test-index")

			matches := r.Query(context.Background(), []float32{0.1}, docModel.MatchFilter{DocumentId: "d"}, 5)

			if matches == nil {
				t.Fatal("Query must return an empty slice, not nil")
			}
			if len(matches) != len(tt.wantTexts) {
				t.Fatalf("Match count got %d, want %d", len(matches), len(tt.wantTexts))
			}
			for i, want := range tt.wantTexts {
				if matches[i].Text != want {
					t.Errorf("Match %d got %q, want %q", i, matches[i].Text, want)
				}
			}
		})
	}
}

func TestAssembleContext(t *testing.T) {
	tests := []struct {
		name    string
		matches []docModel.Match
		want    string
	}{
		{
			name: "Joins_With_Blank_Lines",
			matches: []docModel.Match{
				matchWithScore("first chunk", 0.9),
				matchWithScore("second chunk", 0.8),
			},
			want: "first chunk\n\nsecond chunk",
		},
		{
			name:    "Empty_Input_Empty_String",
			matches: nil,
			want:    "",
		},
		{
			name: "Skips_Empty_Texts",
			matches: []docModel.Match{
				matchWithScore("real", 0.9),
				matchWithScore("", 0.8),
			},
			want: "real",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AssembleContext(tt.matches); got != tt.want {
				t.Errorf("AssembleContext got %q, want %q", got, tt.want)
			}
		})
	}
}
