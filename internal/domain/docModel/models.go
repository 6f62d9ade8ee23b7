package docModel

import (
	"context"
	"time"
)

// Document is one uploaded artifact. RawBytes is owned by the ingestion
// call for its duration and is not retained once processing completes.
type Document struct {
	Id       string `json:"document_id"`
	Name     string `json:"filename"`
	MimeType string `json:"mime_type"`
	OwnerId  string `json:"owner_id"`
	RawBytes []byte `json:"-"`
}

// Chunk is a contiguous slice of a document's extracted text. Chunks are
// immutable; re-ingesting a document produces a fresh chunk set.
type Chunk struct {
	Text      string `json:"text"`
	Index     int    `json:"chunk_index"`
	CharCount int    `json:"char_count"`
}

// VectorRecord is the embedding of exactly one chunk, keyed by a
// deterministic id so re-ingestion overwrites instead of duplicating.
type VectorRecord struct {
	Id       string
	Values   []float32
	Metadata ChunkMetadata
}

// ChunkMetadata travels with every vector so retrieval can return the
// chunk text without a second fetch.
type ChunkMetadata struct {
	OwnerId       string `json:"owner_id"`
	DocumentId    string `json:"document_id"`
	Filename      string `json:"filename"`
	ChunkIndex    int    `json:"chunk_index"`
	MimeType      string `json:"mime_type"`
	IngestedAt    int64  `json:"ingested_at"`
	IngestVersion int64  `json:"ingest_version"`
	CharCount     int    `json:"char_count"`
	Text          string `json:"text"`
}

// IngestOptions are per-request knobs for one ingestion.
type IngestOptions struct {
	VisionModel string //overrides the default model for image extraction
}

// ContextQuery is one retrieval request: the query text plus its scope.
type ContextQuery struct {
	Query          string
	DocumentId     string
	OwnerId        string
	MimeType       string
	TopK           int //0 means the configured default
	IngestedAfter  time.Time
	IngestedBefore time.Time
}

// Match is one retrieval result, produced fresh per query.
type Match struct {
	Text     string        `json:"text"`
	Score    float32       `json:"score"`
	Metadata ChunkMetadata `json:"metadata"`
}

// MatchFilter scopes a similarity query. DocumentId and OwnerId are the
// minimum scoping; the rest are optional.
type MatchFilter struct {
	DocumentId     string
	OwnerId        string
	MimeType       string
	IngestedAfter  time.Time
	IngestedBefore time.Time
	IngestVersion  int64 //0 means any version
}

// IngestReceipt is returned to the upload caller once a document's
// vectors are fully written.
type IngestReceipt struct {
	Success     bool   `json:"success"`
	DocumentId  string `json:"document_id"`
	ChunkCount  int    `json:"chunk_count"`
	MimeType    string `json:"mime_type"`
	ProcessedAt string `json:"processed_at"`
}

type IngestState string

const (
	StateProcessing IngestState = "processing"
	StateIngested   IngestState = "ingested"
	StateFailed     IngestState = "failed"
)

// DocumentStatus is the registry record for one document. State moves to
// StateIngested only after every batch has been committed.
type DocumentStatus struct {
	DocumentId    string      `json:"document_id"`
	OwnerId       string      `json:"owner_id"`
	Filename      string      `json:"filename"`
	MimeType      string      `json:"mime_type"`
	State         IngestState `json:"state"`
	ChunkCount    int         `json:"chunk_count"`
	IngestVersion int64       `json:"ingest_version"`
	ProcessedAt   time.Time   `json:"processed_at"`
}

type StatusStore interface {
	GetStatus(ctx context.Context, documentId string) (DocumentStatus, bool)
	SaveStatus(ctx context.Context, status DocumentStatus) error
	DeleteStatus(ctx context.Context, documentId string)
}
