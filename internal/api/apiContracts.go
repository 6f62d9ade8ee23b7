package api

import "time"

type IngestResponse struct {
	Success     bool           `json:"success" example:"true"`
	DocumentId  string         `json:"document_id" example:"doc_cz109"`
	ChunkCount  int            `json:"chunk_count" example:"12"`
	MimeType    string         `json:"mime_type" example:"application/pdf"`
	ProcessedAt string         `json:"processed_at,omitempty"`
	StatusURL   string         `json:"status_url,omitempty"`
	Error       *OutgoingError `json:"error,omitempty"`
}

type OutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"unsupported document format"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type StatusResponse struct {
	DocumentId  string         `json:"document_id"`
	Filename    string         `json:"filename"`
	MimeType    string         `json:"mime_type"`
	State       string         `json:"state" example:"ingested"`
	ChunkCount  int            `json:"chunk_count"`
	ProcessedAt time.Time      `json:"processed_at"`
	Error       *OutgoingError `json:"error,omitempty"`
}

type MatchResponse struct {
	Text       string  `json:"text"`
	Score      float32 `json:"score" example:"0.87"`
	DocumentId string  `json:"document_id"`
	Filename   string  `json:"filename"`
	ChunkIndex int     `json:"chunk_index"`
}

type QueryResponse struct {
	Context string          `json:"context"`
	Matches []MatchResponse `json:"matches"`
}

// requests---------------------

type QueryRequest struct {
	Query          string `json:"query" validate:"required"`
	DocumentId     string `json:"document_id,omitempty"`
	OwnerId        string `json:"owner_id,omitempty"`
	MimeType       string `json:"mime_type,omitempty"`
	TopK           int    `json:"top_k,omitempty" example:"5"`
	IngestedAfter  string `json:"ingested_after,omitempty" example:"2026-01-01T00:00:00Z"`
	IngestedBefore string `json:"ingested_before,omitempty"`
}
