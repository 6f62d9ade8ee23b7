package adapter

import (
	"fmt"

	"github.com/akolanti/DocRAG/internal/api"
	"github.com/akolanti/DocRAG/internal/domain/docModel"
)

func ToIngestResponse(receipt docModel.IngestReceipt) api.IngestResponse {
	return api.IngestResponse{
		Success:     receipt.Success,
		DocumentId:  receipt.DocumentId,
		ChunkCount:  receipt.ChunkCount,
		MimeType:    receipt.MimeType,
		ProcessedAt: receipt.ProcessedAt,
		StatusURL:   fmt.Sprintf("documents/%s", receipt.DocumentId),
	}
}

func ToStatusResponse(status docModel.DocumentStatus) api.StatusResponse {
	return api.StatusResponse{
		DocumentId:  status.DocumentId,
		Filename:    status.Filename,
		MimeType:    status.MimeType,
		State:       string(status.State),
		ChunkCount:  status.ChunkCount,
		ProcessedAt: status.ProcessedAt,
	}
}

func ToQueryResponse(assembled string, matches []docModel.Match) api.QueryResponse {
	out := make([]api.MatchResponse, 0, len(matches))
	for _, match := range matches {
		out = append(out, api.MatchResponse{
			Text:       match.Text,
			Score:      match.Score,
			DocumentId: match.Metadata.DocumentId,
			Filename:   match.Metadata.Filename,
			ChunkIndex: match.Metadata.ChunkIndex,
		})
	}
	return api.QueryResponse{
		Context: assembled,
		Matches: out,
	}
}

func BadRequest(id string, error string, code int) api.IngestResponse {
	return api.IngestResponse{
		Success:    false,
		DocumentId: id,
		Error: &api.OutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
