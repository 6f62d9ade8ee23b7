// Package mcpserver exposes the retrieval side of the pipeline as an MCP
// tool, so agent runtimes can pull document context without going through
// the http api.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akolanti/DocRAG/internal/domain/docModel"
	"github.com/akolanti/DocRAG/internal/rag"
	"github.com/akolanti/DocRAG/internal/rag/retrieve"
	"github.com/akolanti/DocRAG/pkg/logger_i"
)

const Version = "1.0.0"

type Server struct {
	service rag.Service
	server  *mcp.Server
	logger  *logger_i.Logger
}

func NewServer(ragService rag.Service) *Server {
	impl := &mcp.Implementation{
		Name:    "docrag",
		Version: Version,
	}

	s := &Server{
		service: ragService,
		server:  mcp.NewServer(impl, nil),
		logger:  logger_i.NewLogger("MCP Server"),
	}

	s.registerTools()
	return s
}

// Run serves over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("MCP server running on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

type QueryContextInput struct {
	Query      string `json:"query" jsonschema:"the question to retrieve supporting context for"`
	DocumentId string `json:"document_id,omitempty" jsonschema:"restrict retrieval to one document"`
	OwnerId    string `json:"owner_id,omitempty" jsonschema:"restrict retrieval to one owner"`
	TopK       int    `json:"top_k,omitempty" jsonschema:"maximum number of chunks to retrieve (default 5)"`
}

type QueryContextOutput struct {
	Context string        `json:"context"`
	Matches []MatchOutput `json:"matches"`
	Count   int           `json:"count"`
}

type MatchOutput struct {
	Text       string  `json:"text"`
	Score      float32 `json:"score"`
	DocumentId string  `json:"document_id"`
	Filename   string  `json:"filename"`
	ChunkIndex int     `json:"chunk_index"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_context",
		Description: "Retrieve document chunks relevant to a query and return them as an assembled context block",
	}, s.handleQueryContext)
}

func (s *Server) handleQueryContext(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryContextInput,
) (*mcp.CallToolResult, QueryContextOutput, error) {
	query := docModel.ContextQuery{
		Query:      input.Query,
		DocumentId: input.DocumentId,
		OwnerId:    input.OwnerId,
		TopK:       input.TopK,
	}

	matches := s.service.QueryContext(ctx, query)

	output := QueryContextOutput{
		Context: retrieve.AssembleContext(matches),
		Matches: make([]MatchOutput, len(matches)),
		Count:   len(matches),
	}
	for i := range matches {
		output.Matches[i] = MatchOutput{
			Text:       matches[i].Text,
			Score:      matches[i].Score,
			DocumentId: matches[i].Metadata.DocumentId,
			Filename:   matches[i].Metadata.Filename,
			ChunkIndex: matches[i].Metadata.ChunkIndex,
		}
	}
	return nil, output, nil
}
