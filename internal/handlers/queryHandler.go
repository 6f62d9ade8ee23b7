package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/akolanti/DocRAG/internal/adapter"
	"github.com/akolanti/DocRAG/internal/api"
	"github.com/akolanti/DocRAG/internal/domain/docModel"
	"github.com/akolanti/DocRAG/internal/rag/retrieve"
)

// QueryHandler godoc
// @Summary      Retrieve context for a query
// @Description  Embeds the query, searches the vector index under the given filters and returns the qualifying chunks plus the assembled context block. Retrieval failures return an empty result, never an error.
// @Tags         Retrieval
// @Accept       json
// @Produce      json
// @Param        request  body      api.QueryRequest   true  "Query text with optional document and owner scope"
// @Success      200      {object}  api.QueryResponse  "Matched chunks and assembled context"
// @Failure      400      {object}  api.IngestResponse "Empty or malformed query"
// @Router       /query [post]
func QueryHandler(w http.ResponseWriter, request *http.Request) {

	if validateContext(request.Context()) {

		var requestData api.QueryRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logDH.Error("Couldn't close the Query handler reader :", err)
			}
		}(request.Body)
		if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || !ValidateQueryRequest(requestData) {
			logDH.Warn("Bad Query Request: ", "error:", err, "request data:", requestData)
			WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
			return
		}

		matches := handlerInstance.service.QueryContext(request.Context(), toContextQuery(requestData))
		assembled := retrieve.AssembleContext(matches)

		writeJsonResponse(w, http.StatusOK, adapter.ToQueryResponse(assembled, matches))
		return
	}
	logDH.Warn("Invalid Context by request ", request.RemoteAddr)
}

func ValidateQueryRequest(queryReq api.QueryRequest) bool {
	if handlerInstance == nil {
		return false
	}
	return strings.TrimSpace(queryReq.Query) != ""
}

// toContextQuery maps the wire request onto the retrieval query. Date
// bounds are RFC3339; an unparseable bound is ignored rather than
// rejected, matching the read side's degrade-not-fail policy.
func toContextQuery(requestData api.QueryRequest) docModel.ContextQuery {
	query := docModel.ContextQuery{
		Query:      requestData.Query,
		DocumentId: requestData.DocumentId,
		OwnerId:    requestData.OwnerId,
		MimeType:   requestData.MimeType,
		TopK:       requestData.TopK,
	}
	if t, err := time.Parse(time.RFC3339, requestData.IngestedAfter); err == nil {
		query.IngestedAfter = t
	}
	if t, err := time.Parse(time.RFC3339, requestData.IngestedBefore); err == nil {
		query.IngestedBefore = t
	}
	return query
}
