package handlers

import (
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/akolanti/DocRAG/internal/adapter"
	"github.com/akolanti/DocRAG/internal/adapter/utils"
	"github.com/akolanti/DocRAG/internal/api"
	"github.com/akolanti/DocRAG/internal/config"
	"github.com/akolanti/DocRAG/internal/domain/docModel"
	"github.com/akolanti/DocRAG/internal/domain/ragErrors"
	"github.com/akolanti/DocRAG/internal/rag"
	"github.com/akolanti/DocRAG/pkg/logger_i"
)

var (
	handlerInstance *DocumentHandler //private singleton
	once            sync.Once
	logDH           *logger_i.Logger
)

type DocumentHandler struct {
	service rag.Service
}

func InitDocumentHandler(ragService rag.Service) {
	once.Do(func() {
		handlerInstance = &DocumentHandler{service: ragService}

		logDH = logger_i.NewLogger("DocumentHandler")
		logDH.Info("Starting document handler")
	})
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// PostDocumentHandler handles document uploads for RAG ingestion.
// @Summary      Upload a document for ingestion
// @Description  Receives a file via multipart/form-data, extracts and chunks its text, and writes the embeddings to the vector index. The call returns once every vector is committed.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        document_id    formData  string  false  "Stable document id; re-uploading with the same id overwrites"
// @Param        document_name  formData  string  false  "Display name; defaults to the uploaded filename"
// @Param        owner_id       formData  string  false  "Owner scope for retrieval filtering"
// @Param        vision_model   formData  string  false  "Vision model override for image extraction"
// @Param        document       formData  file    true   "The document to ingest"
// @Success      201  {object}  api.IngestResponse  "Document fully indexed"
// @Failure      400  {object}  api.IngestResponse  "Missing file or bad request"
// @Failure      413  {object}  api.IngestResponse  "Document exceeds the upload size limit"
// @Failure      415  {object}  api.IngestResponse  "No extractor for the declared format"
// @Failure      422  {object}  api.IngestResponse  "Unreadable or malformed content"
// @Failure      502  {object}  api.IngestResponse  "Embedding provider failure"
// @Failure      500  {object}  api.IngestResponse  "Vector store failure"
// @Router       /documents [post]
func PostDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
			return
		}

		fileReader, fileMetadata, err := r.FormFile("document")
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve file")
			return
		}
		defer fileReader.Close()

		// Read one byte past the limit so an oversized upload is rejected
		// rather than silently truncated.
		rawBytes, err := io.ReadAll(io.LimitReader(fileReader, config.MaxUploadBytes+1))
		if err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, "", "Read error")
			return
		}
		if int64(len(rawBytes)) > config.MaxUploadBytes {
			WriteErrorResponse(w, http.StatusRequestEntityTooLarge, "", "Document exceeds the upload size limit")
			return
		}

		documentId := r.FormValue("document_id")
		if documentId == "" {
			documentId = utils.GetNewUUID()
			logDH.Debug("New document without id", "assigned", documentId)
		}

		docName := r.FormValue("document_name")
		if docName == "" {
			docName = fileMetadata.Filename
		}

		doc := docModel.Document{
			Id:       documentId,
			Name:     docName,
			MimeType: fileMetadata.Header.Get("Content-Type"),
			OwnerId:  r.FormValue("owner_id"),
			RawBytes: rawBytes,
		}
		opts := docModel.IngestOptions{VisionModel: r.FormValue("vision_model")}

		receipt, err := handlerInstance.service.StoreDocument(r.Context(), doc, opts)
		if err != nil {
			WriteErrorResponse(w, ingestErrorCode(err), documentId, err.Error())
			return
		}

		writeJsonResponse(w, http.StatusCreated, adapter.ToIngestResponse(receipt))
		return
	}
	logDH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// ingestErrorCode maps the pipeline error taxonomy onto http codes.
// Content problems are the caller's fault, provider outages are a bad
// gateway, everything else is ours.
func ingestErrorCode(err error) int {
	var unsupported *ragErrors.UnsupportedFormatError
	var parse *ragErrors.ParseError
	var extraction *ragErrors.ExtractionError
	var embedding *ragErrors.EmbeddingError

	switch {
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &parse), errors.As(err, &extraction):
		return http.StatusUnprocessableEntity
	case errors.As(err, &embedding):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GetDocumentStatusHandler godoc
// @Summary      Get document ingestion status
// @Description  Retrieves the registry record for a document: state, chunk count and processing time.
// @Tags         Ingestion
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.StatusResponse  "The current status of the document"
// @Failure      404  {object}  api.IngestResponse  "Document not found"
// @Router       /documents/{id} [get]
func GetDocumentStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")

		logDH.Debug("Get Status Request:", "URL path", r.URL.Path)
		status, isFound := handlerInstance.service.Status(r.Context(), idString)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Document not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToStatusResponse(status))
	}
}

// DeleteDocumentHandler godoc
// @Summary      Delete a document
// @Description  Removes every vector belonging to the document from the index and drops its status record.
// @Tags         Ingestion
// @Accept       json
// @Produce      json
// @Param        id        path   string  true   "Document ID"
// @Param        owner_id  query  string  false  "Owner scope"
// @Success      200  {object}  api.IngestResponse  "Document removed"
// @Failure      500  {object}  api.IngestResponse  "Vector store failure"
// @Router       /documents/{id} [delete]
func DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")

		err := handlerInstance.service.DeleteDocument(r.Context(), idString, r.URL.Query().Get("owner_id"))
		if err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, idString, "Could not delete document")
			return
		}
		writeJsonResponse(w, http.StatusOK, api.IngestResponse{Success: true, DocumentId: idString})
	}
}
