// ABOUTME: Ingestion endpoints: stage an upload, then process it into the store
// ABOUTME: Staging and processing are separate calls linked by a marker file
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mpardo/assistant-backend/internal/loader"
	"github.com/mpardo/assistant-backend/internal/models"
)

// lastUploadedMarker records the most recently staged file name inside
// the docs directory.
const lastUploadedMarker = "last_uploaded.txt"

// ChunkUploader is the slice of the ingestor the handler needs.
// Satisfied by *vectorstore.Ingestor.
type ChunkUploader interface {
	Upload(ctx context.Context, assistantID string, chunks []models.Chunk) error
}

// RAGHandler serves the document ingestion entry points
type RAGHandler struct {
	docsDir  string
	loader   *loader.Loader
	ingestor ChunkUploader
}

// NewRAGHandler creates the ingestion handler
func NewRAGHandler(docsDir string, l *loader.Loader, ingestor ChunkUploader) *RAGHandler {
	return &RAGHandler{docsDir: docsDir, loader: l, ingestor: ingestor}
}

// RegisterRoutes registers the ingestion routes on the given mux
func (h *RAGHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/rag/upload", h.handleUpload)
	mux.HandleFunc("POST /api/rag/process", h.handleProcess)
}

// handleUpload stages a multipart file into the docs directory and records
// it as the last uploaded file.
func (h *RAGHandler) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("File")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing File form field")
		return
	}
	defer file.Close()

	if err := os.MkdirAll(h.docsDir, 0o755); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("creating docs dir: %v", err))
		return
	}

	name := filepath.Base(header.Filename)
	path := filepath.Join(h.docsDir, name)
	dst, err := os.Create(path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("staging file: %v", err))
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("writing file: %v", err))
		return
	}

	marker := filepath.Join(h.docsDir, lastUploadedMarker)
	if err := os.WriteFile(marker, []byte(name), 0o644); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("recording upload: %v", err))
		return
	}

	slog.Info("file staged for ingestion", "file", name)
	writeJSON(w, http.StatusCreated, map[string]string{
		"description": "File uploaded successfully",
		"filePath":    path,
	})
}

// processRequest is the body of the process endpoint
type processRequest struct {
	AssistantID string            `json:"assistant_id"`
	Properties  map[string]string `json:"properties"`
}

// handleProcess loads the last staged file, chunks it by extension, and
// uploads the chunks into the assistant's collection. Already-uploaded
// batches stay persisted when a later batch fails.
func (h *RAGHandler) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AssistantID == "" {
		writeError(w, http.StatusBadRequest, "assistant_id is required")
		return
	}

	marker := filepath.Join(h.docsDir, lastUploadedMarker)
	data, err := os.ReadFile(marker)
	if err != nil {
		writeError(w, http.StatusNotFound, "No file has been uploaded yet.")
		return
	}
	fileName := strings.TrimSpace(string(data))

	path := filepath.Join(h.docsDir, fileName)
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("File %s not found in docs folder.", fileName))
		return
	}

	properties := make(map[string]string, len(req.Properties)+1)
	for k, v := range req.Properties {
		properties[k] = v
	}
	properties[models.DocumentNameKey] = fileName

	chunks, err := h.loader.Load(path, loader.FileType(fileName), properties)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing file: %v", err))
		return
	}

	if err := h.ingestor.Upload(r.Context(), req.AssistantID, chunks); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing file: %v", err))
		return
	}

	slog.Info("file ingested", "file", fileName, "assistant", req.AssistantID, "chunks", len(chunks))
	writeJSON(w, http.StatusCreated, map[string]any{
		"description":  "File processed and uploaded successfully",
		"numberChunks": len(chunks),
	})
}
