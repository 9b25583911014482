// ABOUTME: Tests for the ingestion endpoints
// ABOUTME: Covers staging, the marker contract, and processing failures
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mpardo/assistant-backend/internal/loader"
	"github.com/mpardo/assistant-backend/internal/models"
)

// fakeUploader records uploaded chunks
type fakeUploader struct {
	assistantID string
	chunks      []models.Chunk
	err         error
}

func (f *fakeUploader) Upload(_ context.Context, assistantID string, chunks []models.Chunk) error {
	if f.err != nil {
		return f.err
	}
	f.assistantID = assistantID
	f.chunks = chunks
	return nil
}

func newRAGMux(t *testing.T, uploader *fakeUploader) (*http.ServeMux, string) {
	t.Helper()
	docsDir := t.TempDir()
	h := NewRAGHandler(docsDir, loader.New(8, 2, 5), uploader)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux, docsDir
}

func multipartUpload(t *testing.T, name, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("File", name)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}

func TestRAGHandler_Upload(t *testing.T) {
	mux, docsDir := newRAGMux(t, &fakeUploader{})

	body, contentType := multipartUpload(t, "notes.txt", "hello world")
	req := httptest.NewRequest(http.MethodPost, "/api/rag/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	staged, err := os.ReadFile(filepath.Join(docsDir, "notes.txt"))
	if err != nil {
		t.Fatalf("staged file missing: %v", err)
	}
	if string(staged) != "hello world" {
		t.Errorf("staged content = %q", staged)
	}

	marker, err := os.ReadFile(filepath.Join(docsDir, "last_uploaded.txt"))
	if err != nil {
		t.Fatalf("marker missing: %v", err)
	}
	if strings.TrimSpace(string(marker)) != "notes.txt" {
		t.Errorf("marker = %q, want notes.txt", marker)
	}
}

func TestRAGHandler_Upload_MissingFileField(t *testing.T) {
	mux, _ := newRAGMux(t, &fakeUploader{})

	req := httptest.NewRequest(http.MethodPost, "/api/rag/upload", strings.NewReader("no form"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func processBody(t *testing.T, assistantID string, properties map[string]string) *bytes.Buffer {
	t.Helper()
	data, err := json.Marshal(map[string]any{
		"assistant_id": assistantID,
		"properties":   properties,
	})
	if err != nil {
		t.Fatalf("encoding request: %v", err)
	}
	return bytes.NewBuffer(data)
}

func TestRAGHandler_Process_NothingStaged(t *testing.T) {
	mux, _ := newRAGMux(t, &fakeUploader{})

	req := httptest.NewRequest(http.MethodPost, "/api/rag/process", processBody(t, "acme", nil))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if resp.Description != "No file has been uploaded yet." {
		t.Errorf("description = %q", resp.Description)
	}
}

func TestRAGHandler_Process_StagedFileGone(t *testing.T) {
	mux, docsDir := newRAGMux(t, &fakeUploader{})

	if err := os.WriteFile(filepath.Join(docsDir, "last_uploaded.txt"), []byte("gone.txt"), 0o644); err != nil {
		t.Fatalf("writing marker: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/rag/process", processBody(t, "acme", nil))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRAGHandler_Process_UploadThenProcess(t *testing.T) {
	uploader := &fakeUploader{}
	mux, _ := newRAGMux(t, uploader)

	body, contentType := multipartUpload(t, "notes.txt", "one two three four five six seven eight nine ten")
	upReq := httptest.NewRequest(http.MethodPost, "/api/rag/upload", body)
	upReq.Header.Set("Content-Type", contentType)
	upRec := httptest.NewRecorder()
	mux.ServeHTTP(upRec, upReq)
	if upRec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d: %s", upRec.Code, upRec.Body.String())
	}

	req := httptest.NewRequest(http.MethodPost, "/api/rag/process",
		processBody(t, "acme", map[string]string{"department": "legal"}))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("process status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		NumberChunks int `json:"numberChunks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.NumberChunks != len(uploader.chunks) {
		t.Errorf("numberChunks = %d, uploader saw %d", resp.NumberChunks, len(uploader.chunks))
	}
	if uploader.assistantID != "acme" {
		t.Errorf("assistant = %q, want acme", uploader.assistantID)
	}
	if len(uploader.chunks) == 0 {
		t.Fatal("no chunks uploaded")
	}
	first := uploader.chunks[0]
	if first.Metadata[models.DocumentNameKey] != "notes.txt" {
		t.Errorf("document name metadata = %q", first.Metadata[models.DocumentNameKey])
	}
	if first.Metadata["department"] != "legal" {
		t.Errorf("caller property missing: %v", first.Metadata)
	}
}

func TestRAGHandler_Process_MissingAssistant(t *testing.T) {
	mux, _ := newRAGMux(t, &fakeUploader{})

	req := httptest.NewRequest(http.MethodPost, "/api/rag/process", processBody(t, "", nil))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRAGHandler_Process_UploadFailure(t *testing.T) {
	uploader := &fakeUploader{err: errors.New("qdrant down")}
	mux, docsDir := newRAGMux(t, uploader)

	if err := os.WriteFile(filepath.Join(docsDir, "notes.txt"), []byte("some text"), 0o644); err != nil {
		t.Fatalf("staging file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(docsDir, "last_uploaded.txt"), []byte("notes.txt"), 0o644); err != nil {
		t.Fatalf("writing marker: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/rag/process", processBody(t, "acme", nil))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if !strings.HasPrefix(resp.Description, "Error processing file:") {
		t.Errorf("description = %q", resp.Description)
	}
}
