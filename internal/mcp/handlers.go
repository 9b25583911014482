// ABOUTME: MCP tool handler implementations for the assistant backend
// ABOUTME: Thin adapters from MCP requests onto the orchestrator and ingestor
package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mpardo/assistant-backend/internal/chat"
	"github.com/mpardo/assistant-backend/internal/loader"
	"github.com/mpardo/assistant-backend/internal/models"
)

// ChunkUploader uploads chunk sequences into an assistant's collection
type ChunkUploader interface {
	Upload(ctx context.Context, assistantID string, chunks []models.Chunk) error
}

// Handlers contains the handler functions for the MCP tools
type Handlers struct {
	orchestrator *chat.Orchestrator
	loader       *loader.Loader
	uploader     ChunkUploader
}

// AskAssistant handles the ask_assistant tool
func (h *Handlers) AskAssistant(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}
	assistantID, err := request.RequireString("assistant_id")
	if err != nil {
		return mcp.NewToolResultError("assistant_id argument is required and must be a string"), nil
	}
	conversationID, err := request.RequireString("conversation_id")
	if err != nil {
		return mcp.NewToolResultError("conversation_id argument is required and must be a string"), nil
	}

	result, err := h.orchestrator.Answer(ctx, assistantID, conversationID, question)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query turn failed: %v", err)), nil
	}
	return mcp.NewToolResultText(result.Completion), nil
}

// IngestDocument handles the ingest_document tool
func (h *Handlers) IngestDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path argument is required and must be a string"), nil
	}
	assistantID, err := request.RequireString("assistant_id")
	if err != nil {
		return mcp.NewToolResultError("assistant_id argument is required and must be a string"), nil
	}

	properties := map[string]string{
		models.DocumentNameKey: filepath.Base(path),
	}
	chunks, err := h.loader.Load(path, loader.FileType(path), properties)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to chunk document: %v", err)), nil
	}

	if err := h.uploader.Upload(ctx, assistantID, chunks); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to upload chunks: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Ingested %d chunks from %s", len(chunks), filepath.Base(path))), nil
}
