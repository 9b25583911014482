// ABOUTME: MCP tool definitions and registration for the assistant backend
// ABOUTME: Exposes the query and ingestion pipelines as stdio MCP tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mpardo/assistant-backend/internal/chat"
	"github.com/mpardo/assistant-backend/internal/loader"
)

// RegisterTools registers the assistant tools with the MCP server
func RegisterTools(server *mcpserver.MCPServer, orchestrator *chat.Orchestrator, l *loader.Loader, uploader ChunkUploader) *Handlers {
	handlers := &Handlers{
		orchestrator: orchestrator,
		loader:       l,
		uploader:     uploader,
	}

	server.AddTool(mcp.Tool{
		Name:        "ask_assistant",
		Description: "Ask the assistant a question. Retrieves matching knowledge base chunks and answers with full conversation context.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer",
				},
				"assistant_id": map[string]interface{}{
					"type":        "string",
					"description": "Assistant whose knowledge base to query",
				},
				"conversation_id": map[string]interface{}{
					"type":        "string",
					"description": "Conversation id; doubles as the session history key",
				},
			},
			Required: []string{"question", "assistant_id", "conversation_id"},
		},
	}, handlers.AskAssistant)

	server.AddTool(mcp.Tool{
		Name:        "ingest_document",
		Description: "Chunk a document by its file type and upload it into an assistant's knowledge base collection.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path of the document to ingest",
				},
				"assistant_id": map[string]interface{}{
					"type":        "string",
					"description": "Assistant whose collection receives the chunks",
				},
			},
			Required: []string{"path", "assistant_id"},
		},
	}, handlers.IngestDocument)

	return handlers
}
