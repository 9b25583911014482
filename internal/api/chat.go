// ABOUTME: Query entry point running one RAG turn per request
// ABOUTME: Conversation id doubles as the session history key
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mpardo/assistant-backend/internal/chat"
)

// ChatHandler serves the question answering entry point
type ChatHandler struct {
	orchestrator *chat.Orchestrator
	resolver     chat.AssistantResolver
}

// NewChatHandler creates the query handler
func NewChatHandler(orchestrator *chat.Orchestrator, resolver chat.AssistantResolver) *ChatHandler {
	return &ChatHandler{orchestrator: orchestrator, resolver: resolver}
}

// RegisterRoutes registers the chat routes on the given mux
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/chat/qna", h.handleQnA)
}

// qnaRequest is the body of the qna endpoint
type qnaRequest struct {
	Question       string `json:"question"`
	ConversationID int    `json:"conversation_id"`
}

// qnaResponse is the success body of the qna endpoint
type qnaResponse struct {
	Completion string `json:"completion"`
}

func (h *ChatHandler) handleQnA(w http.ResponseWriter, r *http.Request) {
	var req qnaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	conversationID := strconv.Itoa(req.ConversationID)

	assistantID, err := h.resolver.AssistantID(r.Context(), conversationID)
	if err != nil {
		if errors.Is(err, chat.ErrConversationNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := h.orchestrator.Answer(r.Context(), assistantID, conversationID, req.Question)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, chat.ErrConversationNotFound) {
			status = http.StatusNotFound
		}
		slog.Error("query turn failed", "conversation", conversationID, "error", err)
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, qnaResponse{Completion: result.Completion})
}
