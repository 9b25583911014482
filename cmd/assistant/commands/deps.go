// ABOUTME: Shared dependency wiring for the CLI commands
// ABOUTME: Builds the full pipeline from config without global state
package commands

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"

	"github.com/mpardo/assistant-backend/internal/api"
	"github.com/mpardo/assistant-backend/internal/chat"
	"github.com/mpardo/assistant-backend/internal/config"
	"github.com/mpardo/assistant-backend/internal/conversation"
	"github.com/mpardo/assistant-backend/internal/history"
	"github.com/mpardo/assistant-backend/internal/kv"
	"github.com/mpardo/assistant-backend/internal/llm"
	"github.com/mpardo/assistant-backend/internal/loader"
	"github.com/mpardo/assistant-backend/internal/retrieval"
	"github.com/mpardo/assistant-backend/internal/vectorstore"
)

// pipeline holds the wired components shared by the commands
type pipeline struct {
	cfg           *config.Config
	kv            *kv.Client
	model         *llm.Client
	store         *vectorstore.Qdrant
	ingestor      *vectorstore.Ingestor
	loader        *loader.Loader
	conversations *conversation.KVStore
	orchestrator  *chat.Orchestrator
}

// newPipeline loads configuration and wires every component explicitly
func newPipeline() (*pipeline, error) {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	kvClient, err := kv.NewClient(&kv.Config{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDBName,
		AutoSync: cfg.AutoSync,
	})
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	model, err := llm.NewClient(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		Temperature:    cfg.Temperature,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing model client: %w", err)
	}

	store := vectorstore.NewQdrant(vectorstore.QdrantConfig{
		URL:    cfg.QdrantURL,
		APIKey: cfg.QdrantAPIKey,
	})

	registry := chat.NewRegistry()
	chat.RegisterBuiltinTools(registry)

	conversations := conversation.NewKVStore(kvClient, cfg.DefaultAssistant)
	orchestrator := chat.NewOrchestrator(
		history.NewStore(kvClient),
		conversations,
		retrieval.NewService(model, store),
		model,
		registry,
		cfg.TopK,
		cfg.ModelTimeout,
	)

	return &pipeline{
		cfg:           cfg,
		kv:            kvClient,
		model:         model,
		store:         store,
		ingestor:      vectorstore.NewIngestor(model, store, cfg.RetryDelay),
		loader:        loader.New(cfg.ChunkSize, cfg.ChunkOverlap, cfg.MinSlideChars),
		conversations: conversations,
		orchestrator:  orchestrator,
	}, nil
}

// newServer builds the HTTP server on top of the wired pipeline
func (p *pipeline) newServer() *api.Server {
	rag := api.NewRAGHandler(p.cfg.DocsDir, p.loader, p.ingestor)
	chatHandler := api.NewChatHandler(p.orchestrator, p.conversations)
	return api.NewServer(rag, chatHandler)
}
