// ABOUTME: Centralized configuration for the assistant backend
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the assistant backend
type Config struct {
	// Charm settings (session history KV)
	CharmHost   string
	CharmDBName string
	AutoSync    bool

	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Temperature    float32
	ModelTimeout   time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Qdrant settings (vector store)
	QdrantURL    string
	QdrantAPIKey string

	// Ingestion settings
	ChunkSize     int
	ChunkOverlap  int
	MinSlideChars int
	DocsDir       string

	// Retrieval settings
	TopK int

	// Assistant used for conversations with no explicit binding
	DefaultAssistant string

	// HTTP server settings
	ListenAddr string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		CharmHost:        getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:      getEnv("CHARM_DB", "assistant-sessions"),
		AutoSync:         getEnvBool("CHARM_AUTO_SYNC", true),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		ChatModel:        getEnv("ASSISTANT_CHAT_MODEL", "gpt-4o"),
		EmbeddingModel:   getEnv("ASSISTANT_EMBEDDING_MODEL", "text-embedding-3-large"),
		Temperature:      float32(getEnvFloat("ASSISTANT_TEMPERATURE", 0)),
		ModelTimeout:     getEnvDuration("ASSISTANT_MODEL_TIMEOUT", 60*time.Second),
		MaxRetries:       getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:       getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey:     os.Getenv("QDRANT_API_KEY"),
		ChunkSize:        getEnvInt("CHUNK_SIZE", 512),
		ChunkOverlap:     getEnvInt("CHUNK_OVERLAP", 64),
		MinSlideChars:    getEnvInt("MIN_SLIDE_CHARS", 5),
		DocsDir:          getEnv("DOCS_DIR", "docs"),
		TopK:             getEnvInt("RETRIEVAL_TOP_K", 4),
		DefaultAssistant: getEnv("ASSISTANT_DEFAULT_ID", "default"),
		ListenAddr:       getEnv("LISTEN_ADDR", "127.0.0.1:8000"),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE), got %d", c.ChunkOverlap)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("RETRIEVAL_TOP_K must be positive, got %d", c.TopK)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
