// ABOUTME: Tests for environment-based configuration
// ABOUTME: Covers defaults, overrides, and validation rules
package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"CHARM_HOST", "CHARM_DB", "CHARM_AUTO_SYNC", "OPENAI_API_KEY",
		"ASSISTANT_CHAT_MODEL", "ASSISTANT_EMBEDDING_MODEL", "ASSISTANT_TEMPERATURE",
		"ASSISTANT_MODEL_TIMEOUT", "OPENAI_MAX_RETRIES", "OPENAI_RETRY_DELAY",
		"QDRANT_URL", "QDRANT_API_KEY", "CHUNK_SIZE", "CHUNK_OVERLAP",
		"MIN_SLIDE_CHARS", "DOCS_DIR", "RETRIEVAL_TOP_K",
		"ASSISTANT_DEFAULT_ID", "LISTEN_ADDR",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ChatModel != "gpt-4o" {
		t.Errorf("ChatModel = %q", cfg.ChatModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-large" {
		t.Errorf("EmbeddingModel = %q", cfg.EmbeddingModel)
	}
	if cfg.ChunkSize != 512 || cfg.ChunkOverlap != 64 {
		t.Errorf("chunking = %d/%d", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if cfg.TopK != 4 {
		t.Errorf("TopK = %d", cfg.TopK)
	}
	if cfg.ModelTimeout != 60*time.Second {
		t.Errorf("ModelTimeout = %s", cfg.ModelTimeout)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %s", cfg.RetryDelay)
	}
	if cfg.QdrantURL != "http://localhost:6333" {
		t.Errorf("QdrantURL = %q", cfg.QdrantURL)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d", cfg.MaxRetries)
	}
	if cfg.DefaultAssistant != "default" {
		t.Errorf("DefaultAssistant = %q", cfg.DefaultAssistant)
	}
	if cfg.ListenAddr != "127.0.0.1:8000" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ASSISTANT_CHAT_MODEL", "gpt-4o-mini")
	t.Setenv("CHUNK_SIZE", "256")
	t.Setenv("CHUNK_OVERLAP", "32")
	t.Setenv("RETRIEVAL_TOP_K", "8")
	t.Setenv("ASSISTANT_MODEL_TIMEOUT", "30s")
	t.Setenv("CHARM_AUTO_SYNC", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %q", cfg.ChatModel)
	}
	if cfg.ChunkSize != 256 || cfg.ChunkOverlap != 32 {
		t.Errorf("chunking = %d/%d", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if cfg.TopK != 8 {
		t.Errorf("TopK = %d", cfg.TopK)
	}
	if cfg.ModelTimeout != 30*time.Second {
		t.Errorf("ModelTimeout = %s", cfg.ModelTimeout)
	}
	if cfg.AutoSync {
		t.Error("AutoSync should be disabled")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }, true},
		{"negative overlap", func(c *Config) { c.ChunkOverlap = -1 }, true},
		{"overlap equals size", func(c *Config) { c.ChunkOverlap = c.ChunkSize }, true},
		{"retries out of range", func(c *Config) { c.MaxRetries = 11 }, true},
		{"zero top-k", func(c *Config) { c.TopK = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				ChunkSize:    512,
				ChunkOverlap: 64,
				MaxRetries:   3,
				TopK:         4,
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestGetEnvHelpers_MalformedValues(t *testing.T) {
	t.Setenv("TEST_INT", "not-a-number")
	if got := getEnvInt("TEST_INT", 7); got != 7 {
		t.Errorf("getEnvInt fell through to %d, want default 7", got)
	}

	t.Setenv("TEST_DURATION", "soon")
	if got := getEnvDuration("TEST_DURATION", time.Minute); got != time.Minute {
		t.Errorf("getEnvDuration fell through to %s, want default 1m", got)
	}

	t.Setenv("TEST_FLOAT", "warm")
	if got := getEnvFloat("TEST_FLOAT", 0.5); got != 0.5 {
		t.Errorf("getEnvFloat fell through to %f, want default 0.5", got)
	}
}
