package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "PORT=9090\nREDIS_ADDR=localhost:6379\nCACHE_TTL=30s\nCORS_ORIGINS=https://a.example, https://b.example\nLLM_PROVIDER=OpenAI\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	for _, k := range []string{"PORT", "REDIS_ADDR", "CACHE_TTL", "CORS_ORIGINS", "LLM_PROVIDER"} {
		k := k
		old, had := os.LookupEnv(k)
		os.Unsetenv(k)
		t.Cleanup(func() {
			if had {
				os.Setenv(k, old)
			} else {
				os.Unsetenv(k)
			}
		})
	}

	cfg := Load(envFile)

	if cfg.Port != ":9090" {
		t.Errorf("Expected port :9090, got %s", cfg.Port)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("Expected redis addr, got %s", cfg.RedisAddr)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("Expected 30s TTL, got %v", cfg.CacheTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("Unexpected origins: %v", cfg.CORSOrigins)
	}
	if cfg.LLMProvider != "openai" {
		t.Errorf("Expected provider openai, got %s", cfg.LLMProvider)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "CACHE_TTL", "DB_MAX_CONNS", "CORS_ORIGINS"} {
		k := k
		old, had := os.LookupEnv(k)
		os.Unsetenv(k)
		t.Cleanup(func() {
			if had {
				os.Setenv(k, old)
			}
		})
	}

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))

	if cfg.Port != ":8080" {
		t.Errorf("Expected default port :8080, got %s", cfg.Port)
	}
	if cfg.DBMaxConns != 10 {
		t.Errorf("Expected 10 connections, got %d", cfg.DBMaxConns)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("Expected 10m TTL, got %v", cfg.CacheTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("Expected wildcard origin, got %v", cfg.CORSOrigins)
	}
}
