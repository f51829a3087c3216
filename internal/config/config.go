package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	GCP     GCPConfig
	RAG     RAGConfig
	Gemini  GeminiConfig
	OpenAI  OpenAIConfig
	Redis   RedisConfig
	Server  ServerConfig
	Logging LoggingConfig
}

type GCPConfig struct {
	ProjectID string
	Location  string
	Bucket    string
}

type RAGConfig struct {
	CorpusName     string
	SimilarityTopK int
	ChunkSize      int
	ChunkOverlap   int
}

type GeminiConfig struct {
	Model string
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	EnableFallback bool
}

type RedisConfig struct {
	Enabled     bool
	Host        string
	Port        int
	Password    string
	DB          int
	MetadataTTL time.Duration
}

type ServerConfig struct {
	Host string
	Port int
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		GCP: GCPConfig{
			ProjectID: getEnv("GCP_PROJECT_ID", ""),
			Location:  getEnv("GCP_LOCATION", "us-central1"),
			Bucket:    getEnv("GCS_BUCKET_NAME", ""),
		},
		RAG: RAGConfig{
			CorpusName:     getEnv("RAG_CORPUS_NAME", ""),
			SimilarityTopK: getEnvInt("RAG_SIMILARITY_TOP_K", 3),
			ChunkSize:      getEnvInt("RAG_CHUNK_SIZE", 1024),
			ChunkOverlap:   getEnvInt("RAG_CHUNK_OVERLAP", 256),
		},
		Gemini: GeminiConfig{
			Model: getEnv("GCP_LLM_MODEL_ID", "gemini-2.5-flash"),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL_ID", "gpt-5-mini"),
			EnableFallback: getEnvBool("OPENAI_ENABLE_FALLBACK", true),
		},
		Redis: RedisConfig{
			Enabled:     getEnvBool("REDIS_ENABLED", false),
			Host:        getEnv("REDIS_HOST", "localhost"),
			Port:        getEnvInt("REDIS_PORT", 6379),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvInt("REDIS_DB", 0),
			MetadataTTL: time.Duration(getEnvInt("REDIS_METADATA_TTL_SECONDS", 3600)) * time.Second,
		},
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvInt("SERVER_PORT", 8000),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.GCP.ProjectID == "" {
		return fmt.Errorf("GCP_PROJECT_ID is required")
	}
	if c.GCP.Location == "" {
		return fmt.Errorf("GCP_LOCATION is required")
	}
	if c.GCP.Bucket == "" {
		return fmt.Errorf("GCS_BUCKET_NAME is required")
	}
	if c.RAG.CorpusName == "" {
		return fmt.Errorf("RAG_CORPUS_NAME is required")
	}
	if c.RAG.SimilarityTopK <= 0 {
		return fmt.Errorf("RAG_SIMILARITY_TOP_K must be positive")
	}
	return nil
}

// ServerAddr returns the host:port pair the HTTP server binds to.
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
