package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/azis14/second-brain/internal/pkg/retry"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8000"`

	// API key required by the /vector endpoints
	APIKey string `env:"API_KEY,notEmpty"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	DBConnectRetry      retry.Config  `envPrefix:"DB_CONNECT_"`

	// External service configurations
	NotionCfg   NotionConnectorConfig `envPrefix:"NOTION_"`
	GoogleAICfg GoogleAIConfig        `envPrefix:"GOOGLEAI_"`

	// Vector store configuration
	VectorStoreCfg VectorStoreConfig `envPrefix:"VECTOR_"`

	// RAG configuration
	RAGCfg RAGConfig `envPrefix:"RAG_"`

	// Sync orchestration configuration
	SyncCfg SyncConfig `envPrefix:"SYNC_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// NotionConnectorConfig configures the Notion API client.
type NotionConnectorConfig struct {
	HTTPClientConfig
	APIKey         string   `env:"API_KEY,notEmpty"`
	DatabaseIDs    []string `env:"DATABASE_IDS,notEmpty" envSeparator:","`
	Version        string   `env:"VERSION" envDefault:"2022-06-28"`
	RateLimitRPS   float64  `env:"RATE_LIMIT_RPS" envDefault:"3"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST" envDefault:"3"`
}

// GoogleAIConfig configures the Gemini generation and embedding models.
type GoogleAIConfig struct {
	APIKey         string `env:"API_KEY,notEmpty"`
	Model          string `env:"MODEL" envDefault:"gemini-1.5-flash"`
	EmbeddingModel string `env:"EMBEDDING_MODEL" envDefault:"text-embedding-004"`
}

// VectorStoreConfig configures the pgvector-backed store.
type VectorStoreConfig struct {
	TableName    string `env:"TABLE_NAME" envDefault:"notion_chunks"`
	Dimension    int    `env:"DIMENSION" envDefault:"768"`
	ChunkSize    int    `env:"CHUNK_SIZE" envDefault:"1000"`
	ChunkOverlap int    `env:"CHUNK_OVERLAP" envDefault:"200"`
	IndexLists   int    `env:"INDEX_LISTS" envDefault:"100"`
}

// RAGConfig configures retrieval for question answering.
type RAGConfig struct {
	TopK          int     `env:"TOP_K" envDefault:"5"`
	MinSimilarity float64 `env:"MIN_SIMILARITY" envDefault:"0.2"`
}

// SyncConfig configures background sync jobs.
type SyncConfig struct {
	JobTTL          time.Duration `env:"JOB_TTL" envDefault:"24h"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"15s"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://api.notion.com"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag
	cfg.NotionCfg.DatabaseIDs = normalizeDatabaseIDs(cfg.NotionCfg.DatabaseIDs)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// normalizeDatabaseIDs trims whitespace and drops empty entries so that a
// trailing comma in NOTION_DATABASE_IDS does not schedule a bogus job.
func normalizeDatabaseIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

func validateConfig(cfg *Config) error {
	var errs []string

	if len(cfg.NotionCfg.DatabaseIDs) == 0 {
		errs = append(errs, "NOTION_DATABASE_IDS must contain at least one database id")
	}

	if cfg.VectorStoreCfg.Dimension < 1 {
		errs = append(errs, fmt.Sprintf("VECTOR_DIMENSION must be positive, got %d", cfg.VectorStoreCfg.Dimension))
	}

	if cfg.VectorStoreCfg.ChunkOverlap >= cfg.VectorStoreCfg.ChunkSize {
		errs = append(errs, fmt.Sprintf("VECTOR_CHUNK_OVERLAP(%d) must be smaller than VECTOR_CHUNK_SIZE(%d)",
			cfg.VectorStoreCfg.ChunkOverlap, cfg.VectorStoreCfg.ChunkSize))
	}

	if cfg.RAGCfg.TopK < 1 || cfg.RAGCfg.TopK > 50 {
		errs = append(errs, fmt.Sprintf("RAG_TOP_K must be between 1 and 50, got %d", cfg.RAGCfg.TopK))
	}

	if cfg.RAGCfg.MinSimilarity < 0 || cfg.RAGCfg.MinSimilarity > 1 {
		errs = append(errs, fmt.Sprintf("RAG_MIN_SIMILARITY must be between 0 and 1, got %f", cfg.RAGCfg.MinSimilarity))
	}

	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errs = append(errs, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errs = append(errs, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
