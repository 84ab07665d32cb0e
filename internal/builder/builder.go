package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/azis14/second-brain/internal/api"
	vectorapi "github.com/azis14/second-brain/internal/api/vector"
	"github.com/azis14/second-brain/internal/config"
	"github.com/azis14/second-brain/internal/integration/notion"
	"github.com/azis14/second-brain/internal/rag"
	syncuc "github.com/azis14/second-brain/internal/usecase/sync"
	"github.com/azis14/second-brain/internal/vectordb"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	pool, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := vectordb.RunMigrations(cfg.DatabaseURL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize collaborators (with mock support)
	var source syncuc.DocumentSource
	var store *vectordb.Store
	var ragService vectorapi.RAGService

	if cfg.EnableMocks {
		logger.Info("Using mock collaborators for external services")
		source = notion.NewMockConnector(logger)
		embedder := vectordb.NewMockEmbedder(cfg.VectorStoreCfg.Dimension)
		store = vectordb.NewStore(cfg.VectorStoreCfg, pool, embedder, "mock-embedder", logger)
		ragService = rag.NewMockService(logger)
	} else {
		logger.Info("Using real collaborators for external services")

		googleClient, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.GoogleAICfg.APIKey),
			googleai.WithDefaultModel(cfg.GoogleAICfg.Model),
			googleai.WithDefaultEmbeddingModel(cfg.GoogleAICfg.EmbeddingModel),
		)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("create google ai client: %w", err)
		}

		source = notion.NewConnector(cfg.NotionCfg, logger)
		store = vectordb.NewStore(cfg.VectorStoreCfg, pool, googleClient, cfg.GoogleAICfg.EmbeddingModel, logger)
		ragService = rag.NewService(store, googleClient, cfg.GoogleAICfg.Model, cfg.RAGCfg, logger)
	}

	// Ensure the vector index before serving; failure is logged only and
	// request serving proceeds regardless.
	if err := store.EnsureIndex(ctx); err != nil {
		logger.Error("Error initializing vector index", zap.Error(err))
	} else {
		logger.Info("Vector index initialized successfully")
	}

	// Initialize sync orchestrator
	orchestrator := syncuc.NewOrchestrator(
		source,
		notion.Extractor{},
		store,
		cfg.NotionCfg.DatabaseIDs,
		cfg.SyncCfg,
		logger,
	)
	logger.Info("Sync orchestrator initialized",
		zap.Int("database_count", len(cfg.NotionCfg.DatabaseIDs)),
	)

	// Setup API handlers
	vectorHandler := vectorapi.NewHandler(store, ragService, orchestrator)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(vectorHandler, cfg.APIKey, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:          server,
		store:           store,
		orchestrator:    orchestrator,
		logger:          logger,
		shutdownTimeout: cfg.SyncCfg.ShutdownTimeout,
	}, nil
}
