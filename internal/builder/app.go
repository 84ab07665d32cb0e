package builder

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	syncuc "github.com/azis14/second-brain/internal/usecase/sync"
	"github.com/azis14/second-brain/internal/vectordb"
	"go.uber.org/zap"
)

// App represents the application with all its components
type App struct {
	server          *http.Server
	store           *vectordb.Store
	orchestrator    *syncuc.Orchestrator
	logger          *zap.Logger
	shutdownTimeout time.Duration
}

// Run starts the application and blocks until shutdown
func (a *App) Run() error {
	// Start HTTP server in goroutine
	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		a.logger.Error("Server error", zap.Error(err))
		return err
	case sig := <-sigChan:
		a.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	// Graceful shutdown
	return a.shutdown()
}

// shutdown gracefully shuts down the application
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	a.logger.Info("Shutting down server gracefully")

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("Server shutdown error", zap.Error(err))
		return err
	}

	// Let in-flight background syncs finish instead of orphaning them
	a.logger.Info("Waiting for in-flight sync jobs")
	if err := a.orchestrator.Shutdown(ctx); err != nil {
		a.logger.Warn("Sync jobs did not finish before timeout", zap.Error(err))
	}

	a.logger.Info("Closing vector store")
	if a.store != nil {
		a.store.Close()
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
