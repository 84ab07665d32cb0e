package vector

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/azis14/second-brain/internal/entity"
	"github.com/azis14/second-brain/internal/pkg/logger"
	"github.com/azis14/second-brain/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// healthProbeText is the fixed string embedded by the health check to
// verify the embedding path end to end.
const healthProbeText = "test"

type Handler struct {
	store  VectorStore
	rag    RAGService
	syncer SyncOrchestrator
}

func NewHandler(store VectorStore, rag RAGService, syncer SyncOrchestrator) *Handler {
	return &Handler{
		store:  store,
		rag:    rag,
		syncer: syncer,
	}
}

// GetStats handles GET /vector/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetStats")

	stats, err := h.store.Stats(ctx)
	if err != nil {
		ctxzap.Error(ctx, "failed to get stats", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(w, stats)
}

// Sync handles POST /vector/sync. It schedules one background job per
// configured database and acknowledges before any page is processed.
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Sync")

	var req entity.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// An empty body means defaults
		if !errors.Is(err, io.EOF) {
			ctxzap.Error(ctx, "failed to decode sync request", zap.Error(err))
			response.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req = entity.DefaultSyncRequest()
	}

	jobs := h.syncer.Start(ctx, req)

	ctxzap.Info(ctx, "sync scheduled",
		zap.Int("job_count", len(jobs)),
		zap.Bool("force_update", req.ForceUpdate),
	)

	response.Accepted(w, entity.SyncAcceptedResponse{
		Status:      "started",
		Message:     "notion sync started",
		ForceUpdate: req.ForceUpdate,
		Jobs:        jobs,
	})
}

// GetSyncJob handles GET /vector/sync/jobs/{job_id}
func (h *Handler) GetSyncJob(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetSyncJob")
	jobID := chi.URLParam(r, "job_id")

	job, err := h.syncer.Job(jobID)
	if err != nil {
		if errors.Is(err, entity.ErrJobNotFound) {
			response.Error(w, http.StatusNotFound, "sync job not found")
			return
		}
		ctxzap.Error(ctx, "failed to get sync job", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(w, job)
}

// Health handles GET /vector/health. It verifies both the store connection
// and the embedding path; any failure surfaces as 503.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Health")

	stats, err := h.store.Stats(ctx)
	if err != nil {
		ctxzap.Error(ctx, "vector health check failed", zap.Error(err))
		response.Error(w, http.StatusServiceUnavailable, "service unavailable: "+err.Error())
		return
	}

	embedding, err := h.store.GenerateEmbedding(ctx, healthProbeText)
	if err != nil {
		ctxzap.Error(ctx, "embedding probe failed", zap.Error(err))
		response.Error(w, http.StatusServiceUnavailable, "service unavailable: "+err.Error())
		return
	}

	response.Success(w, entity.HealthResponse{
		Status:             "healthy",
		VectorDB:           "connected",
		EmbeddingModel:     stats.EmbeddingModel,
		EmbeddingDimension: len(embedding),
		GoogleAIModel:      h.rag.ModelName(),
		TotalChunks:        stats.TotalChunks,
		UniquePages:        stats.UniquePages,
	})
}

// Chat handles POST /vector/chat?question=...
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Chat")

	question := r.URL.Query().Get("question")
	if question == "" {
		response.Error(w, http.StatusBadRequest, entity.ErrMissingQuestion.Error())
		return
	}

	answer, err := h.rag.AnswerQuestion(ctx, question)
	if err != nil {
		ctxzap.Error(ctx, "failed to answer question", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctxzap.Info(ctx, "question answered",
		zap.Bool("context_used", answer.ContextUsed),
		zap.Int("sources_count", len(answer.Sources)),
	)

	response.Success(w, toChatResponse(question, answer))
}
