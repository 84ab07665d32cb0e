package vector

import (
	"context"

	"github.com/azis14/second-brain/internal/entity"
)

// VectorStore exposes the store operations the handlers need: statistics
// and the embedding probe used by the health check.
type VectorStore interface {
	Stats(ctx context.Context) (*entity.VectorStats, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// RAGService answers questions against the knowledge base.
type RAGService interface {
	AnswerQuestion(ctx context.Context, question string) (*entity.RAGAnswer, error)
	ModelName() string
}

// SyncOrchestrator schedules background sync jobs and reports their
// records.
type SyncOrchestrator interface {
	Start(ctx context.Context, req entity.SyncRequest) []entity.SyncJobRef
	Job(id string) (*entity.SyncJob, error)
}
