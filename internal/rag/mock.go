package rag

import (
	"context"
	"fmt"

	"github.com/azis14/second-brain/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockService is a mock RAG implementation for local development without
// model credentials.
type MockService struct {
	logger *zap.Logger
}

func NewMockService(logger *zap.Logger) *MockService {
	return &MockService{
		logger: logger,
	}
}

func (m *MockService) ModelName() string {
	return "mock-model"
}

func (m *MockService) AnswerQuestion(ctx context.Context, question string) (*entity.RAGAnswer, error) {
	ctxzap.Info(ctx, "[MOCK] answering question",
		zap.String("question", question),
	)

	return &entity.RAGAnswer{
		Answer:      fmt.Sprintf("Mock answer to: %s", question),
		ContextUsed: true,
		Sources: []entity.RAGSource{
			{
				PageID:     "mock-page-1",
				Title:      "Mock page 1",
				PageURL:    "https://www.notion.so/mock-page-1",
				Similarity: 0.91,
			},
		},
		ModelUsed: "mock-model",
	}, nil
}
