package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/azis14/second-brain/internal/config"
	"github.com/azis14/second-brain/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

const (
	systemPrompt = "You are a personal knowledge assistant. Answer the question using only the " +
		"provided notes from the user's knowledge base. When the notes do not contain the answer, say so."

	systemPromptNoContext = "You are a personal knowledge assistant. The user's knowledge base has no " +
		"notes relevant to this question; answer from general knowledge and say that no notes matched."
)

// Retriever finds chunks relevant to a query.
type Retriever interface {
	Search(ctx context.Context, query string, topK int) ([]entity.SearchResult, error)
}

// Service answers questions by retrieving relevant chunks and forwarding
// them to the generative model.
type Service struct {
	retriever Retriever
	model     llms.Model
	modelName string
	cfg       config.RAGConfig
	logger    *zap.Logger
}

func NewService(
	retriever Retriever,
	model llms.Model,
	modelName string,
	cfg config.RAGConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		retriever: retriever,
		model:     model,
		modelName: modelName,
		cfg:       cfg,
		logger:    logger,
	}
}

// ModelName reports the configured generation model identifier.
func (s *Service) ModelName() string {
	return s.modelName
}

// AnswerQuestion retrieves context for the question and generates an
// answer. Questions with no sufficiently similar chunks are answered
// without context and flagged accordingly.
func (s *Service) AnswerQuestion(ctx context.Context, question string) (*entity.RAGAnswer, error) {
	results, err := s.retriever.Search(ctx, question, s.cfg.TopK)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}

	relevant := make([]entity.SearchResult, 0, len(results))
	for _, r := range results {
		if r.Similarity >= s.cfg.MinSimilarity {
			relevant = append(relevant, r)
		}
	}

	contextUsed := len(relevant) > 0

	ctxzap.Debug(ctx, "retrieved context",
		zap.Int("retrieved", len(results)),
		zap.Int("relevant", len(relevant)),
	)

	var messages []llms.MessageContent
	if contextUsed {
		messages = []llms.MessageContent{
			llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
			llms.TextParts(schema.ChatMessageTypeHuman, buildGroundedPrompt(question, relevant)),
		}
	} else {
		messages = []llms.MessageContent{
			llms.TextParts(schema.ChatMessageTypeSystem, systemPromptNoContext),
			llms.TextParts(schema.ChatMessageTypeHuman, question),
		}
	}

	resp, err := s.model.GenerateContent(ctx, messages, llms.WithTemperature(0.2))
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("model returned no choices")
	}

	return &entity.RAGAnswer{
		Answer:      resp.Choices[0].Content,
		ContextUsed: contextUsed,
		Sources:     collectSources(relevant),
		ModelUsed:   s.modelName,
	}, nil
}

func buildGroundedPrompt(question string, chunks []entity.SearchResult) string {
	var sb strings.Builder

	sb.WriteString("Notes:\n\n")
	for _, chunk := range chunks {
		title := chunk.Title
		if title == "" {
			title = chunk.PageID
		}
		fmt.Fprintf(&sb, "[%s]\n%s\n\n", title, chunk.Content)
	}

	sb.WriteString("Question: ")
	sb.WriteString(question)

	return sb.String()
}

// collectSources deduplicates chunks by page, keeping the best similarity
// per page.
func collectSources(chunks []entity.SearchResult) []entity.RAGSource {
	seen := make(map[string]int)
	sources := make([]entity.RAGSource, 0, len(chunks))

	for _, chunk := range chunks {
		if idx, ok := seen[chunk.PageID]; ok {
			if chunk.Similarity > sources[idx].Similarity {
				sources[idx].Similarity = chunk.Similarity
			}
			continue
		}

		seen[chunk.PageID] = len(sources)
		sources = append(sources, entity.RAGSource{
			PageID:     chunk.PageID,
			Title:      chunk.Title,
			PageURL:    chunk.PageURL,
			Similarity: chunk.Similarity,
		})
	}

	return sources
}
