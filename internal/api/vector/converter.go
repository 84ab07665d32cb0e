package vector

import "github.com/azis14/second-brain/internal/entity"

// toChatResponse reshapes a RAG answer into the chat payload. SourceURLs is
// set only when at least one source carries a non-empty page URL.
func toChatResponse(question string, answer *entity.RAGAnswer) *entity.ChatResponse {
	resp := &entity.ChatResponse{
		Question:     question,
		Answer:       answer.Answer,
		ContextUsed:  answer.ContextUsed,
		SourcesCount: len(answer.Sources),
		Model:        answer.ModelUsed,
	}

	for _, source := range answer.Sources {
		if source.PageURL != "" {
			resp.SourceURLs = append(resp.SourceURLs, source.PageURL)
		}
	}

	return resp
}
