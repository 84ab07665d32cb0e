package entity

// RAGSource describes one page that contributed context to an answer.
type RAGSource struct {
	PageID     string  `json:"page_id"`
	Title      string  `json:"title"`
	PageURL    string  `json:"page_url"`
	Similarity float64 `json:"similarity"`
}

// RAGAnswer is the result of answering a question against the knowledge
// base.
type RAGAnswer struct {
	Answer      string      `json:"answer"`
	ContextUsed bool        `json:"context_used"`
	Sources     []RAGSource `json:"sources"`
	ModelUsed   string      `json:"model_used"`
}

// ChatResponse is the payload of POST /vector/chat. SourceURLs is present
// only when at least one source carries a non-empty page URL.
type ChatResponse struct {
	Question     string   `json:"question"`
	Answer       string   `json:"answer"`
	ContextUsed  bool     `json:"context_used"`
	SourcesCount int      `json:"sources_count"`
	Model        string   `json:"model"`
	SourceURLs   []string `json:"source_urls,omitempty"`
}

// HealthResponse is the payload of GET /vector/health.
type HealthResponse struct {
	Status             string `json:"status"`
	VectorDB           string `json:"vector_db"`
	EmbeddingModel     string `json:"embedding_model"`
	EmbeddingDimension int    `json:"embedding_dimension"`
	GoogleAIModel      string `json:"google_ai_model"`
	TotalChunks        int    `json:"total_chunks"`
	UniquePages        int    `json:"unique_pages"`
}

// ErrorResponse is the generic error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
