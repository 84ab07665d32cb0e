package entity

import "time"

// UpsertStatus classifies the outcome of storing one page.
type UpsertStatus string

const (
	UpsertSuccess UpsertStatus = "success"
	UpsertSkipped UpsertStatus = "skipped"
)

// UpsertResult reports what the vector store did with one page.
type UpsertResult struct {
	Status       UpsertStatus `json:"status"`
	ChunksStored int          `json:"chunks_stored"`
}

// VectorStats is the statistics object exposed by the vector store. It is
// returned to API callers unmodified.
type VectorStats struct {
	TotalChunks        int        `json:"total_chunks"`
	UniquePages        int        `json:"unique_pages"`
	TableName          string     `json:"table_name"`
	EmbeddingModel     string     `json:"embedding_model"`
	EmbeddingDimension int        `json:"embedding_dimension"`
	LastSyncedAt       *time.Time `json:"last_synced_at,omitempty"`
}

// SearchResult is one retrieved chunk with its similarity to the query.
type SearchResult struct {
	PageID     string  `json:"page_id"`
	Title      string  `json:"title"`
	PageURL    string  `json:"page_url"`
	Content    string  `json:"content"`
	ChunkIndex int     `json:"chunk_index"`
	Similarity float64 `json:"similarity"`
}
