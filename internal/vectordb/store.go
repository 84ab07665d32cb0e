package vectordb

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/azis14/second-brain/internal/config"
	"github.com/azis14/second-brain/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// EmbeddingClient computes embedding vectors for texts. The Google AI
// client from langchaingo satisfies this.
type EmbeddingClient interface {
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// Store persists page chunks and their embeddings in Postgres with
// pgvector.
type Store struct {
	cfg            config.VectorStoreConfig
	pool           *pgxpool.Pool
	embedder       EmbeddingClient
	chunker        *Chunker
	embeddingModel string
	logger         *zap.Logger
}

func NewStore(
	cfg config.VectorStoreConfig,
	pool *pgxpool.Pool,
	embedder EmbeddingClient,
	embeddingModel string,
	logger *zap.Logger,
) *Store {
	return &Store{
		cfg:            cfg,
		pool:           pool,
		embedder:       embedder,
		chunker:        NewChunker(cfg.ChunkSize, cfg.ChunkOverlap),
		embeddingModel: embeddingModel,
		logger:         logger,
	}
}

// EnsureIndex creates the approximate-nearest-neighbor index if it does not
// exist yet. Called once at startup; callers treat failure as non-fatal.
func (s *Store) EnsureIndex(ctx context.Context) error {
	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_embedding_idx
		ON %s
		USING ivfflat (embedding vector_cosine_ops)
		WITH (lists = %d)`,
		s.cfg.TableName, s.cfg.TableName, s.cfg.IndexLists)

	if _, err := s.pool.Exec(ctx, createIndex); err != nil {
		return fmt.Errorf("create vector index: %w", err)
	}

	return nil
}

// Stats reports the store statistics object exposed to API callers.
func (s *Store) Stats(ctx context.Context) (*entity.VectorStats, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*), COUNT(DISTINCT page_id), MAX(synced_at)
		FROM %s`, s.cfg.TableName)

	stats := &entity.VectorStats{
		TableName:          s.cfg.TableName,
		EmbeddingModel:     s.embeddingModel,
		EmbeddingDimension: s.cfg.Dimension,
	}

	var lastSynced *time.Time
	if err := s.pool.QueryRow(ctx, query).Scan(&stats.TotalChunks, &stats.UniquePages, &lastSynced); err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	stats.LastSyncedAt = lastSynced

	return stats, nil
}

// GenerateEmbedding embeds a single text. Used by search and by the health
// probe.
func (s *Store) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := s.embedder.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, errors.New("embedding client returned no vectors")
	}

	return embeddings[0], nil
}

// UpsertPage chunks, embeds and stores one page. When forceUpdate is false
// and the stored content hash matches, the page is skipped without touching
// the embedding API. A page's chunk rows are replaced atomically.
func (s *Store) UpsertPage(ctx context.Context, page *entity.Page, databaseID string, forceUpdate bool) (*entity.UpsertResult, error) {
	content := strings.TrimSpace(strings.Join(page.Content, "\n"))
	if content == "" {
		ctxzap.Debug(ctx, "page has no content, skipping", zap.String("page_id", page.ID))
		return &entity.UpsertResult{Status: entity.UpsertSkipped}, nil
	}

	title := page.Title()
	hash := contentHash(title, content)

	if !forceUpdate {
		stored, err := s.storedHash(ctx, page.ID)
		if err != nil {
			return nil, err
		}
		if stored == hash {
			return &entity.UpsertResult{Status: entity.UpsertSkipped}, nil
		}
	}

	chunks := s.chunker.Split(content)
	if len(chunks) == 0 {
		return &entity.UpsertResult{Status: entity.UpsertSkipped}, nil
	}

	embeddings, err := s.embedder.CreateEmbedding(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("embed page %s: %w", page.ID, err)
	}
	if len(embeddings) != len(chunks) {
		return nil, fmt.Errorf("embedding count mismatch: %d chunks, %d vectors", len(chunks), len(embeddings))
	}

	metadata, err := json.Marshal(map[string]any{
		"created_time":     page.CreatedTime,
		"last_edited_time": page.LastEditedTime,
		"archived":         page.Archived,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal page metadata: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	deleteStmt := fmt.Sprintf(`DELETE FROM %s WHERE page_id = $1`, s.cfg.TableName)
	if _, err := tx.Exec(ctx, deleteStmt, page.ID); err != nil {
		return nil, fmt.Errorf("delete stale chunks: %w", err)
	}

	insertStmt := fmt.Sprintf(`
		INSERT INTO %s (id, page_id, database_id, title, page_url, content, chunk_index, content_hash, embedding, metadata, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		s.cfg.TableName)

	now := time.Now().UTC()
	for i, chunk := range chunks {
		_, err := tx.Exec(ctx, insertStmt,
			fmt.Sprintf("%s_%d", page.ID, i),
			page.ID,
			databaseID,
			title,
			page.URL,
			chunk,
			i,
			hash,
			pgvector.NewVector(embeddings[i]),
			metadata,
			now,
		)
		if err != nil {
			return nil, fmt.Errorf("insert chunk %d of page %s: %w", i, page.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return &entity.UpsertResult{
		Status:       entity.UpsertSuccess,
		ChunksStored: len(chunks),
	}, nil
}

// Search embeds the query and returns the topK most similar chunks by
// cosine distance.
func (s *Store) Search(ctx context.Context, query string, topK int) ([]entity.SearchResult, error) {
	embedding, err := s.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}

	stmt := fmt.Sprintf(`
		SELECT page_id, title, page_url, content, chunk_index, 1 - (embedding <=> $1) AS similarity
		FROM %s
		ORDER BY embedding <=> $1
		LIMIT $2`, s.cfg.TableName)

	rows, err := s.pool.Query(ctx, stmt, pgvector.NewVector(embedding), topK)
	if err != nil {
		return nil, fmt.Errorf("query similar chunks: %w", err)
	}
	defer rows.Close()

	var results []entity.SearchResult
	for rows.Next() {
		var r entity.SearchResult
		if err := rows.Scan(&r.PageID, &r.Title, &r.PageURL, &r.Content, &r.ChunkIndex, &r.Similarity); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

// Close releases the underlying connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) storedHash(ctx context.Context, pageID string) (string, error) {
	query := fmt.Sprintf(`SELECT content_hash FROM %s WHERE page_id = $1 LIMIT 1`, s.cfg.TableName)

	var hash string
	err := s.pool.QueryRow(ctx, query, pageID).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup content hash: %w", err)
	}

	return hash, nil
}

func contentHash(title, content string) string {
	sum := sha256.Sum256([]byte(title + "\x00" + content))
	return hex.EncodeToString(sum[:])
}
