package sync

import (
	"context"

	"github.com/azis14/second-brain/internal/entity"
)

// DocumentSource paginates a remote document database and lists page
// content blocks.
type DocumentSource interface {
	QueryDatabase(ctx context.Context, databaseID, startCursor string, pageSize int) (*entity.DatabaseQueryResponse, error)
	ListBlockChildren(ctx context.Context, blockID string) ([]entity.Block, error)
}

// ContentExtractor converts raw blocks into normalized text.
type ContentExtractor interface {
	ExtractPageContent(blocks []entity.Block) []string
}

// PageStore persists an enriched page into the vector store.
type PageStore interface {
	UpsertPage(ctx context.Context, page *entity.Page, databaseID string, forceUpdate bool) (*entity.UpsertResult, error)
}
