package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/azis14/second-brain/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is a mock Notion client for local development without API
// credentials.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) QueryDatabase(ctx context.Context, databaseID, startCursor string, pageSize int) (*entity.DatabaseQueryResponse, error) {
	ctxzap.Info(ctx, "[MOCK] querying notion database",
		zap.String("database_id", databaseID),
		zap.Int("page_size", pageSize),
	)

	pages := make([]entity.Page, 0, 3)
	for i := 0; i < 3; i++ {
		props, _ := json.Marshal(map[string]any{
			"Name": map[string]any{
				"type": "title",
				"title": []map[string]string{
					{"plain_text": fmt.Sprintf("Mock page %d", i+1)},
				},
			},
		})
		pages = append(pages, entity.Page{
			ID:             fmt.Sprintf("mock-page-%d", i+1),
			CreatedTime:    time.Now().Add(-24 * time.Hour),
			LastEditedTime: time.Now(),
			URL:            fmt.Sprintf("https://www.notion.so/mock-page-%d", i+1),
			Properties:     props,
		})
	}

	return &entity.DatabaseQueryResponse{
		Results: pages,
		HasMore: false,
	}, nil
}

func (m *MockConnector) ListBlockChildren(ctx context.Context, blockID string) ([]entity.Block, error) {
	ctxzap.Info(ctx, "[MOCK] listing block children",
		zap.String("block_id", blockID),
	)

	return []entity.Block{
		{
			Type: "heading_1",
			Payload: entity.BlockPayload{
				RichText: []entity.RichText{{PlainText: "Mock heading"}},
			},
		},
		{
			Type: "paragraph",
			Payload: entity.BlockPayload{
				RichText: []entity.RichText{{PlainText: "Mock paragraph content for block " + blockID}},
			},
		},
	}, nil
}
