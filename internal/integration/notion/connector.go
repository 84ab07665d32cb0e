package notion

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/azis14/second-brain/internal/config"
	"github.com/azis14/second-brain/internal/entity"
	"github.com/azis14/second-brain/internal/integration/common"
	pkghttp "github.com/azis14/second-brain/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const blockChildrenPageSize = 100

type Connector struct {
	config    config.NotionConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.NotionConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger,
			pkghttp.WithAuthToken(cfg.APIKey),
			pkghttp.WithDefaultHeader("Notion-Version", cfg.Version),
			pkghttp.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		),
		config: cfg,
		logger: logger,
	}
}

// QueryDatabase fetches one page of results from a Notion database.
// POST /v1/databases/{database_id}/query
func (c *Connector) QueryDatabase(ctx context.Context, databaseID, startCursor string, pageSize int) (*entity.DatabaseQueryResponse, error) {
	endpoint := fmt.Sprintf("/v1/databases/%s/query", databaseID)

	req := entity.DatabaseQueryRequest{
		PageSize:    pageSize,
		StartCursor: startCursor,
	}

	var resp entity.DatabaseQueryResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("query database %s: %w", databaseID, err)
	}

	ctxzap.Debug(ctx, "queried notion database",
		zap.String("database_id", databaseID),
		zap.Int("result_count", len(resp.Results)),
		zap.Bool("has_more", resp.HasMore),
	)

	return &resp, nil
}

// ListBlockChildren fetches all child blocks of a page or block, following
// the children cursor until exhausted.
// GET /v1/blocks/{block_id}/children
func (c *Connector) ListBlockChildren(ctx context.Context, blockID string) ([]entity.Block, error) {
	endpoint := fmt.Sprintf("/v1/blocks/%s/children", blockID)

	var blocks []entity.Block
	cursor := ""

	for {
		opts := []pkghttp.RequestOpt{
			pkghttp.WithQueryParam("page_size", strconv.Itoa(blockChildrenPageSize)),
		}
		if cursor != "" {
			opts = append(opts, pkghttp.WithQueryParam("start_cursor", cursor))
		}

		var resp entity.BlockChildrenResponse
		if err := c.connector.DoRequest(ctx, http.MethodGet, endpoint, nil, &resp, opts...); err != nil {
			return nil, fmt.Errorf("list block children %s: %w", blockID, err)
		}

		blocks = append(blocks, resp.Results...)

		if !resp.HasMore || resp.NextCursor == nil {
			break
		}
		cursor = *resp.NextCursor
	}

	return blocks, nil
}
