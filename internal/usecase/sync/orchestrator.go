package sync

import (
	"context"
	stdsync "sync"
	"time"

	"github.com/azis14/second-brain/internal/config"
	"github.com/azis14/second-brain/internal/entity"
	"github.com/azis14/second-brain/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// queryBatchSize is the maximum page size accepted by the document source.
const queryBatchSize = 100

// Orchestrator runs background sync jobs, one per configured document
// database, and keeps their records in an expiring registry so callers can
// poll job outcomes.
type Orchestrator struct {
	source      DocumentSource
	extractor   ContentExtractor
	store       PageStore
	databaseIDs []string
	jobs        *cache.Cache
	wg          stdsync.WaitGroup
	logger      *zap.Logger
}

func NewOrchestrator(
	source DocumentSource,
	extractor ContentExtractor,
	store PageStore,
	databaseIDs []string,
	cfg config.SyncConfig,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		source:      source,
		extractor:   extractor,
		store:       store,
		databaseIDs: databaseIDs,
		jobs:        cache.New(cfg.JobTTL, cfg.JobTTL/2),
		logger:      logger,
	}
}

// Start schedules one background job per configured database and returns
// their references immediately, before any page is processed.
func (o *Orchestrator) Start(ctx context.Context, req entity.SyncRequest) []entity.SyncJobRef {
	refs := make([]entity.SyncJobRef, 0, len(o.databaseIDs))

	for _, databaseID := range o.databaseIDs {
		job := entity.SyncJob{
			ID:          uuid.New().String(),
			DatabaseID:  databaseID,
			Status:      entity.SyncJobRunning,
			ForceUpdate: req.ForceUpdate,
			StartedAt:   time.Now().UTC(),
		}
		o.jobs.SetDefault(job.ID, job)
		refs = append(refs, entity.SyncJobRef{JobID: job.ID, DatabaseID: databaseID})

		// Background context carries the request logger but not its
		// cancellation; the job outlives the HTTP request.
		bgCtx := logger.Detach(ctx,
			zap.String("job_id", job.ID),
			zap.String("database_id", databaseID),
			zap.String("action", "SyncDatabase-async"),
		)

		o.wg.Add(1)
		go func(job entity.SyncJob) {
			defer o.wg.Done()
			o.runJob(bgCtx, job, req)
		}(job)
	}

	return refs
}

// Job returns the record of a scheduled job, or ErrJobNotFound once it has
// expired from the registry.
func (o *Orchestrator) Job(id string) (*entity.SyncJob, error) {
	v, ok := o.jobs.Get(id)
	if !ok {
		return nil, entity.ErrJobNotFound
	}

	job := v.(entity.SyncJob)
	return &job, nil
}

// Shutdown waits for in-flight sync jobs to finish, bounded by the context
// deadline.
func (o *Orchestrator) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *Orchestrator) runJob(ctx context.Context, job entity.SyncJob, req entity.SyncRequest) {
	ctxzap.Info(ctx, "starting background sync")

	result, err := o.syncDatabase(ctx, job.DatabaseID, req)

	now := time.Now().UTC()
	job.FinishedAt = &now

	if err != nil {
		ctxzap.Error(ctx, "background sync failed", zap.Error(err))
		job.Status = entity.SyncJobFailed
		job.Error = err.Error()
	} else {
		ctxzap.Info(ctx, "background sync completed",
			zap.Int("success", result.Success),
			zap.Int("skipped", result.Skipped),
			zap.Int("errors", result.Errors),
			zap.Int("total_chunks", result.TotalChunks),
		)
		job.Status = entity.SyncJobCompleted
		job.Result = result
	}

	o.jobs.SetDefault(job.ID, job)
}

// syncDatabase paginates the document database and stores every retrieved
// page. A per-page failure is counted and skipped; a pagination failure
// aborts the job.
func (o *Orchestrator) syncDatabase(ctx context.Context, databaseID string, req entity.SyncRequest) (*entity.SyncResult, error) {
	pages, err := o.fetchPages(ctx, databaseID, req.PageLimit)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "fetched pages to sync", zap.Int("page_count", len(pages)))

	result := &entity.SyncResult{}
	for i := range pages {
		page := &pages[i]

		upsert, err := o.syncPage(ctx, page, databaseID, req.ForceUpdate)
		if err != nil {
			ctxzap.Error(ctx, "failed to sync page",
				zap.String("page_id", page.ID),
				zap.Error(err),
			)
			result.Errors++
			continue
		}

		switch upsert.Status {
		case entity.UpsertSuccess:
			result.Success++
			result.TotalChunks += upsert.ChunksStored
		case entity.UpsertSkipped:
			result.Skipped++
		}
	}

	return result, nil
}

// fetchPages follows the cursor until the source is exhausted or pageLimit
// is reached. A nil pageLimit means unlimited; a non-positive limit fetches
// nothing.
func (o *Orchestrator) fetchPages(ctx context.Context, databaseID string, pageLimit *int) ([]entity.Page, error) {
	var pages []entity.Page
	cursor := ""

	for {
		batchSize := queryBatchSize
		if pageLimit != nil {
			remaining := *pageLimit - len(pages)
			if remaining <= 0 {
				break
			}
			if remaining < batchSize {
				batchSize = remaining
			}
		}

		resp, err := o.source.QueryDatabase(ctx, databaseID, cursor, batchSize)
		if err != nil {
			return nil, err
		}

		pages = append(pages, resp.Results...)

		if !resp.HasMore || resp.NextCursor == nil {
			break
		}
		cursor = *resp.NextCursor
	}

	if pageLimit != nil && len(pages) > *pageLimit {
		pages = pages[:*pageLimit]
	}

	return pages, nil
}

func (o *Orchestrator) syncPage(ctx context.Context, page *entity.Page, databaseID string, forceUpdate bool) (*entity.UpsertResult, error) {
	blocks, err := o.source.ListBlockChildren(ctx, page.ID)
	if err != nil {
		return nil, err
	}

	page.Content = o.extractor.ExtractPageContent(blocks)

	return o.store.UpsertPage(ctx, page, databaseID, forceUpdate)
}
