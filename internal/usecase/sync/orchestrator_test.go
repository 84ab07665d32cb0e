package sync_test

import (
	"context"
	"fmt"
	"strconv"
	stdsync "sync"
	"testing"
	"time"

	"github.com/azis14/second-brain/internal/config"
	"github.com/azis14/second-brain/internal/entity"
	"github.com/azis14/second-brain/internal/integration/notion"
	syncuc "github.com/azis14/second-brain/internal/usecase/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	mu         stdsync.Mutex
	pages      []entity.Page
	batchSizes []int
	queryErr   error
	blocksErr  map[string]error
}

func newFakeSource(pageCount int) *fakeSource {
	pages := make([]entity.Page, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		pages = append(pages, entity.Page{
			ID:  fmt.Sprintf("page-%d", i),
			URL: fmt.Sprintf("https://www.notion.so/page-%d", i),
		})
	}
	return &fakeSource{pages: pages}
}

func (f *fakeSource) QueryDatabase(_ context.Context, _, startCursor string, pageSize int) (*entity.DatabaseQueryResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queryErr != nil {
		return nil, f.queryErr
	}

	f.batchSizes = append(f.batchSizes, pageSize)

	start := 0
	if startCursor != "" {
		start, _ = strconv.Atoi(startCursor)
	}

	end := start + pageSize
	if end > len(f.pages) {
		end = len(f.pages)
	}

	resp := &entity.DatabaseQueryResponse{
		Results: f.pages[start:end],
		HasMore: end < len(f.pages),
	}
	if resp.HasMore {
		cursor := strconv.Itoa(end)
		resp.NextCursor = &cursor
	}

	return resp, nil
}

func (f *fakeSource) ListBlockChildren(_ context.Context, blockID string) ([]entity.Block, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.blocksErr[blockID]; ok {
		return nil, err
	}

	return []entity.Block{
		{
			Type: "paragraph",
			Payload: entity.BlockPayload{
				RichText: []entity.RichText{{PlainText: "content of " + blockID}},
			},
		},
	}, nil
}

type upsertCall struct {
	pageID      string
	forceUpdate bool
}

type fakeStore struct {
	mu        stdsync.Mutex
	calls     []upsertCall
	failPages map[string]bool
	skipPages map[string]bool
	unblock   chan struct{}
}

func (f *fakeStore) UpsertPage(_ context.Context, page *entity.Page, _ string, forceUpdate bool) (*entity.UpsertResult, error) {
	if f.unblock != nil {
		<-f.unblock
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, upsertCall{pageID: page.ID, forceUpdate: forceUpdate})

	if f.failPages[page.ID] {
		return nil, fmt.Errorf("store failure for %s", page.ID)
	}
	if f.skipPages[page.ID] {
		return &entity.UpsertResult{Status: entity.UpsertSkipped}, nil
	}

	return &entity.UpsertResult{Status: entity.UpsertSuccess, ChunksStored: 2}, nil
}

func (f *fakeStore) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newOrchestrator(source *fakeSource, store *fakeStore, databaseIDs ...string) *syncuc.Orchestrator {
	if len(databaseIDs) == 0 {
		databaseIDs = []string{"db-1"}
	}
	return syncuc.NewOrchestrator(
		source,
		notion.Extractor{},
		store,
		databaseIDs,
		config.SyncConfig{JobTTL: time.Minute, ShutdownTimeout: 5 * time.Second},
		zap.NewNop(),
	)
}

func waitForJobs(t *testing.T, o *syncuc.Orchestrator) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, o.Shutdown(ctx))
}

func intPtr(v int) *int { return &v }

func TestOrchestrator_RespectsPageLimit(t *testing.T) {
	source := newFakeSource(12)
	store := &fakeStore{}
	o := newOrchestrator(source, store)

	refs := o.Start(context.Background(), entity.SyncRequest{ForceUpdate: false, PageLimit: intPtr(5)})
	require.Len(t, refs, 1)
	waitForJobs(t, o)

	assert.Equal(t, 5, store.callCount())
	for _, call := range store.calls {
		assert.False(t, call.forceUpdate)
	}

	// First batch already shrinks to the remaining quota
	assert.Equal(t, []int{5}, source.batchSizes)

	job, err := o.Job(refs[0].JobID)
	require.NoError(t, err)
	assert.Equal(t, entity.SyncJobCompleted, job.Status)
	require.NotNil(t, job.Result)
	assert.Equal(t, 5, job.Result.Success)
	assert.Equal(t, 10, job.Result.TotalChunks)
}

func TestOrchestrator_UnlimitedPaginatesInFullBatches(t *testing.T) {
	source := newFakeSource(250)
	store := &fakeStore{}
	o := newOrchestrator(source, store)

	refs := o.Start(context.Background(), entity.SyncRequest{ForceUpdate: true, PageLimit: nil})
	waitForJobs(t, o)

	assert.Equal(t, []int{100, 100, 100}, source.batchSizes)
	assert.Equal(t, 250, store.callCount())

	job, err := o.Job(refs[0].JobID)
	require.NoError(t, err)
	assert.Equal(t, 250, job.Result.Success)
}

func TestOrchestrator_LimitBeyondSourceExhaustsEarly(t *testing.T) {
	source := newFakeSource(7)
	store := &fakeStore{}
	o := newOrchestrator(source, store)

	o.Start(context.Background(), entity.SyncRequest{ForceUpdate: true, PageLimit: intPtr(50)})
	waitForJobs(t, o)

	assert.Equal(t, 7, store.callCount())
	assert.Equal(t, []int{50}, source.batchSizes)
}

func TestOrchestrator_ZeroPageLimitFetchesNothing(t *testing.T) {
	source := newFakeSource(12)
	store := &fakeStore{}
	o := newOrchestrator(source, store)

	refs := o.Start(context.Background(), entity.SyncRequest{ForceUpdate: true, PageLimit: intPtr(0)})
	waitForJobs(t, o)

	assert.Empty(t, source.batchSizes)
	assert.Zero(t, store.callCount())

	job, err := o.Job(refs[0].JobID)
	require.NoError(t, err)
	assert.Equal(t, entity.SyncJobCompleted, job.Status)
	assert.Equal(t, &entity.SyncResult{}, job.Result)
}

func TestOrchestrator_PageFailureDoesNotHaltBatch(t *testing.T) {
	source := newFakeSource(4)
	store := &fakeStore{failPages: map[string]bool{"page-1": true}}
	o := newOrchestrator(source, store)

	refs := o.Start(context.Background(), entity.SyncRequest{ForceUpdate: true, PageLimit: intPtr(100)})
	waitForJobs(t, o)

	// Every page is attempted despite the failure in the middle
	assert.Equal(t, 4, store.callCount())

	job, err := o.Job(refs[0].JobID)
	require.NoError(t, err)
	assert.Equal(t, entity.SyncJobCompleted, job.Status)
	assert.Equal(t, 3, job.Result.Success)
	assert.Equal(t, 1, job.Result.Errors)
	assert.Zero(t, job.Result.Skipped)
}

func TestOrchestrator_BlockFetchFailureCountsAsError(t *testing.T) {
	source := newFakeSource(3)
	source.blocksErr = map[string]error{"page-0": fmt.Errorf("notion unavailable")}
	store := &fakeStore{}
	o := newOrchestrator(source, store)

	refs := o.Start(context.Background(), entity.SyncRequest{ForceUpdate: true, PageLimit: intPtr(100)})
	waitForJobs(t, o)

	// The failing page never reaches the store
	assert.Equal(t, 2, store.callCount())

	job, err := o.Job(refs[0].JobID)
	require.NoError(t, err)
	assert.Equal(t, 1, job.Result.Errors)
	assert.Equal(t, 2, job.Result.Success)
}

func TestOrchestrator_SkippedPagesCounted(t *testing.T) {
	source := newFakeSource(3)
	store := &fakeStore{skipPages: map[string]bool{"page-0": true, "page-2": true}}
	o := newOrchestrator(source, store)

	refs := o.Start(context.Background(), entity.SyncRequest{ForceUpdate: false, PageLimit: intPtr(100)})
	waitForJobs(t, o)

	job, err := o.Job(refs[0].JobID)
	require.NoError(t, err)
	assert.Equal(t, 1, job.Result.Success)
	assert.Equal(t, 2, job.Result.Skipped)
	assert.Equal(t, 2, job.Result.TotalChunks)
}

func TestOrchestrator_PaginationFailureFailsJob(t *testing.T) {
	source := newFakeSource(3)
	source.queryErr = fmt.Errorf("database query rejected")
	store := &fakeStore{}
	o := newOrchestrator(source, store)

	refs := o.Start(context.Background(), entity.SyncRequest{ForceUpdate: true, PageLimit: intPtr(100)})
	waitForJobs(t, o)

	job, err := o.Job(refs[0].JobID)
	require.NoError(t, err)
	assert.Equal(t, entity.SyncJobFailed, job.Status)
	assert.Contains(t, job.Error, "database query rejected")
	assert.Nil(t, job.Result)
	assert.Zero(t, store.callCount())
}

func TestOrchestrator_OneJobPerDatabase(t *testing.T) {
	source := newFakeSource(2)
	store := &fakeStore{}
	o := newOrchestrator(source, store, "db-1", "db-2", "db-3")

	refs := o.Start(context.Background(), entity.SyncRequest{ForceUpdate: true, PageLimit: intPtr(100)})
	require.Len(t, refs, 3)
	waitForJobs(t, o)

	seen := map[string]bool{}
	for _, ref := range refs {
		seen[ref.DatabaseID] = true
		job, err := o.Job(ref.JobID)
		require.NoError(t, err)
		assert.Equal(t, entity.SyncJobCompleted, job.Status)
	}
	assert.Len(t, seen, 3)
}

func TestOrchestrator_StartReturnsBeforeWorkFinishes(t *testing.T) {
	source := newFakeSource(2)
	store := &fakeStore{unblock: make(chan struct{})}
	o := newOrchestrator(source, store)

	start := time.Now()
	refs := o.Start(context.Background(), entity.SyncRequest{ForceUpdate: true, PageLimit: intPtr(100)})
	elapsed := time.Since(start)

	require.Len(t, refs, 1)
	assert.Less(t, elapsed, time.Second, "Start must acknowledge before pages are processed")

	job, err := o.Job(refs[0].JobID)
	require.NoError(t, err)
	assert.Equal(t, entity.SyncJobRunning, job.Status)

	close(store.unblock)
	waitForJobs(t, o)

	job, err = o.Job(refs[0].JobID)
	require.NoError(t, err)
	assert.Equal(t, entity.SyncJobCompleted, job.Status)
}

func TestOrchestrator_JobNotFound(t *testing.T) {
	o := newOrchestrator(newFakeSource(0), &fakeStore{})

	_, err := o.Job("unknown")
	assert.ErrorIs(t, err, entity.ErrJobNotFound)
}
