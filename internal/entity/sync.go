package entity

import (
	"encoding/json"
	"time"
)

const (
	defaultPageLimit = 100
)

// SyncRequest is the body of POST /vector/sync. force_update defaults to
// true and page_limit to 100 when the fields are absent; an explicit null
// page_limit removes the limit entirely.
type SyncRequest struct {
	ForceUpdate bool `json:"force_update"`
	PageLimit   *int `json:"page_limit"`
}

func (r *SyncRequest) UnmarshalJSON(data []byte) error {
	type alias SyncRequest

	limit := defaultPageLimit
	tmp := alias{
		ForceUpdate: true,
		PageLimit:   &limit,
	}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}

	*r = SyncRequest(tmp)
	return nil
}

// DefaultSyncRequest returns the request used when the trigger carries no
// body.
func DefaultSyncRequest() SyncRequest {
	limit := defaultPageLimit
	return SyncRequest{
		ForceUpdate: true,
		PageLimit:   &limit,
	}
}

// SyncResult aggregates per-page outcomes of one background sync run.
type SyncResult struct {
	Success     int `json:"success"`
	Skipped     int `json:"skipped"`
	Errors      int `json:"errors"`
	TotalChunks int `json:"total_chunks"`
}

// SyncJobStatus is the lifecycle state of a background sync job.
type SyncJobStatus string

const (
	SyncJobRunning   SyncJobStatus = "running"
	SyncJobCompleted SyncJobStatus = "completed"
	SyncJobFailed    SyncJobStatus = "failed"
)

// SyncJob is the observable record of one background sync task, one per
// configured Notion database.
type SyncJob struct {
	ID          string        `json:"job_id"`
	DatabaseID  string        `json:"database_id"`
	Status      SyncJobStatus `json:"status"`
	ForceUpdate bool          `json:"force_update"`
	StartedAt   time.Time     `json:"started_at"`
	FinishedAt  *time.Time    `json:"finished_at,omitempty"`
	Result      *SyncResult   `json:"result,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// SyncJobRef identifies a scheduled job in the sync acknowledgment.
type SyncJobRef struct {
	JobID      string `json:"job_id"`
	DatabaseID string `json:"database_id"`
}

// SyncAcceptedResponse acknowledges a sync trigger before any page has been
// processed.
type SyncAcceptedResponse struct {
	Status      string       `json:"status"`
	Message     string       `json:"message"`
	ForceUpdate bool         `json:"force_update"`
	Jobs        []SyncJobRef `json:"jobs"`
}
