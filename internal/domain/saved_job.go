package domain

import (
	"context"
	"time"
)

// SavedJob weakly references a Job by id. A user may save a given job at
// most once; the (user, job) pair is unique at the storage layer.
type SavedJob struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	JobID     int64     `json:"job_id"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SavedJobWithJob is a saved-job entry populated with its job. Job is nil
// when the referenced job has since been deleted; readers must tolerate the
// orphan.
type SavedJobWithJob struct {
	ID      int64     `json:"id"`
	Notes   string    `json:"notes"`
	SavedAt time.Time `json:"saved_at"`
	Job     *Job      `json:"job"`
}

type SavedJobRepository interface {
	// Create returns ErrConflict when the (user, job) pair already exists.
	Create(ctx context.Context, saved *SavedJob) error
	GetByUserAndJob(ctx context.Context, userID string, jobID int64) (*SavedJob, error)
	FetchByUser(ctx context.Context, userID string) ([]SavedJob, error)
	UpdateNotes(ctx context.Context, userID string, jobID int64, notes string) (*SavedJob, error)
	DeleteByUserAndJob(ctx context.Context, userID string, jobID int64) error
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type SavedJobUsecase interface {
	SaveJob(ctx context.Context, userID string, jobID int64, notes string) (*SavedJob, error)
	UnsaveJob(ctx context.Context, userID string, jobID int64) error
	ListSavedJobs(ctx context.Context, userID string) ([]SavedJobWithJob, error)
	IsJobSaved(ctx context.Context, userID string, jobID int64) (bool, error)
	UpdateNotes(ctx context.Context, userID string, jobID int64, notes string) (*SavedJob, error)
	CountSavedJobs(ctx context.Context, userID string) (int64, error)
}
