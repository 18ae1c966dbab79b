package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource already exists")
)

// Job source tags distinguish the ingestion path a record arrived through.
const (
	SourceATSAPI    = "ats_api"
	SourceUniversal = "universal_scrape"
)

// ParsedJD is the canonical structured form of a job description, produced
// by the LLM parsing step and re-normalized before hashing.
type ParsedJD struct {
	Role           string   `json:"role"`
	MinExperience  *int     `json:"min_experience"`
	MaxExperience  *int     `json:"max_experience"`
	Skills         []string `json:"skills"`
	Location       *string  `json:"location"`
	EmploymentType *string  `json:"employment_type"`
}

// Job is owned by the ingestion pipeline. JobHash is the deterministic
// content hash and the sole dedup key; re-ingesting an already-seen job is a
// no-op that returns the existing record.
type Job struct {
	ID          int64     `json:"id"`
	JobHash     string    `json:"job_hash"`
	RawJD       string    `json:"raw_jd"`
	Parsed      ParsedJD  `json:"parsed_jd"`
	Embedding   []float32 `json:"-"`
	CompanyName string    `json:"company_name"`
	ApplyURL    string    `json:"apply_url"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type JobRepository interface {
	// CreateIfAbsent inserts the job unless another row already holds its
	// hash. Returns false when the hash was taken (including losing a
	// concurrent-insert race); the storage-level unique constraint is the
	// backstop.
	CreateIfAbsent(ctx context.Context, job *Job) (bool, error)
	GetByID(ctx context.Context, id int64) (*Job, error)
	GetByHash(ctx context.Context, hash string) (*Job, error)
	Fetch(ctx context.Context, limit, offset int) ([]Job, int64, error)
	// FetchEmbedded returns jobs that carry an embedding vector.
	FetchEmbedded(ctx context.Context, limit int) ([]Job, error)
	CountByCompanyName(ctx context.Context, companyName string) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type JobUsecase interface {
	GetJob(ctx context.Context, id int64) (*Job, error)
	ListJobs(ctx context.Context, page, pageSize int) ([]Job, int64, error)
}
