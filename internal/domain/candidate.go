package domain

import (
	"context"
	"time"
)

// ParsedResume is the structured form of a resume produced by the LLM
// parsing step.
type ParsedResume struct {
	Skills               []string `json:"skills"`
	TotalExperienceYears *float64 `json:"total_experience_years"`
	PrimaryRole          string   `json:"primary_role"`
	Summary              string   `json:"summary"`
}

// Candidate is process-local: held in memory for the life of the process,
// behind the same repository shape a persistent store would expose.
type Candidate struct {
	ID        string       `json:"id"`
	RawResume string       `json:"raw_resume"`
	Parsed    ParsedResume `json:"parsed_resume"`
	Embedding []float32    `json:"-"`
	CreatedAt time.Time    `json:"created_at"`
}

type CandidateRepository interface {
	Save(ctx context.Context, candidate *Candidate) error
	GetByID(ctx context.Context, id string) (*Candidate, error)
	FetchAll(ctx context.Context) ([]Candidate, error)
}

type CandidateUsecase interface {
	CreateFromResume(ctx context.Context, resumeText string) (*Candidate, error)
	GetCandidate(ctx context.Context, id string) (*Candidate, error)
	ListCandidates(ctx context.Context) ([]Candidate, error)
}

// ResumeParser structures free-text resumes.
type ResumeParser interface {
	Parse(ctx context.Context, resumeText string) (*ParsedResume, error)
}
