package domain

import "context"

// MatchResult ranks one entity against a query embedding. Rank is 1-based
// and assigned after sorting by score descending.
type MatchResult struct {
	ID         string  `json:"id"`
	Score      float64 `json:"score"`
	Percentage int     `json:"percentage"`
	Rank       int     `json:"rank"`
}

// LLM is the external language-model capability: chat completion with a
// system/user split, and text embedding.
type LLM interface {
	Complete(ctx context.Context, system, user string, temperature float32) (string, error)
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Embedder turns structured records into vectors. Raw free text is never
// embedded for structured entities; a compact descriptive sentence is.
type Embedder interface {
	EmbedJob(ctx context.Context, parsed *ParsedJD) ([]float32, error)
	EmbedCandidate(ctx context.Context, parsed *ParsedResume) ([]float32, error)
}

type MatchUsecase interface {
	MatchJobToCandidates(ctx context.Context, jobID int64, topK int, minScore *float64) ([]MatchResult, error)
	MatchCandidateToJobs(ctx context.Context, candidateID string, topK int, minScore *float64) ([]MatchResult, error)
}
