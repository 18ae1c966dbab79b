package usecase

import (
	"context"
	"errors"
	"strconv"

	"go-jobscout-backend/internal/agents/matching"
	"go-jobscout-backend/internal/domain"
	"go-jobscout-backend/pkg/apperror"
	"go-jobscout-backend/pkg/logger"
)

// matchFetchLimit bounds how many embedded jobs one candidate match scans.
const matchFetchLimit = 1000

type matchUsecase struct {
	jobRepo       domain.JobRepository
	candidateRepo domain.CandidateRepository
	embedder      domain.Embedder
}

func NewMatchUsecase(jobRepo domain.JobRepository, candidateRepo domain.CandidateRepository, embedder domain.Embedder) domain.MatchUsecase {
	return &matchUsecase{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		embedder:      embedder,
	}
}

// MatchJobToCandidates ranks every stored candidate against one job. The job
// is embedded on demand if ingestion stored it without a vector.
func (u *matchUsecase) MatchJobToCandidates(ctx context.Context, jobID int64, topK int, minScore *float64) ([]domain.MatchResult, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, err
	}

	jobVec := job.Embedding
	if len(jobVec) == 0 {
		jobVec, err = u.embedder.EmbedJob(ctx, &job.Parsed)
		if err != nil {
			return nil, apperror.Internal(err)
		}
	}

	candidates, err := u.candidateRepo.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	var scored []matching.Scored
	for _, candidate := range candidates {
		if len(candidate.Embedding) == 0 {
			continue
		}
		score, err := matching.CosineSimilarity(jobVec, candidate.Embedding)
		if err != nil {
			logger.Log.Warn("skipping candidate with incompatible embedding",
				"candidate_id", candidate.ID, "error", err)
			continue
		}
		scored = append(scored, matching.Scored{ID: candidate.ID, Score: score})
	}

	return matching.Rank(scored, topK, minScore), nil
}

// MatchCandidateToJobs ranks embedded jobs against one candidate profile.
func (u *matchUsecase) MatchCandidateToJobs(ctx context.Context, candidateID string, topK int, minScore *float64) ([]domain.MatchResult, error) {
	candidate, err := u.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, err
	}
	if len(candidate.Embedding) == 0 {
		return nil, apperror.BadRequest("Candidate has no embedding")
	}

	jobs, err := u.jobRepo.FetchEmbedded(ctx, matchFetchLimit)
	if err != nil {
		return nil, err
	}

	var scored []matching.Scored
	for _, job := range jobs {
		score, err := matching.CosineSimilarity(candidate.Embedding, job.Embedding)
		if err != nil {
			logger.Log.Warn("skipping job with incompatible embedding",
				"job_id", job.ID, "error", err)
			continue
		}
		scored = append(scored, matching.Scored{ID: strconv.FormatInt(job.ID, 10), Score: score})
	}

	return matching.Rank(scored, topK, minScore), nil
}
