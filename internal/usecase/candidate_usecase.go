package usecase

import (
	"context"
	"fmt"
	"time"

	"go-jobscout-backend/internal/domain"
	"go-jobscout-backend/pkg/logger"

	"github.com/google/uuid"
)

type candidateUsecase struct {
	candidateRepo domain.CandidateRepository
	resumeParser  domain.ResumeParser
	embedder      domain.Embedder
}

func NewCandidateUsecase(candidateRepo domain.CandidateRepository, resumeParser domain.ResumeParser, embedder domain.Embedder) domain.CandidateUsecase {
	return &candidateUsecase{
		candidateRepo: candidateRepo,
		resumeParser:  resumeParser,
		embedder:      embedder,
	}
}

// CreateFromResume parses and embeds a resume in one pass. A candidate
// without an embedding cannot be matched, so embedding failure fails the
// whole operation rather than storing a half-built profile.
func (u *candidateUsecase) CreateFromResume(ctx context.Context, resumeText string) (*domain.Candidate, error) {
	parsed, err := u.resumeParser.Parse(ctx, resumeText)
	if err != nil {
		return nil, err
	}

	embedding, err := u.embedder.EmbedCandidate(ctx, parsed)
	if err != nil {
		return nil, fmt.Errorf("embed candidate profile: %w", err)
	}

	candidate := &domain.Candidate{
		ID:        uuid.NewString(),
		RawResume: resumeText,
		Parsed:    *parsed,
		Embedding: embedding,
		CreatedAt: time.Now(),
	}
	if err := u.candidateRepo.Save(ctx, candidate); err != nil {
		return nil, err
	}

	logger.Log.Info("candidate profile created", "candidate_id", candidate.ID, "role", parsed.PrimaryRole)
	return candidate, nil
}

func (u *candidateUsecase) GetCandidate(ctx context.Context, id string) (*domain.Candidate, error) {
	return u.candidateRepo.GetByID(ctx, id)
}

func (u *candidateUsecase) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	return u.candidateRepo.FetchAll(ctx)
}
