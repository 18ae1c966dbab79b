package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-jobscout-backend/internal/domain"
	"go-jobscout-backend/pkg/apperror"
)

type savedJobUsecase struct {
	savedJobRepo domain.SavedJobRepository
	jobRepo      domain.JobRepository
}

func NewSavedJobUsecase(savedJobRepo domain.SavedJobRepository, jobRepo domain.JobRepository) domain.SavedJobUsecase {
	return &savedJobUsecase{savedJobRepo: savedJobRepo, jobRepo: jobRepo}
}

func (u *savedJobUsecase) SaveJob(ctx context.Context, userID string, jobID int64, notes string) (*domain.SavedJob, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperror.BadRequest("User ID is required")
	}

	if _, err := u.jobRepo.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, err
	}

	now := time.Now()
	saved := &domain.SavedJob{
		UserID:    userID,
		JobID:     jobID,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.savedJobRepo.Create(ctx, saved); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperror.Conflict("Job already saved")
		}
		return nil, err
	}
	return saved, nil
}

func (u *savedJobUsecase) UnsaveJob(ctx context.Context, userID string, jobID int64) error {
	err := u.savedJobRepo.DeleteByUserAndJob(ctx, userID, jobID)
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Saved job not found")
	}
	return err
}

// ListSavedJobs resolves each entry's job. Entries whose job has since been
// purged by retention cleanup are kept with a nil Job so the save itself
// stays visible.
func (u *savedJobUsecase) ListSavedJobs(ctx context.Context, userID string) ([]domain.SavedJobWithJob, error) {
	saved, err := u.savedJobRepo.FetchByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	results := make([]domain.SavedJobWithJob, 0, len(saved))
	for _, s := range saved {
		entry := domain.SavedJobWithJob{
			ID:      s.ID,
			Notes:   s.Notes,
			SavedAt: s.CreatedAt,
		}
		job, err := u.jobRepo.GetByID(ctx, s.JobID)
		if err == nil {
			entry.Job = job
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		results = append(results, entry)
	}
	return results, nil
}

func (u *savedJobUsecase) IsJobSaved(ctx context.Context, userID string, jobID int64) (bool, error) {
	_, err := u.savedJobRepo.GetByUserAndJob(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (u *savedJobUsecase) UpdateNotes(ctx context.Context, userID string, jobID int64, notes string) (*domain.SavedJob, error) {
	saved, err := u.savedJobRepo.UpdateNotes(ctx, userID, jobID, notes)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Saved job not found")
		}
		return nil, err
	}
	return saved, nil
}

func (u *savedJobUsecase) CountSavedJobs(ctx context.Context, userID string) (int64, error) {
	return u.savedJobRepo.CountByUser(ctx, userID)
}
