// Package memory holds repositories backed by process memory. Candidate
// profiles are transient by design: they exist to drive a matching session,
// not to be a system of record.
package memory

import (
	"context"
	"sync"

	"go-jobscout-backend/internal/domain"
)

type candidateRepo struct {
	mu         sync.RWMutex
	candidates map[string]domain.Candidate
}

func NewCandidateRepository() domain.CandidateRepository {
	return &candidateRepo{candidates: make(map[string]domain.Candidate)}
}

func (r *candidateRepo) Save(ctx context.Context, candidate *domain.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.candidates[candidate.ID] = *candidate
	return nil
}

func (r *candidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	candidate, ok := r.candidates[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &candidate, nil
}

func (r *candidateRepo) FetchAll(ctx context.Context) ([]domain.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]domain.Candidate, 0, len(r.candidates))
	for _, c := range r.candidates {
		all = append(all, c)
	}
	return all, nil
}
