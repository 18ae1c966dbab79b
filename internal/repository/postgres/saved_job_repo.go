package postgres

import (
	"context"
	"errors"

	"go-jobscout-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type savedJobRepo struct {
	db *pgxpool.Pool
}

func NewSavedJobRepository(db *pgxpool.Pool) domain.SavedJobRepository {
	return &savedJobRepo{db: db}
}

func (r *savedJobRepo) Create(ctx context.Context, saved *domain.SavedJob) error {
	query := `INSERT INTO saved_jobs (user_id, job_id, notes, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		saved.UserID, saved.JobID, saved.Notes, saved.CreatedAt, saved.UpdatedAt,
	).Scan(&saved.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *savedJobRepo) GetByUserAndJob(ctx context.Context, userID string, jobID int64) (*domain.SavedJob, error) {
	query := `SELECT id, user_id, job_id, notes, created_at, updated_at FROM saved_jobs WHERE user_id = $1 AND job_id = $2`
	return r.scanOne(r.db.QueryRow(ctx, query, userID, jobID))
}

func (r *savedJobRepo) FetchByUser(ctx context.Context, userID string) ([]domain.SavedJob, error) {
	query := `SELECT id, user_id, job_id, notes, created_at, updated_at FROM saved_jobs WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var saved []domain.SavedJob
	for rows.Next() {
		var s domain.SavedJob
		if err := rows.Scan(&s.ID, &s.UserID, &s.JobID, &s.Notes, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		saved = append(saved, s)
	}
	return saved, rows.Err()
}

func (r *savedJobRepo) UpdateNotes(ctx context.Context, userID string, jobID int64, notes string) (*domain.SavedJob, error) {
	query := `UPDATE saved_jobs SET notes = $3, updated_at = NOW()
              WHERE user_id = $1 AND job_id = $2
              RETURNING id, user_id, job_id, notes, created_at, updated_at`
	return r.scanOne(r.db.QueryRow(ctx, query, userID, jobID, notes))
}

func (r *savedJobRepo) DeleteByUserAndJob(ctx context.Context, userID string, jobID int64) error {
	query := `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`
	result, err := r.db.Exec(ctx, query, userID, jobID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *savedJobRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM saved_jobs WHERE user_id = $1`, userID).Scan(&total)
	return total, err
}

func (r *savedJobRepo) scanOne(row pgx.Row) (*domain.SavedJob, error) {
	var saved domain.SavedJob
	err := row.Scan(&saved.ID, &saved.UserID, &saved.JobID, &saved.Notes, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &saved, nil
}
