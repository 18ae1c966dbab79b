package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobscout-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

const jobColumns = `id, job_hash, raw_jd, role, min_experience, max_experience, skills, location, employment_type, embedding, company_name, apply_url, source, created_at, updated_at`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

// CreateIfAbsent inserts the job unless its hash already exists. The unique
// index on job_hash arbitrates concurrent inserts, so the returned bool is
// authoritative even when two sweeps process the same posting at once.
func (r *jobRepo) CreateIfAbsent(ctx context.Context, job *domain.Job) (bool, error) {
	query := `INSERT INTO jobs (job_hash, raw_jd, role, min_experience, max_experience, skills, location, employment_type, embedding, company_name, apply_url, source, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
              ON CONFLICT (job_hash) DO NOTHING
              RETURNING id`
	err := r.db.QueryRow(ctx, query,
		job.JobHash, job.RawJD, job.Parsed.Role, job.Parsed.MinExperience, job.Parsed.MaxExperience,
		job.Parsed.Skills, job.Parsed.Location, job.Parsed.EmploymentType, embeddingValue(job.Embedding),
		job.CompanyName, job.ApplyURL, job.Source, job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *jobRepo) GetByHash(ctx context.Context, hash string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE job_hash = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, hash))
}

func (r *jobRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs, err := r.scanAll(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *jobRepo) FetchEmbedded(ctx context.Context, limit int) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE embedding IS NOT NULL ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *jobRepo) CountByCompanyName(ctx context.Context, companyName string) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE LOWER(company_name) = LOWER($1)`, companyName).Scan(&total)
	return total, err
}

func (r *jobRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (r *jobRepo) scanOne(row pgx.Row) (*domain.Job, error) {
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

func (r *jobRepo) scanAll(rows pgx.Rows) ([]domain.Job, error) {
	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	var embedding *pgvector.Vector
	err := row.Scan(
		&job.ID, &job.JobHash, &job.RawJD, &job.Parsed.Role, &job.Parsed.MinExperience,
		&job.Parsed.MaxExperience, &job.Parsed.Skills, &job.Parsed.Location, &job.Parsed.EmploymentType,
		&embedding, &job.CompanyName, &job.ApplyURL, &job.Source, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if embedding != nil {
		job.Embedding = embedding.Slice()
	}
	return &job, nil
}

func embeddingValue(vec []float32) any {
	if len(vec) == 0 {
		return nil
	}
	return pgvector.NewVector(vec)
}
