package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobscout-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const companyColumns = `id, name, homepage_url, career_page_url, ats_type, last_checked_at, created_at, updated_at`

type companyRepo struct {
	db *pgxpool.Pool
}

func NewCompanyRepository(db *pgxpool.Pool) domain.CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, company *domain.Company) error {
	query := `INSERT INTO companies (name, homepage_url, career_page_url, ats_type, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		company.Name, company.HomepageURL, company.CareerPageURL, company.ATSType,
		company.CreatedAt, company.UpdatedAt,
	).Scan(&company.ID)
	return err
}

func (r *companyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *companyRepo) GetByName(ctx context.Context, name string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE LOWER(name) = LOWER($1)`
	return r.scanOne(r.db.QueryRow(ctx, query, name))
}

func (r *companyRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Company, int64, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY name ASC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	companies, err := r.scanAll(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return companies, total, nil
}

// FetchStale returns companies whose last sweep is older than cutoff, never
// swept first so new companies get picked up in the next batch.
func (r *companyRepo) FetchStale(ctx context.Context, cutoff time.Time, limit int) ([]domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies
              WHERE last_checked_at IS NULL OR last_checked_at < $1
              ORDER BY last_checked_at ASC NULLS FIRST
              LIMIT $2`

	rows, err := r.db.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *companyRepo) FetchAll(ctx context.Context) ([]domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *companyRepo) UpdateCareerPage(ctx context.Context, id int64, careerPageURL string) error {
	query := `UPDATE companies SET career_page_url = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, careerPageURL)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *companyRepo) UpdateATSType(ctx context.Context, id int64, atsType domain.ATSType) error {
	query := `UPDATE companies SET ats_type = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, atsType)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *companyRepo) TouchLastChecked(ctx context.Context, id int64, at time.Time) error {
	query := `UPDATE companies SET last_checked_at = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, at)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *companyRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM companies WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *companyRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&total)
	return total, err
}

func (r *companyRepo) scanOne(row pgx.Row) (*domain.Company, error) {
	var company domain.Company
	err := row.Scan(
		&company.ID, &company.Name, &company.HomepageURL, &company.CareerPageURL,
		&company.ATSType, &company.LastCheckedAt, &company.CreatedAt, &company.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *companyRepo) scanAll(rows pgx.Rows) ([]domain.Company, error) {
	var companies []domain.Company
	for rows.Next() {
		var company domain.Company
		if err := rows.Scan(
			&company.ID, &company.Name, &company.HomepageURL, &company.CareerPageURL,
			&company.ATSType, &company.LastCheckedAt, &company.CreatedAt, &company.UpdatedAt,
		); err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}
