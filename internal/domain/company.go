package domain

import (
	"context"
	"time"
)

// Company is a seeded or discovered employer. Name is the identity and is
// unique case-insensitively. CareerPageURL and ATSType start out nil and are
// filled in lazily on the first successful ingestion attempt; once set they
// are trusted on future runs.
type Company struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	HomepageURL   string     `json:"homepage_url"`
	CareerPageURL *string    `json:"career_page_url"`
	ATSType       *ATSType   `json:"ats_type"`
	LastCheckedAt *time.Time `json:"last_checked_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// SeedCompany is a (name, homepage) pair used for bulk seeding.
type SeedCompany struct {
	Name        string `json:"name"`
	HomepageURL string `json:"homepage_url"`
}

// DiscoveredCompany is a company suggested by the LLM discovery agent.
type DiscoveredCompany struct {
	Name        string `json:"name"`
	HomepageURL string `json:"homepage_url"`
	Industry    string `json:"industry,omitempty"`
	IsNew       bool   `json:"is_new"`
}

type CompanyRepository interface {
	Create(ctx context.Context, company *Company) error
	GetByID(ctx context.Context, id int64) (*Company, error)
	// GetByName matches case-insensitively.
	GetByName(ctx context.Context, name string) (*Company, error)
	Fetch(ctx context.Context, limit, offset int) ([]Company, int64, error)
	// FetchStale returns companies never checked or last checked before
	// cutoff, oldest-checked-first (never-checked first of all).
	FetchStale(ctx context.Context, cutoff time.Time, limit int) ([]Company, error)
	FetchAll(ctx context.Context) ([]Company, error)
	UpdateCareerPage(ctx context.Context, id int64, careerPageURL string) error
	UpdateATSType(ctx context.Context, id int64, atsType ATSType) error
	TouchLastChecked(ctx context.Context, id int64, checkedAt time.Time) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type CompanyUsecase interface {
	// Seed inserts every company from the list that does not already
	// exist. Returns how many were created.
	Seed(ctx context.Context, companies []SeedCompany) (int, error)
	// Discover asks the LLM agent for companies matching the query and
	// persists the new ones.
	Discover(ctx context.Context, query string, count int) ([]DiscoveredCompany, error)
	GetByName(ctx context.Context, name string) (*Company, error)
	List(ctx context.Context, page, pageSize int) ([]Company, int64, error)
}
