package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go-jobscout-backend/internal/discovery"
	"go-jobscout-backend/internal/domain"
	"go-jobscout-backend/pkg/apperror"
	"go-jobscout-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

const companyDiscoverySystemPrompt = `You are a company research assistant. Given a hiring market query, list real companies known to hire in that space.

CRITICAL: You MUST respond with ONLY valid JSON. No markdown, no code blocks, no explanations.

OUTPUT SCHEMA:
{
  "companies": [
    { "name": "string", "homepage_url": "string", "industry": "string" }
  ]
}

RULES:
- Only include companies that actually exist
- homepage_url must be the company's primary domain (e.g., "https://stripe.com")
- Do not include job boards, staffing agencies, or aggregators
- Return exactly the number of companies requested, fewer only if the query is too narrow`

type companyUsecase struct {
	companyRepo domain.CompanyRepository
	llm         domain.LLM
	validate    *validator.Validate
}

func NewCompanyUsecase(companyRepo domain.CompanyRepository, llm domain.LLM, validate *validator.Validate) domain.CompanyUsecase {
	return &companyUsecase{companyRepo: companyRepo, llm: llm, validate: validate}
}

// Seed inserts the given companies, skipping names that already exist.
// Matching is case-insensitive so reseeding is idempotent.
func (u *companyUsecase) Seed(ctx context.Context, seeds []domain.SeedCompany) (int, error) {
	created := 0
	for _, seed := range seeds {
		if _, err := u.companyRepo.GetByName(ctx, seed.Name); err == nil {
			continue
		}

		now := time.Now()
		company := &domain.Company{
			Name:        seed.Name,
			HomepageURL: seed.HomepageURL,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := u.companyRepo.Create(ctx, company); err != nil {
			logger.Log.Warn("failed to seed company", "company", seed.Name, "error", err)
			continue
		}
		created++
	}
	return created, nil
}

// Discover asks the model for companies hiring in the given space and
// persists the ones not already tracked. Already-known companies come back
// with IsNew false so callers can see overlap with the existing set.
func (u *companyUsecase) Discover(ctx context.Context, query string, count int) ([]domain.DiscoveredCompany, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperror.BadRequest("Query is required")
	}
	if count < 1 {
		count = 10
	}
	if count > 20 {
		count = 20
	}

	userPrompt := fmt.Sprintf("Query: %s\nNumber of companies: %d", query, count)
	content, err := u.llm.Complete(ctx, companyDiscoverySystemPrompt, userPrompt, 0.3)
	if err != nil {
		return nil, fmt.Errorf("company discovery completion: %w", err)
	}

	payload := discovery.ExtractJSONPayload(content)
	if payload == "" {
		return nil, fmt.Errorf("no JSON object in model response")
	}

	var parsed struct {
		Companies []domain.DiscoveredCompany `json:"companies"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, fmt.Errorf("malformed discovery response: %w", err)
	}

	var results []domain.DiscoveredCompany
	for _, dc := range parsed.Companies {
		if dc.Name == "" {
			continue
		}
		// The model occasionally fabricates bare domains or garbage URLs.
		if err := u.validate.Var(dc.HomepageURL, "required,url"); err != nil {
			logger.Log.Warn("discarding discovered company with invalid homepage",
				"company", dc.Name, "homepage", dc.HomepageURL)
			continue
		}
		if _, err := u.companyRepo.GetByName(ctx, dc.Name); err == nil {
			dc.IsNew = false
			results = append(results, dc)
			continue
		}

		now := time.Now()
		company := &domain.Company{
			Name:        dc.Name,
			HomepageURL: dc.HomepageURL,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := u.companyRepo.Create(ctx, company); err != nil {
			logger.Log.Warn("failed to persist discovered company", "company", dc.Name, "error", err)
			continue
		}
		dc.IsNew = true
		results = append(results, dc)
	}

	return results, nil
}

func (u *companyUsecase) GetByName(ctx context.Context, name string) (*domain.Company, error) {
	return u.companyRepo.GetByName(ctx, name)
}

func (u *companyUsecase) List(ctx context.Context, page, pageSize int) ([]domain.Company, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	return u.companyRepo.Fetch(ctx, pageSize, offset)
}
