package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go-jobscout-backend/internal/discovery"
	"go-jobscout-backend/internal/domain"
	"go-jobscout-backend/pkg/logger"
)

type ingestionUsecase struct {
	companyRepo domain.CompanyRepository
	jobRepo     domain.JobRepository
	locator     domain.CareerPageLocator
	source      domain.JobSource
	renderer    domain.PageRenderer
	extractor   domain.JobExtractor
	jdParser    domain.JDParser
	embedder    domain.Embedder
}

func NewIngestionUsecase(
	companyRepo domain.CompanyRepository,
	jobRepo domain.JobRepository,
	locator domain.CareerPageLocator,
	source domain.JobSource,
	renderer domain.PageRenderer,
	extractor domain.JobExtractor,
	jdParser domain.JDParser,
	embedder domain.Embedder,
) domain.IngestionUsecase {
	return &ingestionUsecase{
		companyRepo: companyRepo,
		jobRepo:     jobRepo,
		locator:     locator,
		source:      source,
		renderer:    renderer,
		extractor:   extractor,
		jdParser:    jdParser,
		embedder:    embedder,
	}
}

// IngestCompany runs the full pipeline for one company: resolve the career
// page, pick the fetch path by ATS vendor, then parse, normalize, hash and
// store each listing. A company whose career page cannot be found is skipped
// without stamping last_checked_at so the next sweep retries it.
func (u *ingestionUsecase) IngestCompany(ctx context.Context, company *domain.Company) ([]domain.IngestedJob, error) {
	careerPageURL, ok := u.resolveCareerPage(ctx, company)
	if !ok {
		logger.Log.Warn("career page not found", "company", company.Name, "homepage", company.HomepageURL)
		return nil, nil
	}

	atsType := u.resolveATSType(ctx, company, careerPageURL)

	var fetched []domain.FetchedJob
	var source string
	if discovery.HasAPISource(atsType) {
		fetched = u.source.Fetch(ctx, careerPageURL, atsType)
		source = domain.SourceATSAPI
	} else {
		fetched = u.scrapeListings(ctx, careerPageURL)
		source = domain.SourceUniversal
	}

	ingested := u.processListings(ctx, company, careerPageURL, fetched, source)
	u.stampChecked(ctx, company)
	return ingested, nil
}

// IngestCompanyUniversal bypasses ATS detection and scrapes the career page
// directly. Used to re-check companies whose vendor API went quiet.
func (u *ingestionUsecase) IngestCompanyUniversal(ctx context.Context, company *domain.Company) ([]domain.IngestedJob, error) {
	careerPageURL, ok := u.resolveCareerPage(ctx, company)
	if !ok {
		logger.Log.Warn("career page not found", "company", company.Name, "homepage", company.HomepageURL)
		return nil, nil
	}

	fetched := u.scrapeListings(ctx, careerPageURL)
	ingested := u.processListings(ctx, company, careerPageURL, fetched, domain.SourceUniversal)
	u.stampChecked(ctx, company)
	return ingested, nil
}

// resolveCareerPage returns the cached career page, or locates one and caches
// it on the company row.
func (u *ingestionUsecase) resolveCareerPage(ctx context.Context, company *domain.Company) (string, bool) {
	if company.CareerPageURL != nil && *company.CareerPageURL != "" {
		return *company.CareerPageURL, true
	}

	found, ok := u.locator.Locate(ctx, company.HomepageURL)
	if !ok {
		return "", false
	}

	if err := u.companyRepo.UpdateCareerPage(ctx, company.ID, found); err != nil {
		logger.Log.Warn("failed to cache career page", "company", company.Name, "error", err)
	} else {
		company.CareerPageURL = &found
	}
	return found, true
}

// resolveATSType trusts a previously detected vendor and re-detects only when
// the stored value is missing or inconclusive.
func (u *ingestionUsecase) resolveATSType(ctx context.Context, company *domain.Company, careerPageURL string) domain.ATSType {
	if company.ATSType != nil && *company.ATSType != domain.ATSOther && *company.ATSType != domain.ATSUnknown {
		return *company.ATSType
	}

	detected := discovery.DetectATS(careerPageURL)
	if detected != domain.ATSUnknown {
		if err := u.companyRepo.UpdateATSType(ctx, company.ID, detected); err != nil {
			logger.Log.Warn("failed to persist ats type", "company", company.Name, "error", err)
		} else {
			company.ATSType = &detected
		}
	}
	return detected
}

func (u *ingestionUsecase) scrapeListings(ctx context.Context, careerPageURL string) []domain.FetchedJob {
	pageText, err := u.renderer.RenderText(ctx, careerPageURL)
	if err != nil {
		logger.Log.Warn("failed to render career page", "url", careerPageURL, "error", err)
		return nil
	}

	fetched := u.extractor.ExtractJobs(ctx, pageText, careerPageURL)
	for i := range fetched {
		fetched[i].ApplyURL = resolveApplyURL(careerPageURL, fetched[i].ApplyURL)
	}
	u.enrichDescriptions(ctx, careerPageURL, fetched)
	return fetched
}

// enrichDescriptions follows apply links for listings the career page only
// named, capped so one company cannot monopolize the browser.
func (u *ingestionUsecase) enrichDescriptions(ctx context.Context, careerPageURL string, fetched []domain.FetchedJob) {
	const detailPageCap = 5
	followed := 0
	for i := range fetched {
		if followed >= detailPageCap {
			return
		}
		if fetched[i].Description != "" || fetched[i].ApplyURL == careerPageURL {
			continue
		}
		followed++

		pageText, err := u.renderer.RenderText(ctx, fetched[i].ApplyURL)
		if err != nil {
			logger.Log.Warn("failed to render posting page", "url", fetched[i].ApplyURL, "error", err)
			continue
		}
		if description, ok := u.extractor.ExtractDescription(ctx, pageText, fetched[i].ApplyURL); ok {
			fetched[i].Description = description
		}
	}
}

// processListings runs the per-listing pipeline. Each listing fails in
// isolation: a parse or storage error is logged and the loop moves on.
func (u *ingestionUsecase) processListings(ctx context.Context, company *domain.Company, careerPageURL string, fetched []domain.FetchedJob, source string) []domain.IngestedJob {
	var ingested []domain.IngestedJob
	for _, listing := range fetched {
		result, err := u.processListing(ctx, company, careerPageURL, listing, source)
		if err != nil {
			logger.Log.Warn("failed to ingest listing",
				"company", company.Name, "title", listing.Title, "error", err)
			continue
		}
		ingested = append(ingested, *result)
	}
	return ingested
}

func (u *ingestionUsecase) processListing(ctx context.Context, company *domain.Company, careerPageURL string, listing domain.FetchedJob, source string) (*domain.IngestedJob, error) {
	rawJD := composeRawJD(company.Name, listing)

	parsed, err := u.jdParser.Parse(ctx, rawJD)
	if err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}

	applyURL := listing.ApplyURL
	if applyURL == "" {
		applyURL = careerPageURL
	}

	normalized := discovery.Normalize(company.Name, parsed, applyURL, listing.Location)
	parsed.Role = normalized.Role
	parsed.Skills = normalized.Skills
	parsed.Location = &normalized.Location

	if existing, err := u.jobRepo.GetByHash(ctx, normalized.JobHash); err == nil {
		return ingestedFrom(existing, false), nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	embedding, err := u.embedder.EmbedJob(ctx, parsed)
	if err != nil {
		// Stored anyway; matching skips jobs without a vector.
		logger.Log.Warn("failed to embed listing", "company", company.Name, "title", listing.Title, "error", err)
		embedding = nil
	}

	now := time.Now()
	job := &domain.Job{
		JobHash:     normalized.JobHash,
		RawJD:       rawJD,
		Parsed:      *parsed,
		Embedding:   embedding,
		CompanyName: company.Name,
		ApplyURL:    applyURL,
		Source:      source,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	inserted, err := u.jobRepo.CreateIfAbsent(ctx, job)
	if err != nil {
		return nil, err
	}
	if !inserted {
		// Lost a concurrent-insert race; surface the winner.
		if existing, err := u.jobRepo.GetByHash(ctx, normalized.JobHash); err == nil {
			return ingestedFrom(existing, false), nil
		}
		return ingestedFrom(job, false), nil
	}
	return ingestedFrom(job, true), nil
}

func (u *ingestionUsecase) stampChecked(ctx context.Context, company *domain.Company) {
	if err := u.companyRepo.TouchLastChecked(ctx, company.ID, time.Now()); err != nil {
		logger.Log.Warn("failed to stamp last_checked_at", "company", company.Name, "error", err)
	}
}

// resolveApplyURL absolutizes scraped apply links against the career page.
// An empty or unparseable link falls back to the career page itself.
func resolveApplyURL(careerPageURL, applyURL string) string {
	if applyURL == "" {
		return careerPageURL
	}
	ref, err := url.Parse(applyURL)
	if err != nil {
		return careerPageURL
	}
	if ref.IsAbs() {
		return applyURL
	}
	base, err := url.Parse(careerPageURL)
	if err != nil {
		return careerPageURL
	}
	return base.ResolveReference(ref).String()
}

func composeRawJD(companyName string, listing domain.FetchedJob) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", listing.Title)
	fmt.Fprintf(&b, "Company: %s\n", companyName)
	if listing.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", listing.Location)
	}
	if listing.Description != "" {
		fmt.Fprintf(&b, "\n%s", listing.Description)
	}
	return b.String()
}

func ingestedFrom(job *domain.Job, isNew bool) *domain.IngestedJob {
	location := ""
	if job.Parsed.Location != nil {
		location = *job.Parsed.Location
	}
	return &domain.IngestedJob{
		ID:          job.ID,
		Title:       job.Parsed.Role,
		CompanyName: job.CompanyName,
		Location:    location,
		ApplyURL:    job.ApplyURL,
		Parsed:      job.Parsed,
		Source:      job.Source,
		IsNew:       isNew,
	}
}
