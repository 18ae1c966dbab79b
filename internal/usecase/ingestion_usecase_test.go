package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-jobscout-backend/internal/domain"
	"go-jobscout-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ingestionMocks struct {
	companyRepo *MockCompanyRepo
	jobRepo     *MockJobRepo
	locator     *MockLocator
	source      *MockJobSource
	renderer    *MockRenderer
	extractor   *MockExtractor
	jdParser    *MockJDParser
	embedder    *MockEmbedder
}

func newIngestionUsecase() (domain.IngestionUsecase, *ingestionMocks) {
	m := &ingestionMocks{
		companyRepo: new(MockCompanyRepo),
		jobRepo:     new(MockJobRepo),
		locator:     new(MockLocator),
		source:      new(MockJobSource),
		renderer:    new(MockRenderer),
		extractor:   new(MockExtractor),
		jdParser:    new(MockJDParser),
		embedder:    new(MockEmbedder),
	}
	uc := usecase.NewIngestionUsecase(
		m.companyRepo, m.jobRepo, m.locator, m.source,
		m.renderer, m.extractor, m.jdParser, m.embedder,
	)
	return uc, m
}

func strPtr(s string) *string { return &s }

func atsPtr(t domain.ATSType) *domain.ATSType { return &t }

func greenhouseCompany() *domain.Company {
	return &domain.Company{
		ID:            1,
		Name:          "Acme",
		HomepageURL:   "https://acme.com",
		CareerPageURL: strPtr("https://boards.greenhouse.io/acme"),
		ATSType:       atsPtr(domain.ATSGreenhouse),
	}
}

func TestIngestCompanyViaATS(t *testing.T) {
	listing := domain.FetchedJob{
		Title:       "Backend Engineer",
		Location:    "Remote",
		Description: "Build Go services",
		ApplyURL:    "https://boards.greenhouse.io/acme/jobs/101",
	}
	parsed := &domain.ParsedJD{
		Role:     "Backend Engineer",
		Skills:   []string{"Go"},
		Location: strPtr("Remote"),
	}

	t.Run("Should parse, embed and insert a new listing", func(t *testing.T) {
		uc, m := newIngestionUsecase()
		company := greenhouseCompany()

		m.source.On("Fetch", mock.Anything, *company.CareerPageURL, domain.ATSGreenhouse).
			Return([]domain.FetchedJob{listing})
		m.jdParser.On("Parse", mock.Anything, mock.Anything).Return(parsed, nil)
		m.jobRepo.On("GetByHash", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
		m.embedder.On("EmbedJob", mock.Anything, mock.Anything).Return([]float32{0.1}, nil)
		m.jobRepo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(true, nil)
		m.companyRepo.On("TouchLastChecked", mock.Anything, company.ID, mock.Anything).Return(nil)

		jobs, err := uc.IngestCompany(context.Background(), company)

		assert.NoError(t, err)
		assert.Len(t, jobs, 1)
		assert.True(t, jobs[0].IsNew)
		assert.Equal(t, "Backend Engineer", jobs[0].Title)
		assert.Equal(t, domain.SourceATSAPI, jobs[0].Source)
		m.companyRepo.AssertCalled(t, "TouchLastChecked", mock.Anything, company.ID, mock.Anything)
		m.renderer.AssertNotCalled(t, "RenderText", mock.Anything, mock.Anything)
	})

	t.Run("Should dedupe against an existing hash without inserting", func(t *testing.T) {
		uc, m := newIngestionUsecase()
		company := greenhouseCompany()

		existing := &domain.Job{
			ID:          42,
			Parsed:      *parsed,
			CompanyName: "Acme",
			Source:      domain.SourceATSAPI,
		}

		m.source.On("Fetch", mock.Anything, mock.Anything, mock.Anything).
			Return([]domain.FetchedJob{listing})
		m.jdParser.On("Parse", mock.Anything, mock.Anything).Return(parsed, nil)
		m.jobRepo.On("GetByHash", mock.Anything, mock.Anything).Return(existing, nil)
		m.companyRepo.On("TouchLastChecked", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		jobs, err := uc.IngestCompany(context.Background(), company)

		assert.NoError(t, err)
		assert.Len(t, jobs, 1)
		assert.False(t, jobs[0].IsNew)
		assert.Equal(t, int64(42), jobs[0].ID)
		m.jobRepo.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
		m.embedder.AssertNotCalled(t, "EmbedJob", mock.Anything, mock.Anything)
	})

	t.Run("Should report the winner after losing an insert race", func(t *testing.T) {
		uc, m := newIngestionUsecase()
		company := greenhouseCompany()

		winner := &domain.Job{ID: 77, Parsed: *parsed, CompanyName: "Acme"}

		m.source.On("Fetch", mock.Anything, mock.Anything, mock.Anything).
			Return([]domain.FetchedJob{listing})
		m.jdParser.On("Parse", mock.Anything, mock.Anything).Return(parsed, nil)
		m.jobRepo.On("GetByHash", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound).Once()
		m.embedder.On("EmbedJob", mock.Anything, mock.Anything).Return([]float32{0.1}, nil)
		m.jobRepo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(false, nil)
		m.jobRepo.On("GetByHash", mock.Anything, mock.Anything).Return(winner, nil).Once()
		m.companyRepo.On("TouchLastChecked", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		jobs, err := uc.IngestCompany(context.Background(), company)

		assert.NoError(t, err)
		assert.Len(t, jobs, 1)
		assert.False(t, jobs[0].IsNew)
		assert.Equal(t, int64(77), jobs[0].ID)
	})

	t.Run("Should isolate a failing listing from its siblings", func(t *testing.T) {
		uc, m := newIngestionUsecase()
		company := greenhouseCompany()

		broken := domain.FetchedJob{Title: "??", ApplyURL: "https://boards.greenhouse.io/acme/jobs/102"}

		m.source.On("Fetch", mock.Anything, mock.Anything, mock.Anything).
			Return([]domain.FetchedJob{broken, listing})
		m.jdParser.On("Parse", mock.Anything, mock.Anything).Return(nil, errors.New("no role found")).Once()
		m.jdParser.On("Parse", mock.Anything, mock.Anything).Return(parsed, nil).Once()
		m.jobRepo.On("GetByHash", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
		m.embedder.On("EmbedJob", mock.Anything, mock.Anything).Return([]float32{0.1}, nil)
		m.jobRepo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(true, nil)
		m.companyRepo.On("TouchLastChecked", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		jobs, err := uc.IngestCompany(context.Background(), company)

		assert.NoError(t, err)
		assert.Len(t, jobs, 1)
		assert.Equal(t, "Backend Engineer", jobs[0].Title)
	})

	t.Run("Should store the listing even when embedding fails", func(t *testing.T) {
		uc, m := newIngestionUsecase()
		company := greenhouseCompany()

		var stored *domain.Job
		m.source.On("Fetch", mock.Anything, mock.Anything, mock.Anything).
			Return([]domain.FetchedJob{listing})
		m.jdParser.On("Parse", mock.Anything, mock.Anything).Return(parsed, nil)
		m.jobRepo.On("GetByHash", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
		m.embedder.On("EmbedJob", mock.Anything, mock.Anything).Return(nil, errors.New("quota exceeded"))
		m.jobRepo.On("CreateIfAbsent", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.Job) }).
			Return(true, nil)
		m.companyRepo.On("TouchLastChecked", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		jobs, err := uc.IngestCompany(context.Background(), company)

		assert.NoError(t, err)
		assert.Len(t, jobs, 1)
		assert.True(t, jobs[0].IsNew)
		assert.NotNil(t, stored)
		assert.Nil(t, stored.Embedding)
	})
}

func TestIngestCompanyCareerPageResolution(t *testing.T) {
	t.Run("Should skip the company when no career page is found", func(t *testing.T) {
		uc, m := newIngestionUsecase()
		company := &domain.Company{ID: 2, Name: "Beta", HomepageURL: "https://beta.io"}

		m.locator.On("Locate", mock.Anything, "https://beta.io").Return("", false)

		jobs, err := uc.IngestCompany(context.Background(), company)

		assert.NoError(t, err)
		assert.Nil(t, jobs)
		// The company stays stale so the next sweep retries it.
		m.companyRepo.AssertNotCalled(t, "TouchLastChecked", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should locate and cache a missing career page", func(t *testing.T) {
		uc, m := newIngestionUsecase()
		company := &domain.Company{ID: 2, Name: "Beta", HomepageURL: "https://beta.io"}

		m.locator.On("Locate", mock.Anything, "https://beta.io").Return("https://beta.io/careers", true)
		m.companyRepo.On("UpdateCareerPage", mock.Anything, int64(2), "https://beta.io/careers").Return(nil)
		m.renderer.On("RenderText", mock.Anything, "https://beta.io/careers").Return("no openings", nil)
		m.extractor.On("ExtractJobs", mock.Anything, "no openings", "https://beta.io/careers").Return(nil)
		m.companyRepo.On("TouchLastChecked", mock.Anything, int64(2), mock.Anything).Return(nil)

		jobs, err := uc.IngestCompany(context.Background(), company)

		assert.NoError(t, err)
		assert.Empty(t, jobs)
		m.companyRepo.AssertCalled(t, "UpdateCareerPage", mock.Anything, int64(2), "https://beta.io/careers")
		assert.Equal(t, "https://beta.io/careers", *company.CareerPageURL)
	})

	t.Run("Should reuse a cached career page without locating", func(t *testing.T) {
		uc, m := newIngestionUsecase()
		company := &domain.Company{
			ID:            2,
			Name:          "Beta",
			HomepageURL:   "https://beta.io",
			CareerPageURL: strPtr("https://beta.io/careers"),
		}

		m.renderer.On("RenderText", mock.Anything, "https://beta.io/careers").Return("no openings", nil)
		m.extractor.On("ExtractJobs", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		m.companyRepo.On("TouchLastChecked", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		_, err := uc.IngestCompany(context.Background(), company)

		assert.NoError(t, err)
		m.locator.AssertNotCalled(t, "Locate", mock.Anything, mock.Anything)
	})
}

func TestIngestCompanyUniversal(t *testing.T) {
	parsed := &domain.ParsedJD{Role: "Backend Engineer", Location: strPtr("Remote")}

	t.Run("Should scrape even when a vendor API is available", func(t *testing.T) {
		uc, m := newIngestionUsecase()
		company := greenhouseCompany()

		m.renderer.On("RenderText", mock.Anything, *company.CareerPageURL).Return("page text", nil)
		m.extractor.On("ExtractJobs", mock.Anything, "page text", *company.CareerPageURL).
			Return([]domain.FetchedJob{{
				Title:       "Backend Engineer",
				Location:    "Remote",
				Description: "Build Go services",
				ApplyURL:    "/jobs/101",
			}})
		m.jdParser.On("Parse", mock.Anything, mock.Anything).Return(parsed, nil)
		m.jobRepo.On("GetByHash", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
		m.embedder.On("EmbedJob", mock.Anything, mock.Anything).Return([]float32{0.1}, nil)

		var stored *domain.Job
		m.jobRepo.On("CreateIfAbsent", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.Job) }).
			Return(true, nil)
		m.companyRepo.On("TouchLastChecked", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		jobs, err := uc.IngestCompanyUniversal(context.Background(), company)

		assert.NoError(t, err)
		assert.Len(t, jobs, 1)
		assert.Equal(t, domain.SourceUniversal, jobs[0].Source)
		m.source.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything)

		// Relative apply links resolve against the career page.
		assert.NotNil(t, stored)
		assert.Equal(t, "https://boards.greenhouse.io/jobs/101", stored.ApplyURL)
	})

	t.Run("Should follow apply links for listings without a description", func(t *testing.T) {
		uc, m := newIngestionUsecase()
		company := &domain.Company{
			ID:            3,
			Name:          "Gamma",
			HomepageURL:   "https://gamma.dev",
			CareerPageURL: strPtr("https://gamma.dev/careers"),
		}

		m.renderer.On("RenderText", mock.Anything, "https://gamma.dev/careers").Return("listing page", nil)
		m.extractor.On("ExtractJobs", mock.Anything, "listing page", "https://gamma.dev/careers").
			Return([]domain.FetchedJob{{
				Title:    "Backend Engineer",
				ApplyURL: "https://gamma.dev/jobs/1",
			}})
		m.renderer.On("RenderText", mock.Anything, "https://gamma.dev/jobs/1").Return("posting page", nil)
		m.extractor.On("ExtractDescription", mock.Anything, "posting page", "https://gamma.dev/jobs/1").
			Return("Full description here", true)

		var rawJD string
		m.jdParser.On("Parse", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { rawJD = args.String(1) }).
			Return(parsed, nil)
		m.jobRepo.On("GetByHash", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
		m.embedder.On("EmbedJob", mock.Anything, mock.Anything).Return([]float32{0.1}, nil)
		m.jobRepo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(true, nil)
		m.companyRepo.On("TouchLastChecked", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		jobs, err := uc.IngestCompanyUniversal(context.Background(), company)

		assert.NoError(t, err)
		assert.Len(t, jobs, 1)
		assert.Contains(t, rawJD, "Full description here")
	})

	t.Run("Should yield nothing when the page fails to render", func(t *testing.T) {
		uc, m := newIngestionUsecase()
		company := &domain.Company{
			ID:            3,
			Name:          "Gamma",
			HomepageURL:   "https://gamma.dev",
			CareerPageURL: strPtr("https://gamma.dev/careers"),
		}

		m.renderer.On("RenderText", mock.Anything, mock.Anything).Return("", errors.New("net::ERR_TIMED_OUT"))
		m.companyRepo.On("TouchLastChecked", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		jobs, err := uc.IngestCompanyUniversal(context.Background(), company)

		assert.NoError(t, err)
		assert.Empty(t, jobs)
		m.extractor.AssertNotCalled(t, "ExtractJobs", mock.Anything, mock.Anything, mock.Anything)
	})
}
