package domain

import "context"

// ATSType tags a URL with the applicant tracking system vendor behind it.
type ATSType string

const (
	ATSGreenhouse      ATSType = "greenhouse"
	ATSLever           ATSType = "lever"
	ATSWorkday         ATSType = "workday"
	ATSAshby           ATSType = "ashby"
	ATSBambooHR        ATSType = "bamboohr"
	ATSSmartRecruiters ATSType = "smartrecruiters"
	ATSOther           ATSType = "other"
	ATSUnknown         ATSType = "unknown"
)

// FetchedJob is the common shape every job source adapter produces,
// whether the listing came from a vendor API or from LLM extraction.
type FetchedJob struct {
	Title       string `json:"title"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ApplyURL    string `json:"apply_url"`
}

// IngestedJob is the per-listing result of an ingestion run. IsNew is false
// when the listing deduplicated against an existing record.
type IngestedJob struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	CompanyName string   `json:"company_name"`
	Location    string   `json:"location"`
	ApplyURL    string   `json:"apply_url"`
	Parsed      ParsedJD `json:"parsed_jd"`
	Source      string   `json:"source"`
	IsNew       bool     `json:"is_new"`
}

// CleanupResult reports a housekeeping sweep: jobs past retention deleted,
// then companies left with zero jobs. Names is a capped sample.
type CleanupResult struct {
	DeletedJobs         int64    `json:"deleted_jobs"`
	DeletedCompanies    int      `json:"deleted_companies"`
	DeletedCompanyNames []string `json:"deleted_company_names"`
}

// CareerPageLocator finds the most likely career page for a homepage.
// "Not found" is a normal outcome, not an error.
type CareerPageLocator interface {
	Locate(ctx context.Context, homepageURL string) (string, bool)
}

// JobSource fetches listings from a career page via a vendor API. Fetch
// failures and unsupported vendors yield an empty list so one company's
// breakage never aborts sibling work.
type JobSource interface {
	Fetch(ctx context.Context, careerPageURL string, atsType ATSType) []FetchedJob
}

// PageRenderer loads a URL in a shared headless browser and returns the
// page's visible text.
type PageRenderer interface {
	RenderText(ctx context.Context, url string) (string, error)
	Close()
}

// JobExtractor pulls job listings out of rendered page text with an LLM.
// Malformed model output yields an empty list.
type JobExtractor interface {
	ExtractJobs(ctx context.Context, pageText, pageURL string) []FetchedJob
	// ExtractDescription pulls the full description text from a single
	// posting page. ok is false when nothing usable was found.
	ExtractDescription(ctx context.Context, pageText, pageURL string) (string, bool)
}

// JDParser structures a free-text job description.
type JDParser interface {
	Parse(ctx context.Context, rawJD string) (*ParsedJD, error)
}

type IngestionUsecase interface {
	// IngestCompany fetches through the vendor API when the company's ATS
	// is supported and falls back to headless scraping otherwise.
	IngestCompany(ctx context.Context, company *Company) ([]IngestedJob, error)
	// IngestCompanyUniversal forces the render-and-extract path.
	IngestCompanyUniversal(ctx context.Context, company *Company) ([]IngestedJob, error)
}
