package discovery

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"go-jobscout-backend/internal/domain"
	"go-jobscout-backend/pkg/logger"
)

var (
	greenhouseSlugRe = regexp.MustCompile(`(?i)(?:boards\.)?greenhouse\.io/([a-zA-Z0-9_-]+)`)
	leverSlugRe      = regexp.MustCompile(`(?i)(?:jobs\.)?lever\.co/([a-zA-Z0-9_-]+)`)

	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Fetcher calls vendor public job-listing APIs and maps their heterogeneous
// shapes onto domain.FetchedJob. Unsupported vendors and per-company fetch
// failures yield an empty list so sibling companies are unaffected.
type Fetcher struct {
	client *resty.Client

	// Overridable for tests
	greenhouseAPIBase string
	leverAPIBase      string
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client:            resty.New().SetTimeout(10 * time.Second),
		greenhouseAPIBase: "https://boards-api.greenhouse.io/v1/boards",
		leverAPIBase:      "https://api.lever.co/v0/postings",
	}
}

// Fetch retrieves listings for the career page via the vendor matching
// atsType.
func (f *Fetcher) Fetch(ctx context.Context, careerPageURL string, atsType domain.ATSType) []domain.FetchedJob {
	switch atsType {
	case domain.ATSGreenhouse:
		return f.fetchGreenhouse(ctx, careerPageURL)
	case domain.ATSLever:
		return f.fetchLever(ctx, careerPageURL)
	default:
		logger.Log.Warn("Unsupported ATS type", "ats_type", atsType, "url", careerPageURL)
		return nil
	}
}

// greenhouseJob mirrors a listing from the Greenhouse boards API.
type greenhouseJob struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	AbsoluteURL string `json:"absolute_url"`
	Location    struct {
		Name string `json:"name"`
	} `json:"location"`
}

type greenhouseResponse struct {
	Jobs []greenhouseJob `json:"jobs"`
}

// Board slug pattern: https://boards.greenhouse.io/{slug}
// API: https://boards-api.greenhouse.io/v1/boards/{slug}/jobs?content=true
func (f *Fetcher) fetchGreenhouse(ctx context.Context, careerPageURL string) []domain.FetchedJob {
	slug := extractSlug(greenhouseSlugRe, careerPageURL)
	if slug == "" {
		logger.Log.Warn("Could not extract Greenhouse board slug", "url", careerPageURL)
		return nil
	}

	var body greenhouseResponse
	resp, err := f.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get(fmt.Sprintf("%s/%s/jobs?content=true", f.greenhouseAPIBase, slug))
	if err != nil || resp.IsError() {
		logger.Log.Error("Failed to fetch Greenhouse jobs", "slug", slug, "error", err)
		return nil
	}

	jobs := make([]domain.FetchedJob, 0, len(body.Jobs))
	for _, j := range body.Jobs {
		location := j.Location.Name
		if location == "" {
			location = "Not specified"
		}
		applyURL := j.AbsoluteURL
		if applyURL == "" {
			applyURL = fmt.Sprintf("https://boards.greenhouse.io/%s/jobs/%d", slug, j.ID)
		}
		jobs = append(jobs, domain.FetchedJob{
			Title:       j.Title,
			Location:    location,
			Description: StripHTML(j.Content),
			ApplyURL:    applyURL,
		})
	}
	return jobs
}

// leverPosting mirrors a posting from the Lever postings API.
type leverPosting struct {
	Text             string `json:"text"`
	Description      string `json:"description"`
	DescriptionPlain string `json:"descriptionPlain"`
	ApplyURL         string `json:"applyUrl"`
	HostedURL        string `json:"hostedUrl"`
	Categories       struct {
		Location string `json:"location"`
	} `json:"categories"`
}

// Board slug pattern: https://jobs.lever.co/{slug}
// API: https://api.lever.co/v0/postings/{slug}
func (f *Fetcher) fetchLever(ctx context.Context, careerPageURL string) []domain.FetchedJob {
	slug := extractSlug(leverSlugRe, careerPageURL)
	if slug == "" {
		logger.Log.Warn("Could not extract Lever board slug", "url", careerPageURL)
		return nil
	}

	var postings []leverPosting
	resp, err := f.client.R().
		SetContext(ctx).
		SetResult(&postings).
		Get(fmt.Sprintf("%s/%s", f.leverAPIBase, slug))
	if err != nil || resp.IsError() {
		logger.Log.Error("Failed to fetch Lever jobs", "slug", slug, "error", err)
		return nil
	}

	jobs := make([]domain.FetchedJob, 0, len(postings))
	for _, p := range postings {
		location := p.Categories.Location
		if location == "" {
			location = "Not specified"
		}
		description := p.DescriptionPlain
		if description == "" {
			description = p.Description
		}
		applyURL := p.ApplyURL
		if applyURL == "" {
			applyURL = p.HostedURL
		}
		jobs = append(jobs, domain.FetchedJob{
			Title:       p.Text,
			Location:    location,
			Description: StripHTML(description),
			ApplyURL:    applyURL,
		})
	}
	return jobs
}

func extractSlug(re *regexp.Regexp, careerPageURL string) string {
	match := re.FindStringSubmatch(careerPageURL)
	if match == nil {
		return ""
	}
	return match[1]
}

// StripHTML removes tags, unescapes the common entities and collapses
// whitespace.
func StripHTML(html string) string {
	text := htmlTagRe.ReplaceAllString(html, " ")
	replacer := strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
	text = replacer.Replace(text)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
