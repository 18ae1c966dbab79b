package discovery

import (
	"context"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"go-jobscout-backend/internal/domain"
	"go-jobscout-backend/pkg/logger"
)

const (
	extractorInputBudget = 15000
	extractorMaxJobs     = 50
)

const extractorSystemPrompt = `You are a job listing extractor. Given the text content of a company's career page, extract all job postings.

CRITICAL: You MUST respond with ONLY valid JSON. No markdown, no code blocks, no explanations.

OUTPUT SCHEMA:
{
  "jobs": [
    {
      "title": "Job Title",
      "location": "City, Country or Remote",
      "description": "Brief job description (max 200 chars)",
      "applyUrl": "URL to apply or empty string if not found"
    }
  ]
}

RULES:
1. Extract ALL job listings visible on the page
2. If location is not specified, use "Not specified"
3. Keep description brief - just the key requirements or summary
4. If applyUrl is relative, leave as-is (we'll resolve it later)
5. If no jobs are found, return {"jobs": []}
6. Maximum 50 jobs per page
7. Normalize job titles (e.g., "Sr. SDE" -> "Senior Software Engineer")`

const detailsSystemPrompt = `Extract the full job description and list of requirements from this job posting page.

RESPOND WITH ONLY VALID JSON:
{
  "description": "Full job description text",
  "requirements": ["requirement 1", "requirement 2", ...]
}`

var codeFenceRe = regexp.MustCompile("```json\n?|\n?```")

// JobDetails is the single-page extraction result.
type JobDetails struct {
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
}

// Extractor asks the model to pull job listings out of rendered page text.
// The model's output is treated as an untrusted string: fences are stripped,
// the JSON object is located defensively, and any failure closes to an
// empty list.
type Extractor struct {
	llm domain.LLM
}

func NewExtractor(llm domain.LLM) *Extractor {
	return &Extractor{llm: llm}
}

// ExtractJobs returns up to 50 listings found in the page text. Never
// returns an error to the caller; failures are logged and yield nil.
func (e *Extractor) ExtractJobs(ctx context.Context, pageText, pageURL string) []domain.FetchedJob {
	truncated := pageText
	if len(truncated) > extractorInputBudget {
		truncated = truncated[:extractorInputBudget]
	}

	user := "Career page URL: " + pageURL + "\n\nPage content:\n" + truncated
	content, err := e.llm.Complete(ctx, extractorSystemPrompt, user, 0)
	if err != nil {
		logger.Log.Error("Job extraction call failed", "url", pageURL, "error", err)
		return nil
	}

	payload := ExtractJSONPayload(content)
	if payload == "" {
		logger.Log.Warn("No JSON object in extraction response", "url", pageURL)
		return nil
	}

	var jobs []domain.FetchedJob
	gjson.Get(payload, "jobs").ForEach(func(_, value gjson.Result) bool {
		jobs = append(jobs, domain.FetchedJob{
			Title:       value.Get("title").String(),
			Location:    value.Get("location").String(),
			Description: value.Get("description").String(),
			ApplyURL:    value.Get("applyUrl").String(),
		})
		return len(jobs) < extractorMaxJobs
	})

	logger.Log.Info("Extracted jobs from page", "url", pageURL, "count", len(jobs))
	return jobs
}

// ExtractJobDetails pulls a full description plus requirements from a single
// job posting page. Returns nil on any failure.
func (e *Extractor) ExtractJobDetails(ctx context.Context, pageText, pageURL string) *JobDetails {
	truncated := pageText
	if len(truncated) > 20000 {
		truncated = truncated[:20000]
	}

	content, err := e.llm.Complete(ctx, detailsSystemPrompt, truncated, 0)
	if err != nil {
		logger.Log.Error("Job details extraction failed", "url", pageURL, "error", err)
		return nil
	}

	payload := ExtractJSONPayload(content)
	if payload == "" {
		return nil
	}

	details := &JobDetails{
		Description: gjson.Get(payload, "description").String(),
	}
	for _, req := range gjson.Get(payload, "requirements").Array() {
		details.Requirements = append(details.Requirements, req.String())
	}
	return details
}

// ExtractDescription flattens a posting page into one description text,
// requirements folded in. ok is false when the page yielded nothing usable.
func (e *Extractor) ExtractDescription(ctx context.Context, pageText, pageURL string) (string, bool) {
	details := e.ExtractJobDetails(ctx, pageText, pageURL)
	if details == nil || details.Description == "" {
		return "", false
	}

	text := details.Description
	if len(details.Requirements) > 0 {
		text += "\n\nRequirements:\n- " + strings.Join(details.Requirements, "\n- ")
	}
	return text, true
}

// ExtractJSONPayload strips markdown code fences and locates the outermost
// JSON object within a model response. Returns "" when no valid object is
// present.
func ExtractJSONPayload(content string) string {
	cleaned := strings.TrimSpace(codeFenceRe.ReplaceAllString(content, ""))

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return ""
	}
	payload := cleaned[start : end+1]
	if !gjson.Valid(payload) {
		return ""
	}
	return payload
}
