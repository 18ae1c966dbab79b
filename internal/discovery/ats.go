// Package discovery implements the pipeline that turns a company homepage
// into a deduplicated set of structured job records: career page location,
// ATS detection, vendor fetching, LLM extraction and normalization.
package discovery

import (
	"regexp"

	"go-jobscout-backend/internal/domain"
)

type atsPattern struct {
	atsType  domain.ATSType
	patterns []*regexp.Regexp
}

// Ordered: first matching vendor wins.
var atsPatterns = []atsPattern{
	{
		atsType: domain.ATSGreenhouse,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)greenhouse\.io`),
			regexp.MustCompile(`(?i)boards\.greenhouse\.io`),
			regexp.MustCompile(`(?i)job\.greenhouse\.io`),
		},
	},
	{
		atsType: domain.ATSLever,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)lever\.co`),
			regexp.MustCompile(`(?i)jobs\.lever\.co`),
		},
	},
	{
		atsType: domain.ATSWorkday,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)workday\.com`),
			regexp.MustCompile(`(?i)myworkdayjobs\.com`),
			regexp.MustCompile(`(?i)wd\d+\.myworkdayjobs\.com`),
		},
	},
	{
		atsType: domain.ATSAshby,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)ashbyhq\.com`),
			regexp.MustCompile(`(?i)jobs\.ashbyhq\.com`),
		},
	},
	{
		atsType: domain.ATSBambooHR,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)bamboohr\.com`),
			regexp.MustCompile(`(?i)\.bamboohr\.com/jobs`),
		},
	},
	{
		atsType: domain.ATSSmartRecruiters,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)smartrecruiters\.com`),
			regexp.MustCompile(`(?i)jobs\.smartrecruiters\.com`),
		},
	},
}

// DetectATS maps a career page or job listing URL to its ATS vendor.
// Pure and deterministic; unmatched URLs report unknown.
func DetectATS(careerPageURL string) domain.ATSType {
	for _, entry := range atsPatterns {
		for _, pattern := range entry.patterns {
			if pattern.MatchString(careerPageURL) {
				return entry.atsType
			}
		}
	}
	return domain.ATSUnknown
}

// IsATS reports whether the URL belongs to the given vendor.
func IsATS(careerPageURL string, atsType domain.ATSType) bool {
	return DetectATS(careerPageURL) == atsType
}

// HasAPISource reports whether listings for this vendor can be fetched
// through a public API rather than scraped.
func HasAPISource(atsType domain.ATSType) bool {
	return atsType == domain.ATSGreenhouse || atsType == domain.ATSLever
}

// SupportedATSTypes lists the vendors the detector can recognize.
func SupportedATSTypes() []domain.ATSType {
	types := make([]domain.ATSType, 0, len(atsPatterns))
	for _, entry := range atsPatterns {
		types = append(types, entry.atsType)
	}
	return types
}
