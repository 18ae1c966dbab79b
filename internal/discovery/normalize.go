package discovery

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"go-jobscout-backend/internal/domain"
)

// NormalizedJob carries the canonical role/skills/location plus the content
// hash used as the dedup key.
type NormalizedJob struct {
	Role     string
	Skills   []string
	Location string
	JobHash  string
}

// Normalize canonicalizes the parsed fields and computes the job hash.
// The parsed location wins over the fetched one when present.
func Normalize(companyName string, parsed *domain.ParsedJD, applyURL, fetchedLocation string) NormalizedJob {
	role := NormalizeRole(parsed.Role)
	skills := DeduplicateSkills(parsed.Skills)

	location := fetchedLocation
	if parsed.Location != nil && *parsed.Location != "" {
		location = *parsed.Location
	}
	location = NormalizeLocation(location)

	return NormalizedJob{
		Role:     role,
		Skills:   skills,
		Location: location,
		JobHash:  GenerateJobHash(companyName, role, location, applyURL),
	}
}

// NormalizeRole maps titles onto a fixed taxonomy of role buckets by keyword
// match; unmatched titles pass through title-cased.
func NormalizeRole(role string) string {
	r := strings.ToLower(role)

	switch {
	case containsAny(r, "frontend", "front-end", "front end"):
		return "Frontend Engineer"
	case containsAny(r, "backend", "back-end", "back end"):
		return "Backend Engineer"
	case containsAny(r, "fullstack", "full-stack", "full stack"):
		return "Full Stack Engineer"
	case containsAny(r, "devops", "sre", "reliability"):
		return "DevOps Engineer"
	case containsAny(r, "data scientist", "ml", "machine learning"):
		return "Data Scientist"
	case containsAny(r, "product manager", "pm"):
		return "Product Manager"
	case containsAny(r, "sde", "software engineer", "developer"):
		return "Software Engineer"
	}

	return titleCase(role)
}

// DeduplicateSkills removes case-insensitive duplicates, keeping the casing
// of the first occurrence and the original order.
func DeduplicateSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	deduped := make([]string, 0, len(skills))

	for _, skill := range skills {
		lower := strings.ToLower(strings.TrimSpace(skill))
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		deduped = append(deduped, strings.TrimSpace(skill))
	}

	return deduped
}

// NormalizeLocation collapses any remote-flavored location onto the
// canonical "Remote"; everything else passes through title-cased. An empty
// location defaults to Remote.
func NormalizeLocation(location string) string {
	if location == "" {
		return "Remote"
	}

	l := strings.ToLower(location)
	if containsAny(l, "remote", "wfh", "anywhere") {
		return "Remote"
	}

	return titleCase(location)
}

// GenerateJobHash computes the deterministic dedup key. The recipe is load
// bearing: lowercase-join company:role:location:cleanedURL, SHA-256, first
// 16 hex characters. The URL is cleaned of query string, protocol and
// trailing slash so the same posting reached via different discovery paths
// collapses to one hash.
func GenerateJobHash(company, role, location, applyURL string) string {
	cleanURL := applyURL
	if i := strings.Index(cleanURL, "?"); i >= 0 {
		cleanURL = cleanURL[:i]
	}
	if i := strings.Index(cleanURL, "//"); i >= 0 && (i == 0 || isScheme(cleanURL[:i])) {
		cleanURL = cleanURL[i+2:]
	}
	cleanURL = strings.TrimSuffix(strings.ToLower(cleanURL), "/")

	data := strings.ToLower(company) + ":" + strings.ToLower(role) + ":" + strings.ToLower(location) + ":" + cleanURL
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])[:16]
}

// isScheme reports whether s looks like "https:" / "ftp:" etc.
func isScheme(s string) bool {
	if !strings.HasSuffix(s, ":") {
		return false
	}
	for _, r := range s[:len(s)-1] {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return len(s) > 1
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// titleCase uppercases the first letter of every word, leaving the rest of
// each word untouched.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevIsWord := false
	for _, r := range s {
		isWord := unicode.IsLetter(r) || unicode.IsDigit(r)
		if isWord && !prevIsWord {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(r)
		}
		prevIsWord = isWord
	}
	return b.String()
}
