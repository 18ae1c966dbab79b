// Package jdparser structures free-text job descriptions via the LLM with a
// strict JSON-only contract. Normalization rules (title buckets, experience
// inference, skill aliases) live in the prompt; the only local duties are
// fence stripping and malformed-JSON error surfacing.
package jdparser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go-jobscout-backend/internal/discovery"
	"go-jobscout-backend/internal/domain"
	"go-jobscout-backend/pkg/apperror"
)

const systemPrompt = `You are an expert job description parser. Extract and normalize structured information from job descriptions.

CRITICAL: You MUST respond with ONLY valid JSON. No markdown, no code blocks, no explanations, no text before or after the JSON.

OUTPUT SCHEMA:
{
  "role": "string",
  "min_experience": number | null,
  "max_experience": number | null,
  "skills": ["string"],
  "location": "string | null",
  "employment_type": "string | null"
}

RULES:

1. JOB TITLE NORMALIZATION:
   - Normalize to standard titles: "Software Engineer", "Senior Software Engineer", "Staff Software Engineer", "Principal Software Engineer", "Engineering Manager", "Product Manager", "Data Scientist", "Data Engineer", "DevOps Engineer", "Frontend Engineer", "Backend Engineer", "Full Stack Engineer", "Mobile Engineer", "QA Engineer", "Security Engineer", "ML Engineer", "Cloud Engineer", "Site Reliability Engineer"
   - Map variations: "SDE" -> "Software Engineer", "SWE" -> "Software Engineer", "Dev" -> "Software Engineer", "Programmer" -> "Software Engineer"
   - Preserve seniority: "Sr.", "Senior", "Lead", "Staff", "Principal", "Junior", "Associate"
   - Example: "Sr. SDE II" -> "Senior Software Engineer", "Lead Dev" -> "Lead Software Engineer"

2. EXPERIENCE INFERENCE:
   - If explicit (e.g., "3-5 years"): min_experience=3, max_experience=5
   - If single value (e.g., "5+ years"): min_experience=5, max_experience=null
   - If only max (e.g., "up to 3 years"): min_experience=0, max_experience=3
   - INFER from title if not stated:
     * Junior/Associate: min_experience=0, max_experience=2
     * Mid-level (no prefix): min_experience=2, max_experience=5
     * Senior: min_experience=5, max_experience=8
     * Staff/Lead: min_experience=8, max_experience=12
     * Principal/Architect: min_experience=10, max_experience=null
   - If truly unknown and cannot infer: null

3. SKILLS PROCESSING:
   - Extract ALL technical skills: languages, frameworks, tools, platforms, methodologies
   - DEDUPLICATE: Remove exact duplicates (case-insensitive)
   - NORMALIZE names: "JS" -> "JavaScript", "TS" -> "TypeScript", "k8s" -> "Kubernetes", "Mongo" -> "MongoDB", "Postgres" -> "PostgreSQL", "AWS" -> "Amazon Web Services"
   - Return unique skills only, properly capitalized
   - Order by relevance (most important first)

4. LOCATION:
   - Normalize format: "City, Country" or "Remote"
   - "WFH", "Work from home" -> "Remote"
   - Hybrid -> include both location and note (e.g., "Bangalore, India (Hybrid)")

5. EMPLOYMENT TYPE:
   - Normalize to exactly one of: "Full-time", "Part-time", "Contract", "Internship", "Freelance"
   - "Permanent" -> "Full-time"
   - "Remote" is NOT an employment type, it's a location
   - If not mentioned, infer "Full-time" as default for standard job posts`

type Parser struct {
	llm domain.LLM
}

func NewParser(llm domain.LLM) *Parser {
	return &Parser{llm: llm}
}

// Parse structures a raw job description. Decoding is deterministic
// (temperature 0) because the output feeds hashing and must be reproducible
// across near-duplicate resubmissions.
func (p *Parser) Parse(ctx context.Context, rawJD string) (*domain.ParsedJD, error) {
	if strings.TrimSpace(rawJD) == "" {
		return nil, apperror.BadRequest("Job description text is required")
	}

	content, err := p.llm.Complete(ctx, systemPrompt, rawJD, 0)
	if err != nil {
		return nil, fmt.Errorf("jd parse completion: %w", err)
	}

	payload := discovery.ExtractJSONPayload(content)
	if payload == "" {
		return nil, fmt.Errorf("no JSON object in model response: %q", content)
	}

	var parsed domain.ParsedJD
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, fmt.Errorf("malformed parse response: %w", err)
	}
	if parsed.Role == "" {
		return nil, fmt.Errorf("parse response missing role")
	}

	return &parsed, nil
}
