// Package resumeparser turns raw resume text into the candidate profile used
// for embedding and matching.
package resumeparser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go-jobscout-backend/internal/discovery"
	"go-jobscout-backend/internal/domain"
	"go-jobscout-backend/pkg/apperror"
)

const systemPrompt = `You are an expert resume parser. Extract structured profile information from resume text.

CRITICAL: You MUST respond with ONLY valid JSON. No markdown, no code blocks, no explanations, no text before or after the JSON.

OUTPUT SCHEMA:
{
  "skills": ["string"],
  "total_experience_years": number | null,
  "primary_role": "string",
  "summary": "string"
}

RULES:

1. SKILLS:
   - Extract ALL technical skills mentioned anywhere in the resume
   - DEDUPLICATE case-insensitively, normalize names ("JS" -> "JavaScript", "k8s" -> "Kubernetes")
   - Order by prominence in the resume

2. TOTAL EXPERIENCE:
   - Sum professional experience from work history dates
   - Express as a number of years, fractional values allowed (e.g., 3.5)
   - null if no work history is present

3. PRIMARY ROLE:
   - The candidate's most recent or most prominent role, normalized
     (e.g., "Senior Backend Engineer", "Data Scientist")

4. SUMMARY:
   - One to three sentences describing the candidate's profile:
     seniority, domain focus, and standout strengths
   - Write in third person, no marketing language`

type Parser struct {
	llm domain.LLM
}

func NewParser(llm domain.LLM) *Parser {
	return &Parser{llm: llm}
}

func (p *Parser) Parse(ctx context.Context, rawResume string) (*domain.ParsedResume, error) {
	if strings.TrimSpace(rawResume) == "" {
		return nil, apperror.BadRequest("Resume text is required")
	}

	content, err := p.llm.Complete(ctx, systemPrompt, rawResume, 0)
	if err != nil {
		return nil, fmt.Errorf("resume parse completion: %w", err)
	}

	payload := discovery.ExtractJSONPayload(content)
	if payload == "" {
		return nil, fmt.Errorf("no JSON object in model response: %q", content)
	}

	var parsed domain.ParsedResume
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, fmt.Errorf("malformed resume response: %w", err)
	}
	if parsed.PrimaryRole == "" {
		return nil, fmt.Errorf("resume response missing primary_role")
	}

	return &parsed, nil
}
