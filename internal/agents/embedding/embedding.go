// Package embedding builds the canonical text rendition of jobs and candidate
// profiles and embeds them through the model client. Both sides of a match go
// through the same normalization so cosine scores compare like with like.
package embedding

import (
	"context"
	"fmt"
	"strings"

	"go-jobscout-backend/internal/domain"
)

type Embedder struct {
	llm domain.LLM
}

func NewEmbedder(llm domain.LLM) *Embedder {
	return &Embedder{llm: llm}
}

func (e *Embedder) EmbedJob(ctx context.Context, parsed *domain.ParsedJD) ([]float32, error) {
	text := jobToText(parsed)
	vec, err := e.llm.Embed(ctx, normalizeText(text))
	if err != nil {
		return nil, fmt.Errorf("embed job: %w", err)
	}
	return vec, nil
}

func (e *Embedder) EmbedCandidate(ctx context.Context, parsed *domain.ParsedResume) ([]float32, error) {
	text := candidateToText(parsed)
	vec, err := e.llm.Embed(ctx, normalizeText(text))
	if err != nil {
		return nil, fmt.Errorf("embed candidate: %w", err)
	}
	return vec, nil
}

func jobToText(p *domain.ParsedJD) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Role: %s.", p.Role)
	if len(p.Skills) > 0 {
		fmt.Fprintf(&b, " Skills: %s.", strings.Join(p.Skills, ", "))
	}
	if p.Location != nil && *p.Location != "" {
		fmt.Fprintf(&b, " Location: %s.", *p.Location)
	}
	if p.EmploymentType != nil && *p.EmploymentType != "" {
		fmt.Fprintf(&b, " Type: %s.", *p.EmploymentType)
	}
	switch {
	case p.MinExperience != nil && p.MaxExperience != nil:
		fmt.Fprintf(&b, " Experience: %d-%d years.", *p.MinExperience, *p.MaxExperience)
	case p.MinExperience != nil:
		fmt.Fprintf(&b, " Experience: %d+ years.", *p.MinExperience)
	case p.MaxExperience != nil:
		fmt.Fprintf(&b, " Experience: up to %d years.", *p.MaxExperience)
	}
	return b.String()
}

func candidateToText(p *domain.ParsedResume) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Role: %s.", p.PrimaryRole)
	if len(p.Skills) > 0 {
		fmt.Fprintf(&b, " Skills: %s.", strings.Join(p.Skills, ", "))
	}
	if p.TotalExperienceYears != nil {
		fmt.Fprintf(&b, " Experience: %g years.", *p.TotalExperienceYears)
	}
	if p.Summary != "" {
		fmt.Fprintf(&b, " %s", p.Summary)
	}
	return b.String()
}

// normalizeText lowercases and collapses whitespace so cosmetically different
// inputs embed identically.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
