package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-jobscout-backend/internal/domain"
)

type captureLLM struct {
	lastInput string
	vector    []float32
	err       error
}

func (c *captureLLM) Complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	return "", errors.New("not implemented")
}

func (c *captureLLM) Embed(ctx context.Context, text string) ([]float32, error) {
	c.lastInput = text
	return c.vector, c.err
}

func (c *captureLLM) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, errors.New("not implemented")
}

func ptr[T any](v T) *T { return &v }

func TestEmbedJob(t *testing.T) {
	t.Run("Should compose and normalize the job text", func(t *testing.T) {
		llm := &captureLLM{vector: []float32{0.1, 0.2}}
		e := NewEmbedder(llm)

		vec, err := e.EmbedJob(context.Background(), &domain.ParsedJD{
			Role:           "Backend   Engineer",
			Skills:         []string{"Go", "PostgreSQL"},
			Location:       ptr("Remote"),
			EmploymentType: ptr("Full-time"),
			MinExperience:  ptr(3),
			MaxExperience:  ptr(5),
		})

		assert.NoError(t, err)
		assert.Equal(t, []float32{0.1, 0.2}, vec)
		assert.Equal(t,
			"role: backend engineer. skills: go, postgresql. location: remote. type: full-time. experience: 3-5 years.",
			llm.lastInput)
	})

	t.Run("Should omit absent fields", func(t *testing.T) {
		llm := &captureLLM{vector: []float32{0.1}}
		e := NewEmbedder(llm)

		_, err := e.EmbedJob(context.Background(), &domain.ParsedJD{Role: "Data Scientist"})

		assert.NoError(t, err)
		assert.Equal(t, "role: data scientist.", llm.lastInput)
	})

	t.Run("Should render open-ended experience ranges", func(t *testing.T) {
		llm := &captureLLM{vector: []float32{0.1}}
		e := NewEmbedder(llm)

		_, err := e.EmbedJob(context.Background(), &domain.ParsedJD{
			Role:          "DevOps Engineer",
			MinExperience: ptr(5),
		})
		assert.NoError(t, err)
		assert.Contains(t, llm.lastInput, "experience: 5+ years.")

		_, err = e.EmbedJob(context.Background(), &domain.ParsedJD{
			Role:          "DevOps Engineer",
			MaxExperience: ptr(2),
		})
		assert.NoError(t, err)
		assert.Contains(t, llm.lastInput, "experience: up to 2 years.")
	})

	t.Run("Should surface model errors", func(t *testing.T) {
		e := NewEmbedder(&captureLLM{err: errors.New("quota exceeded")})

		_, err := e.EmbedJob(context.Background(), &domain.ParsedJD{Role: "QA Engineer"})
		assert.Error(t, err)
	})
}

func TestEmbedCandidate(t *testing.T) {
	t.Run("Should compose and normalize the profile text", func(t *testing.T) {
		llm := &captureLLM{vector: []float32{0.3}}
		e := NewEmbedder(llm)

		vec, err := e.EmbedCandidate(context.Background(), &domain.ParsedResume{
			PrimaryRole:          "Frontend Engineer",
			Skills:               []string{"React", "TypeScript"},
			TotalExperienceYears: ptr(4.5),
			Summary:              "Builds  design systems",
		})

		assert.NoError(t, err)
		assert.Equal(t, []float32{0.3}, vec)
		assert.Equal(t,
			"role: frontend engineer. skills: react, typescript. experience: 4.5 years. builds design systems",
			llm.lastInput)
	})

	t.Run("Should embed the same text for cosmetically different input", func(t *testing.T) {
		llm := &captureLLM{vector: []float32{0.3}}
		e := NewEmbedder(llm)

		_, err := e.EmbedCandidate(context.Background(), &domain.ParsedResume{PrimaryRole: "BACKEND ENGINEER"})
		assert.NoError(t, err)
		first := llm.lastInput

		_, err = e.EmbedCandidate(context.Background(), &domain.ParsedResume{PrimaryRole: "backend   engineer"})
		assert.NoError(t, err)

		assert.Equal(t, first, llm.lastInput)
	})

	t.Run("Should surface model errors", func(t *testing.T) {
		e := NewEmbedder(&captureLLM{err: errors.New("timeout")})

		_, err := e.EmbedCandidate(context.Background(), &domain.ParsedResume{PrimaryRole: "Analyst"})
		assert.Error(t, err)
	})
}
