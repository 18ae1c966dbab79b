package jdparser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubLLM struct {
	response string
	err      error
	lastTemp float32
}

func (s *stubLLM) Complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	s.lastTemp = temperature
	return s.response, s.err
}

func (s *stubLLM) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("not implemented")
}

func (s *stubLLM) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, errors.New("not implemented")
}

func TestParse(t *testing.T) {
	t.Run("Should decode a well-formed response", func(t *testing.T) {
		llm := &stubLLM{response: `{
			"role": "Senior Backend Engineer",
			"min_experience": 5,
			"max_experience": 8,
			"skills": ["Go", "PostgreSQL"],
			"location": "Remote",
			"employment_type": "Full-time"
		}`}
		p := NewParser(llm)

		parsed, err := p.Parse(context.Background(), "Sr. Backend Eng, 5-8 yrs, Go/Postgres, remote")

		assert.NoError(t, err)
		assert.Equal(t, "Senior Backend Engineer", parsed.Role)
		assert.Equal(t, 5, *parsed.MinExperience)
		assert.Equal(t, 8, *parsed.MaxExperience)
		assert.Equal(t, []string{"Go", "PostgreSQL"}, parsed.Skills)
		assert.Equal(t, "Remote", *parsed.Location)
	})

	t.Run("Should call the model deterministically", func(t *testing.T) {
		llm := &stubLLM{response: `{"role": "Software Engineer", "skills": []}`}
		p := NewParser(llm)

		_, err := p.Parse(context.Background(), "some jd")

		assert.NoError(t, err)
		assert.Zero(t, llm.lastTemp)
	})

	t.Run("Should accept fenced JSON", func(t *testing.T) {
		llm := &stubLLM{response: "```json\n{\"role\": \"Data Engineer\", \"skills\": [\"Spark\"]}\n```"}
		p := NewParser(llm)

		parsed, err := p.Parse(context.Background(), "data engineer role")

		assert.NoError(t, err)
		assert.Equal(t, "Data Engineer", parsed.Role)
	})

	t.Run("Should reject empty input", func(t *testing.T) {
		p := NewParser(&stubLLM{})

		_, err := p.Parse(context.Background(), "   ")
		assert.Error(t, err)
	})

	t.Run("Should reject a response without a role", func(t *testing.T) {
		p := NewParser(&stubLLM{response: `{"role": "", "skills": ["Go"]}`})

		_, err := p.Parse(context.Background(), "some jd")
		assert.ErrorContains(t, err, "missing role")
	})

	t.Run("Should reject a non-JSON response", func(t *testing.T) {
		p := NewParser(&stubLLM{response: "I am unable to parse this."})

		_, err := p.Parse(context.Background(), "some jd")
		assert.Error(t, err)
	})

	t.Run("Should surface model errors", func(t *testing.T) {
		p := NewParser(&stubLLM{err: errors.New("quota exceeded")})

		_, err := p.Parse(context.Background(), "some jd")
		assert.Error(t, err)
	})
}
