package resumeparser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Complete(ctx context.Context, system, user string, temperature float32) (string, error) {
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
		p := NewParser(&stubLLM{response: `{
			"skills": ["Go", "Kubernetes"],
			"total_experience_years": 4.5,
			"primary_role": "Backend Engineer",
			"summary": "Backend engineer focused on distributed systems"
		}`})

		parsed, err := p.Parse(context.Background(), "resume text")

		assert.NoError(t, err)
		assert.Equal(t, "Backend Engineer", parsed.PrimaryRole)
		assert.Equal(t, []string{"Go", "Kubernetes"}, parsed.Skills)
		assert.InDelta(t, 4.5, *parsed.TotalExperienceYears, 1e-9)
		assert.NotEmpty(t, parsed.Summary)
	})

	t.Run("Should reject empty input", func(t *testing.T) {
		p := NewParser(&stubLLM{})

		_, err := p.Parse(context.Background(), "")
		assert.Error(t, err)
	})

	t.Run("Should reject a response without a primary role", func(t *testing.T) {
		p := NewParser(&stubLLM{response: `{"primary_role": "", "skills": ["Go"]}`})

		_, err := p.Parse(context.Background(), "resume text")
		assert.ErrorContains(t, err, "missing primary_role")
	})

	t.Run("Should surface model errors", func(t *testing.T) {
		p := NewParser(&stubLLM{err: errors.New("timeout")})

		_, err := p.Parse(context.Background(), "resume text")
		assert.Error(t, err)
	})
}
