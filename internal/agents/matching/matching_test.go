package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("Should score identical vectors as 1", func(t *testing.T) {
		score, err := CosineSimilarity([]float32{1, 0}, []float32{1, 0})
		assert.NoError(t, err)
		assert.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("Should score orthogonal vectors as 0", func(t *testing.T) {
		score, err := CosineSimilarity([]float32{1, 0}, []float32{0, 1})
		assert.NoError(t, err)
		assert.InDelta(t, 0.0, score, 1e-9)
	})

	t.Run("Should score opposite vectors as -1", func(t *testing.T) {
		score, err := CosineSimilarity([]float32{1, 0}, []float32{-1, 0})
		assert.NoError(t, err)
		assert.InDelta(t, -1.0, score, 1e-9)
	})

	t.Run("Should score a zero-magnitude vector as 0 without error", func(t *testing.T) {
		score, err := CosineSimilarity([]float32{0, 0}, []float32{1, 0})
		assert.NoError(t, err)
		assert.Zero(t, score)
	})

	t.Run("Should error on mismatched lengths", func(t *testing.T) {
		_, err := CosineSimilarity([]float32{1, 0, 0}, []float32{1, 0})
		assert.Error(t, err)
	})
}

func TestRank(t *testing.T) {
	query := []float32{1, 0}
	vectors := map[string][]float32{
		"a": {1, 0},
		"b": {0, 1},
		"c": {0.7071, 0.7071},
	}

	score := func(id string) float64 {
		s, err := CosineSimilarity(query, vectors[id])
		assert.NoError(t, err)
		return s
	}

	t.Run("Should rank by descending similarity", func(t *testing.T) {
		results := Rank([]Scored{
			{ID: "a", Score: score("a")},
			{ID: "b", Score: score("b")},
			{ID: "c", Score: score("c")},
		}, 0, nil)

		assert.Len(t, results, 3)
		assert.Equal(t, "a", results[0].ID)
		assert.Equal(t, "c", results[1].ID)
		assert.Equal(t, "b", results[2].ID)

		assert.InDelta(t, 1.0, results[0].Score, 1e-4)
		assert.InDelta(t, 0.7071, results[1].Score, 1e-4)
		assert.InDelta(t, 0.0, results[2].Score, 1e-4)

		assert.Equal(t, 1, results[0].Rank)
		assert.Equal(t, 2, results[1].Rank)
		assert.Equal(t, 3, results[2].Rank)
	})

	t.Run("Should truncate to topK", func(t *testing.T) {
		results := Rank([]Scored{
			{ID: "a", Score: 0.9},
			{ID: "b", Score: 0.1},
			{ID: "c", Score: 0.5},
		}, 2, nil)

		assert.Len(t, results, 2)
		assert.Equal(t, "a", results[0].ID)
		assert.Equal(t, "c", results[1].ID)
	})

	t.Run("Should filter by minScore after ranking", func(t *testing.T) {
		min := 0.5
		results := Rank([]Scored{
			{ID: "a", Score: 0.9},
			{ID: "b", Score: 0.1},
			{ID: "c", Score: 0.6},
		}, 0, &min)

		assert.Len(t, results, 2)
		assert.Equal(t, "a", results[0].ID)
		assert.Equal(t, 1, results[0].Rank)
		assert.Equal(t, "c", results[1].ID)
		assert.Equal(t, 2, results[1].Rank)
	})

	t.Run("Should keep input order for equal scores", func(t *testing.T) {
		results := Rank([]Scored{
			{ID: "first", Score: 0.5},
			{ID: "second", Score: 0.5},
		}, 0, nil)

		assert.Equal(t, "first", results[0].ID)
		assert.Equal(t, "second", results[1].ID)
	})

	t.Run("Should not mutate the input slice", func(t *testing.T) {
		input := []Scored{{ID: "low", Score: 0.1}, {ID: "high", Score: 0.9}}
		Rank(input, 0, nil)
		assert.Equal(t, "low", input[0].ID)
	})

	t.Run("Should handle an empty input", func(t *testing.T) {
		assert.Empty(t, Rank(nil, 10, nil))
	})
}

func TestScoreToPercentage(t *testing.T) {
	assert.Equal(t, 100, ScoreToPercentage(1.0))
	assert.Equal(t, 50, ScoreToPercentage(0.0))
	assert.Equal(t, 0, ScoreToPercentage(-1.0))
	assert.Equal(t, 85, ScoreToPercentage(0.7))
	assert.Equal(t, 15, ScoreToPercentage(-0.7))
}
