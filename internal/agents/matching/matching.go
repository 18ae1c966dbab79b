// Package matching scores embedding vectors with cosine similarity and ranks
// the results. Pure math, no I/O.
package matching

import (
	"fmt"
	"math"
	"sort"

	"go-jobscout-backend/internal/domain"
)

// CosineSimilarity returns a score in [-1, 1]. Vectors of mismatched length
// are an error; a zero-magnitude vector scores 0 rather than dividing by zero.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector length mismatch: %d vs %d", len(a), len(b))
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB)), nil
}

// Scored pairs a subject id with its raw similarity score.
type Scored struct {
	ID    string
	Score float64
}

// Rank orders scored entries best first and assigns 1-based ranks. The sort
// is stable so equal scores keep their input order. topK <= 0 means no limit;
// minScore, when set, is applied after ranking so ranks reflect the full
// candidate set.
func Rank(scored []Scored, topK int, minScore *float64) []domain.MatchResult {
	ordered := make([]Scored, len(scored))
	copy(ordered, scored)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score > ordered[j].Score
	})

	results := make([]domain.MatchResult, 0, len(ordered))
	for i, s := range ordered {
		if topK > 0 && i >= topK {
			break
		}
		results = append(results, domain.MatchResult{
			ID:         s.ID,
			Score:      s.Score,
			Percentage: ScoreToPercentage(s.Score),
			Rank:       i + 1,
		})
	}

	if minScore != nil {
		filtered := results[:0]
		for _, r := range results {
			if r.Score >= *minScore {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}
	return results
}

// ScoreToPercentage maps a cosine score in [-1, 1] onto 0..100.
func ScoreToPercentage(score float64) int {
	return int(math.Round(((score + 1) / 2) * 100))
}
