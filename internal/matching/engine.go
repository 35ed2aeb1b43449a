package matching

import (
	"sort"

	"profilematch/internal/models"
)

// Match pairs a candidate profile with its compatibility score.
type Match struct {
	User  models.User `json:"user"`
	Score float64     `json:"score" example:"0.52"`
}

// ScoreFunc computes the compatibility of candidate for requester.
type ScoreFunc func(requester, candidate *models.User) float64

type Engine struct {
	score ScoreFunc
}

func NewEngine() *Engine {
	return &Engine{score: Score}
}

// NewEngineWithScorer builds an engine around a custom score function.
func NewEngineWithScorer(score ScoreFunc) *Engine {
	return &Engine{score: score}
}

// Rank scores every candidate, sorts by score descending and returns the
// [skip, skip+limit) window. Ties keep the candidates' input order.
func (e *Engine) Rank(requester *models.User, candidates []models.User, skip, limit int) []Match {
	matches := make([]Match, 0, len(candidates))
	for i := range candidates {
		if candidates[i].ID == requester.ID {
			continue
		}
		matches = append(matches, Match{
			User:  candidates[i],
			Score: e.score(requester, &candidates[i]),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return window(matches, skip, limit)
}

// window slices like matches[skip:skip+limit] but clamps instead of
// panicking. A negative skip or a non-positive limit yields an empty list.
func window(matches []Match, skip, limit int) []Match {
	if skip < 0 || limit <= 0 || skip >= len(matches) {
		return []Match{}
	}

	end := len(matches)
	if limit < end-skip {
		end = skip + limit
	}
	return matches[skip:end]
}
