package matching

import (
	"testing"

	"profilematch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedScores returns a scorer that looks up each candidate's score by id.
func fixedScores(scores map[uint]float64) ScoreFunc {
	return func(_, candidate *models.User) float64 {
		return scores[candidate.ID]
	}
}

func candidates(ids ...uint) []models.User {
	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, *user(id, models.GenderFemale, 25))
	}
	return out
}

func scoresOf(matches []Match) []float64 {
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Score)
	}
	return out
}

func idsOf(matches []Match) []uint {
	out := make([]uint, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.User.ID)
	}
	return out
}

func TestRankSortsDescendingAndSlices(t *testing.T) {
	engine := NewEngineWithScorer(fixedScores(map[uint]float64{2: 0.2, 3: 0.9, 4: 0.5}))
	requester := user(1, models.GenderMale, 30)

	matches := engine.Rank(requester, candidates(2, 3, 4), 0, 2)

	require.Len(t, matches, 2)
	assert.Equal(t, []float64{0.9, 0.5}, scoresOf(matches))
	assert.Equal(t, []uint{3, 4}, idsOf(matches))
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	engine := NewEngineWithScorer(fixedScores(map[uint]float64{2: 0.5, 3: 0.7, 4: 0.5, 5: 0.5}))
	requester := user(1, models.GenderMale, 30)

	matches := engine.Rank(requester, candidates(2, 3, 4, 5), 0, 10)

	assert.Equal(t, []uint{3, 2, 4, 5}, idsOf(matches))
}

func TestRankSkipsRequester(t *testing.T) {
	engine := NewEngine()
	requester := user(1, models.GenderMale, 30)

	matches := engine.Rank(requester, candidates(1, 2), 0, 10)

	assert.Equal(t, []uint{2}, idsOf(matches))
}

func TestRankWindow(t *testing.T) {
	engine := NewEngineWithScorer(fixedScores(map[uint]float64{2: 0.4, 3: 0.3, 4: 0.2, 5: 0.1}))
	requester := user(1, models.GenderMale, 30)
	pool := candidates(2, 3, 4, 5)

	tests := []struct {
		name     string
		skip     int
		limit    int
		expected []uint
	}{
		{name: "first page", skip: 0, limit: 2, expected: []uint{2, 3}},
		{name: "second page", skip: 2, limit: 2, expected: []uint{4, 5}},
		{name: "limit past end", skip: 3, limit: 5, expected: []uint{5}},
		{name: "skip past end", skip: 4, limit: 5, expected: []uint{}},
		{name: "zero limit", skip: 0, limit: 0, expected: []uint{}},
		{name: "negative limit", skip: 1, limit: -1, expected: []uint{}},
		{name: "negative skip does not wrap", skip: -1, limit: 3, expected: []uint{}},
		{name: "huge limit", skip: 1, limit: int(^uint(0) >> 1), expected: []uint{3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := engine.Rank(requester, pool, tt.skip, tt.limit)
			assert.NotNil(t, matches)
			assert.Equal(t, tt.expected, idsOf(matches))
		})
	}
}

func TestRankNoCandidates(t *testing.T) {
	matches := NewEngine().Rank(user(1, models.GenderMale, 30), nil, 0, 5)

	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestRankUsesDefaultScore(t *testing.T) {
	requester := user(1, models.GenderFemale, 25, "hiking", "music")
	pool := []models.User{
		*user(2, models.GenderMale, 30, "music", "art"),
		*user(3, models.GenderMale, 24, "hiking", "music"),
		*user(4, models.GenderMale, 40, "hiking", "music"),
	}

	matches := NewEngine().Rank(requester, pool, 0, 5)

	require.Len(t, matches, 3)
	// id 4 shares every interest and is older; id 3 shares every interest
	// but is younger than the requester, so its age score is zeroed.
	assert.Equal(t, []uint{4, 3, 2}, idsOf(matches))
	assert.InDelta(t, 0.7+0.3*0.85, matches[0].Score, 1e-9)
	assert.InDelta(t, 0.7, matches[1].Score, 1e-9)
	assert.InDelta(t, 0.518333, matches[2].Score, 1e-6)
}
