// Package matching scores pairs of profiles and ranks candidates for a
// requester. Scores fall in [0, 1]: a weighted blend of interest overlap
// (Jaccard similarity) and age proximity.
package matching

import (
	"profilematch/internal/models"
)

const (
	InterestWeight = 0.7
	AgeWeight      = 0.3

	// ageSpan is the age gap at which the age score reaches zero.
	ageSpan = 100.0
)

// InterestScore returns |a ∩ b| / |a ∪ b| with duplicates collapsed. Two
// empty interest lists score 0.
func InterestScore(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)

	union := len(setA)
	common := 0
	for tag := range setB {
		if _, ok := setA[tag]; ok {
			common++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0
	}
	return float64(common) / float64(union)
}

// AgeScore returns max(0, 1 - |Δage|/100). When the pair is male/female the
// female must be strictly younger, otherwise the score is 0.
func AgeScore(requester, candidate *models.User) float64 {
	if !ageOrderHolds(requester, candidate) {
		return 0
	}

	diff := requester.Age - candidate.Age
	if diff < 0 {
		diff = -diff
	}

	score := 1 - float64(diff)/ageSpan
	if score < 0 {
		return 0
	}
	return score
}

// Score is the final compatibility of candidate for requester.
func Score(requester, candidate *models.User) float64 {
	return InterestWeight*InterestScore(requester.Interests, candidate.Interests) +
		AgeWeight*AgeScore(requester, candidate)
}

func ageOrderHolds(a, b *models.User) bool {
	switch {
	case a.Gender == models.GenderMale && b.Gender == models.GenderFemale:
		return b.Age < a.Age
	case a.Gender == models.GenderFemale && b.Gender == models.GenderMale:
		return a.Age < b.Age
	default:
		return true
	}
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
