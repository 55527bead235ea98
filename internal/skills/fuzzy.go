package skills

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

const (
	// DefaultFuzzyThreshold is the minimum score for a fuzzy pairing to be accepted.
	DefaultFuzzyThreshold = 80.0
	// DefaultSubstringFloor is the score given to pairs where one skill contains the other.
	DefaultSubstringFloor = 85.0
)

// Ratio returns an edit-distance similarity in [0, 100]:
// (1 - lev(a, b) / max(|a|, |b|)) * 100, measured in runes.
// Two empty strings are identical.
func Ratio(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return float64(longest-dist) / float64(longest) * 100
}

// fuzzyScore is Ratio raised to floor when either skill is a substring of the other.
func fuzzyScore(a, b string, floor float64) float64 {
	score := Ratio(a, b)
	if strings.Contains(a, b) || strings.Contains(b, a) {
		score = max(score, floor)
	}
	return score
}

// FuzzyPair records a job skill reconciled with a resume skill by similarity.
type FuzzyPair struct {
	Job    string  `json:"job"`
	Resume string  `json:"resume"`
	Score  float64 `json:"score"`
}

// assignFuzzy greedily pairs job skills with resume skills.
//
// Both sides are sorted lexicographically first. Each job skill, in order,
// takes the best-scoring resume skill that is still available; on equal
// scores the earliest candidate wins. A pairing is accepted only when its
// score reaches threshold, and an accepted resume skill is never offered
// again.
func assignFuzzy(jobSkills, resumeSkills SkillSet, threshold, floor float64) []FuzzyPair {
	jobs := jobSkills.Sorted()
	candidates := resumeSkills.Sorted()
	claimed := make([]bool, len(candidates))

	var pairs []FuzzyPair
	for _, job := range jobs {
		best := -1
		bestScore := -1.0
		for i, candidate := range candidates {
			if claimed[i] {
				continue
			}
			if score := fuzzyScore(job, candidate, floor); score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 || bestScore < threshold {
			continue
		}
		claimed[best] = true
		pairs = append(pairs, FuzzyPair{Job: job, Resume: candidates[best], Score: bestScore})
	}
	return pairs
}
