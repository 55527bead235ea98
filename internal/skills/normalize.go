// Package skills implements the skill-matching engine: normalization, synonym
// expansion, exact and fuzzy reconciliation, and match scoring.
package skills

import "strings"

// Normalize returns the canonical form of a skill phrase: lower-cased with
// leading and trailing whitespace removed.
func Normalize(phrase string) string {
	return strings.ToLower(strings.TrimSpace(phrase))
}

// NewSkillSet normalizes phrases into a set. Empty and whitespace-only phrases
// are dropped and duplicates collapse.
func NewSkillSet(phrases []string) SkillSet {
	set := make(SkillSet, len(phrases))
	for _, phrase := range phrases {
		set.Add(phrase)
	}
	return set
}
