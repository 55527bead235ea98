package skills

import (
	"math"
	"sort"
)

// Result is the reportable outcome of a skill match.
// All lists are sorted ascending and never nil.
type Result struct {
	MatchedSkills          []string `json:"matched_skills"`
	MissingSkills          []string `json:"missing_skills"`
	// ExtraSkills is the whole normalized resume inventory, matched or not.
	ExtraSkills            []string `json:"extra_skills"`
	MatchedSkillPercentage float64  `json:"matched_skill_percentage"`
}

// Explanation describes how each matched job skill was reconciled.
type Explanation struct {
	ExactMatches   []string       `json:"exact_matches"`
	FuzzyMatches   []FuzzyPair    `json:"fuzzy_matches"`
	SynonymMatches []SynonymMatch `json:"synonym_matches"`
	SynonymVersion string         `json:"synonym_version,omitempty"`
}

// SynonymMatch records a job skill matched through one of its synonyms.
type SynonymMatch struct {
	Skill   string `json:"skill"`
	Synonym string `json:"synonym"`
}

// Percentage returns matched/total as a percentage rounded to two decimals.
// A zero total yields 0.
func Percentage(matched, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(matched) / float64(total) * 100)
}

// Evaluate matches the two skill lists and reports the result.
func (m *Matcher) Evaluate(jobSkills, resumeSkills []string) *Result {
	return m.Match(jobSkills, resumeSkills).Result()
}

// Result converts the partition into its reportable form.
func (p *Partition) Result() *Result {
	return &Result{
		MatchedSkills:          p.Matched.Sorted(),
		MissingSkills:          p.Missing.Sorted(),
		ExtraSkills:            p.Extra.Sorted(),
		MatchedSkillPercentage: Percentage(p.Matched.Len(), p.JobSkills.Len()),
	}
}

// Explain reports which phase reconciled each skill.
func (m *Matcher) Explain(p *Partition) *Explanation {
	exp := &Explanation{
		ExactMatches:   p.Exact.Sorted(),
		FuzzyMatches:   make([]FuzzyPair, 0, len(p.Fuzzy)),
		SynonymMatches: make([]SynonymMatch, 0, len(p.ViaSynonym)),
		SynonymVersion: m.synonyms.Version(),
	}
	for _, pair := range p.Fuzzy {
		pair.Score = round2(pair.Score)
		exp.FuzzyMatches = append(exp.FuzzyMatches, pair)
	}
	for skill, synonym := range p.ViaSynonym {
		exp.SynonymMatches = append(exp.SynonymMatches, SynonymMatch{Skill: skill, Synonym: synonym})
	}
	sort.Slice(exp.SynonymMatches, func(i, j int) bool {
		return exp.SynonymMatches[i].Skill < exp.SynonymMatches[j].Skill
	})
	return exp
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
