package skills

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_SynonymExpansion(t *testing.T) {
	m := NewMatcher(nil)

	result := m.Evaluate([]string{"Python", "AWS"}, []string{"python 3", "cloud"})

	assert.Equal(t, []string{"aws", "python"}, result.MatchedSkills)
	assert.Empty(t, result.MissingSkills)
	assert.Equal(t, []string{"cloud", "python 3"}, result.ExtraSkills)
	assert.Equal(t, 100.0, result.MatchedSkillPercentage)
}

func TestEvaluate_FuzzyTypo(t *testing.T) {
	m := NewMatcher(nil)

	p := m.Match([]string{"Kubernetes"}, []string{"Kuberentes"})
	result := p.Result()

	assert.Equal(t, []string{"kubernetes"}, result.MatchedSkills)
	assert.Empty(t, result.MissingSkills)
	assert.Equal(t, 100.0, result.MatchedSkillPercentage)

	require.Len(t, p.Fuzzy, 1)
	assert.Equal(t, "kubernetes", p.Fuzzy[0].Job)
	assert.Equal(t, "kuberentes", p.Fuzzy[0].Resume)
	assert.InDelta(t, 80.0, p.Fuzzy[0].Score, 0.01)
}

func TestEvaluate_ShortWordsNeedMoreThanOneLetterInCommon(t *testing.T) {
	m := NewMatcher(NewSynonymTable(nil))

	tests := []struct {
		job, resume string
	}{
		{"PHP", "pip"},
		{"Git", "gin"},
		{"Java", "Lava"},
		{"Perl", "Pearls"},
	}

	for _, tt := range tests {
		t.Run(tt.job+"/"+tt.resume, func(t *testing.T) {
			result := m.Evaluate([]string{tt.job}, []string{tt.resume})

			assert.Empty(t, result.MatchedSkills)
			assert.Equal(t, []string{Normalize(tt.job)}, result.MissingSkills)
			assert.Equal(t, 0.0, result.MatchedSkillPercentage)
		})
	}
}

func TestEvaluate_NoMatch(t *testing.T) {
	m := NewMatcher(nil)

	result := m.Evaluate([]string{"Rust"}, []string{"Go"})

	assert.Empty(t, result.MatchedSkills)
	assert.Equal(t, []string{"rust"}, result.MissingSkills)
	assert.Equal(t, []string{"go"}, result.ExtraSkills)
	assert.Equal(t, 0.0, result.MatchedSkillPercentage)
}

func TestEvaluate_EmptyJobSkills(t *testing.T) {
	m := NewMatcher(nil)

	result := m.Evaluate(nil, []string{"Python"})

	assert.NotNil(t, result.MatchedSkills)
	assert.Empty(t, result.MatchedSkills)
	assert.Empty(t, result.MissingSkills)
	assert.Equal(t, []string{"python"}, result.ExtraSkills)
	assert.Equal(t, 0.0, result.MatchedSkillPercentage)
}

func TestEvaluate_BothEmpty(t *testing.T) {
	result := NewMatcher(nil).Evaluate([]string{}, []string{"", "  "})

	assert.Empty(t, result.MatchedSkills)
	assert.Empty(t, result.MissingSkills)
	assert.Empty(t, result.ExtraSkills)
	assert.Equal(t, 0.0, result.MatchedSkillPercentage)

	// Empty lists serialize as arrays, not null.
	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"matched_skills":[],"missing_skills":[],"extra_skills":[],"matched_skill_percentage":0}`, string(data))
}

func TestEvaluate_ExtraIsFullResumeInventory(t *testing.T) {
	m := NewMatcher(NewSynonymTable(nil))

	result := m.Evaluate([]string{"Go", "SQL"}, []string{"go", "Docker", "GO"})

	assert.Equal(t, []string{"go"}, result.MatchedSkills)
	assert.Equal(t, []string{"sql"}, result.MissingSkills)
	// Matched resume skills are still reported as extra.
	assert.Equal(t, []string{"docker", "go"}, result.ExtraSkills)
	assert.Equal(t, 50.0, result.MatchedSkillPercentage)
}

func TestEvaluate_DuplicatesCollapseInDenominator(t *testing.T) {
	m := NewMatcher(NewSynonymTable(nil))

	result := m.Evaluate([]string{"Python", "python ", "PYTHON", "Java", ""}, []string{"python"})

	assert.Equal(t, []string{"python"}, result.MatchedSkills)
	assert.Equal(t, []string{"java"}, result.MissingSkills)
	assert.Equal(t, 50.0, result.MatchedSkillPercentage)
}

func TestEvaluate_PercentageRounding(t *testing.T) {
	m := NewMatcher(NewSynonymTable(nil))

	result := m.Evaluate([]string{"a1", "b2", "c3"}, []string{"a1"})
	assert.Equal(t, 33.33, result.MatchedSkillPercentage)

	result = m.Evaluate([]string{"a1", "b2", "c3"}, []string{"a1", "b2"})
	assert.Equal(t, 66.67, result.MatchedSkillPercentage)
}

func TestMatch_FuzzyThroughSynonymBackProjection(t *testing.T) {
	m := NewMatcher(nil)

	p := m.Match([]string{"AWS"}, []string{"Google Cloud Platform"})

	assert.Equal(t, []string{"aws"}, p.Matched.Sorted())
	assert.Equal(t, "cloud", p.ViaSynonym["aws"])
	require.Len(t, p.Fuzzy, 1)
	assert.Equal(t, "cloud", p.Fuzzy[0].Job)
	assert.Equal(t, "google cloud platform", p.Fuzzy[0].Resume)
}

func TestMatch_ResumeSideSynonymResolvesThroughExactPhase(t *testing.T) {
	m := NewMatcher(nil)

	// "cloud" has no synonyms of its own, but the resume's "aws" expands to it.
	p := m.Match([]string{"Cloud"}, []string{"AWS"})

	assert.Equal(t, []string{"cloud"}, p.Matched.Sorted())
	assert.True(t, p.Exact.Has("cloud"))
	assert.Empty(t, p.ViaSynonym)
}

func TestMatch_NoDoubleClaim(t *testing.T) {
	m := NewMatcher(NewSynonymTable(nil))

	result := m.Evaluate([]string{"postgres", "postgre"}, []string{"postgresql"})

	assert.Equal(t, []string{"postgre"}, result.MatchedSkills)
	assert.Equal(t, []string{"postgres"}, result.MissingSkills)
	assert.Equal(t, 50.0, result.MatchedSkillPercentage)
}

func TestMatch_ExactClaimsAreNotOfferedToFuzzy(t *testing.T) {
	m := NewMatcher(NewSynonymTable(nil))

	// "react" is taken by the exact phase, so "reactt" has nothing left to pair with.
	result := m.Evaluate([]string{"react", "reactt"}, []string{"react"})

	assert.Equal(t, []string{"react"}, result.MatchedSkills)
	assert.Equal(t, []string{"reactt"}, result.MissingSkills)
}

func TestMatch_CustomThresholds(t *testing.T) {
	strict := NewMatcher(NewSynonymTable(nil), WithFuzzyThreshold(95), WithSubstringFloor(90))

	result := strict.Evaluate([]string{"Kubernetes", "Java"}, []string{"Kuberentes", "JavaScript"})
	assert.Empty(t, result.MatchedSkills)

	lenient := NewMatcher(NewSynonymTable(nil), WithSubstringFloor(96), WithFuzzyThreshold(95))
	result = lenient.Evaluate([]string{"Java"}, []string{"JavaScript"})
	assert.Equal(t, []string{"java"}, result.MatchedSkills)
}

func TestMatch_Deterministic(t *testing.T) {
	m := NewMatcher(nil)
	job := []string{"Python", "AWS", "Kubernetes", "Terraform", "CI/CD", "Go", "React", "postgre"}
	resume := []string{"python 3", "Kuberentes", "terraform cloud", "GitHub Actions", "golang", "react.js", "PostgreSQL"}

	first, err := json.Marshal(m.Evaluate(job, resume))
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		next, err := json.Marshal(m.Evaluate(job, resume))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(next))
	}
}

func TestMatch_PercentageBounds(t *testing.T) {
	m := NewMatcher(nil)
	cases := [][2][]string{
		{{"python"}, {"python"}},
		{{"python", "aws", "go"}, {}},
		{{}, {}},
		{{"a", "b", "c", "d"}, {"a", "b", "c", "d", "e", "f"}},
		{{"machine learning", "ml", "ai"}, {"deep learning"}},
		{{"java", "javascript", "js"}, {"java"}},
	}

	for i, c := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			p := m.Match(c[0], c[1])
			r := p.Result()
			assert.GreaterOrEqual(t, r.MatchedSkillPercentage, 0.0)
			assert.LessOrEqual(t, r.MatchedSkillPercentage, 100.0)
			assert.Equal(t, p.JobSkills.Len(), len(r.MatchedSkills)+len(r.MissingSkills))
		})
	}
}

func TestMatcher_ConcurrentUse(t *testing.T) {
	m := NewMatcher(nil)
	want := m.Evaluate([]string{"Python", "AWS"}, []string{"python 3", "cloud"})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := m.Evaluate([]string{"Python", "AWS"}, []string{"python 3", "cloud"})
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}

func TestExplain(t *testing.T) {
	m := NewMatcher(nil)
	p := m.Match([]string{"Python", "Kubernetes", "Rust"}, []string{"python 3", "Kuberentes"})

	exp := m.Explain(p)

	assert.Equal(t, []string{"python 3"}, exp.ExactMatches)
	require.Len(t, exp.FuzzyMatches, 1)
	assert.Equal(t, FuzzyPair{Job: "kubernetes", Resume: "kuberentes", Score: 80}, exp.FuzzyMatches[0])
	assert.Equal(t, []SynonymMatch{{Skill: "python", Synonym: "python 3"}}, exp.SynonymMatches)
	assert.Equal(t, DefaultSynonyms().Version(), exp.SynonymVersion)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 0.0, Percentage(3, 0))
	assert.Equal(t, 100.0, Percentage(1, 1))
	assert.Equal(t, 14.29, Percentage(1, 7))
}
