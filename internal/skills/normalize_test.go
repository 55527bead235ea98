package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lower-cases", input: "Python", want: "python"},
		{name: "trims", input: "  Docker\t", want: "docker"},
		{name: "keeps punctuation", input: "CI/CD", want: "ci/cd"},
		{name: "keeps inner spaces", input: " Machine  Learning ", want: "machine  learning"},
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: " \n\t ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"Python", "  AWS ", "C++", "Node.JS", "", "  ", "Kubernetes (K8s)", "ÉCOLE"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNewSkillSet_DropsEmptyAndCollapsesDuplicates(t *testing.T) {
	set := NewSkillSet([]string{"Python", "python ", "PYTHON", "", "   ", "Go"})

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Has("python"))
	assert.True(t, set.Has(" GO "))
	assert.False(t, set.Has(""))
	assert.Equal(t, []string{"go", "python"}, set.Sorted())
}

func TestSkillSet_SortedNeverNil(t *testing.T) {
	set := NewSkillSet(nil)
	sorted := set.Sorted()
	assert.NotNil(t, sorted)
	assert.Empty(t, sorted)
}

func TestSkillSet_SetOperations(t *testing.T) {
	a := NewSkillSet([]string{"go", "rust", "python"})
	b := NewSkillSet([]string{"python", "java"})

	assert.Equal(t, []string{"python"}, a.Intersect(b).Sorted())
	assert.Equal(t, []string{"go", "rust"}, a.Difference(b).Sorted())
	assert.Equal(t, []string{"go", "java", "python", "rust"}, a.Union(b).Sorted())

	// Operations never mutate their inputs.
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 2, b.Len())
}
