package skills

import "sort"

// SkillSet is a set of normalized skills. It never contains the empty string.
type SkillSet map[string]struct{}

// Add normalizes phrase and inserts it. Returns false if the phrase was empty
// after normalization or already present.
func (s SkillSet) Add(phrase string) bool {
	skill := Normalize(phrase)
	if skill == "" {
		return false
	}
	if _, exists := s[skill]; exists {
		return false
	}
	s[skill] = struct{}{}
	return true
}

// Has reports whether the normalized form of phrase is in the set.
func (s SkillSet) Has(phrase string) bool {
	_, ok := s[Normalize(phrase)]
	return ok
}

// Len returns the number of skills in the set.
func (s SkillSet) Len() int {
	return len(s)
}

// Sorted returns the skills in ascending lexicographic order.
// The result is never nil so it serializes as an empty JSON array.
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for skill := range s {
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy of the set.
func (s SkillSet) Clone() SkillSet {
	out := make(SkillSet, len(s))
	for skill := range s {
		out[skill] = struct{}{}
	}
	return out
}

// Intersect returns the skills present in both s and other.
func (s SkillSet) Intersect(other SkillSet) SkillSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(SkillSet)
	for skill := range small {
		if _, ok := large[skill]; ok {
			out[skill] = struct{}{}
		}
	}
	return out
}

// Difference returns the skills in s that are not in other.
func (s SkillSet) Difference(other SkillSet) SkillSet {
	out := make(SkillSet)
	for skill := range s {
		if _, ok := other[skill]; !ok {
			out[skill] = struct{}{}
		}
	}
	return out
}

// Union returns the skills present in either s or other.
func (s SkillSet) Union(other SkillSet) SkillSet {
	out := s.Clone()
	for skill := range other {
		out[skill] = struct{}{}
	}
	return out
}
