package skills

// Matcher reconciles job skills against resume skills. A Matcher holds only
// read-only configuration and may be shared across goroutines.
type Matcher struct {
	synonyms       *SynonymTable
	fuzzyThreshold float64
	substringFloor float64
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithFuzzyThreshold sets the minimum fuzzy score for a pairing to be accepted.
func WithFuzzyThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.fuzzyThreshold = threshold
	}
}

// WithSubstringFloor sets the score given when one skill contains the other.
func WithSubstringFloor(floor float64) Option {
	return func(m *Matcher) {
		m.substringFloor = floor
	}
}

// NewMatcher creates a Matcher over the given synonym table.
// A nil table means DefaultSynonyms.
func NewMatcher(synonyms *SynonymTable, opts ...Option) *Matcher {
	if synonyms == nil {
		synonyms = DefaultSynonyms()
	}
	m := &Matcher{
		synonyms:       synonyms,
		fuzzyThreshold: DefaultFuzzyThreshold,
		substringFloor: DefaultSubstringFloor,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Synonyms returns the table the Matcher expands with.
func (m *Matcher) Synonyms() *SynonymTable {
	return m.synonyms
}

// Partition is the outcome of matching one job skill list against one resume
// skill list.
type Partition struct {
	// JobSkills is the normalized job skill list; the percentage denominator.
	JobSkills SkillSet
	// Matched is the subset of JobSkills considered present in the resume.
	Matched SkillSet
	// Missing is JobSkills minus Matched.
	Missing SkillSet
	// Extra is the full normalized resume skill list, matched or not.
	Extra SkillSet

	// Exact is the intersection of both expanded sets.
	Exact SkillSet
	// Fuzzy lists the accepted fuzzy pairings in job-skill order.
	Fuzzy []FuzzyPair
	// ViaSynonym maps a matched job skill to the synonym that tied it to the
	// resume, for skills matched only through back-projection.
	ViaSynonym map[string]string
}

// Match runs the full pipeline: normalize, expand, exact phase, fuzzy phase,
// and back-projection onto the job's own skill list.
func (m *Matcher) Match(jobSkills, resumeSkills []string) *Partition {
	jobNorm := NewSkillSet(jobSkills)
	resumeNorm := NewSkillSet(resumeSkills)

	jobExpanded := m.synonyms.Expand(jobNorm)
	resumeExpanded := m.synonyms.Expand(resumeNorm)

	exact := jobExpanded.Intersect(resumeExpanded)

	fuzzy := assignFuzzy(
		jobExpanded.Difference(exact),
		resumeExpanded.Difference(exact),
		m.fuzzyThreshold,
		m.substringFloor,
	)
	fuzzyJobs := make(SkillSet, len(fuzzy))
	for _, pair := range fuzzy {
		fuzzyJobs[pair.Job] = struct{}{}
	}

	reconciled := exact.Union(fuzzyJobs)
	matched := make(SkillSet)
	viaSynonym := make(map[string]string)
	for skill := range jobNorm {
		if _, ok := reconciled[skill]; ok {
			matched[skill] = struct{}{}
			continue
		}
		// Only the job skill's own synonym list is consulted here; a resume
		// skill whose synonyms point back at the job skill does not count.
		if synonym, ok := m.synonyms.synonymsIntersect(skill, reconciled); ok {
			matched[skill] = struct{}{}
			viaSynonym[skill] = synonym
		}
	}

	return &Partition{
		JobSkills:  jobNorm,
		Matched:    matched,
		Missing:    jobNorm.Difference(matched),
		Extra:      resumeNorm,
		Exact:      exact,
		Fuzzy:      fuzzy,
		ViaSynonym: viaSynonym,
	}
}
