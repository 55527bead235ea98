package skills

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
)

//go:embed synonyms.json
var defaultSynonymsJSON []byte

// SynonymTable maps a normalized skill to an ordered list of related skills.
// The mapping is one-directional: an entry for "aws" says nothing about "cloud".
// A table is immutable after construction and safe for concurrent use.
type SynonymTable struct {
	version string
	entries map[string][]string
}

// synonymFile is the on-disk representation of a synonym table.
type synonymFile struct {
	Version  string              `json:"version"`
	Synonyms map[string][]string `json:"synonyms"`
}

var defaultSynonyms = sync.OnceValue(func() *SynonymTable {
	table, err := LoadSynonymTable(bytes.NewReader(defaultSynonymsJSON))
	if err != nil {
		panic(fmt.Sprintf("embedded synonym table is invalid: %v", err))
	}
	return table
})

// DefaultSynonyms returns the synonym table embedded in the binary.
// It is parsed once per process and shared by every caller.
func DefaultSynonyms() *SynonymTable {
	return defaultSynonyms()
}

// NewSynonymTable builds a table from raw entries. Keys and values are
// normalized, empty values and self-references are dropped, and duplicate
// values keep their first position. Keys that normalize to the same skill
// have their lists merged in sorted key order.
func NewSynonymTable(entries map[string][]string) *SynonymTable {
	return newSynonymTable("", entries)
}

func newSynonymTable(version string, entries map[string][]string) *SynonymTable {
	table := &SynonymTable{
		version: version,
		entries: make(map[string][]string, len(entries)),
	}

	// Raw keys are visited in sorted order so merged lists are deterministic.
	rawKeys := make([]string, 0, len(entries))
	for k := range entries {
		rawKeys = append(rawKeys, k)
	}
	sort.Strings(rawKeys)

	for _, rawKey := range rawKeys {
		key := Normalize(rawKey)
		if key == "" {
			continue
		}
		existing := table.entries[key]
		seen := make(map[string]bool, len(existing)+len(entries[rawKey]))
		for _, v := range existing {
			seen[v] = true
		}
		for _, raw := range entries[rawKey] {
			value := Normalize(raw)
			if value == "" || value == key || seen[value] {
				continue
			}
			seen[value] = true
			existing = append(existing, value)
		}
		if len(existing) > 0 {
			table.entries[key] = existing
		}
	}

	return table
}

// LoadSynonymTable parses a JSON synonym table of the form
// {"version": "...", "synonyms": {"skill": ["related", ...]}}.
func LoadSynonymTable(r io.Reader) (*SynonymTable, error) {
	var file synonymFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, &SynonymLoadError{Message: "invalid synonym table JSON", Cause: err}
	}
	if file.Synonyms == nil {
		return nil, &SynonymLoadError{Message: "missing \"synonyms\" object"}
	}
	return newSynonymTable(file.Version, file.Synonyms), nil
}

// LoadSynonymFile reads a synonym table from disk.
func LoadSynonymFile(path string) (*SynonymTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SynonymLoadError{Source: path, Message: "failed to open synonym file", Cause: err}
	}
	defer func() { _ = f.Close() }()

	table, err := LoadSynonymTable(f)
	if err != nil {
		var loadErr *SynonymLoadError
		if errors.As(err, &loadErr) {
			loadErr.Source = path
		}
		return nil, err
	}
	return table, nil
}

// Version returns the version label of the table, if it was loaded from a file.
func (t *SynonymTable) Version() string {
	return t.version
}

// Len returns the number of keys in the table.
func (t *SynonymTable) Len() int {
	return len(t.entries)
}

// Lookup returns the synonyms of the normalized form of skill, or nil if it
// is not a key. The returned slice is a copy.
func (t *SynonymTable) Lookup(skill string) []string {
	values, ok := t.entries[Normalize(skill)]
	if !ok {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// Expand returns skills plus the direct synonyms of each skill. Expansion is
// a single hop: synonyms that are themselves keys are not expanded further.
func (t *SynonymTable) Expand(skills SkillSet) SkillSet {
	out := skills.Clone()
	for skill := range skills {
		for _, synonym := range t.entries[skill] {
			out[synonym] = struct{}{}
		}
	}
	return out
}

// synonymsIntersect reports whether any synonym of skill is in set.
func (t *SynonymTable) synonymsIntersect(skill string, set SkillSet) (string, bool) {
	for _, synonym := range t.entries[skill] {
		if _, ok := set[synonym]; ok {
			return synonym, true
		}
	}
	return "", false
}
