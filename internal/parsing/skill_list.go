// Package parsing turns free-form LLM responses into skill lists.
package parsing

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/job-matcher/internal/skills"
)

// MaxSkillLength is the longest phrase, in runes, accepted as a single skill.
// Anything longer is a sentence the model leaked into the list.
const MaxSkillLength = 80

// labelPrefixes are preambles models put in front of the list.
var labelPrefixes = []string{
	"skills (comma-separated):",
	"skills (comma-seperated):",
	"skills:",
	"extracted skills:",
	"technical skills:",
}

// ParseSkillList parses a model response into normalized, de-duplicated skills
// in first-seen order. It accepts a comma-separated list (the requested
// format), newline or bullet lists, a JSON array of strings, or a JSON object
// with a "skills" array, optionally wrapped in a markdown code block.
// Unusable input yields an empty, non-nil list.
func ParseSkillList(text string) []string {
	text = cleanCodeBlock(text)
	if text == "" {
		return []string{}
	}

	if strings.HasPrefix(text, "[") || strings.HasPrefix(text, "{") {
		if items, err := ParseSkillJSON(text); err == nil {
			return collect(items)
		}
		text = strings.Trim(text, "[]{}")
	}

	text = stripLabel(text)
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})
	return collect(fields)
}

// ParseSkillJSON decodes a JSON array of strings or an object of the form
// {"skills": [...]}.
func ParseSkillJSON(text string) ([]string, error) {
	text = cleanCodeBlock(text)

	var items []string
	if err := json.Unmarshal([]byte(text), &items); err == nil {
		return items, nil
	}

	var wrapped struct {
		Skills []string `json:"skills"`
	}
	if err := json.Unmarshal([]byte(text), &wrapped); err != nil {
		return nil, newParseError("response is not a JSON skill list", text, err)
	}
	if wrapped.Skills == nil {
		return nil, newParseError(`JSON object has no "skills" array`, text, nil)
	}
	return wrapped.Skills, nil
}

// collect cleans each raw item and de-duplicates by normalized form.
func collect(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		skill := skills.Normalize(cleanItem(item))
		if skill == "" || seen[skill] || utf8.RuneCountInString(skill) > MaxSkillLength {
			continue
		}
		seen[skill] = true
		out = append(out, skill)
	}
	return out
}

// cleanItem strips list markers, quotes and trailing punctuation from one item.
func cleanItem(item string) string {
	item = strings.TrimSpace(item)
	item = strings.TrimLeft(item, "-*•·")
	item = trimOrdinal(item)
	item = strings.TrimSpace(item)
	item = strings.Trim(item, "\"'`")
	item = strings.TrimRight(item, ".!")
	return strings.TrimSpace(item)
}

// trimOrdinal drops a leading "1." or "2)" marker.
func trimOrdinal(item string) string {
	item = strings.TrimSpace(item)
	i := 0
	for i < len(item) && item[i] >= '0' && item[i] <= '9' {
		i++
	}
	if i > 0 && i < len(item) && (item[i] == '.' || item[i] == ')') {
		return item[i+1:]
	}
	return item
}

func stripLabel(text string) string {
	lower := strings.ToLower(text)
	for _, prefix := range labelPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return strings.TrimSpace(text[len(prefix):])
		}
	}
	return text
}

// cleanCodeBlock removes markdown code block wrappers and an optional
// language tag on the opening fence.
func cleanCodeBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		if tag := text[:idx]; !strings.ContainsAny(tag, " ,[{") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
