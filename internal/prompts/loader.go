// Package prompts holds the embedded LLM prompt templates. Each JSON file
// maps a prompt key to its template text; placeholders use the {{.Key}} form.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

type catalog map[string]map[string]string

var loadCatalog = sync.OnceValues(func() (catalog, error) {
	entries, err := fs.ReadDir(promptFiles, ".")
	if err != nil {
		return nil, err
	}
	c := make(catalog, len(entries))
	for _, entry := range entries {
		data, err := promptFiles.ReadFile(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt file %s: %w", entry.Name(), err)
		}
		var templates map[string]string
		if err := json.Unmarshal(data, &templates); err != nil {
			return nil, fmt.Errorf("failed to parse prompt file %s: %w", entry.Name(), err)
		}
		c[entry.Name()] = templates
	}
	return c, nil
})

func file(filename string) (map[string]string, error) {
	c, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	templates, ok := c[filename]
	if !ok {
		return nil, fmt.Errorf("unknown prompt file %s", filename)
	}
	return templates, nil
}

// Get returns the template stored under key in filename.
func Get(filename, key string) (string, error) {
	templates, err := file(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for prompts that ship with the binary.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("prompts: %v", err))
	}
	return prompt
}

// Render looks up a template and fills its placeholders.
func Render(filename, key string, data map[string]string) (string, error) {
	template, err := Get(filename, key)
	if err != nil {
		return "", err
	}
	return Format(template, data), nil
}

// Format substitutes {{.Key}} placeholders. Unknown placeholders stay as-is.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
