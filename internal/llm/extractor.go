package llm

import (
	"context"
	"log"
	"strings"

	"github.com/jonathan/job-matcher/internal/parsing"
	"github.com/jonathan/job-matcher/internal/prompts"
)

// ExtractionContext tells the model what kind of document it is reading.
type ExtractionContext string

const (
	// ContextJob is a job description
	ContextJob ExtractionContext = "job"
	// ContextResume is a candidate resume
	ContextResume ExtractionContext = "resume"
)

// Title returns the context capitalized for use as a prompt heading.
func (c ExtractionContext) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// SkillExtractor pulls skill phrases out of free text with an LLM.
type SkillExtractor struct {
	client Client
	tier   ModelTier
}

// NewSkillExtractor creates an extractor that uses the lite tier of client.
func NewSkillExtractor(client Client) *SkillExtractor {
	return &SkillExtractor{client: client, tier: TierLite}
}

// ExtractSkills returns the skills named in text, normalized and de-duplicated.
// Extraction never fails: a model error is logged and yields an empty list, so
// the engine still reports a result.
func (e *SkillExtractor) ExtractSkills(ctx context.Context, text string, ec ExtractionContext) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	log.Printf("[extract] Extracting %s skills from text (%d chars)", ec, len(text))

	prompt, err := prompts.Render("extraction.json", "extract-skills", map[string]string{
		"Instructions": prompts.MustGet("extraction.json", "recruiter-instructions"),
		"Context":      string(ec),
		"ContextTitle": ec.Title(),
		"Text":         text,
	})
	if err != nil {
		log.Printf("[extract] Failed to build %s prompt: %v", ec, err)
		return []string{}
	}

	response, err := e.client.GenerateContent(ctx, prompt, e.tier)
	if err != nil {
		log.Printf("[extract] LLM error while extracting %s skills: %v", ec, err)
		log.Printf("[extract] Returning empty skills list as fallback")
		return []string{}
	}

	found := parsing.ParseSkillList(response)
	log.Printf("[extract] Extracted %d skills from %s", len(found), ec)
	return found
}
