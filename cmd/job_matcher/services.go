package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/job-matcher/internal/config"
	"github.com/jonathan/job-matcher/internal/fetch"
	"github.com/jonathan/job-matcher/internal/ingestion"
	"github.com/jonathan/job-matcher/internal/llm"
	"github.com/jonathan/job-matcher/internal/matching"
	"github.com/jonathan/job-matcher/internal/schemas"
	"github.com/jonathan/job-matcher/internal/similarity"
	"github.com/jonathan/job-matcher/internal/skills"
)

// browserTimeout bounds a headless render of a job page.
const browserTimeout = 30 * time.Second

// buildMatcher creates the skill matcher described by cfg. An empty
// synonymsPath override falls back to cfg.SynonymsPath, then to the
// built-in table.
func buildMatcher(cfg *config.Config, synonymsPath string) (*skills.Matcher, error) {
	if synonymsPath == "" {
		synonymsPath = cfg.SynonymsPath
	}

	table := skills.DefaultSynonyms()
	if synonymsPath != "" {
		loaded, err := skills.LoadSynonymFile(synonymsPath)
		if err != nil {
			return nil, err
		}
		table = loaded
	}

	var opts []skills.Option
	if cfg.FuzzyThreshold != nil {
		opts = append(opts, skills.WithFuzzyThreshold(*cfg.FuzzyThreshold))
	}
	if cfg.SubstringFloor != nil {
		opts = append(opts, skills.WithSubstringFloor(*cfg.SubstringFloor))
	}
	return skills.NewMatcher(table, opts...), nil
}

// buildService wires the Gemini-backed match service. The returned client
// must be closed by the caller. Without an API key the client is nil and the
// service only runs the skill engine.
func buildService(ctx context.Context, cfg *config.Config) (*matching.Service, llm.Client, error) {
	matcher, err := buildMatcher(cfg, "")
	if err != nil {
		return nil, nil, err
	}

	if cfg.APIKey == "" {
		log.Printf("[service] GEMINI_API_KEY not set; job/resume comparisons are disabled")
		return matching.NewService(nil, nil, matcher), nil, nil
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	jobOpts := []ingestion.JobFetcherOption{ingestion.WithVerbose(cfg.Verbose)}
	if cfg.UseBrowser {
		jobOpts = append(jobOpts, ingestion.WithBrowserFallback(ingestion.HeadlessRender(browserTimeout)))
	}
	jobs := ingestion.NewJobFetcher(fetch.NewCachedFetcher(nil), jobOpts...)

	service := matching.NewService(
		llm.NewSkillExtractor(client),
		similarity.NewScorer(client),
		matcher,
		matching.WithJobFetcher(jobs),
	)
	return service, client, nil
}

// writeJSONOutput writes v as indented JSON to path, creating parent
// directories. When schemaRel resolves to a schema file the written output is
// validated against it; a schema that cannot be loaded only warns.
func writeJSONOutput(path string, v any, schemaRel string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output to JSON: %w", err)
	}

	if err := validateOutput(data, schemaRel); err != nil {
		return err
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

func validateOutput(data []byte, schemaRel string) error {
	if schemaRel == "" {
		return nil
	}
	schemaPath := schemas.ResolveSchemaPath(schemaRel)
	if schemaPath == "" {
		return nil
	}

	err := schemas.ValidateJSONBytes(schemaPath, data)
	if err == nil {
		return nil
	}
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		return fmt.Errorf("generated output is invalid: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema: %v\n", err)
	return nil
}
