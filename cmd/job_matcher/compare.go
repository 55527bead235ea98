package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jonathan/job-matcher/internal/config"
	"github.com/jonathan/job-matcher/internal/ingestion"
	"github.com/jonathan/job-matcher/internal/observability"
	"github.com/jonathan/job-matcher/internal/types"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a resume with a job description",
	Long:  "Extracts skills from a job description and a resume with the LLM, matches them, and scores the semantic similarity of the two documents. The job may be a file or a URL; the resume may be PDF, DOCX or text.",
	RunE:  runCompare,
}

type compareOptions struct {
	JobFile    string
	JobURL     string
	ResumeFile string
	Output     string
}

var compareOpts compareOptions

func init() {
	f := compareCmd.Flags()
	f.StringVarP(&compareOpts.JobFile, "job", "j", "", "Path to the job description (text, PDF or DOCX)")
	f.StringVarP(&compareOpts.JobURL, "job-url", "u", "", "URL to fetch the job posting from")
	f.StringVarP(&compareOpts.ResumeFile, "resume", "r", "", "Path to the resume (PDF, DOCX or text) (required)")
	f.StringVarP(&compareOpts.Output, "out", "o", "", "Path to output JSON file")

	if err := compareCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	compareCmd.MarkFlagsMutuallyExclusive("job", "job-url")
	compareCmd.MarkFlagsOneRequired("job", "job-url")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout())
	defer cancel()

	service, client, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Printf("[compare] Error closing LLM client: %v", err)
		}
	}()

	req, err := buildCompareRequest(compareOpts)
	if err != nil {
		return err
	}

	result, err := service.CompareRequest(ctx, req)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}
	return writeCompareResult(result, compareOpts.Output, os.Stdout)
}

// buildCompareRequest reads the documents named by opts into a request.
func buildCompareRequest(opts compareOptions) (*types.JobMatchRequest, error) {
	resume, err := ingestion.ReadFile(opts.ResumeFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}

	req := &types.JobMatchRequest{
		ResumeText: resume.Text,
		JobURL:     opts.JobURL,
	}
	if opts.JobFile != "" {
		job, err := ingestion.ReadFile(opts.JobFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read job description: %w", err)
		}
		req.JobText = job.Text
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	return req, nil
}

func writeCompareResult(result *types.JobMatchResult, output string, out io.Writer) error {
	observability.NewPrinter(out).PrintMatchResult(result)
	if output == "" {
		return nil
	}

	response := types.JobMatchResponse{JobMatchResult: *result, Status: types.StatusSuccess}
	if err := writeJSONOutput(output, response, skillMatchSchema); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Successfully wrote comparison to %s\n", output)
	return nil
}
