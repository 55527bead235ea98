package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/job-matcher/internal/config"
	"github.com/jonathan/job-matcher/internal/observability"
	"github.com/jonathan/job-matcher/internal/parsing"
	"github.com/jonathan/job-matcher/internal/types"
	"github.com/spf13/cobra"
)

const skillMatchSchema = "schemas/skill_match_result.schema.json"

var matchSkillsCmd = &cobra.Command{
	Use:   "match-skills",
	Short: "Match two skill lists without calling the LLM",
	Long:  "Matches a job's skill list against a resume's skill list using normalization, synonyms and fuzzy matching, and reports matched, missing and extra skills. Lists are comma-separated, one per line, or a JSON array.",
	RunE:  runMatchSkills,
}

type matchSkillsOptions struct {
	JobSkills        string
	ResumeSkills     string
	JobSkillsFile    string
	ResumeSkillsFile string
	SynonymsPath     string
	Explain          bool
	Output           string
}

var matchSkillsOpts matchSkillsOptions

func init() {
	f := matchSkillsCmd.Flags()
	f.StringVar(&matchSkillsOpts.JobSkills, "job-skills", "", "Comma-separated job skills")
	f.StringVar(&matchSkillsOpts.ResumeSkills, "resume-skills", "", "Comma-separated resume skills")
	f.StringVar(&matchSkillsOpts.JobSkillsFile, "job-skills-file", "", "File containing job skills")
	f.StringVar(&matchSkillsOpts.ResumeSkillsFile, "resume-skills-file", "", "File containing resume skills")
	f.StringVar(&matchSkillsOpts.SynonymsPath, "synonyms", "", "Synonym table JSON replacing the built-in one")
	f.BoolVar(&matchSkillsOpts.Explain, "explain", false, "Report which rule matched each skill")
	f.StringVarP(&matchSkillsOpts.Output, "out", "o", "", "Path to output JSON file")

	matchSkillsCmd.MarkFlagsMutuallyExclusive("job-skills", "job-skills-file")
	matchSkillsCmd.MarkFlagsMutuallyExclusive("resume-skills", "resume-skills-file")
	matchSkillsCmd.MarkFlagsOneRequired("job-skills", "job-skills-file")
	matchSkillsCmd.MarkFlagsOneRequired("resume-skills", "resume-skills-file")

	rootCmd.AddCommand(matchSkillsCmd)
}

func runMatchSkills(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	return matchSkills(cfg, matchSkillsOpts, os.Stdout)
}

func matchSkills(cfg *config.Config, opts matchSkillsOptions, out io.Writer) error {
	jobSkills, err := readSkills(opts.JobSkills, opts.JobSkillsFile)
	if err != nil {
		return fmt.Errorf("failed to read job skills: %w", err)
	}
	resumeSkills, err := readSkills(opts.ResumeSkills, opts.ResumeSkillsFile)
	if err != nil {
		return fmt.Errorf("failed to read resume skills: %w", err)
	}

	matcher, err := buildMatcher(cfg, opts.SynonymsPath)
	if err != nil {
		return fmt.Errorf("failed to load synonyms: %w", err)
	}

	partition := matcher.Match(jobSkills, resumeSkills)
	response := types.SkillMatchResponse{
		Result: *partition.Result(),
		Status: types.StatusSuccess,
	}
	if opts.Explain {
		response.Explanation = matcher.Explain(partition)
	}

	printer := observability.NewPrinter(out)
	printer.PrintSkillResult(&response.Result)
	if response.Explanation != nil {
		printer.PrintExplanation(response.Explanation)
	}

	if opts.Output == "" {
		return nil
	}
	if err := writeJSONOutput(opts.Output, response, skillMatchSchema); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Successfully wrote skill match to %s\n", opts.Output)
	return nil
}

// readSkills returns the skills in inline, or in the file at path when
// inline is empty.
func readSkills(inline, path string) ([]string, error) {
	if path == "" {
		return parsing.ParseSkillList(inline), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parsing.ParseSkillList(string(data)), nil
}
