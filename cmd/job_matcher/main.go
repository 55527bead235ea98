// Package main provides the job_matcher CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_matcher",
	Short: "Resume and job description skill matcher",
	Long:  "Job Matcher compares a resume with a job description: it extracts skills from both, reconciles them through synonyms and fuzzy matching, and reports matched, missing and extra skills with a semantic similarity score.",
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file (optional)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
