package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/job-matcher/internal/observability"
	"github.com/jonathan/job-matcher/internal/schemas"
	"github.com/jonathan/job-matcher/internal/skills"
	"github.com/spf13/cobra"
)

const synonymTableSchema = "schemas/synonym_table.schema.json"

var validateSynonymsCmd = &cobra.Command{
	Use:   "validate-synonyms",
	Short: "Validate a synonym table file",
	Long:  "Validates a synonym table against its JSON Schema and loads it the way the matcher would.",
	RunE:  runValidateSynonyms,
}

var validateSynonymsInput string

func init() {
	validateSynonymsCmd.Flags().StringVarP(&validateSynonymsInput, "in", "i", "", "Path to the synonym table JSON (required)")

	if err := validateSynonymsCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateSynonymsCmd)
}

func runValidateSynonyms(_ *cobra.Command, _ []string) error {
	return validateSynonyms(validateSynonymsInput, os.Stdout)
}

func validateSynonyms(path string, out io.Writer) error {
	schemaPath := schemas.ResolveSchemaPath(synonymTableSchema)
	if schemaPath == "" {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %s not found, skipping schema validation\n", synonymTableSchema)
	} else if err := schemas.ValidateJSON(schemaPath, path); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("synonym table is invalid: %w", err)
		}
		return err
	}

	table, err := skills.LoadSynonymFile(path)
	if err != nil {
		return err
	}

	observability.NewPrinter(out).PrintSynonymTable(path, table)
	return nil
}
