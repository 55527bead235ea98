package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/job-matcher/internal/ingestion"
	"github.com/jonathan/job-matcher/internal/observability"
	"github.com/spf13/cobra"
)

var extractTextCmd = &cobra.Command{
	Use:   "extract-text",
	Short: "Extract plain text from a PDF, DOCX or text file",
	RunE:  runExtractText,
}

var (
	extractTextInput  string
	extractTextOutput string
)

func init() {
	extractTextCmd.Flags().StringVarP(&extractTextInput, "in", "i", "", "Path to the input document (required)")
	extractTextCmd.Flags().StringVarP(&extractTextOutput, "out", "o", "", "Path to write the extracted text")

	if err := extractTextCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(extractTextCmd)
}

func runExtractText(_ *cobra.Command, _ []string) error {
	return extractText(extractTextInput, extractTextOutput, os.Stdout)
}

func extractText(input, output string, out io.Writer) error {
	doc, err := ingestion.ReadFile(input)
	if err != nil {
		return err
	}

	if output == "" {
		_, _ = fmt.Fprintln(out, doc.Text)
		return nil
	}

	if dir := filepath.Dir(output); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(output, []byte(doc.Text), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", output, err)
	}

	observability.NewPrinter(out).PrintDocument(doc)
	_, _ = fmt.Fprintf(out, "Successfully extracted text to %s\n", output)
	return nil
}
