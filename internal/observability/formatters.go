// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/job-matcher/internal/ingestion"
	"github.com/jonathan/job-matcher/internal/skills"
	"github.com/jonathan/job-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
	// previewLines is how much of an extracted document is shown
	previewLines = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads line to the inner box width, counting runes.
func pad(line string) string {
	width := boxWidth - 4
	n := utf8.RuneCountInString(line)
	if n > width {
		runes := []rune(line)
		return string(runes[:width-3]) + "..."
	}
	return line + strings.Repeat(" ", width-n)
}

// writeList writes a labelled bullet list, eliding entries past maxItemsToShow.
func writeList(sb *strings.Builder, label string, items []string) {
	sb.WriteString(fmt.Sprintf("%s (%d):\n", label, len(items)))
	if len(items) == 0 {
		sb.WriteString("  (none)\n")
		return
	}
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintMatchResult outputs a summary of a full job/resume comparison.
func (p *Printer) PrintMatchResult(result *types.JobMatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Similarity:     %.2f%%\n", result.SimilarityScore))
	sb.WriteString(fmt.Sprintf("Skills matched: %.2f%%\n\n", result.MatchedSkillPercentage))
	writeList(&sb, "Matched", result.MatchedSkills)
	writeList(&sb, "Missing", result.MissingSkills)
	writeList(&sb, "Resume skills", result.ExtraSkills)

	p.printBox("JOB MATCH", strings.TrimSuffix(sb.String(), "\n"))
	if result.Explanation != nil {
		p.PrintExplanation(result.Explanation)
	}
}

// PrintSkillResult outputs the engine result for two explicit skill lists.
func (p *Printer) PrintSkillResult(result *skills.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skills matched: %.2f%%\n\n", result.MatchedSkillPercentage))
	writeList(&sb, "Matched", result.MatchedSkills)
	writeList(&sb, "Missing", result.MissingSkills)
	writeList(&sb, "Resume skills", result.ExtraSkills)

	p.printBox("SKILL MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExplanation outputs which phase reconciled each matched skill.
func (p *Printer) PrintExplanation(exp *skills.Explanation) {
	if exp == nil {
		return
	}

	var sb strings.Builder
	writeList(&sb, "Exact", exp.ExactMatches)

	fuzzy := make([]string, 0, len(exp.FuzzyMatches))
	for _, pair := range exp.FuzzyMatches {
		fuzzy = append(fuzzy, fmt.Sprintf("%s ~ %s (%.2f)", pair.Job, pair.Resume, pair.Score))
	}
	writeList(&sb, "Fuzzy", fuzzy)

	synonyms := make([]string, 0, len(exp.SynonymMatches))
	for _, m := range exp.SynonymMatches {
		synonyms = append(synonyms, fmt.Sprintf("%s via %s", m.Skill, m.Synonym))
	}
	writeList(&sb, "Synonym", synonyms)

	if exp.SynonymVersion != "" {
		sb.WriteString(fmt.Sprintf("\nSynonym table: %s\n", exp.SynonymVersion))
	}

	p.printBox("MATCH EXPLANATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDocument outputs extraction statistics and the first lines of the text.
func (p *Printer) PrintDocument(doc *ingestion.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Type:       %s\n", doc.MIMEType))
	sb.WriteString(fmt.Sprintf("Pages:      %d\n", doc.PageCount))
	sb.WriteString(fmt.Sprintf("Characters: %d\n\n", doc.CharCount))

	lines := strings.Split(doc.Text, "\n")
	for _, line := range lines[:min(len(lines), previewLines)] {
		sb.WriteString(line + "\n")
	}
	if len(lines) > previewLines {
		sb.WriteString(fmt.Sprintf("... %d more lines\n", len(lines)-previewLines))
	}

	p.printBox("EXTRACTED TEXT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSynonymTable outputs a summary of a loaded synonym table.
func (p *Printer) PrintSynonymTable(path string, table *skills.SynonymTable) {
	if table == nil {
		return
	}

	version := table.Version()
	if version == "" {
		version = "(unversioned)"
	}
	content := fmt.Sprintf("Source:  %s\nVersion: %s\nEntries: %d", path, version, table.Len())
	p.printBox("SYNONYM TABLE", content)
}
