package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/veridict/veridict/internal/model"
)

// Renderer writes analysis reports as JSON, Markdown or a terminal
// summary.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// JSON renders the report as indented JSON
func (r *Renderer) JSON(report *model.Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}

// RenderJSON writes the report as JSON to the given path
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := r.JSON(report)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Markdown renders the report as a Markdown document
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	b.WriteString("# Credibility Report\n\n")

	if report.SourceURL != "" {
		fmt.Fprintf(&b, "**Source:** %s\n\n", report.SourceURL)
	}
	fmt.Fprintf(&b, "**Analyzed:** %s\n\n", report.AnalyzedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "**Profile:** %s\n\n", report.Profile)

	fmt.Fprintf(&b, "## Verdict: %s\n\n", report.Verdict.Band)
	fmt.Fprintf(&b, "**Score:** %d/100\n\n", report.Verdict.Score)
	if report.Verdict.Softened {
		b.WriteString("Verdict softened by corroborating coverage from trusted outlets.\n\n")
	}

	if report.Degraded {
		fmt.Fprintf(&b, "> %s\n\n", report.DegradedReason)
	}

	if len(report.Reasons) > 0 {
		b.WriteString("## Reasons\n\n")
		for _, reason := range report.Reasons {
			fmt.Fprintf(&b, "- %s\n", reason)
		}
		b.WriteString("\n")
	}

	if report.WordCount > 0 {
		fmt.Fprintf(&b, "**Words analyzed:** %d\n\n", report.WordCount)
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString("*Generated by veridict. Scores are heuristic estimates, not fact checks.*\n")
	}

	return b.String()
}

// RenderMarkdown writes the report as Markdown to the given path
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown(report)), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderSummary prints a short human-readable summary to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Println()
	fmt.Printf("Verdict: %s (score %d/100)\n", report.Verdict.Band, report.Verdict.Score)
	if report.SourceDomain != "" {
		fmt.Printf("Source:  %s\n", report.SourceDomain)
	}
	for _, reason := range report.Reasons {
		fmt.Printf("  - %s\n", reason)
	}
	if report.Verdict.AdvisoryFlags > 0 {
		fmt.Printf("Advisory flags: %d\n", report.Verdict.AdvisoryFlags)
	}
	fmt.Println()
}
