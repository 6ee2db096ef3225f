package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/veridict/veridict/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		InputKind:    model.InputURL,
		SourceURL:    "https://bbc.com/news/x",
		SourceDomain: "bbc.com",
		AnalyzedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Profile:      "heuristic",
		WordCount:    412,
		Verdict: model.VerdictScore{
			Score: 100,
			Band:  model.BandReal,
		},
		Reasons: []string{
			"Article has sufficient length.",
			"Trusted news source detected (bbc.com).",
		},
	}
}

func TestRenderJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	r := NewRenderer(false)

	if err := r.RenderJSON(sampleReport(), path); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var decoded model.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Verdict.Band != model.BandReal {
		t.Errorf("band = %s, want Likely Real", decoded.Verdict.Band)
	}
	if decoded.Verdict.Score != 100 {
		t.Errorf("score = %d, want 100", decoded.Verdict.Score)
	}
}

func TestMarkdown(t *testing.T) {
	md := NewRenderer(true).Markdown(sampleReport())

	for _, want := range []string{
		"# Credibility Report",
		"## Verdict: Likely Real",
		"**Score:** 100/100",
		"Article has sufficient length.",
		"https://bbc.com/news/x",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	if !strings.Contains(md, "Generated by veridict") {
		t.Error("expected footer")
	}

	bare := NewRenderer(false).Markdown(sampleReport())
	if strings.Contains(bare, "Generated by veridict") {
		t.Error("footer rendered despite being disabled")
	}
}

func TestMarkdown_Degraded(t *testing.T) {
	report := sampleReport()
	report.Degraded = true
	report.DegradedReason = "Could not extract enough article text to analyze."
	report.Verdict = model.VerdictScore{Score: 55, Band: model.BandUncertain}

	md := NewRenderer(false).Markdown(report)
	if !strings.Contains(md, "## Verdict: Suspicious") {
		t.Error("expected Suspicious verdict heading")
	}
	if !strings.Contains(md, "Could not extract enough article text") {
		t.Error("expected degraded reason callout")
	}
}
