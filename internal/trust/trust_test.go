package trust

import (
	"testing"

	"github.com/veridict/veridict/internal/model"
)

func TestSourceSet_SubstringMatch(t *testing.T) {
	set := NewSourceSet([]string{"bbc.com", "reuters.com"})

	cases := map[string]bool{
		"bbc.com":          true,
		"news.bbc.com":     true,
		"www.reuters.com":  true,
		"bbc.com.evil.org": true, // substring semantics, by contract
		"cnn.com":          false,
		"":                 false,
	}

	for domain, want := range cases {
		if got := set.Contains(domain); got != want {
			t.Errorf("Contains(%q) = %v, want %v", domain, got, want)
		}
	}
}

func TestSourceSet_MatchedEntry(t *testing.T) {
	set := NewSourceSet([]string{"ndtv.com", "bbc.com"})

	entry, ok := set.Match("news.BBC.com")
	if !ok {
		t.Fatal("Expected match for news.BBC.com")
	}
	if entry != "bbc.com" {
		t.Errorf("Expected matched entry bbc.com, got %s", entry)
	}
}

func TestSourceSet_NormalizesEntries(t *testing.T) {
	set := NewSourceSet([]string{" BBC.com ", "", "  "})
	if set.Len() != 1 {
		t.Fatalf("Expected 1 entry after normalization, got %d", set.Len())
	}
	if !set.Contains("bbc.com") {
		t.Error("Expected normalized entry to match")
	}
}

func TestSourceSet_MatchResult(t *testing.T) {
	set := NewSourceSet([]string{"reuters.com"})

	bySource := model.CorroborationResult{Title: "a", URL: "https://other.org/x", Source: "reuters.com"}
	if !set.MatchResult(bySource) {
		t.Error("Expected match via source identifier")
	}

	byURL := model.CorroborationResult{Title: "b", URL: "https://www.reuters.com/world/x", Source: ""}
	if !set.MatchResult(byURL) {
		t.Error("Expected match via URL host")
	}

	neither := model.CorroborationResult{Title: "c", URL: "https://blog.example.org/x", Source: "example"}
	if set.MatchResult(neither) {
		t.Error("Expected no match")
	}
}
