package extract

import (
	"strings"
	"testing"

	"github.com/veridict/veridict/internal/model"
)

func testHeuristics() *Heuristics {
	cfg := model.DefaultConfig()
	return NewHeuristics(cfg.Heuristics, cfg.Profiles["heuristic"].Deltas)
}

func longNeutralText(words int) model.ArticleText {
	return model.NewArticleText(strings.TrimSpace(strings.Repeat("said ", words)), "")
}

func TestLengthAdequacy(t *testing.T) {
	h := testHeuristics()

	sig := h.LengthAdequacy(longNeutralText(400))
	if sig == nil {
		t.Fatal("Expected signal for 400-word article")
	}
	if sig.Delta != 20 {
		t.Errorf("Expected delta +20, got %d", sig.Delta)
	}
	if sig.Reason != "Article has sufficient length." {
		t.Errorf("Unexpected reason: %s", sig.Reason)
	}

	if h.LengthAdequacy(longNeutralText(200)) != nil {
		t.Error("Expected no signal for 200-word article")
	}

	// Boundary: exactly 300 words does not fire (condition is strict >)
	if h.LengthAdequacy(longNeutralText(300)) != nil {
		t.Error("Expected no signal at exactly 300 words")
	}
}

func TestLengthDeficiency(t *testing.T) {
	h := testHeuristics()

	sig := h.LengthDeficiency(longNeutralText(40))
	if sig == nil {
		t.Fatal("Expected signal for 40-word article")
	}
	if sig.Delta != -20 {
		t.Errorf("Expected delta -20, got %d", sig.Delta)
	}
	if sig.Reason != "Article is very short." {
		t.Errorf("Unexpected reason: %s", sig.Reason)
	}

	// Boundary: exactly 80 words does not fire (condition is strict <)
	if h.LengthDeficiency(longNeutralText(80)) != nil {
		t.Error("Expected no signal at exactly 80 words")
	}
}

func TestSensationalLanguage(t *testing.T) {
	h := testHeuristics()

	art := model.NewArticleText("SHOCKING development: a secret memo was exposed today. Truly shocking.", "")
	sig := h.SensationalLanguage(art)
	if sig == nil {
		t.Fatal("Expected sensational-language signal")
	}
	if sig.Delta != -25 {
		t.Errorf("Expected flat -25 penalty, got %d", sig.Delta)
	}
	// Hits listed in lexicon order, each phrase once
	if sig.Reason != "Sensational words detected: shocking, exposed, secret" {
		t.Errorf("Unexpected reason: %s", sig.Reason)
	}

	neutral := model.NewArticleText("The committee published its findings this week.", "")
	if h.SensationalLanguage(neutral) != nil {
		t.Error("Expected no signal for neutral text")
	}
}

func TestSensationalLanguage_WholeWord(t *testing.T) {
	h := testHeuristics()

	// "viral" inside "antiviral" must not match
	art := model.NewArticleText("New antiviral treatments were approved.", "")
	if sig := h.SensationalLanguage(art); sig != nil {
		t.Errorf("Expected no match inside larger word, got %s", sig.Reason)
	}

	// multi-word phrase matches as a unit
	art = model.NewArticleText("For more, click here now.", "")
	sig := h.SensationalLanguage(art)
	if sig == nil {
		t.Fatal("Expected match for multi-word phrase")
	}
	if sig.Reason != "Sensational words detected: click here" {
		t.Errorf("Unexpected reason: %s", sig.Reason)
	}
}

func TestExcessiveCapitalization(t *testing.T) {
	h := testHeuristics()

	sig := h.ExcessiveCapitalization(model.NewArticleText("This is HUGE news for everyone", ""))
	if sig == nil {
		t.Fatal("Expected signal for 4-letter caps run")
	}
	if sig.Delta != -10 {
		t.Errorf("Expected delta -10, got %d", sig.Delta)
	}

	// Three uppercase letters are fine
	if h.ExcessiveCapitalization(model.NewArticleText("The BBC reported this", "")) != nil {
		t.Error("Expected no signal for 3-letter acronym")
	}

	// A run inside a mixed-case token still counts
	if h.ExcessiveCapitalization(model.NewArticleText("McDONALD opened a store", "")) == nil {
		t.Error("Expected signal for uppercase run inside token")
	}
}

func TestMissingAttribution(t *testing.T) {
	h := testHeuristics()

	sig := h.MissingAttribution(model.NewArticleText("Aliens landed. Everyone panicked. Nobody knows why.", ""))
	if sig == nil {
		t.Fatal("Expected advisory signal")
	}
	if !sig.Advisory {
		t.Error("Expected signal to be advisory")
	}
	if sig.Delta != 0 {
		t.Errorf("Advisory signal must not carry a delta, got %d", sig.Delta)
	}

	attributed := model.NewArticleText("According to officials, the road will reopen.", "")
	if h.MissingAttribution(attributed) != nil {
		t.Error("Expected no signal when an attribution marker is present")
	}
}

func TestHasUpperRun(t *testing.T) {
	cases := []struct {
		token string
		want  bool
	}{
		{"BREAKING", true},
		{"NEWS", true},
		{"BBC", false},
		{"breaking", false},
		{"NeWsFlAsH", false},
		{"U.S.A.", false},
	}
	for _, c := range cases {
		if got := hasUpperRun(c.token, 4); got != c.want {
			t.Errorf("hasUpperRun(%q, 4) = %v, want %v", c.token, got, c.want)
		}
	}
}
