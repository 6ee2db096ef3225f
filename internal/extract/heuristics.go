package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/veridict/veridict/internal/model"
)

// Heuristics holds the compiled text-heuristic extractors. Built once
// at startup from immutable configuration; safe for concurrent use.
type Heuristics struct {
	cfg     model.HeuristicsConfig
	deltas  model.SignalDeltas
	lexicon []lexiconEntry
}

type lexiconEntry struct {
	phrase  string
	pattern *regexp.Regexp
}

// NewHeuristics compiles the sensational lexicon into whole-word
// patterns. Lexicon order is preserved so matched-phrase listings are
// deterministic.
func NewHeuristics(cfg model.HeuristicsConfig, deltas model.SignalDeltas) *Heuristics {
	h := &Heuristics{cfg: cfg, deltas: deltas}
	for _, phrase := range cfg.SensationalLexicon {
		phrase = strings.ToLower(strings.TrimSpace(phrase))
		if phrase == "" {
			continue
		}
		h.lexicon = append(h.lexicon, lexiconEntry{
			phrase:  phrase,
			pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(phrase) + `\b`),
		})
	}
	return h
}

// LengthAdequacy fires when the article is comfortably long
func (h *Heuristics) LengthAdequacy(art model.ArticleText) *model.Signal {
	if art.WordCount <= h.cfg.LongWords {
		return nil
	}
	return &model.Signal{
		Name:   model.SignalLengthAdequate,
		Delta:  h.deltas.LengthBonus,
		Reason: "Article has sufficient length.",
	}
}

// LengthDeficiency fires when the article is very short
func (h *Heuristics) LengthDeficiency(art model.ArticleText) *model.Signal {
	if art.WordCount >= h.cfg.ShortWords {
		return nil
	}
	return &model.Signal{
		Name:   model.SignalLengthShort,
		Delta:  -h.deltas.ShortPenalty,
		Reason: "Article is very short.",
	}
}

// SensationalLanguage fires when any lexicon phrase appears in the
// lower-cased text. One flat penalty regardless of hit count; every
// matched phrase is listed in the reason.
func (h *Heuristics) SensationalLanguage(art model.ArticleText) *model.Signal {
	lower := strings.ToLower(art.Content)

	var hits []string
	for _, entry := range h.lexicon {
		if entry.pattern.MatchString(lower) {
			hits = append(hits, entry.phrase)
		}
	}
	if len(hits) == 0 {
		return nil
	}

	return &model.Signal{
		Name:   model.SignalSensational,
		Delta:  -h.deltas.SensationalPenalty,
		Reason: fmt.Sprintf("Sensational words detected: %s", strings.Join(hits, ", ")),
	}
}

// ExcessiveCapitalization fires when some token contains a run of
// consecutive uppercase letters at least cfg.CapsRun long.
func (h *Heuristics) ExcessiveCapitalization(art model.ArticleText) *model.Signal {
	for _, token := range strings.Fields(art.Content) {
		if hasUpperRun(token, h.cfg.CapsRun) {
			return &model.Signal{
				Name:   model.SignalExcessiveCaps,
				Delta:  -h.deltas.CapsPenalty,
				Reason: "Excessive capitalization detected.",
			}
		}
	}
	return nil
}

// MissingAttribution is advisory: it fires when none of the
// journalistic attribution markers appear, contributing a reason line
// and a flag but no score delta.
func (h *Heuristics) MissingAttribution(art model.ArticleText) *model.Signal {
	lower := strings.ToLower(art.Content)
	for _, marker := range h.cfg.AttributionMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return nil
		}
	}
	return &model.Signal{
		Name:     model.SignalNoAttribution,
		Advisory: true,
		Reason:   "Article lacks formal journalistic attribution.",
	}
}

func hasUpperRun(token string, minRun int) bool {
	if minRun <= 0 {
		return false
	}
	run := 0
	for _, r := range token {
		if unicode.IsUpper(r) {
			run++
			if run >= minRun {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}
