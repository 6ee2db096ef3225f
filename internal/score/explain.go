package score

import (
	"fmt"

	"github.com/veridict/veridict/internal/model"
)

// Explain renders the reason list for a verdict. Signals are rendered
// in the order given, which is the fixed extractor evaluation order --
// never re-sorted. Every fired signal contributes exactly one line.
// Corroborating articles, if any, are appended as a trailing block
// capped at displayCap, in the upstream relevance order.
func Explain(signals []model.Signal, corroboration []model.CorroborationResult, displayCap int) []string {
	reasons := make([]string, 0, len(signals)+len(corroboration))

	for _, s := range signals {
		if s.Reason != "" {
			reasons = append(reasons, s.Reason)
		}
	}

	if displayCap > 0 && len(corroboration) > displayCap {
		corroboration = corroboration[:displayCap]
	}
	for _, c := range corroboration {
		reasons = append(reasons, fmt.Sprintf("Related coverage: %s (%s)", c.Title, c.URL))
	}

	return reasons
}
