package model

import (
	"encoding/json"
	"fmt"
)

// SignalName identifies which extractor produced a signal
type SignalName string

const (
	SignalLengthAdequate SignalName = "length_adequate"
	SignalLengthShort    SignalName = "length_short"
	SignalSensational    SignalName = "sensational_language"
	SignalExcessiveCaps  SignalName = "excessive_capitalization"
	SignalNoAttribution  SignalName = "missing_attribution"
	SignalTrustedSource  SignalName = "trusted_source"
	SignalUnknownSource  SignalName = "unknown_source"
	SignalClassifier     SignalName = "classifier_probability"
	SignalCorroborated   SignalName = "corroboration_present"
	SignalUncorroborated SignalName = "corroboration_absent"
)

// Signal is one bounded, named contribution to the credibility score
// together with its human-readable justification. Exactly one extractor
// produces each signal; extractors never see each other's output.
type Signal struct {
	Name SignalName `json:"name"`

	// Delta is the contribution on the canonical 0-100 scale. For a
	// base signal it is the absolute base value, not an increment.
	Delta int `json:"delta"`

	// Base marks a signal whose value replaces the neutral base score
	// instead of stacking on it (classifier probability).
	Base bool `json:"base,omitempty"`

	// Advisory marks a signal that contributes a reason line and a
	// flag count but never moves the score (missing attribution).
	Advisory bool `json:"advisory,omitempty"`

	Reason string `json:"reason"`
}

// CorroborationResult is one related-article candidate returned by the
// external search index. Order is the upstream relevance order.
type CorroborationResult struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
}

// Band is a verdict band. Bands are ordered: a lower value is a
// harsher verdict.
type Band int

const (
	BandFake Band = iota
	BandUncertain
	BandReal
)

func (b Band) String() string {
	switch b {
	case BandReal:
		return "Likely Real"
	case BandUncertain:
		return "Suspicious"
	default:
		return "Likely Fake"
	}
}

// MarshalJSON renders the band as its label
func (b Band) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON parses a band label back into a Band
func (b *Band) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	switch label {
	case "Likely Real":
		*b = BandReal
	case "Suspicious":
		*b = BandUncertain
	case "Likely Fake":
		*b = BandFake
	default:
		return fmt.Errorf("unknown verdict band: %q", label)
	}
	return nil
}

// VerdictScore is the aggregated credibility verdict
type VerdictScore struct {
	// Score is the clamped aggregate on the 0-100 scale
	Score int `json:"score"`

	Band Band `json:"band"`

	// Softened is true when the corroboration override downgraded the
	// harshest band by exactly one step.
	Softened bool `json:"softened,omitempty"`

	// AdvisoryFlags counts advisory signals that fired (the rule-based
	// variant's fake-tally). Never part of the numeric score.
	AdvisoryFlags int `json:"advisory_flags,omitempty"`
}
