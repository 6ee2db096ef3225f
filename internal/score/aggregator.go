package score

import (
	"github.com/veridict/veridict/internal/model"
)

// InsufficientTextReason is the single reason line of a degraded verdict
const InsufficientTextReason = "Could not extract enough article text to analyze."

// Aggregator combines signal contributions into one bounded score and
// maps it to a verdict band. Stateless apart from the profile preset.
type Aggregator struct {
	profile model.ScoringProfile
}

// NewAggregator creates an aggregator for the given scoring profile
func NewAggregator(profile model.ScoringProfile) *Aggregator {
	return &Aggregator{profile: profile}
}

// Aggregate sums the signal deltas onto the base score, clamps into
// [0,100] and maps to a band. A base signal (classifier probability)
// replaces the neutral base of 50 instead of stacking on it.
//
// trustedCorroboration enables the override rule: if the raw mapping
// lands in the harshest band and at least one trusted corroborating
// article exists, the verdict is downgraded exactly one band. The rule
// fires at most once and never reaches the most favorable band.
func (a *Aggregator) Aggregate(signals []model.Signal, trustedCorroboration bool) model.VerdictScore {
	base := 50
	advisory := 0

	for _, s := range signals {
		if s.Base {
			base = s.Delta
		}
		if s.Advisory {
			advisory++
		}
	}

	total := base
	for _, s := range signals {
		if s.Base || s.Advisory {
			continue
		}
		total += s.Delta
	}

	total = clamp(total, 0, 100)
	band := a.mapBand(total)

	softened := false
	if band == model.BandFake && trustedCorroboration {
		band = model.BandUncertain
		softened = true
	}

	return model.VerdictScore{
		Score:         total,
		Band:          band,
		Softened:      softened,
		AdvisoryFlags: advisory,
	}
}

// Degraded returns the fixed verdict used when acquisition failed or
// yielded too little text. No extractor ran; the score sits in the
// low-middle of the uncertain band.
func (a *Aggregator) Degraded() model.VerdictScore {
	return model.VerdictScore{
		Score: a.profile.InsufficientTextScore,
		Band:  model.BandUncertain,
	}
}

// mapBand maps a clamped score to a band, largest threshold first.
// Lower bounds are closed: a score exactly at a threshold maps to the
// higher band.
func (a *Aggregator) mapBand(score int) model.Band {
	switch {
	case score >= a.profile.RealThreshold:
		return model.BandReal
	case score >= a.profile.UncertainThreshold:
		return model.BandUncertain
	default:
		return model.BandFake
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
