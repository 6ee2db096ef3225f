package score

import (
	"testing"

	"github.com/veridict/veridict/internal/model"
)

func heuristicAggregator() *Aggregator {
	return NewAggregator(model.DefaultConfig().Profiles["heuristic"])
}

func TestAggregate_NeutralBase(t *testing.T) {
	agg := heuristicAggregator()

	result := agg.Aggregate(nil, false)
	if result.Score != 50 {
		t.Errorf("Expected neutral base 50 with no signals, got %d", result.Score)
	}
	if result.Band != model.BandUncertain {
		t.Errorf("Expected Suspicious band, got %s", result.Band)
	}
}

func TestAggregate_SumsDeltas(t *testing.T) {
	agg := heuristicAggregator()

	signals := []model.Signal{
		{Name: model.SignalLengthAdequate, Delta: 20, Reason: "sufficient"},
		{Name: model.SignalTrustedSource, Delta: 30, Reason: "trusted"},
	}

	result := agg.Aggregate(signals, false)
	if result.Score != 100 {
		t.Errorf("Expected 50+20+30=100, got %d", result.Score)
	}
	if result.Band != model.BandReal {
		t.Errorf("Expected Likely Real, got %s", result.Band)
	}
}

func TestAggregate_ShortTextOnly(t *testing.T) {
	agg := heuristicAggregator()

	signals := []model.Signal{
		{Name: model.SignalLengthShort, Delta: -20, Reason: "short"},
	}

	result := agg.Aggregate(signals, false)
	if result.Score != 30 {
		t.Errorf("Expected base-20=30, got %d", result.Score)
	}
}

func TestAggregate_ClampsToRange(t *testing.T) {
	agg := heuristicAggregator()

	low := agg.Aggregate([]model.Signal{
		{Delta: -20}, {Delta: -25}, {Delta: -10}, {Delta: -20},
	}, false)
	if low.Score != 0 {
		t.Errorf("Expected clamp to 0, got %d", low.Score)
	}

	high := agg.Aggregate([]model.Signal{
		{Delta: 20}, {Delta: 30}, {Delta: 30},
	}, false)
	if high.Score != 100 {
		t.Errorf("Expected clamp to 100, got %d", high.Score)
	}
}

func TestAggregate_ClassifierReplacesBase(t *testing.T) {
	agg := heuristicAggregator()

	signals := []model.Signal{
		{Name: model.SignalClassifier, Delta: 30, Base: true, Reason: "Model confidence: 30%"},
	}

	result := agg.Aggregate(signals, false)
	if result.Score != 30 {
		t.Errorf("Expected classifier base 30, got %d", result.Score)
	}
	if result.Band != model.BandFake {
		t.Errorf("Expected Likely Fake for score 30, got %s", result.Band)
	}
}

func TestAggregate_AdvisoryNeverMovesScore(t *testing.T) {
	agg := heuristicAggregator()

	signals := []model.Signal{
		{Name: model.SignalNoAttribution, Advisory: true, Reason: "no attribution"},
	}

	result := agg.Aggregate(signals, false)
	if result.Score != 50 {
		t.Errorf("Expected advisory signal to leave score at 50, got %d", result.Score)
	}
	if result.AdvisoryFlags != 1 {
		t.Errorf("Expected 1 advisory flag, got %d", result.AdvisoryFlags)
	}
}

func TestAggregate_BandEdgesClosedLowerBound(t *testing.T) {
	agg := heuristicAggregator()

	// Score exactly at a threshold maps to the higher band
	cases := []struct {
		delta int
		want  model.Band
	}{
		{20, model.BandReal},       // 50+20 = 70
		{19, model.BandUncertain},  // 69
		{-10, model.BandUncertain}, // 40
		{-11, model.BandFake},      // 39
	}

	for _, c := range cases {
		result := agg.Aggregate([]model.Signal{{Delta: c.delta}}, false)
		if result.Band != c.want {
			t.Errorf("Score %d: expected %s, got %s", 50+c.delta, c.want, result.Band)
		}
	}
}

func TestAggregate_CorroborationBandEdges(t *testing.T) {
	agg := NewAggregator(model.DefaultConfig().Profiles["corroboration"])

	atReal := agg.Aggregate([]model.Signal{{Delta: -5}}, false) // 45
	if atReal.Band != model.BandReal {
		t.Errorf("Expected Likely Real at 45, got %s", atReal.Band)
	}

	below := agg.Aggregate([]model.Signal{{Delta: -6}}, false) // 44
	if below.Band != model.BandUncertain {
		t.Errorf("Expected Suspicious at 44, got %s", below.Band)
	}

	floor := agg.Aggregate([]model.Signal{{Delta: -80}}, false) // clamped to 0
	if floor.Band != model.BandUncertain {
		t.Errorf("Expected Suspicious at clamped 0 with threshold 0, got %s", floor.Band)
	}
}

func TestAggregate_CorroborationSoftensOneBand(t *testing.T) {
	agg := heuristicAggregator()

	signals := []model.Signal{
		{Name: model.SignalClassifier, Delta: 30, Base: true},
	}

	harsh := agg.Aggregate(signals, false)
	if harsh.Band != model.BandFake {
		t.Fatalf("Precondition failed: expected Likely Fake, got %s", harsh.Band)
	}

	softened := agg.Aggregate(signals, true)
	if softened.Band != model.BandUncertain {
		t.Errorf("Expected downgrade to Suspicious, got %s", softened.Band)
	}
	if !softened.Softened {
		t.Error("Expected Softened to be recorded")
	}
	if softened.Band == model.BandReal {
		t.Error("Downgrade must never reach the most favorable band")
	}
}

func TestAggregate_SofteningOnlyAffectsHarshestBand(t *testing.T) {
	agg := heuristicAggregator()

	// Already Suspicious: override must not fire
	mid := agg.Aggregate(nil, true)
	if mid.Band != model.BandUncertain || mid.Softened {
		t.Errorf("Expected untouched Suspicious verdict, got %s (softened=%v)", mid.Band, mid.Softened)
	}

	// Already Real: override must not fire
	high := agg.Aggregate([]model.Signal{{Delta: 30}}, true)
	if high.Band != model.BandReal || high.Softened {
		t.Errorf("Expected untouched Likely Real verdict, got %s (softened=%v)", high.Band, high.Softened)
	}
}

func TestAggregate_MonotonicityUnderCorroboration(t *testing.T) {
	agg := NewAggregator(model.DefaultConfig().Profiles["corroboration"])

	base := []model.Signal{{Delta: -20}}
	without := agg.Aggregate(base, false)

	withCorr := append(append([]model.Signal{}, base...), model.Signal{
		Name:  model.SignalCorroborated,
		Delta: 10,
	})
	with := agg.Aggregate(withCorr, true)

	if with.Score < without.Score {
		t.Errorf("Corroboration decreased score: %d -> %d", without.Score, with.Score)
	}
	if with.Band < without.Band {
		t.Errorf("Corroboration moved verdict to a harsher band: %s -> %s", without.Band, with.Band)
	}
}

func TestDegraded(t *testing.T) {
	agg := heuristicAggregator()

	v := agg.Degraded()
	if v.Score != 55 {
		t.Errorf("Expected degraded score 55, got %d", v.Score)
	}
	if v.Band != model.BandUncertain {
		t.Errorf("Expected forced Suspicious band, got %s", v.Band)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	agg := heuristicAggregator()

	signals := []model.Signal{
		{Name: model.SignalLengthShort, Delta: -20, Reason: "short"},
		{Name: model.SignalSensational, Delta: -25, Reason: "sensational"},
	}

	first := agg.Aggregate(signals, false)
	second := agg.Aggregate(signals, false)
	if first != second {
		t.Errorf("Aggregation is not deterministic: %+v vs %+v", first, second)
	}
}
