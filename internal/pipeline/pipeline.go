package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/veridict/veridict/internal/cache"
	"github.com/veridict/veridict/internal/corroborate"
	"github.com/veridict/veridict/internal/extract"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/netutil"
	"github.com/veridict/veridict/internal/predict"
	"github.com/veridict/veridict/internal/score"
	"github.com/veridict/veridict/internal/trust"
)

// searcher is the corroboration lookup the pipeline depends on
type searcher interface {
	Enabled() bool
	Search(ctx context.Context, query string) ([]model.CorroborationResult, error)
}

// Pipeline orchestrates the complete analysis: classify the input,
// acquire text, run the signal extractors in a fixed order, aggregate
// and explain. One pipeline serves one scoring profile; safe for
// concurrent use.
type Pipeline struct {
	cfg         *model.Config
	profileName string
	profile     model.ScoringProfile
	log         *zap.Logger

	acquirer  *Acquirer
	heur      *extract.Heuristics
	trusted   *trust.SourceSet
	agg       *score.Aggregator
	predictor predict.Predictor
	search    searcher
}

// NewPipeline creates a pipeline for the configuration's active
// profile. A classifier the profile requires but cannot be built is a
// construction error, not a per-request one.
func NewPipeline(cfg *model.Config, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	profile, err := cfg.ActiveProfile()
	if err != nil {
		return nil, err
	}

	store, err := cache.NewFromConfig(cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("configure cache: %w", err)
	}

	var robots *netutil.RobotsGate
	if cfg.HTTP.RespectRobots {
		robots = netutil.NewRobotsGate(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}

	var predictor predict.Predictor
	if profile.UseClassifier {
		predictor, err = predict.NewPredictor(predict.ConfigFromModel(cfg.Classifier))
		if err != nil {
			return nil, fmt.Errorf("configure classifier: %w", err)
		}
		if predictor == nil {
			return nil, fmt.Errorf("profile %q requires a classifier provider", cfg.Profile)
		}
	}

	var search searcher
	if profile.UseCorroboration {
		search = corroborate.NewClient(cfg.Corroboration.Endpoint, cfg.Corroboration.Timeout, cfg.HTTP.UserAgent)
	}

	return &Pipeline{
		cfg:         cfg,
		profileName: cfg.Profile,
		profile:     profile,
		log:         logger,
		acquirer: NewAcquirer(
			NewReaderFetcher(cfg.HTTP),
			NewParagraphScraper(cfg.HTTP),
			store, robots, cfg.Acquire, logger),
		heur:      extract.NewHeuristics(cfg.Heuristics, profile.Deltas),
		trusted:   trust.NewSourceSet(cfg.Trust.Sources),
		agg:       score.NewAggregator(profile),
		predictor: predictor,
		search:    search,
	}, nil
}

// ProfileName returns the scoring profile this pipeline runs
func (p *Pipeline) ProfileName() string {
	return p.profileName
}

// Analyze runs the full analysis for one raw input. Blank input
// returns model.ErrEmptyInput; an input that yields too little text
// produces the fixed degraded report, not an error.
func (p *Pipeline) Analyze(ctx context.Context, raw string) (*model.Report, error) {
	input, err := model.ClassifyInput(raw)
	if err != nil {
		return nil, err
	}

	report := &model.Report{
		InputKind:  input.Kind,
		AnalyzedAt: time.Now().UTC(),
		Profile:    p.profileName,
	}
	if input.Kind == model.InputURL {
		report.SourceURL = input.Raw
	}

	art, err := p.acquirer.Acquire(ctx, input)
	report.SourceDomain = art.SourceDomain
	report.WordCount = art.WordCount

	var acqErr *AcquisitionError
	if errors.As(err, &acqErr) {
		p.log.Info("analysis degraded",
			zap.String("url", acqErr.URL),
			zap.Int("words", art.WordCount))
		report.Degraded = true
		report.DegradedReason = score.InsufficientTextReason
		report.Verdict = p.agg.Degraded()
		report.Reasons = []string{score.InsufficientTextReason}
		return report, nil
	}
	if err != nil {
		return nil, err
	}

	signals, corroboration := p.collectSignals(ctx, art)

	report.Verdict = p.agg.Aggregate(signals, len(corroboration) > 0)
	report.Signals = signals
	report.Corroboration = corroborate.Cap(corroboration, p.cfg.Corroboration.DisplayCap)
	report.Reasons = score.Explain(signals, corroboration, p.cfg.Corroboration.DisplayCap)

	return report, nil
}

// collectSignals runs every extractor in the fixed evaluation order.
// Extractors never see each other's output; an extractor that does not
// fire contributes nothing.
func (p *Pipeline) collectSignals(ctx context.Context, art model.ArticleText) ([]model.Signal, []model.CorroborationResult) {
	var signals []model.Signal
	add := func(s *model.Signal) {
		if s != nil {
			signals = append(signals, *s)
		}
	}

	add(p.heur.LengthAdequacy(art))
	add(p.heur.LengthDeficiency(art))
	add(p.heur.SensationalLanguage(art))
	add(p.heur.ExcessiveCapitalization(art))
	add(p.heur.MissingAttribution(art))
	add(p.sourceTrust(art))
	add(p.classifierSignal(ctx, art))

	corrSignal, trusted := p.corroborationSignal(ctx, art)
	add(corrSignal)

	return signals, trusted
}

// sourceTrust fires the trust bonus on a matched domain, or the
// unknown-source penalty when the profile asks for it. Text input has
// no domain and produces neither.
func (p *Pipeline) sourceTrust(art model.ArticleText) *model.Signal {
	if art.SourceDomain == "" {
		return nil
	}

	if entry, ok := p.trusted.Match(art.SourceDomain); ok {
		return &model.Signal{
			Name:   model.SignalTrustedSource,
			Delta:  p.profile.Deltas.TrustBonus,
			Reason: fmt.Sprintf("Trusted news source detected (%s).", entry),
		}
	}

	if !p.profile.PenalizeUnknownSource {
		return nil
	}
	return &model.Signal{
		Name:   model.SignalUnknownSource,
		Delta:  -p.profile.Deltas.UnknownSourcePenalty,
		Reason: "Source is not on the trusted outlet list.",
	}
}

// classifierSignal asks the predictor for a probability and converts
// it into the base signal. A failed prediction only drops the signal.
func (p *Pipeline) classifierSignal(ctx context.Context, art model.ArticleText) *model.Signal {
	if !p.profile.UseClassifier || p.predictor == nil {
		return nil
	}

	prob, err := p.predictor.PredictProbability(ctx, art.Content)
	if err != nil {
		p.log.Warn("classifier unavailable",
			zap.String("provider", p.predictor.Name()),
			zap.Error(err))
		return nil
	}

	return &model.Signal{
		Name:   model.SignalClassifier,
		Delta:  int(math.Round(prob * 100)),
		Base:   true,
		Reason: fmt.Sprintf("Classifier probability of being real: %.2f.", prob),
	}
}

// corroborationSignal searches for related coverage and returns the
// presence or absence signal plus the trusted results. A failed search
// fires neither, as does coverage from untrusted outlets only.
func (p *Pipeline) corroborationSignal(ctx context.Context, art model.ArticleText) (*model.Signal, []model.CorroborationResult) {
	if !p.profile.UseCorroboration || p.search == nil || !p.search.Enabled() {
		return nil, nil
	}

	results, err := p.search.Search(ctx, art.Content)
	if err != nil {
		p.log.Warn("corroboration search failed", zap.Error(err))
		return nil, nil
	}

	trusted := corroborate.FilterTrusted(results, p.trusted)
	if len(trusted) > 0 {
		return &model.Signal{
			Name:   model.SignalCorroborated,
			Delta:  p.profile.Deltas.CorroborationBonus,
			Reason: fmt.Sprintf("Corroborating coverage found from %d trusted outlet article(s).", len(trusted)),
		}, trusted
	}

	if len(results) == 0 {
		return &model.Signal{
			Name:   model.SignalUncorroborated,
			Delta:  -p.profile.Deltas.NoCorroborationPenalty,
			Reason: "No corroborating coverage found.",
		}, nil
	}

	return nil, nil
}
