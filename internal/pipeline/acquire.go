package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/veridict/veridict/internal/cache"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/netutil"
)

// AcquisitionError marks inputs that yielded too little text to
// analyze. The pipeline maps it to the fixed degraded verdict rather
// than failing the request.
type AcquisitionError struct {
	URL string
	Err error
}

func (e *AcquisitionError) Error() string {
	if e.URL == "" {
		return "not enough article text"
	}
	return fmt.Sprintf("not enough article text from %s", e.URL)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

// Acquirer turns classified input into article text. Raw text passes
// through untouched; URLs go through cache, robots check, the primary
// fetcher and the paragraph fallback. Fetch failures degrade to empty
// text so the word-count floor decides the outcome.
type Acquirer struct {
	primary  TextFetcher
	fallback TextFetcher
	store    cache.Cache
	robots   *netutil.RobotsGate
	cfg      model.AcquireConfig
	log      *zap.Logger
}

// NewAcquirer creates an acquirer. store and robots may be nil.
func NewAcquirer(primary, fallback TextFetcher, store cache.Cache, robots *netutil.RobotsGate, cfg model.AcquireConfig, log *zap.Logger) *Acquirer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Acquirer{
		primary:  primary,
		fallback: fallback,
		store:    store,
		robots:   robots,
		cfg:      cfg,
		log:      log,
	}
}

// Acquire resolves the input to article text. On failure the returned
// ArticleText still carries the source domain so the report can name
// the site it could not read.
func (a *Acquirer) Acquire(ctx context.Context, input model.AnalysisInput) (model.ArticleText, error) {
	if input.Kind == model.InputText {
		art := model.NewArticleText(input.Raw, "")
		if art.WordCount < a.cfg.FloorWords {
			return art, &AcquisitionError{}
		}
		return art, nil
	}

	domain := model.DomainFromURL(input.Raw)

	if a.store != nil {
		if text, ok := a.store.Get(cache.Key(input.Raw)); ok {
			a.log.Debug("cache hit", zap.String("url", input.Raw))
			return model.NewArticleText(text, domain), nil
		}
	}

	var text string
	if a.robots != nil && !a.robots.Allowed(ctx, input.Raw) {
		a.log.Warn("robots.txt disallows fetch", zap.String("url", input.Raw))
	} else {
		text = a.fetchWithFallback(ctx, input.Raw)
	}

	art := model.NewArticleText(text, domain)
	if art.WordCount < a.cfg.FloorWords {
		return model.NewArticleText("", domain), &AcquisitionError{URL: input.Raw}
	}

	if a.store != nil {
		if err := a.store.Set(cache.Key(input.Raw), art.Content); err != nil {
			a.log.Warn("cache write failed", zap.String("url", input.Raw), zap.Error(err))
		}
	}

	return art, nil
}

// fetchWithFallback runs the primary fetcher and, when its yield is
// thin, the fallback. Whichever produced more words wins. Fetch errors
// degrade to empty text.
func (a *Acquirer) fetchWithFallback(ctx context.Context, rawURL string) string {
	primaryText, err := a.primary.FetchText(ctx, rawURL)
	if err != nil {
		a.log.Warn("primary fetch failed",
			zap.String("fetcher", a.primary.Name()),
			zap.String("url", rawURL),
			zap.Error(err))
		primaryText = ""
	}

	if model.CountWords(primaryText) >= a.cfg.FallbackMinWords || a.fallback == nil {
		return primaryText
	}

	fallbackText, err := a.fallback.FetchText(ctx, rawURL)
	if err != nil {
		a.log.Warn("fallback fetch failed",
			zap.String("fetcher", a.fallback.Name()),
			zap.String("url", rawURL),
			zap.Error(err))
		return primaryText
	}

	if model.CountWords(fallbackText) > model.CountWords(primaryText) {
		return fallbackText
	}
	return primaryText
}
