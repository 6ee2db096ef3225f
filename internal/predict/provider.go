package predict

import (
	"context"

	"github.com/veridict/veridict/internal/model"
)

// Predictor scores text with a trained classifier. Implementations are
// loaded once at startup; a load failure is fatal there, while
// per-request failures are reported as errors and the caller treats the
// classifier signal as absent.
type Predictor interface {
	// Name returns the provider name
	Name() string

	// PredictProbability returns the probability in [0,1] that the
	// text is real news.
	PredictProbability(ctx context.Context, text string) (float64, error)
}

// Config holds classifier provider configuration
type Config struct {
	// Provider name: "remote", "openai", "local", ""
	Provider string

	// Endpoint is the inference service URL (remote provider)
	Endpoint string

	// APIKey authenticates against the provider, if required
	APIKey string

	// BaseURL overrides the provider's API base (openai provider)
	BaseURL string

	// Model is the model name (openai provider)
	Model string

	// ArtifactPath points at the persisted model weights (local provider)
	ArtifactPath string

	// Timeout bounds a single prediction call
	TimeoutSeconds int
}

// ConfigFromModel converts model.ClassifierConfig to predict.Config
func ConfigFromModel(mc model.ClassifierConfig) Config {
	return Config{
		Provider:       mc.Provider,
		Endpoint:       mc.Endpoint,
		APIKey:         mc.APIKey,
		BaseURL:        mc.BaseURL,
		Model:          mc.Model,
		ArtifactPath:   mc.ArtifactPath,
		TimeoutSeconds: int(mc.Timeout.Seconds()),
	}
}

func clampProbability(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
