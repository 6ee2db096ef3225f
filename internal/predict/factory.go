package predict

import (
	"fmt"
	"strings"
)

// NewPredictor creates a classifier provider based on configuration.
// An empty provider name disables the classifier (returns nil, nil).
func NewPredictor(config Config) (Predictor, error) {
	switch strings.ToLower(config.Provider) {
	case "remote":
		return NewRemotePredictor(config)

	case "openai":
		return NewOpenAIPredictor(config)

	case "local":
		return NewLocalPredictor(config.ArtifactPath)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown classifier provider: %s (supported: remote, openai, local)", config.Provider)
	}
}
