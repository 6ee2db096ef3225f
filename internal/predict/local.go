package predict

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"unicode"
)

// artifact is the persisted model format: a bias term plus per-token
// log-likelihood weights, applied through a sigmoid.
type artifact struct {
	Bias    float64            `json:"bias"`
	Weights map[string]float64 `json:"weights"`
}

// LocalPredictor scores text with weights loaded from a model artifact
// on disk. Loading happens once at startup; a missing or malformed
// artifact is a fatal startup error, never a per-request one.
type LocalPredictor struct {
	bias    float64
	weights map[string]float64
}

// NewLocalPredictor loads the model artifact from path
func NewLocalPredictor(path string) (*LocalPredictor, error) {
	if path == "" {
		return nil, fmt.Errorf("local classifier requires an artifact path")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var art artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}
	if len(art.Weights) == 0 {
		return nil, fmt.Errorf("model artifact has no weights: %s", path)
	}

	return &LocalPredictor{
		bias:    art.Bias,
		weights: art.Weights,
	}, nil
}

// Name returns the provider name
func (p *LocalPredictor) Name() string {
	return "local"
}

// PredictProbability sums token weights and squashes through a sigmoid
func (p *LocalPredictor) PredictProbability(_ context.Context, text string) (float64, error) {
	sum := p.bias
	for _, token := range tokenize(text) {
		sum += p.weights[token]
	}
	return 1 / (1 + math.Exp(-sum)), nil
}

// tokenize lower-cases and strips surrounding punctuation, matching
// how the artifact's vocabulary was built.
func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
