package predict

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const openaiSystemPrompt = "You are a news credibility classifier. " +
	"Given an article, respond with only a single number between 0.0 and 1.0: " +
	"the probability that the article is genuine news reporting. No other text."

// openaiMaxInputChars bounds the article excerpt sent for scoring
const openaiMaxInputChars = 8000

var numberPattern = regexp.MustCompile(`[01](?:\.\d+)?`)

// OpenAIPredictor scores text through the OpenAI Chat Completions API
type OpenAIPredictor struct {
	client *openai.Client
	config Config
}

// NewOpenAIPredictor creates an OpenAI-backed predictor
func NewOpenAIPredictor(config Config) (*OpenAIPredictor, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIPredictor{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIPredictor) Name() string {
	return "openai"
}

// PredictProbability asks the model for a single probability and
// parses it out of the response.
func (p *OpenAIPredictor) PredictProbability(ctx context.Context, text string) (float64, error) {
	model := p.config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	if len(text) > openaiMaxInputChars {
		text = text[:openaiMaxInputChars]
	}

	timeout := time.Duration(p.config.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openaiSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens:   10,
		Temperature: 0,
	})
	if err != nil {
		return 0, fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("empty response from model")
	}

	return parseProbability(resp.Choices[0].Message.Content)
}

// parseProbability extracts a probability from model output, tolerating
// stray prose around the number.
func parseProbability(content string) (float64, error) {
	content = strings.TrimSpace(content)

	if p, err := strconv.ParseFloat(content, 64); err == nil {
		return clampProbability(p), nil
	}

	match := numberPattern.FindString(content)
	if match == "" {
		return 0, fmt.Errorf("no probability in model output: %q", content)
	}

	p, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, fmt.Errorf("parse probability %q: %w", match, err)
	}
	return clampProbability(p), nil
}
