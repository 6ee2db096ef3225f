package model

import (
	"errors"
	"net/url"
	"strings"
)

// ErrEmptyInput is returned when the caller submits blank input.
// It is a validation error; the pipeline never runs for it.
var ErrEmptyInput = errors.New("input is empty")

// InputKind distinguishes raw article text from a URL to fetch
type InputKind string

const (
	InputText InputKind = "text"
	InputURL  InputKind = "url"
)

// AnalysisInput is the classified request input. Immutable once built.
type AnalysisInput struct {
	Raw  string    `json:"raw"`
	Kind InputKind `json:"kind"`
}

// ClassifyInput decides whether the input is a URL or raw text.
// The check is a case-sensitive "http" prefix match; everything else
// is treated as article text. Blank input returns ErrEmptyInput.
func ClassifyInput(raw string) (AnalysisInput, error) {
	if strings.TrimSpace(raw) == "" {
		return AnalysisInput{}, ErrEmptyInput
	}

	kind := InputText
	if strings.HasPrefix(raw, "http") {
		kind = InputURL
	}

	return AnalysisInput{Raw: raw, Kind: kind}, nil
}

// DomainFromURL extracts the lower-cased host from a raw URL.
// Returns "" if the URL cannot be parsed. The port, if any, is stripped
// so trusted-source matching sees a bare domain.
func DomainFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	return strings.ToLower(parsed.Hostname())
}
