package model

import "time"

// Report is the complete analysis result for one request.
// All fields are request-local; nothing here is shared or persisted.
type Report struct {
	InputKind    InputKind `json:"input_kind"`
	SourceURL    string    `json:"source_url,omitempty"`
	SourceDomain string    `json:"source_domain,omitempty"`
	AnalyzedAt   time.Time `json:"analyzed_at"`
	Profile      string    `json:"profile"`
	WordCount    int       `json:"word_count"`

	Verdict VerdictScore `json:"verdict"`
	Signals []Signal     `json:"signals"`

	// Reasons is the rendered explanation: one line per fired signal in
	// extractor order, then the corroborating-articles block.
	Reasons []string `json:"reasons"`

	// Corroboration holds the trusted related articles that were shown,
	// already capped and in upstream relevance order.
	Corroboration []CorroborationResult `json:"corroboration,omitempty"`

	// Degraded is true when acquisition failed or yielded too little
	// text and the verdict was forced into the uncertain band.
	Degraded       bool   `json:"degraded,omitempty"`
	DegradedReason string `json:"degraded_reason,omitempty"`
}
