package model

import (
	"fmt"
	"time"
)

// Config holds all static configuration, loaded once at process start.
// Request handling only ever reads it.
type Config struct {
	// Profile selects the active scoring profile by name
	Profile string `yaml:"profile"`

	HTTP          HTTPConfig          `yaml:"http"`
	Acquire       AcquireConfig       `yaml:"acquire"`
	Heuristics    HeuristicsConfig    `yaml:"heuristics"`
	Trust         TrustConfig         `yaml:"trust"`
	Corroboration CorroborationConfig `yaml:"corroboration"`
	Classifier    ClassifierConfig    `yaml:"classifier"`
	Cache         CacheConfig         `yaml:"cache"`
	RateLimiting  RateLimitConfig     `yaml:"rate_limiting"`
	Concurrency   ConcurrencyConfig   `yaml:"concurrency"`
	Output        OutputConfig        `yaml:"output"`
	Logging       LoggingConfig       `yaml:"logging"`
	Server        ServerConfig        `yaml:"server"`

	// Profiles are the scoring presets. Variants of the analyzer differ
	// only by preset, never by forked code paths.
	Profiles map[string]ScoringProfile `yaml:"profiles"`
}

// HTTPConfig controls outbound HTTP behavior for both fetchers
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls"`
	HTTPProxy     string        `yaml:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy"`
	RespectRobots bool          `yaml:"respect_robots"`
}

// AcquireConfig controls the fetch-with-fallback acquisition stage
type AcquireConfig struct {
	// FallbackMinWords: below this yield the secondary fetcher is tried
	FallbackMinWords int `yaml:"fallback_min_words"`

	// FloorWords: below this the request degrades to the fixed
	// insufficient-text verdict. One floor for the whole pipeline, not
	// per-extractor.
	FloorWords int `yaml:"floor_words"`
}

// HeuristicsConfig holds the text-heuristic thresholds and word lists
type HeuristicsConfig struct {
	LongWords          int      `yaml:"long_words"`
	ShortWords         int      `yaml:"short_words"`
	CapsRun            int      `yaml:"caps_run"`
	AttributionMarkers []string `yaml:"attribution_markers"`
	SensationalLexicon []string `yaml:"sensational_lexicon"`
}

// TrustConfig holds the trusted-source identifiers
type TrustConfig struct {
	Sources []string `yaml:"sources"`
}

// CorroborationConfig controls the external corroboration search
type CorroborationConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`

	// DisplayCap bounds the trailing corroborating-articles block
	DisplayCap int `yaml:"display_cap"`
}

// ClassifierConfig selects and configures the probability classifier
type ClassifierConfig struct {
	// Provider: "remote", "openai", "local" or "" (disabled)
	Provider     string        `yaml:"provider"`
	Endpoint     string        `yaml:"endpoint"`
	APIKey       string        `yaml:"api_key"`
	BaseURL      string        `yaml:"base_url"`
	Model        string        `yaml:"model"`
	ArtifactPath string        `yaml:"artifact_path"`
	Timeout      time.Duration `yaml:"timeout"`
}

// CacheConfig controls caching of fetched article text
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Backend string        `yaml:"backend"` // "memory" or "disk"
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// RateLimitConfig controls per-domain pacing in batch mode
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// ConcurrencyConfig controls batch worker counts
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// ServerConfig controls the JSON API server
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
	Debug        bool          `yaml:"debug"`
}

// LoggingConfig controls the structured logger
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// SignalDeltas are the per-extractor contributions on the 0-100 scale.
// All values are magnitudes; the extractor decides the sign.
type SignalDeltas struct {
	LengthBonus            int `yaml:"length_bonus"`
	ShortPenalty           int `yaml:"short_penalty"`
	SensationalPenalty     int `yaml:"sensational_penalty"`
	CapsPenalty            int `yaml:"caps_penalty"`
	TrustBonus             int `yaml:"trust_bonus"`
	UnknownSourcePenalty   int `yaml:"unknown_source_penalty"`
	CorroborationBonus     int `yaml:"corroboration_bonus"`
	NoCorroborationPenalty int `yaml:"no_corroboration_penalty"`
}

// ScoringProfile is one scoring preset: which signal families run and
// how the aggregate maps to verdict bands.
type ScoringProfile struct {
	// RealThreshold: score >= this maps to Likely Real
	RealThreshold int `yaml:"real_threshold"`

	// UncertainThreshold: score >= this (and below RealThreshold) maps
	// to Suspicious; anything lower is Likely Fake.
	UncertainThreshold int `yaml:"uncertain_threshold"`

	// InsufficientTextScore is the fixed score of the degraded verdict
	InsufficientTextScore int `yaml:"insufficient_text_score"`

	UseClassifier         bool `yaml:"use_classifier"`
	UseCorroboration      bool `yaml:"use_corroboration"`
	PenalizeUnknownSource bool `yaml:"penalize_unknown_source"`

	Deltas SignalDeltas `yaml:"deltas"`
}

// ActiveProfile resolves the configured profile name
func (c *Config) ActiveProfile() (ScoringProfile, error) {
	p, ok := c.Profiles[c.Profile]
	if !ok {
		return ScoringProfile{}, fmt.Errorf("unknown scoring profile: %q", c.Profile)
	}
	return p, nil
}

func defaultDeltas() SignalDeltas {
	return SignalDeltas{
		LengthBonus:            20,
		ShortPenalty:           20,
		SensationalPenalty:     25,
		CapsPenalty:            10,
		TrustBonus:             30,
		UnknownSourcePenalty:   20,
		CorroborationBonus:     10,
		NoCorroborationPenalty: 15,
	}
}

// DefaultConfig returns the built-in defaults. Flags, environment and
// the config file overlay on top of this.
func DefaultConfig() *Config {
	return &Config{
		Profile: "heuristic",
		HTTP: HTTPConfig{
			Timeout:      10 * time.Second,
			UserAgent:    "Veridict/0.1 (+https://github.com/veridict/veridict)",
			MaxBodyBytes: 2_000_000,
		},
		Acquire: AcquireConfig{
			FallbackMinWords: 50,
			FloorWords:       8,
		},
		Heuristics: HeuristicsConfig{
			LongWords:  300,
			ShortWords: 80,
			CapsRun:    4,
			AttributionMarkers: []string{
				"said", "reported", "according to", "stated",
			},
			SensationalLexicon: []string{
				"guaranteed", "shocking", "breaking", "exposed",
				"unbelievable", "secret", "viral", "click here",
			},
		},
		Trust: TrustConfig{
			Sources: []string{
				"ndtv.com", "bbc.com", "reuters.com", "thehindu.com",
				"cnn.com", "timesofindia.indiatimes.com", "hindustantimes.com",
			},
		},
		Corroboration: CorroborationConfig{
			Timeout:    8 * time.Second,
			DisplayCap: 5,
		},
		Classifier: ClassifierConfig{
			Model:   "gpt-4o-mini",
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			Backend: "memory",
			TTL:     15 * time.Minute,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Profiles: map[string]ScoringProfile{
			"heuristic": {
				RealThreshold:         70,
				UncertainThreshold:    40,
				InsufficientTextScore: 55,
				Deltas:                defaultDeltas(),
			},
			"ml": {
				RealThreshold:         70,
				UncertainThreshold:    40,
				InsufficientTextScore: 55,
				UseClassifier:         true,
				PenalizeUnknownSource: true,
				Deltas:                defaultDeltas(),
			},
			"corroboration": {
				RealThreshold:         45,
				UncertainThreshold:    0,
				InsufficientTextScore: 55,
				UseCorroboration:      true,
				Deltas:                defaultDeltas(),
			},
		},
	}
}
