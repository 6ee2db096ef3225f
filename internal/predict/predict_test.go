package predict

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestNewPredictor_Disabled(t *testing.T) {
	p, err := NewPredictor(Config{})
	if err != nil {
		t.Fatalf("Expected no error for empty provider, got %v", err)
	}
	if p != nil {
		t.Error("Expected nil predictor when disabled")
	}
}

func TestNewPredictor_Unknown(t *testing.T) {
	if _, err := NewPredictor(Config{Provider: "quantum"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestRemotePredictor_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Unexpected Authorization header: %s", auth)
		}

		var in struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("Decode request: %v", err)
		}
		if in.Text != "some article" {
			t.Errorf("Unexpected text: %q", in.Text)
		}

		_, _ = fmt.Fprint(w, `{"probability": 0.73}`)
	}))
	defer server.Close()

	p, err := NewRemotePredictor(Config{Provider: "remote", Endpoint: server.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	prob, err := p.PredictProbability(context.Background(), "some article")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if prob != 0.73 {
		t.Errorf("Expected 0.73, got %f", prob)
	}
}

func TestRemotePredictor_ClampsProbability(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"probability": 1.7}`)
	}))
	defer server.Close()

	p, _ := NewRemotePredictor(Config{Endpoint: server.URL})
	prob, err := p.PredictProbability(context.Background(), "text")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if prob != 1.0 {
		t.Errorf("Expected clamp to 1.0, got %f", prob)
	}
}

func TestRemotePredictor_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p, _ := NewRemotePredictor(Config{Endpoint: server.URL})
	if _, err := p.PredictProbability(context.Background(), "text"); err == nil {
		t.Error("Expected error for 503")
	}
}

func TestRemotePredictor_RequiresEndpoint(t *testing.T) {
	if _, err := NewRemotePredictor(Config{}); err == nil {
		t.Error("Expected error for missing endpoint")
	}
}

func TestLocalPredictor_LoadAndPredict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	art := `{"bias": -0.5, "weights": {"reuters": 2.0, "miracle": -3.0}}`
	if err := os.WriteFile(path, []byte(art), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := NewLocalPredictor(path)
	if err != nil {
		t.Fatalf("Expected artifact to load, got %v", err)
	}

	positive, err := p.PredictProbability(context.Background(), "Reuters confirmed the report.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	negative, err := p.PredictProbability(context.Background(), "A miracle cure was found!")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if positive <= 0.5 {
		t.Errorf("Expected positive-weight text above 0.5, got %f", positive)
	}
	if negative >= 0.5 {
		t.Errorf("Expected negative-weight text below 0.5, got %f", negative)
	}
}

func TestLocalPredictor_LoadFailures(t *testing.T) {
	if _, err := NewLocalPredictor(""); err == nil {
		t.Error("Expected error for empty path")
	}

	if _, err := NewLocalPredictor("/nonexistent/model.json"); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	_ = os.WriteFile(bad, []byte("not json"), 0644)
	if _, err := NewLocalPredictor(bad); err == nil {
		t.Error("Expected error for malformed artifact")
	}

	empty := filepath.Join(t.TempDir(), "empty.json")
	_ = os.WriteFile(empty, []byte(`{"bias": 0, "weights": {}}`), 0644)
	if _, err := NewLocalPredictor(empty); err == nil {
		t.Error("Expected error for artifact without weights")
	}
}

func TestParseProbability(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"0.85", 0.85, false},
		{" 0.3\n", 0.3, false},
		{"1", 1.0, false},
		{"Probability: 0.42", 0.42, false},
		{"definitely real", 0, true},
	}

	for _, c := range cases {
		got, err := parseProbability(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("parseProbability(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseProbability(%q): unexpected error %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseProbability(%q) = %f, want %f", c.in, got, c.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	tokens := tokenize(`"Breaking!" News, (official) report.`)
	want := []string{"breaking", "news", "official", "report"}
	if len(tokens) != len(want) {
		t.Fatalf("Expected %d tokens, got %v", len(want), tokens)
	}
	for i, w := range want {
		if tokens[i] != w {
			t.Errorf("Token %d: expected %q, got %q", i, w, tokens[i])
		}
	}
}
