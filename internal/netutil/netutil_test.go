package netutil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestNewProxyFunc_Defaults(t *testing.T) {
	fn := NewProxyFunc("", "", "")
	// With no explicit proxies the environment function is returned
	if fn == nil {
		t.Fatal("Expected a proxy function")
	}
}

func TestNewProxyFunc_ExplicitProxies(t *testing.T) {
	fn := NewProxyFunc("http://proxy:3128", "http://sproxy:3128", "internal.example.com")

	httpsReq, _ := http.NewRequest(http.MethodGet, "https://example.com/x", nil)
	u, err := fn(httpsReq)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if u == nil || u.Host != "sproxy:3128" {
		t.Errorf("Expected https proxy, got %v", u)
	}

	httpReq, _ := http.NewRequest(http.MethodGet, "http://example.com/x", nil)
	u, _ = fn(httpReq)
	if u == nil || u.Host != "proxy:3128" {
		t.Errorf("Expected http proxy, got %v", u)
	}
}

func TestNewProxyFunc_Bypass(t *testing.T) {
	fn := NewProxyFunc("http://proxy:3128", "", "example.com")

	for _, target := range []string{"http://example.com/x", "http://sub.example.com/x"} {
		req, _ := http.NewRequest(http.MethodGet, target, nil)
		u, err := fn(req)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if u != nil {
			t.Errorf("Expected bypass for %s, got proxy %v", target, u)
		}
	}
}

func TestRobotsGate_Allowed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	gate := NewRobotsGate("veridict-test", 5*time.Second)

	if !gate.Allowed(context.Background(), server.URL+"/news/story") {
		t.Error("Expected /news/story to be allowed")
	}
	if gate.Allowed(context.Background(), server.URL+"/private/page") {
		t.Error("Expected /private/page to be disallowed")
	}
}

func TestRobotsGate_FailsOpen(t *testing.T) {
	gate := NewRobotsGate("veridict-test", 500*time.Millisecond)

	// Unreachable host: robots fetch fails, analysis proceeds
	if !gate.Allowed(context.Background(), "http://127.0.0.1:1/article") {
		t.Error("Expected fail-open when robots.txt is unreachable")
	}
}

func TestRobotsGate_CachesPerHost(t *testing.T) {
	var hits int
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = fmt.Fprint(w, "User-agent: *\nAllow: /\n")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	gate := NewRobotsGate("veridict-test", 5*time.Second)
	gate.Allowed(context.Background(), server.URL+"/a")
	gate.Allowed(context.Background(), server.URL+"/b")

	if hits != 1 {
		t.Errorf("Expected robots.txt fetched once, got %d", hits)
	}

	parsed, _ := url.Parse(server.URL)
	gate.mu.RLock()
	_, cached := gate.cache[parsed.Host]
	gate.mu.RUnlock()
	if !cached {
		t.Error("Expected robots data cached for host")
	}
}
