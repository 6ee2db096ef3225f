package corroborate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/trust"
)

const (
	queryMaxWords = 20
	queryMaxChars = 300
)

// Client queries an external corroboration index for related articles.
// Failures degrade to an empty result set at this boundary; callers
// treat the corroboration signal as absent.
type Client struct {
	endpoint   string
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a search client. An empty endpoint disables search.
func NewClient(endpoint string, timeout time.Duration, userAgent string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// Enabled reports whether an endpoint is configured
func (c *Client) Enabled() bool {
	return c.endpoint != ""
}

type searchItem struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
}

// Search queries the index with a truncated query and returns
// candidates in the upstream relevance order.
func (c *Client) Search(ctx context.Context, query string) ([]model.CorroborationResult, error) {
	if !c.Enabled() {
		return nil, nil
	}

	query = TruncateQuery(query)

	reqURL := fmt.Sprintf("%s?q=%s", c.endpoint, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	var items []searchItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results := make([]model.CorroborationResult, 0, len(items))
	for _, it := range items {
		if it.Title == "" && it.URL == "" {
			continue
		}
		results = append(results, model.CorroborationResult{
			Title:  it.Title,
			URL:    it.URL,
			Source: it.Source,
		})
	}

	return results, nil
}

// TruncateQuery bounds a query to its first 20 words and 300 bytes.
// Upstream indexes enforce varying length limits; truncating here keeps
// the request well inside all of them. The byte cut backs off to a rune
// boundary so the query stays valid UTF-8.
func TruncateQuery(query string) string {
	words := strings.Fields(query)
	if len(words) > queryMaxWords {
		words = words[:queryMaxWords]
	}
	query = strings.Join(words, " ")

	if len(query) > queryMaxChars {
		cut := queryMaxChars
		for cut > 0 && !utf8.RuneStart(query[cut]) {
			cut--
		}
		query = query[:cut]
	}

	return query
}

// FilterTrusted keeps only results from trusted outlets, preserving the
// upstream order.
func FilterTrusted(results []model.CorroborationResult, trusted *trust.SourceSet) []model.CorroborationResult {
	var kept []model.CorroborationResult
	for _, r := range results {
		if trusted.MatchResult(r) {
			kept = append(kept, r)
		}
	}
	return kept
}

// Cap truncates results to at most n without re-sorting
func Cap(results []model.CorroborationResult, n int) []model.CorroborationResult {
	if n > 0 && len(results) > n {
		return results[:n]
	}
	return results
}
