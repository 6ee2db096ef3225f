package pipeline

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/netutil"
)

// TextFetcher retrieves readable article text for a URL
type TextFetcher interface {
	// Name identifies the fetcher in logs
	Name() string

	// FetchText returns the extracted article text. An empty string with
	// a nil error means the page had no readable content.
	FetchText(ctx context.Context, rawURL string) (string, error)
}

// ReaderFetcher is the primary fetcher. It downloads the page and
// extracts readable text from the parsed HTML, preferring the article
// or main element when one exists.
type ReaderFetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
}

// NewReaderFetcher creates the primary fetcher from HTTP configuration
func NewReaderFetcher(cfg model.HTTPConfig) *ReaderFetcher {
	transport := &http.Transport{
		Proxy: netutil.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &ReaderFetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
	}
}

// Name returns the fetcher name
func (f *ReaderFetcher) Name() string {
	return "reader"
}

// FetchText downloads the URL and extracts readable text
func (f *ReaderFetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	return extractReadableText(doc), nil
}

// extractReadableText pulls article text from a parsed document. The
// article or main element wins when present; otherwise paragraph text
// from the whole document; otherwise all visible text.
func extractReadableText(doc *html.Node) string {
	root := doc
	if node := findElement(doc, "article"); node != nil {
		root = node
	} else if node := findElement(doc, "main"); node != nil {
		root = node
	}

	if text := joinParagraphs(root); text != "" {
		return text
	}
	return visibleText(root)
}

// findElement returns the first element with the given tag name
func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

// joinParagraphs collects the visible text of every p element under n
func joinParagraphs(n *html.Node) string {
	var parts []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			if text := strings.TrimSpace(visibleText(n)); text != "" {
				parts = append(parts, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.Join(parts, "\n")
}

// visibleText extracts text nodes, skipping non-content elements
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "aside", "header", "footer":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.TrimSpace(buf.String())
}
