package model

import "strings"

// ArticleText is the acquired article body plus source metadata.
// WordCount is derived from Content at construction time; use
// NewArticleText so the two never drift apart.
type ArticleText struct {
	Content      string `json:"content"`
	WordCount    int    `json:"word_count"`
	SourceDomain string `json:"source_domain,omitempty"`
}

// NewArticleText builds an ArticleText with the word count computed
func NewArticleText(content, sourceDomain string) ArticleText {
	return ArticleText{
		Content:      content,
		WordCount:    CountWords(content),
		SourceDomain: sourceDomain,
	}
}

// CountWords counts whitespace-separated tokens
func CountWords(s string) int {
	return len(strings.Fields(s))
}
