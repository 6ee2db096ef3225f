package trust

import (
	"strings"

	"github.com/veridict/veridict/internal/model"
)

// SourceSet is an immutable set of known-reliable domain identifiers,
// built once at startup. Membership is a substring match: a domain is
// trusted if any trusted entry occurs within it, so "news.bbc.com"
// matches the entry "bbc.com". Concurrent reads need no locking.
type SourceSet struct {
	entries []string
}

// NewSourceSet builds a SourceSet from configured identifiers.
// Entries are lower-cased and blank entries dropped.
func NewSourceSet(entries []string) *SourceSet {
	set := &SourceSet{entries: make([]string, 0, len(entries))}
	for _, e := range entries {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			set.entries = append(set.entries, e)
		}
	}
	return set
}

// Match reports whether the domain is trusted and returns the first
// matching entry. The domain is lower-cased before matching.
func (s *SourceSet) Match(domain string) (string, bool) {
	if domain == "" {
		return "", false
	}
	domain = strings.ToLower(domain)
	for _, entry := range s.entries {
		if strings.Contains(domain, entry) {
			return entry, true
		}
	}
	return "", false
}

// Contains reports trusted membership without the matched entry
func (s *SourceSet) Contains(domain string) bool {
	_, ok := s.Match(domain)
	return ok
}

// MatchResult reports whether a corroboration result comes from a
// trusted outlet, checking the declared source identifier first and
// falling back to the result URL's host.
func (s *SourceSet) MatchResult(r model.CorroborationResult) bool {
	if s.Contains(r.Source) {
		return true
	}
	return s.Contains(model.DomainFromURL(r.URL))
}

// Len returns the number of configured entries
func (s *SourceSet) Len() int {
	return len(s.entries)
}
