package crawler

import (
	"net/url"
	"regexp"
	"strings"
)

// ScopeMode selects which discovered urls are eligible for link extraction.
type ScopeMode uint8

const (
	// ScopePathPrefix extracts links only from urls sharing the seed origin and the seed path prefix. This is the
	// default mode.
	ScopePathPrefix ScopeMode = iota
	// ScopeDomainWide extracts links from any url sharing the seed origin.
	ScopeDomainWide
)

// Scope is the immutable crawl-wide configuration derived once from the seed url.
//
// A url outside the scope is still a valid crawl target for liveness checking, it is just never parsed for further
// links. The skip pattern only suppresses the reporting of a bad url, it does not suppress fetching.
type Scope struct {
	mode             ScopeMode
	scheme           string
	host             string // Host including the port when there is one.
	pathPrefix       string
	skip             *regexp.Regexp
	addTrailingSlash bool
}

// NewScope derives the crawl scope from the seed url.
//
// The path prefix is the seed path up to and including its final slash, so siblings and descendants of the seed are
// in scope while parent and unrelated paths are not.
func NewScope(seed *url.URL, mode ScopeMode, addTrailingSlash bool, skip *regexp.Regexp) Scope {
	prefix := seed.Path
	if i := strings.LastIndex(prefix, "/"); i >= 0 {
		prefix = prefix[:i+1]
	}

	return Scope{
		mode:             mode,
		scheme:           seed.Scheme,
		host:             seed.Host,
		pathPrefix:       prefix,
		skip:             skip,
		addTrailingSlash: addTrailingSlash,
	}
}

// Contains reports whether the url is in scope, i.e. eligible for link extraction.
func (s Scope) Contains(u *url.URL) bool {
	if u.Scheme != s.scheme || u.Host != s.host {
		return false
	}

	if s.mode == ScopeDomainWide {
		return true
	}

	return strings.HasPrefix(u.Path, s.pathPrefix)
}

// SuppressReport reports whether a bad url must be left out of the report because its text matches the skip pattern.
func (s Scope) SuppressReport(u string) bool {
	return s.skip != nil && s.skip.MatchString(u)
}

// Normalize resolves a raw href found on the page at base into its canonical absolute form.
func (s Scope) Normalize(base *url.URL, href string) (*url.URL, error) {
	return normalizeRef(base, href, s.addTrailingSlash)
}
