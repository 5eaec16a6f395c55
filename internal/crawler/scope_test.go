//go:build !testsignal

package crawler_test

import (
	"net/url"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanhngo/linkhound/internal/crawler"
)

func mustParseURL(t *testing.T, s string) *url.URL {
	t.Helper()

	u, err := url.Parse(s)
	require.NoError(t, err, "could not parse url %q", s)

	return u
}

func TestScope_Contains(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		scenario string
		seed     string
		mode     crawler.ScopeMode
		url      string
		expected bool
	}{
		{
			scenario: "same directory",
			seed:     "https://example.com/docs/",
			url:      "https://example.com/docs/guide/",
			expected: true,
		},
		{
			scenario: "descendant",
			seed:     "https://example.com/docs/",
			url:      "https://example.com/docs/guide/install/",
			expected: true,
		},
		{
			scenario: "sibling directory",
			seed:     "https://example.com/docs/",
			url:      "https://example.com/blog/post/",
			expected: false,
		},
		{
			scenario: "parent",
			seed:     "https://example.com/docs/",
			url:      "https://example.com/",
			expected: false,
		},
		{
			scenario: "sibling directory in domain wide mode",
			seed:     "https://example.com/docs/",
			mode:     crawler.ScopeDomainWide,
			url:      "https://example.com/blog/post/",
			expected: true,
		},
		{
			scenario: "other host",
			seed:     "https://example.com/docs/",
			url:      "https://other.com/docs/guide/",
			expected: false,
		},
		{
			scenario: "other host in domain wide mode",
			seed:     "https://example.com/docs/",
			mode:     crawler.ScopeDomainWide,
			url:      "https://other.com/docs/guide/",
			expected: false,
		},
		{
			scenario: "other port",
			seed:     "http://127.0.0.1:8080/",
			url:      "http://127.0.0.1:9090/page/",
			expected: false,
		},
		{
			scenario: "other scheme",
			seed:     "https://example.com/docs/",
			url:      "http://example.com/docs/guide/",
			expected: false,
		},
		{
			scenario: "seed path is a file",
			seed:     "https://example.com/docs/index.html",
			url:      "https://example.com/docs/guide/",
			expected: true,
		},
		{
			scenario: "seed path is a file and url is outside its directory",
			seed:     "https://example.com/docs/index.html",
			url:      "https://example.com/blog/",
			expected: false,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.scenario, func(t *testing.T) {
			t.Parallel()

			s := crawler.NewScope(mustParseURL(t, tc.seed), tc.mode, true, nil)

			assert.Equal(t, tc.expected, s.Contains(mustParseURL(t, tc.url)))
		})
	}
}

func TestScope_SuppressReport(t *testing.T) {
	t.Parallel()

	seed := mustParseURL(t, "https://example.com/docs/")

	testCases := []struct {
		scenario string
		skip     *regexp.Regexp
		url      string
		expected bool
	}{
		{
			scenario: "no pattern",
			url:      "https://example.com/docs/missing/",
			expected: false,
		},
		{
			scenario: "pattern matches",
			skip:     regexp.MustCompile(`\.pdf$`),
			url:      "https://example.com/docs/manual.pdf",
			expected: true,
		},
		{
			scenario: "pattern does not match",
			skip:     regexp.MustCompile(`\.pdf$`),
			url:      "https://example.com/docs/missing/",
			expected: false,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.scenario, func(t *testing.T) {
			t.Parallel()

			s := crawler.NewScope(seed, crawler.ScopePathPrefix, true, tc.skip)

			assert.Equal(t, tc.expected, s.SuppressReport(tc.url))
		})
	}
}
