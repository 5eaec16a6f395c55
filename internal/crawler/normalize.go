package crawler

import (
	"fmt"
	"net/url"
	"strings"
)

// parseSeed parses the seed url string into an url.URL.
//
// - If the url string does not have a scheme, it will default to https.
// - If the url string is not a valid url, it will return an error.
// - If the url string does not start with http and https, it will return an error.
func parseSeed(s string) (*url.URL, error) {
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, err // nolint: wrapcheck // *url.URL error is meaningful, we do not need to wrap it.
	}

	if u.Host == "" {
		return nil, fmt.Errorf("parse %q: %w", s, ErrMissingHostname)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse %q: %w %q", s, ErrUnsupportedScheme, u.Scheme)
	}

	return u, nil
}

// normalizeRef resolves a raw href found on a page against the base url of that page and canonicalizes the result.
//
// Resolution follows the standard reference-resolution rules, so relative paths, scheme-relative references, query
// strings and fragments behave the way a browser resolves them.
func normalizeRef(base *url.URL, href string, addTrailingSlash bool) (*url.URL, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %s", ErrInvalidURL, href, err)
	}

	return canonicalURL(base.ResolveReference(ref), addTrailingSlash), nil
}

// canonicalURL returns the canonical form of an absolute url: the fragment is stripped because fragments are not
// distinct destinations, and a trailing slash is appended to extension-less paths when the policy is enabled.
//
// The function is idempotent, canonicalizing an already canonical url is a no-op.
func canonicalURL(u *url.URL, addTrailingSlash bool) *url.URL {
	v := *u
	v.Fragment = ""
	v.RawFragment = ""

	if addTrailingSlash && needsTrailingSlash(v.Path) {
		v.Path += "/"

		if v.RawPath != "" {
			v.RawPath += "/"
		}
	}

	return &v
}

// needsTrailingSlash reports whether the path looks like a directory without the trailing slash. A final segment
// containing a dot is taken as a file name and left alone.
func needsTrailingSlash(path string) bool {
	if strings.HasSuffix(path, "/") {
		return false
	}

	last := path[strings.LastIndex(path, "/")+1:]

	return !strings.Contains(last, ".")
}
