package collector

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
)

var _ LinkCollector = (*TextLinkCollector)(nil)

// httpLinkRegexp is the regex used to extract links from a string.
// Ref: https://mathiasbynens.be/demo/url-regex
var httpLinkRegexp = regexp.MustCompile(`(https?)://(-\.)?([^\s/?.#]+\.?)+(/\S*)?`)

// TextLinkCollector collects absolute http(s) links from a reader of a text document.
//
// A text document has no relative references, so Document.BaseHref is always empty.
type TextLinkCollector struct{}

// Collect collects absolute http(s) links from a reader of a text document.
func (t TextLinkCollector) Collect(r io.Reader) (Document, error) {
	s := bufio.NewScanner(r)
	hrefs := make([]string, 0, initialHrefsCapacity)

	for s.Scan() {
		hrefs = append(hrefs, httpLinkRegexp.FindAllString(s.Text(), -1)...)
	}

	if err := s.Err(); err != nil {
		return Document{}, fmt.Errorf("could not collect links from text doc: %w", err)
	}

	// Reduce memory allocation. GC will clean up the old hrefs slice.
	result := make([]string, len(hrefs))
	copy(result, hrefs)

	return Document{Hrefs: result}, nil
}

// NewTextLinkCollector creates a new collector for collecting links from a text document.
func NewTextLinkCollector() *TextLinkCollector {
	return &TextLinkCollector{}
}
