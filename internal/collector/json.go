package collector

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var _ LinkCollector = (*JSONLinkCollector)(nil)

// JSONLinkCollector collects absolute http(s) links from a reader of a JSON document.
//
// Links are extracted from every string token, keys included. Document.BaseHref is always empty.
type JSONLinkCollector struct{}

// Collect collects absolute http(s) links from a reader of a JSON document.
func (t JSONLinkCollector) Collect(r io.Reader) (Document, error) {
	dec := json.NewDecoder(r)
	hrefs := make([]string, 0, initialHrefsCapacity)

	for {
		token, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return Document{}, fmt.Errorf("could not collect links from json doc: %w", err)
		}

		if s, ok := token.(string); ok {
			hrefs = append(hrefs, httpLinkRegexp.FindAllString(s, -1)...)
		}
	}

	// Reduce memory allocation. GC will clean up the old hrefs slice.
	result := make([]string, len(hrefs))
	copy(result, hrefs)

	return Document{Hrefs: result}, nil
}

// NewJSONLinkCollector creates a new collector for collecting links from a JSON document.
func NewJSONLinkCollector() *JSONLinkCollector {
	return &JSONLinkCollector{}
}
