package collector

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

var _ LinkCollector = (*HTMLLinkCollector)(nil)

// HTMLLinkCollector collects anchor targets from a reader of an HTML document.
//
//    c := NewHTMLLinkCollector()
//    doc, err := c.Collect(r)
//    if err != nil {
//    	return nil, err
//    }
//
//    fmt.Println(doc.Hrefs)
type HTMLLinkCollector struct {
	tagAttributes map[string]string // Key is tag name, Value is attribute name.
}

// Collect collects anchor targets from a reader of an HTML document.
//
// When the document declares a <base href>, the first occurrence is reported in Document.BaseHref, following the
// browser behavior of ignoring any later <base> element.
func (c HTMLLinkCollector) Collect(r io.Reader) (Document, error) {
	z := html.NewTokenizer(r)
	hrefs := make([]string, 0, initialHrefsCapacity)
	baseHref := ""

process:
	for {
		switch tt := z.Next(); tt { // nolint: exhaustive // We ignore the other tokens because we focus on the tag attributes.
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				break process
			}

			return Document{}, fmt.Errorf("could not collect links from html doc: %w", z.Err())

		case html.StartTagToken, html.SelfClosingTagToken:
			tag := z.Token()

			if tag.Data == "base" && baseHref == "" {
				baseHref = attrValue(tag, "href")

				continue
			}

			if wantAttr, ok := c.tagAttributes[tag.Data]; ok {
				if href, ok := lookupAttr(tag, wantAttr); ok {
					// In HTML, \n does not mean new line. Browser will ignore it, so link like "\nhttps://example.org/\npath"
					// will be interpreted as "https://example.org/path".
					hrefs = append(hrefs, strings.ReplaceAll(href, "\n", ""))
				}
			}
		}
	}

	// Reduce memory allocation. GC will clean up the old hrefs slice.
	result := make([]string, len(hrefs))
	copy(result, hrefs)

	return Document{BaseHref: baseHref, Hrefs: result}, nil
}

func attrValue(tag html.Token, name string) string {
	v, _ := lookupAttr(tag, name)

	return v
}

func lookupAttr(tag html.Token, name string) (string, bool) {
	for _, attr := range tag.Attr {
		if attr.Key == name {
			return attr.Val, true
		}
	}

	return "", false
}

// NewHTMLLinkCollector creates a new collector for collecting anchor targets from an HTML document.
func NewHTMLLinkCollector() *HTMLLinkCollector {
	return &HTMLLinkCollector{
		tagAttributes: map[string]string{
			"a": "href",
		},
	}
}
