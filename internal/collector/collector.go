package collector

import "io"

// initialHrefsCapacity is the initial capacity of the hrefs slice, it does not mean this is the maximum capacity.
// It is just not recommended to have more than 100 links in a document due to SEO (Page Ranking) reason.
// Ref: https://moz.com/blog/how-many-links-is-too-many
const initialHrefsCapacity = 100

// Document is the outcome of collecting links from a single document body.
//
// BaseHref is the value of the <base href> element when the document declares one, empty otherwise. The caller is
// responsible for resolving the hrefs against it (or against the document url when it is empty).
type Document struct {
	BaseHref string
	Hrefs    []string
}

// LinkCollector collects link targets from a reader of a document body.
type LinkCollector interface {
	Collect(r io.Reader) (Document, error)
}
