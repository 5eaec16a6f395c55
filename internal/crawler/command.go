package crawler

// CrawlCommand is one unit of work: fetch the url once, and extract links from its body when ExtractLinks is set.
type CrawlCommand struct {
	// URL is the normalized url to fetch.
	URL string
	// ExtractLinks is set when the url is in scope. When unset the url is only checked for liveness, its body is
	// not parsed and it never causes new discoveries.
	ExtractLinks bool
	// Source is the page the url was discovered on, empty for the seed.
	Source string
}

// Link is one link discovered on a source page.
//
// Err is set when the href could not be parsed or resolved. Such a link is kept as a diagnostic entry with an empty
// Resolved url and is never enqueued.
type Link struct {
	Href     string `json:"href"`
	Resolved string `json:"resolved_url"`
	InScope  bool   `json:"in_scope"`
	Err      error  `json:"-"`
}

// FoundLinks is the result of processing one CrawlCommand.
type FoundLinks struct {
	// URL is the fetched normalized url.
	URL string
	// ReferredBy is the page the url was discovered on, empty for the seed.
	ReferredBy string
	// Status is the classified fetch outcome.
	Status Status
	// Parsed is set when the body was parsed for links. Discovered is always empty when it is not.
	Parsed bool
	// Discovered is the ordered list of links found on the page.
	Discovered []Link
	// BytesRead is the number of body bytes read off the wire for this command.
	BytesRead int64
}
