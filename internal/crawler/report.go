package crawler

import (
	"sort"
	"time"
)

// BadURL is one reported broken link.
type BadURL struct {
	URL            string `json:"url"`
	StatusDetail   string `json:"status_detail"`
	ReferencedFrom string `json:"referenced_from,omitempty"`
}

// Stats summarizes one crawl run.
type Stats struct {
	// PagesCrawled is the number of in-scope pages fetched and parsed.
	PagesCrawled int
	// URLsChecked is the number of distinct urls fetched, liveness-only targets included.
	URLsChecked int
	// BrokenLinks is the number of reported bad urls, after the skip pattern is applied.
	BrokenLinks int
	// BytesRead is the number of body bytes read off the wire.
	BytesRead int64
	// Elapsed is the wall-clock duration of the crawl.
	Elapsed time.Duration
}

// Report is the final outcome of a crawl.
//
// URLMap maps every successfully parsed in-scope page to the ordered list of links found on it. BadURLs lists every
// distinct url with a bad status, sorted by url for deterministic output.
type Report struct {
	BadURLs []BadURL
	URLMap  map[string][]Link
	Stats   Stats
}

// buildReport folds the finished crawl state into the output artifacts.
//
// A bad url matching the skip pattern is fetched and mapped like any other, it is only left out of BadURLs.
func buildReport(state *crawlState, scope Scope) *Report {
	r := &Report{
		BadURLs: []BadURL{},
		URLMap:  map[string][]Link{},
	}

	for u, fl := range state.results {
		r.Stats.URLsChecked++
		r.Stats.BytesRead += fl.BytesRead

		if fl.Parsed && !fl.Status.Bad() {
			r.URLMap[u] = fl.Discovered
		}

		if !fl.Status.Bad() || scope.SuppressReport(u) {
			continue
		}

		r.BadURLs = append(r.BadURLs, BadURL{
			URL:            u,
			StatusDetail:   fl.Status.Detail(),
			ReferencedFrom: fl.ReferredBy,
		})
	}

	sort.Slice(r.BadURLs, func(i, j int) bool {
		return r.BadURLs[i].URL < r.BadURLs[j].URL
	})

	r.Stats.PagesCrawled = len(r.URLMap)
	r.Stats.BrokenLinks = len(r.BadURLs)

	return r
}
