package crawler

import "sync"

// crawlState is the shared ledger of one traversal: the set of urls ever admitted to the queue and the accumulated
// per-url results.
//
// The scheduler is the only writer during a crawl, but admit keeps its own locking so the claim stays atomic no
// matter how many discovery sources call it.
type crawlState struct {
	mtx     sync.Mutex
	seen    map[string]struct{}
	results map[string]FoundLinks
}

func newCrawlState() *crawlState {
	return &crawlState{
		seen:    map[string]struct{}{},
		results: map[string]FoundLinks{},
	}
}

// admit atomically checks membership of the normalized url in the seen set and claims it when absent. It returns
// true for exactly one caller per distinct url, granting that caller the right to enqueue a command for it.
func (s *crawlState) admit(u string) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.seen[u]; ok {
		return false
	}

	s.seen[u] = struct{}{}

	return true
}

// record stores the result of a completed command.
func (s *crawlState) record(r FoundLinks) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.results[r.URL] = r
}
