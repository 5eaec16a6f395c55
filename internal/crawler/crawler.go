package crawler

import (
	"context"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/bool64/ctxd"

	"github.com/hanhngo/linkhound/internal/collector"
)

const (
	// defaultNumWorkers is the default number of workers fetching in parallel.
	defaultNumWorkers = 8
	// maxNumWorkers is the limitation for number of workers to avoid resource saturation.
	maxNumWorkers = 24

	// defaultTimeout is the default timeout for requesting an url.
	defaultTimeout = 30 * time.Second

	// defaultUserAgent is the default user agent to disguise.
	defaultUserAgent = `Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/99.0.4844.51 Safari/537.36`
)

// SiteCrawler walks a website from a seed url, fetches every discovered link exactly once and reports the broken
// ones together with the source-page to discovered-links map.
type SiteCrawler struct {
	client     *http.Client
	collectors map[string]collector.LinkCollector // Key is mime type, Value is a link collector.
	log        ctxd.Logger

	// numWorkers is the number of workers running in parallel. Default value is defaultNumWorkers.
	numWorkers int
	// userAgent is the user agent to disguise when sending request to server. Default value is defaultUserAgent.
	userAgent string

	mode             ScopeMode
	skip             *regexp.Regexp
	addTrailingSlash bool
}

// Crawl crawls the site reachable from the seed and blocks until the traversal reaches its fixed point: no command
// is in flight and none is waiting to be dispatched.
//
// Canceling the context stops the traversal early: queued commands are dropped, in-flight fetches are aborted, and
// the partial report is returned together with ErrOperationCanceled.
//
// The only fatal error is a seed that does not normalize, every other failure surfaces as an entry in the report.
func (c *SiteCrawler) Crawl(ctx context.Context, seed string) (*Report, error) {
	startTime := time.Now()

	seedURL, err := parseSeed(seed)
	if err != nil {
		c.log.Error(ctx, "failed to parse seed url", "error", err)

		return nil, err
	}

	seedURL = canonicalURL(seedURL, c.addTrailingSlash)
	scope := NewScope(seedURL, c.mode, c.addTrailingSlash, c.skip)

	ctx = ctxd.AddFields(ctx, "crawler.seed", seedURL.String())

	c.log.Debug(ctx, "started crawling")

	commands := make(chan CrawlCommand)
	results := make(chan FoundLinks)

	f := fetcher{
		client:     c.client,
		collectors: c.collectors,
		log:        c.log,
		userAgent:  c.userAgent,
	}

	wg := sync.WaitGroup{}

	wg.Add(c.numWorkers)

	for i := 0; i < c.numWorkers; i++ {
		ctx := ctxd.AddFields(ctx, "crawler.worker_id", i)

		go func(ctx context.Context) {
			defer wg.Done()

			c.log.Debug(ctx, "started crawl worker")

			for cmd := range commands {
				results <- f.fetch(ctx, scope, cmd)
			}

			c.log.Debug(ctx, "stopped crawl worker")
		}(ctx)
	}

	state := newCrawlState()
	state.admit(seedURL.String())

	canceled := c.schedule(ctx, state, commands, results, CrawlCommand{URL: seedURL.String(), ExtractLinks: true})

	close(commands)
	wg.Wait()

	report := buildReport(state, scope)
	report.Stats.Elapsed = time.Since(startTime)

	c.log.Debug(ctx, "finished crawling",
		"crawler.duration", report.Stats.Elapsed.String(),
		"crawler.num_urls", report.Stats.URLsChecked,
	)

	if canceled {
		return report, ErrOperationCanceled
	}

	return report, nil
}

// schedule runs the control loop until the traversal fixed point. It owns the pending queue and the crawl state:
// workers never touch either, every admit-or-reject decision happens here, serialized by the loop itself.
//
// inFlight counts commands that have been admitted but whose result has not been folded in yet, so a queued command
// counts as in flight. The counter is incremented strictly before a command can produce discoveries and decremented
// only after all of its discoveries are folded in, which makes inFlight == 0 a true fixed point and not a racy
// snapshot.
func (c *SiteCrawler) schedule(
	ctx context.Context,
	state *crawlState,
	commands chan<- CrawlCommand,
	results <-chan FoundLinks,
	seedCmd CrawlCommand,
) bool {
	pending := []CrawlCommand{seedCmd}
	inFlight := 1
	done := ctx.Done()
	canceled := false

	for inFlight > 0 {
		var (
			dispatch chan<- CrawlCommand
			next     CrawlCommand
		)

		// A nil dispatch channel keeps the send case dormant while there is nothing to dispatch.
		if len(pending) > 0 {
			dispatch, next = commands, pending[0]
		}

		select {
		case <-done:
			c.log.Debug(ctx, "crawl canceled, dropping queued commands", "crawler.num_dropped", len(pending))

			canceled = true
			done = nil
			inFlight -= len(pending)
			pending = nil

		case dispatch <- next:
			pending = pending[1:]

		case r := <-results:
			inFlight--

			state.record(r)

			if canceled {
				continue
			}

			for _, link := range r.Discovered {
				if link.Resolved == "" {
					continue
				}

				if !state.admit(link.Resolved) {
					continue
				}

				pending = append(pending, CrawlCommand{URL: link.Resolved, ExtractLinks: link.InScope, Source: r.URL})
				inFlight++
			}
		}
	}

	return canceled
}

// NewSiteCrawler creates a new SiteCrawler for auditing a website for broken links.
//
// Usage:
//
//	c := crawler.NewSiteCrawler(
//		crawler.WithNumWorkers(8),
//		crawler.WithClientTimeout(10*time.Second),
//	)
//
//	report, err := c.Crawl(ctx, "https://example.com/docs/")
//	if err != nil {
//		return err
//	}
//
//	for _, bad := range report.BadURLs {
//		fmt.Printf("%s (%s)\n", bad.URL, bad.StatusDetail)
//	}
func NewSiteCrawler(opts ...SiteCrawlerOption) *SiteCrawler {
	c := &SiteCrawler{
		client: &http.Client{}, // Default HTTP Client.
		collectors: map[string]collector.LinkCollector{
			"text/html": collector.NewHTMLLinkCollector(),
		},
		log: ctxd.NoOpLogger{},

		numWorkers:       defaultNumWorkers,
		userAgent:        defaultUserAgent,
		addTrailingSlash: true,
	}

	for _, opt := range opts {
		opt.applySiteCrawlerOption(c)
	}

	// Safeguard the number of workers.
	if c.numWorkers < 1 {
		c.numWorkers = defaultNumWorkers
	} else if c.numWorkers > maxNumWorkers {
		c.numWorkers = maxNumWorkers
	}

	if c.client.Timeout == 0 {
		c.client.Timeout = defaultTimeout
	}

	return c
}

// SiteCrawlerOption is option to set up SiteCrawler.
type SiteCrawlerOption interface {
	applySiteCrawlerOption(c *SiteCrawler)
}

type siteCrawlerOptionFunc func(c *SiteCrawler)

func (f siteCrawlerOptionFunc) applySiteCrawlerOption(c *SiteCrawler) {
	f(c)
}

// WithLogger sets logger for SiteCrawler.
func WithLogger(l ctxd.Logger) SiteCrawlerOption {
	return siteCrawlerOptionFunc(func(c *SiteCrawler) {
		c.log = l
	})
}

// WithNumWorkers sets number of workers for SiteCrawler.
func WithNumWorkers(numWorkers int) SiteCrawlerOption {
	return siteCrawlerOptionFunc(func(c *SiteCrawler) {
		c.numWorkers = numWorkers
	})
}

// WithClientTimeout sets timeout for HTTP client.
func WithClientTimeout(d time.Duration) SiteCrawlerOption {
	return siteCrawlerOptionFunc(func(c *SiteCrawler) {
		c.client.Timeout = d
	})
}

// WithUserAgent sets the user agent used when sending requests to the server.
func WithUserAgent(userAgent string) SiteCrawlerOption {
	return siteCrawlerOptionFunc(func(c *SiteCrawler) {
		c.userAgent = userAgent
	})
}

// WithScopeMode sets the scope mode deciding which discovered urls are parsed for further links.
func WithScopeMode(mode ScopeMode) SiteCrawlerOption {
	return siteCrawlerOptionFunc(func(c *SiteCrawler) {
		c.mode = mode
	})
}

// WithSkipPattern sets the pattern suppressing the reporting of matching bad urls. It does not suppress fetching.
func WithSkipPattern(skip *regexp.Regexp) SiteCrawlerOption {
	return siteCrawlerOptionFunc(func(c *SiteCrawler) {
		c.skip = skip
	})
}

// WithTrailingSlash toggles the trailing-slash normalization of extension-less paths. Enabled by default.
func WithTrailingSlash(enabled bool) SiteCrawlerOption {
	return siteCrawlerOptionFunc(func(c *SiteCrawler) {
		c.addTrailingSlash = enabled
	})
}

// WithCollectors sets link collectors for SiteCrawler, replacing the defaults.
func WithCollectors(collectors map[string]collector.LinkCollector) SiteCrawlerOption {
	return siteCrawlerOptionFunc(func(c *SiteCrawler) {
		c.collectors = collectors
	})
}

// WithCollector sets link collector for SiteCrawler for multiple content types.
func WithCollector(collector collector.LinkCollector, contentTypes ...string) SiteCrawlerOption {
	return siteCrawlerOptionFunc(func(c *SiteCrawler) {
		for _, contentType := range contentTypes {
			c.collectors[contentType] = collector
		}
	})
}
