package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/bool64/ctxd"

	"github.com/hanhngo/linkhound/internal/collector"
)

// sniffLen is used for detecting content type. See http.sniffLen.
const sniffLen = 512

// fetcher wraps the http transport: one network round trip per command, outcome classification and, for in-scope
// pages, link extraction through the content-type keyed collectors.
type fetcher struct {
	client     *http.Client
	collectors map[string]collector.LinkCollector
	log        ctxd.Logger

	userAgent string
}

// fetch processes a single CrawlCommand. It never fails the run: every failure is folded into the Status of the
// returned FoundLinks.
func (f fetcher) fetch(ctx context.Context, scope Scope, cmd CrawlCommand) (result FoundLinks) {
	startTime := time.Now()
	ctx = ctxd.AddFields(ctx, "crawler.url", cmd.URL)

	f.log.Debug(ctx, "started fetching")

	defer func() {
		f.log.Debug(ctx, "finished fetching",
			"crawler.duration", time.Since(startTime).String(),
			"crawler.bytes_read", result.BytesRead,
		)
	}()

	result = FoundLinks{URL: cmd.URL, ReferredBy: cmd.Source}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cmd.URL, nil)
	if err != nil {
		// This should not happen because the url went through normalization before it was enqueued.
		f.log.Error(ctx, "failed to create http request", "error", err)

		result.Status = unreachableStatus(err)

		return result
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		var uErr *url.Error
		if errors.As(err, &uErr) && errors.Is(uErr.Err, context.Canceled) {
			err = ErrOperationCanceled
		}

		f.log.Error(ctx, "failed to send http request", "error", err)

		result.Status = unreachableStatus(err)

		return result
	}

	defer resp.Body.Close() // nolint: errcheck

	body := &countingReader{r: resp.Body}

	defer func() {
		// Drain the rest so the transport can reuse the connection, and settle the byte accounting.
		_, _ = io.Copy(io.Discard, body) // nolint: errcheck
		result.BytesRead = body.n
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		f.log.Error(ctx, "bad http status code", "http.status_code", resp.StatusCode)

		result.Status = failureStatus(resp.StatusCode)

		return result
	}

	result.Status = successStatus(resp.StatusCode)

	if !cmd.ExtractLinks {
		return result
	}

	result.Parsed = true
	result.Discovered = []Link{}

	doc, err := f.collectLinks(ctx, resp, body)
	if err != nil {
		// A parse failure yields zero links, the page status stays successful.
		f.log.Error(ctx, "failed to collect links", "error", err)

		return result
	}

	base := f.resolveBase(ctx, resp.Request.URL, doc.BaseHref)

	for _, href := range doc.Hrefs {
		link := Link{Href: href}

		u, err := scope.Normalize(base, href)

		switch {
		case err != nil:
			f.log.Error(ctx, "failed to resolve link", "crawler.href", href, "error", err)

			link.Err = err

		case u.Scheme != "http" && u.Scheme != "https":
			// mailto:, javascript:, tel: and friends are not crawl targets.
			f.log.Debug(ctx, "link is not http or https", "crawler.href", href)

			continue

		default:
			link.Resolved = u.String()
			link.InScope = scope.Contains(u)
		}

		result.Discovered = append(result.Discovered, link)
	}

	f.log.Debug(ctx, "collected links", "crawler.num_links", len(result.Discovered))

	return result
}

// collectLinks picks a collector by the content type of the response and runs it over the body.
//
// When the Content-Type header is missing or set to `application/octet-stream`, the content type is detected from
// the first sniffLen bytes with http.DetectContentType, and the sniffed bytes are replayed in front of the body. A
// content type without a registered collector is not an error, the page keeps its recorded status and simply yields
// no links.
func (f fetcher) collectLinks(ctx context.Context, resp *http.Response, body io.Reader) (collector.Document, error) {
	contentType := resp.Header.Get("Content-Type")

	if contentType != "" {
		contentType, _, _ = mime.ParseMediaType(contentType) // nolint: errcheck // We do not care about the error, it is probably an error after the `;`.
	}

	if contentType == "" || contentType == "application/octet-stream" {
		sniff, err := io.ReadAll(io.LimitReader(body, sniffLen))
		if err != nil {
			return collector.Document{}, fmt.Errorf("failed to detect content type: %w", err)
		}

		contentType, _, _ = mime.ParseMediaType(http.DetectContentType(sniff)) // nolint: errcheck
		body = io.MultiReader(bytes.NewReader(sniff), body)
	}

	ctx = ctxd.AddFields(ctx, "http.content_type", contentType)

	linkCollector, ok := f.collectors[contentType]
	if !ok {
		f.log.Debug(ctx, "no collector for content type")

		return collector.Document{}, nil
	}

	doc, err := linkCollector.Collect(body)
	if err != nil {
		return collector.Document{}, fmt.Errorf("failed to collect links: %w", err)
	}

	f.log.Debug(ctx, "parsed document", "crawler.num_hrefs", len(doc.Hrefs))

	return doc, nil
}

// resolveBase returns the base url for resolving relative hrefs: the <base href> of the document when it declares a
// valid one, the final page url (after redirects) otherwise.
func (f fetcher) resolveBase(ctx context.Context, pageURL *url.URL, baseHref string) *url.URL {
	if baseHref == "" {
		return pageURL
	}

	base, err := url.Parse(baseHref)
	if err != nil {
		f.log.Error(ctx, "ignored invalid base href", "crawler.base_href", baseHref, "error", err)

		return pageURL
	}

	return pageURL.ResolveReference(base)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)

	return n, err // nolint: wrapcheck
}
