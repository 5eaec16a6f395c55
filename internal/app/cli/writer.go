package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hanhngo/linkhound/internal/crawler"
)

const jsonIndent = "  "

const (
	// defaultBadURLsFile is the default path of the broken links artifact.
	defaultBadURLsFile = "bad_urls.json"
	// defaultURLMapFile is the default path of the url map artifact.
	defaultURLMapFile = "url_map.json"

	// maxListedBrokenLinks is the number of broken links printed in the summary before referring to the file.
	maxListedBrokenLinks = 20
)

// writeReportFiles writes the two report artifacts: the broken links list and the source-page to links map.
func writeReportFiles(cfg Config, report *crawler.Report) error {
	if err := writeJSONFile(badURLsFile(cfg), report.BadURLs, cfg.PrettyOutput); err != nil {
		return fmt.Errorf("could not write broken links report: %w", err)
	}

	if err := writeJSONFile(urlMapFile(cfg), report.URLMap, cfg.PrettyOutput); err != nil {
		return fmt.Errorf("could not write url map report: %w", err)
	}

	return nil
}

func badURLsFile(cfg Config) string {
	if cfg.BadURLsFile != "" {
		return cfg.BadURLsFile
	}

	return defaultBadURLsFile
}

func urlMapFile(cfg Config) string {
	if cfg.URLMapFile != "" {
		return cfg.URLMapFile
	}

	return defaultURLMapFile
}

func writeJSONFile(path string, v interface{}, pretty bool) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err // nolint: wrapcheck // *os.PathError is meaningful, we do not need to wrap it.
	}

	enc := json.NewEncoder(f)

	if pretty {
		enc.SetIndent("", jsonIndent)
	}

	if err := enc.Encode(v); err != nil {
		_ = f.Close() // nolint: errcheck

		return fmt.Errorf("could not encode %s: %w", path, err)
	}

	return f.Close() // nolint: wrapcheck
}

// writeSummary prints the human-readable crawl summary to the output writer.
func writeSummary(cfg Config, report *crawler.Report, interrupted bool) error {
	b := new(strings.Builder)

	if interrupted {
		b.WriteString("Crawl interrupted! ")
	}

	_, _ = fmt.Fprintf(b, "Crawled %d pages, checked %d unique URLs", report.Stats.PagesCrawled, report.Stats.URLsChecked)

	switch report.Stats.BrokenLinks {
	case 0:
		b.WriteString(", found no broken links.\n")

	case 1:
		b.WriteString(", found 1 broken link.\n")

	default:
		_, _ = fmt.Fprintf(b, ", found %d broken links.\n", report.Stats.BrokenLinks)
	}

	if n := report.Stats.BrokenLinks; n > 0 {
		if n <= maxListedBrokenLinks {
			b.WriteString("\nBroken links:\n")

			for _, bad := range report.BadURLs {
				if bad.ReferencedFrom != "" {
					_, _ = fmt.Fprintf(b, "  - %s (%s, found on: %s)\n", bad.URL, bad.StatusDetail, bad.ReferencedFrom)
				} else {
					_, _ = fmt.Fprintf(b, "  - %s (%s, starting URL)\n", bad.URL, bad.StatusDetail)
				}
			}
		} else {
			_, _ = fmt.Fprintf(b, "\nSee %s for the complete list of broken links.\n", badURLsFile(cfg))
		}
	}

	_, _ = fmt.Fprintf(b, "\nTotal data downloaded: %s\n", formatBytes(report.Stats.BytesRead))

	if interrupted {
		_, _ = fmt.Fprintf(b, "Crawling interrupted after %s\n", report.Stats.Elapsed)
	} else {
		_, _ = fmt.Fprintf(b, "Crawling completed in %s\n", report.Stats.Elapsed)
	}

	if _, err := io.WriteString(cfg.OutWriter, b.String()); err != nil {
		return fmt.Errorf("could not write summary: %w", err)
	}

	return nil
}

// formatBytes renders a byte count for humans.
func formatBytes(n int64) string {
	const (
		kib = 1024
		mib = 1024 * kib
	)

	switch {
	case n >= mib:
		return fmt.Sprintf("%.1f MiB", float64(n)/mib)

	case n >= kib:
		return fmt.Sprintf("%.1f KiB", float64(n)/kib)

	default:
		return fmt.Sprintf("%d B", n)
	}
}
