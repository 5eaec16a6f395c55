package cli

import (
	"io"
	"time"
)

// VerbosityLevel is the verbosity level of the application.
type VerbosityLevel uint

const (
	// VerbosityLevelSilent is the silent verbosity level.
	VerbosityLevelSilent VerbosityLevel = iota
	// VerbosityLevelError is the error verbosity level.
	VerbosityLevelError
	// VerbosityLevelDebug is the debug verbosity level.
	VerbosityLevelDebug
)

// Config is the configuration of the application.
type Config struct {
	OutWriter io.Writer // The stream that will receive the crawl summary.
	ErrWriter io.Writer // The stream that will receive all the log messages and errors.

	Seed        string // The url to start crawling from.
	DomainWide  bool   // Crawl the whole seed domain instead of only the seed path prefix.
	SkipPattern string // Regexp suppressing matching broken links in the report. They are still checked.
	NoSlash     bool   // Disable trailing-slash normalization of extension-less paths.

	NumWorkers int           // The number of workers that the crawler could run.
	Timeout    time.Duration // The timeout of the http client of the crawler.

	BadURLsFile  string // Path of the broken links artifact. Default is bad_urls.json.
	URLMapFile   string // Path of the url map artifact. Default is url_map.json.
	PrettyOutput bool   // Disable JSON prettifier when unset.

	VerbosityLevel VerbosityLevel // The verbosity level of the tool.
}
