package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hanhngo/linkhound/internal/app/cli"
)

const (
	// defaultNumWorkers is the default value for number of workers.
	defaultNumWorkers = 8
	// defaultTimeout is the default timeout for requesting an url.
	defaultTimeout = 30 * time.Second

	usage = `Crawl a website and report the broken links.

Usage:
  [app] [options] [url]

Options:
  -u, --url URL     The url to start crawling from. The first positional
                    argument is used when this option is not set.
  --domain-match    Crawl all urls within the seed domain, not just those
                    sharing the seed path prefix.
  --skip PATTERN    Do not report broken links matching this regexp.
                    The links are still checked.
  --no-slash        Disable the trailing-slash normalization of
                    extension-less paths.
  -p, --parallel NUM
                    Number of workers for crawling. Default to [defaultNumWorkers].
  -t, --timeout TIMEOUT
                    Timeout for requesting an url, in the form "72h3m0.5s".
                    Default to [defaultTimeout].
  --bad-urls PATH/TO/FILE
                    Where to write the broken links report.
                    Default to bad_urls.json.
  --url-map PATH/TO/FILE
                    Where to write the source-page to links map.
                    Default to url_map.json.
  --no-pretty       Disable pretty JSON output.
  -v, --verbose     Print out the error log messages.
  -vv               Print out the all log messages.
  -h, --help        Print out the help message.

Examples:
  Check a documentation tree:
    [app] https://example.com/docs/

  Check the whole domain with 24 workers:
    [app] -p 24 --domain-match example.com

  Do not report known offenders:
    [app] --skip 'twitter\.com' example.com

Note:
  - The url can be with or without scheme or www prefix, but must have a
    hostname. If the scheme is missing, default to https.

Read more:
  - Time Duration format: https://golang.org/pkg/time/#ParseDuration
`
)

var (
	// argURL is the url to start crawling from.
	argURL string
	// argDomainMatch crawls the whole domain instead of the seed path prefix.
	argDomainMatch bool
	// argSkip is the pattern suppressing matching broken links in the report.
	argSkip string
	// argNoSlash disables the trailing-slash normalization.
	argNoSlash bool
	// argNumWorkers is the number of workers for crawling urls. Default to defaultNumWorkers.
	argNumWorkers = defaultNumWorkers
	// argTimeout is the timeout for requesting an url.
	argTimeout time.Duration
	// argBadURLs is the path of the broken links artifact.
	argBadURLs string
	// argURLMap is the path of the url map artifact.
	argURLMap string
	// argNoPretty is used to turn off json prettifier.
	argNoPretty bool

	// argVerbose is used to set the verbosity level.
	argVerbose bool
	// argVeryVerbose is used to set the verbosity level.
	argVeryVerbose bool
)

// init is for registering all the arguments.
// nolint: gochecknoinits
func init() {
	flag.StringVar(&argURL, "url", "", "")
	flag.StringVar(&argURL, "u", "", "")
	flag.BoolVar(&argDomainMatch, "domain-match", false, "")
	flag.StringVar(&argSkip, "skip", "", "")
	flag.BoolVar(&argNoSlash, "no-slash", false, "")
	flag.IntVar(&argNumWorkers, "parallel", defaultNumWorkers, "")
	flag.IntVar(&argNumWorkers, "p", defaultNumWorkers, "")
	flag.DurationVar(&argTimeout, "timeout", defaultTimeout, "")
	flag.DurationVar(&argTimeout, "t", defaultTimeout, "")
	flag.StringVar(&argBadURLs, "bad-urls", "", "")
	flag.StringVar(&argURLMap, "url-map", "", "")
	flag.BoolVar(&argNoPretty, "no-pretty", false, "")
	flag.BoolVar(&argVerbose, "verbose", false, "")
	flag.BoolVar(&argVerbose, "v", false, "")
	flag.BoolVar(&argVeryVerbose, "vv", false, "")

	flag.Usage = func() {
		r := strings.NewReplacer(
			`[app]`, filepath.Base(os.Args[0]),
			`[defaultNumWorkers]`, strconv.Itoa(defaultNumWorkers),
			`[defaultTimeout]`, defaultTimeout.String(),
		)

		fmt.Print(r.Replace(usage))
	}
}

func main() {
	os.Exit(runMain())
}

func runMain() int {
	flag.Parse()

	seed := argURL
	if seed == "" {
		seed = flag.Arg(0)
	}

	cfg := cli.Config{
		OutWriter:      os.Stdout,
		ErrWriter:      os.Stderr,
		Seed:           seed,
		DomainWide:     argDomainMatch,
		SkipPattern:    argSkip,
		NoSlash:        argNoSlash,
		NumWorkers:     argNumWorkers,
		Timeout:        argTimeout,
		BadURLsFile:    argBadURLs,
		URLMapFile:     argURLMap,
		PrettyOutput:   !argNoPretty,
		VerbosityLevel: cli.VerbosityLevelSilent,
	}

	if argVeryVerbose {
		cfg.VerbosityLevel = cli.VerbosityLevelDebug
	} else if argVerbose {
		cfg.VerbosityLevel = cli.VerbosityLevelError
	}

	return int(cli.Run(cfg))
}
