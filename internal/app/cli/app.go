package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/bool64/ctxd"

	"github.com/hanhngo/linkhound/internal/collector"
	"github.com/hanhngo/linkhound/internal/crawler"
	"github.com/hanhngo/linkhound/internal/footprint"
	"github.com/hanhngo/linkhound/internal/logger"
)

const (
	// CodeOK indicates that the program exited with success.
	CodeOK = ExitCode(iota)
	// CodeErrOperationCanceled indicates that the program has been terminated and the crawl was interrupted.
	CodeErrOperationCanceled
	// CodeErrBadArgs indicates that the provided arguments are invalid.
	CodeErrBadArgs
	// CodeErrOutput indicates that the program could not write the report.
	CodeErrOutput
)

const (
	// Limitation for number of workers to avoid resource saturation.
	maxNumWorkers = 24
)

// ExitCode is the exit code of the program.
type ExitCode int

// Run runs the program to crawl a website from the seed url and report the broken links.
//
// The seed url can be with or without scheme or www prefix, but must have a hostname. If the scheme is missing,
// default to https.
//
// On SIGINT or SIGTERM the crawl is stopped gracefully: queued work is dropped, in-flight requests are aborted, and
// the partial report is still written before the program exits with CodeErrOperationCanceled.
func Run(cfg Config) ExitCode {
	log := initLogger(cfg.VerbosityLevel, cfg.ErrWriter)

	c, err := initCrawler(cfg, log)
	if err != nil {
		_, _ = fmt.Fprintln(cfg.ErrWriter, err.Error())

		return CodeErrBadArgs
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go footprint.Track(ctx, log)

	sigs := make(chan os.Signal, 1)

	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() { // Watch for termination to cancel the context in order to stop the crawl gracefully.
		select {
		case <-sigs:
			cancel()
		case <-ctx.Done():
		}
	}()

	report, err := c.Crawl(ctx, cfg.Seed)

	code := CodeOK

	switch {
	case errors.Is(err, crawler.ErrOperationCanceled):
		code = CodeErrOperationCanceled

	case err != nil:
		_, _ = fmt.Fprintln(cfg.ErrWriter, err.Error())

		return CodeErrBadArgs
	}

	if err := writeReportFiles(cfg, report); err != nil {
		_, _ = fmt.Fprintln(cfg.ErrWriter, err.Error())

		return CodeErrOutput
	}

	if err := writeSummary(cfg, report, code == CodeErrOperationCanceled); err != nil {
		_, _ = fmt.Fprintln(cfg.ErrWriter, err.Error())

		return CodeErrOutput
	}

	return code
}

// initLogger returns a new logger.
//
// If the verbosity level is silent, all the log messages will be discarded by sending them to io.Discard.
// Otherwise, the logger will write to the stderr writer.
//
// Then the verbosity level is
// - VerbosityLevelError, the log level will be set to logger.ErrorLevel.
// - VerbosityLevelDebug, the log level will be set to logger.DebugLevel.
func initLogger(level VerbosityLevel, errWriter io.Writer) ctxd.Logger {
	logCfg := logger.Config{
		Output: io.Discard,
		Level:  logger.ErrorLevel,
	}

	if level > VerbosityLevelSilent {
		logCfg.Output = errWriter
	}

	if level > VerbosityLevelError {
		logCfg.Level = logger.DebugLevel
	}

	return logger.NewLogger(logCfg)
}

// initCrawler initiates a new crawler.SiteCrawler from the application configuration.
//
// The function returns an error when the seed url is missing, the number of workers is out of range, or the skip
// pattern does not compile.
//
// nolint: goerr113 // Error will be printed out.
func initCrawler(cfg Config, log ctxd.Logger) (*crawler.SiteCrawler, error) {
	if cfg.Seed == "" {
		return nil, errors.New("missing seed url")
	}

	if cfg.NumWorkers < 1 {
		return nil, errors.New(`number of workers must be greater than 0`)
	} else if cfg.NumWorkers > maxNumWorkers {
		return nil, fmt.Errorf(`maximum workers is %d`, maxNumWorkers)
	}

	opts := []crawler.SiteCrawlerOption{
		crawler.WithCollectors(map[string]collector.LinkCollector{
			"text/html":  collector.NewHTMLLinkCollector(),
			"text/plain": collector.NewTextLinkCollector(),
		}),
		crawler.WithCollector(collector.NewJSONLinkCollector(), "application/json", "text/x-json"),
		crawler.WithClientTimeout(cfg.Timeout),
		crawler.WithNumWorkers(cfg.NumWorkers),
		crawler.WithTrailingSlash(!cfg.NoSlash),
		crawler.WithLogger(log),
	}

	if cfg.DomainWide {
		opts = append(opts, crawler.WithScopeMode(crawler.ScopeDomainWide))
	}

	if cfg.SkipPattern != "" {
		skip, err := regexp.Compile(cfg.SkipPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid skip pattern: %w", err)
		}

		opts = append(opts, crawler.WithSkipPattern(skip))
	}

	return crawler.NewSiteCrawler(opts...), nil
}
