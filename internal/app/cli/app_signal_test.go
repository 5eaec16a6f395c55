//go:build testsignal

package cli_test

import (
	"net/http"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/nhatthm/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanhngo/linkhound/internal/app/cli"
)

func Test_Run_SigInt(t *testing.T) {
	t.Parallel()

	doneCh := make(chan struct{})
	syscallCh := make(chan struct{})

	srv := httpmock.New(func(s *httpmock.Server) {
		s.ExpectGet("/docs/").
			Run(func(*http.Request) ([]byte, error) {
				close(doneCh) // Signal to kill the test process.

				<-syscallCh // Wait until the signal is broadcast.

				return nil, nil
			})
	})(t)

	tempDir := t.TempDir()
	badURLsFile := tempDir + "/bad_urls.json"

	var (
		code cli.ExitCode
		wg   sync.WaitGroup
	)

	outBuf := new(safeBuffer)
	errBuf := new(safeBuffer)

	wg.Add(1)

	go func() {
		defer wg.Done()

		code = cli.Run(cli.Config{
			OutWriter:   outBuf,
			ErrWriter:   errBuf,
			Seed:        srv.URL() + "/docs/",
			NumWorkers:  1,
			BadURLsFile: badURLsFile,
			URLMapFile:  tempDir + "/url_map.json",
		})
	}()

	<-doneCh // Wait until the http server is serving the request.

	_ = syscall.Kill(syscall.Getpid(), syscall.SIGINT)

	time.Sleep(100 * time.Millisecond) // Sleep to give time for the context to be cancelled.
	close(syscallCh)

	wg.Wait()

	assert.Equal(t, cli.CodeErrOperationCanceled, code)

	summary := outBuf.String()

	assert.Contains(t, summary, "Crawl interrupted! Crawled 0 pages, checked 1 unique URLs, found 1 broken link.")
	assert.Contains(t, summary, "Crawling interrupted after ")

	// The partial report is still written.
	badURLs, err := os.ReadFile(badURLsFile) // nolint: gosec
	require.NoError(t, err)

	assert.Contains(t, string(badURLs), "unreachable: operation canceled")
}
