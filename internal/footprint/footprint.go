package footprint

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/bool64/ctxd"
)

const reportInterval = time.Second

// Track tracks the resources usage of a running crawl and writes it to log until the context is canceled.
func Track(ctx context.Context, log ctxd.Logger) {
	for {
		select {
		case <-ctx.Done():
			return

		case <-time.After(reportInterval):
			// See: https://golang.org/pkg/runtime/#MemStats
			var m runtime.MemStats

			runtime.ReadMemStats(&m)

			log.Debug(ctx, "resource usage",
				"alloc_mb", formatB(m.Alloc),
				"total_alloc_mb", formatB(m.TotalAlloc),
				"sys_mb", formatB(m.Sys),
				"num_gc", m.NumGC,
				"num_goroutine", runtime.NumGoroutine(),
			)
		}
	}
}

func formatB(b uint64) string {
	return fmt.Sprintf("%dMiB", b/1024/1024) // nolint: gomnd // bytes conversion.
}
