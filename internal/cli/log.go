// Package cli implements the testgraph command-line interface.
//
// The commands read a local JSON document (or stdin when the path is "-"),
// run it through the pipeline and write the result to stdout or a file:
//   - graph: build a similarity multigraph from the three metric reports
//   - journey: merge same-named siblings in a journey tree
//   - cache: inspect or clear the output cache
//
// Logs and status lines go to stderr so stdout stays clean for piping.
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Wrote graph.json (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks reports pipeline and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnDecodeStart(_ context.Context, kind string, size int) {
	h.logger.Debug("decoding input", "kind", kind, "bytes", size)
}

func (h *logHooks) OnDecodeComplete(_ context.Context, kind string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("decode failed", "kind", kind, "err", err)
		return
	}
	h.logger.Debug("decoded input", "kind", kind, "duration", d)
}

func (h *logHooks) OnBuildStart(_ context.Context, comparisons int) {
	h.logger.Debug("building graph", "comparisons", comparisons)
}

func (h *logHooks) OnBuildComplete(context.Context, int, int, time.Duration, error) {}

func (h *logHooks) OnMergeStart(_ context.Context, mode string, before int) {
	h.logger.Debug("merging journeys", "mode", mode, "nodes", before)
}

func (h *logHooks) OnMergeComplete(context.Context, string, int, time.Duration) {}

func (h *logHooks) OnRenderStart(context.Context, string) {}

func (h *logHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err == nil {
		h.logger.Debug("encoded output", "format", format, "bytes", size, "duration", d)
	}
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache write", "type", keyType, "bytes", size)
}

func (h *logHooks) OnCacheError(context.Context, string, error) {}
