package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nodeshift/pkg/observability"
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

// done logs msg along with the elapsed time since progress was created.
// Example output: "Pushed 3 nodes (1ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks turns library events into debug log lines.
type logHooks struct {
	logger *log.Logger
}

func installHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetCascadeHooks(h)
	observability.SetSchedulerHooks(h)
	observability.SetCacheHooks(h)
}

func (h logHooks) OnExpand(id string, found bool, candidates, moved int, d time.Duration) {
	if !found {
		h.logger.Debug("expand skipped: node not found", "id", id)
		return
	}
	h.logger.Debug("expand", "id", id, "candidates", candidates, "moved", moved, "took", d)
}

func (h logHooks) OnCollapse(id string, moved int) {
	h.logger.Debug("collapse", "id", id, "restored", moved)
}

func (h logHooks) OnScheduled(id string) {
	h.logger.Debug("expansion scheduled", "id", id)
}

func (h logHooks) OnCancelled(id string) {
	h.logger.Debug("pending expansion cancelled", "id", id)
}

func (h logHooks) OnRun(id string, d time.Duration) {
	h.logger.Debug("deferred expansion ran", "id", id, "took", d)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
