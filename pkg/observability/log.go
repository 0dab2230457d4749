package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements [PipelineHooks] and [HTTPHooks] by writing debug
// entries to a charmbracelet logger. The CLI registers it in verbose mode.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to logger, or to the default logger
// when logger is nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnFetchStart(_ context.Context, owner, repo string) {
	h.Logger.Debug("fetch started", "repo", owner+"/"+repo)
}

func (h *LogHooks) OnFetchComplete(_ context.Context, owner, repo string, commits int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("fetch failed", "repo", owner+"/"+repo, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("fetch complete", "repo", owner+"/"+repo, "commits", commits, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, kind string) {
	h.Logger.Debug("render started", "kind", kind)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, kind string, size int, d time.Duration) {
	h.Logger.Debug("render complete", "kind", kind, "bytes", size, "duration", d)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("github request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("github response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Warn("github request failed", "method", method, "host", host, "path", path, "err", err)
}
