package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/commitcard/pkg/config"
	"github.com/matzehuels/commitcard/pkg/errors"
	"github.com/matzehuels/commitcard/pkg/integrations/github"
	"github.com/matzehuels/commitcard/pkg/model"
	"github.com/matzehuels/commitcard/pkg/observability"
	"github.com/matzehuels/commitcard/pkg/render/card"
)

// Runner executes the card pipeline against a fetcher.
//
// The Runner holds no per-request state. Multiple goroutines can safely
// share one Runner.
type Runner struct {
	Fetcher github.Fetcher
	Logger  *log.Logger
}

// NewRunner creates a runner. If logger is nil, the default logger is used.
func NewRunner(f github.Fetcher, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Fetcher: f, Logger: logger}
}

// Execute runs the complete normalize → fetch → render pipeline. It never
// fails: errors are reported in Result.Err alongside an error card.
func (r *Runner) Execute(ctx context.Context, v config.Values) (result Result) {
	defer func() {
		if p := recover(); p != nil {
			err := errors.New(errors.ErrCodeInternal, "%v", p)
			r.Logger.Error("card pipeline panicked", "panic", p)
			result = r.fail(ctx, result.Config, err)
		}
	}()

	cfg, err := config.Normalize(v)
	if err != nil {
		return r.fail(ctx, cfg, err)
	}

	data, fetchTime, err := r.Fetch(ctx, cfg)
	if err != nil {
		result = r.fail(ctx, cfg, err)
		result.Stats.FetchTime = fetchTime
		return result
	}

	renderStart := time.Now()
	svg := r.Render(ctx, data, cfg)
	result = Result{
		SVG:    svg,
		Config: cfg,
		Stats: Stats{
			Commits:    len(data.Commits),
			FetchTime:  fetchTime,
			RenderTime: time.Since(renderStart),
		},
	}

	r.Logger.Debug("rendered card",
		"repo", cfg.Username+"/"+cfg.Repo,
		"commits", result.Stats.Commits,
		"bytes", len(svg),
		"fetch", fetchTime,
		"render", result.Stats.RenderTime)
	return result
}

// Fetch reads the data for cfg and reports how long it took.
func (r *Runner) Fetch(ctx context.Context, cfg config.Card) (*model.RepoData, time.Duration, error) {
	if r.Fetcher == nil {
		return nil, 0, errors.New(errors.ErrCodeInternal, "no GitHub fetcher configured")
	}

	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx, cfg.Username, cfg.Repo)
	start := time.Now()
	data, err := r.Fetcher.Fetch(ctx, cfg.Username, cfg.Repo, cfg.Count)
	d := time.Since(start)
	commits := 0
	if data != nil {
		commits = len(data.Commits)
	}
	hooks.OnFetchComplete(ctx, cfg.Username, cfg.Repo, commits, d, err)
	if err != nil {
		return nil, d, err
	}
	return data, d, nil
}

// Render renders a card and reports it to the pipeline hooks.
func (r *Runner) Render(ctx context.Context, data *model.RepoData, cfg config.Card) []byte {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, "card")
	start := time.Now()
	svg := card.Render(data, cfg)
	hooks.OnRenderComplete(ctx, "card", len(svg), time.Since(start))
	return svg
}

func (r *Runner) fail(ctx context.Context, cfg config.Card, err error) Result {
	msg := ErrorMessage(err)
	// Missing parameters are client mistakes and fetch failures are expected
	// upstream conditions; anything else is a bug.
	var level log.Level
	switch {
	case errors.Is(err, errors.ErrCodeMissingParameter):
		level = log.DebugLevel
	case errors.IsFetchError(err):
		level = log.WarnLevel
	default:
		level = log.ErrorLevel
	}
	r.Logger.Log(level, "card failed", "code", errors.GetCode(err), "err", err)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, "error")
	start := time.Now()
	svg := card.RenderError(msg)
	hooks.OnRenderComplete(ctx, "error", len(svg), time.Since(start))

	return Result{SVG: svg, Config: cfg, Err: err}
}
