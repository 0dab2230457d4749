package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/commitcard/pkg/pipeline"
)

// newLogger creates the CLI logger. Timestamps use "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// cardTimer times a render or batch command and logs a structured summary
// when it finishes. It is not safe for concurrent use.
type cardTimer struct {
	logger *log.Logger
	start  time.Time
}

func startCardTimer(l *log.Logger) *cardTimer {
	return &cardTimer{logger: l, start: time.Now()}
}

func (t *cardTimer) elapsed() time.Duration {
	return time.Since(t.start).Round(time.Millisecond)
}

// rendered logs one successfully rendered card.
func (t *cardTimer) rendered(res pipeline.Result) {
	t.logger.Info("card rendered",
		"repo", res.Config.Username+"/"+res.Config.Repo,
		"commits", res.Stats.Commits,
		"bytes", len(res.SVG),
		"fetch", res.Stats.FetchTime.Round(time.Millisecond),
		"elapsed", t.elapsed())
}

// batchDone logs the outcome of a batch, at warn level when any card failed.
// It returns the number of failed cards.
func (t *cardTimer) batchDone(results []pipeline.Result) int {
	failed, commits := 0, 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
		commits += res.Stats.Commits
	}

	level := log.InfoLevel
	if failed > 0 {
		level = log.WarnLevel
	}
	t.logger.Log(level, "batch complete",
		"cards", len(results),
		"failed", failed,
		"commits", commits,
		"elapsed", t.elapsed())
	return failed
}
