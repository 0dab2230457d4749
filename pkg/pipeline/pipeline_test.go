package pipeline

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/commitcard/pkg/errors"
	"github.com/matzehuels/commitcard/pkg/model"
	"github.com/matzehuels/commitcard/pkg/observability"
)

type fakeFetcher struct {
	data  *model.RepoData
	err   error
	panic bool

	gotOwner, gotRepo string
	gotCount          int
	calls             int
}

func (f *fakeFetcher) Fetch(_ context.Context, owner, repo string, count int) (*model.RepoData, error) {
	f.calls++
	f.gotOwner, f.gotRepo, f.gotCount = owner, repo, count
	if f.panic {
		panic("boom")
	}
	return f.data, f.err
}

func testData() *model.RepoData {
	return &model.RepoData{
		Repo: model.Repository{FullName: "owner/repo", Stars: 1234},
		Commits: []model.Commit{
			{SHA: "abc1234567890", Message: "First commit", Author: "Test Author", Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestExecute(t *testing.T) {
	f := &fakeFetcher{data: testData()}
	r := NewRunner(f, quietLogger())

	res := r.Execute(context.Background(), url.Values{"u": {"owner"}, "repo": {"repo"}, "count": {"50"}})
	if res.Err != nil {
		t.Fatalf("Execute() error = %v", res.Err)
	}
	if f.gotOwner != "owner" || f.gotRepo != "repo" || f.gotCount != 20 {
		t.Errorf("Fetch(%s, %s, %d), want (owner, repo, 20)", f.gotOwner, f.gotRepo, f.gotCount)
	}
	svg := string(res.SVG)
	if !strings.Contains(svg, "owner/repo") || !strings.Contains(svg, "First commit") {
		t.Errorf("SVG missing repo content:\n%s", svg)
	}
	if res.Stats.Commits != 1 {
		t.Errorf("Stats.Commits = %d, want 1", res.Stats.Commits)
	}
	if res.Code() != "" {
		t.Errorf("Code() = %q, want empty", res.Code())
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name      string
		values    url.Values
		fetcher   *fakeFetcher
		wantCode  errors.Code
		wantText  string
		wantCalls int
	}{
		{
			name:      "missing identity",
			values:    url.Values{"u": {"owner"}},
			fetcher:   &fakeFetcher{data: testData()},
			wantCode:  errors.ErrCodeMissingParameter,
			wantText:  "Missing username (u) or repository (repo)",
			wantCalls: 0,
		},
		{
			name:      "not found",
			values:    url.Values{"u": {"owner"}, "repo": {"missing"}},
			fetcher:   &fakeFetcher{err: errors.New(errors.ErrCodeNotFound, "Repository not found: owner/missing")},
			wantCode:  errors.ErrCodeNotFound,
			wantText:  "Repository not found: owner/missing",
			wantCalls: 1,
		},
		{
			name:      "plain error",
			values:    url.Values{"u": {"owner"}, "repo": {"repo"}},
			fetcher:   &fakeFetcher{err: io.ErrUnexpectedEOF},
			wantCode:  "",
			wantText:  "unexpected EOF",
			wantCalls: 1,
		},
		{
			name:      "empty message",
			values:    url.Values{"u": {"owner"}, "repo": {"repo"}},
			fetcher:   &fakeFetcher{err: errors.New(errors.ErrCodeUpstream, "")},
			wantCode:  errors.ErrCodeUpstream,
			wantText:  UnknownErrorMessage,
			wantCalls: 1,
		},
		{
			name:      "panic",
			values:    url.Values{"u": {"owner"}, "repo": {"repo"}},
			fetcher:   &fakeFetcher{panic: true},
			wantCode:  errors.ErrCodeInternal,
			wantText:  "boom",
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(tt.fetcher, quietLogger())
			res := r.Execute(context.Background(), tt.values)

			if res.Err == nil {
				t.Fatal("Execute() error = nil, want error")
			}
			if got := res.Code(); got != tt.wantCode {
				t.Errorf("Code() = %q, want %q", got, tt.wantCode)
			}
			svg := string(res.SVG)
			if !strings.Contains(svg, `width="400" height="120"`) {
				t.Errorf("SVG is not an error card:\n%s", svg)
			}
			if !strings.Contains(svg, tt.wantText) {
				t.Errorf("error card missing %q:\n%s", tt.wantText, svg)
			}
			if tt.fetcher.calls != tt.wantCalls {
				t.Errorf("fetch calls = %d, want %d", tt.fetcher.calls, tt.wantCalls)
			}
		})
	}
}

func TestFailureLogLevel(t *testing.T) {
	tests := []struct {
		name      string
		values    url.Values
		fetcher   *fakeFetcher
		wantLevel string
	}{
		{"missing identity", url.Values{}, &fakeFetcher{}, "DEBU"},
		{"not found", url.Values{"u": {"o"}, "repo": {"r"}}, &fakeFetcher{err: errors.New(errors.ErrCodeNotFound, "Repository not found: o/r")}, "WARN"},
		{"rate limited", url.Values{"u": {"o"}, "repo": {"r"}}, &fakeFetcher{err: errors.New(errors.ErrCodeRateLimited, "Rate limit exceeded.")}, "WARN"},
		{"upstream", url.Values{"u": {"o"}, "repo": {"r"}}, &fakeFetcher{err: errors.New(errors.ErrCodeUpstream, "Failed to fetch commits")}, "WARN"},
		{"plain error", url.Values{"u": {"o"}, "repo": {"r"}}, &fakeFetcher{err: io.ErrUnexpectedEOF}, "ERRO"},
		{"panic", url.Values{"u": {"o"}, "repo": {"r"}}, &fakeFetcher{panic: true}, "ERRO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
			NewRunner(tt.fetcher, logger).Execute(context.Background(), tt.values)

			var line string
			for _, l := range strings.Split(buf.String(), "\n") {
				if strings.Contains(l, "card failed") {
					line = l
				}
			}
			if !strings.HasPrefix(line, tt.wantLevel) {
				t.Errorf("card failed logged as %q, want level %s", line, tt.wantLevel)
			}
		})
	}
}

func TestExecuteNilFetcher(t *testing.T) {
	res := NewRunner(nil, quietLogger()).Execute(context.Background(), url.Values{"u": {"a"}, "repo": {"b"}})
	if !errors.Is(res.Err, errors.ErrCodeInternal) {
		t.Errorf("Err = %v, want INTERNAL_ERROR", res.Err)
	}
}

func TestExecuteHooks(t *testing.T) {
	rec := &recordingHooks{}
	observability.SetPipelineHooks(rec)
	defer observability.Reset()

	r := NewRunner(&fakeFetcher{data: testData()}, quietLogger())
	r.Execute(context.Background(), url.Values{"u": {"owner"}, "repo": {"repo"}})
	r.Execute(context.Background(), url.Values{})

	if rec.fetches != 1 {
		t.Errorf("fetch events = %d, want 1", rec.fetches)
	}
	if strings.Join(rec.renders, ",") != "card,error" {
		t.Errorf("render events = %v, want [card error]", rec.renders)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", errors.New(errors.ErrCodeRateLimited, "Rate limit exceeded."), "Rate limit exceeded."},
		{"wrapped", errors.Wrap(errors.ErrCodeUpstream, io.EOF, "Failed to fetch commits"), "Failed to fetch commits"},
		{"plain", io.EOF, "EOF"},
		{"nil", nil, UnknownErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.want {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResultString(t *testing.T) {
	ok := Result{SVG: []byte("<svg/>"), Stats: Stats{Commits: 2}}
	ok.Config.Username, ok.Config.Repo = "owner", "repo"
	if got := ok.String(); got != "card owner/repo (2 commits, 6 bytes)" {
		t.Errorf("String() = %q", got)
	}

	failed := Result{Err: errors.New(errors.ErrCodeNotFound, "Repository not found: a/b")}
	if got := failed.String(); got != "error card (NOT_FOUND): Repository not found: a/b" {
		t.Errorf("String() = %q", got)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	fetches int
	renders []string
}

func (h *recordingHooks) OnFetchComplete(context.Context, string, string, int, time.Duration, error) {
	h.fetches++
}

func (h *recordingHooks) OnRenderStart(_ context.Context, kind string) {
	h.renders = append(h.renders, kind)
}
