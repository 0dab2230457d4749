package github

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"

	"github.com/matzehuels/commitcard/pkg/observability"
)

// newHTTPClient builds the transport shared by the REST and GraphQL
// fetchers. From the outside in:
//
//	oauth2 (only with a token) -> secondary rate limit waiter -> hooks -> retryablehttp -> base client
func newHTTPClient(token string, o options) (*http.Client, error) {
	rc := retryablehttp.NewClient()
	if o.httpClient != nil {
		rc.HTTPClient = o.httpClient
	}
	rc.RetryMax = o.retries
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = nil
	if o.logger != nil {
		rc.Logger = retryLogger{o.logger}
	}

	var rt http.RoundTripper = &retryablehttp.RoundTripper{Client: rc}
	rt = hooksTransport{base: rt}

	waiter, err := github_ratelimit.NewRateLimitWaiter(rt, github_ratelimit.WithSingleSleepLimit(o.sleepLimit, nil))
	if err != nil {
		return nil, err
	}
	rt = waiter

	if token != "" {
		rt = &oauth2.Transport{
			Base:   rt,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}

	return &http.Client{Transport: rt, Timeout: o.timeout}, nil
}

// hooksTransport reports every round trip to the registered HTTP hooks.
type hooksTransport struct {
	base http.RoundTripper
}

func (t hooksTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	h := observability.HTTP()
	ctx, host, path := req.Context(), req.URL.Host, req.URL.Path

	h.OnRequest(ctx, req.Method, host, path)
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		h.OnError(ctx, req.Method, host, path, err)
		return nil, err
	}
	h.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))
	return resp, nil
}

// retryLogger adapts a charmbracelet logger to retryablehttp.LeveledLogger.
type retryLogger struct {
	l *log.Logger
}

func (r retryLogger) Error(msg string, kv ...any) { r.l.Error(msg, kv...) }
func (r retryLogger) Info(msg string, kv ...any)  { r.l.Debug(msg, kv...) }
func (r retryLogger) Debug(msg string, kv ...any) { r.l.Debug(msg, kv...) }
func (r retryLogger) Warn(msg string, kv ...any)  { r.l.Warn(msg, kv...) }
