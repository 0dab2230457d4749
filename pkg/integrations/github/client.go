package github

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	gh "github.com/google/go-github/v62/github"

	"github.com/matzehuels/commitcard/pkg/errors"
	"github.com/matzehuels/commitcard/pkg/model"
)

// Defaults for the fetch transport.
const (
	DefaultTimeout    = 10 * time.Second
	DefaultSleepLimit = 5 * time.Second
	DefaultUserAgent  = "github-commits-card"
)

// Messages shown on error cards.
const (
	rateLimitMessage = "Rate limit exceeded. Try again later or add GITHUB_TOKEN."
	commitsMessage   = "Failed to fetch commits"
)

// Fetcher retrieves the repository header and the most recent commits
// needed to render a card.
type Fetcher interface {
	Fetch(ctx context.Context, owner, repo string, count int) (*model.RepoData, error)
}

// Option configures a fetcher.
type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	retries    int
	timeout    time.Duration
	sleepLimit time.Duration
	logger     *log.Logger
}

func defaultOptions() options {
	return options{
		userAgent:  DefaultUserAgent,
		timeout:    DefaultTimeout,
		sleepLimit: DefaultSleepLimit,
	}
}

// WithBaseURL points the fetcher at a different API root, such as a GitHub
// Enterprise instance or a test server.
func WithBaseURL(u string) Option { return func(o *options) { o.baseURL = u } }

// WithHTTPClient sets the innermost client that performs the requests.
func WithHTTPClient(c *http.Client) Option { return func(o *options) { o.httpClient = c } }

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option { return func(o *options) { o.userAgent = ua } }

// WithRetries sets how many times transient failures (connection errors,
// 429 and 5xx responses) are retried. The default is zero.
func WithRetries(n int) Option { return func(o *options) { o.retries = max(n, 0) } }

// WithTimeout bounds each fetch request including retries.
func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

// WithSleepLimit caps how long the client waits out a secondary rate limit
// before giving up.
func WithSleepLimit(d time.Duration) Option { return func(o *options) { o.sleepLimit = d } }

// WithLogger enables transport debug logging.
func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

// Client fetches card data through the GitHub REST API.
type Client struct {
	rest *gh.Client
}

// NewClient creates a REST fetcher. Pass an empty token for unauthenticated
// requests (60 requests/hour per IP).
func NewClient(token string, opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	hc, err := newHTTPClient(token, o)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create GitHub transport")
	}

	rest := gh.NewClient(hc)
	rest.UserAgent = o.userAgent
	if o.baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(o.baseURL, "/") + "/")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid GitHub base URL %q", o.baseURL)
		}
		rest.BaseURL = u
	}
	return &Client{rest: rest}, nil
}

// Fetch reads the repository and then up to count commits from its default
// branch. The two reads are sequential; the commit list is not attempted
// when the repository lookup fails.
func (c *Client) Fetch(ctx context.Context, owner, repo string, count int) (*model.RepoData, error) {
	r, resp, err := c.rest.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, classifyRepoError(err, resp, owner, repo)
	}

	commits, _, err := c.rest.Repositories.ListCommits(ctx, owner, repo, &gh.CommitsListOptions{
		ListOptions: gh.ListOptions{PerPage: count},
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUpstream, err, commitsMessage)
	}

	data := &model.RepoData{
		Repo: model.Repository{
			FullName:    r.GetFullName(),
			Description: r.GetDescription(),
			Owner: model.Owner{
				Login:     r.GetOwner().GetLogin(),
				AvatarURL: r.GetOwner().GetAvatarURL(),
			},
			Stars:      r.GetStargazersCount(),
			Forks:      r.GetForksCount(),
			OpenIssues: r.GetOpenIssuesCount(),
		},
		Commits: make([]model.Commit, 0, len(commits)),
	}
	for _, rc := range commits {
		author := rc.GetCommit().GetAuthor()
		data.Commits = append(data.Commits, model.Commit{
			SHA:     rc.GetSHA(),
			Message: rc.GetCommit().GetMessage(),
			Author:  author.GetName(),
			Date:    author.GetDate().Time,
		})
	}
	return data, nil
}

func classifyRepoError(err error, resp *gh.Response, owner, repo string) error {
	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	if stderrors.As(err, &rateErr) || stderrors.As(err, &abuseErr) {
		return errors.Wrap(errors.ErrCodeRateLimited, err, rateLimitMessage)
	}

	if resp == nil || resp.Response == nil {
		return errors.Wrap(errors.ErrCodeUpstream, err, "GitHub API request failed")
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return errors.Wrap(errors.ErrCodeNotFound, err, "Repository not found: %s/%s", owner, repo)
	case http.StatusForbidden:
		return errors.Wrap(errors.ErrCodeRateLimited, err, rateLimitMessage)
	default:
		return errors.Wrap(errors.ErrCodeUpstream, err, "GitHub API error: %d", resp.StatusCode)
	}
}

var _ Fetcher = (*Client)(nil)
