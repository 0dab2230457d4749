package github

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/shurcooL/githubv4"

	"github.com/matzehuels/commitcard/pkg/errors"
	"github.com/matzehuels/commitcard/pkg/model"
)

// repoQuery reads the card header. issues(states: OPEN) counts issues only,
// unlike the REST open_issues_count which also includes pull requests.
type repoQuery struct {
	Repository struct {
		NameWithOwner  string
		Description    string
		StargazerCount int
		ForkCount      int
		Issues         struct {
			TotalCount int
		} `graphql:"issues(states: OPEN)"`
		Owner struct {
			Login     string
			AvatarURL string `graphql:"avatarUrl"`
		}
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// historyQuery reads the newest commits of the default branch.
type historyQuery struct {
	Repository struct {
		DefaultBranchRef struct {
			Target struct {
				Commit struct {
					History struct {
						Nodes []struct {
							Oid     githubv4.GitObjectID
							Message string
							Author  struct {
								Name string
								Date githubv4.GitTimestamp
							}
						}
					} `graphql:"history(first: $count)"`
				} `graphql:"... on Commit"`
			}
		}
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// GraphQLClient fetches card data through the GitHub GraphQL API. It shares
// the REST client's transport and error classification; the GraphQL API
// always requires a token.
type GraphQLClient struct {
	gql *githubv4.Client
}

// NewGraphQLClient creates a GraphQL fetcher. WithBaseURL, when given, is
// the full GraphQL endpoint (for example https://ghe.example.com/api/graphql).
func NewGraphQLClient(token string, opts ...Option) (*GraphQLClient, error) {
	if token == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "GitHub GraphQL API requires a token")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	hc, err := newHTTPClient(token, o)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create GitHub transport")
	}

	if o.baseURL != "" {
		return &GraphQLClient{gql: githubv4.NewEnterpriseClient(o.baseURL, hc)}, nil
	}
	return &GraphQLClient{gql: githubv4.NewClient(hc)}, nil
}

// Fetch runs the repository query and then the commit history query.
func (c *GraphQLClient) Fetch(ctx context.Context, owner, repo string, count int) (*model.RepoData, error) {
	vars := map[string]any{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(repo),
	}

	var rq repoQuery
	if err := c.gql.Query(ctx, &rq, vars); err != nil {
		return nil, classifyGraphQLError(err, owner, repo)
	}

	vars["count"] = githubv4.Int(count)
	var hq historyQuery
	if err := c.gql.Query(ctx, &hq, vars); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUpstream, err, commitsMessage)
	}

	r := rq.Repository
	nodes := hq.Repository.DefaultBranchRef.Target.Commit.History.Nodes
	data := &model.RepoData{
		Repo: model.Repository{
			FullName:    r.NameWithOwner,
			Description: r.Description,
			Owner: model.Owner{
				Login:     r.Owner.Login,
				AvatarURL: r.Owner.AvatarURL,
			},
			Stars:      r.StargazerCount,
			Forks:      r.ForkCount,
			OpenIssues: r.Issues.TotalCount,
		},
		Commits: make([]model.Commit, 0, len(nodes)),
	}
	for _, n := range nodes {
		data.Commits = append(data.Commits, model.Commit{
			SHA:     string(n.Oid),
			Message: n.Message,
			Author:  n.Author.Name,
			Date:    n.Author.Date.Time,
		})
	}
	return data, nil
}

// statusCodePattern finds the HTTP status in the error the GraphQL client
// returns for non-200 responses ("non-200 OK status code: 502 Bad Gateway ...").
var statusCodePattern = regexp.MustCompile(`status code: (\d{3})`)

// classifyGraphQLError maps GraphQL failures onto the same codes and
// messages as REST. The GraphQL client does not expose typed errors, so
// this matches on the messages GitHub and the client library produce.
func classifyGraphQLError(err error, owner, repo string) error {
	msg := err.Error()
	if strings.Contains(msg, "Could not resolve to a Repository") {
		return errors.Wrap(errors.ErrCodeNotFound, err, "Repository not found: %s/%s", owner, repo)
	}
	if strings.Contains(msg, "RATE_LIMITED") || strings.Contains(msg, "rate limit") {
		return errors.Wrap(errors.ErrCodeRateLimited, err, rateLimitMessage)
	}

	m := statusCodePattern.FindStringSubmatch(msg)
	if m == nil {
		return errors.Wrap(errors.ErrCodeUpstream, err, "GitHub API error")
	}
	status, _ := strconv.Atoi(m[1])
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.Wrap(errors.ErrCodeRateLimited, err, rateLimitMessage)
	case http.StatusNotFound:
		return errors.Wrap(errors.ErrCodeNotFound, err, "Repository not found: %s/%s", owner, repo)
	default:
		return errors.Wrap(errors.ErrCodeUpstream, err, "GitHub API error: %d", status)
	}
}

var _ Fetcher = (*GraphQLClient)(nil)
