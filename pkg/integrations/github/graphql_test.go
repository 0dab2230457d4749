package github

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/commitcard/pkg/errors"
)

const gqlRepoResponse = `{"data": {"repository": {
	"nameWithOwner": "owner/repo",
	"description": "A test repository",
	"stargazerCount": 1234,
	"forkCount": 567,
	"issues": {"totalCount": 42},
	"owner": {"login": "owner", "avatarUrl": "https://avatars.githubusercontent.com/u/1?v=4"}
}}}`

const gqlHistoryResponse = `{"data": {"repository": {"defaultBranchRef": {"target": {"history": {"nodes": [
	{"oid": "abc1234567890", "message": "First commit message", "author": {"name": "Test Author", "date": "2024-01-15T10:30:00Z"}},
	{"oid": "def0987654321", "message": "Second commit", "author": {"name": "Another Author", "date": "2024-01-14T15:45:00Z"}}
]}}}}}}`

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// setupTestGraphQLClient points a GraphQLClient at a mock endpoint.
func setupTestGraphQLClient(t *testing.T, handler func(w http.ResponseWriter, req gqlRequest)) *GraphQLClient {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		var req gqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		handler(w, req)
	}))
	t.Cleanup(server.Close)

	c, err := NewGraphQLClient("test-token", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return c
}

func TestGraphQLClient_Fetch(t *testing.T) {
	c := setupTestGraphQLClient(t, func(w http.ResponseWriter, req gqlRequest) {
		assert.Equal(t, "owner", req.Variables["owner"])
		assert.Equal(t, "repo", req.Variables["name"])
		if strings.Contains(req.Query, "history") {
			assert.EqualValues(t, 2, req.Variables["count"])
			fmt.Fprint(w, gqlHistoryResponse)
			return
		}
		fmt.Fprint(w, gqlRepoResponse)
	})

	data, err := c.Fetch(context.Background(), "owner", "repo", 2)
	require.NoError(t, err)

	assert.Equal(t, "owner/repo", data.Repo.FullName)
	assert.Equal(t, "A test repository", data.Repo.Description)
	assert.Equal(t, 1234, data.Repo.Stars)
	assert.Equal(t, 567, data.Repo.Forks)
	assert.Equal(t, 42, data.Repo.OpenIssues)
	assert.Equal(t, "https://avatars.githubusercontent.com/u/1?v=4", data.Repo.Owner.AvatarURL)

	require.Len(t, data.Commits, 2)
	assert.Equal(t, "abc1234567890", data.Commits[0].SHA)
	assert.Equal(t, "Test Author", data.Commits[0].Author)
	assert.Equal(t, 2024, data.Commits[0].Date.Year())
}

func TestGraphQLClient_EmptyRepository(t *testing.T) {
	c := setupTestGraphQLClient(t, func(w http.ResponseWriter, req gqlRequest) {
		if strings.Contains(req.Query, "history") {
			fmt.Fprint(w, `{"data": {"repository": {"defaultBranchRef": null}}}`)
			return
		}
		fmt.Fprint(w, gqlRepoResponse)
	})

	data, err := c.Fetch(context.Background(), "owner", "repo", 5)
	require.NoError(t, err)
	assert.Empty(t, data.Commits)
}

func TestGraphQLClient_FetchErrors(t *testing.T) {
	testCases := []struct {
		name     string
		handler  func(w http.ResponseWriter, req gqlRequest)
		wantCode errors.Code
		wantMsg  string
	}{
		{
			name: "repository not found",
			handler: func(w http.ResponseWriter, req gqlRequest) {
				fmt.Fprint(w, `{"data": {"repository": null}, "errors": [{"type": "NOT_FOUND", "path": ["repository"], "message": "Could not resolve to a Repository with the name 'owner/repo'."}]}`)
			},
			wantCode: errors.ErrCodeNotFound,
			wantMsg:  "Repository not found: owner/repo",
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, req gqlRequest) {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"message": "Bad credentials"}`)
			},
			wantCode: errors.ErrCodeRateLimited,
			wantMsg:  rateLimitMessage,
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, req gqlRequest) {
				fmt.Fprint(w, `{"errors": [{"type": "RATE_LIMITED", "message": "API rate limit exceeded for user ID 1."}]}`)
			},
			wantCode: errors.ErrCodeRateLimited,
			wantMsg:  rateLimitMessage,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, req gqlRequest) {
				w.WriteHeader(http.StatusBadGateway)
				fmt.Fprint(w, `{"message": "Bad Gateway"}`)
			},
			wantCode: errors.ErrCodeUpstream,
			wantMsg:  "GitHub API error: 502",
		},
		{
			name: "history failure",
			handler: func(w http.ResponseWriter, req gqlRequest) {
				if strings.Contains(req.Query, "history") {
					fmt.Fprint(w, `{"errors": [{"message": "Something went wrong"}]}`)
					return
				}
				fmt.Fprint(w, gqlRepoResponse)
			},
			wantCode: errors.ErrCodeUpstream,
			wantMsg:  commitsMessage,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := setupTestGraphQLClient(t, tc.handler)
			_, err := c.Fetch(context.Background(), "owner", "repo", 5)
			require.Error(t, err)
			assert.Equal(t, tc.wantCode, errors.GetCode(err))
			assert.Equal(t, tc.wantMsg, errors.UserMessage(err))
		})
	}
}

func TestClassifyGraphQLError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		wantCode errors.Code
		wantMsg  string
	}{
		{"status 500", stderrors.New(`non-200 OK status code: 500 Internal Server Error body: "oops"`), errors.ErrCodeUpstream, "GitHub API error: 500"},
		{"status 404", stderrors.New(`non-200 OK status code: 404 Not Found body: ""`), errors.ErrCodeNotFound, "Repository not found: owner/repo"},
		{"status 403", stderrors.New(`non-200 OK status code: 403 Forbidden body: ""`), errors.ErrCodeRateLimited, rateLimitMessage},
		{"no status", stderrors.New("Something went wrong"), errors.ErrCodeUpstream, "GitHub API error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := classifyGraphQLError(tc.err, "owner", "repo")
			assert.Equal(t, tc.wantCode, errors.GetCode(err))
			assert.Equal(t, tc.wantMsg, errors.UserMessage(err))
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestNewGraphQLClient_RequiresToken(t *testing.T) {
	_, err := NewGraphQLClient("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}
