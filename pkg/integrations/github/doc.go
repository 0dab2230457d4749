// Package github fetches the data behind a commit card from GitHub.
//
// # Overview
//
// Two [Fetcher] implementations share one contract: read the repository
// header (full name, description, owner avatar, star/fork/issue counts),
// then the newest commits of the default branch.
//
//   - [Client] uses the REST API via go-github. Works without a token.
//   - [GraphQLClient] uses the GraphQL API via githubv4. Requires a token.
//
// # Usage
//
//	client, err := github.NewClient(os.Getenv("GITHUB_TOKEN"),
//	    github.WithTimeout(10*time.Second),
//	    github.WithRetries(2),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data, err := client.Fetch(ctx, "octocat", "hello-world", 5)
//
// # Errors
//
// Failures carry a code from pkg/errors:
//
//   - NOT_FOUND: the repository does not exist or is private
//   - RATE_LIMITED: HTTP 403 or a go-github rate limit error
//   - UPSTREAM_ERROR: any other status, network failure or a failed
//     commit listing
//
// # Transport
//
// Both fetchers wrap their requests in the same stack: an oauth2 bearer
// token (when configured), the secondary rate limit waiter from
// go-github-ratelimit, observability HTTP hooks, and go-retryablehttp for
// transient failures. Retries default to zero.
//
// # Authentication
//
// A GitHub personal access token is optional for REST but recommended to
// avoid rate limits. Without a token, the client is limited to 60
// requests/hour. With a token, the limit is 5000 requests/hour.
//
// # Validation
//
// [ValidateOwner], [ValidateRepo] and [ParseRepoRef] check identifiers
// before they are sent to GitHub. The CLI uses them; the HTTP server passes
// identities through unchanged and lets GitHub answer.
package github
