// Package model defines the repository data a card is rendered from.
//
// Fetchers in pkg/integrations/github translate their API responses into
// these types so the renderer never depends on a particular GitHub client.
package model

import "time"

// Owner is the account that owns a repository.
type Owner struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// Repository holds the header fields shown on a card.
type Repository struct {
	FullName    string `json:"full_name"`             // "owner/name"
	Description string `json:"description,omitempty"` // empty when the repository has none
	Owner       Owner  `json:"owner"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	OpenIssues  int    `json:"open_issues_count"`
}

// Commit is one entry of the recent commit list.
type Commit struct {
	SHA     string    `json:"sha"`
	Message string    `json:"message"` // full message; the card shows the first line
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
}

// RepoData is the complete input to the card renderer. Commits are kept in
// the order the API returned them, newest first.
type RepoData struct {
	Repo    Repository `json:"repo"`
	Commits []Commit   `json:"commits"`
}
