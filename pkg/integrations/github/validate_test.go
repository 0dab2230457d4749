package github

import (
	"testing"

	"github.com/matzehuels/commitcard/pkg/errors"
)

func TestValidateOwner(t *testing.T) {
	tests := []struct {
		owner   string
		wantErr bool
	}{
		{"octocat", false},
		{"my-org", false},
		{"a", false},
		{"", true},
		{"-leading", true},
		{"has space", true},
		{"this-name-is-definitely-longer-than-thirty-nine", true},
	}

	for _, tt := range tests {
		err := ValidateOwner(tt.owner)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateOwner(%q) error = %v, wantErr %v", tt.owner, err, tt.wantErr)
		}
	}
}

func TestValidateRepo(t *testing.T) {
	tests := []struct {
		repo    string
		wantErr bool
	}{
		{"hello-world", false},
		{"my_repo.go", false},
		{"", true},
		{"bad/repo", true},
		{"<script>", true},
	}

	for _, tt := range tests {
		err := ValidateRepo(tt.repo)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateRepo(%q) error = %v, wantErr %v", tt.repo, err, tt.wantErr)
		}
	}
}

func TestParseRepoRef(t *testing.T) {
	tests := []struct {
		ref       string
		wantOwner string
		wantRepo  string
		wantCode  errors.Code
	}{
		{"octocat/hello-world", "octocat", "hello-world", ""},
		{"octocat", "", "", errors.ErrCodeInvalidInput},
		{"/repo", "", "", errors.ErrCodeMissingParameter},
		{"octocat/", "", "", errors.ErrCodeMissingParameter},
		{"octo cat/repo", "", "", errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			owner, repo, err := ParseRepoRef(tt.ref)
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Fatalf("ParseRepoRef(%q) code = %q, want %q (err: %v)", tt.ref, got, tt.wantCode, err)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("ParseRepoRef(%q) = %q, %q, want %q, %q", tt.ref, owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}
