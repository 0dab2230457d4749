package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/commitcard/pkg/errors"
)

const testManifest = `
[defaults]
theme = "nord"
count = "2"

[[card]]
name = "first"
repo = "owner/one"

[[card]]
name = "second"
repo = "owner/two"
params = { count = "1", theme = "light" }
`

func TestParseManifest(t *testing.T) {
	m, err := parseManifest([]byte(testManifest))
	if err != nil {
		t.Fatalf("parseManifest() error = %v", err)
	}
	if len(m.Cards) != 2 {
		t.Fatalf("cards = %d, want 2", len(m.Cards))
	}

	v := m.values(m.Cards[1])
	if v.Get("u") != "owner" || v.Get("repo") != "two" {
		t.Errorf("identity = %s/%s, want owner/two", v.Get("u"), v.Get("repo"))
	}
	if v.Get("theme") != "light" || v.Get("count") != "1" {
		t.Errorf("card params should override defaults, got theme=%q count=%q", v.Get("theme"), v.Get("count"))
	}
	if got := m.values(m.Cards[0]).Get("theme"); got != "nord" {
		t.Errorf("default theme = %q, want nord", got)
	}
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `[[card]`},
		{"empty", `out_dir = "x"`},
		{"unknown key", "[[card]]\nname = \"a\"\nrepo = \"o/r\"\ncolour = \"red\""},
		{"bad name", "[[card]]\nname = \"../escape\"\nrepo = \"o/r\""},
		{"missing name", "[[card]]\nrepo = \"o/r\""},
		{"duplicate", "[[card]]\nname = \"a\"\nrepo = \"o/r\"\n[[card]]\nname = \"a\"\nrepo = \"o/s\""},
		{"bad repo", "[[card]]\nname = \"a\"\nrepo = \"nope\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseManifest([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "cards.toml")
	if err := os.WriteFile(manifestPath, []byte(testManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "out")

	f := &fakeFetcher{}
	out, err := runCLI(t, f, "batch", manifestPath, "--out-dir", outDir, "--concurrency", "2")
	if err != nil {
		t.Fatalf("batch error = %v\n%s", err, out)
	}

	slices.Sort(f.fetched)
	if strings.Join(f.fetched, ",") != "owner/one,owner/two" {
		t.Errorf("fetched = %v", f.fetched)
	}

	first, err := os.ReadFile(filepath.Join(outDir, "first.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(first), "commit in owner/one") != 2 {
		t.Error("first card should show the default count of 2")
	}
	second, err := os.ReadFile(filepath.Join(outDir, "second.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(second), "commit in owner/two") != 1 {
		t.Error("second card should use its own count of 1")
	}
}

func TestBatchCommandPartialFailure(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "cards.toml")
	if err := os.WriteFile(manifestPath, []byte(testManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	f := &fakeFetcher{fail: map[string]error{
		"owner/two": errors.New(errors.ErrCodeRateLimited, "Rate limit exceeded."),
	}}
	out, err := runCLI(t, f, "batch", manifestPath, "--out-dir", dir)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 cards failed") {
		t.Fatalf("err = %v, want partial failure", err)
	}
	if !strings.Contains(out, "second: Rate limit exceeded.") {
		t.Errorf("output should report the failed card:\n%s", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, "second.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Rate limit exceeded.") {
		t.Error("failed card should be written as an error card")
	}
}
