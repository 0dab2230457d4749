package fonts

import (
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		key  string
		want Stack
	}{
		{"jetbrains", `'JetBrains Mono', 'Fira Code', 'Cascadia Code', monospace`},
		{"inter", `'Inter', -apple-system, BlinkMacSystemFont, sans-serif`},
		{"source", `'Source Code Pro', monospace`},
		{"comic", stacks[DefaultKey]},
		{"", stacks[DefaultKey]},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := Resolve(tt.key); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestStacksEndInGenericFamily(t *testing.T) {
	generic := []string{"monospace", "sans-serif", "serif"}
	for _, key := range Keys() {
		s, _ := Lookup(key)
		last := strings.TrimSpace(string(s)[strings.LastIndex(string(s), ",")+1:])
		found := false
		for _, g := range generic {
			if last == g {
				found = true
			}
		}
		if !found {
			t.Errorf("stack %q ends in %q, want a generic family", key, last)
		}
	}
}

func TestKeys(t *testing.T) {
	want := []string{"cascadia", "fira", "inter", "jetbrains", "source", "ubuntu"}
	got := Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
