package walker

import (
	"regexp"
	"testing"
)

func TestFilterDepthBounds(t *testing.T) {
	tests := []struct {
		name     string
		minDepth int
		maxDepth int
		depth    int
		want     bool
	}{
		{name: "unbounded", minDepth: 0, maxDepth: -1, depth: 7, want: true},
		{name: "within range", minDepth: 1, maxDepth: 3, depth: 2, want: true},
		{name: "at min", minDepth: 2, maxDepth: 4, depth: 2, want: true},
		{name: "at max", minDepth: 2, maxDepth: 4, depth: 4, want: true},
		{name: "below min", minDepth: 2, maxDepth: 4, depth: 1, want: false},
		{name: "above max", minDepth: 0, maxDepth: 2, depth: 3, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Filter{MinDepth: tt.minDepth, MaxDepth: tt.maxDepth}
			if got := f.Matches("a/b/c.txt", tt.depth); got != tt.want {
				t.Errorf("Matches(depth=%d) = %v, want %v", tt.depth, got, tt.want)
			}
		})
	}
}

func TestFilterNameGlobs(t *testing.T) {
	tests := []struct {
		name  string
		globs []string
		path  string
		want  bool
	}{
		{name: "py glob matches py", globs: []string{"*.py"}, path: "a.py", want: true},
		{name: "py glob rejects txt", globs: []string{"*.py"}, path: "a.txt", want: false},
		{name: "glob against base name only", globs: []string{"*.py"}, path: "src/deep/a.py", want: true},
		{name: "or within category", globs: []string{"*.c", "*.h"}, path: "main.h", want: true},
		{name: "question mark", globs: []string{"file?.txt"}, path: "file1.txt", want: true},
		{name: "char class", globs: []string{"file[0-9].txt"}, path: "filex.txt", want: false},
		{name: "no globs means no constraint", globs: nil, path: "anything", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Filter{MaxDepth: -1, NameGlobs: tt.globs}
			if got := f.Matches(tt.path, 1); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestFilterPathGlobs(t *testing.T) {
	tests := []struct {
		name  string
		globs []string
		path  string
		want  bool
	}{
		{name: "doublestar matches deep", globs: []string{"src/**/*.go"}, path: "src/a/b/c.go", want: true},
		{name: "single star stays shallow", globs: []string{"src/*.go"}, path: "src/a/b.go", want: false},
		{name: "exact relative path", globs: []string{"docs/readme.md"}, path: "docs/readme.md", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Filter{MaxDepth: -1, PathGlobs: tt.globs}
			if got := f.Matches(tt.path, 2); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestFilterRegexps(t *testing.T) {
	f := &Filter{
		MaxDepth:    -1,
		NameRegexps: []*regexp.Regexp{regexp.MustCompile(`\.(h|hpp|c|cpp)$`)},
	}
	if !f.Matches("src/vec.hpp", 2) {
		t.Error("name regex should match vec.hpp")
	}
	if f.Matches("src/vec.py", 2) {
		t.Error("name regex should not match vec.py")
	}

	f = &Filter{
		MaxDepth:    -1,
		PathRegexps: []*regexp.Regexp{regexp.MustCompile(`^src/`)},
	}
	if !f.Matches("src/vec.py", 2) {
		t.Error("path regex should match under src/")
	}
	if f.Matches("lib/vec.py", 2) {
		t.Error("path regex should not match under lib/")
	}
}

// Categories are ANDed: each configured category must pass on its own.
func TestFilterCategoriesCombineWithAnd(t *testing.T) {
	f := &Filter{
		MaxDepth:    -1,
		NameGlobs:   []string{"*.go"},
		PathGlobs:   []string{"internal/**"},
		NameRegexps: []*regexp.Regexp{regexp.MustCompile(`_test\.go$`)},
	}

	if !f.Matches("internal/walker/walker_test.go", 3) {
		t.Error("all categories pass, expected match")
	}
	if f.Matches("internal/walker/walker.go", 3) {
		t.Error("name regex fails, expected rejection")
	}
	if f.Matches("cmd/root_test.go", 2) {
		t.Error("path glob fails, expected rejection")
	}
}

func TestFilterExcludes(t *testing.T) {
	f := &Filter{
		MaxDepth: -1,
		Excludes: []string{"vendor/**", "*.min.js"},
	}
	if f.Matches("vendor/lib/a.go", 3) {
		t.Error("excluded path glob should reject")
	}
	if f.Matches("app/bundle.min.js", 2) {
		t.Error("excluded name glob should reject")
	}
	if !f.Matches("app/main.js", 2) {
		t.Error("non-excluded file should pass")
	}
}

func TestFilterExtensions(t *testing.T) {
	f := &Filter{
		MaxDepth:   -1,
		Extensions: NormalizeExtensions([]string{"py", ".go"}),
	}
	if !f.Matches("a.py", 1) || !f.Matches("b.go", 1) {
		t.Error("listed extensions should pass")
	}
	if f.Matches("c.txt", 1) {
		t.Error("unlisted extension should reject")
	}
}

func TestNormalizeExtensions(t *testing.T) {
	got := NormalizeExtensions([]string{"py", ".go", " c ", ""})
	want := []string{".py", ".go", ".c"}
	if len(got) != len(want) {
		t.Fatalf("NormalizeExtensions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NormalizeExtensions()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCompileGlobs(t *testing.T) {
	if err := CompileGlobs([]string{"*.go", "src/**/*.py"}); err != nil {
		t.Errorf("valid globs: unexpected error %v", err)
	}
	if err := CompileGlobs([]string{"[unclosed"}); err == nil {
		t.Error("malformed glob: expected error")
	}
}

func TestCompileRegexps(t *testing.T) {
	res, err := CompileRegexps([]string{`\.go$`, `^cmd/`})
	if err != nil {
		t.Fatalf("valid regexps: unexpected error %v", err)
	}
	if len(res) != 2 {
		t.Fatalf("expected 2 compiled regexps, got %d", len(res))
	}
	if _, err := CompileRegexps([]string{`(`}); err == nil {
		t.Error("malformed regexp: expected error")
	}
}
