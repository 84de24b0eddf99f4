package walker

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter decides whether a discovered file should be searched. Pattern
// categories combine with AND: every configured category must pass.
// Within a category, patterns combine with OR: any one match passes.
// An empty category imposes no constraint.
type Filter struct {
	// MinDepth and MaxDepth bound the file's depth relative to the root.
	// Direct children of the root are at depth 1. A negative MaxDepth
	// means unlimited.
	MinDepth int
	MaxDepth int

	// NameGlobs match against the base file name.
	NameGlobs []string
	// PathGlobs match against the root-relative path.
	PathGlobs []string
	// NameRegexps match against the base file name.
	NameRegexps []*regexp.Regexp
	// PathRegexps match against the root-relative path.
	PathRegexps []*regexp.Regexp

	// Excludes reject a file when any pattern matches its base name or
	// root-relative path, after the include categories have passed.
	Excludes []string
	// Extensions, when non-empty, restrict results to these file
	// extensions. Entries are normalized by NormalizeExtensions.
	Extensions []string
}

// Matches reports whether the file at the given root-relative path and
// depth passes every configured constraint. Depth bounds fail closed:
// out-of-range is a rejection, not an error.
func (f *Filter) Matches(relPath string, depth int) bool {
	if depth < f.MinDepth {
		return false
	}
	if f.MaxDepth >= 0 && depth > f.MaxDepth {
		return false
	}

	name := path.Base(relPath)

	if !matchAnyGlob(f.NameGlobs, name) {
		return false
	}
	if !matchAnyGlob(f.PathGlobs, relPath) {
		return false
	}
	if !matchAnyRegexp(f.NameRegexps, name) {
		return false
	}
	if !matchAnyRegexp(f.PathRegexps, relPath) {
		return false
	}

	for _, pattern := range f.Excludes {
		if globMatch(pattern, name) || globMatch(pattern, relPath) {
			return false
		}
	}

	if len(f.Extensions) > 0 {
		ext := path.Ext(relPath)
		found := false
		for _, want := range f.Extensions {
			if ext == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// matchAnyGlob returns true when patterns is empty (no constraint) or any
// pattern matches.
func matchAnyGlob(patterns []string, s string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		if globMatch(pattern, s) {
			return true
		}
	}
	return false
}

func matchAnyRegexp(patterns []*regexp.Regexp, s string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// globMatch treats a malformed pattern as a non-match rather than an
// error; patterns are validated up front by CompileGlobs.
func globMatch(pattern, s string) bool {
	matched, err := doublestar.Match(pattern, s)
	return err == nil && matched
}

// CompileGlobs validates glob patterns, returning the first bad one.
func CompileGlobs(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%q: %w", pattern, doublestar.ErrBadPattern)
		}
	}
	return nil
}

// CompileRegexps compiles user-supplied regular expressions.
func CompileRegexps(patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}
		res = append(res, re)
	}
	return res, nil
}

// NormalizeExtensions converts entries like "py" or ".py" into the ".py"
// form used by path.Ext.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
