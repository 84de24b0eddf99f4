// Package walker enumerates regular files under a root directory in a
// deterministic depth-first order, applying name, path, depth, and
// extension constraints to each entry.
package walker

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileVisit is a file yielded by a traversal: its root-relative path
// (slash-separated) and its depth below the root. Direct children of the
// root are at depth 1.
type FileVisit struct {
	Path  string
	Depth int
}

// AbsPath returns the file's path joined back onto root, in the
// platform's separator.
func (v FileVisit) AbsPath(root string) string {
	return filepath.Join(root, filepath.FromSlash(v.Path))
}

// Walker performs a single depth-first traversal, yielding files that
// pass its Filter. filepath.WalkDir visits entries in lexical order, so
// traversal order is reproducible across runs.
type Walker struct {
	Filter *Filter

	// OnError receives per-entry read errors. Traversal continues with
	// the remaining entries. May be nil.
	OnError func(path string, err error)
}

// Walk traverses root and calls fn for each regular file accepted by the
// Filter. It is a single-use traversal: cancellation is checked at every
// entry, and a root that cannot be read at all is a fatal error.
func (w *Walker) Walk(ctx context.Context, root string, fn func(FileVisit) error) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %s: not a directory", root)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}

		if err != nil {
			if path == root {
				return fmt.Errorf("root %s: %w", root, err)
			}
			if w.OnError != nil {
				w.OnError(path, err)
			}
			return nil
		}

		rel, rerr := filepath.Rel(root, path)
		if rerr != nil {
			return nil
		}
		depth := relDepth(rel)

		if d.IsDir() {
			// Don't descend where every file would exceed the bound.
			if w.Filter.MaxDepth >= 0 && depth >= w.Filter.MaxDepth {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		relPath := filepath.ToSlash(rel)
		if !w.Filter.Matches(relPath, depth) {
			return nil
		}
		return fn(FileVisit{Path: relPath, Depth: depth})
	})
}

// relDepth counts path components below the root: "." is 0, "a" is 1,
// "a/b" is 2.
func relDepth(rel string) int {
	if rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
