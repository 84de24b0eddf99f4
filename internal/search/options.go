package search

import (
	"search/internal/walker"
)

// Options contains all parameters for a single run. It is assembled once
// by the command layer and read-only afterwards.
type Options struct {
	// Root is the directory to traverse.
	Root string

	// Pattern is the compiled search term.
	Pattern *Pattern

	// Filter constrains which files are searched.
	Filter *walker.Filter

	// ListFileNames emits at most one result per file, containing only
	// the file name. The first match short-circuits the rest of the file.
	ListFileNames bool

	// ShowLineNumber prefixes each result with its 1-based line number.
	ShowLineNumber bool

	// Replace, when non-nil, rewrites matched content after the search
	// phase.
	Replace *ReplaceOptions

	// DryRun prints the equivalent composed commands and performs no
	// file mutation.
	DryRun bool

	// Silent suppresses informational output and the replace
	// confirmation prompt. In replace mode nothing is printed unless an
	// error occurs.
	Silent bool
}

// ReplaceOptions carries the replacement template. In regex mode the
// template may reference capture groups with $1 or ${name}.
type ReplaceOptions struct {
	Template string
}
