package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"search/internal/config"
	"search/internal/log"
	"search/internal/search"
	"search/internal/walker"
)

// colorMode represents when to use colored output.
type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

// String is used both by fmt.Print and by Cobra in help text.
func (c *colorMode) String() string {
	return string(*c)
}

// Set must have pointer receiver to validate and set the value.
func (c *colorMode) Set(v string) error {
	switch v {
	case "auto", "always", "never":
		*c = colorMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"auto\", \"always\", or \"never\"")
	}
}

// Type is only used in help text.
func (c *colorMode) Type() string {
	return "colorMode"
}

var (
	version = "dev"

	// Flags.
	color          = colorAuto
	searchTerm     string
	regexSearch    bool
	ignoreCase     bool
	listFileNames  bool
	showLineNumber bool
	wholeWord      bool
	rootDir        string
	nameGlobs      []string
	pathGlobs      []string
	nameRegexes    []string
	pathRegexes    []string
	maxDepth       int
	minDepth       int
	replaceWith    string
	extensions     []string
	excludes       []string
	silent         bool
	showErrors     bool
	dryRun         bool
	configPath     string
)

var rootCmd = &cobra.Command{
	Use:   "search [<term>]",
	Short: "Search and replace across files on the file system",
	Long: `search recursively looks for a string or regular expression in files
under a directory, printing matches the way grep does, and can rewrite
the matched text in place.

The candidate file set is narrowed find(1)-style: by name glob, by
root-relative path glob, by name or path regular expression, and by
directory depth. Categories combine with AND; patterns within one
category combine with OR.

Examples:
  search 'the quick brown fox'
  search 'hi mom' --name '*.py' -in
  search 'coordinates\[2\]' -r --replace 'coordinate_z'
  search TODO -l --extension go --exclude 'vendor/**'
  search '^this.*is a regex [0-9]+$' -r --silent`,
	Version: version,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
			return &search.ConfigError{Err: err}
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	PreRunE:       validate,
	RunE:          run,
}

func init() {
	// Flag-parse failures are usage errors and share ConfigError's exit
	// code with the PreRunE validations.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &search.ConfigError{Err: err}
	})

	f := rootCmd.Flags()

	f.StringVarP(&searchTerm, "string", "s", "",
		"search for this string (alternative to the positional term)")
	f.BoolVarP(&regexSearch, "regex-search", "r", false,
		"treat the search term as a regular expression")
	f.BoolVarP(&ignoreCase, "ignore-case", "i", false,
		"ignore case when searching")
	f.BoolVarP(&listFileNames, "list-file-names", "l", false,
		"list matching file names only")
	f.BoolVarP(&showLineNumber, "show-line-number", "n", false,
		"show line numbers in results")
	f.BoolVar(&wholeWord, "whole-word", false,
		"match whole words only")

	f.StringVar(&rootDir, "root", "",
		"root directory in which to search (default: cwd)")
	f.StringSliceVarP(&nameGlobs, "name", "a", nil,
		"file name globs used to narrow the search (repeatable)")
	f.StringSliceVarP(&pathGlobs, "whole-name", "w", nil,
		"relative path globs used to narrow the search (repeatable)")
	f.StringSliceVarP(&nameRegexes, "regex-name", "x", nil,
		"file name regexes used to narrow the search (repeatable)")
	f.StringSliceVarP(&pathRegexes, "regex-whole-name", "e", nil,
		"relative path regexes used to narrow the search (repeatable)")
	f.IntVarP(&maxDepth, "max-depth", "M", -1,
		"maximum directory depth (default: unlimited)")
	f.IntVarP(&minDepth, "min-depth", "m", 0,
		"minimum directory depth")

	f.StringVar(&replaceWith, "replace", "",
		"string to replace the search term; with --regex-search, $1/${name} reference capture groups")

	f.StringSliceVar(&extensions, "extension", nil,
		"restrict the search to these file extensions (repeatable)")
	f.StringSliceVarP(&excludes, "exclude", "E", nil,
		"glob patterns to exclude (repeatable)")

	f.Var(&color, "color",
		"colorize output: auto, always, never")
	f.BoolVarP(&silent, "silent", "t", false,
		"suppress information and confirmations; replace mode prints nothing unless an error occurs")
	f.BoolVar(&showErrors, "show-errors", false,
		"report per-file errors instead of skipping them silently")
	f.BoolVar(&dryRun, "dry-run", false,
		"print the equivalent find/grep/sed commands and perform no file mutation")
	f.StringVar(&configPath, "config", "",
		"path to the defaults file (default: $XDG_CONFIG_HOME/search/config.yaml)")
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func validate(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && searchTerm != "" {
		return search.Configf("the positional term and --string are mutually exclusive")
	}
	if len(args) == 0 && searchTerm == "" {
		return search.Configf("a search term is required (positional or --string)")
	}
	if minDepth < 0 {
		return search.Configf("--min-depth must be non-negative, got %d", minDepth)
	}
	if maxDepth >= 0 && minDepth > maxDepth {
		return search.Configf("--min-depth (%d) cannot be greater than --max-depth (%d)", minDepth, maxDepth)
	}
	if dryRun && silent {
		return search.Configf("--dry-run and --silent are mutually exclusive")
	}
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	term := searchTerm
	if len(args) > 0 {
		term = args[0]
	}

	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return &search.ConfigError{Err: err}
	}

	// Flags override file defaults.
	if !cmd.Flags().Changed("color") {
		_ = color.Set(cfg.Color)
	}
	if !cmd.Flags().Changed("show-errors") {
		showErrors = cfg.ShowErrors
	}
	excludes = append(cfg.Excludes, excludes...)
	extensions = append(cfg.Extensions, extensions...)

	var colorize bool
	switch color {
	case colorAlways:
		colorize = true
	case colorNever:
		colorize = false
	case colorAuto:
		colorize = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	root := rootDir
	if root == "" {
		root, err = os.Getwd()
		if err != nil {
			return err
		}
	}

	pattern, err := search.CompilePattern(term, regexSearch, ignoreCase, wholeWord)
	if err != nil {
		return &search.ConfigError{Err: err}
	}

	filter, err := buildFilter()
	if err != nil {
		return &search.ConfigError{Err: err}
	}

	opts := &search.Options{
		Root:           root,
		Pattern:        pattern,
		Filter:         filter,
		ListFileNames:  listFileNames,
		ShowLineNumber: showLineNumber,
		DryRun:         dryRun,
		Silent:         silent,
	}
	// An explicitly empty --replace deletes matches; only the unset
	// flag means search-only mode.
	if cmd.Flags().Changed("replace") {
		opts.Replace = &search.ReplaceOptions{Template: replaceWith}
	}

	logger := log.New(cmd.ErrOrStderr(), !silent, showErrors, colorize)
	engine := search.New(cmd.InOrStdin(), cmd.OutOrStdout(), logger, colorize)
	return engine.Run(cmd.Context(), opts)
}

func buildFilter() (*walker.Filter, error) {
	nameRes, err := walker.CompileRegexps(nameRegexes)
	if err != nil {
		return nil, err
	}
	pathRes, err := walker.CompileRegexps(pathRegexes)
	if err != nil {
		return nil, err
	}
	for _, globs := range [][]string{nameGlobs, pathGlobs, excludes} {
		if err := walker.CompileGlobs(globs); err != nil {
			return nil, err
		}
	}

	return &walker.Filter{
		MinDepth:    minDepth,
		MaxDepth:    maxDepth,
		NameGlobs:   nameGlobs,
		PathGlobs:   pathGlobs,
		NameRegexps: nameRes,
		PathRegexps: pathRes,
		Excludes:    excludes,
		Extensions:  walker.NormalizeExtensions(extensions),
	}, nil
}
