// Package search drives the traversal, matches lines against the
// compiled pattern, reports results, and optionally rewrites matched
// files in place.
package search

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"search/internal/log"
	"search/internal/walker"
)

const (
	scanBufLen    = 64 * 1024
	maxLineLen    = 10 * 1024 * 1024
	confirmPrompt = "Would you like to continue? (y/n): "
)

// Engine runs a search (and optional replace) to completion. Files are
// processed one at a time in traversal order; results within a file are
// emitted in ascending line order. That ordering is part of the
// contract, not an implementation detail.
type Engine struct {
	stdin    io.Reader
	output   *Output
	logger   *log.Logger
	replacer *Replacer
}

// New creates an Engine. stdin is only read for the replace confirmation
// prompt. The logger is the error channel; its gating (silent,
// show-errors) is configured by the caller.
func New(stdin io.Reader, stdout io.Writer, logger *log.Logger, colorize bool) *Engine {
	return &Engine{
		stdin:    stdin,
		output:   NewOutput(stdout, colorize),
		logger:   logger,
		replacer: NewReplacer(),
	}
}

// Run executes the search described by opts. It returns an error only
// for fatal conditions: an inaccessible root, cancellation, or a
// declined/invalid confirmation. Per-file errors are reported through
// the logger and do not stop the run.
func (e *Engine) Run(ctx context.Context, opts *Options) error {
	if !opts.Silent {
		e.output.Preview(previewSearchCommand(opts))
	}

	matched, err := e.scan(ctx, opts)
	if err != nil {
		return err
	}

	if opts.Replace == nil {
		return nil
	}

	if !opts.Silent && !opts.DryRun {
		if err := e.confirm(); err != nil {
			return err
		}
	}
	if !opts.Silent {
		e.output.Preview(previewReplaceCommand(opts))
	}
	if opts.DryRun {
		return nil
	}

	for _, rel := range matched {
		v := walker.FileVisit{Path: rel}
		path := v.AbsPath(opts.Root)
		if _, err := e.replacer.Apply(path, opts.Pattern, opts.Replace.Template); err != nil {
			// A failed rewrite leaves the original intact but must be
			// visible even without --show-errors.
			e.logger.Fatalf("%v", err)
		}
	}
	return nil
}

// scan walks the tree and searches every accepted file, returning the
// root-relative paths of files with at least one match. The walker runs
// as a producer goroutine; files are consumed strictly one at a time, so
// ordering and the single-reader guarantee hold.
func (e *Engine) scan(ctx context.Context, opts *Options) ([]string, error) {
	w := &walker.Walker{
		Filter: opts.Filter,
		OnError: func(path string, err error) {
			e.logger.Errorf("%s: %v", path, err)
		},
	}

	// Match output is suppressed in silent replace mode; the scan still
	// runs to collect the files to rewrite.
	report := opts.Replace == nil || !opts.Silent

	var matched []string
	visits := make(chan walker.FileVisit)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(visits)
		return w.Walk(gctx, opts.Root, func(v walker.FileVisit) error {
			select {
			case visits <- v:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	})
	g.Go(func() error {
		for v := range visits {
			ok, err := e.searchFile(v, opts, report)
			if err != nil {
				e.logger.Errorf("%s: %v", v.Path, err)
				continue
			}
			if ok {
				matched = append(matched, v.Path)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return matched, nil
}

// searchFile scans one file line by line, emitting results as they are
// found. Returns whether the file matched at all.
func (e *Engine) searchFile(v walker.FileVisit, opts *Options, report bool) (bool, error) {
	f, err := openText(v.AbsPath(opts.Root))
	if err != nil {
		return false, err
	}
	if f == nil {
		// Binary; skipped without matching and without an error.
		return false, nil
	}
	defer f.close()

	scanner := bufio.NewScanner(f.reader)
	scanner.Buffer(make([]byte, scanBufLen), maxLineLen)

	matched := false
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		spans := opts.Pattern.FindSpans(line)
		if len(spans) == 0 {
			continue
		}
		matched = true

		if opts.ListFileNames {
			// One result per file; the first match ends the scan.
			if report {
				e.output.Emit(MatchResult{Path: v.Path})
			}
			return true, nil
		}
		if report {
			r := MatchResult{Path: v.Path, Text: line, Spans: spans}
			if opts.ShowLineNumber {
				r.Line = lineNum
			}
			e.output.Emit(r)
		}
	}
	if err := scanner.Err(); err != nil {
		return matched, err
	}
	return matched, nil
}

// confirm asks before mutating files. "n"/"no" cancels the run; any
// other unrecognized answer is an input error.
func (e *Engine) confirm() error {
	e.output.Promptf(confirmPrompt)

	reader := bufio.NewReader(e.stdin)
	answer, err := reader.ReadString('\n')
	if err != nil && answer == "" {
		return fmt.Errorf("reading confirmation: %w", err)
	}
	answer = strings.ToLower(strings.TrimSpace(answer))

	switch answer {
	case "y", "yes":
		return nil
	case "n", "no":
		e.output.Infof("Cancelled")
		return ErrCancelled
	default:
		return Configf("invalid entry: %s", answer)
	}
}

// textFile is an open file whose head block has already been read for
// the binary sniff.
type textFile struct {
	reader io.Reader
	close  func() error
}

// openText opens a file and applies the NUL-byte binary heuristic to its
// first block. Returns (nil, nil) for binary files.
func openText(path string) (*textFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	head := make([]byte, binarySniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		f.Close()
		return nil, err
	}
	head = head[:n]

	if IsBinary(head) {
		f.Close()
		return nil, nil
	}

	return &textFile{
		reader: io.MultiReader(bytes.NewReader(head), f),
		close:  f.Close,
	}, nil
}
