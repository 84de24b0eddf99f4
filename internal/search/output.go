package search

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/mgutz/ansi"
)

// MatchResult is one reportable match: the file's root-relative path, the
// 1-based line number (0 when line numbers are not requested), the line
// text, and the matched spans within it. In list-file-names mode only
// Path is set.
type MatchResult struct {
	Path  string
	Line  int
	Text  string
	Spans []Span
}

// Output formats results with optional color. The palette follows grep's
// defaults: bold red matches, magenta file names, green line numbers,
// cyan separators. Color is resolved once at startup and passed in here;
// nothing below this layer inspects the terminal.
type Output struct {
	mu     sync.Mutex
	stdout io.Writer

	fileName func(string) string
	lineNum  func(string) string
	match    func(string) string
	sep      func(string) string
}

// NewOutput creates an Output writing to stdout with optional color.
func NewOutput(stdout io.Writer, colorize bool) *Output {
	color := func(name string) func(string) string {
		if colorize {
			return ansi.ColorFunc(name)
		}
		return ansi.ColorFunc("")
	}

	return &Output{
		stdout:   stdout,
		fileName: color("magenta"),
		lineNum:  color("green"),
		match:    color("red+b"),
		sep:      color("cyan"),
	}
}

// Emit writes one result. A zero Line omits the line-number field; an
// empty Text with no spans is the list-file-names form and prints the
// path alone.
func (o *Output) Emit(r MatchResult) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if r.Text == "" && r.Spans == nil && r.Line == 0 {
		fmt.Fprintln(o.stdout, o.fileName(r.Path))
		return
	}

	var b strings.Builder
	b.WriteString(o.fileName(r.Path))
	b.WriteString(o.sep(":"))
	if r.Line > 0 {
		b.WriteString(o.lineNum(strconv.Itoa(r.Line)))
		b.WriteString(o.sep(":"))
	}
	b.WriteString(o.highlight(r.Text, r.Spans))
	fmt.Fprintln(o.stdout, b.String())
}

// highlight wraps each span in the match color, left to right.
func (o *Output) highlight(line string, spans []Span) string {
	if len(spans) == 0 {
		return line
	}
	var b strings.Builder
	last := 0
	for _, s := range spans {
		if s.Start < last || s.End > len(line) {
			continue
		}
		b.WriteString(line[last:s.Start])
		b.WriteString(o.match(line[s.Start:s.End]))
		last = s.End
	}
	b.WriteString(line[last:])
	return b.String()
}

// Preview prints an equivalent composed command line.
func (o *Output) Preview(cmdline string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintln(o.stdout, cmdline)
}

// Promptf writes a prompt without a trailing newline.
func (o *Output) Promptf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stdout, format, args...)
}

// Infof writes an informational line to stdout.
func (o *Output) Infof(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stdout, format+"\n", args...)
}
