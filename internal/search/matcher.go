package search

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// Span is a half-open byte range [Start, End) of a match within a line.
type Span struct {
	Start int
	End   int
}

// Pattern is the compiled search term: either a literal string or a
// regular expression, with case and whole-word options baked in at
// compile time. A Pattern is compiled once per run and is safe for
// concurrent use.
type Pattern struct {
	// Term is the search term as the user supplied it.
	Term string
	// Regex selects regular-expression matching over literal matching.
	Regex bool
	// IgnoreCase folds case during matching.
	IgnoreCase bool
	// WholeWord requires both match boundaries to sit on a
	// non-alphanumeric character or the line edge.
	WholeWord bool

	literal string         // literal case-sensitive needle
	re      *regexp.Regexp // regex mode, or case-insensitive literal
}

// CompilePattern builds a Pattern. Regex terms use Go regular expression
// syntax; ignore-case prepends the (?i) flag. Literal case-insensitive
// terms are compiled to a quoted regex so that match spans stay
// byte-accurate under case folding. Whole-word filters spans after
// matching so that literal and regex modes share one boundary rule.
func CompilePattern(term string, regex, ignoreCase, wholeWord bool) (*Pattern, error) {
	p := &Pattern{
		Term:       term,
		Regex:      regex,
		IgnoreCase: ignoreCase,
		WholeWord:  wholeWord,
	}

	switch {
	case regex:
		expr := term
		if ignoreCase {
			expr = `(?i)` + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid regex %q: %w", term, err)
		}
		p.re = re
	case ignoreCase:
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(term))
		if err != nil {
			return nil, fmt.Errorf("invalid search term %q: %w", term, err)
		}
		p.re = re
	default:
		p.literal = term
	}

	return p, nil
}

// FindSpans returns the left-to-right, non-overlapping match spans within
// line. A nil result means no match.
func (p *Pattern) FindSpans(line string) []Span {
	var spans []Span

	if p.re != nil {
		for _, m := range p.re.FindAllStringIndex(line, -1) {
			spans = append(spans, Span{Start: m[0], End: m[1]})
		}
	} else {
		needle := p.literal
		if needle == "" {
			return nil
		}
		for off := 0; ; {
			i := strings.Index(line[off:], needle)
			if i < 0 {
				break
			}
			start := off + i
			spans = append(spans, Span{Start: start, End: start + len(needle)})
			off = start + len(needle)
		}
	}

	if p.WholeWord {
		spans = filterWholeWord(line, spans)
	}

	return spans
}

// Matches reports whether line contains at least one match.
func (p *Pattern) Matches(line string) bool {
	if p.WholeWord {
		return len(p.FindSpans(line)) > 0
	}
	if p.re != nil {
		return p.re.MatchString(line)
	}
	return p.literal != "" && strings.Contains(line, p.literal)
}

func filterWholeWord(line string, spans []Span) []Span {
	var out []Span
	for _, s := range spans {
		if s.Start > 0 && isWordByte(line[s.Start-1]) {
			continue
		}
		if s.End < len(line) && isWordByte(line[s.End]) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// isWordByte is the whole-word boundary class: only alphanumerics
// continue a word, so "_" and punctuation both end one.
func isWordByte(c byte) bool {
	return ('0' <= c && c <= '9') ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z')
}

// binarySniffLen is how much of a file's head is inspected for the
// NUL-byte binary heuristic.
const binarySniffLen = 8192

// IsBinary reports whether the first block of a file looks like binary
// content. Binary files are skipped without matching.
func IsBinary(head []byte) bool {
	return bytes.IndexByte(head, 0) >= 0
}
