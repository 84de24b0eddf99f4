package search

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Replacer rewrites matched spans in place. Each file is written to a
// temporary file in the same directory and atomically renamed over the
// original, so a failed write never leaves a partially written file
// behind.
type Replacer struct {
	// writeContent performs the temp-file write. Swappable in tests to
	// simulate failures before the rename step.
	writeContent func(f *os.File, content string) error
}

// NewReplacer creates a Replacer.
func NewReplacer() *Replacer {
	return &Replacer{
		writeContent: func(f *os.File, content string) error {
			_, err := f.WriteString(content)
			return err
		},
	}
}

// Apply rewrites every match of p in the file at path with the template.
// It returns the number of replacements made. On any error the original
// file is left untouched.
func (r *Replacer) Apply(path string, p *Pattern, template string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, count := rewrite(string(data), p, template)
	if count == 0 {
		return 0, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, err
	}
	tmpName := tmp.Name()

	if err := r.writeContent(tmp, content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return 0, err
	}
	return count, nil
}

// rewrite substitutes template for every match, line by line, preserving
// line terminators. Returns the new content and the number of spans
// replaced.
func rewrite(content string, p *Pattern, template string) (string, int) {
	var b strings.Builder
	b.Grow(len(content))
	count := 0

	rest := content
	for len(rest) > 0 {
		line := rest
		eol := ""
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, eol = rest[:i], "\n"
			rest = rest[i+1:]
		} else {
			rest = ""
		}
		if strings.HasSuffix(line, "\r") {
			line = line[:len(line)-1]
			eol = "\r" + eol
		}

		replaced, n := replaceLine(line, p, template)
		count += n
		b.WriteString(replaced)
		b.WriteString(eol)
	}

	return b.String(), count
}

// replaceLine substitutes all matches within a single line. Literal mode
// splices the template verbatim over each span; regex mode expands group
// references ($1, ${name}) per match.
func replaceLine(line string, p *Pattern, template string) (string, int) {
	if p.Regex {
		ms := p.re.FindAllStringSubmatchIndex(line, -1)
		if len(ms) == 0 {
			return line, 0
		}
		var b strings.Builder
		last := 0
		for _, m := range ms {
			b.WriteString(line[last:m[0]])
			b.Write(p.re.ExpandString(nil, template, line, m))
			last = m[1]
		}
		b.WriteString(line[last:])
		return b.String(), len(ms)
	}

	spans := p.FindSpans(line)
	if len(spans) == 0 {
		return line, 0
	}
	var b strings.Builder
	last := 0
	for _, s := range spans {
		b.WriteString(line[last:s.Start])
		b.WriteString(template)
		last = s.End
	}
	b.WriteString(line[last:])
	return b.String(), len(spans)
}
