package search

import (
	"strconv"
	"strings"
)

// The dry-run preview renders the run as the equivalent find/grep/sed
// pipeline a user could paste into a shell. It is illustrative output,
// not what the engine executes.

// previewSearchCommand composes the find | xargs grep equivalent.
func previewSearchCommand(opts *Options) string {
	find := previewFindArgs(opts)
	grep := previewGrepArgs(opts)
	return quoteCommand(find) + " | xargs " + quoteCommand(grep)
}

// previewReplaceCommand composes the find | xargs sed -i equivalent.
func previewReplaceCommand(opts *Options) string {
	find := previewFindArgs(opts)
	sed := []string{"xargs", "sed", "-i", sedScript(opts.Pattern, opts.Replace.Template)}
	return quoteCommand(find) + " | " + quoteCommand(sed)
}

func previewFindArgs(opts *Options) []string {
	f := opts.Filter
	args := []string{"find", opts.Root, "-type", "f"}

	var nameArgs []string
	appendTest := func(test, pattern string) {
		if len(nameArgs) > 0 {
			nameArgs = append(nameArgs, "-o")
		}
		nameArgs = append(nameArgs, test, pattern)
	}
	for _, g := range f.NameGlobs {
		appendTest("-name", g)
	}
	for _, g := range f.PathGlobs {
		appendTest("-path", g)
	}
	regex := false
	for _, re := range f.NameRegexps {
		// find's -regex tests the whole path; anchor the name form the
		// same way.
		appendTest("-regex", ".*/"+strings.TrimPrefix(re.String(), "^"))
		regex = true
	}
	for _, re := range f.PathRegexps {
		appendTest("-regex", re.String())
		regex = true
	}
	if regex {
		args = append(args, "-regextype", "posix-extended")
	}
	args = append(args, nameArgs...)

	if len(f.Extensions) > 0 {
		args = append(args, "(")
		for i, ext := range f.Extensions {
			if i > 0 {
				args = append(args, "-o")
			}
			args = append(args, "-name", "*"+ext)
		}
		args = append(args, ")")
	}
	for _, pattern := range f.Excludes {
		args = append(args, "!", "-path", pattern)
	}

	if f.MaxDepth >= 0 {
		args = append(args, "-maxdepth", strconv.Itoa(f.MaxDepth))
	}
	if f.MinDepth > 0 {
		args = append(args, "-mindepth", strconv.Itoa(f.MinDepth))
	}
	return args
}

func previewGrepArgs(opts *Options) []string {
	p := opts.Pattern
	flags := "-H"
	if p.IgnoreCase {
		flags += "i"
	}
	if opts.ListFileNames {
		flags += "l"
	}
	if opts.ShowLineNumber {
		flags += "n"
	}
	if p.WholeWord {
		flags += "w"
	}
	if p.Regex {
		flags += "E"
	} else {
		flags += "F"
	}
	return []string{"grep", "--color=auto", flags, p.Term}
}

// sedScript renders s=old=new=g the way sed would need it: in literal
// mode regex metacharacters in the search term and &, [, ] in the
// replacement are escaped; "=" is always escaped in both halves.
func sedScript(p *Pattern, template string) string {
	old := p.Term
	repl := template
	if !p.Regex {
		old = escapeChars(old, `\^$.*?[]`)
		repl = escapeChars(repl, `\[]&`)
	}
	old = strings.ReplaceAll(old, "=", `\=`)
	repl = strings.ReplaceAll(repl, "=", `\=`)
	script := "s=" + old + "=" + repl + "=g"
	if p.IgnoreCase {
		script += "i"
	}
	return script
}

// escapeChars backslash-escapes every character of chars found in s,
// handling the backslash itself first.
func escapeChars(s, chars string) string {
	if strings.ContainsRune(chars, '\\') {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	for _, c := range chars {
		if c == '\\' {
			continue
		}
		s = strings.ReplaceAll(s, string(c), `\`+string(c))
	}
	return s
}

// quoteCommand joins an argument vector into a shell-pasteable string,
// quoting arguments that need it.
func quoteCommand(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = quoteArg(arg)
	}
	return strings.Join(quoted, " ")
}

func quoteArg(arg string) string {
	if !needsQuotes(arg) {
		return strings.ReplaceAll(strings.ReplaceAll(arg, `\`, `\\`), `'`, `\'`)
	}
	return "'" + strings.ReplaceAll(arg, `'`, `'\''`) + "'"
}

func needsQuotes(arg string) bool {
	if arg == "" {
		return true
	}
	return strings.ContainsAny(arg, " \t\n\r\v\f~`#$&*()|[]{};<>?!\\\"")
}
