package strip

import "strings"

// StripCStyle removes // line comments and /* */ block comments from
// C-family source (C, C++, Java, JavaScript, TypeScript). String and
// character literals are scanned so comment markers inside them are
// left alone. Newlines inside block comments are preserved to keep
// line numbers stable; trailing whitespace left behind by a removed
// comment is trimmed.
func StripCStyle(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	const (
		stateCode = iota
		stateLineComment
		stateBlockComment
		stateString
	)

	state := stateCode
	var quote byte
	escaped := false

	for i := 0; i < len(content); i++ {
		c := content[i]

		switch state {
		case stateCode:
			switch {
			case c == '/' && i+1 < len(content) && content[i+1] == '/':
				state = stateLineComment
				i++
			case c == '/' && i+1 < len(content) && content[i+1] == '*':
				state = stateBlockComment
				i++
			case c == '"' || c == '\'' || c == '`':
				state = stateString
				quote = c
				b.WriteByte(c)
			default:
				b.WriteByte(c)
			}

		case stateLineComment:
			if c == '\n' {
				state = stateCode
				b.WriteByte(c)
			}

		case stateBlockComment:
			if c == '*' && i+1 < len(content) && content[i+1] == '/' {
				state = stateCode
				i++
			} else if c == '\n' {
				b.WriteByte(c)
			}

		case stateString:
			b.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == quote {
				state = stateCode
			}
		}
	}

	return trimLineTrailingSpace(b.String())
}

// trimLineTrailingSpace removes trailing spaces and tabs per line.
func trimLineTrailingSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
