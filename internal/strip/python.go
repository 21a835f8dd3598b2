package strip

import "strings"

// StripPython removes # comments and docstrings from Python source.
// Ordinary multi-line strings (assignments, arguments) are preserved
// verbatim; only string literals in docstring position — the first
// statement of a module, function, or class — are dropped.
func StripPython(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))

	inString := false
	var delim string

	i := 0
	for i < len(lines) {
		line := lines[i]

		if inString {
			out = append(out, line)
			if strings.Count(line, delim)%2 == 1 {
				inString = false
			}
			i++
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			out = append(out, line)
			i++
			continue
		}

		if d, ok := tripleQuoteDelim(trimmed); ok && isDocstringStart(lines, i) {
			if strings.Count(trimmed, d) >= 2 {
				// Single-line docstring.
				i++
				continue
			}
			// Skip lines until the closing delimiter.
			i++
			for i < len(lines) {
				closed := strings.Contains(lines[i], d)
				i++
				if closed {
					break
				}
			}
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			i++
			continue
		}

		if idx := pythonCommentIndex(line); idx >= 0 {
			line = strings.TrimRight(line[:idx], " \t")
			if strings.TrimSpace(line) == "" {
				i++
				continue
			}
		}

		// A triple quote that opens here and does not close on the same
		// line starts an ordinary multi-line string; copy it verbatim.
		if d, ok := openTripleQuote(line); ok {
			inString = true
			delim = d
		}

		out = append(out, line)
		i++
	}

	return strings.Join(out, "\n")
}

// tripleQuoteDelim returns the triple-quote delimiter a trimmed line
// starts with, if any.
func tripleQuoteDelim(trimmed string) (string, bool) {
	if strings.HasPrefix(trimmed, `"""`) {
		return `"""`, true
	}
	if strings.HasPrefix(trimmed, "'''") {
		return "'''", true
	}
	return "", false
}

// openTripleQuote reports whether a line opens a multi-line string
// (an odd number of triple-quote delimiters).
func openTripleQuote(line string) (string, bool) {
	if n := strings.Count(line, `"""`); n%2 == 1 {
		return `"""`, true
	}
	if n := strings.Count(line, "'''"); n%2 == 1 {
		return "'''", true
	}
	return "", false
}

// isDocstringStart reports whether the line at index i begins a
// docstring: a triple-quoted string as the first statement of the
// module, or directly after a def/class header.
func isDocstringStart(lines []string, i int) bool {
	trimmed := strings.TrimSpace(lines[i])
	if _, ok := tripleQuoteDelim(trimmed); !ok {
		return false
	}

	moduleStart := true
	for j := 0; j < i; j++ {
		prev := strings.TrimSpace(lines[j])
		if prev != "" && !strings.HasPrefix(prev, "#") {
			moduleStart = false
			break
		}
	}
	if moduleStart {
		return true
	}

	for j := i - 1; j >= 0; j-- {
		prev := strings.TrimSpace(lines[j])
		if prev == "" || strings.HasPrefix(prev, "#") {
			continue
		}
		if strings.HasPrefix(prev, "def ") ||
			strings.HasPrefix(prev, "class ") ||
			strings.HasPrefix(prev, "async def ") ||
			strings.HasSuffix(prev, ":") {
			return true
		}
		return false
	}
	return false
}

// pythonCommentIndex finds the index of an inline # comment, skipping
// # characters inside single- or double-quoted strings. Returns -1
// when the line has no comment.
func pythonCommentIndex(line string) int {
	var quote byte
	escaped := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case quote != 0:
			if c == '\\' {
				escaped = true
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '#':
			return i
		}
	}
	return -1
}
