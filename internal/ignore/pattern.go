package ignore

import (
	"strings"
)

// Pattern is a single parsed gitignore-style rule. Immutable once parsed.
//
// A pattern without a separator matches against the basename at any
// depth beneath the owning rule set's origin. A pattern containing a
// separator is anchored to that origin. A trailing slash restricts the
// pattern to directories.
type Pattern struct {
	raw      string
	negated  bool
	dirOnly  bool
	anchored bool
	segments []string
}

// ParsePattern parses one line of gitignore-style text. It returns
// (nil, false) for blank lines and comments. Malformed pattern text is
// accepted literally and simply never matches; parsing never fails.
func ParsePattern(line string) (*Pattern, bool) {
	// Backslash separators are normalized before matching, never during.
	line = strings.ReplaceAll(line, "\\", "/")
	line = strings.TrimRight(line, " \t")

	if line == "" || strings.HasPrefix(line, "#") {
		return nil, false
	}

	raw := line

	negated := false
	if strings.HasPrefix(line, "!") {
		negated = true
		line = line[1:]
	}

	dirOnly := false
	if strings.HasSuffix(line, "/") {
		dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}

	anchored := false
	if strings.HasPrefix(line, "/") {
		anchored = true
		line = strings.TrimPrefix(line, "/")
	} else if strings.Contains(line, "/") {
		anchored = true
	}

	if line == "" {
		return nil, false
	}

	var segments []string
	for _, part := range strings.Split(line, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}
	if len(segments) == 0 {
		return nil, false
	}

	return &Pattern{
		raw:      raw,
		negated:  negated,
		dirOnly:  dirOnly,
		anchored: anchored,
		segments: segments,
	}, true
}

// Raw returns the original pattern text.
func (p *Pattern) Raw() string { return p.raw }

// Negated reports whether the pattern re-includes matching paths.
func (p *Pattern) Negated() bool { return p.negated }

// DirOnly reports whether the pattern matches directories only.
func (p *Pattern) DirOnly() bool { return p.dirOnly }

// Anchored reports whether the pattern is anchored to its origin.
func (p *Pattern) Anchored() bool { return p.anchored }

// Matches evaluates the pattern against a slash-separated path relative
// to the owning rule set's origin. Matching is case-sensitive.
func (p *Pattern) Matches(rel string, isDir bool) bool {
	if rel == "" {
		return false
	}
	if p.dirOnly && !isDir {
		return false
	}

	if !p.anchored {
		// Basename match at any depth.
		base := rel
		if i := strings.LastIndexByte(rel, '/'); i >= 0 {
			base = rel[i+1:]
		}
		return matchSegments(p.segments, []string{base})
	}

	return matchSegments(p.segments, strings.Split(rel, "/"))
}

// matchSegments recursively matches pattern segments against path
// segments. A ** segment matches zero or more path segments.
func matchSegments(pattern, path []string) bool {
	if len(pattern) == 0 {
		return len(path) == 0
	}

	if pattern[0] == "**" {
		for i := 0; i <= len(path); i++ {
			if matchSegments(pattern[1:], path[i:]) {
				return true
			}
		}
		return false
	}

	if len(path) == 0 {
		return false
	}

	if !matchGlob(pattern[0], path[0]) {
		return false
	}
	return matchSegments(pattern[1:], path[1:])
}

// matchGlob matches a single pattern segment against a single path
// segment. * matches any run of characters, ? matches exactly one;
// neither crosses a separator because segments never contain one.
func matchGlob(pattern, s string) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case '*':
			// Collapse consecutive stars; within one segment ** is
			// equivalent to *.
			for len(pattern) > 0 && pattern[0] == '*' {
				pattern = pattern[1:]
			}
			if pattern == "" {
				return true
			}
			for i := 0; i <= len(s); i++ {
				if matchGlob(pattern, s[i:]) {
					return true
				}
			}
			return false
		case '?':
			if s == "" {
				return false
			}
			pattern = pattern[1:]
			s = s[1:]
		default:
			if s == "" || s[0] != pattern[0] {
				return false
			}
			pattern = pattern[1:]
			s = s[1:]
		}
	}
	return s == ""
}
