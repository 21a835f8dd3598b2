package ignore

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/quantmind-br/srcpack-go/internal/domain"
)

// IgnoreFileName is the per-directory ignore file consumed during
// traversal.
const IgnoreFileName = ".gitignore"

// FromLines builds a rule set from pattern lines already in memory,
// such as a preset's defaults.
func FromLines(origin string, lines []string) *RuleSet {
	rs := NewRuleSet(origin)
	for _, line := range lines {
		rs.AddLine(line)
	}
	return rs
}

// ParseReader reads gitignore-grammar text into a rule set: one
// pattern per line, blank lines and # comments skipped, ! prefix for
// negation. Lines that are not valid UTF-8 fail with the offending
// line number so the caller can surface a ConfigError naming it.
func ParseReader(origin string, r io.Reader) (*RuleSet, error) {
	rs := NewRuleSet(origin)
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("line %d: not valid UTF-8", lineNum)
		}
		rs.AddLine(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rs, nil
}

// LoadFile loads a user-supplied exclusion file into a global rule
// set. Unreadable or malformed content is a configuration failure and
// aborts before traversal begins.
func LoadFile(path string) (*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewConfigError(path, 0, "cannot read exclusion file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.NewConfigError(path, 0, "cannot read exclusion file", err)
	}
	if !utf8.Valid(data) {
		line := 1
		for i := 0; i < len(data); {
			r, size := utf8.DecodeRune(data[i:])
			if r == utf8.RuneError && size == 1 {
				break
			}
			if r == '\n' {
				line++
			}
			i += size
		}
		return nil, domain.NewConfigError(path, line, "not valid UTF-8", nil)
	}

	rs, err := ParseReader("", bytes.NewReader(data))
	if err != nil {
		return nil, domain.NewConfigError(path, 0, err.Error(), err)
	}
	return rs, nil
}

// LoadLocal loads the ignore file of one directory, producing a rule
// set anchored to origin (the directory's path relative to the source
// root). Absence is a normal case and yields an empty rule set; a
// read failure yields an empty rule set plus the error so the walker
// can count a warning and continue.
func LoadLocal(dir, origin string) (*RuleSet, error) {
	ignorePath := filepath.Join(dir, IgnoreFileName)

	f, err := os.Open(ignorePath)
	if err != nil {
		if os.IsNotExist(err) {
			return NewRuleSet(origin), nil
		}
		return NewRuleSet(origin), err
	}
	defer f.Close()

	rs, err := ParseReader(origin, f)
	if err != nil {
		return NewRuleSet(origin), fmt.Errorf("%s: %w", ignorePath, err)
	}
	return rs, nil
}
