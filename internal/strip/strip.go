// Package strip removes comments from source code by file extension.
//
// Each supported language registers a pure transformation function in
// the extension registry; adding a language means adding one map entry.
// Stripping is idempotent: running a stripper on already-stripped
// content returns it unchanged.
package strip

import "strings"

// Func is a pure comment-removal transformation.
type Func func(content string) string

// registry maps lower-case file extensions to their stripper.
var registry = map[string]Func{
	".py":  StripPython,
	".js":  StripCStyle,
	".ts":  StripCStyle,
	".jsx": StripCStyle,
	".tsx": StripCStyle,
	".java": StripCStyle,
	".c":   StripCStyle,
	".cpp": StripCStyle,
	".h":   StripCStyle,
}

// ForExtension returns the stripper registered for an extension.
func ForExtension(ext string) (Func, bool) {
	fn, ok := registry[strings.ToLower(ext)]
	return fn, ok
}

// Supported reports whether comment removal exists for an extension.
func Supported(ext string) bool {
	_, ok := ForExtension(ext)
	return ok
}

// Apply strips comments from content if the extension is supported.
// It returns the (possibly unchanged) content and whether anything
// was removed. Unsupported extensions pass through untouched.
func Apply(content, ext string) (string, bool) {
	fn, ok := ForExtension(ext)
	if !ok {
		return content, false
	}
	stripped := fn(content)
	return stripped, stripped != content
}
