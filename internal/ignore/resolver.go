package ignore

import (
	"path"
	"strings"
)

// GitDirName is the version-control directory that gets special-case
// handling instead of rule evaluation.
const GitDirName = ".git"

// Resolver merges a stack of rule sets into a single include/exclude
// decision per path. The stack is ordered global-first: index 0 holds
// the preset or custom rules, deeper directories append their local
// rule sets behind it.
type Resolver struct {
	keepGitDir bool
}

// NewResolver creates a resolver. keepGitDir controls the .git policy:
// when false every path under .git is excluded, when true the .git
// subtree is included verbatim with no rule evaluation inside it.
func NewResolver(keepGitDir bool) *Resolver {
	return &Resolver{keepGitDir: keepGitDir}
}

// KeepGitDir reports the active .git policy.
func (r *Resolver) KeepGitDir() bool { return r.keepGitDir }

// IsExcluded decides whether a path is excluded given the ancestor
// rule sets in effect at its location. rel is relative to the source
// root. Rule sets are evaluated from most specific (deepest directory)
// to least specific (global); the first non-Undecided decision wins,
// so a subdirectory's local rules can override a broader parent or
// global exclusion. If every rule set is undecided the path is
// included.
func (r *Resolver) IsExcluded(rel string, isDir bool, stack []*RuleSet) bool {
	rel = normalizePath(rel)
	if rel == "" || rel == "." {
		return false
	}

	if underGitDir(rel) {
		return !r.keepGitDir
	}

	for i := len(stack) - 1; i >= 0; i-- {
		rs := stack[i]
		sub, ok := relativeToOrigin(rel, rs.Origin())
		if !ok {
			continue
		}
		switch rs.Resolve(sub, isDir) {
		case Exclude:
			return true
		case Include:
			return false
		}
	}
	return false
}

// normalizePath converts platform separators and cleans the path.
func normalizePath(rel string) string {
	rel = strings.ReplaceAll(rel, "\\", "/")
	return path.Clean(strings.Trim(rel, "/"))
}

// underGitDir reports whether any path segment names the git dir.
func underGitDir(rel string) bool {
	for rel != "" {
		seg := rel
		if i := strings.IndexByte(rel, '/'); i >= 0 {
			seg = rel[:i]
			rel = rel[i+1:]
		} else {
			rel = ""
		}
		if seg == GitDirName {
			return true
		}
	}
	return false
}

// relativeToOrigin rebases rel onto a rule set origin. A rule set only
// applies to paths strictly beneath its origin directory.
func relativeToOrigin(rel, origin string) (string, bool) {
	if origin == "" {
		return rel, true
	}
	if !strings.HasPrefix(rel, origin+"/") {
		return "", false
	}
	return rel[len(origin)+1:], true
}
