package ignore

// Decision is the outcome of evaluating a rule set against one path.
type Decision int

const (
	// Undecided means no pattern matched; defer to a broader rule set.
	Undecided Decision = iota
	// Include means a negation pattern re-included the path.
	Include
	// Exclude means the path matched an exclusion pattern.
	Exclude
)

// String returns a debug representation of a decision.
func (d Decision) String() string {
	switch d {
	case Include:
		return "include"
	case Exclude:
		return "exclude"
	default:
		return "undecided"
	}
}

// RuleSet is an ordered collection of patterns scoped to an origin
// directory. Later patterns override earlier ones on conflicting
// matches, mirroring standard ignore-file semantics.
type RuleSet struct {
	origin   string
	patterns []*Pattern
}

// NewRuleSet creates an empty rule set. origin is the slash-separated
// directory the rules apply beneath, relative to the source root;
// empty for global rule sets.
func NewRuleSet(origin string) *RuleSet {
	return &RuleSet{origin: origin}
}

// Origin returns the directory the rules apply beneath.
func (rs *RuleSet) Origin() string { return rs.origin }

// Len returns the number of patterns in the rule set.
func (rs *RuleSet) Len() int { return len(rs.patterns) }

// Add appends a pattern, preserving insertion order.
func (rs *RuleSet) Add(p *Pattern) {
	rs.patterns = append(rs.patterns, p)
}

// AddLine parses one line of ignore text and appends the resulting
// pattern. Blank lines and comments are dropped silently.
func (rs *RuleSet) AddLine(line string) {
	if p, ok := ParsePattern(line); ok {
		rs.Add(p)
	}
}

// Resolve evaluates the rule set against a path relative to its
// origin. Patterns are applied in insertion order: each match sets the
// running decision to Exclude, or Include for negated patterns, so the
// last matching pattern wins. If nothing matches the result is
// Undecided and a broader rule set decides.
func (rs *RuleSet) Resolve(rel string, isDir bool) Decision {
	decision := Undecided
	for _, p := range rs.patterns {
		if !p.Matches(rel, isDir) {
			continue
		}
		if p.Negated() {
			decision = Include
		} else {
			decision = Exclude
		}
	}
	return decision
}
