package rules

import "github.com/arthur-debert/modlog/pkg/level"

// DefaultSeparator joins module path segments
const DefaultSeparator = "::"

// Format holds the per-rule formatting options
type Format struct {
	ShowTimestamp bool // Prefix lines with the wall clock time
	Color         bool // Colorize lines by severity
}

// Rule pairs a selector with the minimum level it lets through
type Rule struct {
	Selector Selector
	MinLevel level.Level
	Format   Format
}

// Allows reports whether a record at lvl passes the rule
func (r Rule) Allows(lvl level.Level) bool {
	return lvl >= r.MinLevel
}

// Resolution is the outcome of resolving a module path at a level
type Resolution struct {
	Allowed bool
	Format  Format

	// Rule is the rule that was selected, Kind how it was selected
	Rule Rule
	Kind Kind
}
