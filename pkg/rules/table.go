package rules

import (
	"strings"

	"github.com/arthur-debert/modlog/pkg/errors"
	"github.com/arthur-debert/modlog/pkg/level"
	"github.com/arthur-debert/modlog/pkg/logging"
	"github.com/rs/zerolog"
)

// Builder assembles a Table. It is not safe for concurrent use; build the
// table first, then publish it.
type Builder struct {
	sep   string
	def   Rule
	rules []Rule

	logger zerolog.Logger
}

// BuilderOption configures a Builder
type BuilderOption func(*Builder)

// WithSeparator sets the module path segment separator. An empty separator
// keeps DefaultSeparator.
func WithSeparator(sep string) BuilderOption {
	return func(b *Builder) {
		if sep != "" {
			b.sep = sep
		}
	}
}

// NewBuilder creates a builder holding only the stock default rule: Info with
// timestamps and no colors.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		sep: DefaultSeparator,
		def: Rule{
			Selector: Default(),
			MinLevel: level.Info,
			Format:   Format{ShowTimestamp: true},
		},
		logger: logging.GetLogger("rules.builder"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register adds a rule. A default selector replaces the default rule. Any
// other selector already present replaces the existing rule in its slot, so a
// selector never appears twice. Pattern selectors that fail to compile are
// rejected with ErrInvalidPattern and leave the builder untouched.
func (b *Builder) Register(sel Selector, minLevel level.Level, f Format) error {
	if !minLevel.Valid() {
		return errors.Newf(errors.ErrInvalidLevel, "invalid minimum level %d for %s", int8(minLevel), sel)
	}

	switch sel.Kind {
	case KindDefault:
		b.def = Rule{Selector: Default(), MinLevel: minLevel, Format: f}
		return nil
	case KindExact, KindPrefix:
		sel.re = nil
	case KindPattern:
		if sel.re == nil {
			re, err := compilePattern(sel.Value)
			if err != nil {
				return err
			}
			sel.re = re
		}
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown selector kind: %d", sel.Kind)
	}

	rule := Rule{Selector: sel, MinLevel: minLevel, Format: f}
	for i := range b.rules {
		if b.rules[i].Selector.same(sel) {
			b.logger.Debug().Str("selector", sel.String()).Msg("Replacing rule")
			b.rules[i] = rule
			return nil
		}
	}
	b.rules = append(b.rules, rule)
	return nil
}

// RegisterPattern compiles expr and registers it as a pattern rule
func (b *Builder) RegisterPattern(expr string, minLevel level.Level, f Format) error {
	sel, err := Pattern(expr)
	if err != nil {
		return err
	}
	return b.Register(sel, minLevel, f)
}

// Build snapshots the builder into an immutable Table
func (b *Builder) Build() *Table {
	t := &Table{
		sep:   b.sep,
		def:   b.def,
		rules: make([]Rule, len(b.rules)),
		exact: make(map[string]int),
	}
	copy(t.rules, b.rules)

	t.threshold = t.def.MinLevel
	for i, r := range t.rules {
		if r.MinLevel < t.threshold {
			t.threshold = r.MinLevel
		}
		switch r.Selector.Kind {
		case KindExact:
			t.exact[r.Selector.Value] = i
		case KindPrefix:
			t.prefixes = append(t.prefixes, i)
		case KindPattern:
			t.patterns = append(t.patterns, i)
		}
	}
	return t
}

// Table is an immutable set of rules. All methods are safe for concurrent use.
type Table struct {
	sep   string
	def   Rule
	rules []Rule

	exact     map[string]int
	prefixes  []int
	patterns  []int
	threshold level.Level
}

// Resolve selects the rule for modulePath and checks lvl against it. It
// always returns a result; the default rule covers unmatched paths.
func (t *Table) Resolve(modulePath string, lvl level.Level) Resolution {
	rule, kind := t.lookup(modulePath)
	return Resolution{
		Allowed: rule.Allows(lvl),
		Format:  rule.Format,
		Rule:    rule,
		Kind:    kind,
	}
}

// Lookup returns the rule that applies to modulePath
func (t *Table) Lookup(modulePath string) Rule {
	rule, _ := t.lookup(modulePath)
	return rule
}

func (t *Table) lookup(modulePath string) (Rule, Kind) {
	if i, ok := t.exact[modulePath]; ok {
		return t.rules[i], KindExact
	}

	best, bestLen := -1, -1
	for _, i := range t.prefixes {
		p := t.rules[i].Selector.Value
		// >= lets the later registration win on equal length
		if len(p) >= bestLen && t.hasSegmentPrefix(modulePath, p) {
			best, bestLen = i, len(p)
		}
	}
	if best >= 0 {
		return t.rules[best], KindPrefix
	}

	for _, i := range t.patterns {
		sel := t.rules[i].Selector
		// The empty path only belongs to selectors spelled as the empty string
		if modulePath == "" && sel.Value != "" {
			continue
		}
		if sel.re.MatchString(modulePath) {
			return t.rules[i], KindPattern
		}
	}

	return t.def, KindDefault
}

// hasSegmentPrefix reports whether prefix covers path on a segment boundary.
// The empty prefix only covers the empty path.
func (t *Table) hasSegmentPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	if prefix == "" || !strings.HasPrefix(path, prefix) {
		return false
	}
	return strings.HasPrefix(path[len(prefix):], t.sep)
}

// Threshold returns the most verbose minimum level of any rule. Records below
// it are rejected by every rule.
func (t *Table) Threshold() level.Level {
	return t.threshold
}

// Default returns the fallback rule
func (t *Table) Default() Rule {
	return t.def
}

// Rules returns the non-default rules in registration order
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Separator returns the segment separator used for prefix matching
func (t *Table) Separator() string {
	return t.sep
}

// Len returns the number of non-default rules
func (t *Table) Len() int {
	return len(t.rules)
}
