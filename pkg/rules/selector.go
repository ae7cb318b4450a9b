package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/modlog/pkg/errors"
)

// Kind identifies how a selector matches module paths
type Kind int

const (
	// KindDefault is the fallback selector
	KindDefault Kind = iota
	// KindExact matches one module path verbatim
	KindExact
	// KindPrefix matches a module path and everything below it
	KindPrefix
	// KindPattern matches module paths against a regular expression
	KindPattern
)

// String returns the name used in configuration files
func (k Kind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindExact:
		return "exact"
	case KindPrefix:
		return "prefix"
	case KindPattern:
		return "pattern"
	default:
		return "unknown"
	}
}

// ParseKind parses a selector kind name
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "default":
		return KindDefault, nil
	case "exact":
		return KindExact, nil
	case "prefix", "":
		return KindPrefix, nil
	case "pattern", "regex", "regexp":
		return KindPattern, nil
	default:
		return KindDefault, errors.Newf(errors.ErrInvalidInput, "unknown selector kind: %q", s)
	}
}

// Selector is the matching key of a rule
type Selector struct {
	Kind  Kind
	Value string

	re *regexp.Regexp
}

// Default returns the fallback selector
func Default() Selector {
	return Selector{Kind: KindDefault}
}

// Exact returns a selector matching module verbatim
func Exact(module string) Selector {
	return Selector{Kind: KindExact, Value: module}
}

// Prefix returns a selector matching module and all paths below it
func Prefix(module string) Selector {
	return Selector{Kind: KindPrefix, Value: module}
}

// Pattern compiles expr into a selector matched against the whole module path
func Pattern(expr string) (Selector, error) {
	re, err := compilePattern(expr)
	if err != nil {
		return Selector{}, err
	}
	return Selector{Kind: KindPattern, Value: expr, re: re}, nil
}

// NewSelector builds a selector of the given kind. Pattern values are compiled.
func NewSelector(kind Kind, value string) (Selector, error) {
	switch kind {
	case KindDefault:
		return Default(), nil
	case KindExact:
		return Exact(value), nil
	case KindPrefix:
		return Prefix(value), nil
	case KindPattern:
		return Pattern(value)
	default:
		return Selector{}, errors.Newf(errors.ErrInvalidInput, "unknown selector kind: %d", kind)
	}
}

// String renders the selector as kind:value
func (s Selector) String() string {
	if s.Kind == KindDefault {
		return "default"
	}
	return fmt.Sprintf("%s:%s", s.Kind, s.Value)
}

// same reports whether two selectors address the same rule slot
func (s Selector) same(o Selector) bool {
	return s.Kind == o.Kind && s.Value == o.Value
}

// compilePattern anchors expr so it has to match the full module path
func compilePattern(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidPattern, "invalid pattern %q", expr).
			WithDetail("pattern", expr)
	}
	return re, nil
}
