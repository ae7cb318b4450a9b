// Test Type: Unit Test
// Description: Tests for rule registration and module path resolution

package rules_test

import (
	"testing"

	"github.com/arthur-debert/modlog/pkg/errors"
	"github.com/arthur-debert/modlog/pkg/level"
	"github.com/arthur-debert/modlog/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPattern(t *testing.T, expr string) rules.Selector {
	t.Helper()
	sel, err := rules.Pattern(expr)
	require.NoError(t, err)
	return sel
}

func TestResolve_DefaultOnly(t *testing.T) {
	b := rules.NewBuilder()
	f := rules.Format{ShowTimestamp: false, Color: true}
	require.NoError(t, b.Register(rules.Default(), level.Warn, f))
	table := b.Build()

	for _, path := range []string{"", "main", "net::tls", "a::b::c::d"} {
		for _, lvl := range level.All {
			res := table.Resolve(path, lvl)
			assert.Equal(t, rules.KindDefault, res.Kind, path)
			assert.Equal(t, f, res.Format, path)
			assert.Equal(t, lvl >= level.Warn, res.Allowed, "%s at %s", path, lvl)
		}
	}
}

func TestResolve_StockDefault(t *testing.T) {
	table := rules.NewBuilder().Build()

	res := table.Resolve("anything", level.Info)
	assert.True(t, res.Allowed)
	assert.True(t, res.Format.ShowTimestamp)
	assert.False(t, res.Format.Color)
	assert.False(t, table.Resolve("anything", level.Debug).Allowed)
}

func TestResolve_ExactBeatsPrefixAndPattern(t *testing.T) {
	b := rules.NewBuilder()
	require.NoError(t, b.Register(rules.Prefix("net::tls"), level.Error, rules.Format{}))
	require.NoError(t, b.Register(mustPattern(t, `net::.*`), level.Warn, rules.Format{}))
	require.NoError(t, b.Register(rules.Exact("net::tls"), level.Trace, rules.Format{Color: true}))
	table := b.Build()

	res := table.Resolve("net::tls", level.Trace)
	assert.Equal(t, rules.KindExact, res.Kind)
	assert.True(t, res.Allowed)
	assert.True(t, res.Format.Color)

	// Below the exact path the prefix takes over
	res = table.Resolve("net::tls::record", level.Warn)
	assert.Equal(t, rules.KindPrefix, res.Kind)
	assert.False(t, res.Allowed)
}

func TestResolve_ExactDoesNotCoverChildren(t *testing.T) {
	b := rules.NewBuilder()
	require.NoError(t, b.Register(rules.Exact("app"), level.Trace, rules.Format{}))
	table := b.Build()

	assert.Equal(t, rules.KindExact, table.Resolve("app", level.Trace).Kind)
	assert.Equal(t, rules.KindDefault, table.Resolve("app::db", level.Trace).Kind)
}

func TestResolve_LongestPrefixWins(t *testing.T) {
	tests := []struct {
		name  string
		order []string
	}{
		{"short_first", []string{"a", "a::b"}},
		{"long_first", []string{"a::b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := rules.NewBuilder()
			for _, p := range tt.order {
				lvl := level.Error
				if p == "a::b" {
					lvl = level.Debug
				}
				require.NoError(t, b.Register(rules.Prefix(p), lvl, rules.Format{}))
			}
			table := b.Build()

			rule := table.Lookup("a::b::c")
			assert.Equal(t, "a::b", rule.Selector.Value)
			assert.True(t, table.Resolve("a::b::c", level.Debug).Allowed)
			assert.Equal(t, "a", table.Lookup("a::x").Selector.Value)
		})
	}
}

func TestResolve_PrefixSegmentBoundary(t *testing.T) {
	b := rules.NewBuilder()
	require.NoError(t, b.Register(rules.Prefix("ab"), level.Trace, rules.Format{}))
	require.NoError(t, b.Register(rules.Prefix("a::b"), level.Trace, rules.Format{}))
	table := b.Build()

	tests := []struct {
		path string
		kind rules.Kind
	}{
		{"abc", rules.KindDefault},
		{"ab", rules.KindPrefix},
		{"ab::c", rules.KindPrefix},
		{"a::b::c", rules.KindPrefix},
		{"a::bc", rules.KindDefault},
		{"a::b", rules.KindPrefix},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.kind, table.Resolve(tt.path, level.Trace).Kind)
		})
	}
}

func TestResolve_CustomSeparator(t *testing.T) {
	b := rules.NewBuilder(rules.WithSeparator("/"))
	require.NoError(t, b.Register(rules.Prefix("github.com/acme"), level.Debug, rules.Format{}))
	table := b.Build()

	assert.Equal(t, "/", table.Separator())
	assert.Equal(t, rules.KindPrefix, table.Resolve("github.com/acme/api", level.Debug).Kind)
	assert.Equal(t, rules.KindDefault, table.Resolve("github.com/acmecorp", level.Debug).Kind)
	assert.Equal(t, rules.KindDefault, table.Resolve("github.com/acme::api", level.Debug).Kind)
}

func TestResolve_Patterns(t *testing.T) {
	b := rules.NewBuilder()
	require.NoError(t, b.RegisterPattern(`.*::db`, level.Trace, rules.Format{Color: true}))
	require.NoError(t, b.RegisterPattern(`app::.*`, level.Error, rules.Format{}))
	table := b.Build()

	t.Run("first_registered_wins", func(t *testing.T) {
		res := table.Resolve("app::db", level.Trace)
		assert.Equal(t, rules.KindPattern, res.Kind)
		assert.Equal(t, `.*::db`, res.Rule.Selector.Value)
		assert.True(t, res.Allowed)
	})

	t.Run("full_path_match", func(t *testing.T) {
		// `.*::db` must not match by substring
		res := table.Resolve("svc::db::pool", level.Trace)
		assert.Equal(t, rules.KindDefault, res.Kind)
	})

	t.Run("second_pattern", func(t *testing.T) {
		res := table.Resolve("app::http", level.Warn)
		assert.Equal(t, `app::.*`, res.Rule.Selector.Value)
		assert.False(t, res.Allowed)
	})

	t.Run("prefix_beats_pattern", func(t *testing.T) {
		b := rules.NewBuilder()
		require.NoError(t, b.RegisterPattern(`app::.*`, level.Error, rules.Format{}))
		require.NoError(t, b.Register(rules.Prefix("app"), level.Trace, rules.Format{}))
		assert.Equal(t, rules.KindPrefix, b.Build().Resolve("app::http", level.Trace).Kind)
	})
}

func TestResolve_SeverityOrdering(t *testing.T) {
	b := rules.NewBuilder()
	require.NoError(t, b.Register(rules.Exact("svc"), level.Warn, rules.Format{}))
	table := b.Build()

	assert.False(t, table.Resolve("svc", level.Trace).Allowed)
	assert.False(t, table.Resolve("svc", level.Debug).Allowed)
	assert.False(t, table.Resolve("svc", level.Info).Allowed)
	assert.True(t, table.Resolve("svc", level.Warn).Allowed)
	assert.True(t, table.Resolve("svc", level.Error).Allowed)
}

func TestResolve_FormatNotInherited(t *testing.T) {
	b := rules.NewBuilder()
	require.NoError(t, b.Register(rules.Default(), level.Info, rules.Format{ShowTimestamp: true, Color: true}))
	require.NoError(t, b.Register(rules.Prefix("quiet"), level.Info, rules.Format{}))
	table := b.Build()

	assert.Equal(t, rules.Format{}, table.Resolve("quiet::x", level.Info).Format)
}

func TestResolve_EmptyPath(t *testing.T) {
	b := rules.NewBuilder()
	require.NoError(t, b.Register(rules.Prefix("net"), level.Trace, rules.Format{}))
	table := b.Build()
	assert.Equal(t, rules.KindDefault, table.Resolve("", level.Info).Kind)

	require.NoError(t, b.Register(rules.Prefix(""), level.Error, rules.Format{}))
	table = b.Build()
	assert.Equal(t, rules.KindPrefix, table.Resolve("", level.Info).Kind)
	assert.Equal(t, "net", table.Lookup("net::x").Selector.Value)
	assert.Equal(t, rules.KindDefault, table.Resolve("other", level.Info).Kind)
	assert.Equal(t, rules.KindDefault, table.Resolve("::leading", level.Info).Kind)

	b = rules.NewBuilder()
	require.NoError(t, b.Register(rules.Exact(""), level.Error, rules.Format{}))
	assert.Equal(t, rules.KindExact, b.Build().Resolve("", level.Info).Kind)

	// Patterns that match nothing still leave the empty path to the default
	b = rules.NewBuilder()
	require.NoError(t, b.Register(rules.Default(), level.Warn, rules.Format{}))
	for _, expr := range []string{`.*`, `a?`, `(x)*`} {
		require.NoError(t, b.RegisterPattern(expr, level.Trace, rules.Format{}))
	}
	table = b.Build()
	res := table.Resolve("", level.Debug)
	assert.Equal(t, rules.KindDefault, res.Kind)
	assert.False(t, res.Allowed)
	assert.Equal(t, rules.KindPattern, table.Resolve("app", level.Debug).Kind)

	require.NoError(t, b.RegisterPattern(``, level.Trace, rules.Format{}))
	res = b.Build().Resolve("", level.Debug)
	assert.Equal(t, rules.KindPattern, res.Kind)
	assert.True(t, res.Allowed)
}

func TestRegister_SecondDefaultReplaces(t *testing.T) {
	b := rules.NewBuilder()
	require.NoError(t, b.Register(rules.Default(), level.Info, rules.Format{}))
	require.NoError(t, b.Register(rules.Default(), level.Error, rules.Format{}))
	table := b.Build()

	assert.Equal(t, level.Error, table.Default().MinLevel)
	assert.Equal(t, 0, table.Len())
	assert.False(t, table.Resolve("unmatched", level.Warn).Allowed)
	assert.True(t, table.Resolve("unmatched", level.Error).Allowed)
}

func TestRegister_SameSelectorReplacesInPlace(t *testing.T) {
	b := rules.NewBuilder()
	require.NoError(t, b.RegisterPattern(`a::.*`, level.Error, rules.Format{}))
	require.NoError(t, b.RegisterPattern(`.*::x`, level.Info, rules.Format{}))
	require.NoError(t, b.RegisterPattern(`a::.*`, level.Trace, rules.Format{}))
	require.NoError(t, b.Register(rules.Prefix("a"), level.Warn, rules.Format{}))
	require.NoError(t, b.Register(rules.Exact("a"), level.Warn, rules.Format{}))
	table := b.Build()

	got := table.Rules()
	require.Len(t, got, 4)
	assert.Equal(t, `a::.*`, got[0].Selector.Value)
	assert.Equal(t, level.Trace, got[0].MinLevel)

	// The replaced pattern keeps its slot ahead of `.*::x`
	b2 := rules.NewBuilder()
	require.NoError(t, b2.RegisterPattern(`a::.*`, level.Error, rules.Format{}))
	require.NoError(t, b2.RegisterPattern(`.*::x`, level.Info, rules.Format{}))
	require.NoError(t, b2.RegisterPattern(`a::.*`, level.Trace, rules.Format{}))
	assert.Equal(t, level.Trace, b2.Build().Lookup("a::x").MinLevel)
}

func TestRegister_InvalidPattern(t *testing.T) {
	b := rules.NewBuilder()
	require.NoError(t, b.Register(rules.Prefix("net"), level.Debug, rules.Format{}))

	err := b.RegisterPattern(`net::[`, level.Trace, rules.Format{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPattern))
	assert.Equal(t, `net::[`, errors.GetErrorDetails(err)["pattern"])

	// A hand-built selector that skipped Pattern() is compiled at registration
	err = b.Register(rules.Selector{Kind: rules.KindPattern, Value: `(unbalanced`}, level.Trace, rules.Format{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPattern))

	_, err = rules.Pattern(`[a-`)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPattern))

	table := b.Build()
	require.Equal(t, 1, table.Len())
	assert.Equal(t, rules.KindPrefix, table.Rules()[0].Selector.Kind)
}

func TestRegister_InvalidLevel(t *testing.T) {
	b := rules.NewBuilder()
	err := b.Register(rules.Exact("x"), level.Level(17), rules.Format{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidLevel))
	assert.Equal(t, 0, b.Build().Len())
}

func TestBuild_Snapshot(t *testing.T) {
	b := rules.NewBuilder()
	require.NoError(t, b.Register(rules.Exact("x"), level.Trace, rules.Format{}))
	table := b.Build()

	require.NoError(t, b.Register(rules.Exact("y"), level.Trace, rules.Format{}))
	require.NoError(t, b.Register(rules.Exact("x"), level.Error, rules.Format{}))

	assert.Equal(t, 1, table.Len())
	assert.Equal(t, level.Trace, table.Lookup("x").MinLevel)
	assert.Equal(t, rules.KindDefault, table.Resolve("y", level.Trace).Kind)

	// Mutating the returned slice does not reach the table
	rs := table.Rules()
	rs[0].MinLevel = level.Error
	assert.Equal(t, level.Trace, table.Lookup("x").MinLevel)
}

func TestThreshold(t *testing.T) {
	b := rules.NewBuilder()
	require.NoError(t, b.Register(rules.Default(), level.Warn, rules.Format{}))
	assert.Equal(t, level.Warn, b.Build().Threshold())

	require.NoError(t, b.Register(rules.Prefix("net"), level.Debug, rules.Format{}))
	require.NoError(t, b.Register(rules.Exact("db"), level.Error, rules.Format{}))
	assert.Equal(t, level.Debug, b.Build().Threshold())
}

func TestResolve_Scenario(t *testing.T) {
	b := rules.NewBuilder()
	require.NoError(t, b.Register(rules.Default(), level.Warn, rules.Format{}))
	require.NoError(t, b.Register(rules.Prefix("net"), level.Debug, rules.Format{}))
	require.NoError(t, b.Register(rules.Exact("net::tls::handshake"), level.Trace, rules.Format{}))
	table := b.Build()

	res := table.Resolve("net::tls::handshake", level.Trace)
	assert.True(t, res.Allowed)
	assert.Equal(t, rules.KindExact, res.Kind)

	res = table.Resolve("net::tls::other", level.Debug)
	assert.True(t, res.Allowed)
	assert.Equal(t, rules.KindPrefix, res.Kind)

	res = table.Resolve("app::main", level.Info)
	assert.False(t, res.Allowed)
	assert.Equal(t, rules.KindDefault, res.Kind)
}
