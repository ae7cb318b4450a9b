// Package rules resolves which logging rule applies to a module path.
//
// A Table holds one default rule plus an ordered list of rules, each keyed by
// a Selector. A module path is a string of segments joined by a separator
// ("::" unless configured otherwise), for example "net::tls::handshake".
//
// # Selectors
//
//   - Default - the fallback rule, exactly one per table
//   - Exact("net::tls") - matches the path verbatim
//   - Prefix("net") - matches "net" and every path below it ("net::tls", ...),
//     but never "network" since prefixes align on segment boundaries
//   - Pattern(`net::.*::read`) - a regular expression matched against the whole path
//
// # Resolution order
//
// The most specific rule wins:
//
//  1. an exact rule
//  2. the longest matching prefix rule (last registered wins on equal length)
//  3. the first pattern rule, in registration order, matching the full path
//  4. the default rule
//
// The selected rule's minimum level decides whether a record is allowed, and
// its Format is returned as is; fields are never inherited from less specific
// rules.
//
// # Building and publishing
//
// Tables are assembled with a Builder and are immutable once built. A Store
// publishes the current table through an atomic pointer so readers on any
// goroutine always see one complete table:
//
//	b := rules.NewBuilder()
//	_ = b.Register(rules.Default(), level.Warn, rules.Format{})
//	_ = b.Register(rules.Prefix("net"), level.Debug, rules.Format{ShowTimestamp: true})
//	if err := b.RegisterPattern(`app::.*::db`, level.Trace, rules.Format{}); err != nil {
//		// errors.ErrInvalidPattern
//	}
//	store := rules.NewStore(b.Build())
//	res := store.Load().Resolve("net::tls::other", level.Debug) // res.Allowed == true
package rules
