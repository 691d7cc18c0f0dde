// Package extension enumerates and counts the linear extensions of a
// partial order.
//
// # Overview
//
// A linear extension is a total ranking of the elements that respects every
// dominance pair of the order. The multiset of all linear extensions is what
// probabilistic centrality rankings are defined over: an element's rank
// probability is the fraction of extensions giving it that rank.
//
// Both operations share one decomposition: repeatedly remove a maximal
// element, assigning it the highest remaining rank, and recurse on the rest.
// [Enumerator.Count] memoizes this recursion on the set of remaining
// elements, which is the difference between factorial blowup and something
// usable; [Enumerator.Enumerate] walks the same tree but yields each
// completed ranking to a visitor instead.
//
// # Basic Usage
//
//	count, err := extension.Count(p)
//
//	err = extension.Enumerate(ctx, p, func(ext []int) bool {
//	    fmt.Println(ext) // element indices, bottom rank first
//	    return true      // false stops early
//	})
//
// # Limits
//
// Counts use math/big because they grow factorially: an antichain of 21
// elements already has 21! ≈ 5×10¹⁹ extensions, past uint64. Enumeration is
// additionally gated by [Enumerator.MaxElements] and an optional step budget
// so that oversized inputs fail fast with a recoverable error instead of
// running unbounded; counting and rank intervals remain available past that
// point.
//
// # Concurrency
//
// Enumerators hold no cross-call state. The memoization cache lives and dies
// with a single invocation, so concurrent calls on the same Enumerator or
// the same PartialOrder are safe.
package extension
