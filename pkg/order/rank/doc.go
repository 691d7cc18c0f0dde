// Package rank derives probabilistic rank statistics from the linear
// extensions of a partial order.
//
// # Overview
//
// When a dominance relation leaves pairs incomparable, no single ranking is
// canonical - but the set of all order-respecting rankings still carries
// exact probabilistic information. This package folds that set into four
// summaries: the rank probability matrix, the relative rank matrix, expected
// ranks, and rank spread (standard deviation). It also computes rank
// intervals, a far cheaper bound that stays available when full enumeration
// does not.
//
// # Basic Usage
//
//	res, err := rank.Compute(ctx, p)
//	if err != nil {
//	    // errors.ErrCodeIntractable: fall back to intervals
//	    ivs := rank.Intervals(p)
//	    ...
//	}
//	fmt.Println(res.ExpectedRank)
//
// Statistics are computed in one streaming pass over the enumeration, so
// memory stays O(n²) regardless of how many extensions exist.
package rank
