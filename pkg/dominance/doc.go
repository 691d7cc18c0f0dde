// Package dominance derives partial orders from networks.
//
// # Overview
//
// A dominance relation states that node i is at most as central as node j,
// whatever centrality is taken to mean within some family of indices. Two
// derivations are provided:
//
//   - [NeighborhoodInclusion]: i ≤ j iff every neighbor of i lies in j's
//     closed neighborhood. Every standard centrality index preserves this
//     relation.
//   - [DistanceDominance]: i ≤ j iff j's sorted shortest-path distance
//     profile is componentwise no larger than i's. Preserved by
//     distance-based indices such as closeness.
//
// Both return a labeled [order.PartialOrder] whose element indices follow
// the graph's node insertion order.
//
// # Ties
//
// Derived relations are preorders: structurally equivalent nodes dominate
// each other, which violates the antisymmetry the partial-order core
// requires. Such pairs are collapsed to incomparability rather than given an
// arbitrary orientation - the tie carries no ranking information, and an
// invented direction would pin both nodes' ranks falsely. Callers that need
// to detect equivalences can compare neighborhoods or distance profiles
// directly.
//
// [order.PartialOrder]: github.com/posetrank/posetrank/pkg/order
package dominance
