// Package order represents partial orders over finite element sets as
// boolean comparability matrices.
//
// # Overview
//
// Posetrank analyzes node dominance in networks: a relation where i ≤ j
// means no admissible centrality notion ranks i above j. Such a relation is
// a partial order, and this package is its in-memory representation. The
// matrix is the only input the rest of the system needs - how it was derived
// (neighborhood inclusion, distance dominance, or any other monotone test)
// is the business of the dominance package or of external callers.
//
// # Basic Usage
//
// Create a partial order with [New] or [NewLabeled] from an n×n matrix where
// leq[i][j] reports that i is dominated by j:
//
//	leq := [][]bool{
//	    {true, true, true},
//	    {false, true, false},
//	    {false, false, true},
//	}
//	p, err := order.New(leq)
//
// Query pairs with [PartialOrder.Compare] and [PartialOrder.Leq], and
// measure how far the relation is from a total order with
// [PartialOrder.ComparableFraction].
//
// # Preconditions
//
// Reflexivity and antisymmetry are validated at construction and violations
// are fatal. Transitive closure is an input precondition, not computed here;
// missing closure entries are recorded as [PartialOrder.Warnings] so that
// exploratory callers with approximate relations can decide for themselves.
//
// # Related Packages
//
// The [extension] subpackage enumerates and counts the linear extensions of
// a partial order. The [rank] subpackage folds those extensions into rank
// probabilities, expected ranks, and rank intervals.
//
// [extension]: github.com/posetrank/posetrank/pkg/order/extension
// [rank]: github.com/posetrank/posetrank/pkg/order/rank
package order
