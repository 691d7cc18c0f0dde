package dominance

import (
	"math"
	"sort"

	"github.com/posetrank/posetrank/pkg/graph"
	"github.com/posetrank/posetrank/pkg/order"
)

// NeighborhoodInclusion derives the neighborhood-inclusion partial order
// from g: node i is dominated by node j when N(i) ⊆ N[j], i's neighbors all
// lying in j's closed neighborhood. This is the canonical dominance relation
// for centrality - every common centrality index ranks consistently with it.
//
// Element indices follow g.NodeIDs() insertion order, and node IDs become
// element labels. Structurally equivalent nodes (mutual dominance) are made
// incomparable so the result satisfies antisymmetry; see the package
// documentation.
func NeighborhoodInclusion(g *graph.Graph) (*order.PartialOrder, error) {
	ids := g.NodeIDs()
	n := len(ids)

	leq := make([][]bool, n)
	for i := range leq {
		leq[i] = make([]bool, n)
		leq[i][i] = true
	}
	for i, u := range ids {
		for j, v := range ids {
			if i != j && included(g, u, v) {
				leq[i][j] = true
			}
		}
	}

	dropTies(leq)
	return order.NewLabeled(leq, ids)
}

// included reports whether every neighbor of u lies in v's closed
// neighborhood.
func included(g *graph.Graph, u, v string) bool {
	for _, w := range g.Neighbors(u) {
		if w != v && !g.Adjacent(w, v) {
			return false
		}
	}
	return true
}

// DistanceDominance derives positional dominance under shortest-path
// distance profiles: node i is dominated by node j when j's sorted distance
// vector is componentwise no larger than i's. Unreachable nodes count as
// infinitely distant, so in disconnected graphs a node never dominates one
// with strictly more reachable peers.
//
// Like [NeighborhoodInclusion], mutual dominance (identical profiles) is
// collapsed to incomparability and node IDs become element labels.
func DistanceDominance(g *graph.Graph) (*order.PartialOrder, error) {
	ids := g.NodeIDs()
	n := len(ids)

	profiles := make([][]float64, n)
	for i, id := range ids {
		profiles[i] = distanceProfile(g, id, ids)
	}

	leq := make([][]bool, n)
	for i := range leq {
		leq[i] = make([]bool, n)
		leq[i][i] = true
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j && dominates(profiles[j], profiles[i]) {
				leq[i][j] = true
			}
		}
	}

	dropTies(leq)
	return order.NewLabeled(leq, ids)
}

// distanceProfile returns the sorted distances from id to every other node,
// with unreachable nodes mapped to +Inf.
func distanceProfile(g *graph.Graph, id string, ids []string) []float64 {
	dist := g.Distances(id)
	profile := make([]float64, 0, len(ids)-1)
	for _, other := range ids {
		if other == id {
			continue
		}
		d := float64(dist[other])
		if dist[other] < 0 {
			d = math.Inf(1)
		}
		profile = append(profile, d)
	}
	sort.Float64s(profile)
	return profile
}

// dominates reports whether profile a is componentwise ≤ profile b.
func dominates(a, b []float64) bool {
	for k := range a {
		if a[k] > b[k] {
			return false
		}
	}
	return true
}

// dropTies makes mutually dominating pairs incomparable. Dominance
// derivations are preorders; antisymmetry can fail for structurally
// equivalent nodes, and the partial-order core requires it. Ties only occur
// within equivalence classes, so dropping them cannot break transitivity
// across classes.
func dropTies(leq [][]bool) {
	for i := range leq {
		for j := i + 1; j < len(leq); j++ {
			if leq[i][j] && leq[j][i] {
				leq[i][j] = false
				leq[j][i] = false
			}
		}
	}
}
