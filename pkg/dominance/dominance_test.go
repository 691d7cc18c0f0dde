package dominance

import (
	"testing"

	"github.com/posetrank/posetrank/pkg/graph"
	"github.com/posetrank/posetrank/pkg/order"
)

func build(t *testing.T, nodes []string, edges [][2]string) *graph.Graph {
	t.Helper()
	g := graph.New()
	for _, id := range nodes {
		if err := g.AddNode(graph.Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(graph.Edge{A: e[0], B: e[1]}); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

// pathGraph is a-b-c-d: the endpoints are dominated by the middle nodes.
func pathGraph(t *testing.T) *graph.Graph {
	return build(t, []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}})
}

func checkRelation(t *testing.T, p *order.PartialOrder, want map[[2]string]order.Comparability) {
	t.Helper()
	idx := make(map[string]int)
	for i, l := range p.Labels() {
		idx[l] = i
	}
	for pair, cmp := range want {
		if got := p.Compare(idx[pair[0]], idx[pair[1]]); got != cmp {
			t.Errorf("Compare(%s, %s) = %v, want %v", pair[0], pair[1], got, cmp)
		}
	}
}

func TestNeighborhoodInclusionPath(t *testing.T) {
	p, err := NeighborhoodInclusion(pathGraph(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Warnings()) != 0 {
		t.Errorf("Warnings() = %v, want none", p.Warnings())
	}

	checkRelation(t, p, map[[2]string]order.Comparability{
		{"a", "b"}: order.LessEqual,
		{"a", "c"}: order.LessEqual,
		{"d", "b"}: order.LessEqual,
		{"d", "c"}: order.LessEqual,
		{"b", "c"}: order.Incomparable,
		{"a", "d"}: order.Incomparable,
		{"b", "a"}: order.GreaterEqual,
	})
}

func TestNeighborhoodInclusionStar(t *testing.T) {
	// Star: the center dominates every leaf; leaves are structurally
	// equivalent, so their mutual dominance collapses to incomparability.
	g := build(t, []string{"c", "l1", "l2", "l3"},
		[][2]string{{"c", "l1"}, {"c", "l2"}, {"c", "l3"}})
	p, err := NeighborhoodInclusion(g)
	if err != nil {
		t.Fatal(err)
	}

	checkRelation(t, p, map[[2]string]order.Comparability{
		{"l1", "c"}:  order.LessEqual,
		{"l2", "c"}:  order.LessEqual,
		{"l3", "c"}:  order.LessEqual,
		{"l1", "l2"}: order.Incomparable,
		{"l2", "l3"}: order.Incomparable,
	})
}

func TestNeighborhoodInclusionComplete(t *testing.T) {
	// In a complete graph every node dominates every other; all ties drop
	// and the derived order is an antichain.
	g := build(t, []string{"x", "y", "z"},
		[][2]string{{"x", "y"}, {"y", "z"}, {"x", "z"}})
	p, err := NeighborhoodInclusion(g)
	if err != nil {
		t.Fatal(err)
	}

	frac, err := p.ComparableFraction()
	if err != nil {
		t.Fatal(err)
	}
	if frac != 0 {
		t.Errorf("ComparableFraction() = %v, want 0", frac)
	}
}

func TestDistanceDominancePath(t *testing.T) {
	p, err := DistanceDominance(pathGraph(t))
	if err != nil {
		t.Fatal(err)
	}

	// Distance profiles: a,d → [1 2 3]; b,c → [1 1 2]. Middle nodes
	// dominate endpoints; equal profiles are ties and drop.
	checkRelation(t, p, map[[2]string]order.Comparability{
		{"a", "b"}: order.LessEqual,
		{"a", "c"}: order.LessEqual,
		{"d", "b"}: order.LessEqual,
		{"a", "d"}: order.Incomparable,
		{"b", "c"}: order.Incomparable,
	})
}

func TestDistanceDominanceDisconnected(t *testing.T) {
	// "solo" reaches nobody, so everyone with reachable peers dominates it
	// only if their profile is componentwise smaller - and solo dominates
	// nobody with finite distances.
	g := build(t, []string{"a", "b", "solo"}, [][2]string{{"a", "b"}})
	p, err := DistanceDominance(g)
	if err != nil {
		t.Fatal(err)
	}

	checkRelation(t, p, map[[2]string]order.Comparability{
		{"solo", "a"}: order.LessEqual,
		{"a", "b"}:    order.Incomparable,
	})
}

func TestDerivedOrdersAreValidInput(t *testing.T) {
	// End to end: a derived order feeds straight into the core without
	// warnings for a twin-free graph.
	g := build(t, []string{"a", "b", "c", "d", "e"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"c", "e"}, {"d", "e"}})

	for name, derive := range map[string]func(*graph.Graph) (*order.PartialOrder, error){
		"neighborhood": NeighborhoodInclusion,
		"distance":     DistanceDominance,
	} {
		t.Run(name, func(t *testing.T) {
			p, err := derive(g)
			if err != nil {
				t.Fatal(err)
			}
			if p.N() != 5 {
				t.Errorf("N() = %d, want 5", p.N())
			}
			if len(p.Warnings()) != 0 {
				t.Errorf("Warnings() = %v, want none", p.Warnings())
			}
		})
	}
}
