package graph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned by [Graph.AddEdge] when either endpoint
	// does not exist in the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrSelfLoop is returned by [Graph.AddEdge] for an edge from a node to
	// itself. Dominance derivations assume simple graphs.
	ErrSelfLoop = errors.New("self-loops are not allowed")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when the edge already
	// exists (in either direction).
	ErrDuplicateEdge = errors.New("duplicate edge")
)

// Metadata stores arbitrary key-value pairs attached to nodes.
// Metadata maps are never nil - they are automatically initialized to empty
// maps when needed.
type Metadata map[string]any

// Node represents a vertex in an undirected network.
//
// The zero value is not usable - ID must be set before adding to a Graph.
type Node struct {
	ID   string   // Unique identifier (also used as display label)
	Meta Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// Edge represents an undirected connection between two nodes.
// The endpoint order carries no meaning.
type Edge struct {
	A string // One endpoint node ID
	B string // Other endpoint node ID
}

// Graph is a simple undirected graph: no self-loops, no parallel edges.
// It is the input side of dominance derivation - node order is fixed at
// insertion time and determines element indices in derived partial orders.
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	order    []string // node IDs in insertion order
	nodes    map[string]*Node
	edges    []Edge
	adjacent map[string]map[string]bool
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		adjacent: make(map[string]map[string]bool),
	}
}

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID if
// a node with the same ID already exists. The node's Meta field is
// automatically initialized to an empty map if nil.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	g.adjacent[node.ID] = make(map[string]bool)
	return nil
}

// AddEdge adds an undirected edge between two existing nodes.
// Returns ErrUnknownNode if either endpoint doesn't exist, ErrSelfLoop for
// an edge from a node to itself, or ErrDuplicateEdge when the pair is
// already connected.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.A]; !ok {
		return ErrUnknownNode
	}
	if _, ok := g.nodes[e.B]; !ok {
		return ErrUnknownNode
	}
	if e.A == e.B {
		return ErrSelfLoop
	}
	if g.adjacent[e.A][e.B] {
		return ErrDuplicateEdge
	}
	g.edges = append(g.edges, e)
	g.adjacent[e.A][e.B] = true
	g.adjacent[e.B][e.A] = true
	return nil
}

// Node returns the node with the given ID and true, or nil and false if not
// found.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NodeIDs returns all node IDs in insertion order. This order defines the
// element indices of partial orders derived from the graph.
func (g *Graph) NodeIDs() []string { return slices.Clone(g.order) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Adjacent reports whether nodes a and b are connected by an edge.
func (g *Graph) Adjacent(a, b string) bool { return g.adjacent[a][b] }

// Neighbors returns the IDs of nodes adjacent to id, in insertion order.
// Returns nil if the node has no neighbors or doesn't exist.
func (g *Graph) Neighbors(id string) []string {
	adj := g.adjacent[id]
	if len(adj) == 0 {
		return nil
	}
	var out []string
	for _, other := range g.order {
		if adj[other] {
			out = append(out, other)
		}
	}
	return out
}

// Degree returns the number of edges incident to the node.
// Returns 0 if the node doesn't exist.
func (g *Graph) Degree(id string) int { return len(g.adjacent[id]) }

// Distances returns BFS shortest-path distances from the given node to every
// node in the graph, keyed by node ID. Unreachable nodes get distance -1.
func (g *Graph) Distances(from string) map[string]int {
	dist := make(map[string]int, len(g.nodes))
	for id := range g.nodes {
		dist[id] = -1
	}
	if _, ok := g.nodes[from]; !ok {
		return dist
	}

	dist[from] = 0
	queue := []string{from}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, next := range g.order {
			if g.adjacent[curr][next] && dist[next] < 0 {
				dist[next] = dist[curr] + 1
				queue = append(queue, next)
			}
		}
	}
	return dist
}
