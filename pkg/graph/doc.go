// Package graph provides the simple undirected network type that dominance
// relations are derived from.
//
// # Overview
//
// Posetrank core works on comparability matrices, not networks - but the
// matrices have to come from somewhere. This package holds the minimal graph
// structure the dominance package needs: nodes with stable insertion-order
// indices, simple undirected edges, adjacency and degree queries, and BFS
// distances.
//
// # Basic Usage
//
//	g := graph.New()
//	g.AddNode(graph.Node{ID: "a"})
//	g.AddNode(graph.Node{ID: "b"})
//	g.AddEdge(graph.Edge{A: "a", B: "b"})
//
// Insertion order matters: [Graph.NodeIDs] defines the element indices of
// every partial order derived from the graph, so results can be mapped back
// to node labels.
//
// # Concurrency
//
// Graph instances are not safe for concurrent mutation. Read-only use from
// multiple goroutines is safe once construction is complete.
package graph
