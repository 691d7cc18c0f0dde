package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/posetrank/posetrank/pkg/errors"
	"github.com/posetrank/posetrank/pkg/graph"
	"github.com/posetrank/posetrank/pkg/order"
)

// relationDoc is the JSON wire form of a partial order. Exactly one of Leq
// (full matrix) or Pairs (strict dominance pairs by label) must be present.
type relationDoc struct {
	Labels []string    `json:"labels,omitempty"`
	Leq    [][]bool    `json:"leq,omitempty"`
	Pairs  [][2]string `json:"pairs,omitempty"`
}

// ReadRelation decodes a partial order from r.
//
// Two input forms are accepted:
//
//	{"labels": ["a", "b"], "leq": [[true, true], [false, true]]}
//
//	{"labels": ["a", "b", "c"], "pairs": [["a", "b"], ["a", "c"]]}
//
// The matrix form is passed to the core untouched, so reflexivity and
// antisymmetry are validated but transitivity is the caller's business. The
// pair form lists strict dominance pairs (lower label first); reflexive
// entries are added and the relation is closed transitively before
// construction, which is the friendlier form for hand-written inputs.
//
// ReadRelation returns an INVALID_FORMAT error for malformed JSON, for
// inputs carrying both or neither form, and for pairs naming unknown labels.
func ReadRelation(r io.Reader) (*order.PartialOrder, error) {
	var doc relationDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode relation")
	}

	switch {
	case doc.Leq != nil && doc.Pairs != nil:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"relation carries both a leq matrix and a pair list; supply exactly one")
	case doc.Leq != nil:
		return order.NewLabeled(doc.Leq, doc.Labels)
	case doc.Pairs != nil:
		return relationFromPairs(doc.Labels, doc.Pairs)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"relation carries neither a leq matrix nor a pair list")
	}
}

func relationFromPairs(labels []string, pairs [][2]string) (*order.PartialOrder, error) {
	if len(labels) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"pair form requires an explicit labels list")
	}
	idx := make(map[string]int, len(labels))
	for i, l := range labels {
		if _, dup := idx[l]; dup {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "duplicate label %q", l)
		}
		idx[l] = i
	}

	n := len(labels)
	leq := make([][]bool, n)
	for i := range leq {
		leq[i] = make([]bool, n)
		leq[i][i] = true
	}
	for _, pr := range pairs {
		lo, ok := idx[pr[0]]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "pair references unknown label %q", pr[0])
		}
		hi, ok := idx[pr[1]]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "pair references unknown label %q", pr[1])
		}
		leq[lo][hi] = true
	}

	// Warshall closure so sparse pair lists form a valid transitive input.
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if !leq[i][k] {
				continue
			}
			for j := 0; j < n; j++ {
				if leq[k][j] {
					leq[i][j] = true
				}
			}
		}
	}

	return order.NewLabeled(leq, labels)
}

// ImportRelation reads a JSON relation file at path.
func ImportRelation(path string) (*order.PartialOrder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadRelation(f)
}

// graphDoc is the JSON wire form of a network.
type graphDoc struct {
	Nodes []graphNode `json:"nodes"`
	Edges []graphEdge `json:"edges"`
}

type graphNode struct {
	ID   string         `json:"id"`
	Meta graph.Metadata `json:"meta,omitempty"`
}

type graphEdge struct {
	A string `json:"a"`
	B string `json:"b"`
}

// ReadGraph decodes an undirected network from r.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": "a"}, {"id": "b"}],
//	  "edges": [{"a": "a", "b": "b"}]
//	}
//
// Node insertion order is preserved and defines the element indices of any
// partial order later derived from the graph. Errors are wrapped with
// context describing which node or edge caused the problem.
func ReadGraph(r io.Reader) (*graph.Graph, error) {
	var doc graphDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph")
	}

	g := graph.New()
	for _, n := range doc.Nodes {
		if err := g.AddNode(graph.Node{ID: n.ID, Meta: n.Meta}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "node %s", n.ID)
		}
	}
	for _, e := range doc.Edges {
		if err := g.AddEdge(graph.Edge{A: e.A, B: e.B}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "edge %s-%s", e.A, e.B)
		}
	}
	return g, nil
}

// ImportGraph reads a JSON graph file at path.
func ImportGraph(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadGraph(f)
}
