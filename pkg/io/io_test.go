package io

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/posetrank/posetrank/pkg/errors"
	"github.com/posetrank/posetrank/pkg/order"
	"github.com/posetrank/posetrank/pkg/order/rank"
)

func TestReadRelationMatrix(t *testing.T) {
	input := `{
		"labels": ["a", "b", "c"],
		"leq": [
			[true, true, true],
			[false, true, false],
			[false, false, true]
		]
	}`
	p, err := ReadRelation(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if p.N() != 3 {
		t.Errorf("N() = %d, want 3", p.N())
	}
	if p.Label(0) != "a" {
		t.Errorf("Label(0) = %q, want a", p.Label(0))
	}
	if got := p.Compare(0, 1); got != order.LessEqual {
		t.Errorf("Compare(0, 1) = %v, want less-equal", got)
	}
}

func TestReadRelationPairs(t *testing.T) {
	// Sparse pairs: 0 < 1 < 2 with the transitive entry implied.
	input := `{"labels": ["a", "b", "c"], "pairs": [["a", "b"], ["b", "c"]]}`
	p, err := ReadRelation(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if got := p.Compare(0, 2); got != order.LessEqual {
		t.Errorf("Compare(a, c) = %v, want less-equal after closure", got)
	}
	if len(p.Warnings()) != 0 {
		t.Errorf("Warnings() = %v, want none after closure", p.Warnings())
	}
}

func TestReadRelationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "malformed JSON", input: `{"labels": [`},
		{name: "both forms", input: `{"leq": [[true]], "pairs": [["a", "a"]]}`},
		{name: "neither form", input: `{"labels": ["a"]}`},
		{name: "pairs without labels", input: `{"pairs": [["a", "b"]]}`},
		{name: "unknown label", input: `{"labels": ["a"], "pairs": [["a", "z"]]}`},
		{name: "duplicate label", input: `{"labels": ["a", "a"], "pairs": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRelation(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ReadRelation() error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestReadRelationInvalidMatrix(t *testing.T) {
	// Core validation errors pass through with their own codes.
	input := `{"leq": [[false]]}`
	_, err := ReadRelation(strings.NewReader(input))
	if !errors.Is(err, errors.ErrCodeInvalidRelation) {
		t.Errorf("ReadRelation() error = %v, want INVALID_RELATION", err)
	}
}

func TestReadGraph(t *testing.T) {
	input := `{
		"nodes": [{"id": "a"}, {"id": "b"}, {"id": "c"}],
		"edges": [{"a": "a", "b": "b"}, {"a": "b", "b": "c"}]
	}`
	g, err := ReadGraph(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Errorf("graph has %d nodes, %d edges; want 3, 2", g.NodeCount(), g.EdgeCount())
	}
	if !g.Adjacent("a", "b") {
		t.Error("a and b should be adjacent")
	}
}

func TestReadGraphErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "duplicate node", input: `{"nodes": [{"id": "a"}, {"id": "a"}]}`},
		{name: "unknown edge endpoint", input: `{"nodes": [{"id": "a"}], "edges": [{"a": "a", "b": "z"}]}`},
		{name: "self-loop", input: `{"nodes": [{"id": "a"}], "edges": [{"a": "a", "b": "a"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGraph(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ReadGraph() error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestMarshalRelationRoundTrip(t *testing.T) {
	input := `{"labels": ["x", "y"], "pairs": [["x", "y"]]}`
	p, err := ReadRelation(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	data, err := MarshalRelation(p)
	if err != nil {
		t.Fatal(err)
	}
	back, err := ReadRelation(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	if back.N() != p.N() || back.Compare(0, 1) != p.Compare(0, 1) {
		t.Error("round-tripped relation differs from original")
	}

	// Determinism matters: the hash of these bytes is a cache key.
	again, err := MarshalRelation(p)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, again) {
		t.Error("MarshalRelation is not deterministic")
	}
}

func TestWriteResult(t *testing.T) {
	p, err := ReadRelation(strings.NewReader(
		`{"labels": ["a", "b", "c"], "pairs": [["a", "b"], ["a", "c"]]}`))
	if err != nil {
		t.Fatal(err)
	}
	res, err := rank.Compute(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteResult(&buf, res); err != nil {
		t.Fatal(err)
	}

	var decoded rank.Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Extensions.Cmp(res.Extensions) != 0 {
		t.Errorf("Extensions = %s, want %s", decoded.Extensions, res.Extensions)
	}
	if len(decoded.RankProb) != 3 {
		t.Errorf("RankProb has %d rows, want 3", len(decoded.RankProb))
	}
}
