package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/posetrank/posetrank/pkg/order"
	"github.com/posetrank/posetrank/pkg/order/rank"
)

// MarshalRelation encodes a partial order in the canonical matrix form.
// The output is deterministic for a given order, so its hash identifies the
// relation for caching.
func MarshalRelation(p *order.PartialOrder) ([]byte, error) {
	n := p.N()
	leq := make([][]bool, n)
	for i := range leq {
		leq[i] = make([]bool, n)
		for j := 0; j < n; j++ {
			leq[i][j] = p.Leq(i, j)
		}
	}
	return json.Marshal(relationDoc{Labels: p.Labels(), Leq: leq})
}

// WriteResult encodes a rank statistics result as indented JSON.
func WriteResult(w io.Writer, res *rank.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// ExportResult writes a rank statistics result to a JSON file at path.
// This is a convenience wrapper around [WriteResult] for file-based output.
func ExportResult(res *rank.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteResult(f, res)
}
