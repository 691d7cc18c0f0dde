package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/posetrank/posetrank/pkg/cache"
	"github.com/posetrank/posetrank/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"invalid", true},
		{"JSON", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateDerivation(t *testing.T) {
	tests := []struct {
		derivation string
		wantErr    bool
	}{
		{"neighborhood", false},
		{"distance", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateDerivation(tt.derivation)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDerivation(%q) error = %v, wantErr %v", tt.derivation, err, tt.wantErr)
		}
	}
}

func TestOptionsValidateForLoad(t *testing.T) {
	// Missing input
	opts := Options{}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Missing relation/graph should fail")
	}

	// Both inputs
	opts = Options{Relation: "{}", Graph: "{}"}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Both relation and graph should fail")
	}

	// Graph without derivation gets the default
	opts = Options{Graph: "{}"}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("Graph-only options should pass: %v", err)
	}
	if opts.Derivation != DerivationNeighborhood {
		t.Errorf("Derivation = %q, want %q", opts.Derivation, DerivationNeighborhood)
	}

	// Bad derivation
	opts = Options{Graph: "{}", Derivation: "pagerank"}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Invalid derivation should fail")
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{Relation: "{}"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if opts.CacheTTL != cache.TTLStats {
		t.Errorf("CacheTTL = %v, want %v", opts.CacheTTL, cache.TTLStats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("Second validation should pass: %v", err)
	}
}

// veeRelation is a three-element relation where a is below both b and c.
const veeRelation = `{
	"labels": ["a", "b", "c"],
	"pairs": [["a", "b"], ["a", "c"]]
}`

// pathGraph is the path a - b - c - d.
const pathGraph = `{
	"nodes": [{"id": "a"}, {"id": "b"}, {"id": "c"}, {"id": "d"}],
	"edges": [{"a": "a", "b": "b"}, {"a": "b", "b": "c"}, {"a": "c", "b": "d"}]
}`

func TestExecuteFromRelation(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Relation: veeRelation,
		Formats:  []string{FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Order.N() != 3 {
		t.Errorf("N = %d, want 3", result.Order.N())
	}
	if result.RelationHash == "" {
		t.Error("RelationHash should be set")
	}
	if result.Stats.Extensions.Int64() != 2 {
		t.Errorf("Extensions = %s, want 2", result.Stats.Extensions)
	}
	if len(result.Intervals) != 3 {
		t.Fatalf("Intervals = %v", result.Intervals)
	}
	if result.Intervals[0].Min != 1 || result.Intervals[0].Max != 1 {
		t.Errorf("interval of a = %+v, want [1,1]", result.Intervals[0])
	}

	// JSON artifact decodes back into the statistics shape.
	var decoded map[string]any
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &decoded); err != nil {
		t.Fatalf("decode json artifact: %v", err)
	}
	if _, ok := decoded["rank_prob"]; !ok {
		t.Error("json artifact missing rank_prob")
	}

	dot := string(result.Artifacts[FormatDOT])
	if !strings.Contains(dot, `"a" -- "b";`) {
		t.Errorf("dot artifact missing cover edge:\n%s", dot)
	}
}

func TestExecuteFromGraph(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{Graph: pathGraph, Derivation: DerivationDistance}
	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.CacheInfo.LoadHit {
		t.Error("first run should miss the relation cache")
	}
	if result.CacheInfo.StatsHit {
		t.Error("first run should miss the stats cache")
	}

	// Second run is served entirely from cache and agrees with the first.
	again, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute (cached): %v", err)
	}
	if !again.CacheInfo.LoadHit {
		t.Error("second run should hit the relation cache")
	}
	if !again.CacheInfo.StatsHit {
		t.Error("second run should hit the stats cache")
	}
	if again.Stats.Extensions.Cmp(result.Stats.Extensions) != 0 {
		t.Errorf("cached Extensions = %s, want %s", again.Stats.Extensions, result.Stats.Extensions)
	}
	if again.RelationHash != result.RelationHash {
		t.Errorf("cached RelationHash = %s, want %s", again.RelationHash, result.RelationHash)
	}

	// Refresh bypasses the cache.
	opts.Refresh = true
	fresh, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute (refresh): %v", err)
	}
	if fresh.CacheInfo.LoadHit || fresh.CacheInfo.StatsHit {
		t.Error("refresh run should not report cache hits")
	}
}

func TestExecuteIntractable(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		Relation:    veeRelation,
		MaxElements: 2,
	})
	if errors.GetCode(err) != errors.ErrCodeIntractable {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeIntractable)
	}

	// Intervals are still reachable through the load stage.
	p, err := runner.Load(context.Background(), Options{Relation: veeRelation})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.N() != 3 {
		t.Errorf("N = %d, want 3", p.N())
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	if _, err := runner.Execute(context.Background(), Options{}); err == nil {
		t.Error("empty options should fail")
	}
	if _, err := runner.Execute(context.Background(), Options{
		Relation: veeRelation,
		Formats:  []string{"gif"},
	}); err == nil {
		t.Error("unknown format should fail")
	}
}
