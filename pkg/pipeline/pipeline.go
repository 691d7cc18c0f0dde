// Package pipeline provides the core analysis pipeline for posetrank.
//
// This package implements the complete load → intervals → statistics → export
// pipeline that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a comparability relation, or derive one from a graph
//  2. Statistics: Enumerate linear extensions and fold them into rank
//     statistics (rank intervals are always computed alongside, since they
//     are cheap and survive enumeration limits)
//  3. Export: Serialize results as JSON or render a Hasse diagram
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Graph:      graphJSON,
//	    Derivation: pipeline.DerivationNeighborhood,
//	    Formats:    []string{"json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out := result.Artifacts["json"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/posetrank/posetrank/pkg/cache"
	"github.com/posetrank/posetrank/pkg/order"
	"github.com/posetrank/posetrank/pkg/order/rank"
)

// Derivation constants selecting how a partial order is derived from a graph.
const (
	// DerivationNeighborhood orders vertices by neighborhood inclusion.
	DerivationNeighborhood = "neighborhood"

	// DerivationDistance orders vertices by sorted distance profiles.
	DerivationDistance = "distance"
)

// ValidDerivations is the set of supported graph derivations.
var ValidDerivations = map[string]bool{
	DerivationNeighborhood: true,
	DerivationDistance:     true,
}

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// Options contains all configuration for the analysis pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of Relation or Graph must be set; both hold
	// the document content, not a path.
	Relation   string `json:"relation,omitempty"`
	Graph      string `json:"graph,omitempty"`
	Derivation string `json:"derivation,omitempty"`

	// Statistics options
	MaxElements int   `json:"max_elements,omitempty"`
	MaxSteps    int64 `json:"max_steps,omitempty"`
	Refresh     bool  `json:"refresh,omitempty"`

	// Export options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger   `json:"-"`
	CacheTTL time.Duration `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Order is the loaded or derived partial order.
	Order *order.PartialOrder

	// RelationHash is the content hash of the canonical comparability matrix.
	RelationHash string

	// Intervals holds the possible rank interval of each element.
	Intervals []rank.Interval

	// Stats holds the exact rank statistics.
	Stats *rank.Result

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// Timing contains per-stage durations.
	Timing Timing

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Timing contains pipeline execution durations.
type Timing struct {
	LoadTime  time.Duration
	StatsTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit  bool // Whether the derived relation came from cache
	StatsHit bool // Whether the statistics came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDerivation checks that a derivation is valid.
func ValidateDerivation(derivation string) error {
	if !ValidDerivations[derivation] {
		return fmt.Errorf("invalid derivation: %q (must be one of: neighborhood, distance)", derivation)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForExport(); err != nil {
		return err
	}
	o.SetStatsDefaults()
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for the load stage.
func (o *Options) ValidateForLoad() error {
	if o.Relation == "" && o.Graph == "" {
		return fmt.Errorf("relation or graph is required")
	}
	if o.Relation != "" && o.Graph != "" {
		return fmt.Errorf("relation and graph are mutually exclusive")
	}
	if o.Graph != "" {
		if o.Derivation == "" {
			o.Derivation = DerivationNeighborhood
		}
		if err := ValidateDerivation(o.Derivation); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetStatsDefaults sets default values for the statistics stage.
func (o *Options) SetStatsDefaults() {
	if o.CacheTTL == 0 {
		o.CacheTTL = cache.TTLStats
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForExport validates and sets defaults for the export stage.
func (o *Options) ValidateForExport() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	return ValidateFormats(o.Formats)
}

// StatsKeyOpts returns cache key options for the statistics stage.
func (o *Options) StatsKeyOpts() cache.StatsKeyOpts {
	return cache.StatsKeyOpts{
		MaxElements: o.MaxElements,
		MaxSteps:    o.MaxSteps,
	}
}
