package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/posetrank/posetrank/pkg/cache"
	"github.com/posetrank/posetrank/pkg/dominance"
	posetio "github.com/posetrank/posetrank/pkg/io"
	"github.com/posetrank/posetrank/pkg/order"
	"github.com/posetrank/posetrank/pkg/order/extension"
	"github.com/posetrank/posetrank/pkg/order/rank"
	"github.com/posetrank/posetrank/pkg/render/hasse"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → statistics → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	p, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Order = p
	result.Timing.LoadTime = time.Since(loadStart)
	result.CacheInfo.LoadHit = loadHit

	if hash, err := r.RelationHash(p); err == nil {
		result.RelationHash = hash
	}

	frac, err := p.ComparableFraction()
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	r.Logger.Info("loaded relation",
		"elements", p.N(),
		"comparable", fmt.Sprintf("%.1f%%", 100*frac),
		"duration", result.Timing.LoadTime)

	// Intervals are cheap and always available, even when exact statistics
	// turn out to be intractable.
	result.Intervals = rank.Intervals(p)

	// Stage 2: Statistics
	statsStart := time.Now()
	stats, statsHit, err := r.StatsWithCacheInfo(ctx, p, opts)
	if err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}
	result.Stats = stats
	result.Timing.StatsTime = time.Since(statsStart)
	result.CacheInfo.StatsHit = statsHit

	r.Logger.Info("computed rank statistics",
		"extensions", stats.Extensions.String(),
		"duration", result.Timing.StatsTime)

	// Stage 3: Export
	for _, format := range opts.Formats {
		data, err := r.Export(p, stats, format, opts)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", format, err)
		}
		result.Artifacts[format] = data
	}

	return result, nil
}

// LoadWithCacheInfo loads or derives a partial order and reports whether a
// graph derivation was served from cache. Relations given directly are never
// cached since parsing them is trivial.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*order.PartialOrder, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	if opts.Relation != "" {
		p, err := posetio.ReadRelation(strings.NewReader(opts.Relation))
		return p, false, err
	}

	graphHash := cache.Hash([]byte(opts.Graph))
	cacheKey := r.Keyer.RelationKey(graphHash, opts.Derivation)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			p, err := posetio.ReadRelation(bytes.NewReader(data))
			if err == nil {
				return p, true, nil // Cache hit
			}
		}
	}

	g, err := posetio.ReadGraph(strings.NewReader(opts.Graph))
	if err != nil {
		return nil, false, err
	}

	var p *order.PartialOrder
	switch opts.Derivation {
	case DerivationDistance:
		p, err = dominance.DistanceDominance(g)
	default:
		p, err = dominance.NeighborhoodInclusion(g)
	}
	if err != nil {
		return nil, false, err
	}

	if data, err := posetio.MarshalRelation(p); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLRelation)
	}

	return p, false, nil // Cache miss
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*order.PartialOrder, error) {
	p, _, err := r.LoadWithCacheInfo(ctx, opts)
	return p, err
}

// RelationHash returns the content hash of the canonical comparability
// matrix. It identifies a relation regardless of how it was loaded.
func (r *Runner) RelationHash(p *order.PartialOrder) (string, error) {
	data, err := posetio.MarshalRelation(p)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

// StatsWithCacheInfo computes rank statistics with caching and returns cache hit info.
func (r *Runner) StatsWithCacheInfo(ctx context.Context, p *order.PartialOrder, opts Options) (*rank.Result, bool, error) {
	opts.SetStatsDefaults()
	r.applyLogger(&opts)

	relationData, err := posetio.MarshalRelation(p)
	if err != nil {
		return nil, false, fmt.Errorf("serialize relation for cache key: %w", err)
	}
	relationHash := cache.Hash(relationData)
	cacheKey := r.Keyer.StatsKey(relationHash, opts.StatsKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached rank.Result
			if err := json.Unmarshal(data, &cached); err == nil && len(cached.Labels) == p.N() {
				return &cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}

	analyzer := rank.Analyzer{Enumerator: extension.Enumerator{
		MaxElements: opts.MaxElements,
		MaxSteps:    opts.MaxSteps,
	}}
	stats, err := analyzer.Compute(ctx, p)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(stats); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, opts.CacheTTL)
	}

	return stats, false, nil // Cache miss
}

// Stats is a convenience wrapper that calls StatsWithCacheInfo and discards the cache hit info.
func (r *Runner) Stats(ctx context.Context, p *order.PartialOrder, opts Options) (*rank.Result, error) {
	stats, _, err := r.StatsWithCacheInfo(ctx, p, opts)
	return stats, err
}

// Export serializes a single output format. The json format carries the full
// statistics result; dot, svg, and png render the Hasse diagram.
func (r *Runner) Export(p *order.PartialOrder, stats *rank.Result, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		if err := posetio.WriteResult(&buf, stats); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatDOT:
		return []byte(hasse.ToDOT(p, hasse.Options{Detailed: opts.Detailed})), nil
	case FormatSVG:
		return hasse.RenderSVG(hasse.ToDOT(p, hasse.Options{Detailed: opts.Detailed}))
	case FormatPNG:
		return hasse.RenderPNG(hasse.ToDOT(p, hasse.Options{Detailed: opts.Detailed}), 2.0)
	default:
		return nil, ValidateFormat(format)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
