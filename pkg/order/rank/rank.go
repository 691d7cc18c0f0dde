package rank

import (
	"context"
	"math"
	"math/big"

	"github.com/posetrank/posetrank/pkg/errors"
	"github.com/posetrank/posetrank/pkg/order"
	"github.com/posetrank/posetrank/pkg/order/extension"
)

// Result is the immutable summary of all linear extensions of a partial
// order. Ranks are 1-based: rank 1 is the bottom (least central), rank n the
// top.
//
// All matrices are indexed by element; RankProb columns are indexed by
// rank-1. Every row of RankProb sums to 1, as does every column (each rank
// goes to exactly one element per extension). RelativeRank[i][j] and
// RelativeRank[j][i] sum to 1 for i != j since rankings are bijections.
type Result struct {
	// Labels holds element display labels in index order.
	Labels []string `json:"labels"`

	// Extensions is the total number of linear extensions summarized.
	Extensions *big.Int `json:"extensions"`

	// RankProb[i][r-1] is the fraction of extensions ranking element i at r.
	RankProb [][]float64 `json:"rank_prob"`

	// RelativeRank[i][j] is the fraction of extensions ranking i below j.
	RelativeRank [][]float64 `json:"relative_rank"`

	// ExpectedRank[i] is the mean rank of element i.
	ExpectedRank []float64 `json:"expected_rank"`

	// RankSpread[i] is the standard deviation of element i's rank.
	RankSpread []float64 `json:"rank_spread"`
}

// Analyzer computes rank statistics with configurable enumeration limits.
// The zero value uses the extension package defaults.
type Analyzer struct {
	Enumerator extension.Enumerator
}

// Compute summarizes all linear extensions of p using default limits.
func Compute(ctx context.Context, p *order.PartialOrder) (*Result, error) {
	var a Analyzer
	return a.Compute(ctx, p)
}

// Compute folds the extension sequence into the four summary statistics in a
// single pass, keeping only per-element and per-pair accumulators rather
// than materializing the extension set.
//
// Fails with DEGENERATE_INPUT when p has fewer than two elements, and
// propagates the enumerator's INTRACTABLE_INPUT unchanged; callers can fall
// back to [Intervals] or [extension.Count], which stay cheap.
func (a *Analyzer) Compute(ctx context.Context, p *order.PartialOrder) (*Result, error) {
	n := p.N()
	if n < 2 {
		return nil, errors.New(errors.ErrCodeDegenerateInput,
			"rank statistics require at least 2 elements, got %d", n)
	}

	// The total is counted in int64 so Extensions stays exact however high
	// the enumeration limits are raised; a count near 2^63 is unreachable
	// by visiting extensions one at a time anyway.
	rankCount := newMatrix(n)
	below := newMatrix(n)
	sum := make([]float64, n)
	sumSq := make([]float64, n)
	var visited int64

	err := a.Enumerator.Enumerate(ctx, p, func(ext []int) bool {
		visited++
		for pos, elem := range ext {
			r := float64(pos + 1)
			rankCount[elem][pos]++
			sum[elem] += r
			sumSq[elem] += r * r
			for _, higher := range ext[pos+1:] {
				below[elem][higher]++
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	total := float64(visited)
	res := &Result{
		Labels:       p.Labels(),
		Extensions:   big.NewInt(visited),
		RankProb:     rankCount,
		RelativeRank: below,
		ExpectedRank: sum,
		RankSpread:   sumSq,
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			res.RankProb[i][j] /= total
			res.RelativeRank[i][j] /= total
		}
		mean := sum[i] / total
		res.ExpectedRank[i] = mean
		// Var = E[r²] - E[r]²; clamp tiny negative float drift.
		variance := sumSq[i]/total - mean*mean
		if variance < 0 {
			variance = 0
		}
		res.RankSpread[i] = math.Sqrt(variance)
	}
	return res, nil
}

// Interval is the range of ranks an element attains across all linear
// extensions.
type Interval struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ElementInterval returns the rank interval of element i.
//
// This is the cheap path: the minimum rank is the size of i's down-set
// (every dominated element must sit below it, and a greedy extension placing
// exactly those below attains the bound) and the maximum is n minus the size
// of its strict up-set. No enumeration happens, so intervals stay usable for
// orders far beyond the full-statistics budget.
func ElementInterval(p *order.PartialOrder, i int) (Interval, error) {
	if i < 0 || i >= p.N() {
		return Interval{}, errors.New(errors.ErrCodeInvalidElement,
			"element %d out of range [0, %d)", i, p.N())
	}
	down, up := 0, 0
	for j := 0; j < p.N(); j++ {
		if p.StrictlyLess(j, i) {
			down++
		}
		if p.StrictlyLess(i, j) {
			up++
		}
	}
	return Interval{Min: down + 1, Max: p.N() - up}, nil
}

// Intervals returns the rank interval of every element in index order.
func Intervals(p *order.PartialOrder) []Interval {
	out := make([]Interval, p.N())
	for i := range out {
		out[i], _ = ElementInterval(p, i)
	}
	return out
}

func newMatrix(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}
