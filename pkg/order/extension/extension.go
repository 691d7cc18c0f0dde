package extension

import (
	"context"
	"math/big"

	"github.com/posetrank/posetrank/pkg/errors"
	"github.com/posetrank/posetrank/pkg/order"
)

const (
	// DefaultMaxElements is the default safety threshold for full enumeration.
	// Extension counts are factorial-bounded, so enumerating beyond this many
	// elements can easily outlive the caller's patience. Counting has no such
	// limit; it only walks the subset lattice.
	DefaultMaxElements = 15

	// ctxCheckInterval is how many recursion steps pass between context checks.
	ctxCheckInterval = 1024
)

// Visitor receives one linear extension per call. ext holds element indices
// from bottom (rank 1) to top (rank n). The slice is reused between calls:
// copy it if it needs to outlive the visit. Returning false stops the
// enumeration early without an error.
type Visitor func(ext []int) bool

// Enumerator produces the linear extensions of a partial order, either as an
// exact count or as a lazy sequence of rankings.
//
// The zero value is ready to use with default limits. An Enumerator holds no
// state between calls; each invocation owns its own memoization cache, so a
// single Enumerator is safe for concurrent use.
type Enumerator struct {
	// MaxElements caps the order size for full enumeration.
	// Zero means DefaultMaxElements. Count ignores this limit.
	MaxElements int

	// MaxSteps is a cooperative step budget across one invocation's recursion.
	// Zero means no budget. When exceeded, the call fails with an
	// INTRACTABLE_INPUT error; Count and rank intervals remain available as
	// cheaper fallbacks.
	MaxSteps int64
}

// Count returns the exact number of linear extensions of p using the default
// enumerator settings.
func Count(p *order.PartialOrder) (*big.Int, error) {
	var e Enumerator
	return e.Count(p)
}

// Enumerate produces every linear extension of p using the default
// enumerator settings. See [Enumerator.Enumerate].
func Enumerate(ctx context.Context, p *order.PartialOrder, visit Visitor) error {
	var e Enumerator
	return e.Enumerate(ctx, p, visit)
}

// Count returns the exact number of linear extensions of p.
//
// The count is computed by removing one maximal element at a time and
// recursing on the remainder, memoized on the set of remaining elements.
// Without memoization the recursion revisits identical remainders once per
// removal order and degrades to O(n!); with it, the work is bounded by the
// number of distinct downsets actually reachable. Results use math/big since
// counts grow factorially with n.
//
// MaxSteps is honored; MaxElements is not, since counting stays feasible far
// beyond the point where materializing extensions stops being.
func (e *Enumerator) Count(p *order.PartialOrder) (*big.Int, error) {
	n := p.N()
	if n == 0 {
		return big.NewInt(1), nil
	}

	s := newState(context.Background(), p, e.MaxSteps)
	memo := make(map[string]*big.Int)
	count, err := s.count(s.full(), memo)
	if err != nil {
		return nil, err
	}
	return count, nil
}

// Enumerate calls visit once per linear extension of p.
//
// The sequence is finite and restartable: each call regenerates it from
// scratch. No ordering among extensions is guaranteed, only that each
// order-respecting ranking is produced exactly once. Enumeration aborts with
// an INTRACTABLE_INPUT error when p has more than MaxElements elements or
// the step budget runs out, and with a CANCELED error when ctx is done.
func (e *Enumerator) Enumerate(ctx context.Context, p *order.PartialOrder, visit Visitor) error {
	n := p.N()
	limit := e.MaxElements
	if limit <= 0 {
		limit = DefaultMaxElements
	}
	if n > limit {
		return errors.New(errors.ErrCodeIntractable,
			"full enumeration of %d elements exceeds the limit of %d; use Count or rank intervals instead",
			n, limit)
	}
	if n == 0 {
		visit([]int{})
		return nil
	}

	s := newState(ctx, p, e.MaxSteps)
	s.ext = make([]int, n)
	s.visit = visit
	_, err := s.enumerate(s.full(), n)
	return err
}

// Ranks converts an extension sequence (element indices bottom to top) into
// a slice of 1-based ranks per element: ranks[i] is the rank of element i.
func Ranks(ext []int) []int {
	ranks := make([]int, len(ext))
	for pos, elem := range ext {
		ranks[elem] = pos + 1
	}
	return ranks
}

// state carries one invocation's recursion context. It is never shared.
type state struct {
	ctx      context.Context
	p        *order.PartialOrder
	above    []bitset // above[i]: elements strictly dominating i
	steps    int64
	maxSteps int64
	ext      []int // extension under construction, filled top-down
	visit    Visitor
}

func newState(ctx context.Context, p *order.PartialOrder, maxSteps int64) *state {
	n := p.N()
	above := make([]bitset, n)
	for i := 0; i < n; i++ {
		above[i] = newBitset(n)
		for j := 0; j < n; j++ {
			if p.StrictlyLess(i, j) {
				above[i].set(j)
			}
		}
	}
	return &state{ctx: ctx, p: p, above: above, maxSteps: maxSteps}
}

// full returns the bitset containing every element.
func (s *state) full() bitset {
	b := newBitset(s.p.N())
	for i := 0; i < s.p.N(); i++ {
		b.set(i)
	}
	return b
}

// step accounts one recursion step against the budget and the context.
func (s *state) step() error {
	s.steps++
	if s.maxSteps > 0 && s.steps > s.maxSteps {
		return errors.New(errors.ErrCodeIntractable,
			"step budget of %d exhausted after visiting %d states", s.maxSteps, s.steps-1)
	}
	if s.steps%ctxCheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			return errors.Wrap(errors.ErrCodeCanceled, err, "enumeration canceled")
		}
	}
	return nil
}

// maximal reports whether elem is maximal within the remaining set.
func (s *state) maximal(elem int, remaining bitset) bool {
	return !s.above[elem].intersects(remaining)
}

// count recursively counts extensions of the remaining set, memoized on it.
func (s *state) count(remaining bitset, memo map[string]*big.Int) (*big.Int, error) {
	if remaining.empty() {
		return big.NewInt(1), nil
	}
	if err := s.step(); err != nil {
		return nil, err
	}

	key := remaining.key()
	if c, ok := memo[key]; ok {
		return c, nil
	}

	total := new(big.Int)
	for _, elem := range remaining.members() {
		if !s.maximal(elem, remaining) {
			continue
		}
		remaining.clear(elem)
		sub, err := s.count(remaining, memo)
		remaining.set(elem)
		if err != nil {
			return nil, err
		}
		total.Add(total, sub)
	}
	memo[key] = total
	return total, nil
}

// enumerate yields every completion of the current partial extension.
// topRank is the rank the next removed maximal element receives.
// The boolean result is false once the visitor asked to stop.
func (s *state) enumerate(remaining bitset, topRank int) (bool, error) {
	if topRank == 0 {
		return s.visit(s.ext), nil
	}
	if err := s.step(); err != nil {
		return false, err
	}

	for _, elem := range remaining.members() {
		if !s.maximal(elem, remaining) {
			continue
		}
		s.ext[topRank-1] = elem
		remaining.clear(elem)
		keep, err := s.enumerate(remaining, topRank-1)
		remaining.set(elem)
		if err != nil || !keep {
			return keep, err
		}
	}
	return true, nil
}
