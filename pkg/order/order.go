package order

import (
	"fmt"
	"strconv"

	"github.com/posetrank/posetrank/pkg/errors"
)

// Comparability classifies the relationship between two elements of a
// partial order.
type Comparability int

const (
	// Incomparable means neither element dominates the other.
	Incomparable Comparability = iota
	// LessEqual means the first element is dominated by the second.
	LessEqual
	// GreaterEqual means the first element dominates the second.
	GreaterEqual
	// Equal means both indices refer to the same element.
	Equal
)

// String returns a human-readable name for the comparability class.
func (c Comparability) String() string {
	switch c {
	case LessEqual:
		return "less-equal"
	case GreaterEqual:
		return "greater-equal"
	case Equal:
		return "equal"
	default:
		return "incomparable"
	}
}

// PartialOrder represents a dominance relation over n elements as a boolean
// comparability matrix. leq[i][j] == true means element i is dominated by
// (not more central than) element j.
//
// The matrix must be reflexive and antisymmetric; both are validated at
// construction. Transitivity is an input precondition: violations are
// recorded as warnings rather than rejected, since callers may deliberately
// supply approximate relations (e.g., derived from floating-point distance
// comparisons).
//
// PartialOrder is immutable after construction and safe for concurrent reads.
type PartialOrder struct {
	n        int
	leq      [][]bool
	labels   []string
	warnings []string
}

// New creates a partial order from an n×n boolean comparability matrix.
// Elements are labeled by their index ("0", "1", ...).
//
// Returns an INVALID_RELATION error if the matrix is not square, not
// reflexive, or violates antisymmetry (leq[i][j] and leq[j][i] for i != j).
func New(leq [][]bool) (*PartialOrder, error) {
	return NewLabeled(leq, nil)
}

// NewLabeled creates a partial order with explicit element labels.
// labels may be nil, in which case indices are used. A non-nil labels slice
// must have exactly one entry per element.
func NewLabeled(leq [][]bool, labels []string) (*PartialOrder, error) {
	n := len(leq)
	for i, row := range leq {
		if len(row) != n {
			return nil, errors.New(errors.ErrCodeInvalidMatrix,
				"row %d has %d columns, want %d", i, len(row), n)
		}
	}
	if labels != nil && len(labels) != n {
		return nil, errors.New(errors.ErrCodeInvalidMatrix,
			"got %d labels for %d elements", len(labels), n)
	}

	// Copy the matrix so later caller mutations cannot break immutability.
	m := make([][]bool, n)
	for i := range leq {
		m[i] = make([]bool, n)
		copy(m[i], leq[i])
	}

	p := &PartialOrder{n: n, leq: m}
	if labels != nil {
		p.labels = make([]string, n)
		copy(p.labels, labels)
	}

	if err := p.validate(); err != nil {
		return nil, err
	}
	p.warnings = p.checkTransitivity()
	return p, nil
}

// validate checks reflexivity and antisymmetry.
func (p *PartialOrder) validate() error {
	for i := 0; i < p.n; i++ {
		if !p.leq[i][i] {
			return errors.New(errors.ErrCodeInvalidRelation,
				"relation is not reflexive: element %s is not leq itself", p.Label(i))
		}
	}
	for i := 0; i < p.n; i++ {
		for j := i + 1; j < p.n; j++ {
			if p.leq[i][j] && p.leq[j][i] {
				return errors.New(errors.ErrCodeInvalidRelation,
					"relation violates antisymmetry: %s and %s dominate each other",
					p.Label(i), p.Label(j))
			}
		}
	}
	return nil
}

// checkTransitivity reports every missing transitive closure entry.
// Violations are warnings, not errors: the enumeration and statistics code
// treats the matrix as given, so a non-transitive input simply describes a
// different (possibly unintended) relation.
func (p *PartialOrder) checkTransitivity() []string {
	var warnings []string
	for i := 0; i < p.n; i++ {
		for j := 0; j < p.n; j++ {
			if !p.leq[i][j] {
				continue
			}
			for k := 0; k < p.n; k++ {
				if p.leq[j][k] && !p.leq[i][k] {
					warnings = append(warnings, fmt.Sprintf(
						"transitivity violation: %s leq %s and %s leq %s, but %s is not leq %s",
						p.Label(i), p.Label(j), p.Label(j), p.Label(k), p.Label(i), p.Label(k)))
				}
			}
		}
	}
	return warnings
}

// N returns the number of elements in the order.
func (p *PartialOrder) N() int { return p.n }

// Label returns the display label for element i.
// Falls back to the decimal index when no labels were supplied.
func (p *PartialOrder) Label(i int) string {
	if p.labels != nil {
		return p.labels[i]
	}
	return strconv.Itoa(i)
}

// Labels returns the labels of all elements in index order.
func (p *PartialOrder) Labels() []string {
	out := make([]string, p.n)
	for i := range out {
		out[i] = p.Label(i)
	}
	return out
}

// Warnings returns the transitivity violations detected at construction.
// An empty slice means the matrix is transitively closed.
func (p *PartialOrder) Warnings() []string { return p.warnings }

// Leq reports whether element i is dominated by element j.
func (p *PartialOrder) Leq(i, j int) bool { return p.leq[i][j] }

// StrictlyLess reports whether i is dominated by j and i != j.
func (p *PartialOrder) StrictlyLess(i, j int) bool { return i != j && p.leq[i][j] }

// Compare classifies the pair (i, j). Equal is returned only when i == j.
func (p *PartialOrder) Compare(i, j int) Comparability {
	switch {
	case i == j:
		return Equal
	case p.leq[i][j]:
		return LessEqual
	case p.leq[j][i]:
		return GreaterEqual
	default:
		return Incomparable
	}
}

// ComparableFraction returns the fraction of unordered element pairs that are
// comparable: comparable pairs / C(n, 2).
//
// Returns a DEGENERATE_INPUT error when the order has fewer than two elements,
// since no pairs exist to classify.
func (p *PartialOrder) ComparableFraction() (float64, error) {
	if p.n < 2 {
		return 0, errors.New(errors.ErrCodeDegenerateInput,
			"comparable fraction requires at least 2 elements, got %d", p.n)
	}
	comparable := 0
	for i := 0; i < p.n; i++ {
		for j := i + 1; j < p.n; j++ {
			if p.leq[i][j] || p.leq[j][i] {
				comparable++
			}
		}
	}
	return float64(comparable) / float64(p.n*(p.n-1)/2), nil
}

// Cover is a covering pair of the order: Lower is strictly dominated by
// Upper with no element strictly between them. The set of covers is the
// transitive reduction (Hasse diagram) of the relation.
type Cover struct {
	Lower int
	Upper int
}

// CoverPairs returns the covering pairs of the order.
// Pairs are ordered by (Lower, Upper) index.
func (p *PartialOrder) CoverPairs() []Cover {
	var covers []Cover
	for i := 0; i < p.n; i++ {
		for j := 0; j < p.n; j++ {
			if !p.StrictlyLess(i, j) {
				continue
			}
			direct := true
			for k := 0; k < p.n; k++ {
				if p.StrictlyLess(i, k) && p.StrictlyLess(k, j) {
					direct = false
					break
				}
			}
			if direct {
				covers = append(covers, Cover{Lower: i, Upper: j})
			}
		}
	}
	return covers
}

// MaximalElements returns the elements not strictly dominated by any other
// element, in index order.
func (p *PartialOrder) MaximalElements() []int {
	var out []int
	for i := 0; i < p.n; i++ {
		maximal := true
		for j := 0; j < p.n; j++ {
			if p.StrictlyLess(i, j) {
				maximal = false
				break
			}
		}
		if maximal {
			out = append(out, i)
		}
	}
	return out
}

// MinimalElements returns the elements that strictly dominate no other
// element below them, in index order.
func (p *PartialOrder) MinimalElements() []int {
	var out []int
	for i := 0; i < p.n; i++ {
		minimal := true
		for j := 0; j < p.n; j++ {
			if p.StrictlyLess(j, i) {
				minimal = false
				break
			}
		}
		if minimal {
			out = append(out, i)
		}
	}
	return out
}
