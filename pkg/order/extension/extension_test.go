package extension

import (
	"context"
	"fmt"
	"math/big"
	"slices"
	"testing"

	"github.com/posetrank/posetrank/pkg/errors"
	"github.com/posetrank/posetrank/pkg/order"
)

// buildOrder creates a partial order on n elements from strict dominance
// pairs, closing the relation transitively.
func buildOrder(t *testing.T, n int, pairs [][2]int) *order.PartialOrder {
	t.Helper()
	leq := make([][]bool, n)
	for i := range leq {
		leq[i] = make([]bool, n)
		leq[i][i] = true
	}
	for _, pr := range pairs {
		leq[pr[0]][pr[1]] = true
	}
	// Warshall closure
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if leq[i][k] && leq[k][j] {
					leq[i][j] = true
				}
			}
		}
	}
	p, err := order.New(leq)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func chain(t *testing.T, n int) *order.PartialOrder {
	pairs := make([][2]int, 0, n-1)
	for i := 0; i+1 < n; i++ {
		pairs = append(pairs, [2]int{i, i + 1})
	}
	return buildOrder(t, n, pairs)
}

func antichain(t *testing.T, n int) *order.PartialOrder {
	return buildOrder(t, n, nil)
}

func factorial(n int64) *big.Int {
	return new(big.Int).MulRange(1, n)
}

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		p    *order.PartialOrder
		want *big.Int
	}{
		{name: "empty order", p: antichain(t, 0), want: big.NewInt(1)},
		{name: "single element", p: antichain(t, 1), want: big.NewInt(1)},
		{name: "chain of 11", p: chain(t, 11), want: big.NewInt(1)},
		{name: "antichain of 3", p: antichain(t, 3), want: big.NewInt(6)},
		{name: "antichain of 10", p: antichain(t, 10), want: factorial(10)},
		{name: "vee", p: buildOrder(t, 3, [][2]int{{0, 1}, {0, 2}}), want: big.NewInt(2)},
		{name: "fence on 4", p: buildOrder(t, 4, [][2]int{{0, 1}, {2, 1}, {2, 3}}), want: big.NewInt(5)},
		{name: "diamond", p: buildOrder(t, 4, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}}), want: big.NewInt(2)},
		// Two disjoint chains of length 3: C(6,3) = 20 interleavings.
		{name: "parallel chains", p: buildOrder(t, 6, [][2]int{{0, 1}, {1, 2}, {3, 4}, {4, 5}}), want: big.NewInt(20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Count(tt.p)
			if err != nil {
				t.Fatal(err)
			}
			if got.Cmp(tt.want) != 0 {
				t.Errorf("Count() = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestCountLargeAntichain exercises the memoized recursion well past uint
// territory: 21! does not fit in 64 bits.
func TestCountLargeAntichain(t *testing.T) {
	got, err := Count(antichain(t, 21))
	if err != nil {
		t.Fatal(err)
	}
	if got.Cmp(factorial(21)) != 0 {
		t.Errorf("Count() = %s, want 21! = %s", got, factorial(21))
	}
}

func collect(t *testing.T, p *order.PartialOrder) [][]int {
	t.Helper()
	var got [][]int
	err := Enumerate(context.Background(), p, func(ext []int) bool {
		got = append(got, slices.Clone(ext))
		return true
	})
	if err != nil {
		t.Fatal(err)
	}
	return got
}

func TestEnumerate(t *testing.T) {
	p := buildOrder(t, 3, [][2]int{{0, 1}, {0, 2}})
	got := collect(t, p)

	want := [][]int{{0, 1, 2}, {0, 2, 1}}
	sortExtensions(got)
	if !slices.EqualFunc(got, want, slices.Equal) {
		t.Errorf("Enumerate() = %v, want %v", got, want)
	}
}

func TestEnumerateMatchesCount(t *testing.T) {
	orders := map[string]*order.PartialOrder{
		"fence":     buildOrder(t, 4, [][2]int{{0, 1}, {2, 1}, {2, 3}}),
		"diamond":   buildOrder(t, 4, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}}),
		"chain":     chain(t, 6),
		"antichain": antichain(t, 5),
	}

	for name, p := range orders {
		t.Run(name, func(t *testing.T) {
			exts := collect(t, p)
			count, err := Count(p)
			if err != nil {
				t.Fatal(err)
			}
			if count.Cmp(big.NewInt(int64(len(exts)))) != 0 {
				t.Errorf("Count() = %s but Enumerate produced %d extensions", count, len(exts))
			}

			// Each extension must be unique and order-respecting.
			seen := make(map[string]bool)
			for _, ext := range exts {
				key := fmt.Sprint(ext)
				if seen[key] {
					t.Errorf("extension %v produced twice", ext)
				}
				seen[key] = true
				checkRespects(t, p, ext)
			}
		})
	}
}

func checkRespects(t *testing.T, p *order.PartialOrder, ext []int) {
	t.Helper()
	ranks := Ranks(ext)
	for i := 0; i < p.N(); i++ {
		for j := 0; j < p.N(); j++ {
			if p.StrictlyLess(i, j) && ranks[i] > ranks[j] {
				t.Errorf("extension %v ranks %d above %d despite dominance", ext, i, j)
			}
		}
	}
}

func TestEnumerateEmptyOrder(t *testing.T) {
	calls := 0
	err := Enumerate(context.Background(), antichain(t, 0), func(ext []int) bool {
		calls++
		if len(ext) != 0 {
			t.Errorf("ext = %v, want empty", ext)
		}
		return true
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("visitor called %d times, want 1", calls)
	}
}

func TestEnumerateEarlyStop(t *testing.T) {
	calls := 0
	err := Enumerate(context.Background(), antichain(t, 5), func(ext []int) bool {
		calls++
		return calls < 3
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Errorf("visitor called %d times, want 3", calls)
	}
}

func TestEnumerateRestartable(t *testing.T) {
	p := buildOrder(t, 4, [][2]int{{0, 1}, {2, 1}, {2, 3}})
	first := collect(t, p)
	second := collect(t, p)

	sortExtensions(first)
	sortExtensions(second)
	if !slices.EqualFunc(first, second, slices.Equal) {
		t.Errorf("second enumeration %v differs from first %v", second, first)
	}
}

func TestEnumerateMaxElements(t *testing.T) {
	e := Enumerator{MaxElements: 3}
	err := e.Enumerate(context.Background(), antichain(t, 4), func([]int) bool { return true })
	if !errors.Is(err, errors.ErrCodeIntractable) {
		t.Fatalf("Enumerate() error = %v, want INTRACTABLE_INPUT", err)
	}

	// The count path must stay available as the documented fallback.
	if _, err := e.Count(antichain(t, 4)); err != nil {
		t.Errorf("Count() error = %v after enumeration refusal", err)
	}
}

func TestStepBudget(t *testing.T) {
	e := Enumerator{MaxSteps: 10}
	err := e.Enumerate(context.Background(), antichain(t, 8), func([]int) bool { return true })
	if !errors.Is(err, errors.ErrCodeIntractable) {
		t.Fatalf("Enumerate() error = %v, want INTRACTABLE_INPUT", err)
	}

	if _, err := e.Count(antichain(t, 8)); !errors.Is(err, errors.ErrCodeIntractable) {
		t.Fatalf("Count() error = %v, want INTRACTABLE_INPUT", err)
	}
}

func TestEnumerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A large antichain guarantees the periodic context check fires.
	err := Enumerate(ctx, antichain(t, 10), func([]int) bool { return true })
	if !errors.Is(err, errors.ErrCodeCanceled) {
		t.Fatalf("Enumerate() error = %v, want CANCELED", err)
	}
}

func TestRanks(t *testing.T) {
	got := Ranks([]int{2, 0, 1})
	want := []int{2, 3, 1}
	if !slices.Equal(got, want) {
		t.Errorf("Ranks() = %v, want %v", got, want)
	}
}

func sortExtensions(exts [][]int) {
	slices.SortFunc(exts, slices.Compare)
}
