package extension

import (
	"encoding/binary"
	"math/bits"
)

const wordBits = 64

// bitset is a fixed-capacity set of element indices backed by uint64 words.
// A single word covers the n ≤ 64 orders this tool targets; larger orders
// spill into additional words so memo keys stay canonical at any size.
type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+wordBits-1)/wordBits)
}

func (b bitset) set(i int)   { b[i/wordBits] |= 1 << (i % wordBits) }
func (b bitset) clear(i int) { b[i/wordBits] &^= 1 << (i % wordBits) }

func (b bitset) empty() bool {
	for _, w := range b {
		if w != 0 {
			return false
		}
	}
	return true
}

// intersects reports whether b and other share any member.
func (b bitset) intersects(other bitset) bool {
	for i, w := range b {
		if w&other[i] != 0 {
			return true
		}
	}
	return false
}

// members returns the set's elements in ascending order.
func (b bitset) members() []int {
	var out []int
	for wi, w := range b {
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			out = append(out, wi*wordBits+bit)
			w &= w - 1
		}
	}
	return out
}

// key returns a map key uniquely identifying the set contents.
func (b bitset) key() string {
	buf := make([]byte, len(b)*8)
	for i, w := range b {
		binary.LittleEndian.PutUint64(buf[i*8:], w)
	}
	return string(buf)
}
