package aecs

import (
	"math/bits"
	"strconv"
	"strings"
)

const (
	bitsPerWord = 64
	maskWords   = 4
)

// Mask represents a set of up to 256 component kinds. It is the structural
// identity of an archetype: each bit corresponds to a component kind, and if
// the bit is set, the archetype carries that kind.
type Mask [maskWords]uint64

// NewMask returns a mask with the bit of every given kind set.
func NewMask(kinds ...Kind) Mask {
	var m Mask
	for _, k := range kinds {
		m.Set(k)
	}
	return m
}

// MaskFromBits builds a mask from a plain integer holding the first 64 kinds,
// so that MaskFromBits(3) is {0, 1}.
func MaskFromBits(v uint64) Mask {
	return Mask{v}
}

// Set enables the bit corresponding to the given kind.
func (m *Mask) Set(k Kind) {
	i := k >> 6 // (k / 64) to find the uint64 index
	o := k & 63 // (k % 64) to find the bit offset
	m[i] |= uint64(1) << uint64(o)
}

// With returns a copy of the mask with k set.
func (m Mask) With(k Kind) Mask {
	m.Set(k)
	return m
}

// Has checks if a specific kind is set in the mask.
func (m Mask) Has(k Kind) bool {
	i := k >> 6
	o := k & 63
	return (m[i] & (uint64(1) << uint64(o))) != 0
}

// Contains checks if all the bits set in the `sub` mask are also set in the
// receiver mask `m`. This is used to determine if an archetype's component
// set is a superset of a query's required components.
//
// Parameters:
//   - sub: The mask representing the subset of kinds to check for.
//
// Returns:
//   - true if the receiver contains all kinds from the subset, false otherwise.
func (m Mask) Contains(sub Mask) bool {
	return (m[0]&sub[0]) == sub[0] &&
		(m[1]&sub[1]) == sub[1] &&
		(m[2]&sub[2]) == sub[2] &&
		(m[3]&sub[3]) == sub[3]
}

// IsZero reports whether no bit is set.
func (m Mask) IsZero() bool {
	return m[0]|m[1]|m[2]|m[3] == 0
}

// Count returns the number of kinds in the mask.
func (m Mask) Count() int {
	return bits.OnesCount64(m[0]) + bits.OnesCount64(m[1]) +
		bits.OnesCount64(m[2]) + bits.OnesCount64(m[3])
}

// Bits returns the low 64 bits of the mask as a plain integer.
func (m Mask) Bits() uint64 {
	return m[0]
}

// LowestBit returns the smallest kind set in the mask. ok is false for an
// empty mask.
func (m Mask) LowestBit() (k Kind, ok bool) {
	for i, w := range m {
		if w != 0 {
			return Kind(i*bitsPerWord + bits.TrailingZeros64(w)), true
		}
	}
	return 0, false
}

// NextBit removes the lowest set bit from the mask and returns it. It is the
// scan-and-clear step behind ForEach:
//
//	for k, ok := m.NextBit(); ok; k, ok = m.NextBit() { ... }
func (m *Mask) NextBit() (k Kind, ok bool) {
	for i := range m {
		w := m[i]
		if w == 0 {
			continue
		}
		m[i] = w & (w - 1)
		return Kind(i*bitsPerWord + bits.TrailingZeros64(w)), true
	}
	return 0, false
}

// ForEach calls fn for every set kind, low to high, skipping zero runs a word
// at a time. Iteration stops when fn returns false.
func (m Mask) ForEach(fn func(Kind) bool) {
	for k, ok := m.NextBit(); ok; k, ok = m.NextBit() {
		if !fn(k) {
			return
		}
	}
}

// Kinds returns the set kinds in ascending order.
func (m Mask) Kinds() []Kind {
	out := make([]Kind, 0, m.Count())
	m.ForEach(func(k Kind) bool {
		out = append(out, k)
		return true
	})
	return out
}

// String renders the mask as a set of kind indices, e.g. "{0,1,6}".
func (m Mask) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	m.ForEach(func(k Kind) bool {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		sb.WriteString(strconv.Itoa(int(k)))
		return true
	})
	sb.WriteByte('}')
	return sb.String()
}
