// Package fields provides the declarative field codecs used to synthesize
// an Inline block type's (pack, unpack) pair, per §4.3 of the storage
// core's bit-budget rules: enum-like fields consume ceil(log2(k)) bits at
// a compile-time-known offset, integer ranges consume ceil(log2(hi-lo))
// bits, and the running sum of consumed widths must not exceed 6 — the
// width of a cell's packed state.
package fields

import (
	"fmt"
	"math/bits"

	"github.com/oriumgames/voxelcore/voxel/bitfield"
)

// Codec packs and unpacks a single typed field at a fixed bit offset
// within a block's 6-bit inline state.
type Codec[T any] struct {
	offset, width uint8
	pack          func(T) uint8
	unpack        func(uint8) T
}

// Pack writes v's field bits into state at this codec's offset.
func (c Codec[T]) Pack(state bitfield.Field, v T) bitfield.Field {
	return state.Set(c.offset, c.offset+c.width, c.pack(v))
}

// Unpack reads this codec's field bits out of state.
func (c Codec[T]) Unpack(state bitfield.Field) T {
	return c.unpack(state.Get(c.offset, c.offset+c.width))
}

// Width reports how many bits this codec consumes.
func (c Codec[T]) Width() uint8 {
	return c.width
}

// Enum builds a codec over a small fixed set of variants, encoded as the
// variant's index. An out-of-list value folds to index 0 on Pack; an
// unrecognized code unpacks to the first listed variant.
func Enum[T comparable](offset uint8, variants ...T) Codec[T] {
	if len(variants) == 0 {
		panic("fields: Enum requires at least one variant")
	}
	width := bitsFor(len(variants))
	index := make(map[T]uint8, len(variants))
	for i, v := range variants {
		index[v] = uint8(i)
	}
	return Codec[T]{
		offset: offset,
		width:  width,
		pack: func(v T) uint8 {
			if i, ok := index[v]; ok {
				return i
			}
			return 0
		},
		unpack: func(code uint8) T {
			if int(code) < len(variants) {
				return variants[code]
			}
			return variants[0]
		},
	}
}

// Range builds a codec over the half-open integer range [lo, hi), encoded
// as v-lo. Out-of-range values clamp to lo on Pack.
func Range(offset uint8, lo, hi int) Codec[int] {
	if hi <= lo {
		panic(fmt.Sprintf("fields: Range requires hi > lo, got [%d,%d)", lo, hi))
	}
	width := bitsFor(hi - lo)
	return Codec[int]{
		offset: offset,
		width:  width,
		pack: func(v int) uint8 {
			if v < lo || v >= hi {
				return 0
			}
			return uint8(v - lo)
		},
		unpack: func(code uint8) int {
			return lo + int(code)
		},
	}
}

// Budget accumulates field widths as they are declared and panics if their
// running sum would exceed 6 bits, the capacity of a cell's packed state.
// A type whose total field bit-budget exceeds 6 must instead be registered
// as Heap.
type Budget struct {
	used uint8
}

// Reserve records width bits consumed at the current offset and returns
// that offset.
func (b *Budget) Reserve(width uint8) (offset uint8) {
	if b.used+width > 6 {
		panic(fmt.Sprintf("fields: inline state budget exceeded: %d + %d > 6 bits", b.used, width))
	}
	offset = b.used
	b.used += width
	return offset
}

// EnumAuto is Enum with its offset taken from (and reserved in) b, so
// callers can declare fields in order without computing offsets by hand.
func EnumAuto[T comparable](b *Budget, variants ...T) Codec[T] {
	offset := b.Reserve(bitsFor(len(variants)))
	return Enum(offset, variants...)
}

// RangeAuto is Range with its offset taken from (and reserved in) b.
func RangeAuto(b *Budget, lo, hi int) Codec[int] {
	offset := b.Reserve(bitsFor(hi - lo))
	return Range(offset, lo, hi)
}

func bitsFor(n int) uint8 {
	if n <= 1 {
		return 0
	}
	return uint8(bits.Len(uint(n - 1)))
}
