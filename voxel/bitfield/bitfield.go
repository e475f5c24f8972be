// Package bitfield implements sub-byte bit slicing for the 1-8 bit fields
// packed into a block's inline state. Go has no const generics over integer
// widths, so the width N that Rust checks at compile time is carried at
// runtime on Field and validated with a debug-only assertion instead.
package bitfield

import "github.com/oriumgames/voxelcore/voxel/internal/debug"

// Field is a value wrapping a byte truncated to its low N bits.
type Field struct {
	n   uint8
	val uint8
}

// New masks v to its low n bits. n must be in [1,8].
func New(n, v uint8) Field {
	debug.Assert(n >= 1 && n <= 8, "bitfield: width out of range")
	return Field{n: n, val: v & mask(n)}
}

// Get returns bits [start,end) of the field, right-justified. Callers must
// ensure start < end <= n; violations are only caught in debug builds.
func (f Field) Get(start, end uint8) uint8 {
	debug.Assert(start < end && end <= f.n, "bitfield: Get range out of bounds")
	width := end - start
	return (f.val >> start) & mask(width)
}

// Set overwrites bits [start,end) with the low (end-start) bits of v,
// leaving the remainder of the field untouched.
func (f Field) Set(start, end uint8, v uint8) Field {
	debug.Assert(start < end && end <= f.n, "bitfield: Set range out of bounds")
	width := end - start
	clear := ^(mask(width) << start)
	f.val = (f.val & clear) | ((v & mask(width)) << start)
	return f
}

// Inner returns the byte this field wraps.
func (f Field) Inner() uint8 {
	return f.val
}

// Width returns N, the number of valid bits in this field.
func (f Field) Width() uint8 {
	return f.n
}

func mask(width uint8) uint8 {
	if width >= 8 {
		return 0xff
	}
	return (1 << width) - 1
}
