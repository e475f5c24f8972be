// Package block implements the packed-cell encoding, the block-type
// contract, and the type-erased Object/Ref/MutRef handles described by the
// voxel storage core: client code defines concrete block types externally,
// and this package lets a reader recover an identifier, a display name, and
// (via generic downcast) a typed handle from a 16-bit packed word.
package block

import "github.com/oriumgames/voxelcore/voxel/internal/debug"

// Cell is the 16-bit packed representation of a single block position.
// The top bit selects one of two shapes:
//
//	inline (tag 0): bits 14..6 = 9-bit block id, bits 5..0 = 6-bit state.
//	slot   (tag 1): bits 14..0 = 15-bit arena slot index.
type Cell uint16

// Tag identifies which shape a Cell carries.
type Tag uint8

const (
	TagInline Tag = iota
	TagSlot
)

const (
	tagBit      = 15
	idShift     = 6
	idMask      = 0x1FF // 9 bits
	stateMask   = 0x3F  // 6 bits
	slotMask    = 0x7FFF
	maxBlockID  = 1 << 9
	maxSlotAddr = 1 << 15
)

// Zero is the inline cell with id 0 and state 0 — the default empty block.
const Zero Cell = 0

// Inline builds an inline cell with the given block id in [0,512) and
// packed state in [0,64).
func Inline(id uint16, state uint8) Cell {
	debug.Assert(id < maxBlockID, "block: inline id out of range")
	return Cell((uint16(id) << idShift) | uint16(state&stateMask))
}

// Slot builds a slot cell addressing the given arena index in [0,32768).
func Slot(slot uint16) Cell {
	debug.Assert(slot < maxSlotAddr, "block: slot index out of range")
	return Cell((1 << tagBit) | (slot & slotMask))
}

// Tag reports whether c is an inline or slot cell.
func (c Cell) Tag() Tag {
	if c&(1<<tagBit) != 0 {
		return TagSlot
	}
	return TagInline
}

// ID returns the 9-bit block id of an inline cell. The caller must have
// observed Tag() == TagInline; in debug builds this is asserted.
func (c Cell) ID() uint16 {
	debug.Assert(c.Tag() == TagInline, "block: ID() called on a slot cell")
	return uint16(c>>idShift) & idMask
}

// State returns the 6-bit packed state of an inline cell. The caller must
// have observed Tag() == TagInline; in debug builds this is asserted.
func (c Cell) State() uint8 {
	debug.Assert(c.Tag() == TagInline, "block: State() called on a slot cell")
	return uint8(c) & stateMask
}

// SlotIndex returns the arena slot addressed by a slot cell. The caller
// must have observed Tag() == TagSlot; in debug builds this is asserted.
func (c Cell) SlotIndex() uint16 {
	debug.Assert(c.Tag() == TagSlot, "block: SlotIndex() called on an inline cell")
	return uint16(c) & slotMask
}

// WithState rewrites the 6 state bits of an inline cell, preserving its id
// and tag bits.
func (c Cell) WithState(state uint8) Cell {
	debug.Assert(c.Tag() == TagInline, "block: WithState() called on a slot cell")
	return Cell(uint16(c)&^stateMask | uint16(state&stateMask))
}
