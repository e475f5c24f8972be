package world

import (
	"fmt"
	"os"

	"github.com/oriumgames/voxelcore/voxel/block"
	"github.com/oriumgames/voxelcore/voxel/internal/debug"
)

// ChunkSize is the edge length of a chunk, in cells.
const ChunkSize = 32

// ChunkVolume is the number of cells in a chunk.
const ChunkVolume = ChunkSize * ChunkSize * ChunkSize

// Flatten maps a local position in [0,32)^3 to its flat cell index.
func Flatten(x, y, z int) int {
	return x + ChunkSize*(y+ChunkSize*z)
}

// InBounds reports whether x, y, z each lie in [0, ChunkSize).
func InBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkSize &&
		y >= 0 && y < ChunkSize &&
		z >= 0 && z < ChunkSize
}

// Chunk is a 32-cubed grid of packed cells plus the side arena backing its
// heap-stored blocks. A Chunk carries no lock of its own — concurrent
// access is mediated by World, which holds one lock per chunk entry.
type Chunk struct {
	pos      ChunkPos
	registry *block.BlockRegistry
	cells    [ChunkVolume]block.Cell
	arena    []block.Object
	free     []uint16
}

// NewChunk creates a chunk filled with the registry's default empty cell
// and an empty arena.
func NewChunk(pos ChunkPos, reg *block.BlockRegistry) *Chunk {
	c := &Chunk{pos: pos, registry: reg}
	empty := block.Inline(reg.EmptyID(), 0)
	for i := range c.cells {
		c.cells[i] = empty
	}
	return c
}

// Pos returns the chunk's position, in units of ChunkSize world cells.
func (c *Chunk) Pos() ChunkPos {
	return c.pos
}

// Cells returns a copy of the chunk's raw packed cell grid, in flattened
// order. Heap-stored blocks appear only as their slot tag — the arena
// itself is not exposed, since boxed block state has no generic
// serialization in the storage core. Intended for snapshotting
// (voxel/save) and diagnostics, not for the hot read/write path.
func (c *Chunk) Cells() [ChunkVolume]block.Cell {
	return c.cells
}

func (c *Chunk) heapLookup(slot uint16) block.Object {
	return c.arena[slot]
}

// Get returns the Object at a local position, or false if out of bounds.
func (c *Chunk) Get(x, y, z int) (block.Object, bool) {
	if !InBounds(x, y, z) {
		return nil, false
	}
	cell := &c.cells[Flatten(x, y, z)]
	return block.ObjectFor(c.registry, cell, c.heapLookup, false)
}

// GetMut returns a mutable Object handle at a local position, or false if
// out of bounds. Pass the result to block.CastMut (or use WithMut) to reach
// a typed, writable view.
func (c *Chunk) GetMut(x, y, z int) (block.Object, bool) {
	if !InBounds(x, y, z) {
		return nil, false
	}
	cell := &c.cells[Flatten(x, y, z)]
	return block.ObjectFor(c.registry, cell, c.heapLookup, true)
}

// arenaInsert boxes blk into the arena, reusing a freed slot if one is
// available, and returns its slot index.
func (c *Chunk) arenaInsert(blk block.Object) uint16 {
	if n := len(c.free); n > 0 {
		slot := c.free[n-1]
		c.free = c.free[:n-1]
		c.arena[slot] = blk
		return slot
	}
	c.arena = append(c.arena, blk)
	return uint16(len(c.arena) - 1)
}

// arenaFree releases a boxed instance, making its slot eligible for reuse.
func (c *Chunk) arenaFree(slot uint16) {
	c.arena[slot] = nil
	c.free = append(c.free, slot)
}

// Set implements the chunk's set protocol: free any prior slot, resolve
// blk's registered id, then install the new cell. Out of bounds is a
// silent no-op, matching the storage core's contract. An unregistered
// type is also a silent no-op — the cell is left as step 2 left it — since
// it is a routine caller mistake, not a fault Set itself should surface;
// in debug builds it prints a diagnostic instead of failing quietly.
func Set[T block.Block](c *Chunk, x, y, z int, blk T) error {
	if !InBounds(x, y, z) {
		return nil
	}
	idx := Flatten(x, y, z)
	prior := c.cells[idx]
	if prior.Tag() == block.TagSlot {
		c.arenaFree(prior.SlotIndex())
	}

	id, heap, state, ok := block.Encode(c.registry, blk)
	if !ok {
		if debug.Enabled() {
			fmt.Fprintf(os.Stderr, "voxel: set at (%d,%d,%d): type %T is not registered\n", x, y, z, blk)
		}
		return nil
	}
	if heap {
		slot := c.arenaInsert(blk)
		c.cells[idx] = block.Slot(slot)
		return nil
	}
	c.cells[idx] = block.Inline(id, state)
	return nil
}

// WithMut downcasts the Object at a local position to *T (Heap) or a
// temporary T (Inline), lets fn mutate it, and commits the result. This is
// the preferred mutable entry point: it cannot leak an un-released MutRef.
func WithMut[T block.Block](c *Chunk, x, y, z int, fn func(*T)) error {
	obj, ok := c.GetMut(x, y, z)
	if !ok {
		return fmt.Errorf("world: with_mut at (%d,%d,%d): out of bounds", x, y, z)
	}
	ref, ok := block.CastMut[T](obj)
	if !ok {
		return fmt.Errorf("world: with_mut at (%d,%d,%d): cell is not a %T", x, y, z, *new(T))
	}
	defer ref.Release()
	fn(ref.Value())
	return nil
}

// Iter yields (localPos, Object) for every cell in flattened order. Range
// over it directly: for pos, obj := range chunk.Iter.
func (c *Chunk) Iter(yield func(pos [3]int, o block.Object) bool) {
	for z := 0; z < ChunkSize; z++ {
		for y := 0; y < ChunkSize; y++ {
			for x := 0; x < ChunkSize; x++ {
				cell := &c.cells[Flatten(x, y, z)]
				obj, _ := block.ObjectFor(c.registry, cell, c.heapLookup, false)
				if !yield([3]int{x, y, z}, obj) {
					return
				}
			}
		}
	}
}
