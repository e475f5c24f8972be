package block

import (
	"fmt"
	"reflect"

	"github.com/oriumgames/voxelcore/voxel/bitfield"
	"github.com/oriumgames/voxelcore/voxel/registry"
)

// vtableEntry is the per-id metadata the registry keeps: enough capability
// to read id/name from a cell regardless of whether it's inline or heap,
// and, for inline types, to materialize/re-pack a T from its 6 state bits.
// The callable's input is the cell's data, not the block — hiding the
// inline/heap distinction from callers, per the design notes.
type vtableEntry struct {
	id      string
	packing Packing
	typeKey reflect.Type

	// inline only
	unpack func(bitfield.Field) Block
	pack   func(Block) bitfield.Field
}

// BlockRegistry wraps a TypeRegistry with block-specific vtables and
// produces type-erased Object handles from a Cell. Once constructed and
// populated at startup it is safe for concurrent read-only use; every
// Chunk holds a shared *BlockRegistry that never changes after the chunk
// is created.
type BlockRegistry struct {
	reg     *registry.Registry[*vtableEntry]
	emptyID uint16
}

// NewBlockRegistry creates a registry with id 0 pre-bound to empty, the
// default block installed in every freshly created cell. Registering
// another type over id 0 is impossible: ids are assigned monotonically and
// empty always claims the first slot.
func NewBlockRegistry[T Block](empty T) *BlockRegistry {
	br := &BlockRegistry{reg: registry.New[*vtableEntry]()}
	id := RegisterInline(br, empty, func(T) bitfield.Field { return bitfield.New(6, 0) }, func(bitfield.Field) T { return empty })
	br.emptyID = id
	return br
}

// EmptyID returns the id of the default empty block (always 0).
func (br *BlockRegistry) EmptyID() uint16 {
	return br.emptyID
}

func keyOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// RegisterInline registers T as an Inline block type. sample is used only
// to read T.ID() (which must be constant across instances); pack/unpack
// must satisfy the round-trip law unpack(pack(b)) == b and
// pack(unpack(s)) == s for every s in the image of pack.
func RegisterInline[T Block](br *BlockRegistry, sample T, pack func(T) bitfield.Field, unpack func(bitfield.Field) T) uint16 {
	key := keyOf[T]()
	vt := &vtableEntry{
		id:      sample.ID(),
		packing: PackingInline,
		typeKey: key,
		unpack:  func(f bitfield.Field) Block { return unpack(f) },
		pack: func(b Block) bitfield.Field {
			t, ok := b.(T)
			if !ok {
				panic(fmt.Sprintf("block: pack called with mismatched type for %q", sample.ID()))
			}
			return pack(t)
		},
	}
	return br.reg.Register(key, vt)
}

// RegisterHeap registers T as a Heap block type: instances are stored
// boxed in the chunk's arena and the cell carries only a slot index.
// sample is used only to read T.ID().
func RegisterHeap[T Block](br *BlockRegistry, sample T) uint16 {
	key := keyOf[T]()
	vt := &vtableEntry{
		id:      sample.ID(),
		packing: PackingHeap,
		typeKey: key,
	}
	return br.reg.Register(key, vt)
}

// idOf returns the id registered for T, if any.
func idOf[T Block](br *BlockRegistry) (uint16, bool) {
	return br.reg.ID(keyOf[T]())
}

// IDOf returns the id registered for T, if any. Exported for callers
// outside this package (such as voxel/world's Set) that need to resolve a
// type to its cell id without going through a vtable.
func IDOf[T Block](br *BlockRegistry) (uint16, bool) {
	return idOf[T](br)
}

// vtableFor returns the vtable entry for a given cell id, if registered.
func (br *BlockRegistry) vtableFor(id uint16) (*vtableEntry, bool) {
	_, vt, ok := br.reg.Get(id)
	return vt, ok
}

// Encode resolves blk's registered id and, for an Inline type, packs its
// state. heap reports whether T is registered Heap, in which case the
// caller is responsible for boxing blk into an arena and building a Cell
// with Slot; state is meaningless when heap is true. ok is false when T is
// not registered at all.
func Encode[T Block](br *BlockRegistry, blk T) (id uint16, heap bool, state uint8, ok bool) {
	id, ok = idOf[T](br)
	if !ok {
		return 0, false, 0, false
	}
	vt, _ := br.vtableFor(id)
	if vt.packing == PackingHeap {
		return id, true, 0, true
	}
	return id, false, vt.pack(blk).Inner(), true
}

// ObjectFor builds the Object handle for a cell given its registry vtable.
// heapLookup resolves a slot-shaped cell's index to its boxed Object; it is
// only invoked for slot cells, so callers with no arena may pass nil.
// mutable carries the cell's address through to the returned handle so a
// later CastMut can rebuild a MutRef against it; pass false from read-only
// accessors.
func ObjectFor(br *BlockRegistry, c *Cell, heapLookup func(slot uint16) Object, mutable bool) (Object, bool) {
	return objectFor(br, c, heapLookup, mutable)
}
