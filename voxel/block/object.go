package block

import "github.com/oriumgames/voxelcore/voxel/bitfield"

// Object is the type-erased capability a registry produces from a Cell: it
// exposes a block's stable id and display name without the caller needing
// to know whether the underlying storage is inline or heap. Any Block
// value (in particular, a heap block fetched straight out of a chunk's
// arena) already satisfies Object.
type Object = Block

// inlineObject is the Object implementation backing an inline cell. Its
// Name() unpacks a fresh T from the packed state on every call rather than
// caching it, since the registry's contract is "unpack before delegating
// to T.Name", not "cache the unpacked value".
type inlineObject struct {
	vt   *vtableEntry
	data bitfield.Field
	back *Cell // set only when obtained through a mutable accessor
}

func (o inlineObject) ID() string   { return o.vt.id }
func (o inlineObject) Name() string { return o.vt.unpack(o.data).Name() }

// objectFor builds the Object handle for a cell given its registry vtable.
// mutable carries through the back-pointer needed to later reconstruct a
// MutRef via CastMut; pass false when called from a read-only accessor.
func objectFor(br *BlockRegistry, c *Cell, heap func(slot uint16) Object, mutable bool) (Object, bool) {
	switch c.Tag() {
	case TagSlot:
		return heap(c.SlotIndex()), true
	default:
		vt, ok := br.vtableFor(c.ID())
		if !ok {
			return nil, false
		}
		obj := inlineObject{vt: vt, data: bitfield.New(6, c.State())}
		if mutable {
			obj.back = c
		}
		return obj, true
	}
}

// Ref is an immutable typed handle produced by Cast. For an inline block it
// owns a freshly unpacked T; for a heap block, T is already the registered
// pointer type (e.g. *Chest), so the "borrow" is just that pointer, and Go
// gives no way to prevent mutation through it the way Rust's &T does.
type Ref[T any] struct {
	value T
}

// Get returns the referenced value.
func (r Ref[T]) Get() T {
	return r.value
}

// Is reports whether o's underlying block type key equals T's. For a Heap
// type, T must be the same pointer type it was registered with (e.g.
// *Chest, not Chest).
func Is[T Block](o Object) bool {
	switch v := o.(type) {
	case inlineObject:
		return v.vt.typeKey == keyOf[T]()
	default:
		_, ok := o.(T)
		return ok
	}
}

// Cast attempts to downcast o to an immutable Ref[T].
func Cast[T Block](o Object) (Ref[T], bool) {
	switch v := o.(type) {
	case inlineObject:
		if v.vt.typeKey != keyOf[T]() {
			return Ref[T]{}, false
		}
		t, ok := v.vt.unpack(v.data).(T)
		if !ok {
			return Ref[T]{}, false
		}
		return Ref[T]{value: t}, true
	default:
		t, ok := o.(T)
		if !ok {
			return Ref[T]{}, false
		}
		return Ref[T]{value: t}, true
	}
}

// MutRef is a mutable typed handle produced by CastMut. For an inline
// block it owns a temporary T; Release() re-packs it and writes it back
// through the cell it came from, preserving the id bits. Releasing an
// unmutated handle is observably a no-op, since the pack/unpack round-trip
// law guarantees re-packing the unmutated value reproduces the same bits.
// For a Heap block, T is already the registered pointer type, so mutation
// through Value() is visible immediately and Release is a no-op.
type MutRef[T Block] struct {
	value    T
	back     *Cell
	vt       *vtableEntry
	released bool
}

// Value returns a pointer to the mutable T: for a Heap block this points
// at the temporary holding the arena pointer itself (dereference twice to
// reach fields, since T is already a pointer); for an Inline block it
// points at the temporary unpacked copy.
func (m *MutRef[T]) Value() *T {
	return &m.value
}

// Release commits pending writes. It is safe to call more than once; only
// the first call has an effect.
func (m *MutRef[T]) Release() {
	if m.released || m.back == nil {
		m.released = true
		return
	}
	packed := m.vt.pack(m.value)
	*m.back = m.back.WithState(packed.Inner())
	m.released = true
}

// CastMut attempts to downcast o, which must have been obtained through a
// mutable accessor (Chunk.GetMut / World.GetMut), to a MutRef[T].
func CastMut[T Block](o Object) (MutRef[T], bool) {
	switch v := o.(type) {
	case inlineObject:
		if v.back == nil || v.vt.typeKey != keyOf[T]() {
			return MutRef[T]{}, false
		}
		t, ok := v.vt.unpack(v.data).(T)
		if !ok {
			return MutRef[T]{}, false
		}
		return MutRef[T]{value: t, back: v.back, vt: v.vt}, true
	default:
		t, ok := o.(T)
		if !ok {
			return MutRef[T]{}, false
		}
		return MutRef[T]{value: t}, true
	}
}
