package block

// Block is the contract a client-defined block type must satisfy: a stable
// identifier and a display name that may read per-instance state. Packing
// discipline (Inline vs Heap) is not a method on Block — it is chosen by
// which Register* function the type is registered with, since Go has no
// way to attach a compile-time-checked (pack, unpack) pair to a type as an
// associated function the way Rust does.
type Block interface {
	// ID returns this block's stable identifier, e.g. "wooden_planks".
	// Constant for all instances of a given type.
	ID() string
	// Name returns this instance's display name.
	Name() string
}

// Packing is the storage discipline a registered block type uses.
type Packing uint8

const (
	// PackingInline means the type's entire state fits in 6 bits and is
	// stored directly inside the cell word.
	PackingInline Packing = iota
	// PackingHeap means the type's state is stored in the chunk's arena;
	// its cell carries only a slot index.
	PackingHeap
)

func (p Packing) String() string {
	switch p {
	case PackingInline:
		return "inline"
	case PackingHeap:
		return "heap"
	default:
		return "unknown"
	}
}
