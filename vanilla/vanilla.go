// Package vanilla provides a small set of example block types — Air,
// WoodenPlanks, and Chest — used to exercise voxel/block and voxel/world
// end to end and to demonstrate how a game registers its own block types
// with a BlockRegistry. None of it is part of the storage core itself.
package vanilla

import (
	"fmt"

	"github.com/oriumgames/voxelcore/voxel/bitfield"
	"github.com/oriumgames/voxelcore/voxel/block"
	"github.com/oriumgames/voxelcore/voxel/block/fields"
)

// Air is the default empty block every freshly created chunk is filled
// with. It carries no state.
type Air struct{}

func (Air) ID() string   { return "air" }
func (Air) Name() string { return "Air" }

// WoodVariant is the species a WoodenPlanks block is made of.
type WoodVariant int

const (
	Oak WoodVariant = iota
	Spruce
	Birch
	Jungle
	Acacia
	DarkOak
)

func (v WoodVariant) String() string {
	switch v {
	case Oak:
		return "Oak"
	case Spruce:
		return "Spruce"
	case Birch:
		return "Birch"
	case Jungle:
		return "Jungle"
	case Acacia:
		return "Acacia"
	case DarkOak:
		return "Dark Oak"
	default:
		return "Unknown"
	}
}

// WoodenPlanks is an Inline block: its only state is which wood species it
// was cut from, which fits in 3 bits.
type WoodenPlanks struct {
	Variant WoodVariant
}

func (WoodenPlanks) ID() string { return "wooden_planks" }
func (p WoodenPlanks) Name() string {
	return fmt.Sprintf("%s Planks", p.Variant)
}

var woodVariantCodec = fields.Enum(0, Oak, Spruce, Birch, Jungle, Acacia, DarkOak)

// PackWoodenPlanks encodes a WoodenPlanks' variant into its 6-bit state.
func PackWoodenPlanks(p WoodenPlanks) bitfield.Field {
	return woodVariantCodec.Pack(bitfield.New(6, 0), p.Variant)
}

// UnpackWoodenPlanks decodes a WoodenPlanks from its packed state.
func UnpackWoodenPlanks(state bitfield.Field) WoodenPlanks {
	return WoodenPlanks{Variant: woodVariantCodec.Unpack(state)}
}

// Facing is the horizontal direction a Chest's buckle faces.
type Facing int

const (
	North Facing = iota
	South
	East
	West
)

// Chest is a Heap block: its inventory is unbounded, so it is boxed into
// the chunk's arena rather than packed inline. Its facing and custom name
// are ordinary Go fields rather than packed bits, since Heap blocks pay no
// state-width tax.
type Chest struct {
	Contents   []string
	Facing     Facing
	CustomName string
}

func (*Chest) ID() string { return "chest" }
func (c *Chest) Name() string {
	if c.CustomName != "" {
		return c.CustomName
	}
	return "Chest"
}

// Register installs WoodenPlanks and Chest into br. It does not install
// Air: the default empty block is bound to id 0 by NewBlockRegistry, which
// NewRegistry calls with Air before calling Register.
func Register(br *block.BlockRegistry) {
	block.RegisterInline(br, WoodenPlanks{}, PackWoodenPlanks, UnpackWoodenPlanks)
	block.RegisterHeap[*Chest](br, &Chest{})
}

// NewRegistry builds a fresh BlockRegistry with the vanilla block set
// installed, air bound to id 0.
func NewRegistry() *block.BlockRegistry {
	br := block.NewBlockRegistry[Air](Air{})
	Register(br)
	return br
}
