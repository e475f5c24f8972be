package block

import (
	"testing"

	"github.com/oriumgames/voxelcore/voxel/bitfield"
)

type testEmpty struct{}

func (testEmpty) ID() string   { return "test:empty" }
func (testEmpty) Name() string { return "Empty" }

type testLamp struct {
	Lit bool
}

func (testLamp) ID() string { return "test:lamp" }
func (l testLamp) Name() string {
	if l.Lit {
		return "Lamp (lit)"
	}
	return "Lamp"
}

func packLamp(l testLamp) bitfield.Field {
	v := uint8(0)
	if l.Lit {
		v = 1
	}
	return bitfield.New(6, 0).Set(0, 1, v)
}

func unpackLamp(f bitfield.Field) testLamp {
	return testLamp{Lit: f.Get(0, 1) != 0}
}

type testChest struct {
	Items []string
}

func (*testChest) ID() string   { return "test:chest" }
func (*testChest) Name() string { return "Chest" }

func newTestRegistry() (*BlockRegistry, uint16, uint16) {
	br := NewBlockRegistry[testEmpty](testEmpty{})
	lampID := RegisterInline(br, testLamp{}, packLamp, unpackLamp)
	chestID := RegisterHeap[*testChest](br, &testChest{})
	return br, lampID, chestID
}

func TestIsAndCastInline(t *testing.T) {
	br, lampID, _ := newTestRegistry()
	c := Inline(lampID, packLamp(testLamp{Lit: true}).Inner())

	obj, ok := objectFor(br, &c, nil, false)
	if !ok {
		t.Fatalf("objectFor failed for registered inline id")
	}
	if !Is[testLamp](obj) {
		t.Fatalf("Is[testLamp] = false, want true")
	}
	if Is[*testChest](obj) {
		t.Fatalf("Is[*testChest] = true for a lamp cell, want false")
	}
	ref, ok := Cast[testLamp](obj)
	if !ok {
		t.Fatalf("Cast[testLamp] failed")
	}
	if !ref.Get().Lit {
		t.Fatalf("Cast round-trip lost Lit=true")
	}
}

func TestCastMutInlineCommits(t *testing.T) {
	br, lampID, _ := newTestRegistry()
	c := Inline(lampID, packLamp(testLamp{Lit: false}).Inner())

	obj, ok := objectFor(br, &c, nil, true)
	if !ok {
		t.Fatalf("objectFor failed")
	}
	m, ok := CastMut[testLamp](obj)
	if !ok {
		t.Fatalf("CastMut[testLamp] failed")
	}
	m.Value().Lit = true
	m.Release()

	if got := unpackLamp(bitfield.New(6, c.State())); !got.Lit {
		t.Fatalf("Release did not commit mutation back to the cell")
	}
}

func TestCastMutInlineWithoutBackFails(t *testing.T) {
	br, lampID, _ := newTestRegistry()
	c := Inline(lampID, 0)

	obj, ok := objectFor(br, &c, nil, false)
	if !ok {
		t.Fatalf("objectFor failed")
	}
	if _, ok := CastMut[testLamp](obj); ok {
		t.Fatalf("CastMut succeeded on a read-only handle")
	}
}

func TestIsAndCastHeap(t *testing.T) {
	chest := &testChest{Items: []string{"torch"}}

	if !Is[*testChest](chest) {
		t.Fatalf("Is[*testChest] = false for a *testChest object")
	}
	ref, ok := Cast[*testChest](chest)
	if !ok {
		t.Fatalf("Cast[*testChest] failed")
	}
	if len(ref.Get().Items) != 1 {
		t.Fatalf("Cast round-trip lost heap contents")
	}

	m, ok := CastMut[*testChest](chest)
	if !ok {
		t.Fatalf("CastMut[*testChest] failed")
	}
	(*m.Value()).Items = append((*m.Value()).Items, "apple")
	m.Release()
	if len(chest.Items) != 2 {
		t.Fatalf("heap mutation through MutRef did not write through, got %v", chest.Items)
	}
}

func TestCastWrongTypeFails(t *testing.T) {
	br, lampID, _ := newTestRegistry()
	c := Inline(lampID, 0)
	obj, _ := objectFor(br, &c, nil, false)

	if _, ok := Cast[*testChest](obj); ok {
		t.Fatalf("Cast[*testChest] succeeded on a lamp cell")
	}
}
