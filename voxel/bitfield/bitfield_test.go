package bitfield

import "testing"

func TestGetRange(t *testing.T) {
	f := New(6, 0b0011_1111)

	if got := f.Get(0, 1); got != 0b0000_0001 {
		t.Fatalf("Get(0,1) = %08b, want %08b", got, 0b0000_0001)
	}
	if got := f.Get(0, 4); got != 0b0000_1111 {
		t.Fatalf("Get(0,4) = %08b, want %08b", got, 0b0000_1111)
	}
	if got := f.Get(0, 6); got != 0b0011_1111 {
		t.Fatalf("Get(0,6) = %08b, want %08b", got, 0b0011_1111)
	}
	if got := f.Get(4, 6); got != 0b0000_0011 {
		t.Fatalf("Get(4,6) = %08b, want %08b", got, 0b0000_0011)
	}

	f = New(6, 0b0010_1010)
	if got := f.Get(0, 1); got != 0b0000_0000 {
		t.Fatalf("Get(0,1) = %08b, want %08b", got, 0)
	}
	if got := f.Get(0, 4); got != 0b0000_1010 {
		t.Fatalf("Get(0,4) = %08b, want %08b", got, 0b0000_1010)
	}
}

func TestClipNew(t *testing.T) {
	if got := New(6, 0b1111_1111).Inner(); got != 0b0011_1111 {
		t.Fatalf("New clip = %08b, want %08b", got, 0b0011_1111)
	}
	if got := New(6, 0b1100_1100).Inner(); got != 0b0000_1100 {
		t.Fatalf("New clip = %08b, want %08b", got, 0b0000_1100)
	}
}

func TestSetRange(t *testing.T) {
	f := New(6, 0b0011_1111)
	f = f.Set(0, 2, 0b0000_0010)
	if got := f.Inner(); got != 0b0011_1110 {
		t.Fatalf("Set(0,2) = %08b, want %08b", got, 0b0011_1110)
	}
	f = f.Set(2, 6, 0b0010_1010)
	if got := f.Inner(); got != 0b0010_1010 {
		t.Fatalf("Set(2,6) = %08b, want %08b", got, 0b0010_1010)
	}

	f = New(6, 0)
	f = f.Set(0, 6, 0xff)
	if got := f.Inner(); got != 0b0011_1111 {
		t.Fatalf("Set(0,6) full = %08b, want %08b", got, 0b0011_1111)
	}
}
