package l2

import "testing"

func TestDecomposeFields(t *testing.T) {
	// addr = 0xTTTIIIIIBB in spec.md's scenario notation, here tag=0x001,
	// index=0x0002, byte_offset=0x03.
	addr := uint32(0x001<<20 | 0x0002<<6 | 0x03)
	a := Decompose(addr)
	if a.Tag != 0x001 {
		t.Fatalf("Tag: got=0x%X, want=0x001", a.Tag)
	}
	if a.Index != 0x0002 {
		t.Fatalf("Index: got=0x%X, want=0x0002", a.Index)
	}
	if a.ByteOffset != 0x03 {
		t.Fatalf("ByteOffset: got=0x%X, want=0x03", a.ByteOffset)
	}
}

func TestDecomposeRoundtrip(t *testing.T) {
	addrs := []uint32{0, 0x00000040, 0xFFFFFFFF, 0x12345678, 0xDEADBEEF}
	for _, addr := range addrs {
		a := Decompose(addr)
		if a.ByteOffset >= 64 {
			t.Fatalf("ByteOffset out of range: %d", a.ByteOffset)
		}
		if a.Index >= NumSets {
			t.Fatalf("Index out of range: %d", a.Index)
		}
		if a.Tag >= 1<<TagBits {
			t.Fatalf("Tag out of range: %d", a.Tag)
		}
		got := (a.Tag << 20) | (a.Index << 6) | a.ByteOffset
		if got != addr {
			t.Fatalf("roundtrip: got=0x%08X, want=0x%08X", got, addr)
		}
	}
}

func TestAlignedZeroesByteOffset(t *testing.T) {
	addr := uint32(0x00123456)
	a := Decompose(addr)
	aligned := Aligned(a.Tag, a.Index)
	if Decompose(aligned).ByteOffset != 0 {
		t.Fatalf("aligned address carries a nonzero byte offset: 0x%08X", aligned)
	}
	if Decompose(aligned).Tag != a.Tag || Decompose(aligned).Index != a.Index {
		t.Fatalf("aligned address lost tag/index: 0x%08X", aligned)
	}
}
