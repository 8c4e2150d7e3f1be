package archgrid

import "testing"

func TestBitsetSetClearIsSet(t *testing.T) {
	b := newBitset(128)
	b.set(5)
	b.set(70)

	if !b.isSet(5) || !b.isSet(70) {
		t.Fatalf("expected bits 5 and 70 to be set")
	}
	if b.isSet(6) {
		t.Errorf("bit 6 should not be set")
	}

	b.clear(5)
	if b.isSet(5) {
		t.Errorf("bit 5 should be cleared")
	}
	if !b.isSet(70) {
		t.Errorf("clearing bit 5 should not affect bit 70")
	}
}

func TestBitsetGrowPreservesBits(t *testing.T) {
	b := newBitset(8)
	b.set(3)
	b.grow(200)
	if !b.isSet(3) {
		t.Errorf("growing should preserve previously set bits")
	}
	b.set(199)
	if !b.isSet(199) {
		t.Errorf("expected to be able to set a bit in the grown range")
	}
}

func TestBitsetIsSetOutOfRangeIsFalse(t *testing.T) {
	b := newBitset(8)
	if b.isSet(1000) {
		t.Errorf("isSet on an out-of-range bit should report false, not panic")
	}
}

func TestBitsetPopCount(t *testing.T) {
	b := newBitset(64)
	for _, i := range []uint32{1, 2, 3, 40} {
		b.set(i)
	}
	if got := b.popCount(); got != 4 {
		t.Errorf("popCount = %d, want 4", got)
	}
}

func TestBitsetToggle(t *testing.T) {
	b := newBitset(8)
	b.toggle(2)
	if !b.isSet(2) {
		t.Fatalf("toggle on unset bit should set it")
	}
	b.toggle(2)
	if b.isSet(2) {
		t.Errorf("toggle on set bit should clear it")
	}
}

func TestBitsetClone(t *testing.T) {
	b := newBitset(8)
	b.set(4)
	c := b.clone()
	c.set(5)
	if b.isSet(5) {
		t.Errorf("mutating the clone should not affect the original")
	}
	if !c.isSet(4) {
		t.Errorf("clone should carry over bits set before cloning")
	}
}
