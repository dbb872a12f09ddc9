package carframe

import (
	"errors"
	"testing"
)

func TestBitsLSBFirst(t *testing.T) {
	r := NewBitReader([]byte{0b1010_0110})
	v, err := r.Bits(3)
	if err != nil {
		t.Fatalf("Bits(3): %v", err)
	}
	if v != 6 {
		t.Errorf("Bits(3) = %d, want 6", v)
	}
	v, err = r.Bits(5)
	if err != nil {
		t.Fatalf("Bits(5): %v", err)
	}
	if v != 20 {
		t.Errorf("Bits(5) = %d, want 20", v)
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", r.Remaining())
	}
}

func TestBitsMax(t *testing.T) {
	// Low nibble 6: 6+16 >= 20, so no fifth bit is read.
	r := NewBitReader([]byte{0b0000_0110})
	v, err := r.BitsMax(20)
	if err != nil {
		t.Fatalf("BitsMax: %v", err)
	}
	if v != 6 {
		t.Errorf("BitsMax(20) = %d, want 6", v)
	}
	if r.Position() != 4 {
		t.Errorf("consumed %d bits, want 4", r.Position())
	}

	// Low nibble 3: 3+16 < 20, so the fifth bit is read and set.
	r = NewBitReader([]byte{0b0001_0011})
	v, err = r.BitsMax(20)
	if err != nil {
		t.Fatalf("BitsMax: %v", err)
	}
	if v != 19 {
		t.Errorf("BitsMax(20) = %d, want 19", v)
	}
	if r.Position() != 5 {
		t.Errorf("consumed %d bits, want 5", r.Position())
	}
}

func TestBitsTruncated(t *testing.T) {
	r := NewBitReader([]byte{0xFF})
	if _, err := r.Bits(9); !errors.Is(err, ErrTruncated) {
		t.Errorf("Bits(9) over one byte: err = %v, want ErrTruncated", err)
	}
	// A failed checked read consumes nothing.
	if r.Position() != 0 {
		t.Errorf("failed read moved cursor to %d", r.Position())
	}
	r = NewBitReader(nil)
	if _, err := r.Bit(); !errors.Is(err, ErrTruncated) {
		t.Errorf("Bit on empty: err = %v, want ErrTruncated", err)
	}
}

func TestUncheckedMatchesChecked(t *testing.T) {
	data := []byte{0x3C, 0xA5, 0x0F, 0xE2, 0x91}
	checked := NewBitReader(data)
	unchecked := NewBitReader(data)

	reads := []int{1, 3, 8, 5, 11, 2}
	for _, n := range reads {
		want, err := checked.Bits(n)
		if err != nil {
			t.Fatalf("Bits(%d): %v", n, err)
		}
		got := unchecked.BitsUnchecked(n)
		if got != want {
			t.Errorf("BitsUnchecked(%d) = %d, checked read %d", n, got, want)
		}
	}
	if checked.Position() != unchecked.Position() {
		t.Errorf("cursor drift: checked %d, unchecked %d", checked.Position(), unchecked.Position())
	}
}
