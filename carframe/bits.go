package carframe

import "math/bits"

// BitReader is an LSB-first cursor over a byte slice. Bit 0 of byte 0 is the
// first bit read; multi-bit reads place earlier bits in lower positions.
//
// Checked reads return ErrTruncated when the slice is exhausted. The
// *Unchecked variants skip the length check for hot paths where the caller
// has already verified enough bits remain; past the end they read zero bits,
// but given sufficient input they consume and decode bit-for-bit identically
// to the checked reads.
type BitReader struct {
	b   []byte
	pos int // absolute bit offset from the start of b
}

func NewBitReader(b []byte) *BitReader {
	return &BitReader{b: b}
}

// Position returns the number of bits consumed so far.
func (r *BitReader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bits.
func (r *BitReader) Remaining() int {
	return len(r.b)*8 - r.pos
}

// Bit reads a single bit.
func (r *BitReader) Bit() (bool, error) {
	if r.Remaining() < 1 {
		return false, ErrTruncated
	}
	return r.BitUnchecked(), nil
}

func (r *BitReader) BitUnchecked() bool {
	if r.pos>>3 >= len(r.b) {
		r.pos++
		return false
	}
	bit := r.b[r.pos>>3]>>(r.pos&7)&1 == 1
	r.pos++
	return bit
}

// Bits reads n bits (n <= 32) as an unsigned value.
func (r *BitReader) Bits(n int) (uint32, error) {
	if r.Remaining() < n {
		return 0, ErrTruncated
	}
	return r.BitsUnchecked(n), nil
}

func (r *BitReader) BitsUnchecked(n int) uint32 {
	var v uint32
	for i := 0; i < n; i++ {
		if r.BitUnchecked() {
			v |= 1 << uint(i)
		}
	}
	return v
}

// Byte reads 8 bits.
func (r *BitReader) Byte() (byte, error) {
	v, err := r.Bits(8)
	return byte(v), err
}

func (r *BitReader) ByteUnchecked() byte {
	return byte(r.BitsUnchecked(8))
}

// BitsMax reads a value in [0, max). It reads one bit fewer than the width
// of max, then reads the final bit only when setting it could not exceed
// max. This mirrors the replay wire format's capped size selectors, where
// the top bit is omitted whenever the low bits already pin the value.
func (r *BitReader) BitsMax(max uint32) (uint32, error) {
	width := bits.Len32(max)
	v, err := r.Bits(width - 1)
	if err != nil {
		return 0, err
	}
	high := uint32(1) << uint(width-1)
	if v+high < max {
		set, err := r.Bit()
		if err != nil {
			return 0, err
		}
		if set {
			v += high
		}
	}
	return v, nil
}

func (r *BitReader) BitsMaxUnchecked(max uint32) uint32 {
	width := bits.Len32(max)
	v := r.BitsUnchecked(width - 1)
	high := uint32(1) << uint(width-1)
	if v+high < max {
		if r.BitUnchecked() {
			v += high
		}
	}
	return v
}
