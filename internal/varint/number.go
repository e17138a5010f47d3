// Package varint implements the MOQT primitive codec types layered on
// internal/bitio: Number (the QUIC-style variable-length integer),
// BitNumber (a fixed-width constrained integer), BitRange (an opaque,
// externally-length-hinted bit blob), BinaryData (length-prefixed bytes)
// and Tuple (a count-prefixed sequence of BinaryData). Every type exposes
// Decode/Encode/LenBits, and the package documents whether a type needs an
// external length hint via its LengthRequired predicate.
package varint

import (
	"errors"

	"github.com/yobol/go-moqt/internal/bitio"
)

// ErrTooLarge is returned when a Number exceeds 2^62-1.
var ErrTooLarge = errors.New("varint: value too large for Number")

// ErrInvalidTag is returned when a decoded size tag is inconsistent (should
// not be reachable, the tag is always 2 bits and fully determined).
var ErrInvalidTag = errors.New("varint: invalid size tag")

// MaxNumber is the largest value representable by Number: 2^62 - 1.
const MaxNumber uint64 = (1 << 62) - 1

// Number is the MOQT variable-length integer: the two high bits of the
// first byte are a size tag (00=6, 01=14, 10=30, 11=62 value bits)
// indicating the total encoded width.
type Number uint64

// LengthRequired reports that Number is self-delimiting; the size tag
// carries its own width.
func (Number) LengthRequired() bool { return false }

// tagWidthBits returns the value width in bits for the two-bit size tag.
func tagWidthBits(tag byte) int {
	switch tag {
	case 0:
		return 6
	case 1:
		return 14
	case 2:
		return 30
	default:
		return 62
	}
}

// sizeTagFor returns the smallest size tag capable of holding v.
func sizeTagFor(v uint64) byte {
	switch {
	case v <= 1<<6-1:
		return 0
	case v <= 1<<14-1:
		return 1
	case v <= 1<<30-1:
		return 2
	default:
		return 3
	}
}

// DecodeNumber reads a Number from r, returning the value and the number of
// bits consumed.
func DecodeNumber(r *bitio.Reader) (Number, int, error) {
	tagBits, err := r.ReadBits(2)
	if err != nil {
		return 0, 0, err
	}
	tag := tagBits[0] >> 6
	width := tagWidthBits(tag)
	valBits, err := r.ReadBits(width)
	if err != nil {
		return 0, 0, err
	}
	v := bitsToUint64(valBits, width)
	return Number(v), 2 + width, nil
}

// Encode writes n to w using the smallest size tag that fits, returning the
// number of bits written.
func (n Number) Encode(w *bitio.Writer) (int, error) {
	v := uint64(n)
	if v > MaxNumber {
		return 0, ErrTooLarge
	}
	tag := sizeTagFor(v)
	width := tagWidthBits(tag)

	tagByte := []byte{tag << 6}
	if err := w.WriteBits(2, tagByte); err != nil {
		return 0, err
	}
	valBits := uint64ToBits(v, width)
	if err := w.WriteBits(width, valBits); err != nil {
		return 0, err
	}
	return 2 + width, nil
}

// LenBits reports the encoded width of n in bits, tag included.
func (n Number) LenBits() int {
	return 2 + tagWidthBits(sizeTagFor(uint64(n)))
}

// bitsToUint64 interprets an MSB-aligned bit blob of the given bit width as
// an unsigned integer.
func bitsToUint64(buf []byte, bits int) uint64 {
	var v uint64
	consumed := 0
	for _, b := range buf {
		take := 8
		if bits-consumed < 8 {
			take = bits - consumed
		}
		if take <= 0 {
			break
		}
		v = v<<uint(take) | uint64(b>>uint(8-take))
		consumed += take
	}
	return v
}

// uint64ToBits renders v as an MSB-aligned bit blob occupying exactly bits
// significant bits, left-aligned within ceil(bits/8) bytes.
func uint64ToBits(v uint64, bits int) []byte {
	out := make([]byte, (bits+7)/8)
	// Shift v so its top `bits` bits sit at the top of the byte slice.
	total := len(out) * 8
	shift := total - bits
	shifted := v << uint(shift)
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = byte(shifted)
		shifted >>= 8
	}
	return out
}
