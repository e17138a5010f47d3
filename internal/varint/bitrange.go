package varint

import "github.com/yobol/go-moqt/internal/bitio"

// BitRange is an opaque bit slice whose length is not self-delimiting: the
// caller must supply the bit length L via an explicit preceding Number
// length field or the residual of an outer framing. MIN/MAX bounds on L are
// the caller's responsibility to enforce (e.g. Namespace's 1..32 tuple
// count, ReasonPhrase's <=1024 byte cap); BitRange itself only carries the
// bits.
type BitRange struct {
	Bits int
	Data []byte // MSB-aligned, len == ceil(Bits/8)
}

// LengthRequired is always true: BitRange cannot decode without a hint.
func (BitRange) LengthRequired() bool { return true }

// LenBits returns the range's declared bit length.
func (b BitRange) LenBits() int { return b.Bits }

// DecodeBitRange reads exactly bits bits from r.
func DecodeBitRange(r *bitio.Reader, bits int) (BitRange, error) {
	data, err := r.ReadBits(bits)
	if err != nil {
		return BitRange{}, err
	}
	return BitRange{Bits: bits, Data: data}, nil
}

// Encode writes the range's bits to w.
func (b BitRange) Encode(w *bitio.Writer) error {
	return w.WriteBits(b.Bits, b.Data)
}

// Bytes returns the range's bits as a byte-aligned slice, valid when Bits
// is a multiple of 8 (the common case: every current use of BitRange in
// this module stores byte-aligned payloads).
func (b BitRange) Bytes() []byte {
	return b.Data
}

// NewBitRangeFromBytes builds a byte-aligned BitRange from buf.
func NewBitRangeFromBytes(buf []byte) BitRange {
	return BitRange{Bits: len(buf) * 8, Data: buf}
}
