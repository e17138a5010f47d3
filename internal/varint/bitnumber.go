package varint

import (
	"errors"
	"fmt"

	"github.com/yobol/go-moqt/internal/bitio"
)

// ErrOutOfRange is returned when a decoded BitNumber value falls outside
// its declared [Min, Max] window.
var ErrOutOfRange = errors.New("varint: value out of range for BitNumber")

// BitNumber is a fixed-width, big-endian, MSB-aligned integer constrained
// to [Min, Max]. Go has no const-generic integer type parameters, so the
// width and bounds that the spec writes as BitNumber<N,MIN,MAX> are plain
// runtime fields set by the constructor instead of compile-time constants;
// every call site still fixes them once and reuses the same descriptor.
type BitNumber struct {
	Width int
	Min   uint64
	Max   uint64
}

// NewBitNumber builds a BitNumber descriptor for an N-bit field
// constrained to [min, max].
func NewBitNumber(width int, min, max uint64) BitNumber {
	return BitNumber{Width: width, Min: min, Max: max}
}

// LengthRequired is always false: width is fixed by the descriptor, not by
// an external hint.
func (BitNumber) LengthRequired() bool { return false }

// LenBits returns the fixed width of the field.
func (b BitNumber) LenBits() int { return b.Width }

// Decode reads b.Width bits and validates the result against [Min, Max].
func (b BitNumber) Decode(r *bitio.Reader) (uint64, error) {
	bits, err := r.ReadBits(b.Width)
	if err != nil {
		return 0, err
	}
	v := bitsToUint64(bits, b.Width)
	if v < b.Min || v > b.Max {
		return 0, fmt.Errorf("%w: %d not in [%d,%d]", ErrOutOfRange, v, b.Min, b.Max)
	}
	return v, nil
}

// Encode writes v using b.Width bits after validating [Min, Max].
func (b BitNumber) Encode(v uint64, w *bitio.Writer) error {
	if v < b.Min || v > b.Max {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrOutOfRange, v, b.Min, b.Max)
	}
	return w.WriteBits(b.Width, uint64ToBits(v, b.Width))
}
