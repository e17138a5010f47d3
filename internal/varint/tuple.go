package varint

import "github.com/yobol/go-moqt/internal/bitio"

// Tuple is a Number-count-prefixed sequence of BinaryData, used to encode
// Namespace.
type Tuple []BinaryData

// LengthRequired is always false: the count prefix plus each element's own
// length prefix makes Tuple self-delimiting.
func (Tuple) LengthRequired() bool { return false }

// LenBits returns the count prefix width plus every element's width.
func (t Tuple) LenBits() int {
	bits := Number(len(t)).LenBits()
	for _, e := range t {
		bits += e.LenBits()
	}
	return bits
}

// DecodeTuple reads a Number count followed by that many BinaryData
// elements.
func DecodeTuple(r *bitio.Reader) (Tuple, int, error) {
	count, bits, err := DecodeNumber(r)
	if err != nil {
		return nil, 0, err
	}
	out := make(Tuple, 0, count)
	for i := uint64(0); i < uint64(count); i++ {
		elem, elemBits, err := DecodeBinaryData(r)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, elem)
		bits += elemBits
	}
	return out, bits, nil
}

// Encode writes the Number count followed by every element.
func (t Tuple) Encode(w *bitio.Writer) (int, error) {
	bits, err := Number(len(t)).Encode(w)
	if err != nil {
		return 0, err
	}
	for _, e := range t {
		elemBits, err := e.Encode(w)
		if err != nil {
			return 0, err
		}
		bits += elemBits
	}
	return bits, nil
}
