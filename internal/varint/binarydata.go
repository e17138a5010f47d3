package varint

import "github.com/yobol/go-moqt/internal/bitio"

// BinaryData is a Number-length-prefixed octet sequence. It carries no
// encoding of its character set; callers that need text (Path, Authority,
// reason phrases, track names) interpret the bytes as UTF-8 themselves.
type BinaryData []byte

// LengthRequired is always false: BinaryData's own Number prefix carries
// its length.
func (BinaryData) LengthRequired() bool { return false }

// LenBits returns the prefix width plus 8 bits per byte of payload.
func (b BinaryData) LenBits() int {
	return Number(len(b)).LenBits() + 8*len(b)
}

// DecodeBinaryData reads a Number length prefix followed by that many
// bytes, returning the value and total bits consumed.
func DecodeBinaryData(r *bitio.Reader) (BinaryData, int, error) {
	n, nBits, err := DecodeNumber(r)
	if err != nil {
		return nil, 0, err
	}
	data, err := r.ReadBytes(int(n))
	if err != nil {
		return nil, 0, err
	}
	return BinaryData(data), nBits + 8*int(n), nil
}

// Encode writes the Number length prefix followed by the payload,
// returning total bits written.
func (b BinaryData) Encode(w *bitio.Writer) (int, error) {
	n, err := Number(len(b)).Encode(w)
	if err != nil {
		return 0, err
	}
	if err := w.WriteBytes(b); err != nil {
		return 0, err
	}
	return n + 8*len(b), nil
}

// String returns the payload as a Go string. The bytes are copied
// unchanged; malformed UTF-8 is not replaced or rejected.
func (b BinaryData) String() string {
	return string(b)
}
