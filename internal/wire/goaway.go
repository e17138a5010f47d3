package wire

import (
	"github.com/yobol/go-moqt/internal/bitio"
	"github.com/yobol/go-moqt/internal/varint"
)

// GoAway asks the peer to migrate to a new relay URI (possibly empty,
// meaning "no redirect, just drain and close").
type GoAway struct {
	URI string
}

func decodeGoAway(r *bitio.Reader, outerBits int) (GoAway, int, error) {
	bd, bits, err := varint.DecodeBinaryData(r)
	if err != nil {
		return GoAway{}, 0, err
	}
	if outerBits >= 0 && bits != outerBits {
		return GoAway{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return GoAway{string(bd)}, bits, nil
}

func (g GoAway) encode(w *bitio.Writer) (int, error) {
	return varint.BinaryData(g.URI).Encode(w)
}

// MaxRequestId raises the peer's request-ID ceiling.
type MaxRequestId struct {
	RequestID varint.Number
}

func decodeMaxRequestId(r *bitio.Reader, outerBits int) (MaxRequestId, int, error) {
	id, bits, err := decodeNumber(r)
	if err != nil {
		return MaxRequestId{}, 0, err
	}
	if outerBits >= 0 && bits != outerBits {
		return MaxRequestId{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return MaxRequestId{id}, bits, nil
}

func (m MaxRequestId) encode(w *bitio.Writer) (int, error) {
	return m.RequestID.Encode(w)
}

// RequestsBlocked tells the peer the sender wanted to issue a request past
// its current MaxRequestId ceiling.
type RequestsBlocked struct {
	MaxID varint.Number
}

func decodeRequestsBlocked(r *bitio.Reader, outerBits int) (RequestsBlocked, int, error) {
	id, bits, err := decodeNumber(r)
	if err != nil {
		return RequestsBlocked{}, 0, err
	}
	if outerBits >= 0 && bits != outerBits {
		return RequestsBlocked{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return RequestsBlocked{id}, bits, nil
}

func (r2 RequestsBlocked) encode(w *bitio.Writer) (int, error) {
	return r2.MaxID.Encode(w)
}
