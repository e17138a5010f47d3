package wire

import (
	"fmt"

	"github.com/yobol/go-moqt/internal/bitio"
	"github.com/yobol/go-moqt/internal/varint"
)

const (
	namespaceMinParts   = 1
	namespaceMaxParts   = 32
	namespaceMaxWireLen = 4096
)

// Namespace is a Tuple of 1..32 components whose total encoded length must
// not exceed 4096 bytes.
type Namespace struct {
	inner varint.Tuple
}

// NewNamespace builds a Namespace from its components, validating the
// invariants at construction time rather than only at decode time.
func NewNamespace(parts ...string) (Namespace, error) {
	if len(parts) < namespaceMinParts || len(parts) > namespaceMaxParts {
		return Namespace{}, fmt.Errorf("%w: namespace must have 1..32 components, got %d", ErrProtocolViolation, len(parts))
	}
	tup := make(varint.Tuple, len(parts))
	for i, p := range parts {
		tup[i] = varint.BinaryData(p)
	}
	ns := Namespace{inner: tup}
	if bits := ns.inner.LenBits(); bits/8 > namespaceMaxWireLen {
		return Namespace{}, fmt.Errorf("%w: namespace wire length %d exceeds %d bytes", ErrProtocolViolation, bits/8, namespaceMaxWireLen)
	}
	return ns, nil
}

// Parts returns the namespace's components as strings.
func (n Namespace) Parts() []string {
	out := make([]string, len(n.inner))
	for i, p := range n.inner {
		out[i] = string(p)
	}
	return out
}

func decodeNamespace(r *bitio.Reader) (Namespace, int, error) {
	tup, bits, err := varint.DecodeTuple(r)
	if err != nil {
		return Namespace{}, 0, err
	}
	if len(tup) < namespaceMinParts || len(tup) > namespaceMaxParts {
		return Namespace{}, 0, fmt.Errorf("%w: namespace must have 1..32 components, got %d", ErrProtocolViolation, len(tup))
	}
	if bits/8 > namespaceMaxWireLen {
		return Namespace{}, 0, fmt.Errorf("%w: namespace wire length %d exceeds %d bytes", ErrProtocolViolation, bits/8, namespaceMaxWireLen)
	}
	return Namespace{inner: tup}, bits, nil
}

func (n Namespace) encode(w *bitio.Writer) (int, error) {
	return n.inner.Encode(w)
}

// Name is a track name: plain length-prefixed BinaryData.
type Name string

func decodeName(r *bitio.Reader) (Name, int, error) {
	bd, bits, err := varint.DecodeBinaryData(r)
	if err != nil {
		return "", 0, err
	}
	return Name(bd), bits, nil
}

func (n Name) encode(w *bitio.Writer) (int, error) {
	return varint.BinaryData(n).Encode(w)
}
