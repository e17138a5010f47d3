package wire

import (
	"github.com/yobol/go-moqt/internal/bitio"
	"github.com/yobol/go-moqt/internal/varint"
)

// SubscribeNamespace asks to be notified of PublishNamespace announcements
// under a namespace prefix.
type SubscribeNamespace struct {
	RequestID       varint.Number
	NamespacePrefix Namespace
	Parameters      Parameters
}

func decodeSubscribeNamespace(r *bitio.Reader, outerBits int) (SubscribeNamespace, int, error) {
	id, b1, err := decodeNumber(r)
	if err != nil {
		return SubscribeNamespace{}, 0, err
	}
	prefix, b2, err := decodeNamespace(r)
	if err != nil {
		return SubscribeNamespace{}, 0, err
	}
	params, b3, err := decodeParameters(r)
	if err != nil {
		return SubscribeNamespace{}, 0, err
	}
	bits := b1 + b2 + b3
	if outerBits >= 0 && bits != outerBits {
		return SubscribeNamespace{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return SubscribeNamespace{id, prefix, params}, bits, nil
}

func (s SubscribeNamespace) encode(w *bitio.Writer) (int, error) {
	bits := 0
	add := func(b int, err error) error {
		bits += b
		return err
	}
	if err := add(s.RequestID.Encode(w)); err != nil {
		return 0, err
	}
	if err := add(s.NamespacePrefix.encode(w)); err != nil {
		return 0, err
	}
	if err := add(s.Parameters.encode(w)); err != nil {
		return 0, err
	}
	return bits, nil
}

// SubscribeNamespaceOk confirms a SubscribeNamespace by request ID,
// mirroring PublishNamespaceOk's number_struct shape.
type SubscribeNamespaceOk struct {
	RequestID varint.Number
}

func decodeSubscribeNamespaceOk(r *bitio.Reader, outerBits int) (SubscribeNamespaceOk, int, error) {
	id, bits, err := decodeNumber(r)
	if err != nil {
		return SubscribeNamespaceOk{}, 0, err
	}
	if outerBits >= 0 && bits != outerBits {
		return SubscribeNamespaceOk{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return SubscribeNamespaceOk{id}, bits, nil
}

func (s SubscribeNamespaceOk) encode(w *bitio.Writer) (int, error) {
	return s.RequestID.Encode(w)
}

// SubscribeNamespaceError reports failure of a SubscribeNamespace, using
// the same error-code family as SubscribeError.
type SubscribeNamespaceError struct {
	RequestID varint.Number
	Code      SubscribeErrorCode
	Reason    ReasonPhrase
}

func decodeSubscribeNamespaceError(r *bitio.Reader, outerBits int) (SubscribeNamespaceError, int, error) {
	e, bits, err := decodeErrCommon(r)
	if err != nil {
		return SubscribeNamespaceError{}, 0, err
	}
	if outerBits >= 0 && bits != outerBits {
		return SubscribeNamespaceError{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return SubscribeNamespaceError{e.RequestID, SubscribeErrorCode(e.Code), e.Reason}, bits, nil
}

func (s SubscribeNamespaceError) encode(w *bitio.Writer) (int, error) {
	return errCommon{s.RequestID, varint.Number(s.Code), s.Reason}.encode(w)
}

// UnsubscribeNamespace withdraws a SubscribeNamespace by its namespace
// prefix, mirroring PublishNamespaceDone's namespace_struct shape.
type UnsubscribeNamespace struct {
	NamespacePrefix Namespace
}

func decodeUnsubscribeNamespace(r *bitio.Reader, outerBits int) (UnsubscribeNamespace, int, error) {
	ns, bits, err := decodeNamespace(r)
	if err != nil {
		return UnsubscribeNamespace{}, 0, err
	}
	if outerBits >= 0 && bits != outerBits {
		return UnsubscribeNamespace{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return UnsubscribeNamespace{ns}, bits, nil
}

func (u UnsubscribeNamespace) encode(w *bitio.Writer) (int, error) {
	return u.NamespacePrefix.encode(w)
}
