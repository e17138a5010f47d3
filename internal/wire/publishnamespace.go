package wire

import (
	"github.com/yobol/go-moqt/internal/bitio"
	"github.com/yobol/go-moqt/internal/varint"
)

// PublishNamespace announces that a namespace prefix is available for
// discovery/subscription.
type PublishNamespace struct {
	RequestID  varint.Number
	Namespace  Namespace
	Parameters Parameters
}

func decodePublishNamespace(r *bitio.Reader, outerBits int) (PublishNamespace, int, error) {
	id, b1, err := decodeNumber(r)
	if err != nil {
		return PublishNamespace{}, 0, err
	}
	ns, b2, err := decodeNamespace(r)
	if err != nil {
		return PublishNamespace{}, 0, err
	}
	params, b3, err := decodeParameters(r)
	if err != nil {
		return PublishNamespace{}, 0, err
	}
	bits := b1 + b2 + b3
	if outerBits >= 0 && bits != outerBits {
		return PublishNamespace{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return PublishNamespace{id, ns, params}, bits, nil
}

func (p PublishNamespace) encode(w *bitio.Writer) (int, error) {
	bits := 0
	add := func(b int, err error) error {
		bits += b
		return err
	}
	if err := add(p.RequestID.Encode(w)); err != nil {
		return 0, err
	}
	if err := add(p.Namespace.encode(w)); err != nil {
		return 0, err
	}
	if err := add(p.Parameters.encode(w)); err != nil {
		return 0, err
	}
	return bits, nil
}

// PublishNamespaceOk confirms a PublishNamespace by request ID.
type PublishNamespaceOk struct {
	RequestID varint.Number
}

func decodePublishNamespaceOk(r *bitio.Reader, outerBits int) (PublishNamespaceOk, int, error) {
	id, bits, err := decodeNumber(r)
	if err != nil {
		return PublishNamespaceOk{}, 0, err
	}
	if outerBits >= 0 && bits != outerBits {
		return PublishNamespaceOk{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return PublishNamespaceOk{id}, bits, nil
}

func (p PublishNamespaceOk) encode(w *bitio.Writer) (int, error) {
	return p.RequestID.Encode(w)
}

// PublishNamespaceError reports failure of a PublishNamespace.
type PublishNamespaceError struct {
	RequestID varint.Number
	Code      PublishNamespaceErrorCode
	Reason    ReasonPhrase
}

func decodePublishNamespaceError(r *bitio.Reader, outerBits int) (PublishNamespaceError, int, error) {
	e, bits, err := decodeErrCommon(r)
	if err != nil {
		return PublishNamespaceError{}, 0, err
	}
	if outerBits >= 0 && bits != outerBits {
		return PublishNamespaceError{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return PublishNamespaceError{e.RequestID, PublishNamespaceErrorCode(e.Code), e.Reason}, bits, nil
}

func (p PublishNamespaceError) encode(w *bitio.Writer) (int, error) {
	return errCommon{p.RequestID, varint.Number(p.Code), p.Reason}.encode(w)
}

// PublishNamespaceDone withdraws a previously published namespace.
type PublishNamespaceDone struct {
	Namespace Namespace
}

func decodePublishNamespaceDone(r *bitio.Reader, outerBits int) (PublishNamespaceDone, int, error) {
	ns, bits, err := decodeNamespace(r)
	if err != nil {
		return PublishNamespaceDone{}, 0, err
	}
	if outerBits >= 0 && bits != outerBits {
		return PublishNamespaceDone{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return PublishNamespaceDone{ns}, bits, nil
}

func (p PublishNamespaceDone) encode(w *bitio.Writer) (int, error) {
	return p.Namespace.encode(w)
}

// PublishNamespaceCancel aborts an in-flight PublishNamespace.
type PublishNamespaceCancel struct {
	RequestID varint.Number
	Code      PublishNamespaceCancelCode
	Reason    ReasonPhrase
}

func decodePublishNamespaceCancel(r *bitio.Reader, outerBits int) (PublishNamespaceCancel, int, error) {
	e, bits, err := decodeErrCommon(r)
	if err != nil {
		return PublishNamespaceCancel{}, 0, err
	}
	if outerBits >= 0 && bits != outerBits {
		return PublishNamespaceCancel{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return PublishNamespaceCancel{e.RequestID, PublishNamespaceCancelCode(e.Code), e.Reason}, bits, nil
}

func (p PublishNamespaceCancel) encode(w *bitio.Writer) (int, error) {
	return errCommon{p.RequestID, varint.Number(p.Code), p.Reason}.encode(w)
}
