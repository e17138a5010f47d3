package wire

import (
	"github.com/yobol/go-moqt/internal/bitio"
	"github.com/yobol/go-moqt/internal/varint"
)

// errCommon is the shared shape of every per-request error message:
// RequestID, ErrorCode, ReasonPhrase. SubscribeError, FetchError,
// PublishError, PublishNamespaceError, PublishNamespaceCancel,
// SubscribeNamespaceError and TrackStatusError (via the Subscribe alias)
// all wrap it with their own named error-code type.
type errCommon struct {
	RequestID varint.Number
	Code      varint.Number
	Reason    ReasonPhrase
}

func decodeErrCommon(r *bitio.Reader) (errCommon, int, error) {
	id, idb, err := decodeNumber(r)
	if err != nil {
		return errCommon{}, 0, err
	}
	code, codeb, err := decodeNumber(r)
	if err != nil {
		return errCommon{}, 0, err
	}
	reason, reasonb, err := decodeReasonPhrase(r)
	if err != nil {
		return errCommon{}, 0, err
	}
	return errCommon{id, code, reason}, idb + codeb + reasonb, nil
}

func (e errCommon) encode(w *bitio.Writer) (int, error) {
	idb, err := e.RequestID.Encode(w)
	if err != nil {
		return 0, err
	}
	codeb, err := e.Code.Encode(w)
	if err != nil {
		return 0, err
	}
	reasonb, err := e.Reason.encode(w)
	if err != nil {
		return 0, err
	}
	return idb + codeb + reasonb, nil
}
