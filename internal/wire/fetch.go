package wire

import (
	"github.com/yobol/go-moqt/internal/bitio"
	"github.com/yobol/go-moqt/internal/varint"
)

// Fetch requests a bounded range of objects, either standalone (its own
// namespace/name/range) or joining an existing Subscribe.
type Fetch struct {
	RequestID          varint.Number
	SubscriberPriority uint8
	GroupOrder         GroupOrder
	FetchType          FetchType
	Standalone         StandaloneFetch // valid iff FetchType == FetchTypeStandalone
	HasStandalone      bool
	Joining            JoiningFetch // valid iff FetchType is RelativeJoining or AbsoluteJoining
	HasJoining         bool
	Parameters         Parameters
}

func decodeFetch(r *bitio.Reader, outerBits int) (Fetch, int, error) {
	var f Fetch
	bits := 0

	id, b, err := decodeNumber(r)
	if err != nil {
		return Fetch{}, 0, err
	}
	f.RequestID = id
	bits += b

	prio, err := subscriberPriorityField.Decode(r)
	if err != nil {
		return Fetch{}, 0, err
	}
	f.SubscriberPriority = uint8(prio)
	bits += 8

	if f.GroupOrder, err = decodeGroupOrder(r); err != nil {
		return Fetch{}, 0, err
	}
	bits += 8

	ft, b, err := decodeFetchType(r)
	if err != nil {
		return Fetch{}, 0, err
	}
	f.FetchType = ft
	bits += b

	switch ft {
	case FetchTypeStandalone:
		sf, b, err := decodeStandaloneFetch(r)
		if err != nil {
			return Fetch{}, 0, err
		}
		f.Standalone, f.HasStandalone = sf, true
		bits += b
	case FetchTypeRelativeJoining, FetchTypeAbsoluteJoining:
		jf, b, err := decodeJoiningFetch(r)
		if err != nil {
			return Fetch{}, 0, err
		}
		f.Joining, f.HasJoining = jf, true
		bits += b
	}

	params, b, err := decodeParameters(r)
	if err != nil {
		return Fetch{}, 0, err
	}
	f.Parameters = params
	bits += b

	if outerBits >= 0 && bits != outerBits {
		return Fetch{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return f, bits, nil
}

func (f Fetch) encode(w *bitio.Writer) (int, error) {
	bits := 0
	add := func(b int, err error) error {
		bits += b
		return err
	}
	if err := add(f.RequestID.Encode(w)); err != nil {
		return 0, err
	}
	if err := subscriberPriorityField.Encode(uint64(f.SubscriberPriority), w); err != nil {
		return 0, err
	}
	bits += 8
	if err := f.GroupOrder.encode(w); err != nil {
		return 0, err
	}
	bits += 8
	if err := add(f.FetchType.encode(w)); err != nil {
		return 0, err
	}
	switch f.FetchType {
	case FetchTypeStandalone:
		if err := add(f.Standalone.encode(w)); err != nil {
			return 0, err
		}
	case FetchTypeRelativeJoining, FetchTypeAbsoluteJoining:
		if err := add(f.Joining.encode(w)); err != nil {
			return 0, err
		}
	}
	if err := add(f.Parameters.encode(w)); err != nil {
		return 0, err
	}
	return bits, nil
}

// FetchOk confirms a Fetch and reports the end-of-track location.
type FetchOk struct {
	RequestID   varint.Number
	GroupOrder  GroupOrder
	EndOfTrack  EndOfTrack
	EndLocation Location
	Parameters  Parameters
}

func decodeFetchOk(r *bitio.Reader, outerBits int) (FetchOk, int, error) {
	var f FetchOk
	bits := 0

	id, b, err := decodeNumber(r)
	if err != nil {
		return FetchOk{}, 0, err
	}
	f.RequestID = id
	bits += b

	if f.GroupOrder, err = decodeGroupOrder(r); err != nil {
		return FetchOk{}, 0, err
	}
	bits += 8

	if f.EndOfTrack, err = decodeEndOfTrack(r); err != nil {
		return FetchOk{}, 0, err
	}
	bits += 8

	loc, b, err := decodeLocation(r)
	if err != nil {
		return FetchOk{}, 0, err
	}
	f.EndLocation = loc
	bits += b

	params, b, err := decodeParameters(r)
	if err != nil {
		return FetchOk{}, 0, err
	}
	f.Parameters = params
	bits += b

	if outerBits >= 0 && bits != outerBits {
		return FetchOk{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return f, bits, nil
}

func (f FetchOk) encode(w *bitio.Writer) (int, error) {
	bits := 0
	add := func(b int, err error) error {
		bits += b
		return err
	}
	if err := add(f.RequestID.Encode(w)); err != nil {
		return 0, err
	}
	if err := f.GroupOrder.encode(w); err != nil {
		return 0, err
	}
	bits += 8
	if err := f.EndOfTrack.encode(w); err != nil {
		return 0, err
	}
	bits += 8
	if err := add(f.EndLocation.encode(w)); err != nil {
		return 0, err
	}
	if err := add(f.Parameters.encode(w)); err != nil {
		return 0, err
	}
	return bits, nil
}

// FetchError reports failure of a Fetch.
type FetchError struct {
	RequestID varint.Number
	Code      FetchErrorCode
	Reason    ReasonPhrase
}

func decodeFetchError(r *bitio.Reader, outerBits int) (FetchError, int, error) {
	e, bits, err := decodeErrCommon(r)
	if err != nil {
		return FetchError{}, 0, err
	}
	if outerBits >= 0 && bits != outerBits {
		return FetchError{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return FetchError{e.RequestID, FetchErrorCode(e.Code), e.Reason}, bits, nil
}

func (f FetchError) encode(w *bitio.Writer) (int, error) {
	return errCommon{f.RequestID, varint.Number(f.Code), f.Reason}.encode(w)
}

// FetchCancel aborts an in-flight Fetch by request ID.
type FetchCancel struct {
	RequestID varint.Number
}

func decodeFetchCancel(r *bitio.Reader, outerBits int) (FetchCancel, int, error) {
	id, bits, err := decodeNumber(r)
	if err != nil {
		return FetchCancel{}, 0, err
	}
	if outerBits >= 0 && bits != outerBits {
		return FetchCancel{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return FetchCancel{id}, bits, nil
}

func (f FetchCancel) encode(w *bitio.Writer) (int, error) {
	return f.RequestID.Encode(w)
}
