package wire

import (
	"time"

	"github.com/yobol/go-moqt/internal/bitio"
	"github.com/yobol/go-moqt/internal/varint"
)

var subscriberPriorityField = varint.NewBitNumber(8, 0, 255)

// Subscribe requests delivery of a track. TrackStatus (tag 0x0D) reuses
// this exact shape — see trackstatus.go.
type Subscribe struct {
	RequestID         varint.Number
	Namespace         Namespace
	Name              Name
	SubscriberPriority uint8
	GroupOrder        GroupOrder
	Forward           Forward
	FilterType        FilterType
	StartLocation     Location // valid iff FilterType is AbsoluteStart or AbsoluteRange
	HasStartLocation  bool
	EndGroup          varint.Number // valid iff FilterType is AbsoluteRange
	HasEndGroup       bool
	Parameters        Parameters
}

func decodeSubscribe(r *bitio.Reader, outerBits int) (Subscribe, int, error) {
	var s Subscribe
	bits := 0

	id, b, err := decodeNumber(r)
	if err != nil {
		return Subscribe{}, 0, err
	}
	s.RequestID = id
	bits += b

	ns, b, err := decodeNamespace(r)
	if err != nil {
		return Subscribe{}, 0, err
	}
	s.Namespace = ns
	bits += b

	name, b, err := decodeName(r)
	if err != nil {
		return Subscribe{}, 0, err
	}
	s.Name = name
	bits += b

	prio, err := subscriberPriorityField.Decode(r)
	if err != nil {
		return Subscribe{}, 0, err
	}
	s.SubscriberPriority = uint8(prio)
	bits += 8

	if s.GroupOrder, err = decodeGroupOrder(r); err != nil {
		return Subscribe{}, 0, err
	}
	bits += 8

	if s.Forward, err = decodeForward(r); err != nil {
		return Subscribe{}, 0, err
	}
	bits += 8

	ft, b, err := decodeFilterType(r)
	if err != nil {
		return Subscribe{}, 0, err
	}
	s.FilterType = ft
	bits += b

	if ft == FilterTypeAbsoluteStart || ft == FilterTypeAbsoluteRange {
		loc, b, err := decodeLocation(r)
		if err != nil {
			return Subscribe{}, 0, err
		}
		s.StartLocation, s.HasStartLocation = loc, true
		bits += b
	}
	if ft == FilterTypeAbsoluteRange {
		eg, b, err := decodeNumber(r)
		if err != nil {
			return Subscribe{}, 0, err
		}
		s.EndGroup, s.HasEndGroup = eg, true
		bits += b
	}

	params, b, err := decodeParameters(r)
	if err != nil {
		return Subscribe{}, 0, err
	}
	s.Parameters = params
	bits += b

	if outerBits >= 0 && bits != outerBits {
		return Subscribe{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return s, bits, nil
}

func (s Subscribe) encode(w *bitio.Writer) (int, error) {
	bits := 0
	add := func(b int, err error) error {
		bits += b
		return err
	}
	if err := add(s.RequestID.Encode(w)); err != nil {
		return 0, err
	}
	if err := add(s.Namespace.encode(w)); err != nil {
		return 0, err
	}
	if err := add(s.Name.encode(w)); err != nil {
		return 0, err
	}
	if err := subscriberPriorityField.Encode(uint64(s.SubscriberPriority), w); err != nil {
		return 0, err
	}
	bits += 8
	if err := s.GroupOrder.encode(w); err != nil {
		return 0, err
	}
	bits += 8
	if err := s.Forward.encode(w); err != nil {
		return 0, err
	}
	bits += 8
	if err := add(s.FilterType.encode(w)); err != nil {
		return 0, err
	}
	if s.FilterType == FilterTypeAbsoluteStart || s.FilterType == FilterTypeAbsoluteRange {
		if err := add(s.StartLocation.encode(w)); err != nil {
			return 0, err
		}
	}
	if s.FilterType == FilterTypeAbsoluteRange {
		if err := add(s.EndGroup.Encode(w)); err != nil {
			return 0, err
		}
	}
	if err := add(s.Parameters.encode(w)); err != nil {
		return 0, err
	}
	return bits, nil
}

// SubscribeOk confirms a Subscribe.
type SubscribeOk struct {
	RequestID       varint.Number
	Alias           varint.Number
	Expires         time.Duration
	GroupOrder      GroupOrder
	ContentExists   ContentExists
	LargestLocation Location
	HasLargest      bool
	Parameters      Parameters
}

func decodeSubscribeOk(r *bitio.Reader, outerBits int) (SubscribeOk, int, error) {
	var s SubscribeOk
	bits := 0

	id, b, err := decodeNumber(r)
	if err != nil {
		return SubscribeOk{}, 0, err
	}
	s.RequestID = id
	bits += b

	alias, b, err := decodeNumber(r)
	if err != nil {
		return SubscribeOk{}, 0, err
	}
	s.Alias = alias
	bits += b

	expires, b, err := decodeNumber(r)
	if err != nil {
		return SubscribeOk{}, 0, err
	}
	s.Expires = time.Duration(expires) * time.Millisecond
	bits += b

	if s.GroupOrder, err = decodeGroupOrder(r); err != nil {
		return SubscribeOk{}, 0, err
	}
	bits += 8

	ce, b, err := decodeContentExists(r)
	if err != nil {
		return SubscribeOk{}, 0, err
	}
	s.ContentExists = ce
	bits += b

	if ce == ContentExistsYes {
		loc, b, err := decodeLocation(r)
		if err != nil {
			return SubscribeOk{}, 0, err
		}
		s.LargestLocation, s.HasLargest = loc, true
		bits += b
	}

	params, b, err := decodeParameters(r)
	if err != nil {
		return SubscribeOk{}, 0, err
	}
	s.Parameters = params
	bits += b

	if outerBits >= 0 && bits != outerBits {
		return SubscribeOk{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return s, bits, nil
}

func (s SubscribeOk) encode(w *bitio.Writer) (int, error) {
	bits := 0
	add := func(b int, err error) error {
		bits += b
		return err
	}
	if err := add(s.RequestID.Encode(w)); err != nil {
		return 0, err
	}
	if err := add(s.Alias.Encode(w)); err != nil {
		return 0, err
	}
	if err := add(encodeNumber(w, uint64(s.Expires/time.Millisecond))); err != nil {
		return 0, err
	}
	if err := s.GroupOrder.encode(w); err != nil {
		return 0, err
	}
	bits += 8
	if err := add(s.ContentExists.encode(w)); err != nil {
		return 0, err
	}
	if s.ContentExists == ContentExistsYes {
		if err := add(s.LargestLocation.encode(w)); err != nil {
			return 0, err
		}
	}
	if err := add(s.Parameters.encode(w)); err != nil {
		return 0, err
	}
	return bits, nil
}

// SubscribeError reports failure of a Subscribe; same shape reused by
// TrackStatusError and SubscribeNamespaceError.
type SubscribeError struct {
	RequestID varint.Number
	Code      SubscribeErrorCode
	Reason    ReasonPhrase
}

func decodeSubscribeError(r *bitio.Reader, outerBits int) (SubscribeError, int, error) {
	e, bits, err := decodeErrCommon(r)
	if err != nil {
		return SubscribeError{}, 0, err
	}
	if outerBits >= 0 && bits != outerBits {
		return SubscribeError{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return SubscribeError{e.RequestID, SubscribeErrorCode(e.Code), e.Reason}, bits, nil
}

func (s SubscribeError) encode(w *bitio.Writer) (int, error) {
	return errCommon{s.RequestID, varint.Number(s.Code), s.Reason}.encode(w)
}

// SubscribeUpdate narrows or extends an open Subscribe's range.
type SubscribeUpdate struct {
	RequestID          varint.Number
	StartLocation      Location
	EndGroup           varint.Number
	SubscriberPriority uint8
	Parameters         Parameters
}

func decodeSubscribeUpdate(r *bitio.Reader, outerBits int) (SubscribeUpdate, int, error) {
	var s SubscribeUpdate
	bits := 0

	id, b, err := decodeNumber(r)
	if err != nil {
		return SubscribeUpdate{}, 0, err
	}
	s.RequestID = id
	bits += b

	loc, b, err := decodeLocation(r)
	if err != nil {
		return SubscribeUpdate{}, 0, err
	}
	s.StartLocation = loc
	bits += b

	eg, b, err := decodeNumber(r)
	if err != nil {
		return SubscribeUpdate{}, 0, err
	}
	s.EndGroup = eg
	bits += b

	prio, err := subscriberPriorityField.Decode(r)
	if err != nil {
		return SubscribeUpdate{}, 0, err
	}
	s.SubscriberPriority = uint8(prio)
	bits += 8

	params, b, err := decodeParameters(r)
	if err != nil {
		return SubscribeUpdate{}, 0, err
	}
	s.Parameters = params
	bits += b

	if outerBits >= 0 && bits != outerBits {
		return SubscribeUpdate{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return s, bits, nil
}

func (s SubscribeUpdate) encode(w *bitio.Writer) (int, error) {
	bits := 0
	add := func(b int, err error) error {
		bits += b
		return err
	}
	if err := add(s.RequestID.Encode(w)); err != nil {
		return 0, err
	}
	if err := add(s.StartLocation.encode(w)); err != nil {
		return 0, err
	}
	if err := add(s.EndGroup.Encode(w)); err != nil {
		return 0, err
	}
	if err := subscriberPriorityField.Encode(uint64(s.SubscriberPriority), w); err != nil {
		return 0, err
	}
	bits += 8
	if err := add(s.Parameters.encode(w)); err != nil {
		return 0, err
	}
	return bits, nil
}

// Unsubscribe cancels a Subscribe by request ID.
type Unsubscribe struct {
	RequestID varint.Number
}

func decodeUnsubscribe(r *bitio.Reader, outerBits int) (Unsubscribe, int, error) {
	id, bits, err := decodeNumber(r)
	if err != nil {
		return Unsubscribe{}, 0, err
	}
	if outerBits >= 0 && bits != outerBits {
		return Unsubscribe{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return Unsubscribe{id}, bits, nil
}

func (u Unsubscribe) encode(w *bitio.Writer) (int, error) {
	return u.RequestID.Encode(w)
}
