// Package wire implements the MOQT control-message types: the parameter
// model, the ~30 control-message variants, and the top-level ControlMessage
// tagged union with its 2-byte payload-length frame. Every type's
// Encode/Decode pair is hand-written in the schema-driven style of §4.3 —
// an explicit field list per record, the same length-prefix/presence-
// predicate/count-prefix rules applied by hand at each call site — rather
// than a generic reflective engine, following the teacher's own manual
// bit/byte-packing convention instead of reaching for reflection.
package wire

import (
	"errors"
	"fmt"

	"github.com/yobol/go-moqt/internal/bitio"
	"github.com/yobol/go-moqt/internal/varint"
)

// ErrProtocolViolation is returned when decoded data violates a structural
// invariant of the wire format (bad enum value, length mismatch, parameter
// parity violation, unexpected message in the handshake).
var ErrProtocolViolation = errors.New("wire: protocol violation")

// Number/byte helpers shared by every message file.

func decodeNumber(r *bitio.Reader) (varint.Number, int, error) {
	return varint.DecodeNumber(r)
}

func encodeNumber(w *bitio.Writer, n uint64) (int, error) {
	return varint.Number(n).Encode(w)
}

// Location is (group, object) with lexicographic order: A < B iff
// A.Group < B.Group, or A.Group == B.Group and A.Object < B.Object.
type Location struct {
	Group  varint.Number
	Object varint.Number
}

// Less implements the comparator pinned by the reference implementation.
func (l Location) Less(o Location) bool {
	if l.Group != o.Group {
		return l.Group < o.Group
	}
	return l.Object < o.Object
}

func decodeLocation(r *bitio.Reader) (Location, int, error) {
	g, gb, err := decodeNumber(r)
	if err != nil {
		return Location{}, 0, err
	}
	o, ob, err := decodeNumber(r)
	if err != nil {
		return Location{}, 0, err
	}
	return Location{Group: g, Object: o}, gb + ob, nil
}

func (l Location) encode(w *bitio.Writer) (int, error) {
	gb, err := l.Group.Encode(w)
	if err != nil {
		return 0, err
	}
	ob, err := l.Object.Encode(w)
	if err != nil {
		return 0, err
	}
	return gb + ob, nil
}

// ReasonPhrase is a BinaryData capped at 1024 bytes.
type ReasonPhrase string

const maxReasonPhraseLen = 1024

func decodeReasonPhrase(r *bitio.Reader) (ReasonPhrase, int, error) {
	bd, bits, err := varint.DecodeBinaryData(r)
	if err != nil {
		return "", 0, err
	}
	if len(bd) > maxReasonPhraseLen {
		return "", 0, fmt.Errorf("%w: reason phrase length %d exceeds %d", ErrProtocolViolation, len(bd), maxReasonPhraseLen)
	}
	return ReasonPhrase(bd), bits, nil
}

func (r ReasonPhrase) encode(w *bitio.Writer) (int, error) {
	if len(r) > maxReasonPhraseLen {
		return 0, fmt.Errorf("%w: reason phrase length %d exceeds %d", ErrProtocolViolation, len(r), maxReasonPhraseLen)
	}
	return varint.BinaryData(r).Encode(w)
}

// GroupOrder is an 8-bit enum: Original=0, Ascending=1, Descending=2.
type GroupOrder uint8

const (
	GroupOrderOriginal   GroupOrder = 0
	GroupOrderAscending  GroupOrder = 1
	GroupOrderDescending GroupOrder = 2
)

var groupOrderField = varint.NewBitNumber(8, 0, 2)

func decodeGroupOrder(r *bitio.Reader) (GroupOrder, error) {
	v, err := groupOrderField.Decode(r)
	return GroupOrder(v), err
}

func (g GroupOrder) encode(w *bitio.Writer) error {
	return groupOrderField.Encode(uint64(g), w)
}

// Forward is an 8-bit enum: Disabled=0, Enabled=1.
type Forward uint8

const (
	ForwardDisabled Forward = 0
	ForwardEnabled  Forward = 1
)

var forwardField = varint.NewBitNumber(8, 0, 1)

func decodeForward(r *bitio.Reader) (Forward, error) {
	v, err := forwardField.Decode(r)
	return Forward(v), err
}

func (f Forward) encode(w *bitio.Writer) error {
	return forwardField.Encode(uint64(f), w)
}

// ContentExists is a Number-width enum: No=0, Yes=1.
type ContentExists uint8

const (
	ContentExistsNo  ContentExists = 0
	ContentExistsYes ContentExists = 1
)

func decodeContentExists(r *bitio.Reader) (ContentExists, int, error) {
	n, bits, err := decodeNumber(r)
	if err != nil {
		return 0, 0, err
	}
	if n != 0 && n != 1 {
		return 0, 0, fmt.Errorf("%w: invalid content_exists %d", ErrProtocolViolation, n)
	}
	return ContentExists(n), bits, nil
}

func (c ContentExists) encode(w *bitio.Writer) (int, error) {
	return encodeNumber(w, uint64(c))
}

// FilterType selects how a Subscribe/Publish range is anchored.
type FilterType uint8

const (
	FilterTypeNextGroupStart FilterType = 1
	FilterTypeLargestObject  FilterType = 2
	FilterTypeAbsoluteStart  FilterType = 3
	FilterTypeAbsoluteRange  FilterType = 4
)

func decodeFilterType(r *bitio.Reader) (FilterType, int, error) {
	n, bits, err := decodeNumber(r)
	if err != nil {
		return 0, 0, err
	}
	if n < 1 || n > 4 {
		return 0, 0, fmt.Errorf("%w: invalid filter_type %d", ErrProtocolViolation, n)
	}
	return FilterType(n), bits, nil
}

func (f FilterType) encode(w *bitio.Writer) (int, error) {
	return encodeNumber(w, uint64(f))
}

// FetchType selects a standalone or joining fetch.
type FetchType uint8

const (
	FetchTypeStandalone      FetchType = 1
	FetchTypeRelativeJoining FetchType = 2
	FetchTypeAbsoluteJoining FetchType = 3
)

func decodeFetchType(r *bitio.Reader) (FetchType, int, error) {
	n, bits, err := decodeNumber(r)
	if err != nil {
		return 0, 0, err
	}
	if n < 1 || n > 3 {
		return 0, 0, fmt.Errorf("%w: invalid fetch_type %d", ErrProtocolViolation, n)
	}
	return FetchType(n), bits, nil
}

func (f FetchType) encode(w *bitio.Writer) (int, error) {
	return encodeNumber(w, uint64(f))
}

// EndOfTrack is an 8-bit boolean-shaped enum: False=0, True=1.
type EndOfTrack uint8

const (
	EndOfTrackFalse EndOfTrack = 0
	EndOfTrackTrue  EndOfTrack = 1
)

var endOfTrackField = varint.NewBitNumber(8, 0, 1)

func decodeEndOfTrack(r *bitio.Reader) (EndOfTrack, error) {
	v, err := endOfTrackField.Decode(r)
	return EndOfTrack(v), err
}

func (e EndOfTrack) encode(w *bitio.Writer) error {
	return endOfTrackField.Encode(uint64(e), w)
}

// AliasType controls which of Token's {Alias, Type, Value} fields are
// present.
type AliasType uint8

const (
	AliasTypeDelete   AliasType = 0
	AliasTypeRegister AliasType = 1
	AliasTypeUseAlias AliasType = 2
	AliasTypeUseValue AliasType = 3
)

var aliasTypeField = varint.NewBitNumber(8, 0, 3)

func decodeAliasType(r *bitio.Reader) (AliasType, error) {
	v, err := aliasTypeField.Decode(r)
	return AliasType(v), err
}

func (a AliasType) encode(w *bitio.Writer) error {
	return aliasTypeField.Encode(uint64(a), w)
}

// StandaloneFetch names the namespace/name/range of a non-joining Fetch.
type StandaloneFetch struct {
	Namespace     Namespace
	Name          Name
	StartLocation Location
	EndLocation   Location
}

func decodeStandaloneFetch(r *bitio.Reader) (StandaloneFetch, int, error) {
	ns, nsb, err := decodeNamespace(r)
	if err != nil {
		return StandaloneFetch{}, 0, err
	}
	name, nameb, err := decodeName(r)
	if err != nil {
		return StandaloneFetch{}, 0, err
	}
	start, startb, err := decodeLocation(r)
	if err != nil {
		return StandaloneFetch{}, 0, err
	}
	end, endb, err := decodeLocation(r)
	if err != nil {
		return StandaloneFetch{}, 0, err
	}
	return StandaloneFetch{ns, name, start, end}, nsb + nameb + startb + endb, nil
}

func (s StandaloneFetch) encode(w *bitio.Writer) (int, error) {
	bits := 0
	for _, fn := range []func(*bitio.Writer) (int, error){
		s.Namespace.encode,
		s.Name.encode,
		s.StartLocation.encode,
		s.EndLocation.encode,
	} {
		b, err := fn(w)
		if err != nil {
			return 0, err
		}
		bits += b
	}
	return bits, nil
}

// JoiningFetch references an existing Subscribe by request ID plus a
// relative/absolute start.
type JoiningFetch struct {
	RequestID varint.Number
	Start     varint.Number
}

func decodeJoiningFetch(r *bitio.Reader) (JoiningFetch, int, error) {
	id, idb, err := decodeNumber(r)
	if err != nil {
		return JoiningFetch{}, 0, err
	}
	start, startb, err := decodeNumber(r)
	if err != nil {
		return JoiningFetch{}, 0, err
	}
	return JoiningFetch{id, start}, idb + startb, nil
}

func (j JoiningFetch) encode(w *bitio.Writer) (int, error) {
	idb, err := j.RequestID.Encode(w)
	if err != nil {
		return 0, err
	}
	startb, err := j.Start.Encode(w)
	if err != nil {
		return 0, err
	}
	return idb + startb, nil
}
