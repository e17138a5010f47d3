package wire

import (
	"github.com/yobol/go-moqt/internal/bitio"
	"github.com/yobol/go-moqt/internal/varint"
)

// Publish announces a track for subscription.
type Publish struct {
	RequestID       varint.Number
	Namespace       Namespace
	Name            Name
	Alias           varint.Number
	GroupOrder      GroupOrder
	ContentExists   ContentExists
	LargestLocation Location
	HasLargest      bool
	Forward         Forward
	Parameters      Parameters
}

func decodePublish(r *bitio.Reader, outerBits int) (Publish, int, error) {
	var p Publish
	bits := 0

	id, b, err := decodeNumber(r)
	if err != nil {
		return Publish{}, 0, err
	}
	p.RequestID = id
	bits += b

	ns, b, err := decodeNamespace(r)
	if err != nil {
		return Publish{}, 0, err
	}
	p.Namespace = ns
	bits += b

	name, b, err := decodeName(r)
	if err != nil {
		return Publish{}, 0, err
	}
	p.Name = name
	bits += b

	alias, b, err := decodeNumber(r)
	if err != nil {
		return Publish{}, 0, err
	}
	p.Alias = alias
	bits += b

	if p.GroupOrder, err = decodeGroupOrder(r); err != nil {
		return Publish{}, 0, err
	}
	bits += 8

	ce, b, err := decodeContentExists(r)
	if err != nil {
		return Publish{}, 0, err
	}
	p.ContentExists = ce
	bits += b

	if ce == ContentExistsYes {
		loc, b, err := decodeLocation(r)
		if err != nil {
			return Publish{}, 0, err
		}
		p.LargestLocation, p.HasLargest = loc, true
		bits += b
	}

	if p.Forward, err = decodeForward(r); err != nil {
		return Publish{}, 0, err
	}
	bits += 8

	params, b, err := decodeParameters(r)
	if err != nil {
		return Publish{}, 0, err
	}
	p.Parameters = params
	bits += b

	if outerBits >= 0 && bits != outerBits {
		return Publish{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return p, bits, nil
}

func (p Publish) encode(w *bitio.Writer) (int, error) {
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
	if err := add(p.Name.encode(w)); err != nil {
		return 0, err
	}
	if err := add(p.Alias.Encode(w)); err != nil {
		return 0, err
	}
	if err := p.GroupOrder.encode(w); err != nil {
		return 0, err
	}
	bits += 8
	if err := add(p.ContentExists.encode(w)); err != nil {
		return 0, err
	}
	if p.ContentExists == ContentExistsYes {
		if err := add(p.LargestLocation.encode(w)); err != nil {
			return 0, err
		}
	}
	if err := p.Forward.encode(w); err != nil {
		return 0, err
	}
	bits += 8
	if err := add(p.Parameters.encode(w)); err != nil {
		return 0, err
	}
	return bits, nil
}

// PublishOk confirms a Publish and tells the publisher which range the
// subscriber side wants forwarded.
type PublishOk struct {
	RequestID          varint.Number
	Forward            Forward
	SubscriberPriority uint8
	GroupOrder         GroupOrder
	FilterType         FilterType
	StartLocation      Location
	HasStartLocation   bool
	EndGroup           varint.Number
	HasEndGroup        bool
	Parameters         Parameters
}

func decodePublishOk(r *bitio.Reader, outerBits int) (PublishOk, int, error) {
	var p PublishOk
	bits := 0

	id, b, err := decodeNumber(r)
	if err != nil {
		return PublishOk{}, 0, err
	}
	p.RequestID = id
	bits += b

	if p.Forward, err = decodeForward(r); err != nil {
		return PublishOk{}, 0, err
	}
	bits += 8

	prio, err := subscriberPriorityField.Decode(r)
	if err != nil {
		return PublishOk{}, 0, err
	}
	p.SubscriberPriority = uint8(prio)
	bits += 8

	if p.GroupOrder, err = decodeGroupOrder(r); err != nil {
		return PublishOk{}, 0, err
	}
	bits += 8

	ft, b, err := decodeFilterType(r)
	if err != nil {
		return PublishOk{}, 0, err
	}
	p.FilterType = ft
	bits += b

	if ft == FilterTypeAbsoluteStart || ft == FilterTypeAbsoluteRange {
		loc, b, err := decodeLocation(r)
		if err != nil {
			return PublishOk{}, 0, err
		}
		p.StartLocation, p.HasStartLocation = loc, true
		bits += b
	}
	if ft == FilterTypeAbsoluteRange {
		eg, b, err := decodeNumber(r)
		if err != nil {
			return PublishOk{}, 0, err
		}
		p.EndGroup, p.HasEndGroup = eg, true
		bits += b
	}

	params, b, err := decodeParameters(r)
	if err != nil {
		return PublishOk{}, 0, err
	}
	p.Parameters = params
	bits += b

	if outerBits >= 0 && bits != outerBits {
		return PublishOk{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return p, bits, nil
}

func (p PublishOk) encode(w *bitio.Writer) (int, error) {
	bits := 0
	add := func(b int, err error) error {
		bits += b
		return err
	}
	if err := add(p.RequestID.Encode(w)); err != nil {
		return 0, err
	}
	if err := p.Forward.encode(w); err != nil {
		return 0, err
	}
	bits += 8
	if err := subscriberPriorityField.Encode(uint64(p.SubscriberPriority), w); err != nil {
		return 0, err
	}
	bits += 8
	if err := p.GroupOrder.encode(w); err != nil {
		return 0, err
	}
	bits += 8
	if err := add(p.FilterType.encode(w)); err != nil {
		return 0, err
	}
	if p.FilterType == FilterTypeAbsoluteStart || p.FilterType == FilterTypeAbsoluteRange {
		if err := add(p.StartLocation.encode(w)); err != nil {
			return 0, err
		}
	}
	if p.FilterType == FilterTypeAbsoluteRange {
		if err := add(p.EndGroup.Encode(w)); err != nil {
			return 0, err
		}
	}
	if err := add(p.Parameters.encode(w)); err != nil {
		return 0, err
	}
	return bits, nil
}

// PublishError reports failure of a Publish.
type PublishError struct {
	RequestID varint.Number
	Code      PublishErrorCode
	Reason    ReasonPhrase
}

func decodePublishError(r *bitio.Reader, outerBits int) (PublishError, int, error) {
	e, bits, err := decodeErrCommon(r)
	if err != nil {
		return PublishError{}, 0, err
	}
	if outerBits >= 0 && bits != outerBits {
		return PublishError{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return PublishError{e.RequestID, PublishErrorCode(e.Code), e.Reason}, bits, nil
}

func (p PublishError) encode(w *bitio.Writer) (int, error) {
	return errCommon{p.RequestID, varint.Number(p.Code), p.Reason}.encode(w)
}

// PublishDone signals end-of-track for a Publish; it carries no
// parameters, matching the reference implementation.
type PublishDone struct {
	RequestID   varint.Number
	StatusCode  PublishDoneCode
	StreamCount varint.Number
	ErrorReason ReasonPhrase
}

func decodePublishDone(r *bitio.Reader, outerBits int) (PublishDone, int, error) {
	var p PublishDone
	bits := 0

	id, b, err := decodeNumber(r)
	if err != nil {
		return PublishDone{}, 0, err
	}
	p.RequestID = id
	bits += b

	code, b, err := decodeNumber(r)
	if err != nil {
		return PublishDone{}, 0, err
	}
	p.StatusCode = PublishDoneCode(code)
	bits += b

	count, b, err := decodeNumber(r)
	if err != nil {
		return PublishDone{}, 0, err
	}
	p.StreamCount = count
	bits += b

	reason, b, err := decodeReasonPhrase(r)
	if err != nil {
		return PublishDone{}, 0, err
	}
	p.ErrorReason = reason
	bits += b

	if outerBits >= 0 && bits != outerBits {
		return PublishDone{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return p, bits, nil
}

func (p PublishDone) encode(w *bitio.Writer) (int, error) {
	bits := 0
	add := func(b int, err error) error {
		bits += b
		return err
	}
	if err := add(p.RequestID.Encode(w)); err != nil {
		return 0, err
	}
	if err := add(encodeNumber(w, uint64(p.StatusCode))); err != nil {
		return 0, err
	}
	if err := add(p.StreamCount.Encode(w)); err != nil {
		return 0, err
	}
	if err := add(p.ErrorReason.encode(w)); err != nil {
		return 0, err
	}
	return bits, nil
}
