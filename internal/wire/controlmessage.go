package wire

import (
	"fmt"

	"github.com/yobol/go-moqt/internal/bitio"
	"github.com/yobol/go-moqt/internal/varint"
)

// lengthField is the BitNumber<16> payload-length frame element (§4.3).
var lengthField = varint.NewBitNumber(16, 0, maxPayloadLen)

// ControlMessage is the top-level tagged union framing every message on
// the control stream: a Number tag, a 16-bit payload length in bytes, then
// the payload. Payload holds the concrete decoded/to-be-encoded message
// struct (Subscribe, SubscribeOk, ClientSetup, ...); Go has no sum type, so
// the Tag field plus a type switch at encode/decode time stands in for the
// schema's tagged union.
type ControlMessage struct {
	Tag     Tag
	Payload interface{}
}

// EncodePayload renders just the payload bytes of msg (no tag, no length
// prefix) — used both by EncodeControlMessage and by tests that check a
// scenario's payload bytes independently of the frame.
func EncodePayload(msg ControlMessage) ([]byte, error) {
	w := bitio.NewWriter()
	if err := encodePayload(w, msg); err != nil {
		return nil, err
	}
	return w.Finish()
}

func encodePayload(w *bitio.Writer, msg ControlMessage) error {
	var err error
	switch msg.Tag {
	case TagSubscribeUpdate:
		_, err = msg.Payload.(SubscribeUpdate).encode(w)
	case TagSubscribe, TagTrackStatus:
		_, err = msg.Payload.(Subscribe).encode(w)
	case TagSubscribeOk, TagTrackStatusOk:
		_, err = msg.Payload.(SubscribeOk).encode(w)
	case TagSubscribeError, TagTrackStatusError:
		_, err = msg.Payload.(SubscribeError).encode(w)
	case TagPublishNamespace:
		_, err = msg.Payload.(PublishNamespace).encode(w)
	case TagPublishNamespaceOk:
		_, err = msg.Payload.(PublishNamespaceOk).encode(w)
	case TagPublishNamespaceError:
		_, err = msg.Payload.(PublishNamespaceError).encode(w)
	case TagPublishNamespaceDone:
		_, err = msg.Payload.(PublishNamespaceDone).encode(w)
	case TagUnsubscribe:
		_, err = msg.Payload.(Unsubscribe).encode(w)
	case TagPublishDone:
		_, err = msg.Payload.(PublishDone).encode(w)
	case TagPublishNamespaceCancel:
		_, err = msg.Payload.(PublishNamespaceCancel).encode(w)
	case TagGoAway:
		_, err = msg.Payload.(GoAway).encode(w)
	case TagSubscribeNamespace:
		_, err = msg.Payload.(SubscribeNamespace).encode(w)
	case TagSubscribeNamespaceOk:
		_, err = msg.Payload.(SubscribeNamespaceOk).encode(w)
	case TagSubscribeNamespaceError:
		_, err = msg.Payload.(SubscribeNamespaceError).encode(w)
	case TagUnsubscribeNamespace:
		_, err = msg.Payload.(UnsubscribeNamespace).encode(w)
	case TagMaxRequestId:
		_, err = msg.Payload.(MaxRequestId).encode(w)
	case TagFetch:
		_, err = msg.Payload.(Fetch).encode(w)
	case TagFetchCancel:
		_, err = msg.Payload.(FetchCancel).encode(w)
	case TagFetchOk:
		_, err = msg.Payload.(FetchOk).encode(w)
	case TagFetchError:
		_, err = msg.Payload.(FetchError).encode(w)
	case TagRequestsBlocked:
		_, err = msg.Payload.(RequestsBlocked).encode(w)
	case TagPublish:
		_, err = msg.Payload.(Publish).encode(w)
	case TagPublishOk:
		_, err = msg.Payload.(PublishOk).encode(w)
	case TagPublishError:
		_, err = msg.Payload.(PublishError).encode(w)
	case TagClientSetup:
		_, err = msg.Payload.(ClientSetup).encode(w)
	case TagServerSetup:
		_, err = msg.Payload.(ServerSetup).encode(w)
	default:
		err = fmt.Errorf("%w: unknown control message tag %#x", ErrProtocolViolation, uint64(msg.Tag))
	}
	return err
}

// maxPayloadLen is the largest payload length the 16-bit frame field can
// express.
const maxPayloadLen = 0xFFFF

// EncodeControlMessage renders the full frame: tag, 16-bit length, payload.
func EncodeControlMessage(msg ControlMessage) ([]byte, error) {
	payload, err := EncodePayload(msg)
	if err != nil {
		return nil, err
	}
	if len(payload) > maxPayloadLen {
		return nil, fmt.Errorf("%w: payload length %d exceeds %d", ErrProtocolViolation, len(payload), maxPayloadLen)
	}
	w := bitio.NewWriter()
	if _, err := msg.Tag.number().Encode(w); err != nil {
		return nil, err
	}
	if err := lengthField.Encode(uint64(len(payload)), w); err != nil {
		return nil, err
	}
	if err := w.WriteBytes(payload); err != nil {
		return nil, err
	}
	return w.Finish()
}

// DecodeControlMessage reads one full frame from r: tag, 16-bit length,
// then the payload decoded according to the tag. A length mismatch
// between the declared frame length and the bits the variant's own decode
// consumes is a protocol violation.
func DecodeControlMessage(r *bitio.Reader) (ControlMessage, error) {
	tagNum, _, err := decodeNumber(r)
	if err != nil {
		return ControlMessage{}, err
	}
	tag := Tag(tagNum)

	length, err := lengthField.Decode(r)
	if err != nil {
		return ControlMessage{}, err
	}
	outerBits := int(length) * 8

	var payload interface{}
	switch tag {
	case TagSubscribeUpdate:
		payload, _, err = decodeSubscribeUpdate(r, outerBits)
	case TagSubscribe, TagTrackStatus:
		payload, _, err = decodeSubscribe(r, outerBits)
	case TagSubscribeOk, TagTrackStatusOk:
		payload, _, err = decodeSubscribeOk(r, outerBits)
	case TagSubscribeError, TagTrackStatusError:
		payload, _, err = decodeSubscribeError(r, outerBits)
	case TagPublishNamespace:
		payload, _, err = decodePublishNamespace(r, outerBits)
	case TagPublishNamespaceOk:
		payload, _, err = decodePublishNamespaceOk(r, outerBits)
	case TagPublishNamespaceError:
		payload, _, err = decodePublishNamespaceError(r, outerBits)
	case TagPublishNamespaceDone:
		payload, _, err = decodePublishNamespaceDone(r, outerBits)
	case TagUnsubscribe:
		payload, _, err = decodeUnsubscribe(r, outerBits)
	case TagPublishDone:
		payload, _, err = decodePublishDone(r, outerBits)
	case TagPublishNamespaceCancel:
		payload, _, err = decodePublishNamespaceCancel(r, outerBits)
	case TagGoAway:
		payload, _, err = decodeGoAway(r, outerBits)
	case TagSubscribeNamespace:
		payload, _, err = decodeSubscribeNamespace(r, outerBits)
	case TagSubscribeNamespaceOk:
		payload, _, err = decodeSubscribeNamespaceOk(r, outerBits)
	case TagSubscribeNamespaceError:
		payload, _, err = decodeSubscribeNamespaceError(r, outerBits)
	case TagUnsubscribeNamespace:
		payload, _, err = decodeUnsubscribeNamespace(r, outerBits)
	case TagMaxRequestId:
		payload, _, err = decodeMaxRequestId(r, outerBits)
	case TagFetch:
		payload, _, err = decodeFetch(r, outerBits)
	case TagFetchCancel:
		payload, _, err = decodeFetchCancel(r, outerBits)
	case TagFetchOk:
		payload, _, err = decodeFetchOk(r, outerBits)
	case TagFetchError:
		payload, _, err = decodeFetchError(r, outerBits)
	case TagRequestsBlocked:
		payload, _, err = decodeRequestsBlocked(r, outerBits)
	case TagPublish:
		payload, _, err = decodePublish(r, outerBits)
	case TagPublishOk:
		payload, _, err = decodePublishOk(r, outerBits)
	case TagPublishError:
		payload, _, err = decodePublishError(r, outerBits)
	case TagClientSetup:
		payload, _, err = decodeClientSetup(r, outerBits)
	case TagServerSetup:
		payload, _, err = decodeServerSetup(r, outerBits)
	default:
		err = fmt.Errorf("%w: unknown control message tag %#x", ErrProtocolViolation, uint64(tag))
	}
	if err != nil {
		return ControlMessage{}, err
	}
	return ControlMessage{Tag: tag, Payload: payload}, nil
}
