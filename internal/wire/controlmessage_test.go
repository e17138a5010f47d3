package wire

import (
	"bytes"
	"testing"

	"github.com/yobol/go-moqt/internal/bitio"
	"github.com/yobol/go-moqt/internal/varint"
)

func TestClientSetupScenario(t *testing.T) {
	msg := ControlMessage{
		Tag: TagClientSetup,
		Payload: ClientSetup{
			SupportedVersions: []varint.Number{1, 2},
			Parameters:        nil,
		},
	}
	payload, err := EncodePayload(msg)
	if err != nil {
		t.Fatalf("EncodePayload: %v", err)
	}
	if !bytes.Equal(payload, []byte{0x02, 0x01, 0x02, 0x00}) {
		t.Fatalf("payload = % X", payload)
	}
	framed, err := EncodeControlMessage(msg)
	if err != nil {
		t.Fatalf("EncodeControlMessage: %v", err)
	}
	want := []byte{0x20, 0x00, 0x04, 0x02, 0x01, 0x02, 0x00}
	if !bytes.Equal(framed, want) {
		t.Fatalf("framed = % X, want % X", framed, want)
	}

	got, err := DecodeControlMessage(bitio.NewReader(framed))
	if err != nil {
		t.Fatalf("DecodeControlMessage: %v", err)
	}
	cs := got.Payload.(ClientSetup)
	if len(cs.SupportedVersions) != 2 || cs.SupportedVersions[0] != 1 || cs.SupportedVersions[1] != 2 {
		t.Fatalf("decoded = %+v", cs)
	}
}

func TestSubscribeOkScenario(t *testing.T) {
	msg := ControlMessage{
		Tag: TagSubscribeOk,
		Payload: SubscribeOk{
			RequestID:     9,
			Alias:         13,
			Expires:       10_000_000, // 10ms in ns
			GroupOrder:    GroupOrderOriginal,
			ContentExists: ContentExistsNo,
		},
	}
	payload, err := EncodePayload(msg)
	if err != nil {
		t.Fatalf("EncodePayload: %v", err)
	}
	if !bytes.Equal(payload, []byte{0x09, 0x0D, 0x0A, 0x00, 0x00, 0x00}) {
		t.Fatalf("payload = % X", payload)
	}
	framed, err := EncodeControlMessage(msg)
	if err != nil {
		t.Fatalf("EncodeControlMessage: %v", err)
	}
	want := []byte{0x04, 0x00, 0x06, 0x09, 0x0D, 0x0A, 0x00, 0x00, 0x00}
	if !bytes.Equal(framed, want) {
		t.Fatalf("framed = % X, want % X", framed, want)
	}
}

func TestSubscribeScenario(t *testing.T) {
	ns, err := NewNamespace("num", "boom")
	if err != nil {
		t.Fatalf("NewNamespace: %v", err)
	}
	msg := ControlMessage{
		Tag: TagSubscribe,
		Payload: Subscribe{
			RequestID:          15,
			Namespace:          ns,
			Name:               Name("bob"),
			SubscriberPriority: 50,
			GroupOrder:         GroupOrderOriginal,
			Forward:            ForwardEnabled,
			FilterType:         FilterTypeAbsoluteStart,
			StartLocation:      Location{Group: 5, Object: 1},
			HasStartLocation:   true,
		},
	}
	payload, err := EncodePayload(msg)
	if err != nil {
		t.Fatalf("EncodePayload: %v", err)
	}
	want := []byte{
		0x0F, 0x02, 0x03, 0x6E, 0x75, 0x6D, 0x04, 0x62, 0x6F, 0x6F, 0x6D,
		0x03, 0x62, 0x6F, 0x62, 0x32, 0x00, 0x01, 0x03, 0x05, 0x01, 0x00,
	}
	if !bytes.Equal(payload, want) {
		t.Fatalf("payload = % X, want % X", payload, want)
	}
}

func TestFetchErrorScenario(t *testing.T) {
	msg := ControlMessage{
		Tag: TagFetchError,
		Payload: FetchError{
			RequestID: 50,
			Code:      FetchErrorInvalidRange,
			Reason:    "error",
		},
	}
	payload, err := EncodePayload(msg)
	if err != nil {
		t.Fatalf("EncodePayload: %v", err)
	}
	if !bytes.Equal(payload, []byte{0x32, 0x05, 0x05, 0x65, 0x72, 0x72, 0x6F, 0x72}) {
		t.Fatalf("payload = % X", payload)
	}
	framed, err := EncodeControlMessage(msg)
	if err != nil {
		t.Fatalf("EncodeControlMessage: %v", err)
	}
	want := []byte{0x19, 0x00, 0x08, 0x32, 0x05, 0x05, 0x65, 0x72, 0x72, 0x6F, 0x72}
	if !bytes.Equal(framed, want) {
		t.Fatalf("framed = % X, want % X", framed, want)
	}

	got, err := DecodeControlMessage(bitio.NewReader(framed))
	if err != nil {
		t.Fatalf("DecodeControlMessage: %v", err)
	}
	fe := got.Payload.(FetchError)
	if fe.RequestID != 50 || fe.Code != FetchErrorInvalidRange || fe.Reason != "error" {
		t.Fatalf("decoded = %+v", fe)
	}
}

func TestFrameLengthMismatchIsProtocolViolation(t *testing.T) {
	framed := []byte{0x19, 0x00, 0x09, 0x32, 0x05, 0x05, 0x65, 0x72, 0x72, 0x6F, 0x72, 0x00}
	_, err := DecodeControlMessage(bitio.NewReader(framed))
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestParameterMapParityLaw(t *testing.T) {
	w := bitio.NewWriter()
	kv := rawKV{Key: 1, IsBytes: false, Num: 5} // odd key with Number value: invalid
	if _, err := kv.encode(w); err == nil {
		t.Fatalf("expected parity violation error")
	}
}
