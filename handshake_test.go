package moqt

import (
	"bytes"
	"testing"

	"github.com/yobol/go-moqt/internal/varint"
	"github.com/yobol/go-moqt/internal/wire"
)

// loopbackStream is a transport.Stream backed by a single buffer, letting
// controlStream.send/recv be exercised without a real QUIC/WebTransport
// socket: whatever is written becomes readable back out.
type loopbackStream struct {
	buf bytes.Buffer
}

func (s *loopbackStream) Write(p []byte) (int, error) { return s.buf.Write(p) }
func (s *loopbackStream) Read(p []byte) (int, error)  { return s.buf.Read(p) }
func (s *loopbackStream) Close() error                { return nil }

func TestControlStreamSendRecvRoundTrip(t *testing.T) {
	cs := newControlStream(&loopbackStream{})

	msg := wire.ControlMessage{
		Tag: wire.TagClientSetup,
		Payload: wire.ClientSetup{
			SupportedVersions: nil,
		},
	}
	if err := cs.send(msg); err != nil {
		t.Fatalf("send: %v", err)
	}
	got, err := cs.recv()
	if err != nil {
		t.Fatalf("recv: %v", err)
	}
	if got.Tag != wire.TagClientSetup {
		t.Fatalf("got.Tag = %v, want TagClientSetup", got.Tag)
	}
	if _, ok := got.Payload.(wire.ClientSetup); !ok {
		t.Fatalf("got.Payload = %T, want wire.ClientSetup", got.Payload)
	}
}

func TestContainsVersion(t *testing.T) {
	supported := []uint64{1, 2, DraftVersion}
	if !containsVersion(supported, DraftVersion) {
		t.Fatalf("containsVersion: expected DraftVersion to be present")
	}
	if containsVersion(supported, 999) {
		t.Fatalf("containsVersion: unexpected match for 999")
	}
}

func TestIntersectVersion(t *testing.T) {
	supported := []uint64{1, DraftVersion}
	offered := []varint.Number{varint.Number(DraftVersion), varint.Number(5)}
	selected, ok := intersectVersion(supported, offered)
	if !ok || selected != DraftVersion {
		t.Fatalf("intersectVersion = (%d, %v), want (%d, true)", selected, ok, DraftVersion)
	}

	_, ok = intersectVersion(supported, []varint.Number{varint.Number(7)})
	if ok {
		t.Fatalf("intersectVersion: unexpected match")
	}
}
