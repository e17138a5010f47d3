package transport

import "testing"

func TestProtoString(t *testing.T) {
	if got := ProtoQuic.String(); got != "quic" {
		t.Fatalf("ProtoQuic.String() = %q, want quic", got)
	}
	if got := ProtoWebTransport.String(); got != "webtransport" {
		t.Fatalf("ProtoWebTransport.String() = %q, want webtransport", got)
	}
}
