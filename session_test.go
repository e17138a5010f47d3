package moqt

import (
	"bytes"
	"io"
	"testing"
	"time"
)

// fakeRecvStream is a transport.RecvStream backed by a fixed buffer, used
// to exercise drainUniStream without a real unidirectional stream.
type fakeRecvStream struct {
	r *bytes.Reader
}

func (s *fakeRecvStream) Read(p []byte) (int, error) { return s.r.Read(p) }

func TestDrainUniStreamReadsToEOF(t *testing.T) {
	done := make(chan struct{})
	rs := &fakeRecvStream{r: bytes.NewReader([]byte("media object bytes"))}
	go func() {
		drainUniStream(rs)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("drainUniStream did not return after EOF")
	}
	if _, err := rs.r.ReadByte(); err != io.EOF {
		t.Fatalf("expected reader fully drained")
	}
}
