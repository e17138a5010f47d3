package moqt

import (
	"context"

	"github.com/yobol/go-moqt/internal/bitio"
	"github.com/yobol/go-moqt/internal/transport"
	"github.com/yobol/go-moqt/internal/varint"
	"github.com/yobol/go-moqt/internal/wire"
)

// DraftVersion is this module's single supported MOQT draft version when
// no explicit list is configured via EndpointOption.SetSupportedVersions.
const DraftVersion = 0xff00000c

// controlStream serializes access to the exclusive send/recv halves of
// the session's single bidirectional stream (§5): at most one send and
// one recv in flight at a time.
type controlStream struct {
	stream transport.Stream
	sendMu chanMutex
	recvMu chanMutex
}

// chanMutex is a channel-based mutex so a lock held across an await (a
// blocking stream read) is ordinary, matching §5's "a reader holding the
// lock across an await is normal".
type chanMutex chan struct{}

func newChanMutex() chanMutex {
	m := make(chanMutex, 1)
	m <- struct{}{}
	return m
}

func (m chanMutex) lock()   { <-m }
func (m chanMutex) unlock() { m <- struct{}{} }

func newControlStream(s transport.Stream) *controlStream {
	return &controlStream{stream: s, sendMu: newChanMutex(), recvMu: newChanMutex()}
}

func (cs *controlStream) send(msg wire.ControlMessage) error {
	cs.sendMu.lock()
	defer cs.sendMu.unlock()
	framed, err := wire.EncodeControlMessage(msg)
	if err != nil {
		return errDecode{err}
	}
	if _, err := cs.stream.Write(framed); err != nil {
		return errIO{err}
	}
	return nil
}

func (cs *controlStream) recv() (wire.ControlMessage, error) {
	cs.recvMu.lock()
	defer cs.recvMu.unlock()
	buf := make([]byte, transport.PacketSize)
	n, err := cs.stream.Read(buf)
	if err != nil {
		return wire.ControlMessage{}, errIO{err}
	}
	msg, err := wire.DecodeControlMessage(bitio.NewReader(buf[:n]))
	if err != nil {
		return wire.ControlMessage{}, errDecode{err}
	}
	return msg, nil
}

// clientHandshake runs the initiating side of §4.5 over conn, returning a
// ready controlStream and the negotiated version.
func clientHandshake(ctx context.Context, conn transport.Connection, opt *EndpointOption) (*controlStream, uint64, error) {
	s, err := conn.OpenBi(ctx)
	if err != nil {
		return nil, 0, errIO{err}
	}
	cs := newControlStream(s)

	versions := make([]varint.Number, len(opt.supportedVersions))
	for i, v := range opt.supportedVersions {
		versions[i] = varint.Number(v)
	}
	if err := cs.send(wire.ControlMessage{
		Tag: wire.TagClientSetup,
		Payload: wire.ClientSetup{
			SupportedVersions: versions,
		},
	}); err != nil {
		return nil, 0, err
	}

	msg, err := cs.recv()
	if err != nil {
		return nil, 0, err
	}
	setup, ok := msg.Payload.(wire.ServerSetup)
	if !ok {
		conn.Close(uint64(wire.TerminationProtocolViolation), "expected ServerSetup")
		return nil, 0, errProtocolViolation{wire.TerminationProtocolViolation, "expected ServerSetup"}
	}

	selected := uint64(setup.SelectedVersion)
	if opt.singleVersionMode {
		if selected != opt.supportedVersions[0] {
			return nil, 0, errMismatchedVersion{opt.supportedVersions[0], selected}
		}
	} else if !containsVersion(opt.supportedVersions, selected) {
		return nil, 0, errNoSupportedVersion{}
	}
	return cs, selected, nil
}

// serverHandshake runs the accepting side of §4.5 over conn.
func serverHandshake(ctx context.Context, conn transport.Connection, opt *EndpointOption) (*controlStream, uint64, error) {
	s, err := conn.AcceptBi(ctx)
	if err != nil {
		return nil, 0, errIO{err}
	}
	cs := newControlStream(s)

	msg, err := cs.recv()
	if err != nil {
		return nil, 0, err
	}
	setup, ok := msg.Payload.(wire.ClientSetup)
	if !ok {
		conn.Close(uint64(wire.TerminationProtocolViolation), "expected ClientSetup")
		return nil, 0, errProtocolViolation{wire.TerminationProtocolViolation, "expected ClientSetup"}
	}

	selected, ok := intersectVersion(opt.supportedVersions, setup.SupportedVersions)
	if !ok {
		conn.Close(uint64(wire.TerminationVersionNegotiationFailed), "no common version")
		return nil, 0, errNoSupportedVersion{}
	}

	if err := cs.send(wire.ControlMessage{
		Tag:     wire.TagServerSetup,
		Payload: wire.ServerSetup{SelectedVersion: varint.Number(selected)},
	}); err != nil {
		return nil, 0, err
	}
	return cs, selected, nil
}

func containsVersion(supported []uint64, v uint64) bool {
	for _, s := range supported {
		if s == v {
			return true
		}
	}
	return false
}

func intersectVersion(supported []uint64, offered []varint.Number) (uint64, bool) {
	for _, s := range supported {
		for _, o := range offered {
			if uint64(o) == s {
				return s, true
			}
		}
	}
	return 0, false
}
