package moqt

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yobol/go-moqt/internal/transport"
	"github.com/yobol/go-moqt/internal/varint"
	"github.com/yobol/go-moqt/internal/wire"
)

// SessionMessage is delivered on a session's outbound mailbox: a decoded
// inbound control message for the orchestrator to act on, a non-fatal
// control-stream decode error (the session keeps running), or the single
// terminal error that precedes supervisor exit (§4.6, §7).
type SessionMessage struct {
	Control wire.ControlMessage
	Err     error
}

// SessionCommand is accepted on a session's inbound mailbox: send a
// control message, or close the connection with a termination code and
// reason.
type SessionCommand struct {
	Send  *wire.ControlMessage
	Close *CloseRequest
}

// CloseRequest asks the supervisor to close its connection.
type CloseRequest struct {
	Code   wire.Termination
	Reason string
}

// Session owns one transport connection, one control stream, and the
// mailbox handle the orchestrator uses to drive it (§3.5).
type Session struct {
	ID uuid.UUID

	role    Role
	conn    transport.Connection
	control *controlStream
	ids     *requestIDCounter
	version uint64

	inbound  chan SessionCommand
	outbound chan SessionMessage

	cancel context.CancelFunc
}

func newSession(role Role, conn transport.Connection, cs *controlStream, version uint64, opt *EndpointOption) *Session {
	return &Session{
		ID:       uuid.New(),
		role:     role,
		conn:     conn,
		control:  cs,
		ids:      newRequestIDCounter(role, opt.maxRequestID),
		version:  version,
		inbound:  make(chan SessionCommand, opt.mailboxCapacity),
		outbound: make(chan SessionMessage, opt.mailboxCapacity),
	}
}

// Inbound returns the channel the orchestrator sends SessionCommands on.
func (s *Session) Inbound() chan<- SessionCommand { return s.inbound }

// Outbound returns the channel the supervisor delivers SessionMessages on.
func (s *Session) Outbound() <-chan SessionMessage { return s.outbound }

// run is the supervisor task of §4.6: it loops selecting among a
// control-stream receive, an inbound mailbox command, a second
// bidirectional stream accept (always a protocol violation), and a
// unidirectional stream accept, surfacing errors per §7, until the
// connection closes or the task is cancelled.
func (s *Session) run(ctx context.Context, opt *EndpointOption) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	defer cancel()
	defer close(s.outbound)
	if opt.onDisconnectHandler != nil {
		defer opt.onDisconnectHandler(s)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.watchSecondBiStream(ctx) })
	g.Go(func() error { return s.recvLoop(ctx) })
	g.Go(func() error { return s.commandLoop(ctx) })
	g.Go(func() error { return s.acceptUniLoop(ctx) })

	err := g.Wait()
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}

	term := wire.TerminationInternalError
	var pv errProtocolViolation
	if errors.As(err, &pv) {
		term = pv.Termination()
	}
	lg.WithField("session", s.ID).Errorf("supervisor exit: %v", err)
	s.conn.Close(uint64(term), err.Error())
	s.deliver(SessionMessage{Err: err})
}

// watchSecondBiStream accepts the (forbidden) second bidirectional stream
// and fails the session unconditionally when the peer opens one (§4.6).
func (s *Session) watchSecondBiStream(ctx context.Context) error {
	if _, err := s.conn.AcceptBi(ctx); err != nil {
		<-ctx.Done()
		return ctx.Err()
	}
	return errProtocolViolation{wire.TerminationProtocolViolation, "second bidirectional stream"}
}

// acceptUniLoop accepts unidirectional streams as they arrive. Media-object
// processing is out of scope (§4.6); each stream is just drained and
// dropped so the mandatory select arm exists without committing to an
// object codec here.
func (s *Session) acceptUniLoop(ctx context.Context) error {
	for {
		rs, err := s.conn.AcceptUni(ctx)
		if err != nil {
			<-ctx.Done()
			return ctx.Err()
		}
		go drainUniStream(rs)
	}
}

// drainUniStream discards a unidirectional stream's contents, logging the
// byte count once it closes.
func drainUniStream(rs transport.RecvStream) {
	buf := make([]byte, transport.PacketSize)
	total := 0
	for {
		n, err := rs.Read(buf)
		total += n
		if err != nil {
			lg.Debugf("unidirectional stream closed after %d bytes: %v", total, err)
			return
		}
	}
}

// recvLoop reads and dispatches control messages until a fatal error
// (§4.6, §4.7). A clean EOF is skipped and reading continues; a non-fatal
// decode error is delivered on the outbound mailbox and reading continues;
// a fatal error is returned so that run delivers it once.
func (s *Session) recvLoop(ctx context.Context) error {
	for {
		msg, err := s.control.recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				continue
			}
			if IsProtocolViolationErr(err) || IsIOErr(err) {
				return err
			}
			select {
			case s.outbound <- SessionMessage{Err: err}:
			case <-ctx.Done():
			}
			continue
		}
		if err := s.rejectHandshakeReplay(msg); err != nil {
			return err
		}
		s.deliver(SessionMessage{Control: msg})
	}
}

// rejectHandshakeReplay enforces the steady-state rule that a second
// ClientSetup/ServerSetup is a protocol violation (§4.5).
func (s *Session) rejectHandshakeReplay(msg wire.ControlMessage) error {
	switch msg.Tag {
	case wire.TagClientSetup, wire.TagServerSetup:
		return errProtocolViolation{wire.TerminationProtocolViolation, "setup message outside handshake"}
	default:
		return nil
	}
}

// commandLoop drains the inbound mailbox, sending control messages or
// honoring close requests from the orchestrator.
func (s *Session) commandLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-s.inbound:
			if cmd.Send != nil {
				if err := s.control.send(*cmd.Send); err != nil {
					return err
				}
			}
			if cmd.Close != nil {
				s.conn.Close(uint64(cmd.Close.Code), cmd.Close.Reason)
				return errProtocolViolation{cmd.Close.Code, cmd.Close.Reason}
			}
		}
	}
}

func (s *Session) deliver(m SessionMessage) {
	select {
	case s.outbound <- m:
	default:
		lg.WithField("session", s.ID).Warn("outbound mailbox full, dropping message")
	}
}

// NextRequestID issues the next request ID on this session's local
// counter (§3.6).
func (s *Session) NextRequestID() (varint.Number, error) {
	return s.ids.issue()
}

// RaiseMaxRequestID raises the ceiling used by NextRequestID, in response
// to a negotiated or received MaxRequestId.
func (s *Session) RaiseMaxRequestID(max uint64) {
	s.ids.setMax(max)
}
