package moqt

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"sync"

	"github.com/quic-go/quic-go"
	"github.com/quic-go/quic-go/http3"
	"github.com/quic-go/webtransport-go"

	"github.com/yobol/go-moqt/internal/transport"
)

// quicALPN is the ALPN token QUIC negotiates for a MOQT connection.
const quicALPN = "moq-00"

// Endpoint accepts connections on one transport (Quic or WebTransport) and
// runs each through the handshake and session supervisor (§4.5, §4.6).
type Endpoint struct {
	opt *EndpointOption

	quicListener *quic.Listener
	wtServer     *webtransport.Server

	sessions sync.Map // net.Addr.String() -> *Session
}

// NewEndpoint constructs an Endpoint from opt without starting to listen.
func NewEndpoint(opt *EndpointOption) *Endpoint {
	return &Endpoint{opt: opt}
}

// Listen starts accepting connections according to opt.proto.
func (e *Endpoint) Listen(ctx context.Context) error {
	switch e.opt.proto {
	case transport.ProtoQuic:
		return e.listenQuic(ctx)
	case transport.ProtoWebTransport:
		return e.listenWebTransport(ctx)
	default:
		return errConfiguration{"unknown transport protocol"}
	}
}

func (e *Endpoint) listenQuic(ctx context.Context) error {
	tc := e.opt.tlsConfig
	if tc == nil {
		return errConfiguration{"quic endpoint requires TLS configuration"}
	}
	tc = tc.Clone()
	tc.NextProtos = []string{quicALPN}

	l, err := quic.ListenAddr(e.opt.addr.Host, tc, nil)
	if err != nil {
		return errIO{err}
	}
	e.quicListener = l
	lg.Infof("moqt endpoint listening (quic) on %s", e.opt.addr.Host)

	for {
		c, err := l.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			lg.Errorf("accept quic connection: %v", err)
			continue
		}
		go e.handle(ctx, transport.NewQuicConnection(c))
	}
}

func (e *Endpoint) listenWebTransport(ctx context.Context) error {
	if e.opt.tlsConfig == nil {
		return errConfiguration{"webtransport endpoint requires TLS configuration"}
	}
	server := &webtransport.Server{
		H3: http3.Server{
			Addr:      e.opt.addr.Host,
			TLSConfig: e.opt.tlsConfig,
		},
	}
	path := e.opt.addr.Path
	if path == "" {
		path = "/"
	}
	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		wtSession, err := server.Upgrade(w, r)
		if err != nil {
			lg.Errorf("upgrade webtransport session from %s: %v", r.RemoteAddr, err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		go e.handle(ctx, transport.NewWebTransportConnection(wtSession))
	})
	server.H3.Handler = mux
	e.wtServer = server

	lg.Infof("moqt endpoint listening (webtransport) on %s%s", e.opt.addr.Host, e.opt.addr.Path)
	go func() {
		<-ctx.Done()
		server.Close()
	}()
	if err := server.ListenAndServeTLS("", ""); err != nil && ctx.Err() == nil {
		return errIO{err}
	}
	return nil
}

// handle runs the accepting side of the handshake and, on success, the
// session supervisor, registering and deregistering the session by remote
// address in e.sessions (§5).
func (e *Endpoint) handle(ctx context.Context, conn transport.Connection) {
	cs, version, err := serverHandshake(ctx, conn, e.opt)
	if err != nil {
		lg.Errorf("handshake with %s failed: %v", conn.RemoteAddr(), err)
		return
	}

	s := newSession(RoleServer, conn, cs, version, e.opt)
	key := conn.RemoteAddr().String()
	e.sessions.Store(key, s)
	defer e.sessions.Delete(key)

	e.opt.onSessionHandler(s)
	s.run(ctx, e.opt)
}

// SessionByAddr looks up an active session by its peer's remote address.
func (e *Endpoint) SessionByAddr(addr net.Addr) (*Session, bool) {
	v, ok := e.sessions.Load(addr.String())
	if !ok {
		return nil, false
	}
	return v.(*Session), true
}

// Dial opens a client-side connection to the endpoint's configured
// address and runs the initiating handshake, returning the resulting
// Session.
func Dial(ctx context.Context, opt *EndpointOption) (*Session, error) {
	switch opt.proto {
	case transport.ProtoQuic:
		return dialQuic(ctx, opt)
	case transport.ProtoWebTransport:
		return dialWebTransport(ctx, opt)
	default:
		return nil, errConfiguration{"unknown transport protocol"}
	}
}

func dialQuic(ctx context.Context, opt *EndpointOption) (*Session, error) {
	tc := opt.tlsConfig
	if tc == nil {
		tc = &tls.Config{}
	}
	tc = tc.Clone()
	tc.NextProtos = []string{quicALPN}

	c, err := quic.DialAddr(ctx, opt.addr.Host, tc, nil)
	if err != nil {
		return nil, errIO{err}
	}
	conn := transport.NewQuicConnection(c)
	cs, version, err := clientHandshake(ctx, conn, opt)
	if err != nil {
		return nil, err
	}
	s := newSession(RoleClient, conn, cs, version, opt)
	go s.run(ctx, opt)
	return s, nil
}

func dialWebTransport(ctx context.Context, opt *EndpointOption) (*Session, error) {
	d := webtransport.Dialer{TLSClientConfig: opt.tlsConfig}
	_, wtSession, err := d.Dial(ctx, opt.addr.String(), nil)
	if err != nil {
		return nil, errIO{err}
	}
	conn := transport.NewWebTransportConnection(wtSession)
	cs, version, err := clientHandshake(ctx, conn, opt)
	if err != nil {
		return nil, err
	}
	s := newSession(RoleClient, conn, cs, version, opt)
	go s.run(ctx, opt)
	return s, nil
}
